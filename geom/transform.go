package geom

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/sacreative10/PhotorealisticRendering/types"
)

// Transform maps between an object frame and the world frame. The inverse
// matrix is kept alongside so both directions are available without
// re-inverting.
type Transform struct {
	m    mgl32.Mat4
	mInv mgl32.Mat4
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{m: mgl32.Ident4(), mInv: mgl32.Ident4()}
}

// Translate returns a transform that moves points by delta.
func Translate(delta types.Vec3) Transform {
	return Transform{
		m:    mgl32.Translate3D(delta[0], delta[1], delta[2]),
		mInv: mgl32.Translate3D(-delta[0], -delta[1], -delta[2]),
	}
}

// Scale returns a non-uniform scaling transform.
func Scale(s types.Vec3) Transform {
	return Transform{
		m:    mgl32.Scale3D(s[0], s[1], s[2]),
		mInv: mgl32.Scale3D(1/s[0], 1/s[1], 1/s[2]),
	}
}

// Rotate returns a rotation of angle radians around axis.
func Rotate(angle float32, axis types.Vec3) Transform {
	m := mgl32.HomogRotate3D(angle, mgl32.Vec3(axis.Normalize()))
	return Transform{m: m, mInv: m.Transpose()}
}

// FromMatrix wraps an arbitrary invertible matrix.
func FromMatrix(m mgl32.Mat4) Transform {
	return Transform{m: m, mInv: m.Inv()}
}

// Mul composes t and t2 so that t2 is applied first.
func (t Transform) Mul(t2 Transform) Transform {
	return Transform{
		m:    t.m.Mul4(t2.m),
		mInv: t2.mInv.Mul4(t.mInv),
	}
}

// Inverse swaps the forward and inverse matrices.
func (t Transform) Inverse() Transform {
	return Transform{m: t.mInv, mInv: t.m}
}

// Matrix returns the forward matrix.
func (t Transform) Matrix() mgl32.Mat4 {
	return t.m
}

// Point transforms a point, applying the homogeneous divide when needed.
func (t Transform) Point(p types.Vec3) types.Vec3 {
	out := t.m.Mul4x1(mgl32.Vec4{p[0], p[1], p[2], 1})
	if out[3] == 1 || out[3] == 0 {
		return types.Vec3{out[0], out[1], out[2]}
	}
	inv := 1 / out[3]
	return types.Vec3{out[0] * inv, out[1] * inv, out[2] * inv}
}

// Vector transforms a direction, ignoring translation.
func (t Transform) Vector(v types.Vec3) types.Vec3 {
	out := t.m.Mul4x1(mgl32.Vec4{v[0], v[1], v[2], 0})
	return types.Vec3{out[0], out[1], out[2]}
}

// Normal transforms a surface normal using the inverse transpose.
func (t Transform) Normal(n types.Vec3) types.Vec3 {
	out := t.mInv.Transpose().Mul4x1(mgl32.Vec4{n[0], n[1], n[2], 0})
	return types.Vec3{out[0], out[1], out[2]}
}

// Ray transforms a ray. The direction is not renormalized so parametric
// distances are preserved across frames.
func (t Transform) Ray(r Ray) Ray {
	return Ray{
		Origin: t.Point(r.Origin),
		Dir:    t.Vector(r.Dir),
		TMax:   r.TMax,
	}
}

// Bounds transforms all 8 corners of b and returns their bounding box.
func (t Transform) Bounds(b Bounds3) Bounds3 {
	out := EmptyBounds()
	for i := 0; i < 8; i++ {
		out = out.UnionPoint(t.Point(b.Corner(i)))
	}
	return out
}
