package geom

import (
	"math"

	"github.com/sacreative10/PhotorealisticRendering/types"
)

// Axis identifies one of the three coordinate axes.
type Axis uint8

const (
	XAxis Axis = iota
	YAxis
	ZAxis
)

var (
	posInf = float32(math.Inf(1))
	negInf = float32(math.Inf(-1))
)

// Bounds3 is an axis-aligned bounding box. A box whose Min component exceeds
// its Max component on any axis is empty.
type Bounds3 struct {
	Min types.Vec3
	Max types.Vec3
}

// EmptyBounds returns the identity element for Union: Min is +Inf and Max
// is -Inf on every axis.
func EmptyBounds() Bounds3 {
	return Bounds3{
		Min: types.Splat(posInf),
		Max: types.Splat(negInf),
	}
}

// NewBounds returns the box spanned by two arbitrary corner points.
func NewBounds(p1, p2 types.Vec3) Bounds3 {
	return Bounds3{
		Min: types.MinVec3(p1, p2),
		Max: types.MaxVec3(p1, p2),
	}
}

// Union returns the smallest box enclosing b and b2.
func (b Bounds3) Union(b2 Bounds3) Bounds3 {
	return Bounds3{
		Min: types.MinVec3(b.Min, b2.Min),
		Max: types.MaxVec3(b.Max, b2.Max),
	}
}

// UnionPoint returns the smallest box enclosing b and p.
func (b Bounds3) UnionPoint(p types.Vec3) Bounds3 {
	return Bounds3{
		Min: types.MinVec3(b.Min, p),
		Max: types.MaxVec3(b.Max, p),
	}
}

// IsEmpty returns true if Min > Max on any axis.
func (b Bounds3) IsEmpty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

// Inside returns true if p lies within the box (boundary inclusive).
func (b Bounds3) Inside(p types.Vec3) bool {
	return p[0] >= b.Min[0] && p[0] <= b.Max[0] &&
		p[1] >= b.Min[1] && p[1] <= b.Max[1] &&
		p[2] >= b.Min[2] && p[2] <= b.Max[2]
}

// Corner returns one of the 8 box corners; bit i of the index selects Max
// for axis i.
func (b Bounds3) Corner(index int) types.Vec3 {
	var c types.Vec3
	for axis := 0; axis < 3; axis++ {
		if index&(1<<uint(axis)) != 0 {
			c[axis] = b.Max[axis]
		} else {
			c[axis] = b.Min[axis]
		}
	}
	return c
}

// Diagonal returns Max - Min.
func (b Bounds3) Diagonal() types.Vec3 {
	return b.Max.Sub(b.Min)
}

// Centroid returns the box midpoint.
func (b Bounds3) Centroid() types.Vec3 {
	return b.Min.Mul(0.5).Add(b.Max.Mul(0.5))
}

// SurfaceArea returns the total area of the six box faces. Empty boxes
// report a zero area.
func (b Bounds3) SurfaceArea() float32 {
	if b.IsEmpty() {
		return 0
	}
	d := b.Diagonal()
	return 2 * (d[0]*d[1] + d[0]*d[2] + d[1]*d[2])
}

// Volume returns the box volume; zero for empty boxes.
func (b Bounds3) Volume() float32 {
	if b.IsEmpty() {
		return 0
	}
	d := b.Diagonal()
	return d[0] * d[1] * d[2]
}

// MaximumExtent returns the axis with the largest diagonal component. A
// strictly greater extent wins, so ties resolve towards the later axis.
func (b Bounds3) MaximumExtent() Axis {
	d := b.Diagonal()
	if d[0] > d[1] && d[0] > d[2] {
		return XAxis
	} else if d[1] > d[2] {
		return YAxis
	}
	return ZAxis
}

// Offset returns the position of p relative to the box corners, so that
// Min maps to 0 and Max maps to 1. Axes where the box is degenerate are
// left untouched.
func (b Bounds3) Offset(p types.Vec3) types.Vec3 {
	o := p.Sub(b.Min)
	for axis := 0; axis < 3; axis++ {
		if b.Max[axis] > b.Min[axis] {
			o[axis] /= b.Max[axis] - b.Min[axis]
		}
	}
	return o
}

// IntersectP runs the slab test against ray using a precomputed reciprocal
// ray direction and per-axis flags (1 when the direction is negative) that
// select the near and far slab planes. Only hits within (0, ray.TMax) are
// reported.
func (b *Bounds3) IntersectP(ray *Ray, invDir types.Vec3, dirIsNeg [3]int) bool {
	tMin := (b.corner(dirIsNeg[0])[0] - ray.Origin[0]) * invDir[0]
	tMax := (b.corner(1-dirIsNeg[0])[0] - ray.Origin[0]) * invDir[0]
	tyMin := (b.corner(dirIsNeg[1])[1] - ray.Origin[1]) * invDir[1]
	tyMax := (b.corner(1-dirIsNeg[1])[1] - ray.Origin[1]) * invDir[1]

	// Conservative far distances guard against rounding errors.
	tMax *= 1 + 2*Gamma(3)
	tyMax *= 1 + 2*Gamma(3)
	if tMin > tyMax || tyMin > tMax {
		return false
	}
	if tyMin > tMin {
		tMin = tyMin
	}
	if tyMax < tMax {
		tMax = tyMax
	}

	tzMin := (b.corner(dirIsNeg[2])[2] - ray.Origin[2]) * invDir[2]
	tzMax := (b.corner(1-dirIsNeg[2])[2] - ray.Origin[2]) * invDir[2]
	tzMax *= 1 + 2*Gamma(3)
	if tMin > tzMax || tzMin > tMax {
		return false
	}
	if tzMin > tMin {
		tMin = tzMin
	}
	if tzMax < tMax {
		tMax = tzMax
	}

	return tMin < ray.TMax && tMax > 0
}

// IntersectRange clips ray against the box and returns the parametric entry
// and exit distances, limited to [0, ray.TMax].
func (b Bounds3) IntersectRange(ray Ray) (t0, t1 float32, ok bool) {
	t0, t1 = 0, ray.TMax
	for axis := 0; axis < 3; axis++ {
		invDir := 1 / ray.Dir[axis]
		tNear := (b.Min[axis] - ray.Origin[axis]) * invDir
		tFar := (b.Max[axis] - ray.Origin[axis]) * invDir
		if tNear > tFar {
			tNear, tFar = tFar, tNear
		}
		tFar *= 1 + 2*Gamma(3)

		if tNear > t0 {
			t0 = tNear
		}
		if tFar < t1 {
			t1 = tFar
		}
		if t0 > t1 {
			return 0, 0, false
		}
	}
	return t0, t1, true
}

func (b *Bounds3) corner(i int) types.Vec3 {
	if i == 0 {
		return b.Min
	}
	return b.Max
}
