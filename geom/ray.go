package geom

import (
	"math"

	"github.com/sacreative10/PhotorealisticRendering/types"
)

// Infinity is the default ray extent.
var Infinity = float32(math.Inf(1))

// machineEpsilon is half the float32 ulp at 1.0.
const machineEpsilon = float32(5.9604645e-08)

// Ray is a half-line Origin + t*Dir restricted to t in (0, TMax). Rays are
// passed by value; narrowing TMax on a copy never affects other queries.
type Ray struct {
	Origin types.Vec3
	Dir    types.Vec3
	TMax   float32
}

// NewRay creates an unbounded ray.
func NewRay(origin, dir types.Vec3) Ray {
	return Ray{Origin: origin, Dir: dir, TMax: Infinity}
}

// At returns the point at parametric distance t.
func (r Ray) At(t float32) types.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// Gamma returns the conservative bound n*eps/(1-n*eps) on the relative
// error accumulated by n floating point operations.
func Gamma(n int) float32 {
	return (float32(n) * machineEpsilon) / (1 - float32(n)*machineEpsilon)
}
