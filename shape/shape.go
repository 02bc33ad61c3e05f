// Package shape contains the geometric shapes that can be bound to scene
// primitives. Shapes are defined in their own object frame and carry the
// transform that places them in the world.
package shape

import (
	"github.com/sacreative10/PhotorealisticRendering/geom"
	"github.com/sacreative10/PhotorealisticRendering/types"
)

// Interaction describes a ray/shape hit in world space.
type Interaction struct {
	// Parametric distance along the ray.
	T float32

	// Hit point and geometric normal.
	P types.Vec3
	N types.Vec3

	// Outgoing direction (towards the ray origin).
	Wo types.Vec3

	// Surface parametrization.
	UV   types.Vec2
	Dpdu types.Vec3
	Dpdv types.Vec3
}

// The Shape interface is implemented by all intersectable geometry.
type Shape interface {
	// Bounds in the shape's object frame.
	ObjectBound() geom.Bounds3

	// Bounds in world space.
	WorldBound() geom.Bounds3

	// Find the closest hit in (0, ray.TMax).
	Intersect(ray geom.Ray) (Interaction, bool)

	// Test for any hit in (0, ray.TMax).
	IntersectP(ray geom.Ray) bool

	// Surface area in object space.
	Area() float32
}
