// Package primitive defines the capability shared by everything that can be
// placed in a scene: it is bounded and it can be intersected by rays. Both
// leaf geometry and acceleration structures implement it, so aggregates can
// be nested inside other aggregates.
package primitive

import (
	"github.com/sacreative10/PhotorealisticRendering/geom"
	"github.com/sacreative10/PhotorealisticRendering/shape"
)

// SurfaceInteraction is a shape interaction tagged with the primitive that
// produced it.
type SurfaceInteraction struct {
	shape.Interaction

	Primitive Primitive
}

// The Primitive interface is implemented by geometry and aggregates.
type Primitive interface {
	// Bounding box in world space.
	WorldBound() geom.Bounds3

	// Return the closest hit in (0, ray.TMax). The interaction T field holds
	// the narrowed ray extent on success.
	Intersect(ray geom.Ray) (SurfaceInteraction, bool)

	// Return true if any hit exists in (0, ray.TMax).
	IntersectP(ray geom.Ray) bool
}

// GeometricPrimitive binds a shape to a named material.
type GeometricPrimitive struct {
	Shape    shape.Shape
	Material string
}

// NewGeometric creates a new geometric primitive.
func NewGeometric(s shape.Shape, material string) *GeometricPrimitive {
	return &GeometricPrimitive{Shape: s, Material: material}
}

func (p *GeometricPrimitive) WorldBound() geom.Bounds3 {
	return p.Shape.WorldBound()
}

func (p *GeometricPrimitive) Intersect(ray geom.Ray) (SurfaceInteraction, bool) {
	isect, hit := p.Shape.Intersect(ray)
	if !hit {
		return SurfaceInteraction{}, false
	}
	return SurfaceInteraction{Interaction: isect, Primitive: p}, true
}

func (p *GeometricPrimitive) IntersectP(ray geom.Ray) bool {
	return p.Shape.IntersectP(ray)
}
