package primitive

import "github.com/sacreative10/PhotorealisticRendering/geom"

// List is an aggregate that tests every member against each ray. It serves
// as the reference that acceleration structures are validated against.
type List struct {
	items  []Primitive
	bounds geom.Bounds3
}

// NewList creates a linear aggregate over items.
func NewList(items []Primitive) *List {
	bounds := geom.EmptyBounds()
	for _, item := range items {
		bounds = bounds.Union(item.WorldBound())
	}
	return &List{items: items, bounds: bounds}
}

// Len returns the number of aggregated primitives.
func (l *List) Len() int {
	return len(l.items)
}

func (l *List) WorldBound() geom.Bounds3 {
	return l.bounds
}

func (l *List) Intersect(ray geom.Ray) (SurfaceInteraction, bool) {
	var closest SurfaceInteraction
	hitAnything := false
	for _, item := range l.items {
		if isect, hit := item.Intersect(ray); hit {
			hitAnything = true
			ray.TMax = isect.T
			closest = isect
		}
	}
	return closest, hitAnything
}

func (l *List) IntersectP(ray geom.Ray) bool {
	for _, item := range l.items {
		if item.IntersectP(ray) {
			return true
		}
	}
	return false
}
