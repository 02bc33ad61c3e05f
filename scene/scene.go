// Package scene collects the primitives that an accelerator is built over
// and provides synthetic scenes for testing and benchmarking.
package scene

import (
	"errors"

	"github.com/sacreative10/PhotorealisticRendering/geom"
	"github.com/sacreative10/PhotorealisticRendering/primitive"
)

var (
	ErrDuplicatePrimitive = errors.New("scene: primitive already added")
	ErrUnknownMaterial    = errors.New("scene: primitive references unknown material; ensure that the material is added to the scene before adding the primitive")
	ErrDuplicateMaterial  = errors.New("scene: material already added")
)

type Scene struct {
	Materials  []string
	Primitives []primitive.Primitive

	added map[primitive.Primitive]struct{}
}

func NewScene() *Scene {
	return &Scene{
		Materials:  make([]string, 0),
		Primitives: make([]primitive.Primitive, 0),
		added:      make(map[primitive.Primitive]struct{}),
	}
}

// Add a material to the scene.
func (s *Scene) AddMaterial(material string) error {
	for _, mat := range s.Materials {
		if mat == material {
			return ErrDuplicateMaterial
		}
	}
	s.Materials = append(s.Materials, material)
	return nil
}

// Add a geometric primitive to the scene. Its material must already be
// known to the scene.
func (s *Scene) AddPrimitive(prim *primitive.GeometricPrimitive) error {
	if _, exists := s.added[prim]; exists {
		return ErrDuplicatePrimitive
	}
	for _, mat := range s.Materials {
		if mat == prim.Material {
			s.add(prim)
			return nil
		}
	}
	return ErrUnknownMaterial
}

// Append a primitive known to be new and to reference a scene material.
func (s *Scene) add(prim primitive.Primitive) {
	if s.added == nil {
		s.added = make(map[primitive.Primitive]struct{})
	}
	s.Primitives = append(s.Primitives, prim)
	s.added[prim] = struct{}{}
}

// Create a scene holding only the default material.
func newSyntheticScene(capacity int) *Scene {
	if capacity < 0 {
		capacity = 0
	}
	return &Scene{
		Materials:  []string{DefaultMaterial},
		Primitives: make([]primitive.Primitive, 0, capacity),
		added:      make(map[primitive.Primitive]struct{}, capacity),
	}
}

// Bounds returns the union of all primitive world bounds.
func (s *Scene) Bounds() geom.Bounds3 {
	bounds := geom.EmptyBounds()
	for _, prim := range s.Primitives {
		bounds = bounds.Union(prim.WorldBound())
	}
	return bounds
}
