package scene

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sacreative10/PhotorealisticRendering/geom"
	"github.com/sacreative10/PhotorealisticRendering/primitive"
	"github.com/sacreative10/PhotorealisticRendering/shape"
	"github.com/sacreative10/PhotorealisticRendering/types"
)

// The material assigned to all synthetic primitives.
const DefaultMaterial = "default"

// RandomSpheres creates a scene with count spheres whose centers are
// uniformly distributed inside bounds and whose radii are uniformly
// distributed in [minRadius, maxRadius].
func RandomSpheres(rng *rand.Rand, count int, bounds geom.Bounds3, minRadius, maxRadius float32) *Scene {
	sc := newSyntheticScene(count)

	extent := bounds.Diagonal()
	for i := 0; i < count; i++ {
		center := types.XYZ(
			bounds.Min[0]+rng.Float32()*extent[0],
			bounds.Min[1]+rng.Float32()*extent[1],
			bounds.Min[2]+rng.Float32()*extent[2],
		)
		radius := minRadius + rng.Float32()*(maxRadius-minRadius)
		sc.add(primitive.NewGeometric(shape.NewSphere(center, radius), DefaultMaterial))
	}
	return sc
}

// SphereRow creates count spheres of the given radius centered on the x
// axis, spaced evenly and centered around the origin.
func SphereRow(count int, spacing, radius float32) *Scene {
	sc := newSyntheticScene(count)

	offset := -spacing * float32(count-1) / 2
	for i := 0; i < count; i++ {
		center := types.XYZ(offset+float32(i)*spacing, 0, 0)
		sc.add(primitive.NewGeometric(shape.NewSphere(center, radius), DefaultMaterial))
	}
	return sc
}

// RandomRays creates count rays whose origins are uniformly distributed in
// bounds grown by half its diagonal and whose directions are uniformly
// distributed on the unit sphere.
func RandomRays(rng *rand.Rand, count int, bounds geom.Bounds3) []geom.Ray {
	if bounds.IsEmpty() {
		bounds = geom.NewBounds(types.Splat(-1), types.Splat(1))
	}
	pad := bounds.Diagonal().Mul(0.5)
	lo := bounds.Min.Sub(pad)
	extent := bounds.Diagonal().Add(pad.Mul(2))

	rays := make([]geom.Ray, count)
	for i := range rays {
		origin := types.XYZ(
			lo[0]+rng.Float32()*extent[0],
			lo[1]+rng.Float32()*extent[1],
			lo[2]+rng.Float32()*extent[2],
		)
		rays[i] = geom.NewRay(origin, uniformSphere(rng))
	}
	return rays
}

// ParseBounds parses "x0,y0,z0,x1,y1,z1" into a box.
func ParseBounds(value string) (geom.Bounds3, error) {
	var v [6]float32
	n, err := fmt.Sscanf(value, "%g,%g,%g,%g,%g,%g", &v[0], &v[1], &v[2], &v[3], &v[4], &v[5])
	if err != nil || n != 6 {
		return geom.Bounds3{}, fmt.Errorf("scene: invalid bounds %q; expected x0,y0,z0,x1,y1,z1", value)
	}
	return geom.NewBounds(types.XYZ(v[0], v[1], v[2]), types.XYZ(v[3], v[4], v[5])), nil
}

func uniformSphere(rng *rand.Rand) types.Vec3 {
	z := 1 - 2*rng.Float64()
	r := math.Sqrt(math.Max(0, 1-z*z))
	phi := 2 * math.Pi * rng.Float64()
	return types.XYZ(float32(r*math.Cos(phi)), float32(r*math.Sin(phi)), float32(z))
}
