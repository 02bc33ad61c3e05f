package shape

import (
	"math"
	"testing"

	"github.com/sacreative10/PhotorealisticRendering/geom"
	"github.com/sacreative10/PhotorealisticRendering/types"
)

func almostEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestSphereIntersect(t *testing.T) {
	type spec struct {
		origin types.Vec3
		dir    types.Vec3
		tMax   float32
		expHit bool
		expT   float32
	}
	specs := []spec{
		// Near root.
		{types.XYZ(-10, 0, 0), types.XYZ(1, 0, 0), geom.Infinity, true, 4},
		// Unnormalized direction halves the distance.
		{types.XYZ(-10, 0, 0), types.XYZ(2, 0, 0), geom.Infinity, true, 2},
		// Origin inside the sphere hits the far root.
		{types.XYZ(-5, 0, 0), types.XYZ(0, 1, 0), geom.Infinity, true, 1},
		// tMax stops short.
		{types.XYZ(-10, 0, 0), types.XYZ(1, 0, 0), 3.5, false, 0},
		// Sphere behind the ray.
		{types.XYZ(0, 0, 0), types.XYZ(1, 0, 0), geom.Infinity, false, 0},
		// Complete miss.
		{types.XYZ(-10, 2, 0), types.XYZ(1, 0, 0), geom.Infinity, false, 0},
	}

	s := NewSphere(types.XYZ(-5, 0, 0), 1)
	for index, sp := range specs {
		ray := geom.Ray{Origin: sp.origin, Dir: sp.dir, TMax: sp.tMax}
		isect, hit := s.Intersect(ray)
		if hit != sp.expHit {
			t.Fatalf("[spec %d] expected hit to be %t; got %t", index, sp.expHit, hit)
		}
		if hitP := s.IntersectP(ray); hitP != sp.expHit {
			t.Fatalf("[spec %d] expected IntersectP to be %t; got %t", index, sp.expHit, hitP)
		}
		if hit && !almostEqual(isect.T, sp.expT) {
			t.Fatalf("[spec %d] expected hit distance %f; got %f", index, sp.expT, isect.T)
		}
	}
}

func TestSphereInteraction(t *testing.T) {
	s := NewSphere(types.XYZ(-5, 0, 0), 1)
	isect, hit := s.Intersect(geom.NewRay(types.XYZ(-10, 0, 0), types.XYZ(1, 0, 0)))
	if !hit {
		t.Fatal("expected ray to hit sphere")
	}

	expP := types.XYZ(-6, 0, 0)
	for i := 0; i < 3; i++ {
		if !almostEqual(isect.P[i], expP[i]) {
			t.Fatalf("expected hit point %v; got %v", expP, isect.P)
		}
	}
	if !almostEqual(isect.N[0], -1) {
		t.Fatalf("expected normal to point towards -x; got %v", isect.N)
	}
	if !almostEqual(isect.Wo[0], -1) {
		t.Fatalf("expected outgoing direction to point towards -x; got %v", isect.Wo)
	}
}

func TestPartialSphereClipping(t *testing.T) {
	type spec struct {
		sphere *Sphere
		origin types.Vec3
		dir    types.Vec3
		expHit bool
		expT   float32
	}
	specs := []spec{
		// Upper hemisphere: the near root at z=-1 is clipped.
		{NewPartialSphere(geom.Identity(), 1, 0, 1, 360), types.XYZ(0, 0, -5), types.XYZ(0, 0, 1), true, 6},
		// Half sweep: the near root at phi=3pi/2 is clipped.
		{NewPartialSphere(geom.Identity(), 1, -1, 1, 180), types.XYZ(0, -5, 0), types.XYZ(0, 1, 0), true, 6},
		// Thin band that the ray passes through the hole of.
		{NewPartialSphere(geom.Identity(), 1, -0.1, 0.1, 360), types.XYZ(0, 0, -5), types.XYZ(0, 0, 1), false, 0},
	}

	for index, sp := range specs {
		ray := geom.NewRay(sp.origin, sp.dir)
		isect, hit := sp.sphere.Intersect(ray)
		if hit != sp.expHit {
			t.Fatalf("[spec %d] expected hit to be %t; got %t", index, sp.expHit, hit)
		}
		if hit && !almostEqual(isect.T, sp.expT) {
			t.Fatalf("[spec %d] expected hit distance %f; got %f", index, sp.expT, isect.T)
		}
	}
}

func TestSphereBounds(t *testing.T) {
	s := NewSphere(types.XYZ(5, 0, 0), 1)
	b := s.WorldBound()
	exp := geom.NewBounds(types.XYZ(4, -1, -1), types.XYZ(6, 1, 1))
	if b != exp {
		t.Fatalf("expected world bounds %v; got %v", exp, b)
	}

	half := NewPartialSphere(geom.Identity(), 2, 0, 2, 360)
	if area, exp := half.Area(), float32(2*math.Pi*2*2); !almostEqual(area, exp) {
		t.Fatalf("expected hemisphere area %f; got %f", exp, area)
	}
}
