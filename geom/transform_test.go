package geom

import (
	"math"
	"testing"

	"github.com/sacreative10/PhotorealisticRendering/types"
)

func vecAlmostEqual(a, b types.Vec3) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(float64(a[i]-b[i])) > 1e-5 {
			return false
		}
	}
	return true
}

func TestTranslateRoundTrip(t *testing.T) {
	tr := Translate(types.XYZ(1, 2, 3))
	p := tr.Point(types.XYZ(0, 0, 0))
	if p != types.XYZ(1, 2, 3) {
		t.Fatalf("expected translated point (1, 2, 3); got %v", p)
	}
	if back := tr.Inverse().Point(p); back != (types.Vec3{}) {
		t.Fatalf("expected inverse to map back to origin; got %v", back)
	}
	if v := tr.Vector(types.XYZ(1, 0, 0)); v != types.XYZ(1, 0, 0) {
		t.Fatalf("expected translation to leave vectors untouched; got %v", v)
	}
}

func TestComposedTransform(t *testing.T) {
	tr := Translate(types.XYZ(5, 0, 0)).Mul(Scale(types.XYZ(2, 2, 2)))
	p := tr.Point(types.XYZ(1, 0, 0))
	if !vecAlmostEqual(p, types.XYZ(7, 0, 0)) {
		t.Fatalf("expected (7, 0, 0); got %v", p)
	}
	if back := tr.Inverse().Point(p); !vecAlmostEqual(back, types.XYZ(1, 0, 0)) {
		t.Fatalf("expected (1, 0, 0); got %v", back)
	}
}

func TestRotateBounds(t *testing.T) {
	tr := Rotate(float32(math.Pi/2), types.XYZ(0, 0, 1))
	b := tr.Bounds(NewBounds(types.XYZ(0, 0, 0), types.XYZ(2, 1, 1)))
	exp := NewBounds(types.XYZ(-1, 0, 0), types.XYZ(0, 2, 1))
	if !vecAlmostEqual(b.Min, exp.Min) || !vecAlmostEqual(b.Max, exp.Max) {
		t.Fatalf("expected %v; got %v", exp, b)
	}

	if back := FromMatrix(tr.Matrix()).Inverse().Point(types.XYZ(0, 1, 0)); !vecAlmostEqual(back, types.XYZ(1, 0, 0)) {
		t.Fatalf("expected (1, 0, 0); got %v", back)
	}
}
