package bvh

import (
	"math/rand"
	"testing"

	"github.com/sacreative10/PhotorealisticRendering/geom"
	"github.com/sacreative10/PhotorealisticRendering/types"
)

func infoWithCentroids(xs ...float32) []primitiveInfo {
	info := make([]primitiveInfo, len(xs))
	for i, x := range xs {
		info[i] = primitiveInfo{index: i, centroid: types.XYZ(x, 0, 0)}
	}
	return info
}

func TestSelectNth(t *testing.T) {
	type spec struct {
		centroids []float32
		k         int
		exp       float32
	}
	specs := []spec{
		{[]float32{5, 1, 4, 2, 3}, 2, 3},
		{[]float32{5, 1, 4, 2, 3}, 0, 1},
		{[]float32{5, 1, 4, 2, 3}, 4, 5},
		{[]float32{2, 2, 2, 2, 1, 3, 2}, 3, 2},
		{[]float32{7, 7, 7, 7}, 1, 7},
		{[]float32{9}, 0, 9},
	}

	for index, s := range specs {
		info := infoWithCentroids(s.centroids...)
		selectNth(info, s.k, geom.XAxis)
		if got := info[s.k].centroid[0]; got != s.exp {
			t.Fatalf("[spec %d] expected element %d to be %f; got %f", index, s.k, s.exp, got)
		}
		for i := range info {
			c := info[i].centroid[0]
			if (i < s.k && c > s.exp) || (i > s.k && c < s.exp) {
				t.Fatalf("[spec %d] element %d (%f) is on the wrong side of the pivot", index, i, c)
			}
		}
	}
}

func TestSelectNthRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for iteration := 0; iteration < 50; iteration++ {
		n := 1 + rng.Intn(200)
		xs := make([]float32, n)
		for i := range xs {
			// Use a small value range so that duplicates are common.
			xs[i] = float32(rng.Intn(10))
		}
		info := infoWithCentroids(xs...)
		k := rng.Intn(n)
		selectNth(info, k, geom.XAxis)

		pivot := info[k].centroid[0]
		seen := make(map[int]bool, n)
		for i := range info {
			c := info[i].centroid[0]
			if (i < k && c > pivot) || (i > k && c < pivot) {
				t.Fatalf("[iteration %d] element %d (%f) is on the wrong side of pivot %f", iteration, i, c, pivot)
			}
			seen[info[i].index] = true
		}
		if len(seen) != n {
			t.Fatalf("[iteration %d] expected selection to be a permutation", iteration)
		}
	}
}

func TestPartition(t *testing.T) {
	info := infoWithCentroids(4, 0, 3, 1, 5, 2)
	mid := partition(info, func(pi *primitiveInfo) bool {
		return pi.centroid[0] < 2.5
	})

	if mid != 3 {
		t.Fatalf("expected 3 entries to satisfy the predicate; got %d", mid)
	}
	for i := range info {
		if below := info[i].centroid[0] < 2.5; below != (i < mid) {
			t.Fatalf("entry %d (%f) is on the wrong side of the partition", i, info[i].centroid[0])
		}
	}

	if got := partition(info, func(*primitiveInfo) bool { return false }); got != 0 {
		t.Fatalf("expected empty partition; got %d", got)
	}
	if got := partition(info, func(*primitiveInfo) bool { return true }); got != len(info) {
		t.Fatalf("expected full partition; got %d", got)
	}
}

func TestBucketIndex(t *testing.T) {
	centroidBounds := geom.NewBounds(types.XYZ(0, 0, 0), types.XYZ(12, 1, 1))

	type spec struct {
		x   float32
		exp int
	}
	specs := []spec{
		{0, 0},
		{0.99, 0},
		{1.5, 1},
		{6.5, 6},
		{11.5, 11},
		// The upper bound maps to the last bucket.
		{12, sahBuckets - 1},
		// Out of range values are clamped.
		{-1, 0},
		{20, sahBuckets - 1},
	}

	for index, s := range specs {
		pi := primitiveInfo{centroid: types.XYZ(s.x, 0.5, 0.5)}
		if got := bucketIndex(centroidBounds, &pi, geom.XAxis); got != s.exp {
			t.Fatalf("[spec %d] expected bucket %d; got %d", index, s.exp, got)
		}
	}
}

func TestMiddleFallsBackToEqualCounts(t *testing.T) {
	// A single far outlier puts the centroid midpoint past every other
	// primitive; the midpoint split still separates them.
	info := infoWithCentroids(0, 0.1, 0.2, 0.3, 100)
	b := &builder{info: info, splitMethod: Middle}
	centroidBounds := geom.NewBounds(types.XYZ(0, 0, 0), types.XYZ(100, 0, 0))
	if mid, ok := b.splitMiddle(0, len(info), geom.XAxis, centroidBounds); !ok || mid != 4 {
		t.Fatalf("expected middle split at 4; got %d (ok=%t)", mid, ok)
	}

	// Bounds that do not match the centroids place everything on one side.
	info = infoWithCentroids(0, 1, 2, 3)
	b = &builder{info: info, splitMethod: Middle}
	centroidBounds = geom.NewBounds(types.XYZ(10, 0, 0), types.XYZ(20, 0, 0))
	if _, ok := b.splitMiddle(0, len(info), geom.XAxis, centroidBounds); ok {
		t.Fatal("expected degenerate middle split to fail")
	}
	mid, ok := b.split(0, len(info), geom.XAxis, geom.EmptyBounds(), centroidBounds)
	if !ok || mid != 2 {
		t.Fatalf("expected equal counts fallback split at 2; got %d (ok=%t)", mid, ok)
	}
}
