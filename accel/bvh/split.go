package bvh

import (
	"math"

	"github.com/sacreative10/PhotorealisticRendering/geom"
)

const (
	// Number of buckets used to discretize the centroid range when
	// evaluating SAH split candidates.
	sahBuckets = 12

	// Cost of visiting a node relative to intersecting a primitive.
	sahTraversalCost float32 = 0.125

	// Ranges with at most this many primitives are split using
	// EqualCounts instead of evaluating the SAH.
	sahMinPrimitives = 4
)

type sahBucket struct {
	count  int
	bounds geom.Bounds3
}

// Pick a partition point for info[start:end] along dim using the configured
// split method. Returns false if a leaf is cheaper than any split.
func (b *builder) split(start, end int, dim geom.Axis, bounds, centroidBounds geom.Bounds3) (int, bool) {
	switch b.splitMethod {
	case Middle:
		if mid, ok := b.splitMiddle(start, end, dim, centroidBounds); ok {
			return mid, true
		}
		return b.splitEqualCounts(start, end, dim), true
	case EqualCounts:
		return b.splitEqualCounts(start, end, dim), true
	default:
		if end-start <= sahMinPrimitives {
			return b.splitEqualCounts(start, end, dim), true
		}
		return b.splitSAH(start, end, dim, bounds, centroidBounds)
	}
}

// Partition around the midpoint of the centroid bounds. Fails if every
// primitive lands on the same side.
func (b *builder) splitMiddle(start, end int, dim geom.Axis, centroidBounds geom.Bounds3) (int, bool) {
	pMid := (centroidBounds.Min[dim] + centroidBounds.Max[dim]) / 2
	mid := partition(b.info[start:end], func(pi *primitiveInfo) bool {
		return pi.centroid[dim] < pMid
	}) + start
	return mid, mid != start && mid != end
}

// Place the median primitive (by centroid along dim) at the middle of the
// range with smaller centroids before it and larger ones after it.
func (b *builder) splitEqualCounts(start, end int, dim geom.Axis) int {
	mid := (start + end) / 2
	selectNth(b.info[start:end], mid-start, dim)
	return mid
}

// Evaluate the SAH cost of splitting between each pair of adjacent buckets
// and pick the cheapest option, which may be not splitting at all.
func (b *builder) splitSAH(start, end int, dim geom.Axis, bounds, centroidBounds geom.Bounds3) (int, bool) {
	nPrimitives := end - start

	parentArea := bounds.SurfaceArea()
	if parentArea <= 0 {
		// Costs are not comparable for flat parents.
		b.fallbacks++
		return b.splitEqualCounts(start, end, dim), true
	}

	var buckets [sahBuckets]sahBucket
	for i := range buckets {
		buckets[i].bounds = geom.EmptyBounds()
	}
	for i := start; i < end; i++ {
		bi := bucketIndex(centroidBounds, &b.info[i], dim)
		buckets[bi].count++
		buckets[bi].bounds = buckets[bi].bounds.Union(b.info[i].bounds)
	}

	// costs[i] accumulates the cost of splitting after bucket i. Sweep once
	// from each end keeping running counts and bounds.
	var costs [sahBuckets - 1]float32
	countBelow := 0
	boundBelow := geom.EmptyBounds()
	for i := 0; i < sahBuckets-1; i++ {
		boundBelow = boundBelow.Union(buckets[i].bounds)
		countBelow += buckets[i].count
		costs[i] += float32(countBelow) * boundBelow.SurfaceArea()
	}
	countAbove := 0
	boundAbove := geom.EmptyBounds()
	for i := sahBuckets - 1; i >= 1; i-- {
		boundAbove = boundAbove.Union(buckets[i].bounds)
		countAbove += buckets[i].count
		costs[i-1] += float32(countAbove) * boundAbove.SurfaceArea()
	}

	minCostSplitBucket := -1
	minCost := float32(math.Inf(1))
	for i, cost := range costs {
		cost = sahTraversalCost + cost/parentArea
		if cost < minCost {
			minCost = cost
			minCostSplitBucket = i
		}
	}

	leafCost := float32(nPrimitives)
	if nPrimitives <= b.maxPrimsInNode && leafCost <= minCost {
		return 0, false
	}

	mid := partition(b.info[start:end], func(pi *primitiveInfo) bool {
		return bucketIndex(centroidBounds, pi, dim) <= minCostSplitBucket
	}) + start
	if mid == start || mid == end {
		b.fallbacks++
		return b.splitEqualCounts(start, end, dim), true
	}
	return mid, true
}

// Map a primitive centroid to its SAH bucket, clamping to the valid range.
func bucketIndex(centroidBounds geom.Bounds3, pi *primitiveInfo, dim geom.Axis) int {
	bi := int(sahBuckets * centroidBounds.Offset(pi.centroid)[dim])
	if bi >= sahBuckets {
		bi = sahBuckets - 1
	}
	if bi < 0 {
		bi = 0
	}
	return bi
}

// Reorder items so that all entries satisfying pred come first and return
// the number of such entries.
func partition(items []primitiveInfo, pred func(*primitiveInfo) bool) int {
	first := 0
	for first < len(items) && pred(&items[first]) {
		first++
	}
	for i := first + 1; i < len(items); i++ {
		if pred(&items[i]) {
			items[i], items[first] = items[first], items[i]
			first++
		}
	}
	return first
}

// Rearrange items so that items[k] holds the element that would be there if
// the slice was sorted by centroid along dim, with no larger element before
// it and no smaller one after it. Uses a three-way quickselect so ranges with
// many equal keys stay linear.
func selectNth(items []primitiveInfo, k int, dim geom.Axis) {
	lo, hi := 0, len(items)-1
	for lo < hi {
		pivot := medianOfThree(items, lo, hi, dim)

		// Partition into [lo, lt) < pivot, [lt, gt] == pivot, (gt, hi] > pivot.
		lt, i, gt := lo, lo, hi
		for i <= gt {
			c := items[i].centroid[dim]
			switch {
			case c < pivot:
				items[lt], items[i] = items[i], items[lt]
				lt++
				i++
			case c > pivot:
				items[i], items[gt] = items[gt], items[i]
				gt--
			default:
				i++
			}
		}

		switch {
		case k < lt:
			hi = lt - 1
		case k > gt:
			lo = gt + 1
		default:
			return
		}
	}
}

func medianOfThree(items []primitiveInfo, lo, hi int, dim geom.Axis) float32 {
	a := items[lo].centroid[dim]
	b := items[lo+(hi-lo)/2].centroid[dim]
	c := items[hi].centroid[dim]
	if a > b {
		a, b = b, a
	}
	if b > c {
		b = c
	}
	if a > b {
		b = a
	}
	return b
}
