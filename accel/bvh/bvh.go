// Package bvh implements a bounding volume hierarchy over a static set of
// primitives.
//
// The hierarchy is built top-down by recursively partitioning the primitive
// centroids using one of the supported split methods. The resulting binary
// tree is then flattened into a pre-order array of LinearNode values where
// the first child of an interior node always follows its parent and only the
// offset of the second child needs to be stored. Queries walk this array
// iteratively using an explicit stack.
//
// A BVH is immutable once New returns and may be queried concurrently.
package bvh

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sacreative10/PhotorealisticRendering/geom"
	"github.com/sacreative10/PhotorealisticRendering/log"
	"github.com/sacreative10/PhotorealisticRendering/primitive"
)

// SplitMethod selects the strategy used for partitioning primitives.
type SplitMethod uint8

const (
	// Minimize the surface area heuristic cost over a set of bucketed
	// split candidates.
	SAH SplitMethod = iota

	// Reserved; building with it fails with ErrUnsupportedSplitMethod.
	HLBVH

	// Split at the midpoint of the centroid bounds.
	Middle

	// Split into two halves with equal primitive counts.
	EqualCounts
)

// The largest leaf that can be requested via the maxPrimsInNode argument.
const MaxPrimsInNodeLimit = 255

var (
	ErrUnsupportedSplitMethod = errors.New("bvh: unsupported split method")
	ErrInvalidMaxPrims        = errors.New("bvh: max primitives per node must be positive")
)

func (m SplitMethod) String() string {
	switch m {
	case SAH:
		return "sah"
	case HLBVH:
		return "hlbvh"
	case Middle:
		return "middle"
	case EqualCounts:
		return "equal"
	}
	return fmt.Sprintf("SplitMethod(%d)", uint8(m))
}

// ParseSplitMethod maps a split method name to a SplitMethod.
func ParseSplitMethod(name string) (SplitMethod, error) {
	switch strings.ToLower(name) {
	case "sah":
		return SAH, nil
	case "hlbvh":
		return HLBVH, nil
	case "middle":
		return Middle, nil
	case "equal", "equalcounts", "equal-counts":
		return EqualCounts, nil
	}
	return SAH, fmt.Errorf("%w: %q", ErrUnsupportedSplitMethod, name)
}

// BVH is a flattened bounding volume hierarchy. It implements
// primitive.Primitive so it can be nested inside other aggregates.
type BVH struct {
	maxPrimsInNode int
	splitMethod    SplitMethod

	// Primitives reordered so that each leaf references a contiguous run.
	primitives []primitive.Primitive

	// Original input index for each entry in primitives.
	order []int

	// Pre-order node array; empty if the BVH was built over no primitives.
	nodes []LinearNode

	stats Stats
}

// New builds a BVH over prims. Leafs created by the SAH method hold at most
// maxPrimsInNode primitives (clamped to MaxPrimsInNodeLimit) unless their
// centroids cannot be separated.
func New(prims []primitive.Primitive, maxPrimsInNode int, splitMethod SplitMethod) (*BVH, error) {
	if maxPrimsInNode <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMaxPrims, maxPrimsInNode)
	}
	if maxPrimsInNode > MaxPrimsInNodeLimit {
		maxPrimsInNode = MaxPrimsInNodeLimit
	}

	switch splitMethod {
	case SAH, Middle, EqualCounts:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSplitMethod, splitMethod)
	}

	bvh := &BVH{
		maxPrimsInNode: maxPrimsInNode,
		splitMethod:    splitMethod,
		stats: Stats{
			SplitMethod: splitMethod,
			Primitives:  len(prims),
		},
	}
	if len(prims) == 0 {
		return bvh, nil
	}

	logger := log.New("bvh")
	start := time.Now()

	b := newBuilder(prims, maxPrimsInNode, splitMethod)
	root := b.recursiveBuild(0, len(prims), 0)

	bvh.primitives = b.orderedPrims
	bvh.order = b.orderedIndices
	bvh.nodes = make([]LinearNode, b.totalNodes)
	offset := 0
	flatten(b.arena, bvh.nodes, root, &offset)

	// The build tree is not referenced past this point.
	b.arena.reset()

	bvh.stats.collect(bvh.nodes, b.maxDepth)
	bvh.stats.BuildTime = time.Since(start)
	logger.Debugf(
		"BVH build time: %d ms, method: %s, maxDepth: %d, nodes: %d, leafs: %d",
		bvh.stats.BuildTime.Nanoseconds()/1e6,
		splitMethod, bvh.stats.MaxDepth, bvh.stats.TotalNodes, bvh.stats.LeafNodes,
	)
	if b.fallbacks > 0 {
		logger.Noticef("BVH builder fell back to equal count splits %d time(s)", b.fallbacks)
	}

	return bvh, nil
}

// WorldBound returns the bounds of the root node, or an empty box if the BVH
// contains no primitives.
func (bvh *BVH) WorldBound() geom.Bounds3 {
	if len(bvh.nodes) == 0 {
		return geom.EmptyBounds()
	}
	return bvh.nodes[0].Bounds
}

// Nodes returns the flattened node array. Callers must not modify it.
func (bvh *BVH) Nodes() []LinearNode {
	return bvh.nodes
}

// Primitives returns the reordered primitive list. Callers must not modify
// it.
func (bvh *BVH) Primitives() []primitive.Primitive {
	return bvh.primitives
}

// PrimitiveOrder returns, for every entry of Primitives, its index in the
// slice passed to New.
func (bvh *BVH) PrimitiveOrder() []int {
	return bvh.order
}

// SplitMethod returns the split method the BVH was built with.
func (bvh *BVH) SplitMethod() SplitMethod {
	return bvh.splitMethod
}

// MaxPrimsInNode returns the effective leaf size limit.
func (bvh *BVH) MaxPrimsInNode() int {
	return bvh.maxPrimsInNode
}

// Stats returns statistics collected while building the BVH.
func (bvh *BVH) Stats() Stats {
	return bvh.stats
}
