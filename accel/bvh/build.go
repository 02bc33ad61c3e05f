package bvh

import (
	"math"

	"github.com/sacreative10/PhotorealisticRendering/geom"
	"github.com/sacreative10/PhotorealisticRendering/primitive"
	"github.com/sacreative10/PhotorealisticRendering/types"
)

// Per-primitive data used while building.
type primitiveInfo struct {
	// Index into the input primitive slice.
	index    int
	bounds   geom.Bounds3
	centroid types.Vec3
}

// A node of the intermediate build tree. Leafs reference a run of the
// ordered primitive list; interior nodes reference two children by their
// arena index.
type buildNode struct {
	bounds          geom.Bounds3
	children        [2]int32
	splitAxis       geom.Axis
	firstPrimOffset int
	nPrimitives     int
}

// buildArena stores build nodes in a single growable slice so the whole tree
// can be released at once. Nodes are addressed by index; pointers returned by
// node() are only valid until the next alloc().
type buildArena struct {
	nodes []buildNode
}

func newBuildArena(capacity int) *buildArena {
	return &buildArena{nodes: make([]buildNode, 0, capacity)}
}

func (a *buildArena) alloc() int32 {
	a.nodes = append(a.nodes, buildNode{children: [2]int32{-1, -1}})
	return int32(len(a.nodes) - 1)
}

func (a *buildArena) node(index int32) *buildNode {
	return &a.nodes[index]
}

func (a *buildArena) initLeaf(index int32, first, n int, bounds geom.Bounds3) {
	node := &a.nodes[index]
	node.firstPrimOffset = first
	node.nPrimitives = n
	node.bounds = bounds
	node.children = [2]int32{-1, -1}
}

func (a *buildArena) initInterior(index int32, axis geom.Axis, c0, c1 int32) {
	node := &a.nodes[index]
	node.children = [2]int32{c0, c1}
	node.bounds = a.nodes[c0].bounds.Union(a.nodes[c1].bounds)
	node.splitAxis = axis
	node.nPrimitives = 0
}

func (a *buildArena) reset() {
	a.nodes = nil
}

type builder struct {
	maxPrimsInNode int
	splitMethod    SplitMethod

	primitives []primitive.Primitive
	info       []primitiveInfo
	arena      *buildArena

	// Reordered output; leafs append their primitives in creation order.
	orderedPrims   []primitive.Primitive
	orderedIndices []int

	// Number of nodes created so far. Sizes the linear node array.
	totalNodes int

	maxDepth  int
	fallbacks int
}

func newBuilder(prims []primitive.Primitive, maxPrimsInNode int, splitMethod SplitMethod) *builder {
	info := make([]primitiveInfo, len(prims))
	for i, prim := range prims {
		bounds := prim.WorldBound()
		info[i] = primitiveInfo{
			index:    i,
			bounds:   bounds,
			centroid: bounds.Centroid(),
		}
	}

	// A binary tree with n leafs has at most 2n-1 nodes.
	arena := newBuildArena(2*len(prims) - 1)

	return &builder{
		maxPrimsInNode: maxPrimsInNode,
		splitMethod:    splitMethod,
		primitives:     prims,
		info:           info,
		arena:          arena,
		orderedPrims:   make([]primitive.Primitive, 0, len(prims)),
		orderedIndices: make([]int, 0, len(prims)),
	}
}

// Build the subtree covering info[start:end] and return its arena index.
func (b *builder) recursiveBuild(start, end, depth int) int32 {
	b.totalNodes++
	if depth > b.maxDepth {
		b.maxDepth = depth
	}
	node := b.arena.alloc()

	bounds := geom.EmptyBounds()
	for i := start; i < end; i++ {
		bounds = bounds.Union(b.info[i].bounds)
	}

	nPrimitives := end - start
	if nPrimitives == 1 {
		b.createLeaf(node, start, end, bounds)
		return node
	}

	centroidBounds := geom.EmptyBounds()
	for i := start; i < end; i++ {
		centroidBounds = centroidBounds.UnionPoint(b.info[i].centroid)
	}
	dim := centroidBounds.MaximumExtent()

	var mid int
	if centroidBounds.Max[dim] == centroidBounds.Min[dim] {
		// All centroids coincide; only a leaf makes sense unless it would
		// not fit the node layout.
		if nPrimitives <= math.MaxUint16 {
			b.createLeaf(node, start, end, bounds)
			return node
		}
		b.fallbacks++
		mid = b.splitEqualCounts(start, end, dim)
	} else {
		var split bool
		mid, split = b.split(start, end, dim, bounds, centroidBounds)
		if !split {
			b.createLeaf(node, start, end, bounds)
			return node
		}
	}

	c0 := b.recursiveBuild(start, mid, depth+1)
	c1 := b.recursiveBuild(mid, end, depth+1)
	b.arena.initInterior(node, dim, c0, c1)
	return node
}

// Append the primitives in info[start:end] to the ordered list and set up
// node as a leaf referencing them.
func (b *builder) createLeaf(node int32, start, end int, bounds geom.Bounds3) {
	firstPrimOffset := len(b.orderedPrims)
	for i := start; i < end; i++ {
		index := b.info[i].index
		b.orderedPrims = append(b.orderedPrims, b.primitives[index])
		b.orderedIndices = append(b.orderedIndices, index)
	}
	b.arena.initLeaf(node, firstPrimOffset, end-start, bounds)
}
