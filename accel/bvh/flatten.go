package bvh

import "github.com/sacreative10/PhotorealisticRendering/geom"

// LinearNode is the compact node representation queried during traversal.
// Interior nodes store their first child in the next array slot.
type LinearNode struct {
	Bounds geom.Bounds3

	// Index of the first primitive for leafs; index of the second child for
	// interior nodes.
	Offset uint32

	// Number of primitives in a leaf; 0 for interior nodes.
	NPrimitives uint16

	// Split axis for interior nodes.
	Axis geom.Axis
}

// IsLeaf returns true if the node references primitives.
func (n *LinearNode) IsLeaf() bool {
	return n.NPrimitives > 0
}

// Write the subtree rooted at node into nodes using a pre-order walk,
// starting at *offset. Returns the array index assigned to node.
func flatten(arena *buildArena, nodes []LinearNode, node int32, offset *int) int {
	bn := arena.node(node)
	nodeOffset := *offset
	*offset++

	linear := &nodes[nodeOffset]
	linear.Bounds = bn.bounds
	if bn.nPrimitives > 0 {
		linear.Offset = uint32(bn.firstPrimOffset)
		linear.NPrimitives = uint16(bn.nPrimitives)
		return nodeOffset
	}

	linear.Axis = bn.splitAxis
	linear.NPrimitives = 0
	flatten(arena, nodes, bn.children[0], offset)
	linear.Offset = uint32(flatten(arena, nodes, bn.children[1], offset))
	return nodeOffset
}
