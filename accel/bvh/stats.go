package bvh

import (
	"time"
	"unsafe"
)

// Stats summarizes the shape of a built BVH.
type Stats struct {
	SplitMethod SplitMethod

	Primitives    int
	TotalNodes    int
	InteriorNodes int
	LeafNodes     int

	// Depth of the deepest node; the root has depth 0.
	MaxDepth int

	// Largest and average number of primitives per leaf.
	MaxLeafPrims int
	AvgLeafPrims float32

	// Size of the linear node array.
	NodeBytes int

	BuildTime time.Duration
}

func (s *Stats) collect(nodes []LinearNode, maxDepth int) {
	s.TotalNodes = len(nodes)
	s.MaxDepth = maxDepth
	s.NodeBytes = len(nodes) * int(unsafe.Sizeof(LinearNode{}))

	leafPrims := 0
	for i := range nodes {
		if !nodes[i].IsLeaf() {
			s.InteriorNodes++
			continue
		}
		n := int(nodes[i].NPrimitives)
		s.LeafNodes++
		leafPrims += n
		if n > s.MaxLeafPrims {
			s.MaxLeafPrims = n
		}
	}
	if s.LeafNodes > 0 {
		s.AvgLeafPrims = float32(leafPrims) / float32(s.LeafNodes)
	}
}
