package bvh

import (
	"github.com/sacreative10/PhotorealisticRendering/geom"
	"github.com/sacreative10/PhotorealisticRendering/primitive"
	"github.com/sacreative10/PhotorealisticRendering/types"
)

// Initial capacity of the traversal stack. Deeper trees grow the stack on
// demand.
const traversalStackSize = 64

// Precomputed per-ray values shared by every slab test.
type rayState struct {
	invDir   types.Vec3
	dirIsNeg [3]int
}

func newRayState(ray *geom.Ray) (rayState, bool) {
	if ray.Dir == (types.Vec3{}) {
		return rayState{}, false
	}

	rs := rayState{invDir: ray.Dir.Inverse()}
	for axis := 0; axis < 3; axis++ {
		if rs.invDir[axis] < 0 {
			rs.dirIsNeg[axis] = 1
		}
	}
	return rs, true
}

// Intersect returns the closest primitive hit along ray. The T field of the
// returned interaction holds the hit distance.
func (bvh *BVH) Intersect(ray geom.Ray) (primitive.SurfaceInteraction, bool) {
	var isect primitive.SurfaceInteraction
	if len(bvh.nodes) == 0 {
		return isect, false
	}
	rs, ok := newRayState(&ray)
	if !ok {
		return isect, false
	}

	hit := false
	var stack [traversalStackSize]int
	toVisit := stack[:0]
	current := 0
	for {
		node := &bvh.nodes[current]
		if node.Bounds.IntersectP(&ray, rs.invDir, rs.dirIsNeg) {
			if node.NPrimitives > 0 {
				first := int(node.Offset)
				for i := first; i < first+int(node.NPrimitives); i++ {
					if si, ok := bvh.primitives[i].Intersect(ray); ok {
						hit = true
						// Anything beyond this hit can be skipped from now on.
						ray.TMax = si.T
						isect = si
					}
				}
				if len(toVisit) == 0 {
					break
				}
				current = toVisit[len(toVisit)-1]
				toVisit = toVisit[:len(toVisit)-1]
			} else {
				// Visit the near child first.
				if rs.dirIsNeg[node.Axis] == 1 {
					toVisit = append(toVisit, current+1)
					current = int(node.Offset)
				} else {
					toVisit = append(toVisit, int(node.Offset))
					current = current + 1
				}
			}
		} else {
			if len(toVisit) == 0 {
				break
			}
			current = toVisit[len(toVisit)-1]
			toVisit = toVisit[:len(toVisit)-1]
		}
	}

	return isect, hit
}

// IntersectP returns true as soon as any primitive is hit along ray.
func (bvh *BVH) IntersectP(ray geom.Ray) bool {
	if len(bvh.nodes) == 0 {
		return false
	}
	rs, ok := newRayState(&ray)
	if !ok {
		return false
	}

	var stack [traversalStackSize]int
	toVisit := stack[:0]
	current := 0
	for {
		node := &bvh.nodes[current]
		if node.Bounds.IntersectP(&ray, rs.invDir, rs.dirIsNeg) {
			if node.NPrimitives > 0 {
				first := int(node.Offset)
				for i := first; i < first+int(node.NPrimitives); i++ {
					if bvh.primitives[i].IntersectP(ray) {
						return true
					}
				}
				if len(toVisit) == 0 {
					break
				}
				current = toVisit[len(toVisit)-1]
				toVisit = toVisit[:len(toVisit)-1]
			} else {
				if rs.dirIsNeg[node.Axis] == 1 {
					toVisit = append(toVisit, current+1)
					current = int(node.Offset)
				} else {
					toVisit = append(toVisit, int(node.Offset))
					current = current + 1
				}
			}
		} else {
			if len(toVisit) == 0 {
				break
			}
			current = toVisit[len(toVisit)-1]
			toVisit = toVisit[:len(toVisit)-1]
		}
	}

	return false
}
