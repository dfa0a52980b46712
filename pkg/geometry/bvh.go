package geometry

import (
	"math/rand"
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// BVHNode is a node in a Bounding Volume Hierarchy. Internal nodes own two children
// and their surrounding box; leaves hold exactly one item and that item's box.
// A tree is immutable once built and safe for concurrent Hit calls.
type BVHNode[T Hittable] struct {
	box   core.AABB
	left  *BVHNode[T]
	right *BVHNode[T]
	item  T
	leaf  bool
}

// boxedItem pairs an item with its bounding box so the box is computed once per build
type boxedItem[T Hittable] struct {
	item T
	box  core.AABB
}

// NewBVH builds a BVH over items. Each level splits at the median along an axis drawn
// uniformly from random, ordering by the minimum corner of each item's box with ties
// kept in input order. The input slice is not modified. It panics on zero items.
func NewBVH[T Hittable](items []T, random *rand.Rand) *BVHNode[T] {
	if len(items) == 0 {
		panic("geometry: BVH over zero items")
	}

	boxed := make([]boxedItem[T], len(items))
	for i, item := range items {
		boxed[i] = boxedItem[T]{item: item, box: item.BoundingBox()}
	}

	return buildBVH(boxed, random)
}

func buildBVH[T Hittable](items []boxedItem[T], random *rand.Rand) *BVHNode[T] {
	if len(items) == 1 {
		return &BVHNode[T]{box: items[0].box, item: items[0].item, leaf: true}
	}

	axis := random.Intn(3)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].box.Min.Index(axis) < items[j].box.Min.Index(axis)
	})

	mid := len(items) / 2
	left := buildBVH(items[:mid], random)
	right := buildBVH(items[mid:], random)

	return &BVHNode[T]{
		box:   core.SurroundingBox(left.box, right.box),
		left:  left,
		right: right,
	}
}

// Hit returns the closest hit in the subtree. Leaves delegate to their item and only
// internal nodes prune on their box. The left child is tested first and the right
// child only closer than whatever the left one found.
func (n *BVHNode[T]) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if n.leaf {
		return n.item.Hit(ray, tMin, tMax)
	}

	if !n.box.Hit(ray, tMin, tMax) {
		return nil, false
	}

	leftHit, hitLeft := n.left.Hit(ray, tMin, tMax)
	if hitLeft {
		tMax = leftHit.T
	}

	if rightHit, hitRight := n.right.Hit(ray, tMin, tMax); hitRight {
		return rightHit, true
	}
	return leftHit, hitLeft
}

// BoundingBox returns the box surrounding every item in the subtree
func (n *BVHNode[T]) BoundingBox() core.AABB {
	return n.box
}

// BVHStats describes the shape of a built tree
type BVHStats struct {
	TotalNodes int
	LeafNodes  int
	MaxDepth   int
	AvgDepth   float64 // Mean leaf depth
}

// Stats walks the tree and collects structural statistics
func (n *BVHNode[T]) Stats() BVHStats {
	var stats BVHStats
	n.collectStats(0, &stats)

	if stats.LeafNodes > 0 {
		stats.AvgDepth /= float64(stats.LeafNodes)
	}
	return stats
}

func (n *BVHNode[T]) collectStats(depth int, stats *BVHStats) {
	stats.TotalNodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	if n.leaf {
		stats.LeafNodes++
		stats.AvgDepth += float64(depth)
		return
	}

	n.left.collectStats(depth+1, stats)
	n.right.collectStats(depth+1, stats)
}
