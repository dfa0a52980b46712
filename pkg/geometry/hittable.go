package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Hittable is anything a ray can be intersected with and that has a bounding box.
// Implementations report the closest hit strictly inside (tMin, tMax).
type Hittable interface {
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
	BoundingBox() core.AABB
}

// List is a flat collection tested exhaustively. It is the correctness baseline
// for the BVH and the fallback when no acceleration structure is built.
type List[T Hittable] []T

// NewList creates a list holding the given items
func NewList[T Hittable](items ...T) List[T] {
	return List[T](items)
}

// Hit returns the closest hit among all items
func (l List[T]) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := tMax

	for _, item := range l {
		if hit, ok := item.Hit(ray, tMin, closestSoFar); ok {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// BoundingBox returns the surrounding box of all items. It panics on an empty list.
func (l List[T]) BoundingBox() core.AABB {
	if len(l) == 0 {
		panic("geometry: bounding box of empty list")
	}

	box := l[0].BoundingBox()
	for _, item := range l[1:] {
		box = box.Union(item.BoundingBox())
	}
	return box
}
