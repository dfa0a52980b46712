package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// Unbounded returns a box covering all of space, used by infinite primitives
func Unbounded() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: NewVec3(-inf, -inf, -inf),
		Max: NewVec3(inf, inf, inf),
	}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		panic("core: bounding box of zero points")
	}

	box := AABB{Min: points[0], Max: points[0]}
	for _, point := range points[1:] {
		box = box.Union(AABB{Min: point, Max: point})
	}
	return box
}

// Hit tests if a ray intersects with this AABB using the slab method.
//
// Zero direction components divide to ±Inf on purpose. The interval is narrowed with
// ordered comparisons, so a NaN bound (0 * Inf) leaves it untouched.
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) bool {
	for axis := 0; axis < 3; axis++ {
		invD := 1.0 / ray.Direction.Index(axis)
		origin := ray.Origin.Index(axis)

		t0 := (aabb.Min.Index(axis) - origin) * invD
		t1 := (aabb.Max.Index(axis) - origin) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}

		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}

		// Grazing a face (empty interval) counts as a miss
		if tMax <= tMin {
			return false
		}
	}

	return true
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return AABB{
		Min: Vec3{
			X: math.Min(aabb.Min.X, other.Min.X),
			Y: math.Min(aabb.Min.Y, other.Min.Y),
			Z: math.Min(aabb.Min.Z, other.Min.Z),
		},
		Max: Vec3{
			X: math.Max(aabb.Max.X, other.Max.X),
			Y: math.Max(aabb.Max.Y, other.Max.Y),
			Z: math.Max(aabb.Max.Z, other.Max.Z),
		},
	}
}

// SurroundingBox returns the smallest box enclosing both boxes
func SurroundingBox(a, b AABB) AABB {
	return a.Union(b)
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// IsBounded reports whether every bound is finite
func (aabb AABB) IsBounded() bool {
	for axis := 0; axis < 3; axis++ {
		if math.IsInf(aabb.Min.Index(axis), 0) || math.IsInf(aabb.Max.Index(axis), 0) {
			return false
		}
	}
	return true
}

// Pad widens every axis whose extent is below delta so the box has a non-zero thickness
func (aabb AABB) Pad(delta float64) AABB {
	half := delta / 2
	size := aabb.Size()
	if size.X < delta {
		aabb.Min.X -= half
		aabb.Max.X += half
	}
	if size.Y < delta {
		aabb.Min.Y -= half
		aabb.Max.Y += half
	}
	if size.Z < delta {
		aabb.Min.Z -= half
		aabb.Max.Z += half
	}
	return aabb
}
