package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

const (
	// determinantEpsilon rejects rays lying in (or nearly in) the triangle's plane
	determinantEpsilon = 1e-8

	// flatAxisPadding is the minimum bounding box thickness on every axis. Triangles
	// flat on an axis, exactly or up to rounding, would otherwise be missed by the
	// slab test, which treats grazing as a miss.
	flatAxisPadding = 1e-4
)

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Vec3         // The three vertices
	Material   material.Material // Material of the triangle
	normal     core.Vec3         // Cached face normal
	bbox       core.AABB         // Cached bounding box
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3, mat material.Material) Triangle {
	edge1 := v1.Subtract(v0)
	edge2 := v2.Subtract(v0)

	return Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: mat,
		normal:   edge1.Cross(edge2).Normalize(),
		bbox:     core.NewAABBFromPoints(v0, v1, v2).Pad(flatAxisPadding),
	}
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm
func (t Triangle) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// Degenerate triangle, or ray parallel to it
	if a > -determinantEpsilon && a < determinantEpsilon {
		return nil, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return nil, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return nil, false
	}

	tHit := f * edge2.Dot(q)
	if tHit <= tMin || tHit >= tMax {
		return nil, false
	}

	hitRecord := &material.HitRecord{
		T:        tHit,
		Point:    ray.At(tHit),
		Material: t.Material,
	}
	hitRecord.SetFaceNormal(ray, t.normal)

	return hitRecord, true
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t Triangle) BoundingBox() core.AABB {
	return t.bbox
}

// Normal returns the triangle's face normal
func (t Triangle) Normal() core.Vec3 {
	return t.normal
}
