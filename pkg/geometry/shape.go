package geometry

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// ShapeKind identifies which primitive a Shape holds
type ShapeKind uint8

const (
	SphereShape ShapeKind = iota
	PlaneShape
	TriangleShape
	MeshShape
	ParallelepipedShape
)

var shapeKindNames = [...]string{
	SphereShape:         "sphere",
	PlaneShape:          "plane",
	TriangleShape:       "triangle",
	MeshShape:           "mesh",
	ParallelepipedShape: "parallelepiped",
}

func (k ShapeKind) String() string {
	if int(k) < len(shapeKindNames) {
		return shapeKindNames[k]
	}
	return fmt.Sprintf("ShapeKind(%d)", k)
}

// Shape is the closed set of scene primitives. Small primitives are held by value,
// aggregates by a shared read-only pointer. The zero Shape is not valid; build one
// with the AsShape methods.
type Shape struct {
	kind           ShapeKind
	sphere         Sphere
	plane          Plane
	triangle       Triangle
	mesh           *TriangleMesh
	parallelepiped *Parallelepiped
}

// AsShape wraps the sphere
func (s Sphere) AsShape() Shape { return Shape{kind: SphereShape, sphere: s} }

// AsShape wraps the plane
func (p Plane) AsShape() Shape { return Shape{kind: PlaneShape, plane: p} }

// AsShape wraps the triangle
func (t Triangle) AsShape() Shape { return Shape{kind: TriangleShape, triangle: t} }

// AsShape wraps the mesh
func (tm *TriangleMesh) AsShape() Shape { return Shape{kind: MeshShape, mesh: tm} }

// AsShape wraps the parallelepiped
func (p *Parallelepiped) AsShape() Shape { return Shape{kind: ParallelepipedShape, parallelepiped: p} }

// Kind reports which primitive the shape holds
func (s Shape) Kind() ShapeKind {
	return s.kind
}

// Hit dispatches to the held primitive
func (s Shape) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	switch s.kind {
	case SphereShape:
		return s.sphere.Hit(ray, tMin, tMax)
	case PlaneShape:
		return s.plane.Hit(ray, tMin, tMax)
	case TriangleShape:
		return s.triangle.Hit(ray, tMin, tMax)
	case MeshShape:
		return s.mesh.Hit(ray, tMin, tMax)
	case ParallelepipedShape:
		return s.parallelepiped.Hit(ray, tMin, tMax)
	default:
		panic(fmt.Sprintf("geometry: unknown shape kind %d", s.kind))
	}
}

// BoundingBox dispatches to the held primitive
func (s Shape) BoundingBox() core.AABB {
	switch s.kind {
	case SphereShape:
		return s.sphere.BoundingBox()
	case PlaneShape:
		return s.plane.BoundingBox()
	case TriangleShape:
		return s.triangle.BoundingBox()
	case MeshShape:
		return s.mesh.BoundingBox()
	case ParallelepipedShape:
		return s.parallelepiped.BoundingBox()
	default:
		panic(fmt.Sprintf("geometry: unknown shape kind %d", s.kind))
	}
}

// Material returns the material the primitive was built with
func (s Shape) Material() material.Material {
	switch s.kind {
	case SphereShape:
		return s.sphere.Material
	case PlaneShape:
		return s.plane.Material
	case TriangleShape:
		return s.triangle.Material
	case MeshShape:
		return s.mesh.Material()
	case ParallelepipedShape:
		return s.parallelepiped.Material
	default:
		panic(fmt.Sprintf("geometry: unknown shape kind %d", s.kind))
	}
}

// IsBounded reports whether the shape has a finite bounding box
func (s Shape) IsBounded() bool {
	return s.BoundingBox().IsBounded()
}

// PrimitiveCount returns how many primitives the shape expands to
func (s Shape) PrimitiveCount() int {
	switch s.kind {
	case MeshShape:
		return s.mesh.TriangleCount()
	case ParallelepipedShape:
		return len(s.parallelepiped.triangles)
	default:
		return 1
	}
}

func (s Shape) String() string {
	switch s.kind {
	case SphereShape:
		return fmt.Sprintf("sphere(center=%v, radius=%g, %v)", s.sphere.Center, s.sphere.Radius, s.sphere.Material)
	case PlaneShape:
		return fmt.Sprintf("plane(point=%v, normal=%v, %v)", s.plane.Point, s.plane.Normal, s.plane.Material)
	case TriangleShape:
		return fmt.Sprintf("triangle(%v, %v, %v, %v)", s.triangle.V0, s.triangle.V1, s.triangle.V2, s.triangle.Material)
	case MeshShape:
		return fmt.Sprintf("mesh(%d triangles, %v)", s.mesh.TriangleCount(), s.mesh.Material())
	case ParallelepipedShape:
		return fmt.Sprintf("parallelepiped(corner=%v, %v)", s.parallelepiped.Corner, s.parallelepiped.Material)
	default:
		return s.kind.String()
	}
}
