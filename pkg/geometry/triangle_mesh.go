package geometry

import (
	"fmt"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// TriangleMesh represents a collection of triangles with efficient ray intersection.
// It uses an internal BVH for fast intersection tests.
type TriangleMesh struct {
	triangles []Triangle
	bvh       *BVHNode[Triangle]
	material  material.Material
}

// TriangleMeshOptions contains optional vertex transforms, applied in field order:
// scale, rotation about Center, then translation.
type TriangleMeshOptions struct {
	Scale     *core.Vec3 // Optional per-axis scale
	Rotation  *core.Vec3 // Optional rotation in radians (X, then Y, then Z)
	Center    *core.Vec3 // Optional center point for rotation
	Translate *core.Vec3 // Optional offset added last
}

// NewTriangleMesh creates a new triangle mesh from vertices and face indices.
// Each group of 3 indices forms a triangle. It panics if faces is empty, not a
// multiple of 3 or references a missing vertex.
func NewTriangleMesh(vertices []core.Vec3, faces []int, mat material.Material, options *TriangleMeshOptions, random *rand.Rand) *TriangleMesh {
	if len(faces) == 0 || len(faces)%3 != 0 {
		panic(fmt.Sprintf("geometry: mesh needs a positive multiple of 3 face indices, got %d", len(faces)))
	}

	workingVertices := vertices
	if options != nil {
		workingVertices = make([]core.Vec3, len(vertices))
		for i, vertex := range vertices {
			workingVertices[i] = options.transform(vertex)
		}
	}

	triangles := make([]Triangle, len(faces)/3)
	for i := range triangles {
		i0, i1, i2 := faces[i*3], faces[i*3+1], faces[i*3+2]
		for _, index := range [3]int{i0, i1, i2} {
			if index < 0 || index >= len(workingVertices) {
				panic(fmt.Sprintf("geometry: face index %d out of bounds (%d vertices)", index, len(workingVertices)))
			}
		}
		triangles[i] = NewTriangle(workingVertices[i0], workingVertices[i1], workingVertices[i2], mat)
	}

	return &TriangleMesh{
		triangles: triangles,
		bvh:       NewBVH(triangles, random),
		material:  mat,
	}
}

func (o *TriangleMeshOptions) transform(vertex core.Vec3) core.Vec3 {
	if o.Scale != nil {
		vertex = vertex.MultiplyVec(*o.Scale)
	}
	if o.Rotation != nil {
		// Translate to center, rotate, then translate back
		if o.Center != nil {
			vertex = vertex.Subtract(*o.Center)
		}
		vertex = vertex.Rotate(*o.Rotation)
		if o.Center != nil {
			vertex = vertex.Add(*o.Center)
		}
	}
	if o.Translate != nil {
		vertex = vertex.Add(*o.Translate)
	}
	return vertex
}

// Hit tests if a ray intersects with any triangle in the mesh
func (tm *TriangleMesh) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return tm.bvh.Hit(ray, tMin, tMax)
}

// BoundingBox returns the axis-aligned bounding box for the entire mesh
func (tm *TriangleMesh) BoundingBox() core.AABB {
	return tm.bvh.BoundingBox()
}

// TriangleCount returns the number of triangles in this mesh
func (tm *TriangleMesh) TriangleCount() int {
	return len(tm.triangles)
}

// Triangles returns the individual triangles
func (tm *TriangleMesh) Triangles() []Triangle {
	return tm.triangles
}

// Material returns the material shared by every triangle
func (tm *TriangleMesh) Material() material.Material {
	return tm.material
}

// BVHStats describes the mesh's internal hierarchy
func (tm *TriangleMesh) BVHStats() BVHStats {
	return tm.bvh.Stats()
}
