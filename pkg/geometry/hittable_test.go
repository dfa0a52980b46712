package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

func TestList_ClosestHitWins(t *testing.T) {
	far := NewSphere(core.NewVec3(0, 0, -5), 0.5, material.NewMetal(core.NewVec3(1, 1, 1), 0))
	near := NewSphere(core.NewVec3(0, 0, -2), 0.5, material.NewDielectric(1.5))

	// Order must not matter
	for _, list := range []List[Sphere]{NewList(far, near), NewList(near, far)} {
		hit, isHit := list.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1))
		require.True(t, isHit)
		assert.InDelta(t, 1.5, hit.T, 1e-12)
		assert.Equal(t, material.Dielectric, hit.Material.Kind)
	}
}

func TestList_MissAndEmpty(t *testing.T) {
	list := NewList(NewSphere(core.NewVec3(0, 0, -2), 0.5, testMaterial))
	_, isHit := list.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), 0.001, math.Inf(1))
	assert.False(t, isHit)

	var empty List[Shape]
	_, isHit = empty.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), 0.001, math.Inf(1))
	assert.False(t, isHit)
	assert.Panics(t, func() { empty.BoundingBox() })
}

func TestList_BoundingBox(t *testing.T) {
	list := NewList(
		NewSphere(core.NewVec3(0, 0, 0), 1, testMaterial).AsShape(),
		NewSphere(core.NewVec3(5, 1, -2), 0.5, testMaterial).AsShape(),
	)

	box := list.BoundingBox()
	assert.Equal(t, core.NewVec3(-1, -1, -2.5), box.Min)
	assert.Equal(t, core.NewVec3(5.5, 1.5, 1), box.Max)
}

func TestShape_Dispatch(t *testing.T) {
	metal := material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.2)
	vertices, faces := unitQuad()

	tests := []struct {
		name       string
		shape      Shape
		kind       ShapeKind
		primitives int
	}{
		{"sphere", NewSphere(core.NewVec3(0, 0, 0), 1, metal).AsShape(), SphereShape, 1},
		{"plane", NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), metal).AsShape(), PlaneShape, 1},
		{"triangle", NewTriangle(core.NewVec3(-1, -1, 0), core.NewVec3(2, -1, 0), core.NewVec3(-1, 2, 0), metal).AsShape(), TriangleShape, 1},
		{"mesh", NewTriangleMesh(vertices, faces, metal, nil, rand.New(rand.NewSource(1))).AsShape(), MeshShape, len(faces) / 3},
		{"parallelepiped", NewParallelepiped(core.NewVec3(-1, -1, -1), [3]core.Vec3{{X: 2}, {Y: 2}, {Z: 2}}, metal).AsShape(), ParallelepipedShape, 12},
	}

	ray := core.NewRay(core.NewVec3(0.2, 0.1, 5), core.NewVec3(0, 0, -1))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.shape.Kind())
			assert.Equal(t, tt.name, tt.shape.Kind().String())
			assert.Equal(t, metal, tt.shape.Material())
			assert.Equal(t, tt.kind != PlaneShape, tt.shape.IsBounded())
			assert.NotEmpty(t, tt.shape.String())
			assert.Equal(t, tt.primitives, tt.shape.PrimitiveCount())

			hit, isHit := tt.shape.Hit(ray, 0.001, math.Inf(1))
			require.True(t, isHit)
			assert.True(t, hit.FrontFace)
			assert.Equal(t, metal, hit.Material)
			assert.True(t, tt.shape.BoundingBox().Hit(ray, 0.001, math.Inf(1)))
		})
	}
}

func TestShape_UnknownKindPanics(t *testing.T) {
	bogus := Shape{kind: ShapeKind(42)}
	assert.Panics(t, func() { bogus.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)), 0, 1) })
	assert.Equal(t, "ShapeKind(42)", bogus.Kind().String())
}
