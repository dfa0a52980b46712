package core

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func unitBox() AABB {
	return NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
}

func TestAABB_Hit(t *testing.T) {
	box := unitBox()

	tests := []struct {
		name     string
		ray      Ray
		tMin     float64
		tMax     float64
		expected bool
	}{
		{"straight through", NewRay(NewVec3(-1, 0.5, 0.5), NewVec3(1, 0, 0)), 0, math.Inf(1), true},
		{"negative direction", NewRay(NewVec3(2, 0.5, 0.5), NewVec3(-1, 0, 0)), 0, math.Inf(1), true},
		{"diagonal", NewRay(NewVec3(-1, -1, -1), NewVec3(1, 1, 1)), 0, math.Inf(1), true},
		{"pointing away", NewRay(NewVec3(-1, 0.5, 0.5), NewVec3(-1, 0, 0)), 0, math.Inf(1), false},
		{"passes beside", NewRay(NewVec3(-1, 2, 0.5), NewVec3(1, 0, 0)), 0, math.Inf(1), false},
		{"range ends before box", NewRay(NewVec3(-1, 0.5, 0.5), NewVec3(1, 0, 0)), 0, 0.5, false},
		{"range starts after box", NewRay(NewVec3(-1, 0.5, 0.5), NewVec3(1, 0, 0)), 3, 10, false},
		{"origin inside", NewRay(NewVec3(0.5, 0.5, 0.5), NewVec3(0, 0, 1)), 0, math.Inf(1), true},
		{"zero direction component inside slab", NewRay(NewVec3(0.5, -1, 0.5), NewVec3(0, 1, 0)), 0, math.Inf(1), true},
		{"zero direction component outside slab", NewRay(NewVec3(2, -1, 0.5), NewVec3(0, 1, 0)), 0, math.Inf(1), false},
		{"grazing edge", NewRay(NewVec3(-1, 1, 1), NewVec3(1, 0, -1)), 0, math.Inf(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, box.Hit(tt.ray, tt.tMin, tt.tMax))
		})
	}
}

func TestAABB_HitOriginOnFaceWithZeroDirection(t *testing.T) {
	// (min - origin) * Inf is NaN here; the NaN bound must not poison the interval
	box := unitBox()
	ray := NewRay(NewVec3(0, 0.5, -1), NewVec3(0, 0, 1))

	assert.True(t, box.Hit(ray, 0, math.Inf(1)))
}

func TestAABB_UnboundedAlwaysHit(t *testing.T) {
	random := rand.New(rand.NewSource(11))
	box := Unbounded()

	assert.False(t, box.IsBounded())
	for i := 0; i < 100; i++ {
		ray := NewRay(RandomVec3(random, -5, 5), RandomUnitVector(random))
		assert.True(t, box.Hit(ray, 0.001, math.Inf(1)))
	}
	assert.True(t, box.Hit(NewRay(NewVec3(1, 2, 3), NewVec3(0, 0, 1)), 0.001, math.Inf(1)))
}

func TestSurroundingBox_Properties(t *testing.T) {
	random := rand.New(rand.NewSource(5))
	randomBox := func() AABB {
		return NewAABBFromPoints(RandomVec3(random, -10, 10), RandomVec3(random, -10, 10))
	}

	for i := 0; i < 50; i++ {
		a, b, c := randomBox(), randomBox(), randomBox()

		assert.Equal(t, SurroundingBox(a, b), SurroundingBox(b, a), "commutative")
		assert.Equal(t,
			SurroundingBox(SurroundingBox(a, b), c),
			SurroundingBox(a, SurroundingBox(b, c)), "associative")
		assert.Equal(t, a, SurroundingBox(a, a), "idempotent")
	}
}

func TestNewAABBFromPoints(t *testing.T) {
	box := NewAABBFromPoints(NewVec3(1, -2, 3), NewVec3(-1, 5, 0), NewVec3(0, 0, 4))

	assert.Equal(t, NewVec3(-1, -2, 0), box.Min)
	assert.Equal(t, NewVec3(1, 5, 4), box.Max)
	assert.True(t, box.IsBounded())
	assert.Panics(t, func() { NewAABBFromPoints() })
}

func TestAABB_Pad(t *testing.T) {
	flat := NewAABB(NewVec3(0, 0, 2), NewVec3(1, 1, 2))
	padded := flat.Pad(1e-4)

	assert.InDelta(t, 2-0.5e-4, padded.Min.Z, 1e-12)
	assert.InDelta(t, 2+0.5e-4, padded.Max.Z, 1e-12)
	assert.Equal(t, flat.Min.X, padded.Min.X, "wide axes are untouched")

	// A ray crossing the flat box perpendicular to it only hits once padded
	ray := NewRay(NewVec3(0.5, 0.5, 0), NewVec3(0, 0, 1))
	assert.False(t, flat.Hit(ray, 0, math.Inf(1)))
	assert.True(t, padded.Hit(ray, 0, math.Inf(1)))
}
