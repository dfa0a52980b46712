package core

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertVecInDelta(t *testing.T, expected, actual Vec3, delta float64) {
	t.Helper()
	assert.InDelta(t, expected.X, actual.X, delta, "X of %v", actual)
	assert.InDelta(t, expected.Y, actual.Y, delta, "Y of %v", actual)
	assert.InDelta(t, expected.Z, actual.Z, delta, "Z of %v", actual)
}

func TestVec3_Rotate(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec3
		rotation Vec3
		expected Vec3
	}{
		{
			name:     "No rotation",
			vector:   NewVec3(1, 0, 0),
			rotation: NewVec3(0, 0, 0),
			expected: NewVec3(1, 0, 0),
		},
		{
			name:     "90 degree rotation around Z axis",
			vector:   NewVec3(1, 0, 0),
			rotation: NewVec3(0, 0, math.Pi/2),
			expected: NewVec3(0, 1, 0),
		},
		{
			name:     "90 degree rotation around Y axis",
			vector:   NewVec3(1, 0, 0),
			rotation: NewVec3(0, math.Pi/2, 0),
			expected: NewVec3(0, 0, -1),
		},
		{
			name:     "90 degree rotation around X axis",
			vector:   NewVec3(0, 1, 0),
			rotation: NewVec3(math.Pi/2, 0, 0),
			expected: NewVec3(0, 0, 1),
		},
		{
			name:     "Combined rotations",
			vector:   NewVec3(1, 0, 0),
			rotation: NewVec3(0, math.Pi/2, math.Pi/2), // 90° Y then 90° Z
			expected: NewVec3(0, 0, -1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertVecInDelta(t, tt.expected, tt.vector.Rotate(tt.rotation), 1e-9)
		})
	}
}

func TestVec3_ReflectPreservesLength(t *testing.T) {
	random := rand.New(rand.NewSource(7))

	for i := 0; i < 100; i++ {
		v := RandomVec3(random, -5, 5)
		n := RandomUnitVector(random)
		assert.InDelta(t, v.Length(), v.Reflect(n).Length(), 1e-9)
	}
}

func TestVec3_Reflect(t *testing.T) {
	v := NewVec3(1, -1, 0)
	n := NewVec3(0, 1, 0)
	assert.Equal(t, NewVec3(1, 1, 0), v.Reflect(n))
}

func TestVec3_RefractAtNormalIncidence(t *testing.T) {
	v := NewVec3(0, -1, 0)
	n := NewVec3(0, 1, 0)

	refracted := v.Refract(n, 1/1.5)

	assert.InDelta(t, 0.0, refracted.Cross(v).Length(), 1e-12, "refracted ray must stay parallel")
	assert.Greater(t, refracted.Dot(v), 0.0)
}

func TestVec3_RefractBendsTowardNormal(t *testing.T) {
	v := NewVec3(1, -1, 0).Normalize()
	n := NewVec3(0, 1, 0)

	refracted := v.Refract(n, 1/1.5)

	// Snell: sin(out) = sin(in) / 1.5
	sinIn := math.Sqrt(0.5)
	assert.InDelta(t, sinIn/1.5, refracted.X, 1e-9)
	assert.InDelta(t, 1.0, refracted.Length(), 1e-9)
}

func TestVec3_NearZero(t *testing.T) {
	assert.True(t, NewVec3(1e-9, -1e-9, 0).NearZero())
	assert.False(t, NewVec3(1e-9, 1e-7, 0).NearZero())
}

func TestVec3_NormalizeZero(t *testing.T) {
	assert.Equal(t, NewVec3(0, 0, 0), NewVec3(0, 0, 0).Normalize())
	assertVecInDelta(t, NewVec3(0.6, 0.8, 0), NewVec3(3, 4, 0).Normalize(), 1e-12)
}

func TestVec3_CrossAndDot(t *testing.T) {
	x := NewVec3(1, 0, 0)
	y := NewVec3(0, 1, 0)

	assert.Equal(t, NewVec3(0, 0, 1), x.Cross(y))
	assert.Equal(t, 0.0, x.Dot(y))
	assert.Equal(t, 14.0, NewVec3(1, 2, 3).Dot(NewVec3(1, 2, 3)))
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 2, 3), NewVec3(2, 0, -1))

	assert.Equal(t, NewVec3(1, 2, 3), ray.At(0))
	assert.Equal(t, NewVec3(5, 2, 1), ray.At(2))
	assert.Equal(t, NewVec3(-1, 2, 4), ray.At(-1))
}
