package material

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestNewMetal_FuzzClamp(t *testing.T) {
	tests := []struct {
		name         string
		inputFuzz    float64
		expectedFuzz float64
	}{
		{"Valid fuzz 0.0", 0.0, 0.0},
		{"Valid fuzz 0.5", 0.5, 0.5},
		{"Valid fuzz 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
	}

	albedo := core.NewVec3(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzz)
			assert.Equal(t, tt.expectedFuzz, metal.Fuzz)
			assert.Equal(t, Metal, metal.Kind)
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.9, 0.9)
	metal := NewMetal(albedo, 0.0)
	random := rand.New(rand.NewSource(42))

	// Ray hitting surface at 45 degrees
	rayIn := core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(0, -1, -1))
	hit := &HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}

	scatter, didScatter := metal.Scatter(rayIn, hit, random)
	require.True(t, didScatter, "Metal should scatter")

	// The incoming direction is reflected unnormalized
	assert.Equal(t, core.NewVec3(0, -1, 1), scatter.Scattered.Direction)
	assert.Equal(t, hit.Point, scatter.Scattered.Origin)
	assert.Equal(t, albedo, scatter.Attenuation)
}

func TestMetal_FuzzyReflectionStaysNearMirror(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.5)
	random := rand.New(rand.NewSource(42))

	rayIn := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	hit := &HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 0, 1)}
	mirror := core.NewVec3(0, 0, 1)

	for i := 0; i < 200; i++ {
		scatter, didScatter := metal.Scatter(rayIn, hit, random)
		require.True(t, didScatter)
		assert.LessOrEqual(t, scatter.Scattered.Direction.Subtract(mirror).Length(), 0.5)
	}
}

func TestMetal_BelowSurfaceScatterIsKept(t *testing.T) {
	// A grazing ray with full fuzz regularly gets pushed below the surface.
	// Those rays are still reported as scattered.
	metal := NewMetal(core.NewVec3(1, 1, 1), 1.0)
	random := rand.New(rand.NewSource(3))

	rayIn := core.NewRay(core.NewVec3(-1, 0.01, 0), core.NewVec3(1, -0.01, 0))
	hit := &HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 1, 0)}

	below := 0
	for i := 0; i < 500; i++ {
		scatter, didScatter := metal.Scatter(rayIn, hit, random)
		require.True(t, didScatter)
		if scatter.Scattered.Direction.Dot(hit.Normal) < 0 {
			below++
		}
	}
	assert.Greater(t, below, 0)
}
