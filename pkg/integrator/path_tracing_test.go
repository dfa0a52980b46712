package integrator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

func assertColorInDelta(t *testing.T, expected, actual core.Vec3, delta float64) {
	t.Helper()
	assert.InDelta(t, expected.X, actual.X, delta, "r")
	assert.InDelta(t, expected.Y, actual.Y, delta, "g")
	assert.InDelta(t, expected.Z, actual.Z, delta, "b")
}

// createTestWorld creates a single sphere in front of the origin
func createTestWorld(mat material.Material) geometry.Hittable {
	return geometry.NewList(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, mat))
}

func TestBackground(t *testing.T) {
	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"horizontal", core.NewVec3(1, 0, 0), core.NewVec3(0.75, 0.85, 1.0)},
		{"straight up", core.NewVec3(0, 3, 0), core.NewVec3(0.5, 0.7, 1.0)},
		{"straight down", core.NewVec3(0, -1, 0), core.NewVec3(1, 1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertColorInDelta(t, tt.expected, Background(core.NewRay(core.Vec3{}, tt.direction)), 1e-12)
		})
	}
}

func TestRayColor_DepthZeroIsBlack(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	world := createTestWorld(material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3)))

	// Both a hitting and a missing ray
	for _, direction := range []core.Vec3{core.NewVec3(0, 0, -1), core.NewVec3(0, 1, 0)} {
		color := RayColor(core.NewRay(core.Vec3{}, direction), world, 0, random)
		assert.Equal(t, core.Vec3{}, color)

		color = RayColor(core.NewRay(core.Vec3{}, direction), world, -3, random)
		assert.Equal(t, core.Vec3{}, color)
	}
}

func TestRayColor_MissReturnsBackground(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	world := createTestWorld(material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3)))

	color := RayColor(core.NewRay(core.Vec3{}, core.NewVec3(1, 0, 0)), world, 1, random)
	assertColorInDelta(t, core.NewVec3(0.75, 0.85, 1.0), color, 1e-12)
}

func TestRayColor_BlackBodyIsBlack(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	world := createTestWorld(material.NewBlackBody())

	color := RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), world, 50, random)
	assert.Equal(t, core.Vec3{}, color)
}

func TestRayColor_MirrorReflectsSky(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	albedo := core.NewVec3(0.8, 0.6, 0.4)
	world := createTestWorld(material.NewMetal(albedo, 0))

	// Reflects straight back along +z, a horizontal escape
	color := RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), world, 2, random)
	assertColorInDelta(t, albedo.MultiplyVec(core.NewVec3(0.75, 0.85, 1.0)), color, 1e-12)

	// One bounce is spent on the hit, leaving none for the reflected ray
	color = RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), world, 1, random)
	assert.Equal(t, core.Vec3{}, color)
}

func TestRayColor_ClearGlassIsTransparent(t *testing.T) {
	world := createTestWorld(material.NewDielectric(1.0))
	random := rand.New(rand.NewSource(42))

	// An index of 1 neither bends nor reflects a head-on ray
	color := RayColor(core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1)), world, 5, random)
	assertColorInDelta(t, Background(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))), color, 1e-12)
}

func TestRayColor_DiffuseStaysInGamut(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	world := geometry.NewList(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))).AsShape(),
		geometry.NewPlane(core.NewVec3(0, -0.5, 0), core.NewVec3(0, 1, 0), material.NewLambertian(core.NewVec3(0.8, 0.8, 0))).AsShape(),
	)

	var sum core.Vec3
	const samples = 500
	for i := 0; i < samples; i++ {
		color := RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), world, 10, random)
		require.False(t, math.IsNaN(color.X) || math.IsNaN(color.Y) || math.IsNaN(color.Z))
		for _, c := range []float64{color.X, color.Y, color.Z} {
			assert.GreaterOrEqual(t, c, 0.0)
			assert.LessOrEqual(t, c, 1.0)
		}
		sum = sum.Add(color)
	}

	// A grey sphere under a sky is lit, but darker than the sky itself
	mean := sum.Divide(samples)
	assert.Greater(t, luminance(mean), 0.05)
	assert.Less(t, luminance(mean), 0.75)
}

func luminance(c core.Vec3) float64 {
	return 0.299*c.X + 0.587*c.Y + 0.114*c.Z
}

func TestPathTracingIntegrator_UsesMaxDepth(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	world := createTestWorld(material.NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0))
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))

	var integrator Integrator = NewPathTracingIntegrator(0)
	assert.Equal(t, core.Vec3{}, integrator.RayColor(ray, world, random))

	integrator = NewPathTracingIntegrator(50)
	assert.NotEqual(t, core.Vec3{}, integrator.RayColor(ray, world, random))
}

func BenchmarkRayColor(b *testing.B) {
	random := rand.New(rand.NewSource(42))
	world := geometry.NewList(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))).AsShape(),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, material.NewDielectric(1.5)).AsShape(),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)).AsShape(),
		geometry.NewPlane(core.NewVec3(0, -0.5, 0), core.NewVec3(0, 1, 0), material.NewLambertian(core.NewVec3(0.8, 0.8, 0))).AsShape(),
	)
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0.1, -0.05, -1))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		RayColor(ray, world, 50, random)
	}
}
