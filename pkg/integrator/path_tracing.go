package integrator

import (
	"math"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// ShadowAcneEpsilon is the lower bound of the hit interval. Scattered rays start on
// the surface they left, and rounding would otherwise let them re-hit it.
const ShadowAcneEpsilon = 0.001

var (
	horizonColor = core.NewVec3(1.0, 1.0, 1.0)
	zenithColor  = core.NewVec3(0.5, 0.7, 1.0)
)

// PathTracingIntegrator implements unidirectional path tracing with a fixed bounce limit
type PathTracingIntegrator struct {
	MaxDepth int
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(maxDepth int) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		MaxDepth: maxDepth,
	}
}

// RayColor computes the color for a single camera ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Hittable, random *rand.Rand) core.Vec3 {
	return RayColor(ray, world, pt.MaxDepth, random)
}

// RayColor follows ray through the world for at most depth bounces. Each bounce
// multiplies in the material attenuation; absorbed paths and paths that run out
// of depth contribute black, escaped paths the sky gradient.
func RayColor(ray core.Ray, world geometry.Hittable, depth int, random *rand.Rand) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := world.Hit(ray, ShadowAcneEpsilon, math.Inf(1))
	if !isHit {
		return Background(ray)
	}

	scatter, didScatter := hit.Material.Scatter(ray, hit, random)
	if !didScatter {
		return core.Vec3{}
	}

	return scatter.Attenuation.MultiplyVec(RayColor(scatter.Scattered, world, depth-1, random))
}

// Background returns the sky gradient: white at the horizon blending to blue overhead
func Background(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()

	// Use the y-component to create a gradient (map from -1,1 to 0,1)
	t := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-t)*horizon + t*zenith
	return horizonColor.Multiply(1.0 - t).Add(zenithColor.Multiply(t))
}
