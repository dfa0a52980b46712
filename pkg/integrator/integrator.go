package integrator

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the color carried back along ray from the world.
	// Implementations must be safe for concurrent use with distinct generators.
	RayColor(ray core.Ray, world geometry.Hittable, random *rand.Rand) core.Vec3
}
