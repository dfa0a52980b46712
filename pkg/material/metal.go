package material

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
)

// scatterMetal reflects the incoming direction and perturbs it by fuzz.
// Rays perturbed below the surface are not rejected; they keep propagating.
func scatterMetal(albedo core.Vec3, fuzz float64, rayIn core.Ray, hit *HitRecord, random *rand.Rand) ScatterResult {
	reflected := rayIn.Direction.Reflect(hit.Normal)
	if fuzz > 0 {
		reflected = reflected.Add(core.RandomInUnitSphere(random).Multiply(fuzz))
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, reflected),
		Attenuation: albedo,
	}
}
