package material

import (
	"math"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
)

// scatterDielectric either reflects or refracts, choosing by total internal reflection
// and Schlick's Fresnel estimate. Clear glass never absorbs.
func scatterDielectric(refractiveIndex float64, rayIn core.Ray, hit *HitRecord, random *rand.Rand) ScatterResult {
	attenuation := core.NewVec3(1.0, 1.0, 1.0)

	// Determine if we're entering or exiting the material
	refractionRatio := refractiveIndex
	if hit.FrontFace {
		refractionRatio = 1.0 / refractiveIndex
	}

	unitDirection := rayIn.Direction.Normalize()
	cosTheta := math.Min(-unitDirection.Dot(hit.Normal), 1.0)

	var direction core.Vec3
	if CannotRefract(cosTheta, refractionRatio) || Reflectance(cosTheta, refractionRatio) > random.Float64() {
		direction = unitDirection.Reflect(hit.Normal)
	} else {
		direction = unitDirection.Refract(hit.Normal, refractionRatio)
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: attenuation,
	}
}

// CannotRefract reports total internal reflection: Snell's law has no solution when
// refractionRatio * sin(theta) exceeds 1.
func CannotRefract(cosTheta, refractionRatio float64) bool {
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)
	return refractionRatio*sinTheta > 1.0
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
