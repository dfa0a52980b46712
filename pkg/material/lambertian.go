package material

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
)

// scatterLambertian scatters around the normal using a uniformly sampled unit vector
func scatterLambertian(albedo core.Vec3, hit *HitRecord, random *rand.Rand) ScatterResult {
	direction := lambertianDirection(hit.Normal, core.RandomUnitVector(random))

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: albedo,
	}
}

// lambertianDirection offsets the normal by a unit vector.
// A sample that cancels the normal would give a zero-length ray, so the normal is used instead.
func lambertianDirection(normal, unit core.Vec3) core.Vec3 {
	direction := normal.Add(unit)
	if direction.NearZero() {
		return normal
	}
	return direction
}
