package material

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Kind identifies a material variant
type Kind uint8

const (
	Lambertian Kind = iota // Perfectly diffuse
	Metal                  // Specular reflection with optional fuzz
	Dielectric             // Glass-like reflection and refraction
	BlackBody              // Absorbs everything
)

var kindNames = [...]string{
	Lambertian: "lambertian",
	Metal:      "metal",
	Dielectric: "dielectric",
	BlackBody:  "blackbody",
}

// String returns the scene-file name of the kind
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ParseKind maps a scene-file name (case-insensitive) to a Kind
func ParseKind(name string) (Kind, bool) {
	for kind, kindName := range kindNames {
		if strings.EqualFold(name, kindName) {
			return Kind(kind), true
		}
	}
	return 0, false
}

// Material is a closed set of scattering models. Only the fields used by Kind are
// meaningful. Materials are plain values: copy them freely, never mutate them.
type Material struct {
	Kind            Kind
	Albedo          core.Vec3 // Lambertian and Metal
	Fuzz            float64   // Metal: 0.0 = perfect mirror, 1.0 = very fuzzy
	RefractiveIndex float64   // Dielectric
}

// NewLambertian creates a new lambertian material
func NewLambertian(albedo core.Vec3) Material {
	return Material{Kind: Lambertian, Albedo: albedo}
}

// NewMetal creates a new metal material. fuzz is clamped to [0, 1].
func NewMetal(albedo core.Vec3, fuzz float64) Material {
	return Material{Kind: Metal, Albedo: albedo, Fuzz: max(0, min(1, fuzz))}
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64) Material {
	return Material{Kind: Dielectric, RefractiveIndex: refractiveIndex}
}

// NewBlackBody creates a material that never scatters
func NewBlackBody() Material {
	return Material{Kind: BlackBody}
}

// Scatter computes the outgoing ray and attenuation for a ray hitting this material.
// The boolean is false when the light is absorbed.
func (m Material) Scatter(rayIn core.Ray, hit *HitRecord, random *rand.Rand) (ScatterResult, bool) {
	switch m.Kind {
	case Lambertian:
		return scatterLambertian(m.Albedo, hit, random), true
	case Metal:
		return scatterMetal(m.Albedo, m.Fuzz, rayIn, hit, random), true
	case Dielectric:
		return scatterDielectric(m.RefractiveIndex, rayIn, hit, random), true
	default:
		return ScatterResult{}, false
	}
}

// String describes the material for logs
func (m Material) String() string {
	switch m.Kind {
	case Lambertian:
		return fmt.Sprintf("lambertian(albedo=%v)", m.Albedo)
	case Metal:
		return fmt.Sprintf("metal(albedo=%v, fuzz=%g)", m.Albedo, m.Fuzz)
	case Dielectric:
		return fmt.Sprintf("dielectric(ior=%g)", m.RefractiveIndex)
	default:
		return m.Kind.String()
	}
}
