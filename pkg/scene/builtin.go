package scene

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Builtin scene names
const (
	SmallScene         = "small"
	RandomLargeScene   = "random-large"
	RandomSpheresScene = "random-spheres"
	BoxScene           = "boxes"
)

// DefaultRandomSpheres is the sphere count of the random-spheres builtin
const DefaultRandomSpheres = 100

var builtins = map[string]struct {
	description string
	build       func(random *rand.Rand) *SceneSpec
}{
	SmallScene: {
		"ground plane with diffuse, hollow glass and mirror spheres",
		func(*rand.Rand) *SceneSpec { return SmallSceneSpec() },
	},
	RandomLargeScene: {
		"grid of small random spheres around three large ones",
		RandomLargeSceneSpec,
	},
	RandomSpheresScene: {
		fmt.Sprintf("%d random diffuse spheres in a 40 unit cube", DefaultRandomSpheres),
		func(random *rand.Rand) *SceneSpec { return RandomSpheresSceneSpec(random, DefaultRandomSpheres) },
	},
	BoxScene: {
		"parallelepipeds and a triangle on a ground plane",
		func(*rand.Rand) *SceneSpec { return BoxSceneSpec() },
	},
}

// BuiltinNames returns the builtin scene names in sorted order
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuiltinDescription returns a one line summary of a builtin scene
func BuiltinDescription(name string) string {
	return builtins[name].description
}

// BuiltinSpec creates the named builtin scene. random drives the random scenes.
func BuiltinSpec(name string, random *rand.Rand) (*SceneSpec, error) {
	builtin, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return builtin.build(random), nil
}

func sphereSpec(center core.Vec3, radius float64, mat material.Material) ObjectSpec {
	c := VectorOf(center)
	return ObjectSpec{Type: "sphere", Center: &c, Radius: radius, Material: MaterialSpecOf(mat)}
}

// benchmarkCamera looks from above and behind at the small scene
func benchmarkCamera() CameraSpec {
	return CameraSpec{
		LookFrom:  Vector{-2, 2, 1},
		LookAt:    Vector{0, 0, -1},
		VUp:       Vector{0, 1, 0},
		VFovDeg:   90,
		Aperture:  0,
		FocusDist: 10,
	}
}

// SmallSceneSpec is a ground plane with a diffuse sphere flanked by a hollow glass
// sphere and a mirror sphere.
func SmallSceneSpec() *SceneSpec {
	blue := core.NewVec3(0.1, 0.2, 0.5)
	glass := material.NewDielectric(1.5)

	return &SceneSpec{
		RenderConfig: RenderConfig{ImageWidth: 400, ImageHeight: 300, SamplesPerPixel: 100, MaxDepth: 50},
		Camera:       benchmarkCamera(),
		Objects: []ObjectSpec{
			{
				Type:     "plane",
				Center:   vectorPtr(0, -0.5, 0),
				Normal:   vectorPtr(0, 1, 0),
				Material: MaterialSpecOf(material.NewLambertian(blue)),
			},
			sphereSpec(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(blue)),
			sphereSpec(core.NewVec3(-1, 0, -1), 0.5, glass),
			sphereSpec(core.NewVec3(-1, 0, -1), -0.45, glass),
			sphereSpec(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(blue, 0)),
		},
	}
}

// RandomLargeSceneSpec scatters small spheres of random material on a grid around
// three large spheres. Spheres too close to the large metal sphere are skipped.
func RandomLargeSceneSpec(random *rand.Rand) *SceneSpec {
	objects := []ObjectSpec{
		sphereSpec(core.NewVec3(0, -1000, -1), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
	}

	clearance := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := random.Float64()
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())

			if center.Subtract(clearance).Length() <= 0.9 {
				continue
			}

			var mat material.Material
			switch {
			case chooseMat < 0.8:
				mat = material.NewLambertian(core.RandomColor(random).MultiplyVec(core.RandomColor(random)))
			case chooseMat < 0.95:
				albedo := core.RandomVec3(random, 0.5, 1)
				mat = material.NewMetal(albedo, 0.5*random.Float64())
			default:
				mat = material.NewDielectric(1.5)
			}
			objects = append(objects, sphereSpec(center, 0.2, mat))
		}
	}

	objects = append(objects,
		sphereSpec(core.NewVec3(0, 1, 0), 1, material.NewDielectric(1.5)),
		sphereSpec(core.NewVec3(-4, 1, 0), 1, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		sphereSpec(core.NewVec3(4, 1, 0), 1, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0)),
	)

	return &SceneSpec{
		RenderConfig: RenderConfig{ImageWidth: 1200, ImageHeight: 800, SamplesPerPixel: 500, MaxDepth: 50},
		Camera: CameraSpec{
			LookFrom:  Vector{13, 2, 3},
			LookAt:    Vector{0, 0, 0},
			VUp:       Vector{0, 1, 0},
			VFovDeg:   20,
			Aperture:  0.1,
			FocusDist: 10,
		},
		Objects: objects,
	}
}

// RandomSpheresSceneSpec places n diffuse spheres with centers in [-20, 20)^3 and
// radii in [0, 0.5). It is the intersection benchmark workload.
func RandomSpheresSceneSpec(random *rand.Rand, n int) *SceneSpec {
	blue := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))

	objects := make([]ObjectSpec, 0, n)
	for i := 0; i < n; i++ {
		radius := 0.5 * random.Float64()
		center := core.RandomVec3(random, -20, 20)
		objects = append(objects, sphereSpec(center, radius, blue))
	}

	return &SceneSpec{
		RenderConfig: RenderConfig{ImageWidth: 400, ImageHeight: 300, SamplesPerPixel: 16, MaxDepth: 50},
		Camera:       benchmarkCamera(),
		Objects:      objects,
	}
}

// BoxSceneSpec exercises the flat primitives: a slanted box, a cube, a floating
// triangle and a ground plane.
func BoxSceneSpec() *SceneSpec {
	return &SceneSpec{
		RenderConfig: RenderConfig{ImageWidth: 400, ImageHeight: 300, SamplesPerPixel: 100, MaxDepth: 50},
		Camera: CameraSpec{
			LookFrom: Vector{0, 1.5, 4},
			LookAt:   Vector{0, 0.5, 0},
			VUp:      Vector{0, 1, 0},
			VFovDeg:  45,
		},
		Objects: []ObjectSpec{
			{
				Type:     "plane",
				Center:   vectorPtr(0, 0, 0),
				Normal:   vectorPtr(0, 1, 0),
				Material: MaterialSpecOf(material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
			},
			{
				Type:     "parallelepiped",
				Corner:   vectorPtr(-1.6, 0, -0.5),
				Edges:    []Vector{{1, 0, 0.3}, {0, 1.2, 0}, {-0.3, 0, 1}},
				Material: MaterialSpecOf(material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2))),
			},
			{
				Type:     "parallelepiped",
				Corner:   vectorPtr(0.5, 0, -0.4),
				Edges:    []Vector{{0.8, 0, 0}, {0, 0.8, 0}, {0, 0, 0.8}},
				Material: MaterialSpecOf(material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.05)),
			},
			{
				Type:     "triangle",
				Vertices: []Vector{{-0.5, 0.3, 0.8}, {0.5, 0.3, 0.8}, {0, 1.3, 0.6}},
				Material: MaterialSpecOf(material.NewDielectric(1.5)),
			},
		},
	}
}
