package scene

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Sampling renderer.SamplingConfig
	Camera   renderer.CameraConfig
	Shapes   []geometry.Shape
}

// NewCamera creates the camera described by the scene
func (s *Scene) NewCamera() *renderer.LensCamera {
	return renderer.NewLensCamera(s.Camera)
}

// World assembles the shapes into something a ray can be traced against. With
// useBVH the bounded shapes go into a BVH and unbounded ones (planes) are tested
// linearly next to it; otherwise every shape sits in one flat list.
func (s *Scene) World(random *rand.Rand, useBVH bool) geometry.Hittable {
	if !useBVH {
		return geometry.NewList(s.Shapes...)
	}

	var bounded, unbounded []geometry.Shape
	for _, shape := range s.Shapes {
		if shape.IsBounded() {
			bounded = append(bounded, shape)
		} else {
			unbounded = append(unbounded, shape)
		}
	}

	if len(bounded) == 0 {
		return geometry.NewList(unbounded...)
	}
	bvh := geometry.NewBVH(bounded, random)
	if len(unbounded) == 0 {
		return bvh
	}
	return geometry.NewList[geometry.Hittable](bvh, geometry.NewList(unbounded...))
}

// PrimitiveCount returns the number of primitives after expanding meshes and boxes
func (s *Scene) PrimitiveCount() int {
	count := 0
	for _, shape := range s.Shapes {
		count += shape.PrimitiveCount()
	}
	return count
}
