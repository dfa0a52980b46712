package scene

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

var logger = log.New("scene")

// Vector is a point, direction or color stored as a three element sequence
type Vector [3]float64

// Vec3 converts the vector for use by the tracer
func (v Vector) Vec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// VectorOf converts a tracer vector for storage in a scene file
func VectorOf(v core.Vec3) Vector {
	return Vector{v.X, v.Y, v.Z}
}

func vectorPtr(x, y, z float64) *Vector {
	return &Vector{x, y, z}
}

// SceneSpec is the on-disk description of a scene
type SceneSpec struct {
	RenderConfig RenderConfig `yaml:"render_config"`
	Camera       CameraSpec   `yaml:"camera"`
	Objects      []ObjectSpec `yaml:"objects"`
}

// RenderConfig holds the image and sampling settings of a scene file
type RenderConfig struct {
	ImageWidth      int `yaml:"image_width"`
	ImageHeight     int `yaml:"image_height"`
	SamplesPerPixel int `yaml:"samples_per_pixel"`
	MaxDepth        int `yaml:"max_depth"`
}

// CameraSpec positions the camera. A zero focus_dist focuses on lookat.
type CameraSpec struct {
	LookFrom  Vector  `yaml:"lookfrom,flow"`
	LookAt    Vector  `yaml:"lookat,flow"`
	VUp       Vector  `yaml:"vup,flow"`
	VFovDeg   float64 `yaml:"vfov_deg"`
	Aperture  float64 `yaml:"aperture"`
	FocusDist float64 `yaml:"focus_dist"`
}

// ObjectSpec describes one shape. Which fields are read depends on Type:
//
//	sphere:          center, radius (negative radius flips the normals)
//	plane:           center (any point on the plane), normal
//	triangle:        vertices (exactly 3)
//	mesh:            path to a PLY file, or inline vertices and faces;
//	                 optional scale, rotation_deg and translate
//	parallelepiped:  corner, edges (exactly 3)
type ObjectSpec struct {
	Type      string       `yaml:"type"`
	Center    *Vector      `yaml:"center,omitempty,flow"`
	Radius    float64      `yaml:"radius,omitempty"`
	Normal    *Vector      `yaml:"normal,omitempty,flow"`
	Vertices  []Vector     `yaml:"vertices,omitempty,flow"`
	Faces     []int        `yaml:"faces,omitempty,flow"`
	Corner    *Vector      `yaml:"corner,omitempty,flow"`
	Edges     []Vector     `yaml:"edges,omitempty,flow"`
	Path      string       `yaml:"path,omitempty"`
	Scale     *Vector      `yaml:"scale,omitempty,flow"`
	Rotation  *Vector      `yaml:"rotation_deg,omitempty,flow"`
	Translate *Vector      `yaml:"translate,omitempty,flow"`
	Material  MaterialSpec `yaml:"material"`
}

// MaterialSpec describes a material by its kind name and parameters
type MaterialSpec struct {
	Type            string  `yaml:"type"`
	Albedo          *Vector `yaml:"albedo,omitempty,flow"`
	Fuzz            float64 `yaml:"fuzz,omitempty"`
	RefractiveIndex float64 `yaml:"index_of_refraction,omitempty"`
}

// ReadSceneSpec reads a YAML scene file
func ReadSceneSpec(path string) (*SceneSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	spec, err := DecodeSceneSpec(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return spec, nil
}

// DecodeSceneSpec parses a YAML scene. Unknown keys are rejected.
func DecodeSceneSpec(r io.Reader) (*SceneSpec, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var spec SceneSpec
	if err := dec.Decode(&spec); err != nil {
		if err == io.EOF {
			return nil, ErrNoObjects
		}
		return nil, fmt.Errorf("scene: decoding: %w", err)
	}
	if len(spec.Objects) == 0 {
		return nil, ErrNoObjects
	}
	return &spec, nil
}

// WriteSceneSpec stores the scene as YAML at path
func WriteSceneSpec(path string, spec *SceneSpec) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	return EncodeSceneSpec(f, spec)
}

// EncodeSceneSpec writes the scene as YAML
func EncodeSceneSpec(w io.Writer, spec *SceneSpec) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(spec); err != nil {
		return fmt.Errorf("scene: encoding: %w", err)
	}
	return enc.Close()
}

// LoadScene reads a scene file and builds it. Mesh paths resolve relative to the file.
func LoadScene(path string, random *rand.Rand) (*Scene, error) {
	spec, err := ReadSceneSpec(path)
	if err != nil {
		return nil, err
	}
	return spec.Build(filepath.Dir(path), random)
}

// Build turns the description into a renderable scene. Zero render settings fall
// back to renderer.DefaultSamplingConfig. random seeds the mesh BVH construction.
func (s *SceneSpec) Build(baseDir string, random *rand.Rand) (*Scene, error) {
	if len(s.Objects) == 0 {
		return nil, ErrNoObjects
	}

	sampling := s.RenderConfig.samplingConfig()
	scene := &Scene{
		Sampling: sampling,
		Camera:   s.Camera.cameraConfig(sampling.AspectRatio()),
		Shapes:   make([]geometry.Shape, 0, len(s.Objects)),
	}

	for i, object := range s.Objects {
		shape, err := object.build(baseDir, random)
		if err != nil {
			return nil, fmt.Errorf("object %d (%s): %w", i, object.Type, err)
		}
		scene.Shapes = append(scene.Shapes, shape)
	}

	logger.Infof("built scene: %d objects, %d primitives, %dx%d at %d spp",
		len(scene.Shapes), scene.PrimitiveCount(), sampling.Width, sampling.Height, sampling.SamplesPerPixel)

	return scene, nil
}

func (rc RenderConfig) samplingConfig() renderer.SamplingConfig {
	config := renderer.DefaultSamplingConfig()
	if rc.ImageWidth != 0 {
		config.Width = rc.ImageWidth
	}
	if rc.ImageHeight != 0 {
		config.Height = rc.ImageHeight
	}
	if rc.SamplesPerPixel != 0 {
		config.SamplesPerPixel = rc.SamplesPerPixel
	}
	if rc.MaxDepth != 0 {
		config.MaxDepth = rc.MaxDepth
	}
	return config
}

func (c CameraSpec) cameraConfig(aspectRatio float64) renderer.CameraConfig {
	lookFrom, lookAt := c.LookFrom.Vec3(), c.LookAt.Vec3()

	up := c.VUp.Vec3()
	if up == (core.Vec3{}) {
		up = core.NewVec3(0, 1, 0)
	}

	focusDistance := c.FocusDist
	if focusDistance == 0 {
		focusDistance = lookFrom.Subtract(lookAt).Length()
	}

	return renderer.CameraConfig{
		LookFrom:      lookFrom,
		LookAt:        lookAt,
		Up:            up,
		VFovDegrees:   c.VFovDeg,
		AspectRatio:   aspectRatio,
		Aperture:      c.Aperture,
		FocusDistance: focusDistance,
	}
}

func (o ObjectSpec) build(baseDir string, random *rand.Rand) (geometry.Shape, error) {
	mat, err := o.Material.Build()
	if err != nil {
		return geometry.Shape{}, err
	}

	switch strings.ToLower(o.Type) {
	case "sphere":
		if o.Center == nil || o.Radius == 0 {
			return geometry.Shape{}, fmt.Errorf("%w: sphere needs center and a non-zero radius", ErrInvalidObject)
		}
		return geometry.NewSphere(o.Center.Vec3(), o.Radius, mat).AsShape(), nil

	case "plane":
		if o.Center == nil || o.Normal == nil || o.Normal.Vec3() == (core.Vec3{}) {
			return geometry.Shape{}, fmt.Errorf("%w: plane needs center and a non-zero normal", ErrInvalidObject)
		}
		return geometry.NewPlane(o.Center.Vec3(), o.Normal.Vec3(), mat).AsShape(), nil

	case "triangle":
		if len(o.Vertices) != 3 {
			return geometry.Shape{}, fmt.Errorf("%w: triangle needs 3 vertices, got %d", ErrInvalidObject, len(o.Vertices))
		}
		return geometry.NewTriangle(o.Vertices[0].Vec3(), o.Vertices[1].Vec3(), o.Vertices[2].Vec3(), mat).AsShape(), nil

	case "mesh":
		return o.buildMesh(baseDir, mat, random)

	case "parallelepiped", "box":
		if o.Corner == nil || len(o.Edges) != 3 {
			return geometry.Shape{}, fmt.Errorf("%w: parallelepiped needs corner and 3 edges", ErrInvalidObject)
		}
		edges := [3]core.Vec3{o.Edges[0].Vec3(), o.Edges[1].Vec3(), o.Edges[2].Vec3()}
		if edges[0].Cross(edges[1]).Dot(edges[2]) == 0 {
			return geometry.Shape{}, fmt.Errorf("%w: parallelepiped edges are coplanar", ErrInvalidObject)
		}
		return geometry.NewParallelepiped(o.Corner.Vec3(), edges, mat).AsShape(), nil
	}

	return geometry.Shape{}, fmt.Errorf("%w: %q", ErrUnknownShape, o.Type)
}

func (o ObjectSpec) buildMesh(baseDir string, mat material.Material, random *rand.Rand) (geometry.Shape, error) {
	var vertices []core.Vec3
	var faces []int

	switch {
	case o.Path != "" && len(o.Vertices) > 0:
		return geometry.Shape{}, fmt.Errorf("%w: mesh takes either path or inline vertices", ErrInvalidObject)
	case o.Path != "":
		path := o.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		data, err := loaders.LoadPLY(path)
		if err != nil {
			return geometry.Shape{}, err
		}
		vertices, faces = data.Vertices, data.Faces
	default:
		vertices = make([]core.Vec3, len(o.Vertices))
		for i, v := range o.Vertices {
			vertices[i] = v.Vec3()
		}
		faces = o.Faces
		for _, index := range faces {
			if index < 0 || index >= len(vertices) {
				return geometry.Shape{}, fmt.Errorf("%w: face index %d out of bounds (%d vertices)", ErrInvalidObject, index, len(vertices))
			}
		}
	}

	if len(faces) == 0 || len(faces)%3 != 0 {
		return geometry.Shape{}, fmt.Errorf("%w: mesh needs a positive multiple of 3 face indices, got %d", ErrInvalidObject, len(faces))
	}

	return geometry.NewTriangleMesh(vertices, faces, mat, o.meshOptions(vertices), random).AsShape(), nil
}

// meshOptions rotates about the centroid of the untransformed vertices
func (o ObjectSpec) meshOptions(vertices []core.Vec3) *geometry.TriangleMeshOptions {
	if o.Scale == nil && o.Rotation == nil && o.Translate == nil {
		return nil
	}

	options := &geometry.TriangleMeshOptions{}
	if o.Scale != nil {
		scale := o.Scale.Vec3()
		options.Scale = &scale
	}
	if o.Rotation != nil {
		degrees := o.Rotation.Vec3()
		radians := degrees.Multiply(math.Pi / 180)
		options.Rotation = &radians

		var centroid core.Vec3
		for _, v := range vertices {
			centroid = centroid.Add(v)
		}
		centroid = centroid.Multiply(1 / float64(len(vertices)))
		if options.Scale != nil {
			centroid = centroid.MultiplyVec(*options.Scale)
		}
		options.Center = &centroid
	}
	if o.Translate != nil {
		translate := o.Translate.Vec3()
		options.Translate = &translate
	}
	return options
}

// Build creates the material
func (m MaterialSpec) Build() (material.Material, error) {
	kind, ok := material.ParseKind(m.Type)
	if !ok {
		return material.Material{}, fmt.Errorf("%w: %q", ErrUnknownMaterial, m.Type)
	}

	albedo := core.NewVec3(0, 0, 0)
	if m.Albedo != nil {
		albedo = m.Albedo.Vec3()
	}

	switch kind {
	case material.Lambertian:
		return material.NewLambertian(albedo), nil
	case material.Metal:
		return material.NewMetal(albedo, m.Fuzz), nil
	case material.Dielectric:
		if m.RefractiveIndex <= 0 {
			return material.Material{}, fmt.Errorf("%w: dielectric needs a positive index_of_refraction", ErrInvalidObject)
		}
		return material.NewDielectric(m.RefractiveIndex), nil
	default:
		return material.NewBlackBody(), nil
	}
}

// MaterialSpecOf describes an existing material
func MaterialSpecOf(m material.Material) MaterialSpec {
	spec := MaterialSpec{Type: m.Kind.String()}
	switch m.Kind {
	case material.Lambertian:
		albedo := VectorOf(m.Albedo)
		spec.Albedo = &albedo
	case material.Metal:
		albedo := VectorOf(m.Albedo)
		spec.Albedo = &albedo
		spec.Fuzz = m.Fuzz
	case material.Dielectric:
		spec.RefractiveIndex = m.RefractiveIndex
	}
	return spec
}
