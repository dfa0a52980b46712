package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-pathtracer/pkg/scene"
)

func run(args ...string) error {
	return newApp().Run(append([]string{"go-pathtracer"}, args...))
}

func TestRenderBuiltinScene(t *testing.T) {
	out := filepath.Join(t.TempDir(), "small.png")

	err := run("render", "--width", "16", "--height", "12", "--spp", "2", "--depth", "4",
		"--tile-size", "5", "--passes", "2", "--workers", "3", "-o", out, scene.SmallScene)
	require.NoError(t, err)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, 12, img.Bounds().Dy())
}

func TestRenderIsDeterministicAcrossWorkerCounts(t *testing.T) {
	dir := t.TempDir()
	args := []string{"render", "--width", "9", "--height", "7", "--spp", "3", "--depth", "5", "--tile-size", "4", "--passes", "3"}

	one := filepath.Join(dir, "one.ppm")
	four := filepath.Join(dir, "four.ppm")
	require.NoError(t, run(append(args, "--workers", "1", "-o", one, scene.BoxScene)...))
	require.NoError(t, run(append(args, "--workers", "4", "-o", four, scene.BoxScene)...))

	first, err := os.ReadFile(one)
	require.NoError(t, err)
	second, err := os.ReadFile(four)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRenderSequentialWithoutBVH(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frame.bmp")
	err := run("render", "--sequential", "--no-bvh", "--width", "6", "--height", "4", "--spp", "1", "-o", out, scene.SmallScene)
	require.NoError(t, err)
	assert.FileExists(t, out)
}

func TestGenerateThenRenderSceneFile(t *testing.T) {
	dir := t.TempDir()
	sceneFile := filepath.Join(dir, "spheres.yaml")

	require.NoError(t, run("generate", "--scene", scene.RandomSpheresScene, "--spheres", "20", "--seed", "3", sceneFile))

	spec, err := scene.ReadSceneSpec(sceneFile)
	require.NoError(t, err)
	assert.Len(t, spec.Objects, 20)

	out := filepath.Join(dir, "spheres.png")
	require.NoError(t, run("render", "--width", "8", "--height", "6", "--spp", "1", "-o", out, sceneFile))
	assert.FileExists(t, out)
}

func TestCommandErrors(t *testing.T) {
	dir := t.TempDir()

	assert.Error(t, run("render"), "missing scene argument")
	assert.Error(t, run("render", "-o", filepath.Join(dir, "x.png"), "no-such-scene"))
	assert.Error(t, run("render", "--width", "4", "--height", "4", "--spp", "1", "-o", filepath.Join(dir, "x.jpg"), scene.SmallScene))
	assert.Error(t, run("render", "--spp", "0", "-o", filepath.Join(dir, "x.png"), scene.SmallScene))
	assert.Error(t, run("render", "--width", "4", "--height", "4", "--spp", "1", "--tile-size", "0", "-o", filepath.Join(dir, "x.png"), scene.SmallScene))
	assert.Error(t, run("generate"), "missing output argument")
	assert.Error(t, run("generate", "--scene", "cornell", filepath.Join(dir, "x.yaml")))
	assert.Error(t, run("bench", "--spheres", "ten"))
}

func TestBenchAndListScenes(t *testing.T) {
	require.NoError(t, run("bench", "--spheres", "5,50", "--rays", "200"))
	require.NoError(t, run("list-scenes"))
}
