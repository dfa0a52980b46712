package cmd

import (
	"math/rand"
	"os"

	"github.com/df07/go-pathtracer/pkg/scene"
)

// loadScene treats arg as a scene file if one exists at that path and as a
// builtin scene name otherwise.
func loadScene(arg string, random *rand.Rand) (*scene.Scene, error) {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		logger.Infof("loading scene file %s", arg)
		return scene.LoadScene(arg, random)
	}

	spec, err := scene.BuiltinSpec(arg, random)
	if err != nil {
		return nil, err
	}
	logger.Infof("using builtin scene %q", arg)
	return spec.Build(".", random)
}
