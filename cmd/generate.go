package cmd

import (
	"errors"
	"math/rand"

	"github.com/urfave/cli"

	"github.com/df07/go-pathtracer/pkg/scene"
)

// Write a builtin scene to a YAML scene file.
func GenerateScene(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing output scene file argument")
	}

	name := ctx.String("scene")
	random := rand.New(rand.NewSource(ctx.Int64("seed")))

	var (
		spec *scene.SceneSpec
		err  error
	)
	if name == scene.RandomSpheresScene && ctx.IsSet("spheres") {
		spec = scene.RandomSpheresSceneSpec(random, ctx.Int("spheres"))
	} else if spec, err = scene.BuiltinSpec(name, random); err != nil {
		return err
	}

	out := ctx.Args().First()
	if err = scene.WriteSceneSpec(out, spec); err != nil {
		return err
	}

	logger.Noticef("wrote %q scene with %d objects to %s", name, len(spec.Objects), out)
	return nil
}
