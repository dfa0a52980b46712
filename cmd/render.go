package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-pathtracer/pkg/imageio"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene file or builtin scene name argument")
	}

	seed := ctx.Int64("seed")
	random := rand.New(rand.NewSource(seed))

	sc, err := loadScene(ctx.Args().First(), random)
	if err != nil {
		return err
	}
	applyOverrides(ctx, sc)

	world := sc.World(random, !ctx.Bool("no-bvh"))
	rt, err := renderer.NewRaytracer(
		world,
		sc.NewCamera(),
		integrator.NewPathTracingIntegrator(sc.Sampling.MaxDepth),
		sc.Sampling,
		logger,
	)
	if err != nil {
		return err
	}

	var (
		fb    *renderer.Framebuffer
		stats renderer.RenderStats
	)
	if ctx.Bool("sequential") {
		fb, stats = rt.RenderSequential(rand.New(rand.NewSource(seed)))
	} else {
		fb, stats, err = rt.RenderParallel(renderer.ParallelConfig{
			NumWorkers: ctx.Int("workers"),
			TileSize:   ctx.Int("tile-size"),
			Passes:     ctx.Int("passes"),
			Seed:       seed,
		})
		if err != nil {
			return err
		}
	}

	out := ctx.String("out")
	if err = imageio.Save(out, fb.ToRGBA()); err != nil {
		return err
	}

	displayFrameStats(out, sc, stats)
	return nil
}

// applyOverrides replaces scene render settings with explicitly set flags
func applyOverrides(ctx *cli.Context, sc *scene.Scene) {
	if ctx.IsSet("width") {
		sc.Sampling.Width = ctx.Int("width")
	}
	if ctx.IsSet("height") {
		sc.Sampling.Height = ctx.Int("height")
	}
	if ctx.IsSet("spp") {
		sc.Sampling.SamplesPerPixel = ctx.Int("spp")
	}
	if ctx.IsSet("depth") {
		sc.Sampling.MaxDepth = ctx.Int("depth")
	}
	if sc.Sampling.Height > 0 {
		sc.Camera.AspectRatio = sc.Sampling.AspectRatio()
	}
}

func displayFrameStats(out string, sc *scene.Scene, stats renderer.RenderStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Output", "Size", "Primitives", "Workers", "Tasks", "Samples", "Samples/sec", "Render time"})
	table.Append([]string{
		out,
		fmt.Sprintf("%dx%d", sc.Sampling.Width, sc.Sampling.Height),
		fmt.Sprintf("%d", sc.PrimitiveCount()),
		fmt.Sprintf("%d", stats.Workers),
		fmt.Sprintf("%d", stats.Tasks),
		fmt.Sprintf("%d (%.1f spp)", stats.TotalSamples, stats.AverageSamples),
		fmt.Sprintf("%.0f", stats.SamplesPerSecond()),
		stats.Duration.String(),
	})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
