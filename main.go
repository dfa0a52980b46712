package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-pathtracer/cmd"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

var logger = log.New("pathtracer")

func newApp() *cli.App {
	sampling := renderer.DefaultSamplingConfig()
	parallel := renderer.DefaultParallelConfig()

	app := cli.NewApp()
	app.Name = "go-pathtracer"
	app.Usage = "render scenes using Monte Carlo path tracing on the CPU"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a single frame",
			Description: `
Render a scene file or one of the builtin scenes (see list-scenes) to an image.
The image format follows the output extension: png, bmp, tif/tiff or ppm.

Image size, samples and depth come from the scene unless overridden by flags.
Parallel renders with the same seed, tile size and passes produce the same
image for any number of workers.`,
			ArgsUsage: "scene.yaml | builtin-scene",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame",
				},
				cli.IntFlag{
					Name:  "width",
					Value: sampling.Width,
					Usage: "frame width (overrides the scene)",
				},
				cli.IntFlag{
					Name:  "height",
					Value: sampling.Height,
					Usage: "frame height (overrides the scene)",
				},
				cli.IntFlag{
					Name:  "spp",
					Value: sampling.SamplesPerPixel,
					Usage: "samples per pixel (overrides the scene)",
				},
				cli.IntFlag{
					Name:  "depth",
					Value: sampling.MaxDepth,
					Usage: "maximum ray bounces (overrides the scene)",
				},
				cli.IntFlag{
					Name:  "workers",
					Value: parallel.NumWorkers,
					Usage: "number of render workers, 0 uses every CPU",
				},
				cli.IntFlag{
					Name:  "tile-size",
					Value: parallel.TileSize,
					Usage: "edge length of the square render tiles",
				},
				cli.IntFlag{
					Name:  "passes",
					Value: parallel.Passes,
					Usage: "number of passes the samples of every pixel are split into",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: parallel.Seed,
					Usage: "random seed",
				},
				cli.BoolFlag{
					Name:  "sequential",
					Usage: "render on a single goroutine",
				},
				cli.BoolFlag{
					Name:  "no-bvh",
					Usage: "intersect against a flat list instead of a BVH",
				},
			},
			Action: cmd.RenderFrame,
		},
		{
			Name:      "generate",
			Usage:     "write a builtin scene to a YAML scene file",
			ArgsUsage: "scene.yaml",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene, s",
					Value: "random-large",
					Usage: "builtin scene to write",
				},
				cli.IntFlag{
					Name:  "spheres",
					Value: 100,
					Usage: "sphere count for the random-spheres scene",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: parallel.Seed,
					Usage: "random seed for the random scenes",
				},
			},
			Action: cmd.GenerateScene,
		},
		{
			Name:  "bench",
			Usage: "compare flat list and BVH intersection on random sphere clouds",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "spheres",
					Value: "10,100,500,1000",
					Usage: "comma separated sphere counts",
				},
				cli.IntFlag{
					Name:  "rays",
					Value: 100000,
					Usage: "camera rays traced per sphere count",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: parallel.Seed,
					Usage: "random seed",
				},
			},
			Action: cmd.Bench,
		},
		{
			Name:   "list-scenes",
			Usage:  "list the builtin scenes",
			Action: cmd.ListScenes,
		},
	}

	return app
}

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	if err := newApp().Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
