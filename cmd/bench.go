package cmd

import (
	"bytes"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// benchResult holds the timings of one sphere-cloud benchmark
type benchResult struct {
	Spheres  int
	Rays     int
	Hits     int
	BuildBVH time.Duration
	List     time.Duration
	BVH      time.Duration
	BVHStats geometry.BVHStats
}

// Compare flat list and BVH intersection on random sphere clouds.
func Bench(ctx *cli.Context) error {
	setupLogging(ctx)

	counts, err := parseCounts(ctx.String("spheres"))
	if err != nil {
		return err
	}
	rays := ctx.Int("rays")
	if rays <= 0 {
		return fmt.Errorf("rays must be positive, got %d", rays)
	}

	results := make([]benchResult, 0, len(counts))
	for _, count := range counts {
		logger.Infof("benchmarking %d spheres with %d rays", count, rays)
		result, err := runBench(count, rays, ctx.Int64("seed"))
		if err != nil {
			return err
		}
		results = append(results, result)
	}

	displayBenchResults(results)
	return nil
}

// parseCounts parses a comma separated list of positive integers
func parseCounts(list string) ([]int, error) {
	var counts []int
	for _, field := range strings.Split(list, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		count, err := strconv.Atoi(field)
		if err != nil || count <= 0 {
			return nil, fmt.Errorf("invalid sphere count %q", field)
		}
		counts = append(counts, count)
	}
	if len(counts) == 0 {
		return nil, fmt.Errorf("no sphere counts in %q", list)
	}
	return counts, nil
}

// runBench traces the same camera rays through a flat list and a BVH of the
// random-spheres scene. Both must agree on how many rays hit something.
func runBench(spheres, rays int, seed int64) (benchResult, error) {
	random := rand.New(rand.NewSource(seed))
	sc, err := scene.RandomSpheresSceneSpec(random, spheres).Build(".", random)
	if err != nil {
		return benchResult{}, err
	}

	camera := sc.NewCamera()
	cameraRays := make([]core.Ray, rays)
	for i := range cameraRays {
		cameraRays[i] = camera.GetRay(random.Float64(), random.Float64(), random)
	}

	start := time.Now()
	bvh := geometry.NewBVH(sc.Shapes, random)
	result := benchResult{
		Spheres:  spheres,
		Rays:     rays,
		BuildBVH: time.Since(start),
		BVHStats: bvh.Stats(),
	}

	var listHits int
	result.List, listHits = traceAll(geometry.NewList(sc.Shapes...), cameraRays)
	result.BVH, result.Hits = traceAll(bvh, cameraRays)
	if listHits != result.Hits {
		return result, fmt.Errorf("list and BVH disagree for %d spheres: %d vs %d hits", spheres, listHits, result.Hits)
	}

	return result, nil
}

func traceAll(world geometry.Hittable, rays []core.Ray) (time.Duration, int) {
	hits := 0
	start := time.Now()
	for _, ray := range rays {
		if _, ok := world.Hit(ray, 0.001, math.Inf(1)); ok {
			hits++
		}
	}
	return time.Since(start), hits
}

func perRay(d time.Duration, rays int) time.Duration {
	return d / time.Duration(rays)
}

func displayBenchResults(results []benchResult) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Spheres", "BVH nodes", "BVH depth", "BVH build", "List/ray", "BVH/ray", "Speedup", "Hit rays"})
	for _, r := range results {
		speedup := 0.0
		if r.BVH > 0 {
			speedup = float64(r.List) / float64(r.BVH)
		}
		table.Append([]string{
			fmt.Sprintf("%d", r.Spheres),
			fmt.Sprintf("%d", r.BVHStats.TotalNodes),
			fmt.Sprintf("%d", r.BVHStats.MaxDepth),
			r.BuildBVH.String(),
			perRay(r.List, r.Rays).String(),
			perRay(r.BVH, r.Rays).String(),
			fmt.Sprintf("%.1fx", speedup),
			fmt.Sprintf("%d / %d", r.Hits, r.Rays),
		})
	}

	table.Render()
	logger.Noticef("intersection benchmark\n%s", buf.String())
}
