package renderer

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestWorkerPool_ProcessesEveryTask(t *testing.T) {
	config := SamplingConfig{Width: 8, Height: 8, SamplesPerPixel: 1, MaxDepth: 1}
	rt, err := NewRaytracer(nil, MockCamera{}, constantIntegrator(core.NewVec3(0.5, 0.5, 0.5)), config, nil)
	require.NoError(t, err)

	tiles := NewTileGrid(8, 8, 4)
	pool := NewWorkerPool(rt, 3, len(tiles))
	assert.Equal(t, 3, pool.NumWorkers())

	pool.Start()
	for i, tile := range tiles {
		pool.SubmitTask(TileTask{TaskID: i, Tile: tile, Samples: i + 1, Seed: int64(i)})
	}
	pool.Stop()

	seen := make(map[int]bool)
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		assert.False(t, seen[result.TaskID], "task %d delivered twice", result.TaskID)
		seen[result.TaskID] = true

		assert.Equal(t, result.Task.Tile.Bounds, result.Buffer.Bounds())
		assert.Equal(t, 16*(result.TaskID+1), result.Buffer.TotalSamples())
		assert.Equal(t, core.NewVec3(0.5, 0.5, 0.5), result.Buffer.Color(result.Task.Tile.Bounds.Min.X, result.Task.Tile.Bounds.Min.Y))
	}
	assert.Len(t, seen, len(tiles))
	assert.Equal(t, image.Rect(0, 0, 4, 4), tiles[0].Bounds)
}
