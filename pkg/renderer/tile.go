package renderer

import (
	"image"
)

// Tile is a rectangular region of the image rendered as one unit of work
type Tile struct {
	ID     int             // Unique tile identifier, row-major from the bottom left
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTileGrid creates a grid of tiles covering the entire image.
// Tiles on the right and top edges are clipped to the image.
func NewTileGrid(width, height, tileSize int) []Tile {
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	tiles := make([]Tile, 0, tilesX*tilesY)
	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width)
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, Tile{
				ID:     len(tiles),
				Bounds: image.Rect(x0, y0, x1, y1),
			})
		}
	}

	return tiles
}

// unitSeed derives the generator seed for one tile in one pass. The inputs are
// mixed with the SplitMix64 finalizer so neighbouring units get unrelated streams.
func unitSeed(seed int64, tileID, pass int) int64 {
	z := uint64(seed)
	for _, v := range [2]uint64{uint64(tileID), uint64(pass)} {
		z += 0x9e3779b97f4a7c15 + v
		z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
		z = (z ^ (z >> 27)) * 0x94d049bb133111eb
		z ^= z >> 31
	}
	return int64(z)
}
