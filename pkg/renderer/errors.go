package renderer

import "errors"

var (
	ErrInvalidImageSize   = errors.New("renderer: image width and height must be positive")
	ErrInvalidSampleCount = errors.New("renderer: samples per pixel must be positive")
	ErrInvalidMaxDepth    = errors.New("renderer: max depth must not be negative")
	ErrInvalidTileSize    = errors.New("renderer: tile size must be positive")
	ErrInvalidPassCount   = errors.New("renderer: pass count must be positive")
	ErrInvalidWorkerCount = errors.New("renderer: worker count must not be negative")
	ErrWorkerPoolClosed   = errors.New("renderer: worker pool closed unexpectedly")
)
