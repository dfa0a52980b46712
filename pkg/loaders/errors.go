package loaders

import "errors"

var (
	ErrInvalidHeader     = errors.New("ply: invalid header")
	ErrUnsupportedFormat = errors.New("ply: unsupported format")
	ErrUnsupportedType   = errors.New("ply: unsupported property type")
	ErrMissingPosition   = errors.New("ply: vertex element needs x, y and z properties")
	ErrFaceIndex         = errors.New("ply: face index out of bounds")
)
