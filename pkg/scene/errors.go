package scene

import "errors"

var (
	ErrUnknownShape    = errors.New("scene: unknown object type")
	ErrUnknownMaterial = errors.New("scene: unknown material type")
	ErrNoObjects       = errors.New("scene: scene has no objects")
	ErrInvalidObject   = errors.New("scene: invalid object")
	ErrUnknownScene    = errors.New("scene: unknown builtin scene")
)
