package terrain

import "errors"

// Terrain construction and edit errors.
var (
	ErrInvalidResolution = errors.New("resolution must be positive")
	ErrInvalidSize       = errors.New("size must be positive")
	ErrInvalidRadius     = errors.New("stencil radius must be positive")
	ErrUnknownShape      = errors.New("unknown stencil shape")
	ErrNeighborMismatch  = errors.New("neighbor chunk has a different layout")
	ErrSnapshotMismatch  = errors.New("snapshot does not match terrain layout")
)
