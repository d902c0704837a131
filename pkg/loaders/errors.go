package loaders

import "errors"

var (
	// ErrUnknownSurface is returned for scene objects with an unsupported type
	ErrUnknownSurface = errors.New("loaders: unknown surface type")

	// ErrUnknownMaterial is returned for unsupported material types and
	// references to materials that were never defined
	ErrUnknownMaterial = errors.New("loaders: unknown material")

	// ErrBadGeometry is returned for malformed mesh or shape data
	ErrBadGeometry = errors.New("loaders: bad geometry")
)
