package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// ColorSource gives the linear RGB color of a surface at a hit. Textures
// look the color up by the hit's uv; point is the world-space hit position.
// Sources are shared between objects and read from every render worker,
// so Evaluate must not mutate the source.
type ColorSource interface {
	Evaluate(uv core.Vec2, point core.Vec3) core.Vec3
}

var (
	_ ColorSource = (*SolidColor)(nil)
	_ ColorSource = (*ImageTexture)(nil)
)

// SolidColor is the same color everywhere on the surface
type SolidColor struct {
	Color core.Vec3
}

func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

func (s *SolidColor) Evaluate(core.Vec2, core.Vec3) core.Vec3 {
	return s.Color
}
