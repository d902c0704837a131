package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// CameraConfig describes a pinhole camera
type CameraConfig struct {
	Position    core.Vec3 // Eye position
	Direction   core.Vec3 // Viewing direction; when zero, LookAt is used
	LookAt      core.Vec3 // Point the camera looks at
	Up          core.Vec3 // Approximate up vector, defaults to +Y
	FOV         float64   // Vertical field of view in degrees
	AspectRatio float64   // Width / height, defaults to 1
}

// Camera generates primary rays. It has no mutable state.
type Camera struct {
	config     CameraConfig
	origin     core.Vec3
	topLeft    core.Vec3
	horizontal core.Vec3
	vertical   core.Vec3
}

// DefaultFOV is used when the configuration leaves the field of view unset
const DefaultFOV = 60.0

// NewCamera creates a camera from its configuration
func NewCamera(config CameraConfig) *Camera {
	if config.FOV <= 0 {
		config.FOV = DefaultFOV
	}
	if config.AspectRatio <= 0 {
		config.AspectRatio = 1.0
	}
	if config.Up.IsZero() {
		config.Up = core.NewVec3(0, 1, 0)
	}

	forward := config.Direction
	if forward.IsZero() {
		forward = config.LookAt.Subtract(config.Position)
	}
	if forward.IsZero() {
		forward = core.NewVec3(0, 0, 1)
	}
	forward = forward.Normalize()

	right := forward.Cross(config.Up).Normalize()
	if right.IsZero() {
		// Up is parallel to the viewing direction; pick any perpendicular
		right, _ = core.OrthonormalBasis(forward)
	}
	trueUp := right.Cross(forward)

	halfHeight := math.Tan(config.FOV * math.Pi / 360.0)
	halfWidth := halfHeight * config.AspectRatio

	horizontal := right.Multiply(2 * halfWidth)
	vertical := trueUp.Multiply(-2 * halfHeight)
	topLeft := forward.
		Subtract(right.Multiply(halfWidth)).
		Add(trueUp.Multiply(halfHeight))

	return &Camera{
		config:     config,
		origin:     config.Position,
		topLeft:    topLeft,
		horizontal: horizontal,
		vertical:   vertical,
	}
}

// WithAspectRatio returns a camera with the same pose and a new aspect ratio
func (c *Camera) WithAspectRatio(aspectRatio float64) *Camera {
	config := c.config
	config.AspectRatio = aspectRatio
	return NewCamera(config)
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// GetRay generates a ray for normalized screen coordinates (s, t).
// (0, 0) is the top-left corner of the image and (1, 1) the bottom-right.
func (c *Camera) GetRay(s, t float64) core.Ray {
	direction := c.topLeft.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t))

	return core.NewRay(c.origin, direction)
}
