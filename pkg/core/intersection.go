package core

// Intersection contains information about a ray-surface hit
type Intersection struct {
	Distance float64 // Distance along the ray, always > Epsilon
	Position Vec3    // Point of intersection
	Incident Vec3    // Direction of the incoming ray
	Normal   Vec3    // Interpolated unit surface normal
	UV       Vec2    // Interpolated texture coordinates
}

// FrontFace reports whether the ray arrived against the normal
func (i Intersection) FrontFace() bool {
	return i.Incident.Dot(i.Normal) < 0
}

// FacingNormal returns the normal flipped to the side the ray came from
func (i Intersection) FacingNormal() Vec3 {
	if i.FrontFace() {
		return i.Normal
	}
	return i.Normal.Negate()
}
