package math3d

// Ray is a half line starting at Origin. Direction is unit length by
// convention; nothing enforces it.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a ray with the given origin and direction.
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Nudge returns a ray with the same direction whose origin has been moved eps
// along it. Secondary rays use it to escape the surface they start on.
func (r Ray) Nudge(eps float64) Ray {
	return Ray{Origin: r.At(eps), Direction: r.Direction}
}
