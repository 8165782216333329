package scene

import "math"

// QuadraticSolve returns the nearest non-negative root of a*t² + b*t + c = 0.
// The smaller root (-b-√d)/2a is preferred; when it lies behind the origin
// the larger one is tried. A negative discriminant, a zero leading
// coefficient or two negative roots all yield false.
func QuadraticSolve(a, b, c float64) (float64, bool) {
	if a == 0 {
		return 0, false
	}
	discr := b*b - 4*a*c
	if discr < 0 {
		return 0, false
	}
	sq := math.Sqrt(discr)
	if t := (-b - sq) / (2 * a); t >= 0 {
		return t, true
	}
	if t := (-b + sq) / (2 * a); t >= 0 {
		return t, true
	}
	return 0, false
}

// quadraticRoots returns both real roots in ascending order.
func quadraticRoots(a, b, c float64) (t0, t1 float64, ok bool) {
	if a == 0 {
		return 0, 0, false
	}
	discr := b*b - 4*a*c
	if discr < 0 {
		return 0, 0, false
	}
	sq := math.Sqrt(discr)
	t0 = (-b - sq) / (2 * a)
	t1 = (-b + sq) / (2 * a)
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	return t0, t1, true
}
