package scene

import (
	"fmt"
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
)

// Kind identifies the shape a Primitive describes.
type Kind int

const (
	Sphere   Kind = iota // Center, Radius
	Plane                // Point, Axis (unit normal), infinite
	Cone                 // Point (apex), Axis (opening direction), Angle (half-angle)
	Cylinder             // Point (on axis), Axis (unit), Radius, infinite
)

func (k Kind) String() string {
	switch k {
	case Sphere:
		return "sphere"
	case Plane:
		return "plane"
	case Cone:
		return "cone"
	case Cylinder:
		return "cylinder"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Material describes how a surface responds to light.
type Material struct {
	Color        Color
	Reflectivity float64 // 0 = matte, 1 = perfect mirror
	// RefractiveIndex is stored for scene files that carry it. Rays are
	// never bent by it.
	RefractiveIndex float64
}

// Hit is the nearest intersection of a ray with a primitive.
type Hit struct {
	Position math3d.Vec3
	Distance float64
	Normal   math3d.Vec3
}

// Primitive is a renderable surface. The fields in use depend on Kind; the
// constructors fill the right ones and normalize directions.
type Primitive struct {
	Kind     Kind
	Point    math3d.Vec3 // sphere center, plane point, cone apex, cylinder axis point
	Axis     math3d.Vec3 // plane normal, cone or cylinder axis
	Radius   float64     // sphere and cylinder
	Angle    float64     // cone half-angle in radians
	Material Material
}

// NewSphere creates a sphere.
func NewSphere(center math3d.Vec3, radius float64, m Material) Primitive {
	return Primitive{Kind: Sphere, Point: center, Radius: radius, Material: m}
}

// NewPlane creates an infinite plane through point facing normal.
func NewPlane(point, normal math3d.Vec3, m Material) Primitive {
	return Primitive{Kind: Plane, Point: point, Axis: normal.Normalize(), Material: m}
}

// NewCone creates a single infinite cone opening from apex along axis.
func NewCone(apex, axis math3d.Vec3, halfAngle float64, m Material) Primitive {
	return Primitive{Kind: Cone, Point: apex, Axis: axis.Normalize(), Angle: halfAngle, Material: m}
}

// NewCylinder creates an infinite cylinder around the line through point
// along axis.
func NewCylinder(point, axis math3d.Vec3, radius float64, m Material) Primitive {
	return Primitive{Kind: Cylinder, Point: point, Axis: axis.Normalize(), Radius: radius, Material: m}
}

// Color returns the surface color.
func (p *Primitive) Color() Color {
	return p.Material.Color
}

// Reflectivity returns the mirror fraction clamped to [0, 1].
func (p *Primitive) Reflectivity() float64 {
	return clamp01(p.Material.Reflectivity)
}

// RefractiveIndex returns the stored refractive index.
func (p *Primitive) RefractiveIndex() float64 {
	return p.Material.RefractiveIndex
}

// Intersect returns the nearest hit strictly in front of the ray origin.
func (p *Primitive) Intersect(ray math3d.Ray) (Hit, bool) {
	var (
		t  float64
		ok bool
	)
	switch p.Kind {
	case Sphere:
		t, ok = p.intersectSphere(ray)
	case Plane:
		t, ok = p.intersectPlane(ray)
	case Cone:
		t, ok = p.intersectCone(ray)
	case Cylinder:
		t, ok = p.intersectCylinder(ray)
	}
	if !ok || !(t > 0) {
		return Hit{}, false
	}
	pos := ray.At(t)
	return Hit{Position: pos, Distance: t, Normal: p.Normal(pos)}, true
}

// Normal returns the outward unit normal at a point on the surface. For cones
// and cylinders the result is meaningless off the surface.
func (p *Primitive) Normal(point math3d.Vec3) math3d.Vec3 {
	switch p.Kind {
	case Sphere:
		return point.Sub(p.Point).Normalize()
	case Plane:
		return p.Axis
	case Cone:
		cp := point.Sub(p.Point)
		h := cp.Dot(p.Axis)
		if h == 0 {
			return p.Axis.Negate()
		}
		return cp.Sub(p.Axis.Scale(cp.LenSq() / h)).Normalize()
	case Cylinder:
		d := point.Sub(p.Point)
		return d.Sub(p.Axis.Scale(d.Dot(p.Axis))).Normalize()
	}
	return math3d.Vec3{}
}

func (p *Primitive) intersectSphere(ray math3d.Ray) (float64, bool) {
	oc := ray.Origin.Sub(p.Point)
	a := ray.Direction.LenSq()
	b := 2 * ray.Direction.Dot(oc)
	c := oc.LenSq() - p.Radius*p.Radius
	return nearestPositive(a, b, c)
}

func (p *Primitive) intersectPlane(ray math3d.Ray) (float64, bool) {
	denom := ray.Direction.Dot(p.Axis)
	if denom == 0 {
		return 0, false
	}
	t := p.Point.Sub(ray.Origin).Dot(p.Axis) / denom
	return t, t > 0
}

func (p *Primitive) intersectCylinder(ray math3d.Ray) (float64, bool) {
	delta := ray.Origin.Sub(p.Point)
	dv := ray.Direction.Dot(p.Axis)
	deltaV := delta.Dot(p.Axis)
	a := ray.Direction.LenSq() - dv*dv
	b := 2 * (ray.Direction.Dot(delta) - dv*deltaV)
	c := delta.LenSq() - deltaV*deltaV - p.Radius*p.Radius
	return nearestPositive(a, b, c)
}

// nearestPositive returns the smallest root strictly greater than zero, so a
// ray starting on the surface finds the far side instead of its own origin.
func nearestPositive(a, b, c float64) (float64, bool) {
	t0, t1, ok := quadraticRoots(a, b, c)
	switch {
	case !ok:
		return 0, false
	case t0 > 0:
		return t0, true
	case t1 > 0:
		return t1, true
	}
	return 0, false
}

// intersectCone solves the double cone equation and keeps the nearest
// positive root lying on the nappe that opens along Axis.
func (p *Primitive) intersectCone(ray math3d.Ray) (float64, bool) {
	cos := math.Cos(p.Angle)
	cos2 := cos * cos
	co := ray.Origin.Sub(p.Point)
	dv := ray.Direction.Dot(p.Axis)
	cov := co.Dot(p.Axis)
	a := dv*dv - cos2*ray.Direction.LenSq()
	b := 2 * (dv*cov - ray.Direction.Dot(co)*cos2)
	c := cov*cov - co.LenSq()*cos2

	t0, t1, ok := quadraticRoots(a, b, c)
	if !ok {
		return 0, false
	}
	for _, t := range [2]float64{t0, t1} {
		if t > 0 && ray.At(t).Sub(p.Point).Dot(p.Axis) >= 0 {
			return t, true
		}
	}
	return 0, false
}
