package render

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/taigrr/lumen/pkg/math3d"
)

// Camera is a pinhole camera. Eye, Target, Up and FOV may be changed freely
// before StartRendering; a running session keeps the values it started with.
type Camera struct {
	Eye    math3d.Vec3 // ray origin
	Target math3d.Vec3 // viewing direction, not a point
	Up     math3d.Vec3 // vertical reference

	Width  int
	Height int
	FOV    float64 // horizontal field of view in radians

	Workers   int         // rows shaded concurrently, 0 = GOMAXPROCS
	QueueRows int         // stream capacity in rows, 0 = two frames
	Logger    *log.Logger // nil discards
}

// NewCamera creates a camera for a width x height viewport, looking along +Y
// with +Z up from slightly behind and above the origin.
func NewCamera(width, height int, fov float64) *Camera {
	return &Camera{
		Eye:    math3d.V3(0, -3, 2),
		Target: math3d.V3(0, 1, 0),
		Up:     math3d.V3(0, 0, 1),
		Width:  width,
		Height: height,
		FOV:    fov,
	}
}

// RayAt returns the primary ray through pixel column j of row i. Row 0 is
// the top of the image, column 0 its left edge.
func (c *Camera) RayAt(i, j int) math3d.Ray {
	return c.rays().at(i, j)
}

// rayGenerator holds the per-pixel constants derived from a camera.
type rayGenerator struct {
	eye     math3d.Vec3
	topLeft math3d.Vec3 // direction through pixel (0, 0), unnormalized
	xStep   math3d.Vec3 // added per column
	yStep   math3d.Vec3 // subtracted per row
	width   int
	height  int
}

func (c *Camera) rays() rayGenerator {
	forward := c.Target.Normalize()
	right := forward.Cross(c.Up).Normalize()
	up := right.Cross(forward)

	w, h := float64(c.Width), float64(c.Height)
	gx := math.Tan(c.FOV / 2)
	gy := gx * h / w

	return rayGenerator{
		eye:     c.Eye,
		topLeft: forward.Sub(right.Scale(gx)).Add(up.Scale(gy)),
		xStep:   right.Scale(2 * gx / w),
		yStep:   up.Scale(2 * gy / h),
		width:   c.Width,
		height:  c.Height,
	}
}

func (g rayGenerator) at(i, j int) math3d.Ray {
	dir := g.topLeft.Add(g.xStep.Scale(float64(j))).Sub(g.yStep.Scale(float64(i)))
	return math3d.NewRay(g.eye, dir.Normalize())
}
