package main

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/lumen/pkg/math3d"
)

const (
	// pivotDistance is how far in front of the configured eye the orbit
	// pivot sits.
	pivotDistance = 5.0
	maxPitch      = 1.4
	minZoom       = -20.0
	maxZoom       = pivotDistance - 0.5
	settleEps     = 1e-3
)

// springAxis animates Position toward Target with a harmonica spring.
type springAxis struct {
	Position float64
	Target   float64
	velocity float64
	spring   harmonica.Spring
}

func newSpringAxis(fps int, frequency, damping float64) springAxis {
	return springAxis{spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)}
}

// Update advances the spring by one frame and snaps to Target once it has
// settled, so a resting axis compares equal from tick to tick.
func (a *springAxis) Update() {
	a.Position, a.velocity = a.spring.Update(a.Position, a.velocity, a.Target)
	if a.Settled() {
		a.Position, a.velocity = a.Target, 0
	}
}

func (a *springAxis) Settled() bool {
	return math.Abs(a.Position-a.Target) < settleEps && math.Abs(a.velocity) < settleEps
}

// pose is the camera placement handed to a render session.
type pose struct {
	Eye, Target, Up math3d.Vec3
}

// orbit turns key presses into a smoothed camera pose around a pivot in
// front of the base pose. At rest with zero offsets it reproduces the base.
type orbit struct {
	Yaw, Pitch, Zoom springAxis

	base    pose
	fps     int
	freq    float64
	damping float64
}

func newOrbit(base pose, fps int, frequency, damping float64) *orbit {
	o := &orbit{base: base, fps: fps, freq: frequency, damping: damping}
	o.Reset()
	return o
}

// Reset sends every axis back to the base pose. Positions keep their
// values so the return is animated.
func (o *orbit) Reset() {
	yaw, pitch, zoom := o.Yaw.Position, o.Pitch.Position, o.Zoom.Position
	o.Yaw = newSpringAxis(o.fps, o.freq, o.damping)
	o.Pitch = newSpringAxis(o.fps, o.freq, o.damping)
	o.Zoom = newSpringAxis(o.fps, o.freq, o.damping)
	o.Yaw.Position, o.Pitch.Position, o.Zoom.Position = yaw, pitch, zoom
}

func (o *orbit) Update() {
	o.Yaw.Update()
	o.Pitch.Update()
	o.Zoom.Update()
}

func (o *orbit) Settled() bool {
	return o.Yaw.Settled() && o.Pitch.Settled() && o.Zoom.Settled()
}

func (o *orbit) Turn(yaw, pitch float64) {
	o.Yaw.Target += yaw
	o.Pitch.Target = math.Max(-maxPitch, math.Min(maxPitch, o.Pitch.Target+pitch))
}

func (o *orbit) Dolly(d float64) {
	o.Zoom.Target = math.Max(minZoom, math.Min(maxZoom, o.Zoom.Target+d))
}

// Pose rotates the base eye about the pivot, yaw around the base up vector
// and pitch around the camera's right vector, then moves it Zoom units
// along the new viewing direction.
func (o *orbit) Pose() pose {
	forward := o.base.Target.Normalize()
	worldUp := o.base.Up.Normalize()
	right := forward.Cross(worldUp).Normalize()
	pivot := o.base.Eye.Add(forward.Scale(pivotDistance))

	rot := math3d.Rotate(worldUp, o.Yaw.Position).Mul(math3d.Rotate(right, o.Pitch.Position))
	target := rot.MulVec3Dir(o.base.Target)
	up := rot.MulVec3Dir(o.base.Up)
	eye := pivot.Add(rot.MulVec3Dir(o.base.Eye.Sub(pivot)))
	eye = eye.Add(target.Normalize().Scale(o.Zoom.Position))

	return pose{Eye: eye, Target: target, Up: up}
}
