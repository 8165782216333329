// Package config holds the lumen application configuration.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v2"

	"github.com/taigrr/lumen/pkg/loader"
	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/render"
)

// Config is the top level configuration.
type Config struct {
	Render RenderConfig `yaml:"render"`
	Camera CameraConfig `yaml:"camera"`
	Viewer ViewerConfig `yaml:"viewer"`
	Log    LogConfig    `yaml:"log"`
}

// RenderConfig controls the render session.
type RenderConfig struct {
	Width      int     `yaml:"width"`  // 0 = terminal width
	Height     int     `yaml:"height"` // 0 = two pixel rows per terminal row
	FOVDegrees float64 `yaml:"fov_degrees"`
	Depth      int     `yaml:"depth"`
	Workers    int     `yaml:"workers"`    // 0 = GOMAXPROCS
	QueueRows  int     `yaml:"queue_rows"` // 0 = two frames
	Seed       int64   `yaml:"seed"`       // demo scene seed
}

// CameraConfig places the camera. Target is a viewing direction.
type CameraConfig struct {
	Eye    loader.Vec `yaml:"eye"`
	Target loader.Vec `yaml:"target"`
	Up     loader.Vec `yaml:"up"`
	Pitch  float64    `yaml:"pitch"` // radians about the camera's right axis
}

// ViewerConfig tunes the interactive terminal viewer.
type ViewerConfig struct {
	FPS             int     `yaml:"fps"`
	OrbitStep       float64 `yaml:"orbit_step"` // radians per key press
	ZoomStep        float64 `yaml:"zoom_step"`  // world units per key press
	SpringFrequency float64 `yaml:"spring_frequency"`
	SpringDamping   float64 `yaml:"spring_damping"`
}

// LogConfig selects log verbosity and destination.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // empty = stderr
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			FOVDegrees: 90,
			Depth:      3,
			Seed:       1,
		},
		Camera: CameraConfig{
			Eye:    loader.Vec{0, -3, 2},
			Target: loader.Vec{0, 1, 0},
			Up:     loader.Vec{0, 0, 1},
			Pitch:  -0.4,
		},
		Viewer: ViewerConfig{
			FPS:             30,
			OrbitStep:       0.15,
			ZoomStep:        0.5,
			SpringFrequency: 4.0,
			SpringDamping:   1.0,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the YAML file at path over the defaults. An empty path returns
// the defaults. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Marshal encodes the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

// Validate reports every out of range value.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	r := c.Render
	check(r.Width >= 0, "render.width must not be negative")
	check(r.Height >= 0, "render.height must not be negative")
	check(r.FOVDegrees > 0 && r.FOVDegrees < 180, "render.fov_degrees must be in (0, 180), got %v", r.FOVDegrees)
	check(r.Depth >= 0 && r.Depth <= render.MaxDepth, "render.depth must be in [0, %d], got %d", render.MaxDepth, r.Depth)
	check(r.Workers >= 0, "render.workers must not be negative")
	check(r.QueueRows >= 0, "render.queue_rows must not be negative")

	if _, target, up, err := c.Camera.vectors(); err != nil {
		errs = append(errs, err)
	} else {
		check(target.LenSq() > 0, "camera.target must not be zero")
		check(target.Cross(up).LenSq() > 1e-12, "camera.up must not be parallel to camera.target")
	}

	v := c.Viewer
	check(v.FPS > 0, "viewer.fps must be positive")
	check(v.SpringFrequency > 0, "viewer.spring_frequency must be positive")
	check(v.SpringDamping >= 0, "viewer.spring_damping must not be negative")

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	return errors.Join(errs...)
}

// FOV returns the horizontal field of view in radians.
func (r RenderConfig) FOV() float64 {
	return r.FOVDegrees * math.Pi / 180
}

func (c CameraConfig) vectors() (eye, target, up math3d.Vec3, err error) {
	if eye, err = c.Eye.Vec3(); err != nil {
		return eye, target, up, fmt.Errorf("camera.eye: %w", err)
	}
	if target, err = c.Target.Vec3(); err != nil {
		return eye, target, up, fmt.Errorf("camera.target: %w", err)
	}
	if up, err = c.Up.Vec3(); err != nil {
		return eye, target, up, fmt.Errorf("camera.up: %w", err)
	}
	return eye, target, up, nil
}

// Apply positions cam, tilting Target and Up by Pitch about the right axis.
func (c CameraConfig) Apply(cam *render.Camera) error {
	eye, target, up, err := c.vectors()
	if err != nil {
		return err
	}
	if c.Pitch != 0 {
		right := target.Cross(up)
		rot := math3d.Rotate(right, c.Pitch)
		target = rot.MulVec3Dir(target)
		up = rot.MulVec3Dir(up)
	}
	cam.Eye, cam.Target, cam.Up = eye, target, up
	return nil
}

// NewCamera builds a render camera for a width x height viewport.
func (c *Config) NewCamera(width, height int) (*render.Camera, error) {
	cam := render.NewCamera(width, height, c.Render.FOV())
	cam.Workers = c.Render.Workers
	cam.QueueRows = c.Render.QueueRows
	if err := c.Camera.Apply(cam); err != nil {
		return nil, err
	}
	return cam, nil
}
