package loader

import (
	"fmt"
	"math"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v2"

	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/scene"
)

// File is the YAML scene description.
//
//	primitives:
//	  - type: sphere
//	    center: [0, 5, 0]
//	    radius: 1
//	    color: "#cc3333"
//	    reflectivity: 0.25
//	lights:
//	  - type: point
//	    position: [-5, 0, 5]
//	    brightness: 1
type File struct {
	Primitives []PrimitiveSpec `yaml:"primitives"`
	Lights     []LightSpec     `yaml:"lights"`
}

// PrimitiveSpec describes one primitive. Which fields are read depends on Type.
type PrimitiveSpec struct {
	Type string `yaml:"type"` // sphere, plane, cone, cylinder

	Center Vec     `yaml:"center"` // sphere
	Radius float64 `yaml:"radius"` // sphere, cylinder
	Point  Vec     `yaml:"point"`  // plane, cylinder
	Normal Vec     `yaml:"normal"` // plane
	Apex   Vec     `yaml:"apex"`   // cone
	Axis   Vec     `yaml:"axis"`   // cone, cylinder
	Angle  float64 `yaml:"angle"`  // cone half-angle, degrees

	Color        ColorValue `yaml:"color"`
	Reflectivity float64    `yaml:"reflectivity"`
	Refraction   float64    `yaml:"refraction"`
}

// LightSpec describes one light.
type LightSpec struct {
	Type       string     `yaml:"type"` // point, directional
	Position   Vec        `yaml:"position"`
	Direction  Vec        `yaml:"direction"`
	Color      ColorValue `yaml:"color"`
	Brightness *float64   `yaml:"brightness"`
}

// Vec is a YAML sequence of three numbers.
type Vec []float64

// Vec3 converts v, failing unless it has exactly three components.
func (v Vec) Vec3() (math3d.Vec3, error) {
	if len(v) != 3 {
		return math3d.Vec3{}, fmt.Errorf("want 3 components, got %d", len(v))
	}
	return math3d.V3(v[0], v[1], v[2]), nil
}

// ColorValue accepts either a hex string ("#ff8800") or three floats in [0, 1].
// An absent color is white.
type ColorValue struct {
	scene.Color
	set bool
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *ColorValue) UnmarshalYAML(unmarshal func(any) error) error {
	var hex string
	if err := unmarshal(&hex); err == nil {
		parsed, err := colorful.Hex(hex)
		if err != nil {
			return fmt.Errorf("parse color %q: %w", hex, err)
		}
		c.Color = scene.RGB(parsed.R, parsed.G, parsed.B)
		c.set = true
		return nil
	}

	var rgb []float64
	if err := unmarshal(&rgb); err != nil {
		return fmt.Errorf("color must be a hex string or [r, g, b]: %w", err)
	}
	if len(rgb) != 3 {
		return fmt.Errorf("color needs 3 channels, got %d", len(rgb))
	}
	c.Color = scene.RGB(rgb[0], rgb[1], rgb[2])
	c.set = true
	return nil
}

func (c ColorValue) orWhite() scene.Color {
	if !c.set {
		return scene.White
	}
	return c.Color
}

// LoadYAML reads a YAML scene file.
func LoadYAML(path string) (*scene.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	return ParseYAML(data)
}

// ParseYAML builds a scene from YAML bytes.
func ParseYAML(data []byte) (*scene.Scene, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	return f.Build()
}

// Build converts the description into a scene.
func (f *File) Build() (*scene.Scene, error) {
	sc := scene.New()
	for i, spec := range f.Primitives {
		p, err := spec.primitive()
		if err != nil {
			return nil, fmt.Errorf("primitive %d: %w", i, err)
		}
		sc.AddPrimitive(p)
	}
	for i, spec := range f.Lights {
		l, err := spec.light()
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		sc.AddLight(l)
	}
	return sc, nil
}

func (s PrimitiveSpec) primitive() (scene.Primitive, error) {
	mat := scene.Material{
		Color:           s.Color.orWhite(),
		Reflectivity:    s.Reflectivity,
		RefractiveIndex: s.Refraction,
	}

	switch s.Type {
	case "sphere":
		center, err := field("center", s.Center)
		if err != nil {
			return scene.Primitive{}, err
		}
		if s.Radius <= 0 {
			return scene.Primitive{}, fmt.Errorf("sphere radius must be positive, got %v", s.Radius)
		}
		return scene.NewSphere(center, s.Radius, mat), nil

	case "plane":
		point, err := field("point", s.Point)
		if err != nil {
			return scene.Primitive{}, err
		}
		normal, err := direction("normal", s.Normal)
		if err != nil {
			return scene.Primitive{}, err
		}
		return scene.NewPlane(point, normal, mat), nil

	case "cone":
		apex, err := field("apex", s.Apex)
		if err != nil {
			return scene.Primitive{}, err
		}
		axis, err := direction("axis", s.Axis)
		if err != nil {
			return scene.Primitive{}, err
		}
		if s.Angle <= 0 || s.Angle >= 90 {
			return scene.Primitive{}, fmt.Errorf("cone angle must be in (0, 90) degrees, got %v", s.Angle)
		}
		return scene.NewCone(apex, axis, s.Angle*math.Pi/180, mat), nil

	case "cylinder":
		point, err := field("point", s.Point)
		if err != nil {
			return scene.Primitive{}, err
		}
		axis, err := direction("axis", s.Axis)
		if err != nil {
			return scene.Primitive{}, err
		}
		if s.Radius <= 0 {
			return scene.Primitive{}, fmt.Errorf("cylinder radius must be positive, got %v", s.Radius)
		}
		return scene.NewCylinder(point, axis, s.Radius, mat), nil
	}

	return scene.Primitive{}, fmt.Errorf("%w: %q", ErrUnknownPrimitive, s.Type)
}

func (s LightSpec) light() (scene.Light, error) {
	brightness := 1.0
	if s.Brightness != nil {
		brightness = *s.Brightness
	}

	switch s.Type {
	case "point":
		pos, err := field("position", s.Position)
		if err != nil {
			return scene.Light{}, err
		}
		return scene.NewPointLight(pos, s.Color.orWhite(), brightness), nil
	case "directional":
		dir, err := direction("direction", s.Direction)
		if err != nil {
			return scene.Light{}, err
		}
		return scene.NewDirectionalLight(dir, s.Color.orWhite(), brightness), nil
	}

	return scene.Light{}, fmt.Errorf("%w: %q", ErrUnknownLight, s.Type)
}

func field(name string, v Vec) (math3d.Vec3, error) {
	out, err := v.Vec3()
	if err != nil {
		return math3d.Vec3{}, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

// direction is field for vectors that are normalized later and so must not
// be zero.
func direction(name string, v Vec) (math3d.Vec3, error) {
	out, err := field(name, v)
	if err != nil {
		return out, err
	}
	if out.LenSq() == 0 {
		return out, fmt.Errorf("%s: zero vector", name)
	}
	return out, nil
}
