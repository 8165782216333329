// Package loader builds scenes from files: YAML scene descriptions, glTF
// documents and the built-in demo scene.
package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/taigrr/lumen/pkg/scene"
)

var (
	// ErrUnsupportedFormat is returned for scene files with an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported scene format")
	// ErrUnknownPrimitive is returned for a primitive type that does not exist.
	ErrUnknownPrimitive = errors.New("unknown primitive type")
	// ErrUnknownLight is returned for a light type that cannot be rendered.
	ErrUnknownLight = errors.New("unknown light type")
)

// Load reads the scene at path, choosing the format by extension. An empty
// path yields the demo scene generated from seed.
func Load(path string, seed int64) (*scene.Scene, error) {
	if path == "" {
		return Demo(seed), nil
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return LoadYAML(path)
	case ".gltf", ".glb":
		return LoadGLTF(path)
	default:
		return nil, fmt.Errorf("%w: %q (use .yaml, .gltf or .glb)", ErrUnsupportedFormat, ext)
	}
}
