package loader

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/qmuntal/gltf"

	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/scene"
)

const lightsExtension = "KHR_lights_punctual"

// primitiveExtras is the node "extras" object that marks a glTF node as an
// analytic primitive. The node's world transform places it: the origin is the
// sphere center, plane point, cone apex or cylinder point, and local +Y is
// the plane normal or the cone and cylinder axis.
type primitiveExtras struct {
	Primitive    string    `json:"primitive"`
	Radius       float64   `json:"radius"`
	Angle        float64   `json:"angle"` // degrees
	Color        []float64 `json:"color"`
	Reflectivity float64   `json:"reflectivity"`
	Refraction   float64   `json:"refraction"`
}

type punctualLight struct {
	Type      string    `json:"type"`
	Color     []float64 `json:"color"`
	Intensity *float64  `json:"intensity"`
}

type lightsDocument struct {
	Lights []punctualLight `json:"lights"`
}

type lightsNode struct {
	Light *int `json:"light"`
}

// LoadGLTF reads a .gltf or .glb document and builds a scene from its nodes.
func LoadGLTF(path string) (*scene.Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return FromGLTF(doc)
}

// FromGLTF builds a scene from an already decoded document. Nodes carrying
// primitive extras become primitives; nodes referencing a KHR_lights_punctual
// light become point or directional lights. Other nodes only contribute
// their transforms to their children.
func FromGLTF(doc *gltf.Document) (*scene.Scene, error) {
	var lights lightsDocument
	if raw, ok := doc.Extensions[lightsExtension]; ok {
		if err := remarshal(raw, &lights); err != nil {
			return nil, fmt.Errorf("decode %s: %w", lightsExtension, err)
		}
	}

	b := &gltfBuilder{
		doc:     doc,
		lights:  lights.Lights,
		sc:      scene.New(),
		visited: make(map[int]bool),
	}
	for _, idx := range sceneRoots(doc) {
		if err := b.walk(idx, math3d.Identity()); err != nil {
			return nil, err
		}
	}
	return b.sc, nil
}

type gltfBuilder struct {
	doc     *gltf.Document
	lights  []punctualLight
	sc      *scene.Scene
	visited map[int]bool
}

func (b *gltfBuilder) walk(idx int, parent math3d.Mat4) error {
	if idx < 0 || idx >= len(b.doc.Nodes) {
		return fmt.Errorf("node %d: index out of range", idx)
	}
	if b.visited[idx] {
		return fmt.Errorf("node %d: cycle in node hierarchy", idx)
	}
	b.visited[idx] = true

	node := b.doc.Nodes[idx]
	world := parent.Mul(localTransform(node))

	if err := b.addPrimitive(node, world); err != nil {
		return fmt.Errorf("node %d (%s): %w", idx, node.Name, err)
	}
	if err := b.addLight(node, world); err != nil {
		return fmt.Errorf("node %d (%s): %w", idx, node.Name, err)
	}

	for _, child := range node.Children {
		if err := b.walk(child, world); err != nil {
			return err
		}
	}
	return nil
}

func (b *gltfBuilder) addPrimitive(node *gltf.Node, world math3d.Mat4) error {
	if node.Extras == nil {
		return nil
	}
	var ex primitiveExtras
	if err := remarshal(node.Extras, &ex); err != nil {
		// Extras are free-form; anything that is not an object is not ours.
		return nil
	}
	if ex.Primitive == "" {
		return nil
	}

	mat := scene.Material{
		Color:           b.nodeColor(node, ex.Color),
		Reflectivity:    ex.Reflectivity,
		RefractiveIndex: ex.Refraction,
	}
	origin := world.MulVec3(math3d.Zero3())
	axis := world.MulVec3Dir(math3d.V3(0, 1, 0))
	scale := maxScale(world)

	switch ex.Primitive {
	case "sphere":
		radius := ex.Radius
		if radius == 0 {
			radius = 1
		}
		b.sc.AddPrimitive(scene.NewSphere(origin, radius*scale, mat))
	case "plane":
		b.sc.AddPrimitive(scene.NewPlane(origin, axis, mat))
	case "cone":
		if ex.Angle <= 0 || ex.Angle >= 90 {
			return fmt.Errorf("cone angle must be in (0, 90) degrees, got %v", ex.Angle)
		}
		b.sc.AddPrimitive(scene.NewCone(origin, axis, ex.Angle*math.Pi/180, mat))
	case "cylinder":
		radius := ex.Radius
		if radius == 0 {
			radius = 1
		}
		b.sc.AddPrimitive(scene.NewCylinder(origin, axis, radius*scale, mat))
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPrimitive, ex.Primitive)
	}
	return nil
}

// nodeColor prefers the extras color, then the base color of the node mesh's
// first material, then white.
func (b *gltfBuilder) nodeColor(node *gltf.Node, extras []float64) scene.Color {
	if len(extras) >= 3 {
		return scene.RGB(extras[0], extras[1], extras[2])
	}
	if node.Mesh == nil || *node.Mesh >= len(b.doc.Meshes) {
		return scene.White
	}
	for _, prim := range b.doc.Meshes[*node.Mesh].Primitives {
		if prim.Material == nil || *prim.Material >= len(b.doc.Materials) {
			continue
		}
		pbr := b.doc.Materials[*prim.Material].PBRMetallicRoughness
		if pbr != nil && pbr.BaseColorFactor != nil {
			f := pbr.BaseColorFactor
			return scene.RGB(f[0], f[1], f[2])
		}
	}
	return scene.White
}

func (b *gltfBuilder) addLight(node *gltf.Node, world math3d.Mat4) error {
	raw, ok := node.Extensions[lightsExtension]
	if !ok {
		return nil
	}
	var ref lightsNode
	if err := remarshal(raw, &ref); err != nil {
		return fmt.Errorf("decode %s: %w", lightsExtension, err)
	}
	if ref.Light == nil {
		return nil
	}
	if *ref.Light < 0 || *ref.Light >= len(b.lights) {
		return fmt.Errorf("light %d: index out of range", *ref.Light)
	}

	def := b.lights[*ref.Light]
	c := scene.White
	if len(def.Color) >= 3 {
		c = scene.RGB(def.Color[0], def.Color[1], def.Color[2])
	}
	brightness := 1.0
	if def.Intensity != nil {
		brightness = *def.Intensity
	}

	switch def.Type {
	case "point":
		b.sc.AddLight(scene.NewPointLight(world.MulVec3(math3d.Zero3()), c, brightness))
	case "directional":
		b.sc.AddLight(scene.NewDirectionalLight(world.MulVec3Dir(math3d.V3(0, 0, -1)), c, brightness))
	default:
		return fmt.Errorf("%w: %q", ErrUnknownLight, def.Type)
	}
	return nil
}

// sceneRoots returns the root nodes of the default scene. Documents without
// scenes fall back to every node that is nobody's child.
func sceneRoots(doc *gltf.Document) []int {
	if len(doc.Scenes) > 0 {
		i := 0
		if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
			i = *doc.Scene
		}
		return doc.Scenes[i].Nodes
	}

	child := make(map[int]bool)
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			child[c] = true
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !child[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

func localTransform(n *gltf.Node) math3d.Mat4 {
	m := math3d.Mat4(n.Matrix)
	if !m.IsZero() && m != math3d.Identity() {
		return m
	}

	rot := n.Rotation
	if rot == [4]float64{} {
		rot = [4]float64{0, 0, 0, 1}
	}
	scale := math3d.V3(n.Scale[0], n.Scale[1], n.Scale[2])
	if scale == math3d.Zero3() {
		scale = math3d.V3(1, 1, 1)
	}
	t := math3d.V3(n.Translation[0], n.Translation[1], n.Translation[2])
	return math3d.TRS(t, rot, scale)
}

func maxScale(m math3d.Mat4) float64 {
	sx := m.MulVec3Dir(math3d.V3(1, 0, 0)).Len()
	sy := m.MulVec3Dir(math3d.V3(0, 1, 0)).Len()
	sz := m.MulVec3Dir(math3d.V3(0, 0, 1)).Len()
	return math.Max(sx, math.Max(sy, sz))
}

// remarshal decodes an extension or extras value into dst. The gltf package
// hands these over as raw JSON or as generic maps depending on how the
// document was built, so both are normalized through JSON.
func remarshal(src any, dst any) error {
	data, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}
