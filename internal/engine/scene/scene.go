// Package scene describes a set of shadow-casting entities under one directional light and
// renders them frame by frame.
package scene

import (
	"errors"
	"fmt"
	gomath "math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/midgard-shadow/internal/engine/lighting"
	"github.com/Faultbox/midgard-shadow/internal/engine/model"
	"github.com/Faultbox/midgard-shadow/internal/engine/tess"
	"github.com/Faultbox/midgard-shadow/pkg/math"
)

// ErrUnknownShape is returned for an entity whose shape is not one of the built-in meshes.
var ErrUnknownShape = errors.New("scene: unknown shape")

// weldEpsilon merges vertexes that are closer than this before edges are paired.
const weldEpsilon = 1e-4

// LightDesc places the directional light.
type LightDesc struct {
	Azimuth   float32 `yaml:"azimuth"`   // degrees around Z from +X
	Elevation float32 `yaml:"elevation"` // degrees above the horizon
}

// EntityDesc is one entity as written in a scene file.
type EntityDesc struct {
	Name  string `yaml:"name"`
	Shape string `yaml:"shape"` // box, cube, pyramid, plane, triangle

	// Size depends on the shape:
	//   box      full extents x, y, z, resting on z=0
	//   cube     half extent
	//   pyramid  half base, height
	//   plane    half extent
	//   triangle edge length
	Size []float32 `yaml:"size"`

	Origin      [3]float32 `yaml:"origin"`
	Yaw         float32    `yaml:"yaw"` // degrees
	ShadowPlane float32    `yaml:"shadow_plane"`
	NoShadow    bool       `yaml:"no_shadow"`
	Color       [4]uint8   `yaml:"color"`
}

// Description is the YAML form of a scene.
type Description struct {
	Light    LightDesc    `yaml:"light"`
	Entities []EntityDesc `yaml:"entities"`
}

// Entity is a placed mesh.
type Entity struct {
	Name        string
	Mesh        *model.Mesh // local space
	Orientation math.Orientation
	ShadowPlane float32 // world height the projection shadow lands on
	CastShadows bool
	Color       tess.Color

	world []math.Vec3
}

// World returns the entity's vertexes in world space. The slice is reused between calls.
func (e *Entity) World() []math.Vec3 {
	if cap(e.world) < len(e.Mesh.Xyz) {
		e.world = make([]math.Vec3, len(e.Mesh.Xyz))
	}
	e.world = e.world[:len(e.Mesh.Xyz)]
	for i, v := range e.Mesh.Xyz {
		e.world[i] = e.Orientation.PointToWorld(v)
	}
	return e.world
}

// WorldBounds returns the world-space box around the entity.
func (e *Entity) WorldBounds() model.Bounds {
	m := model.Mesh{Xyz: e.World()}
	return m.Bounds()
}

// Scene is a light and the entities it shines on.
type Scene struct {
	LightDir math.Vec3 // unit vector towards the light
	Entities []*Entity
}

// Bounds returns the world-space box around all entities.
func (s *Scene) Bounds() model.Bounds {
	var all model.Mesh
	for _, e := range s.Entities {
		all.Xyz = append(all.Xyz, e.World()...)
	}
	return all.Bounds()
}

// Load reads a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML scene.
func Parse(data []byte) (*Scene, error) {
	var desc Description
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("decoding scene: %w", err)
	}
	return Build(desc)
}

// Build turns a description into a scene.
func Build(desc Description) (*Scene, error) {
	s := &Scene{
		LightDir: lighting.SunDirection(desc.Light.Azimuth, desc.Light.Elevation),
	}
	for i, ed := range desc.Entities {
		mesh, err := Shape(ed.Shape, ed.Size)
		if err != nil {
			return nil, fmt.Errorf("entity %d (%s): %w", i, ed.Name, err)
		}

		color := tess.Color(ed.Color)
		if color == (tess.Color{}) {
			color = tess.Color{200, 200, 200, 255}
		}

		yaw := float64(ed.Yaw) * gomath.Pi / 180
		s.Entities = append(s.Entities, &Entity{
			Name: ed.Name,
			Mesh: model.Weld(mesh, weldEpsilon),
			Orientation: math.Orientation{
				Origin: math.Vec3{X: ed.Origin[0], Y: ed.Origin[1], Z: ed.Origin[2]},
				Axis:   math.YawAxes(float32(yaw)),
			},
			ShadowPlane: ed.ShadowPlane,
			CastShadows: !ed.NoShadow,
			Color:       color,
		})
	}
	return s, nil
}

// Shape builds a named primitive. Missing size components default to 16 units.
func Shape(name string, size []float32) (*model.Mesh, error) {
	dim := func(i int) float32 {
		if i < len(size) && size[i] > 0 {
			return size[i]
		}
		return 16
	}

	switch name {
	case "box":
		x, y, z := dim(0), dim(1), dim(2)
		return model.Box(
			math.Vec3{X: -x / 2, Y: -y / 2},
			math.Vec3{X: x / 2, Y: y / 2, Z: z},
		), nil
	case "cube":
		return model.Cube(dim(0)), nil
	case "pyramid":
		return model.Pyramid(dim(0), dim(1)), nil
	case "plane":
		return model.Plane(dim(0), 0), nil
	case "triangle":
		l := dim(0)
		return model.Triangle(
			math.Vec3{},
			math.Vec3{X: l},
			math.Vec3{Y: l},
		), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownShape, name)
	}
}

// Demo returns the built-in scene: a ground plane with a few casters under an oblique sun.
func Demo() *Scene {
	s, err := Build(Description{
		Light: LightDesc{Azimuth: 35, Elevation: 50},
		Entities: []EntityDesc{
			{Name: "ground", Shape: "plane", Size: []float32{200}, NoShadow: true, Color: [4]uint8{110, 140, 90, 255}},
			{Name: "crate", Shape: "cube", Size: []float32{16}, Origin: [3]float32{-40, 0, 16}, Yaw: 20, Color: [4]uint8{170, 120, 70, 255}},
			{Name: "pyramid", Shape: "pyramid", Size: []float32{20, 40}, Origin: [3]float32{30, 30, 0}, Color: [4]uint8{210, 190, 120, 255}},
			{Name: "pillar", Shape: "box", Size: []float32{10, 10, 70}, Origin: [3]float32{20, -40, 0}, Yaw: 45, Color: [4]uint8{180, 180, 190, 255}},
			{Name: "floater", Shape: "cube", Size: []float32{8}, Origin: [3]float32{-10, 50, 40}, ShadowPlane: 0, Color: [4]uint8{90, 120, 200, 255}},
		},
	})
	if err != nil {
		panic(err)
	}
	return s
}
