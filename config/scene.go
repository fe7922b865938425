package config

import (
	"bytes"
	_ "embed"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/gekko3d/lumen/render/core"
)

//go:embed default_scene.yaml
var defaultScene []byte

const (
	DefaultWindowWidth  = 1280
	DefaultWindowHeight = 720
	DefaultWindowTitle  = "lumen"
)

// Vec3 is a three component list in YAML. An empty list means "use the default".
type Vec3 []float32

func (v Vec3) Or(def mgl32.Vec3) mgl32.Vec3 {
	if len(v) != 3 {
		return def
	}
	return mgl32.Vec3{v[0], v[1], v[2]}
}

type Scene struct {
	Window     Window     `yaml:"window"`
	Debug      bool       `yaml:"debug"`
	ClearColor []float32  `yaml:"clear_color"`
	Ambient    Vec3       `yaml:"ambient"`
	Cameras    []Camera   `yaml:"cameras"`
	Samplers   []Sampler  `yaml:"samplers"`
	Meshes     []Mesh     `yaml:"meshes"`
	Materials  []Material `yaml:"materials"`
	Entities   []Entity   `yaml:"entities"`
	Lights     []Light    `yaml:"lights"`
	Shadow     *Shadow    `yaml:"shadow"`
	Sky        *Sky       `yaml:"sky"`
	BlurRadius int        `yaml:"blur_radius"`
}

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

func (w Window) Aspect() float32 {
	return float32(w.Width) / float32(w.Height)
}

// Camera fields left at zero fall back to the camera defaults.
type Camera struct {
	Name        string  `yaml:"name"`
	Position    Vec3    `yaml:"position"`
	Rotation    Vec3    `yaml:"rotation"`
	FieldOfView float32 `yaml:"fov"`
	MoveSpeed   float32 `yaml:"move_speed"`
	LookSpeed   float32 `yaml:"look_speed"`
	Near        float32 `yaml:"near"`
	Far         float32 `yaml:"far"`
}

type Sampler struct {
	Name          string `yaml:"name"`
	AddressMode   string `yaml:"address_mode"`
	Filter        string `yaml:"filter"`
	MaxAnisotropy uint32 `yaml:"max_anisotropy"`
}

type Bounds struct {
	Min Vec3 `yaml:"min"`
	Max Vec3 `yaml:"max"`
}

// Mesh without bounds is never frustum culled.
type Mesh struct {
	Name   string  `yaml:"name"`
	Source string  `yaml:"source"`
	Bounds *Bounds `yaml:"bounds"`
}

type Material struct {
	Name         string            `yaml:"name"`
	VertexShader string            `yaml:"vertex_shader"`
	PixelShader  string            `yaml:"pixel_shader"`
	Textures     map[string]string `yaml:"textures"` // slot -> image path
	Samplers     map[string]string `yaml:"samplers"` // slot -> sampler name
}

// Entity rotation is pitch, yaw, roll in radians.
type Entity struct {
	Name     string `yaml:"name"`
	Mesh     string `yaml:"mesh"`
	Material string `yaml:"material"`
	Position Vec3   `yaml:"position"`
	Rotation Vec3   `yaml:"rotation"`
	Scale    Vec3   `yaml:"scale"`
	Parent   string `yaml:"parent"`
}

type Light struct {
	Type        string  `yaml:"type"`
	Direction   Vec3    `yaml:"direction"`
	Position    Vec3    `yaml:"position"`
	Color       Vec3    `yaml:"color"`
	Range       float32 `yaml:"range"`
	Intensity   float32 `yaml:"intensity"`
	SpotFalloff float32 `yaml:"spot_falloff"`
}

// Shadow overrides the shadow map defaults field by field.
type Shadow struct {
	Resolution           int      `yaml:"resolution"`
	ProjectionSize       float32  `yaml:"projection_size"`
	Near                 float32  `yaml:"near"`
	Far                  float32  `yaml:"far"`
	Eye                  Vec3     `yaml:"eye"`
	Focus                Vec3     `yaml:"focus"`
	DepthBias            *int32   `yaml:"depth_bias"`
	SlopeScaledDepthBias *float32 `yaml:"slope_scaled_depth_bias"`
}

type Sky struct {
	Mesh    string `yaml:"mesh"`
	Sampler string `yaml:"sampler"`
	Right   string `yaml:"right"`
	Left    string `yaml:"left"`
	Up      string `yaml:"up"`
	Down    string `yaml:"down"`
	Front   string `yaml:"front"`
	Back    string `yaml:"back"`
}

// Parse decodes a scene description, fills in window defaults and validates it.
// Unknown keys are rejected.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, errors.Wrap(err, "decode scene")
	}
	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read scene %s", path)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "load scene %s", path)
	}
	return s, nil
}

// Default returns the built-in demo scene.
func Default() *Scene {
	s, err := Parse(defaultScene)
	if err != nil {
		panic(errors.Wrap(err, "embedded default scene"))
	}
	return s
}

func (s *Scene) applyDefaults() {
	if s.Window.Width == 0 {
		s.Window.Width = DefaultWindowWidth
	}
	if s.Window.Height == 0 {
		s.Window.Height = DefaultWindowHeight
	}
	if s.Window.Title == "" {
		s.Window.Title = DefaultWindowTitle
	}
}

var lightTypes = map[string]bool{"directional": true, "point": true, "spot": true}

// Validate checks references and ranges. The error names the offending field.
func (s *Scene) Validate() error {
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return errors.Errorf("window: size %dx%d must be positive", s.Window.Width, s.Window.Height)
	}
	if n := len(s.ClearColor); n != 0 && n != 4 {
		return errors.Errorf("clear_color: want 4 components, got %d", n)
	}
	if err := checkVec3("ambient", s.Ambient); err != nil {
		return err
	}
	if s.BlurRadius < 0 || s.BlurRadius > 10 {
		return errors.Errorf("blur_radius: %d outside 0..10", s.BlurRadius)
	}

	if len(s.Cameras) == 0 {
		return errors.New("cameras: at least one camera is required")
	}
	for i, c := range s.Cameras {
		if err := c.validate(); err != nil {
			return errors.Wrapf(err, "cameras[%d]", i)
		}
	}

	samplers := make(map[string]bool)
	for i, sm := range s.Samplers {
		if err := unique(samplers, sm.Name); err != nil {
			return errors.Wrapf(err, "samplers[%d].name", i)
		}
	}

	meshes := make(map[string]bool)
	for i, m := range s.Meshes {
		if err := unique(meshes, m.Name); err != nil {
			return errors.Wrapf(err, "meshes[%d].name", i)
		}
		if m.Bounds != nil {
			if len(m.Bounds.Min) != 3 || len(m.Bounds.Max) != 3 {
				return errors.Errorf("meshes[%d].bounds: min and max need 3 components", i)
			}
		}
	}

	materials := make(map[string]bool)
	for i, m := range s.Materials {
		if err := unique(materials, m.Name); err != nil {
			return errors.Wrapf(err, "materials[%d].name", i)
		}
		for slot, name := range m.Samplers {
			if !samplers[name] {
				return errors.Errorf("materials[%d].samplers.%s: unknown sampler %q", i, slot, name)
			}
		}
	}

	entities := make(map[string]bool)
	for i, e := range s.Entities {
		if e.Name != "" {
			if err := unique(entities, e.Name); err != nil {
				return errors.Wrapf(err, "entities[%d].name", i)
			}
		}
		if !meshes[e.Mesh] {
			return errors.Errorf("entities[%d].mesh: unknown mesh %q", i, e.Mesh)
		}
		if e.Material != "" && !materials[e.Material] {
			return errors.Errorf("entities[%d].material: unknown material %q", i, e.Material)
		}
		if err := checkVec3s("position", e.Position, "rotation", e.Rotation, "scale", e.Scale); err != nil {
			return errors.Wrapf(err, "entities[%d]", i)
		}
	}
	for i, e := range s.Entities {
		if e.Parent == "" {
			continue
		}
		if e.Parent == e.Name {
			return errors.Errorf("entities[%d].parent: entity cannot parent itself", i)
		}
		if !entities[e.Parent] {
			return errors.Errorf("entities[%d].parent: unknown entity %q", i, e.Parent)
		}
	}

	for i, l := range s.Lights {
		if !lightTypes[l.Type] {
			return errors.Errorf("lights[%d].type: unknown light type %q", i, l.Type)
		}
		if l.Range < 0 {
			return errors.Errorf("lights[%d].range: must not be negative", i)
		}
		if err := checkVec3s("direction", l.Direction, "position", l.Position, "color", l.Color); err != nil {
			return errors.Wrapf(err, "lights[%d]", i)
		}
	}

	if sh := s.Shadow; sh != nil {
		if sh.Resolution < 0 {
			return errors.Errorf("shadow.resolution: must not be negative")
		}
		if sh.Near < 0 || sh.Far < 0 {
			return errors.New("shadow.near/far: clip distances must not be negative")
		}
		if near, far := sh.clip(); far <= near {
			return errors.Errorf("shadow.far: %v must be greater than near %v", far, near)
		}
		if err := checkVec3s("eye", sh.Eye, "focus", sh.Focus); err != nil {
			return errors.Wrap(err, "shadow")
		}
	}

	if sky := s.Sky; sky != nil {
		if !meshes[sky.Mesh] {
			return errors.Errorf("sky.mesh: unknown mesh %q", sky.Mesh)
		}
		if sky.Sampler != "" && !samplers[sky.Sampler] {
			return errors.Errorf("sky.sampler: unknown sampler %q", sky.Sampler)
		}
	}
	return nil
}

func (c Camera) validate() error {
	if c.FieldOfView < 0 || c.FieldOfView >= math.Pi {
		return errors.Errorf("fov: %v outside (0, pi)", c.FieldOfView)
	}
	if c.Near < 0 || c.Far < 0 {
		return errors.New("near/far: clip distances must not be negative")
	}
	if near, far := c.clip(); far <= near {
		return errors.Errorf("far: %v must be greater than near %v", far, near)
	}
	return checkVec3s("position", c.Position, "rotation", c.Rotation)
}

// clip returns the clip distances the camera is built with. Zero means the default.
func (c Camera) clip() (float32, float32) {
	return orDefault(c.Near, core.DefaultNearClip), orDefault(c.Far, core.DefaultFarClip)
}

func (sh Shadow) clip() (float32, float32) {
	return orDefault(sh.Near, core.DefaultShadowNear), orDefault(sh.Far, core.DefaultShadowFar)
}

func orDefault(v, def float32) float32 {
	if v == 0 {
		return def
	}
	return v
}

func checkVec3(field string, v Vec3) error {
	if n := len(v); n != 0 && n != 3 {
		return errors.Errorf("%s: want 3 components, got %d", field, n)
	}
	return nil
}

// checkVec3s takes field name and value pairs.
func checkVec3s(fields ...any) error {
	for i := 0; i+1 < len(fields); i += 2 {
		if err := checkVec3(fields[i].(string), fields[i+1].(Vec3)); err != nil {
			return err
		}
	}
	return nil
}

func unique(seen map[string]bool, name string) error {
	if name == "" {
		return errors.New("name is required")
	}
	if seen[name] {
		return errors.Errorf("duplicate name %q", name)
	}
	seen[name] = true
	return nil
}
