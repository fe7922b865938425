package core

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// Material names the shader pair an entity is drawn with and the textures and samplers
// bound to it, by shader variable name.
type Material struct {
	Name         string
	VertexShader string
	PixelShader  string

	textures map[string]AssetId
	samplers map[string]AssetId
}

func NewMaterial(name, vertexShader, pixelShader string) *Material {
	return &Material{
		Name:         name,
		VertexShader: vertexShader,
		PixelShader:  pixelShader,
		textures:     make(map[string]AssetId),
		samplers:     make(map[string]AssetId),
	}
}

func (m *Material) AddTexture(slot string, texture AssetId) {
	m.textures[slot] = texture
}

func (m *Material) AddSampler(slot string, sampler AssetId) {
	m.samplers[slot] = sampler
}

type Binding struct {
	Slot  string
	Asset AssetId
}

// Textures returns the texture bindings sorted by slot name.
func (m *Material) Textures() []Binding {
	return sortedBindings(m.textures)
}

func (m *Material) Samplers() []Binding {
	return sortedBindings(m.samplers)
}

func sortedBindings(src map[string]AssetId) []Binding {
	out := make([]Binding, 0, len(src))
	for slot, id := range src {
		out = append(out, Binding{Slot: slot, Asset: id})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out
}

// VertexConstants is what the vertex shader reads per draw.
type VertexConstants struct {
	World             mgl32.Mat4
	View              mgl32.Mat4
	Projection        mgl32.Mat4
	WorldInvTranspose mgl32.Mat4
	LightView         mgl32.Mat4
	LightProjection   mgl32.Mat4
}

type PixelConstants struct {
	CameraPosition mgl32.Vec3
	Ambient        mgl32.Vec3
	Time           float32
	Lights         []Light
}

// Prepare builds the per-draw constants for an object with transform t seen by cam.
func (m *Material) Prepare(t *Transform, cam *Camera) (VertexConstants, PixelConstants) {
	return m.PrepareWorld(t.GetWorldMatrix(), t.GetWorldInverseTransposeMatrix(), cam)
}

// PrepareWorld is Prepare for a world matrix that has already been resolved, e.g.
// through a parent chain.
func (m *Material) PrepareWorld(world, worldInvTranspose mgl32.Mat4, cam *Camera) (VertexConstants, PixelConstants) {
	vs := VertexConstants{
		World:             world,
		View:              cam.GetView(),
		Projection:        cam.GetProjection(),
		WorldInvTranspose: worldInvTranspose,
		LightView:         mgl32.Ident4(),
		LightProjection:   mgl32.Ident4(),
	}
	ps := PixelConstants{
		CameraPosition: cam.GetTransform().GetPosition(),
	}
	return vs, ps
}
