package core

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// AssetId is a handle into Assets. Entities share meshes and materials by holding the
// same id rather than a pointer.
type AssetId string

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}

// Mesh describes geometry owned by the renderer. Only what the scene needs for
// culling and bookkeeping lives here.
type Mesh struct {
	Name        string
	Source      string
	VertexCount uint32
	IndexCount  uint32

	// Object space bounds, min then max. HasBounds is false for meshes that are never culled.
	Bounds    [2]mgl32.Vec3
	HasBounds bool
}

type Texture struct {
	Name   string
	Source string
}

type Sampler struct {
	Name          string
	AddressMode   string
	Filter        string
	MaxAnisotropy uint32
}

type assetKind int

const (
	meshAsset assetKind = iota
	materialAsset
	textureAsset
	samplerAsset
)

type Assets struct {
	meshes    map[AssetId]*Mesh
	materials map[AssetId]*Material
	textures  map[AssetId]*Texture
	samplers  map[AssetId]*Sampler
	names     map[assetKind]map[string]AssetId
}

func NewAssets() *Assets {
	return &Assets{
		meshes:    make(map[AssetId]*Mesh),
		materials: make(map[AssetId]*Material),
		textures:  make(map[AssetId]*Texture),
		samplers:  make(map[AssetId]*Sampler),
		names:     make(map[assetKind]map[string]AssetId),
	}
}

// Names are scoped per kind, so a mesh and a material may share one.
func (a *Assets) remember(kind assetKind, name string, id AssetId) {
	if name == "" {
		return
	}
	if a.names[kind] == nil {
		a.names[kind] = make(map[string]AssetId)
	}
	a.names[kind][name] = id
}

func (a *Assets) lookup(kind assetKind, name string) (AssetId, bool) {
	id, ok := a.names[kind][name]
	return id, ok
}

func (a *Assets) AddMesh(mesh *Mesh) AssetId {
	id := makeAssetId()
	a.meshes[id] = mesh
	a.remember(meshAsset, mesh.Name, id)
	return id
}

func (a *Assets) AddMaterial(material *Material) AssetId {
	id := makeAssetId()
	a.materials[id] = material
	a.remember(materialAsset, material.Name, id)
	return id
}

func (a *Assets) AddTexture(texture *Texture) AssetId {
	id := makeAssetId()
	a.textures[id] = texture
	a.remember(textureAsset, texture.Name, id)
	return id
}

func (a *Assets) AddSampler(sampler *Sampler) AssetId {
	id := makeAssetId()
	a.samplers[id] = sampler
	a.remember(samplerAsset, sampler.Name, id)
	return id
}

func (a *Assets) LookupMesh(name string) (AssetId, bool)     { return a.lookup(meshAsset, name) }
func (a *Assets) LookupMaterial(name string) (AssetId, bool) { return a.lookup(materialAsset, name) }
func (a *Assets) LookupTexture(name string) (AssetId, bool)  { return a.lookup(textureAsset, name) }
func (a *Assets) LookupSampler(name string) (AssetId, bool)  { return a.lookup(samplerAsset, name) }

func (a *Assets) Mesh(id AssetId) (*Mesh, bool) {
	m, ok := a.meshes[id]
	return m, ok
}

func (a *Assets) Material(id AssetId) (*Material, bool) {
	m, ok := a.materials[id]
	return m, ok
}

func (a *Assets) Texture(id AssetId) (*Texture, bool) {
	t, ok := a.textures[id]
	return t, ok
}

func (a *Assets) Sampler(id AssetId) (*Sampler, bool) {
	s, ok := a.samplers[id]
	return s, ok
}

func (a *Assets) MeshCount() int     { return len(a.meshes) }
func (a *Assets) MaterialCount() int { return len(a.materials) }
