package config

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/gekko3d/lumen/render/core"
)

const (
	defaultFieldOfView = math.Pi / 4
	defaultMoveSpeed   = 3
	defaultLookSpeed   = 0.001
)

var lightTypeByName = map[string]core.LightType{
	"directional": core.LightTypeDirectional,
	"point":       core.LightTypePoint,
	"spot":        core.LightTypeSpot,
}

// Build turns the description into a live scene and the asset registry its entities
// point into. Cameras are projected for the configured window size.
func (s *Scene) Build() (*core.Scene, *core.Assets, error) {
	if err := s.Validate(); err != nil {
		return nil, nil, err
	}

	assets := core.NewAssets()
	scene := core.NewScene()

	samplers := make(map[string]core.AssetId, len(s.Samplers))
	for _, sm := range s.Samplers {
		samplers[sm.Name] = assets.AddSampler(&core.Sampler{
			Name:          sm.Name,
			AddressMode:   sm.AddressMode,
			Filter:        sm.Filter,
			MaxAnisotropy: sm.MaxAnisotropy,
		})
	}

	meshes := make(map[string]core.AssetId, len(s.Meshes))
	for _, m := range s.Meshes {
		mesh := &core.Mesh{Name: m.Name, Source: m.Source}
		if m.Bounds != nil {
			mesh.Bounds = [2]mgl32.Vec3{m.Bounds.Min.Or(mgl32.Vec3{}), m.Bounds.Max.Or(mgl32.Vec3{})}
			mesh.HasBounds = true
		}
		meshes[m.Name] = assets.AddMesh(mesh)
	}

	textures := make(map[string]core.AssetId)
	materials := make(map[string]core.AssetId, len(s.Materials))
	for _, m := range s.Materials {
		mat := core.NewMaterial(m.Name, m.VertexShader, m.PixelShader)
		for _, slot := range sortedKeys(m.Textures) {
			path := m.Textures[slot]
			id, ok := textures[path]
			if !ok {
				id = assets.AddTexture(&core.Texture{Name: path, Source: path})
				textures[path] = id
			}
			mat.AddTexture(slot, id)
		}
		for _, slot := range sortedKeys(m.Samplers) {
			mat.AddSampler(slot, samplers[m.Samplers[slot]])
		}
		materials[m.Name] = assets.AddMaterial(mat)
	}

	if len(s.ClearColor) == 4 {
		copy(scene.ClearColor[:], s.ClearColor)
	}
	scene.Ambient = s.Ambient.Or(scene.Ambient)

	aspect := s.Window.Aspect()
	for _, c := range s.Cameras {
		scene.AddCamera(c.build(aspect))
	}

	entities := make(map[string]core.EntityId, len(s.Entities))
	for _, e := range s.Entities {
		ent := core.NewEntity(e.Name, meshes[e.Mesh], materials[e.Material])
		t := ent.GetTransform()
		t.SetPosition(e.Position.Or(mgl32.Vec3{}))
		t.SetRotation(e.Rotation.Or(mgl32.Vec3{}))
		t.SetScale(e.Scale.Or(mgl32.Vec3{1, 1, 1}))
		id := scene.AddEntity(ent)
		if e.Name != "" {
			entities[e.Name] = id
		}
	}
	for i, e := range s.Entities {
		if e.Parent == "" {
			continue
		}
		if err := scene.SetParent(core.EntityId(i), entities[e.Parent]); err != nil {
			return nil, nil, errors.Wrapf(err, "entities[%d].parent: %q", i, e.Parent)
		}
	}

	for _, l := range s.Lights {
		light := core.Light{
			Type:        lightTypeByName[l.Type],
			Position:    l.Position.Or(mgl32.Vec3{}),
			Color:       l.Color.Or(mgl32.Vec3{1, 1, 1}),
			Range:       l.Range,
			Intensity:   l.Intensity,
			SpotFalloff: l.SpotFalloff,
		}
		light.SetDirection(l.Direction.Or(mgl32.Vec3{}))
		scene.Lights = append(scene.Lights, light)
	}

	if sh := s.Shadow; sh != nil {
		sm := scene.Shadow
		if sh.Resolution > 0 {
			sm.Resolution = sh.Resolution
		}
		if sh.ProjectionSize > 0 {
			sm.ProjectionSize = sh.ProjectionSize
		}
		sm.Near, sm.Far = sh.clip()
		sm.Eye = sh.Eye.Or(sm.Eye)
		sm.Focus = sh.Focus.Or(sm.Focus)
		if sh.DepthBias != nil {
			sm.DepthBias = *sh.DepthBias
		}
		if sh.SlopeScaledDepthBias != nil {
			sm.SlopeScaledDepthBias = *sh.SlopeScaledDepthBias
		}
		sm.UpdateMatrices()
	}

	if sky := s.Sky; sky != nil {
		scene.Sky = core.NewSky(meshes[sky.Mesh], samplers[sky.Sampler],
			sky.Right, sky.Left, sky.Up, sky.Down, sky.Front, sky.Back)
	}

	scene.SetBlurRadius(s.BlurRadius)
	return scene, assets, nil
}

func (c Camera) build(aspect float32) *core.Camera {
	fov := c.FieldOfView
	if fov == 0 {
		fov = defaultFieldOfView
	}
	move := c.MoveSpeed
	if move == 0 {
		move = defaultMoveSpeed
	}
	look := c.LookSpeed
	if look == 0 {
		look = defaultLookSpeed
	}
	near, far := c.clip()
	cam := core.NewCameraWithClip(c.Position.Or(mgl32.Vec3{}), aspect, fov, move, look, near, far)
	if len(c.Rotation) == 3 {
		cam.GetTransform().SetRotation(c.Rotation.Or(mgl32.Vec3{}))
		cam.UpdateViewMatrix()
	}
	return cam
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
