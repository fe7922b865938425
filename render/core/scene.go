package core

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

const MaxBlurRadius = 10

// maxHierarchyDepth bounds the number of entities on any root to leaf chain. SetParent
// refuses links that would make a longer one.
const maxHierarchyDepth = 64

var (
	ErrUnknownEntity    = errors.New("unknown entity")
	ErrParentCycle      = errors.New("parent link would create a cycle")
	ErrHierarchyTooDeep = errors.New("parent link would make the hierarchy too deep")
)

type Scene struct {
	entities []*Entity
	parents  map[EntityId]EntityId

	cameras      []*Camera
	activeCamera int

	Lights     []Light
	Ambient    mgl32.Vec3
	ClearColor [4]float32
	Shadow     *ShadowMap
	Sky        *Sky

	blurRadius int
}

func NewScene() *Scene {
	return &Scene{
		entities:   []*Entity{},
		parents:    make(map[EntityId]EntityId),
		Ambient:    mgl32.Vec3{0, 0.1, 0.25},
		ClearColor: [4]float32{0.4, 0.6, 0.75, 1},
		Shadow:     NewShadowMap(),
	}
}

func (s *Scene) AddEntity(e *Entity) EntityId {
	s.entities = append(s.entities, e)
	return EntityId(len(s.entities) - 1)
}

func (s *Scene) Entity(id EntityId) (*Entity, bool) {
	if int(id) >= len(s.entities) {
		return nil, false
	}
	return s.entities[id], true
}

func (s *Scene) Entities() []*Entity { return s.entities }

// SetParent attaches child under parent, replacing any previous parent. The scene is
// unchanged when an error is returned.
func (s *Scene) SetParent(child, parent EntityId) error {
	if _, ok := s.Entity(child); !ok {
		return ErrUnknownEntity
	}
	if _, ok := s.Entity(parent); !ok {
		return ErrUnknownEntity
	}

	depth := 0
	for cur, ok := parent, true; ok; cur, ok = s.parents[cur] {
		if cur == child {
			return ErrParentCycle
		}
		depth++
	}
	if depth+s.height(child) > maxHierarchyDepth {
		return ErrHierarchyTooDeep
	}
	s.parents[child] = parent
	return nil
}

// height counts the entities on the longest chain from id down to a leaf, id included.
func (s *Scene) height(id EntityId) int {
	children := make(map[EntityId][]EntityId, len(s.parents))
	for c, p := range s.parents {
		children[p] = append(children[p], c)
	}
	var walk func(id EntityId) int
	walk = func(id EntityId) int {
		h := 0
		for _, c := range children[id] {
			h = max(h, walk(c))
		}
		return h + 1
	}
	return walk(id)
}

func (s *Scene) ClearParent(child EntityId) {
	delete(s.parents, child)
}

func (s *Scene) Parent(child EntityId) (EntityId, bool) {
	p, ok := s.parents[child]
	return p, ok
}

// WorldMatrix resolves an entity's world matrix through its parent chain, together with
// its inverse transpose. The entity's own Transform is its local transform. Chains are
// at most maxHierarchyDepth long.
func (s *Scene) WorldMatrix(id EntityId) (mgl32.Mat4, mgl32.Mat4) {
	e, ok := s.Entity(id)
	if !ok {
		return mgl32.Ident4(), mgl32.Ident4()
	}
	world := e.transform.GetWorldMatrix()
	invT := e.transform.GetWorldInverseTransposeMatrix()

	// World = P * L, so (P * L)^-T = P^-T * L^-T.
	for cur, ok := s.parents[id]; ok; cur, ok = s.parents[cur] {
		pt := s.entities[cur].transform
		world = pt.GetWorldMatrix().Mul4(world)
		invT = pt.GetWorldInverseTransposeMatrix().Mul4(invT)
	}
	return world, invT
}

func (s *Scene) AddCamera(c *Camera) int {
	s.cameras = append(s.cameras, c)
	return len(s.cameras) - 1
}

func (s *Scene) Cameras() []*Camera { return s.cameras }

// ActiveCamera returns nil when the scene has no camera.
func (s *Scene) ActiveCamera() *Camera {
	if len(s.cameras) == 0 {
		return nil
	}
	return s.cameras[s.activeCamera]
}

func (s *Scene) ActiveCameraIndex() int { return s.activeCamera }

func (s *Scene) SetActiveCamera(i int) bool {
	if i < 0 || i >= len(s.cameras) {
		return false
	}
	s.activeCamera = i
	return true
}

// ToggleCamera switches to the next camera, wrapping around.
func (s *Scene) ToggleCamera() {
	if len(s.cameras) == 0 {
		return
	}
	s.activeCamera = (s.activeCamera + 1) % len(s.cameras)
}

// Resize re-projects every camera for a new output size. A zero height (minimised
// window) is ignored.
func (s *Scene) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	aspect := float32(width) / float32(height)
	for _, c := range s.cameras {
		c.UpdateProjectionMatrix(aspect)
	}
}

// Update steps the active camera only; inactive cameras keep their last view.
func (s *Scene) Update(dt float32, input InputState) {
	if c := s.ActiveCamera(); c != nil {
		c.Update(dt, input)
	}
}

func (s *Scene) BlurRadius() int { return s.blurRadius }

func (s *Scene) SetBlurRadius(r int) {
	if r < 0 {
		r = 0
	}
	if r > MaxBlurRadius {
		r = MaxBlurRadius
	}
	s.blurRadius = r
}

// Visible reports whether the entity survives frustum culling. Entities whose mesh has
// no bounds are always visible.
func (s *Scene) Visible(id EntityId, assets *Assets, planes [6]mgl32.Vec4) bool {
	e, ok := s.Entity(id)
	if !ok {
		return false
	}
	mesh, ok := assets.Mesh(e.Mesh)
	if !ok || !mesh.HasBounds {
		return true
	}
	world, _ := s.WorldMatrix(id)
	return AABBInFrustum(WorldAABB(mesh.Bounds, world), planes)
}

// WorldAABB transforms object space bounds by m and returns a conservative world box.
func WorldAABB(bounds [2]mgl32.Vec3, m mgl32.Mat4) [2]mgl32.Vec3 {
	minB, maxB := bounds[0], bounds[1]
	corners := [8]mgl32.Vec3{
		{minB.X(), minB.Y(), minB.Z()},
		{maxB.X(), minB.Y(), minB.Z()},
		{minB.X(), maxB.Y(), minB.Z()},
		{maxB.X(), maxB.Y(), minB.Z()},
		{minB.X(), minB.Y(), maxB.Z()},
		{maxB.X(), minB.Y(), maxB.Z()},
		{minB.X(), maxB.Y(), maxB.Z()},
		{maxB.X(), maxB.Y(), maxB.Z()},
	}

	inf := float32(1e20)
	wMin := mgl32.Vec3{inf, inf, inf}
	wMax := mgl32.Vec3{-inf, -inf, -inf}
	for _, c := range corners {
		wc := m.Mul4x1(c.Vec4(1.0)).Vec3()
		for i := 0; i < 3; i++ {
			wMin[i] = min(wMin[i], wc[i])
			wMax[i] = max(wMax[i], wc[i])
		}
	}
	return [2]mgl32.Vec3{wMin, wMax}
}
