package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ShadowMap holds the light-space camera for a single directional shadow map plus the
// rasterizer settings the renderer should use when filling it.
type ShadowMap struct {
	Resolution     int
	ProjectionSize float32
	Near           float32
	Far            float32

	Eye   mgl32.Vec3
	Focus mgl32.Vec3

	// Depth bias is in units of the smallest depth buffer step.
	DepthBias            int32
	SlopeScaledDepthBias float32

	view       mgl32.Mat4
	projection mgl32.Mat4
}

const (
	DefaultShadowNear = 0.1
	DefaultShadowFar  = 100
)

func NewShadowMap() *ShadowMap {
	s := &ShadowMap{
		Resolution:           1024,
		ProjectionSize:       10,
		Near:                 DefaultShadowNear,
		Far:                  DefaultShadowFar,
		Eye:                  mgl32.Vec3{0, 20, -20},
		Focus:                mgl32.Vec3{0, 0, 0},
		DepthBias:            1000,
		SlopeScaledDepthBias: 1,
	}
	s.UpdateMatrices()
	return s
}

// UpdateMatrices rebuilds view and projection from the exported fields. Call it after
// changing any of them.
func (s *ShadowMap) UpdateMatrices() {
	up := AxisUp
	if dir := s.Focus.Sub(s.Eye); dir.Len() > 0 && abs32(dir.Normalize().Dot(up)) > 0.999 {
		// Looking straight up or down; world up would make the basis degenerate.
		up = AxisForward
	}
	s.view = LookAtLH(s.Eye, s.Focus, up)
	// Orthographic: a directional light has parallel rays.
	s.projection = OrthographicLH(s.ProjectionSize, s.ProjectionSize, s.Near, s.Far)
}

// Aim places the shadow camera distance units back from Focus, looking along the
// light direction.
func (s *ShadowMap) Aim(direction mgl32.Vec3, distance float32) {
	if direction.Len() == 0 {
		return
	}
	s.Eye = s.Focus.Sub(direction.Normalize().Mul(distance))
	s.UpdateMatrices()
}

func (s *ShadowMap) View() mgl32.Mat4       { return s.view }
func (s *ShadowMap) Projection() mgl32.Mat4 { return s.projection }

func (s *ShadowMap) ViewProjection() mgl32.Mat4 {
	return s.projection.Mul4(s.view)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
