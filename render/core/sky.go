package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

type CubeFace int

const (
	CubeRight CubeFace = iota
	CubeLeft
	CubeUp
	CubeDown
	CubeFront
	CubeBack
)

// Sky is a cubemap drawn around the active camera after the opaque entities.
type Sky struct {
	Mesh    AssetId
	Sampler AssetId
	Faces   [6]string
}

type SkyConstants struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
}

func NewSky(mesh, sampler AssetId, right, left, up, down, front, back string) *Sky {
	return &Sky{
		Mesh:    mesh,
		Sampler: sampler,
		Faces:   [6]string{right, left, up, down, front, back},
	}
}

func (s *Sky) Face(f CubeFace) string { return s.Faces[f] }

// Prepare returns the constants for drawing the sky from cam. The shader drops the
// translation part of the view itself.
func (s *Sky) Prepare(cam *Camera) SkyConstants {
	return SkyConstants{
		View:       cam.GetView(),
		Projection: cam.GetProjection(),
	}
}
