package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Renderer is the graphics backend. It receives one fully assembled Frame per tick and
// owns every GPU resource.
type Renderer interface {
	Submit(frame *Frame) error
}

type Viewport struct {
	Width  int
	Height int
}

type ShadowDraw struct {
	Entity EntityId
	Mesh   AssetId
	World  mgl32.Mat4
}

type ShadowPass struct {
	Resolution           int
	DepthBias            int32
	SlopeScaledDepthBias float32
	View                 mgl32.Mat4
	Projection           mgl32.Mat4
	Draws                []ShadowDraw
}

type Draw struct {
	Entity   EntityId
	Mesh     AssetId
	Material *Material
	Vertex   VertexConstants
	Pixel    PixelConstants
}

type SkyPass struct {
	Mesh      AssetId
	Sampler   AssetId
	Faces     [6]string
	Constants SkyConstants
}

// PostProcessConstants feed the fullscreen box blur.
type PostProcessConstants struct {
	BlurRadius  int32
	PixelWidth  float32
	PixelHeight float32
}

type Frame struct {
	ClearColor [4]float32
	Shadow     ShadowPass
	Draws      []Draw
	Culled     int
	Sky        *SkyPass
	Post       PostProcessConstants

	// LightData is Lights encoded in GPU layout, shared by every draw.
	LightData []byte
}

// BuildFrame assembles everything the renderer needs for one frame as seen from the
// scene's active camera. It returns nil when the scene has no camera.
// time is forwarded to pixel shaders untouched.
func BuildFrame(scene *Scene, assets *Assets, vp Viewport, time float32) *Frame {
	cam := scene.ActiveCamera()
	if cam == nil {
		return nil
	}

	frame := &Frame{
		ClearColor: scene.ClearColor,
		Post:       postProcessConstants(scene.BlurRadius(), vp),
		LightData:  EncodeLights(scene.Lights),
	}

	shadow := scene.Shadow
	if shadow == nil {
		shadow = NewShadowMap()
	}
	frame.Shadow = ShadowPass{
		Resolution:           shadow.Resolution,
		DepthBias:            shadow.DepthBias,
		SlopeScaledDepthBias: shadow.SlopeScaledDepthBias,
		View:                 shadow.View(),
		Projection:           shadow.Projection(),
	}

	planes := cam.Frustum()
	for i, e := range scene.Entities() {
		id := EntityId(i)
		world, invT := scene.WorldMatrix(id)

		// Everything casts, including objects outside the camera frustum.
		frame.Shadow.Draws = append(frame.Shadow.Draws, ShadowDraw{Entity: id, Mesh: e.Mesh, World: world})

		material, ok := assets.Material(e.Material)
		if !ok {
			frame.Culled++
			continue
		}
		if !scene.Visible(id, assets, planes) {
			frame.Culled++
			continue
		}

		vs, ps := material.PrepareWorld(world, invT, cam)
		vs.LightView = shadow.View()
		vs.LightProjection = shadow.Projection()
		ps.Ambient = scene.Ambient
		ps.Time = time
		ps.Lights = scene.Lights

		frame.Draws = append(frame.Draws, Draw{
			Entity:   id,
			Mesh:     e.Mesh,
			Material: material,
			Vertex:   vs,
			Pixel:    ps,
		})
	}

	if scene.Sky != nil {
		frame.Sky = &SkyPass{
			Mesh:      scene.Sky.Mesh,
			Sampler:   scene.Sky.Sampler,
			Faces:     scene.Sky.Faces,
			Constants: scene.Sky.Prepare(cam),
		}
	}

	return frame
}

func postProcessConstants(blurRadius int, vp Viewport) PostProcessConstants {
	pc := PostProcessConstants{BlurRadius: int32(blurRadius)}
	if vp.Width > 0 {
		pc.PixelWidth = 1 / float32(vp.Width)
	}
	if vp.Height > 0 {
		pc.PixelHeight = 1 / float32(vp.Height)
	}
	return pc
}
