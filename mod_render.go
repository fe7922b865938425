package lumen

import (
	"github.com/gekko3d/lumen/render/core"
)

type RenderState struct {
	Renderer core.Renderer

	// Last is the most recently submitted frame.
	Last      *core.Frame
	Submitted uint64
	Failed    uint64
}

// RenderModule assembles a frame from the scene and hands it to Renderer. Without a
// Renderer frames go to a LogRenderer.
type RenderModule struct {
	Renderer core.Renderer
}

func (m RenderModule) Install(app *App, cmd *Commands) {
	renderer := m.Renderer
	if renderer == nil {
		renderer = &LogRenderer{Logger: app.Logger(), Every: 60}
	}
	cmd.AddResources(&RenderState{Renderer: renderer})

	log := app.Logger()
	app.UseSystem(System(func(t *Time, ws *WindowState, scene *SceneState, rs *RenderState) {
		frame := core.BuildFrame(scene.Scene, scene.Assets,
			core.Viewport{Width: ws.Width, Height: ws.Height}, float32(t.Elapsed.Seconds()))
		if frame == nil {
			return
		}
		rs.Last = frame
		if err := rs.Renderer.Submit(frame); err != nil {
			rs.Failed++
			log.Errorf("submit frame %d: %v", t.Frame, err)
			return
		}
		rs.Submitted++
	}).InStage(Render))
}

// LogRenderer stands in for a graphics backend. It logs a summary of every Every-th
// frame at debug level.
type LogRenderer struct {
	Logger Logger
	Every  uint64
	frames uint64
}

func (r *LogRenderer) Submit(frame *core.Frame) error {
	r.frames++
	if r.Every == 0 || r.frames%r.Every != 0 {
		return nil
	}
	r.Logger.Debugf("frame %d: %d draws, %d culled, %d shadow casters, blur %d",
		r.frames, len(frame.Draws), frame.Culled, len(frame.Shadow.Draws), frame.Post.BlurRadius)
	return nil
}
