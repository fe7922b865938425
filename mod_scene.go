package lumen

import (
	"github.com/pkg/errors"

	"github.com/gekko3d/lumen/config"
	"github.com/gekko3d/lumen/render/core"
)

// SceneState is the live scene and the description it was built from. Replace swaps
// both at once.
type SceneState struct {
	Scene  *core.Scene
	Assets *core.Assets
	Config *config.Scene

	// Path is the file Config was loaded from, empty for the built-in scene.
	Path string

	// Generation counts successful Replace calls.
	Generation int
}

// Replace rebuilds the scene from cfg and projects it for a width x height output. On
// error the current scene is kept. The active camera index survives when it is still
// valid.
func (s *SceneState) Replace(cfg *config.Scene, width, height int) error {
	scene, assets, err := cfg.Build()
	if err != nil {
		return errors.Wrap(err, "build scene")
	}
	if s.Scene != nil {
		scene.SetActiveCamera(s.Scene.ActiveCameraIndex())
	}
	scene.Resize(width, height)

	s.Scene, s.Assets, s.Config = scene, assets, cfg
	s.Generation++
	return nil
}

// SceneModule loads the scene from Config, from Path, or the built-in demo scene, in
// that order of preference.
type SceneModule struct {
	Path   string
	Config *config.Scene
}

func (m SceneModule) Install(app *App, cmd *Commands) {
	cfg := m.Config
	if cfg == nil && m.Path != "" {
		loaded, err := config.Load(m.Path)
		if err != nil {
			panic(err)
		}
		cfg = loaded
	}
	if cfg == nil {
		cfg = config.Default()
	}

	width, height := cfg.Window.Width, cfg.Window.Height
	if ws, ok := Resource[WindowState](app); ok {
		width, height = ws.Width, ws.Height
	}

	state := &SceneState{Path: m.Path}
	if err := state.Replace(cfg, width, height); err != nil {
		panic(err)
	}
	app.Logger().Infof("scene: %d entities, %d cameras, %d lights",
		len(state.Scene.Entities()), len(state.Scene.Cameras()), len(state.Scene.Lights))

	cmd.AddResources(state)
	app.UseSystem(System(sceneResizeSystem).InStage(PreUpdate))
	app.UseSystem(System(sceneUpdateSystem).InStage(Update))
}

func sceneResizeSystem(ws *WindowState, state *SceneState) {
	if width, height, ok := ws.TakeResize(); ok {
		state.Scene.Resize(width, height)
	}
}

func sceneUpdateSystem(t *Time, input *Input, state *SceneState) {
	state.Scene.Update(t.DeltaSeconds(), input.Snapshot())
}
