package lumen

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/gekko3d/lumen/render/core"
	"github.com/gekko3d/lumen/render/debugui"
)

// DebugUI is the inspector panel and its latest rasterised overlay. F1 toggles focus;
// while focused the panel owns keyboard and mouse and the camera sees no input.
type DebugUI struct {
	Panel   *debugui.Panel
	Overlay *debugui.Overlay
	Image   *image.RGBA

	scene *core.Scene
}

// DebugUIModule installs the panel. With HUDDir set, every SaveEvery-th overlay is
// written there as hud_<frame>.png.
type DebugUIModule struct {
	HUDDir    string
	SaveEvery uint64
}

func (m DebugUIModule) Install(app *App, cmd *Commands) {
	ui := &DebugUI{
		Panel:   debugui.NewPanel(nil),
		Overlay: debugui.NewOverlay(),
	}
	cmd.AddResources(ui)

	log := app.Logger()

	// Runs after input polling so capture is set before the camera update.
	app.UseSystem(System(func(input *Input, scene *SceneState, ui *DebugUI) {
		if err := debugUIInput(input, scene, ui); err != nil {
			log.Warnf("debug ui: %v", err)
		}
	}).InStage(PreUpdate))

	app.UseSystem(System(func(t *Time, ws *WindowState, scene *SceneState, ui *DebugUI) {
		ui.sync(scene.Scene)
		ui.Panel.SetStats(debugui.Stats{FrameRate: t.FrameRate, Width: ws.Width, Height: ws.Height})
		ui.Image = ui.Overlay.Render(ui.Panel.Lines())

		if m.HUDDir == "" || m.SaveEvery == 0 || t.Frame%m.SaveEvery != 0 {
			return
		}
		path := filepath.Join(m.HUDDir, fmt.Sprintf("hud_%06d.png", t.Frame))
		if err := debugui.SavePNG(path, ui.Image); err != nil {
			log.Warnf("save hud: %v", err)
			return
		}
		log.Debugf("saved %s", path)
	}).InStage(PostRender))
}

func (ui *DebugUI) sync(scene *core.Scene) {
	if ui.scene != scene {
		ui.scene = scene
		ui.Panel.SetScene(scene)
	}
}

func debugUIInput(input *Input, scene *SceneState, ui *DebugUI) error {
	ui.sync(scene.Scene)

	if input.JustPressed[KeyF1] {
		ui.Panel.SetFocused(!ui.Panel.Focused())
	}
	focused := ui.Panel.Focused()
	input.SetCapture(focused, focused)
	if !focused {
		return nil
	}

	// Escape leaves the panel. Capture stays on for the rest of this frame so the key
	// does not also quit the app.
	if input.JustPressed[KeyEscape] {
		ui.Panel.SetFocused(false)
		return nil
	}
	if input.JustPressed[KeyUp] {
		ui.Panel.MoveCursor(-1)
	}
	if input.JustPressed[KeyDown] {
		ui.Panel.MoveCursor(1)
	}
	if input.JustPressed[KeyTab] {
		ui.Panel.CycleAxis()
	}

	switch {
	case input.JustPressed[KeyEnter]:
		return ui.Panel.Activate()
	case input.JustPressed[KeyLeft]:
		return ui.Panel.Nudge(-1)
	case input.JustPressed[KeyRight]:
		return ui.Panel.Nudge(1)
	}
	return nil
}
