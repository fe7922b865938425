package lumen

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/lumen/config"
	"github.com/gekko3d/lumen/render/core"
	"github.com/gekko3d/lumen/render/debugui"
)

type recordingRenderer struct {
	frames []*core.Frame
	err    error
}

func (r *recordingRenderer) Submit(frame *core.Frame) error {
	r.frames = append(r.frames, frame)
	return r.err
}

func hasLine(lines []debugui.Line, prefix string) bool {
	for _, l := range lines {
		if strings.HasPrefix(l.Text, prefix) {
			return true
		}
	}
	return false
}

func mustResource[T any](t *testing.T, app *App) *T {
	t.Helper()
	r, ok := Resource[T](app)
	require.True(t, ok, "missing resource %T", r)
	return r
}

func TestSceneModule_CameraFollowsInput(t *testing.T) {
	app, _ := newHeadlessApp(t, SceneModule{})
	app.Step()

	state := mustResource[SceneState](t, app)
	in := mustResource[Input](t, app)
	cam := state.Scene.ActiveCamera()
	require.NotNil(t, cam)
	assert.Equal(t, mgl32.Vec3{0, 1.5, -15}, cam.GetTransform().GetPosition())

	// 100ms at 3 units per second.
	in.SetKey(KeyW, true)
	app.Step()
	assert.InDelta(t, -14.7, cam.GetTransform().GetPosition().Z(), 1e-5)

	in.SetKey(KeyW, false)
	in.SetKey(KeySpace, true)
	app.Step()
	assert.InDelta(t, 1.8, cam.GetTransform().GetPosition().Y(), 1e-5)

	// Dragging far past vertical stops at straight down.
	in.SetKey(KeySpace, false)
	in.SetKey(MouseButtonLeft, true)
	in.MoveMouse(0, 0)
	in.MoveMouse(0, 5000)
	app.Step()
	assert.Equal(t, float32(math.Pi/2), cam.GetTransform().GetPitchYawRoll().X())
}

func TestSceneModule_Resize(t *testing.T) {
	app, _ := newHeadlessApp(t, SceneModule{})
	app.Step()

	ws := mustResource[WindowState](t, app)
	state := mustResource[SceneState](t, app)
	ws.Resize(800, 400)
	app.Step()

	want := core.PerspectiveFovLH(math.Pi/4, 2, core.DefaultNearClip, core.DefaultFarClip)
	got := state.Scene.ActiveCamera().GetProjection()
	assert.InDeltaSlice(t, want[:], got[:], 1e-6)
}

func TestSceneState_Replace(t *testing.T) {
	cfg := config.Default()
	state := &SceneState{}
	require.NoError(t, state.Replace(cfg, 1280, 720))
	assert.Equal(t, 1, state.Generation)

	state.Scene.ToggleCamera()
	require.NoError(t, state.Replace(config.Default(), 1280, 720))
	assert.Equal(t, 1, state.Scene.ActiveCameraIndex())
	assert.Equal(t, 2, state.Generation)

	bad := config.Default()
	bad.Entities[0].Mesh = "missing"
	previous := state.Scene
	err := state.Replace(bad, 1280, 720)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "build scene")
	assert.Same(t, previous, state.Scene)
	assert.Equal(t, 2, state.Generation)
}

func TestRenderModule_SubmitsFrames(t *testing.T) {
	renderer := &recordingRenderer{}
	app, logs := newHeadlessApp(t, SceneModule{}, RenderModule{Renderer: renderer})
	app.Step()
	app.Step()

	rs := mustResource[RenderState](t, app)
	require.Len(t, renderer.frames, 2)
	assert.Equal(t, uint64(2), rs.Submitted)
	assert.Same(t, renderer.frames[1], rs.Last)

	frame := rs.Last
	assert.NotEmpty(t, frame.Draws)
	assert.Len(t, frame.Shadow.Draws, 8)
	assert.Equal(t, [4]float32{0.4, 0.6, 0.75, 1}, frame.ClearColor)
	assert.Equal(t, float32(1)/1280, frame.Post.PixelWidth)
	require.NotNil(t, frame.Sky)

	renderer.err = errors.New("device lost")
	app.Step()
	assert.Equal(t, uint64(1), rs.Failed)
	assert.Contains(t, logs.String(), "device lost")
}

func TestLogRenderer(t *testing.T) {
	app, logs := newHeadlessApp(t, SceneModule{}, RenderModule{})
	for i := 0; i < 3; i++ {
		app.Step()
	}
	rs := mustResource[RenderState](t, app)
	lr, ok := rs.Renderer.(*LogRenderer)
	require.True(t, ok)
	lr.Every = 2

	app.Step()
	assert.Contains(t, logs.String(), "frame 4: ")
	assert.Equal(t, uint64(4), rs.Submitted)
}

func TestDebugUIModule_CapturesInput(t *testing.T) {
	app, _ := newHeadlessApp(t, SceneModule{}, RenderModule{Renderer: &recordingRenderer{}}, DebugUIModule{})
	app.Step()

	in := mustResource[Input](t, app)
	ui := mustResource[DebugUI](t, app)
	state := mustResource[SceneState](t, app)
	cam := state.Scene.ActiveCamera()
	require.NotNil(t, ui.Image)

	// F1 focuses the panel, which takes the keyboard away from the camera.
	in.SetKey(KeyF1, true)
	in.SetKey(KeyW, true)
	app.Step()
	assert.True(t, ui.Panel.Focused())
	assert.True(t, in.KeyboardCaptured())
	assert.Equal(t, float32(-15), cam.GetTransform().GetPosition().Z())

	in.SetKey(KeyDown, true)
	app.Step()
	sel, ok := ui.Panel.Selected()
	require.True(t, ok)
	assert.Equal(t, "General/FrameRate", sel.Path)

	// Escape leaves the panel without quitting.
	in.SetKey(KeyEscape, true)
	app.Step()
	assert.False(t, ui.Panel.Focused())
	assert.False(t, app.Exiting())
	assert.Equal(t, float32(-15), cam.GetTransform().GetPosition().Z())

	app.Step()
	assert.False(t, in.KeyboardCaptured())
	assert.InDelta(t, -14.7, cam.GetTransform().GetPosition().Z(), 1e-5)
}

func TestDebugUIModule_EditsScene(t *testing.T) {
	app, _ := newHeadlessApp(t, SceneModule{}, DebugUIModule{})
	app.Step()

	in := mustResource[Input](t, app)
	ui := mustResource[DebugUI](t, app)
	state := mustResource[SceneState](t, app)

	in.SetKey(KeyF1, true)
	app.Step()

	// Walk to the blur slider at the bottom and step it up.
	lines := ui.Panel.Lines()
	ui.Panel.MoveCursor(len(lines))
	in.SetKey(KeyRight, true)
	app.Step()
	assert.Equal(t, 1, state.Scene.BlurRadius())

	in.SetKey(KeyRight, false)
	in.SetKey(KeyRight, true)
	app.Step()
	assert.Equal(t, 2, state.Scene.BlurRadius())
}

func TestDebugUIModule_SavesHUD(t *testing.T) {
	dir := t.TempDir()
	app, _ := newHeadlessApp(t, SceneModule{}, DebugUIModule{HUDDir: dir, SaveEvery: 2})
	app.Step()
	app.Step()

	_, err := os.Stat(filepath.Join(dir, "hud_000001.png"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "hud_000002.png"))
	assert.NoError(t, err)
}

const reloadScene = `
cameras:
  - position: [0, 0, -5]
meshes:
  - name: cube
entities:
  - {name: box, mesh: cube}
`

func TestHotReloadModule(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(reloadScene), 0o644))

	app, logs := newHeadlessApp(t, SceneModule{Path: path}, DebugUIModule{}, HotReloadModule{})
	app.Step()
	defer app.Shutdown()

	state := mustResource[SceneState](t, app)
	hr := mustResource[HotReload](t, app)
	ui := mustResource[DebugUI](t, app)
	first := state.Scene

	require.NoError(t, os.WriteFile(path, []byte(reloadScene+"blur_radius: 4\n"), 0o644))
	require.Eventually(t, func() bool {
		app.Step()
		return state.Generation >= 2
	}, 5*time.Second, 20*time.Millisecond)

	assert.NotSame(t, first, state.Scene)
	assert.Equal(t, 4, state.Scene.BlurRadius())
	assert.GreaterOrEqual(t, hr.Reloads, 1)

	// The panel follows the new scene.
	app.Step()
	assert.True(t, hasLine(ui.Panel.Lines(), "Blurriness: 4"))

	require.NoError(t, os.WriteFile(path, []byte("cameras: []\n"), 0o644))
	require.Eventually(t, func() bool {
		app.Step()
		return hr.Failed > 0
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, 1+hr.Reloads, state.Generation)
	assert.Equal(t, 4, state.Scene.BlurRadius())
	assert.Contains(t, logs.String(), "hot reload")
}

func TestHotReloadModule_StoppedWatcher(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(reloadScene), 0o644))

	app, _ := newHeadlessApp(t, SceneModule{Path: path}, HotReloadModule{})
	app.Step()
	defer app.Shutdown()

	state := mustResource[SceneState](t, app)
	hr := mustResource[HotReload](t, app)
	require.NoError(t, hr.watcher.Close())
	require.Eventually(t, func() bool {
		_, ok := <-hr.watcher.Events
		return !ok
	}, 5*time.Second, 10*time.Millisecond)

	for i := 0; i < 3; i++ {
		app.Step()
	}
	assert.Zero(t, hr.Reloads)
	assert.Zero(t, hr.Failed)
	assert.Equal(t, 1, state.Generation)
}

func TestHotReloadModule_BuiltinScene(t *testing.T) {
	app, logs := newHeadlessApp(t, SceneModule{}, HotReloadModule{})
	app.Step()

	_, ok := Resource[HotReload](app)
	assert.False(t, ok)
	assert.Contains(t, logs.String(), "no scene file to watch")
}
