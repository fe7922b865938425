package lumen

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gekko3d/lumen/render/core"
)

const (
	KeyW int = iota
	KeyA
	KeyS
	KeyD
	KeySpace
	KeyX
	KeyEscape
	KeyTab
	KeyEnter
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyF1
	MouseButtonLeft
	MouseButtonRight
	keyCount
)

// Input is the per-frame keyboard and mouse state. With a window it is polled from
// GLFW in PreUpdate; headless apps drive it through SetKey and MoveMouse.
type Input struct {
	Pressed      [keyCount]bool
	JustPressed  [keyCount]bool
	JustReleased [keyCount]bool

	MouseX, MouseY           float64
	MouseDeltaX, MouseDeltaY float64
	hasMouse                 bool

	captureKeyboard bool
	captureMouse    bool
}

func (in *Input) SetKey(key int, down bool) {
	if key < 0 || key >= keyCount {
		return
	}
	if down && !in.Pressed[key] {
		in.JustPressed[key] = true
	}
	if !down && in.Pressed[key] {
		in.JustReleased[key] = true
	}
	in.Pressed[key] = down
}

// MoveMouse sets the cursor position. The first call only establishes the origin.
func (in *Input) MoveMouse(x, y float64) {
	if in.hasMouse {
		in.MouseDeltaX += x - in.MouseX
		in.MouseDeltaY += y - in.MouseY
	}
	in.MouseX, in.MouseY = x, y
	in.hasMouse = true
}

// SetCapture marks keyboard and mouse as owned by an overlay such as the debug UI.
// Captured devices read as idle in Snapshot.
func (in *Input) SetCapture(keyboard, mouse bool) {
	in.captureKeyboard = keyboard
	in.captureMouse = mouse
}

func (in *Input) KeyboardCaptured() bool { return in.captureKeyboard }
func (in *Input) MouseCaptured() bool    { return in.captureMouse }

var cameraKeys = map[int]core.Key{
	KeyW:     core.KeyW,
	KeyA:     core.KeyA,
	KeyS:     core.KeyS,
	KeyD:     core.KeyD,
	KeySpace: core.KeySpace,
	KeyX:     core.KeyX,
}

// Snapshot is the camera's view of this frame's input.
func (in *Input) Snapshot() core.InputState {
	var s core.InputState
	if !in.captureKeyboard {
		for key, k := range cameraKeys {
			s.Held[k] = in.Pressed[key]
		}
	}
	if !in.captureMouse {
		s.LookDrag = in.Pressed[MouseButtonLeft]
		s.MouseDeltaX = float32(in.MouseDeltaX)
		s.MouseDeltaY = float32(in.MouseDeltaY)
	}
	return s
}

func (in *Input) endFrame() {
	in.JustPressed = [keyCount]bool{}
	in.JustReleased = [keyCount]bool{}
	in.MouseDeltaX, in.MouseDeltaY = 0, 0
}

type InputModule struct {
	ExitOnEscape bool
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Input{})
	app.UseSystem(System(inputSystem).InStage(PreUpdate))
	if mod.ExitOnEscape {
		app.UseSystem(System(escapeSystem).InStage(PostUpdate))
	}
	app.UseSystem(System(func(in *Input) { in.endFrame() }).InStage(Finale))
}

func inputSystem(ws *WindowState, input *Input) {
	if ws.window == nil {
		return
	}
	glfw.PollEvents()

	for key, glfwKey := range keyToGlfw {
		input.SetKey(key, ws.window.GetKey(glfwKey) == glfw.Press)
	}
	for btn, glfwBtn := range buttonToGlfw {
		input.SetKey(btn, ws.window.GetMouseButton(glfwBtn) == glfw.Press)
	}
	input.MoveMouse(ws.window.GetCursorPos())
}

func escapeSystem(input *Input, cmd *Commands) {
	if input.JustPressed[KeyEscape] && !input.captureKeyboard {
		cmd.Exit()
	}
}

var keyToGlfw = map[int]glfw.Key{
	KeyW:      glfw.KeyW,
	KeyA:      glfw.KeyA,
	KeyS:      glfw.KeyS,
	KeyD:      glfw.KeyD,
	KeySpace:  glfw.KeySpace,
	KeyX:      glfw.KeyX,
	KeyEscape: glfw.KeyEscape,
	KeyTab:    glfw.KeyTab,
	KeyEnter:  glfw.KeyEnter,
	KeyUp:     glfw.KeyUp,
	KeyDown:   glfw.KeyDown,
	KeyLeft:   glfw.KeyLeft,
	KeyRight:  glfw.KeyRight,
	KeyF1:     glfw.KeyF1,
}

var buttonToGlfw = map[int]glfw.MouseButton{
	MouseButtonLeft:  glfw.MouseButtonLeft,
	MouseButtonRight: glfw.MouseButtonRight,
}
