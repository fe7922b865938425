package lumen

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"
)

// WindowState is the shared output surface. In headless mode there is no GLFW window
// and the size only changes through Resize.
type WindowState struct {
	window  *glfw.Window
	Width   int
	Height  int
	Title   string
	resized bool
}

func (s *WindowState) Headless() bool { return s.window == nil }

// Resize records a new framebuffer size for the next TakeResize.
func (s *WindowState) Resize(width, height int) {
	if width == s.Width && height == s.Height {
		return
	}
	s.Width, s.Height = width, height
	s.resized = true
}

// TakeResize reports a size change since the previous call.
func (s *WindowState) TakeResize() (int, int, bool) {
	if !s.resized {
		return s.Width, s.Height, false
	}
	s.resized = false
	return s.Width, s.Height, true
}

// PlatformWindowModule provides the single WindowState resource. Install is a no-op if
// one already exists.
type PlatformWindowModule struct {
	Width    int
	Height   int
	Title    string
	Headless bool
}

func (m PlatformWindowModule) Install(app *App, cmd *Commands) {
	if _, ok := Resource[WindowState](app); ok {
		return
	}

	ws := &WindowState{Width: m.Width, Height: m.Height, Title: m.Title}
	if !m.Headless {
		win, err := createWindow(m.Width, m.Height, m.Title)
		if err != nil {
			panic(err)
		}
		ws.window = win
		win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
			ws.Resize(width, height)
		})
		app.UseShutdown(func(ws *WindowState) {
			ws.window.Destroy()
			glfw.Terminate()
		})
		app.Logger().Infof("window %q %dx%d", m.Title, m.Width, m.Height)
	}

	cmd.AddResources(ws)
	app.UseSystem(System(windowCloseSystem).InStage(Finale))
}

func createWindow(width, height int, title string) (*glfw.Window, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, errors.Wrap(err, "init glfw")
	}

	// The renderer owns the graphics API.
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, errors.Wrapf(err, "create window %dx%d", width, height)
	}
	return win, nil
}

func windowCloseSystem(ws *WindowState, cmd *Commands) {
	if ws.window != nil && ws.window.ShouldClose() {
		cmd.Exit()
	}
}
