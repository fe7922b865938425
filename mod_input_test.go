package lumen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/lumen/render/core"
)

func TestInput_Edges(t *testing.T) {
	in := &Input{}

	in.SetKey(KeyW, true)
	assert.True(t, in.Pressed[KeyW])
	assert.True(t, in.JustPressed[KeyW])

	in.endFrame()
	in.SetKey(KeyW, true)
	assert.True(t, in.Pressed[KeyW])
	assert.False(t, in.JustPressed[KeyW])

	in.SetKey(KeyW, false)
	assert.True(t, in.JustReleased[KeyW])
	assert.False(t, in.Pressed[KeyW])

	// Out of range keys are ignored.
	in.SetKey(-1, true)
	in.SetKey(keyCount, true)
}

func TestInput_MouseDelta(t *testing.T) {
	in := &Input{}
	in.MoveMouse(100, 50)
	assert.Zero(t, in.MouseDeltaX)
	assert.Zero(t, in.MouseDeltaY)

	in.MoveMouse(110, 45)
	in.MoveMouse(112, 45)
	assert.Equal(t, 12.0, in.MouseDeltaX)
	assert.Equal(t, -5.0, in.MouseDeltaY)

	in.endFrame()
	assert.Zero(t, in.MouseDeltaX)
	assert.Equal(t, 112.0, in.MouseX)
}

func TestInput_Snapshot(t *testing.T) {
	in := &Input{}
	in.SetKey(KeyW, true)
	in.SetKey(KeyX, true)
	in.SetKey(KeyEnter, true)
	in.SetKey(MouseButtonLeft, true)
	in.MoveMouse(0, 0)
	in.MoveMouse(4, -2)

	s := in.Snapshot()
	assert.True(t, s.KeyDown(core.KeyW))
	assert.True(t, s.KeyDown(core.KeyX))
	assert.False(t, s.KeyDown(core.KeyA))
	assert.True(t, s.LookDrag)
	assert.Equal(t, float32(4), s.MouseDeltaX)
	assert.Equal(t, float32(-2), s.MouseDeltaY)

	in.SetCapture(true, false)
	s = in.Snapshot()
	assert.False(t, s.KeyDown(core.KeyW))
	assert.True(t, s.LookDrag)

	in.SetCapture(false, true)
	s = in.Snapshot()
	assert.True(t, s.KeyDown(core.KeyW))
	assert.Equal(t, core.InputState{}.WithKeys(core.KeyW, core.KeyX), s)
}

func TestInputModule_EscapeExits(t *testing.T) {
	app, _ := newHeadlessApp(t)
	app.Step()
	in, ok := Resource[Input](app)
	require.True(t, ok)

	in.SetCapture(true, true)
	in.SetKey(KeyEscape, true)
	app.Step()
	assert.False(t, app.Exiting())

	in.SetKey(KeyEscape, false)
	in.SetCapture(false, false)
	in.SetKey(KeyEscape, true)
	app.Step()
	assert.True(t, app.Exiting())
}

func TestTimeModule_FixedStep(t *testing.T) {
	app, _ := newHeadlessApp(t)
	app.Step()
	app.Step()

	tm, ok := Resource[Time](app)
	require.True(t, ok)
	assert.Equal(t, 100*time.Millisecond, tm.Dt)
	assert.Equal(t, 200*time.Millisecond, tm.Elapsed)
	assert.Equal(t, uint64(2), tm.Frame)
	assert.InDelta(t, 10, tm.FrameRate, 1e-9)
	assert.Equal(t, float32(0.1), tm.DeltaSeconds())
}

func TestWindowState_Resize(t *testing.T) {
	ws := &WindowState{Width: 10, Height: 10}
	assert.True(t, ws.Headless())

	_, _, ok := ws.TakeResize()
	assert.False(t, ok)

	ws.Resize(10, 10)
	_, _, ok = ws.TakeResize()
	assert.False(t, ok)

	ws.Resize(20, 5)
	w, h, ok := ws.TakeResize()
	assert.True(t, ok)
	assert.Equal(t, 20, w)
	assert.Equal(t, 5, h)
	_, _, ok = ws.TakeResize()
	assert.False(t, ok)
}
