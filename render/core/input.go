package core

// Key names the keys a camera reacts to. The platform layer maps its own key codes
// onto these when it builds an InputState.
type Key int

const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeySpace
	KeyX
	KeyCount
)

// InputState is one frame's worth of sampled input, passed into Camera.Update.
type InputState struct {
	Held [KeyCount]bool

	// LookDrag is true while the look button (left mouse) is held.
	LookDrag bool

	// Mouse movement in pixels since the previous sample.
	MouseDeltaX float32
	MouseDeltaY float32
}

func (s InputState) KeyDown(k Key) bool {
	if k < 0 || k >= KeyCount {
		return false
	}
	return s.Held[k]
}

// WithKeys returns a copy with the given keys held. Mostly useful for tests and replays.
func (s InputState) WithKeys(keys ...Key) InputState {
	for _, k := range keys {
		if k >= 0 && k < KeyCount {
			s.Held[k] = true
		}
	}
	return s
}

// Drag returns a copy with the look button held and the given mouse delta.
func (s InputState) Drag(dx, dy float32) InputState {
	s.LookDrag = true
	s.MouseDeltaX = dx
	s.MouseDeltaY = dy
	return s
}
