package core

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func newTestCamera() *Camera {
	return NewCamera(mgl32.Vec3{0, 0, -5}, 16.0/9.0, math.Pi/4, 3, 0.001)
}

func TestCamera_DefaultsAndInitialMatrices(t *testing.T) {
	cam := newTestCamera()

	assert.Equal(t, float32(DefaultNearClip), cam.GetNearClip())
	assert.Equal(t, float32(DefaultFarClip), cam.GetFarClip())
	assert.Equal(t, float32(math.Pi/4), cam.GetFieldOfView())
	assert.Equal(t, PerspectiveFovLH(math.Pi/4, 16.0/9.0, 0.01, 100), cam.GetProjection())

	// The origin sits 5 units straight ahead of the camera.
	assertVecNear(t, mgl32.Vec3{0, 0, 5}, TransformPoint(cam.GetView(), mgl32.Vec3{0, 0, 0}))
}

func TestNewCameraXYZ(t *testing.T) {
	cam := NewCameraXYZ(0, 0, -5, 16.0/9.0, math.Pi/4, 3, 0.001)
	want := newTestCamera()

	assert.Equal(t, mgl32.Vec3{0, 0, -5}, cam.GetTransform().GetPosition())
	assert.Equal(t, want.GetView(), cam.GetView())
	assert.Equal(t, want.GetProjection(), cam.GetProjection())
	assert.Equal(t, want.GetNearClip(), cam.GetNearClip())
}

func TestCamera_ProjectionDepthRange(t *testing.T) {
	cam := NewCameraWithClip(mgl32.Vec3{}, 1, math.Pi/2, 1, 1, 0.5, 50)
	proj := cam.GetProjection()

	assert.InDelta(t, 0, TransformPoint(proj, mgl32.Vec3{0, 0, 0.5}).Z(), 1e-5)
	assert.InDelta(t, 1, TransformPoint(proj, mgl32.Vec3{0, 0, 50}).Z(), 1e-5)

	// 90 degree fov at aspect 1: the frustum edge at depth z is at x = z.
	assert.InDelta(t, 1, TransformPoint(proj, mgl32.Vec3{10, 0, 10}).X(), 1e-5)
}

func TestCamera_UpdateProjectionMatrix(t *testing.T) {
	cam := newTestCamera()
	before := cam.GetProjection()

	cam.UpdateProjectionMatrix(16.0 / 9.0)
	assert.Equal(t, before, cam.GetProjection())

	cam.UpdateProjectionMatrix(4.0 / 3.0)
	assert.NotEqual(t, before, cam.GetProjection())

	// Moving the camera leaves the projection alone.
	proj := cam.GetProjection()
	cam.Update(1, InputState{}.WithKeys(KeyW))
	assert.Equal(t, proj, cam.GetProjection())
}

func TestCamera_ViewChangesOnlyWithTransform(t *testing.T) {
	cam := newTestCamera()
	view := cam.GetView()

	cam.Update(0.016, InputState{})
	assert.Equal(t, view, cam.GetView())

	// Mutating the transform is not visible until the view is refreshed.
	cam.GetTransform().MoveAbsolute(mgl32.Vec3{1, 0, 0})
	assert.Equal(t, view, cam.GetView())
	cam.UpdateViewMatrix()
	assert.NotEqual(t, view, cam.GetView())

	// Scale is not part of the view.
	view = cam.GetView()
	cam.GetTransform().SetScale(mgl32.Vec3{5, 5, 5})
	cam.UpdateViewMatrix()
	assert.Equal(t, view, cam.GetView())
}

func TestCamera_UpdateMovement(t *testing.T) {
	tests := []struct {
		name     string
		keys     []Key
		expected mgl32.Vec3
	}{
		{name: "forward", keys: []Key{KeyW}, expected: mgl32.Vec3{0, 0, 1.5}},
		{name: "back", keys: []Key{KeyS}, expected: mgl32.Vec3{0, 0, -1.5}},
		{name: "right", keys: []Key{KeyD}, expected: mgl32.Vec3{1.5, 0, 0}},
		{name: "left", keys: []Key{KeyA}, expected: mgl32.Vec3{-1.5, 0, 0}},
		{name: "up", keys: []Key{KeySpace}, expected: mgl32.Vec3{0, 1.5, 0}},
		{name: "down", keys: []Key{KeyX}, expected: mgl32.Vec3{0, -1.5, 0}},
		{name: "forward and back cancel", keys: []Key{KeyW, KeyS}, expected: mgl32.Vec3{0, 0, 0}},
		{name: "diagonal", keys: []Key{KeyW, KeyD, KeySpace}, expected: mgl32.Vec3{1.5, 1.5, 1.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := NewCamera(mgl32.Vec3{}, 1, math.Pi/4, 3, 0.001)
			cam.Update(0.5, InputState{}.WithKeys(tt.keys...))
			assertVecNear(t, tt.expected, cam.GetTransform().GetPosition())
		})
	}
}

func TestCamera_VerticalMovementIgnoresOrientation(t *testing.T) {
	cam := NewCamera(mgl32.Vec3{}, 1, math.Pi/4, 1, 0.001)
	cam.GetTransform().SetRotation(mgl32.Vec3{math.Pi / 4, math.Pi / 2, 0})

	cam.Update(1, InputState{}.WithKeys(KeySpace))
	assertVecNear(t, mgl32.Vec3{0, 1, 0}, cam.GetTransform().GetPosition())
}

func TestCamera_LookRequiresDrag(t *testing.T) {
	cam := newTestCamera()
	cam.Update(0.016, InputState{MouseDeltaX: 500, MouseDeltaY: 500})
	assert.Equal(t, mgl32.Vec3{}, cam.GetTransform().GetPitchYawRoll())

	cam.Update(0.016, InputState{}.Drag(100, -50))
	assertVecNear(t, mgl32.Vec3{-0.05, 0.1, 0}, cam.GetTransform().GetPitchYawRoll())
	assertVecNear(t, cam.GetTransform().GetForward(), cam.GetView().Transpose().Col(2).Vec3())
}

func TestCamera_PitchClamp(t *testing.T) {
	cam := newTestCamera()
	cam.Update(0.016, InputState{}.Drag(0, 1e5))
	assert.Equal(t, float32(math.Pi/2), cam.GetTransform().GetPitchYawRoll().X())

	cam.Update(0.016, InputState{}.Drag(0, -1e6))
	assert.Equal(t, float32(-math.Pi/2), cam.GetTransform().GetPitchYawRoll().X())

	// Yaw is never clamped.
	cam.Update(0.016, InputState{}.Drag(1e5, 0))
	assert.InDelta(t, 100, cam.GetTransform().GetPitchYawRoll().Y(), 1e-3)
}

func TestCamera_RotateOutsideUpdateIsNotClamped(t *testing.T) {
	cam := newTestCamera()
	cam.GetTransform().Rotate(mgl32.Vec3{3, 0, 0})
	cam.Update(0.016, InputState{})
	assert.Equal(t, float32(3), cam.GetTransform().GetPitchYawRoll().X())

	// The next drag pulls it back in range.
	cam.Update(0.016, InputState{}.Drag(0, 0))
	assert.Equal(t, float32(math.Pi/2), cam.GetTransform().GetPitchYawRoll().X())
}

func TestFrustumCulling(t *testing.T) {
	// Camera at origin looking down +Z (left-handed).
	proj := PerspectiveFovLH(mgl32.DegToRad(90), 1.0, 1.0, 100.0)
	view := LookToLH(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 1}, AxisUp)
	planes := ExtractFrustum(proj.Mul4(view))

	tests := []struct {
		name     string
		aabbMin  mgl32.Vec3
		aabbMax  mgl32.Vec3
		expected bool
	}{
		{name: "Inside (center)", aabbMin: mgl32.Vec3{-1, -1, 5}, aabbMax: mgl32.Vec3{1, 1, 10}, expected: true},
		{name: "Outside (Left)", aabbMin: mgl32.Vec3{-20, -1, 5}, aabbMax: mgl32.Vec3{-15, 1, 10}, expected: false},
		{name: "Outside (Right)", aabbMin: mgl32.Vec3{15, -1, 5}, aabbMax: mgl32.Vec3{20, 1, 10}, expected: false},
		{name: "Outside (Above)", aabbMin: mgl32.Vec3{-1, 15, 5}, aabbMax: mgl32.Vec3{1, 20, 10}, expected: false},
		{name: "Outside (Behind)", aabbMin: mgl32.Vec3{-1, -1, -5}, aabbMax: mgl32.Vec3{1, 1, -2}, expected: false},
		{name: "Outside (Far)", aabbMin: mgl32.Vec3{-1, -1, 150}, aabbMax: mgl32.Vec3{1, 1, 200}, expected: false},
		{name: "Intersecting (Left Plane)", aabbMin: mgl32.Vec3{-12, -1, 5}, aabbMax: mgl32.Vec3{-4, 1, 10}, expected: true},
		{name: "Intersecting (Near Plane)", aabbMin: mgl32.Vec3{-1, -1, 0}, aabbMax: mgl32.Vec3{1, 1, 2}, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AABBInFrustum([2]mgl32.Vec3{tt.aabbMin, tt.aabbMax}, planes)
			assert.Equal(t, tt.expected, got)
		})
	}
}
