package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultNearClip = 0.01
	DefaultFarClip  = 100.0
)

// Camera owns a Transform and derives view and projection matrices from it.
// View is refreshed by UpdateViewMatrix (Update calls it once per frame); projection
// only by UpdateProjectionMatrix.
type Camera struct {
	transform *Transform

	viewMatrix mgl32.Mat4
	projMatrix mgl32.Mat4

	fieldOfView float32
	nearClip    float32
	farClip     float32

	movementSpeed  float32
	mouseLookSpeed float32
}

func NewCamera(position mgl32.Vec3, aspectRatio, fieldOfView, movementSpeed, mouseLookSpeed float32) *Camera {
	return NewCameraWithClip(position, aspectRatio, fieldOfView, movementSpeed, mouseLookSpeed, DefaultNearClip, DefaultFarClip)
}

func NewCameraXYZ(x, y, z, aspectRatio, fieldOfView, movementSpeed, mouseLookSpeed float32) *Camera {
	return NewCamera(mgl32.Vec3{x, y, z}, aspectRatio, fieldOfView, movementSpeed, mouseLookSpeed)
}

func NewCameraWithClip(position mgl32.Vec3, aspectRatio, fieldOfView, movementSpeed, mouseLookSpeed, nearClip, farClip float32) *Camera {
	c := &Camera{
		transform:      NewTransform(),
		fieldOfView:    fieldOfView,
		nearClip:       nearClip,
		farClip:        farClip,
		movementSpeed:  movementSpeed,
		mouseLookSpeed: mouseLookSpeed,
	}
	c.transform.SetPosition(position)
	c.UpdateViewMatrix()
	c.UpdateProjectionMatrix(aspectRatio)
	return c
}

func (c *Camera) GetView() mgl32.Mat4        { return c.viewMatrix }
func (c *Camera) GetProjection() mgl32.Mat4  { return c.projMatrix }
func (c *Camera) GetTransform() *Transform   { return c.transform }
func (c *Camera) GetFieldOfView() float32    { return c.fieldOfView }
func (c *Camera) GetNearClip() float32       { return c.nearClip }
func (c *Camera) GetFarClip() float32        { return c.farClip }
func (c *Camera) GetMovementSpeed() float32  { return c.movementSpeed }
func (c *Camera) GetMouseLookSpeed() float32 { return c.mouseLookSpeed }

func (c *Camera) GetViewProjection() mgl32.Mat4 {
	return c.projMatrix.Mul4(c.viewMatrix)
}

func (c *Camera) UpdateProjectionMatrix(aspectRatio float32) {
	c.projMatrix = PerspectiveFovLH(c.fieldOfView, aspectRatio, c.nearClip, c.farClip)
}

func (c *Camera) UpdateViewMatrix() {
	c.viewMatrix = LookToLH(c.transform.GetPosition(), c.transform.GetForward(), AxisUp)
}

// Update integrates one frame of input: WASD moves in the camera's frame, Space/X move
// along world Y, and dragging with the look button turns the camera.
func (c *Camera) Update(dt float32, input InputState) {
	speed := dt * c.movementSpeed

	if input.KeyDown(KeyW) {
		c.transform.MoveRelative(mgl32.Vec3{0, 0, speed})
	}
	if input.KeyDown(KeyS) {
		c.transform.MoveRelative(mgl32.Vec3{0, 0, -speed})
	}
	if input.KeyDown(KeyD) {
		c.transform.MoveRelative(mgl32.Vec3{speed, 0, 0})
	}
	if input.KeyDown(KeyA) {
		c.transform.MoveRelative(mgl32.Vec3{-speed, 0, 0})
	}
	if input.KeyDown(KeySpace) {
		c.transform.MoveAbsolute(mgl32.Vec3{0, speed, 0})
	}
	if input.KeyDown(KeyX) {
		c.transform.MoveAbsolute(mgl32.Vec3{0, -speed, 0})
	}

	if input.LookDrag {
		yaw := c.mouseLookSpeed * input.MouseDeltaX
		pitch := c.mouseLookSpeed * input.MouseDeltaY
		c.transform.Rotate(mgl32.Vec3{pitch, yaw, 0})

		// Pitch is only clamped here, not on every Rotate.
		rotation := c.transform.GetPitchYawRoll()
		rotation[0] = clampPitch(rotation[0])
		c.transform.SetRotation(rotation)
	}

	c.UpdateViewMatrix()
}

func clampPitch(pitch float32) float32 {
	const limit = float32(math.Pi / 2)
	if pitch > limit {
		return limit
	}
	if pitch < -limit {
		return -limit
	}
	return pitch
}

// Frustum returns the six planes of the current view-projection.
func (c *Camera) Frustum() [6]mgl32.Vec4 {
	return ExtractFrustum(c.GetViewProjection())
}

// ExtractFrustum extracts the 6 planes of the frustum from a view-projection matrix with
// a [0, 1] depth range. Returns planes in order: Left, Right, Bottom, Top, Near, Far.
// Plane is Ax + By + Cz + D = 0 with the normal pointing inside.
func ExtractFrustum(vp mgl32.Mat4) [6]mgl32.Vec4 {
	row := func(i int) mgl32.Vec4 {
		return mgl32.Vec4{vp.At(i, 0), vp.At(i, 1), vp.At(i, 2), vp.At(i, 3)}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	planes := [6]mgl32.Vec4{
		r3.Add(r0), // Left
		r3.Sub(r0), // Right
		r3.Add(r1), // Bottom
		r3.Sub(r1), // Top
		r2,         // Near: 0 <= z
		r3.Sub(r2), // Far
	}

	for i := range planes {
		length := planes[i].Vec3().Len()
		if length > 0 {
			planes[i] = planes[i].Mul(1.0 / length)
		}
	}
	return planes
}

// AABBInFrustum checks if an AABB is at least partly inside the frustum.
func AABBInFrustum(aabb [2]mgl32.Vec3, planes [6]mgl32.Vec4) bool {
	for _, plane := range planes {
		// Corner furthest along the plane normal; if it is outside, all of them are.
		var p mgl32.Vec3
		for axis := 0; axis < 3; axis++ {
			if plane[axis] > 0 {
				p[axis] = aabb[1][axis]
			} else {
				p[axis] = aabb[0][axis]
			}
		}
		if plane.Vec3().Dot(p)+plane[3] < 0 {
			return false
		}
	}
	return true
}
