package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Matrices here are mgl32 column-vector matrices. Their column-major float layout is the
// same as the row-major, row-vector layout a left-handed D3D-style pipeline consumes,
// so they can be copied into constant buffers as-is.

var (
	AxisRight   = mgl32.Vec3{1, 0, 0}
	AxisUp      = mgl32.Vec3{0, 1, 0}
	AxisForward = mgl32.Vec3{0, 0, 1}
)

// RollPitchYawQuat rotates by roll about Z, then pitch about X, then yaw about Y.
// pitchYawRoll is packed as (pitch, yaw, roll) in radians.
func RollPitchYawQuat(pitchYawRoll mgl32.Vec3) mgl32.Quat {
	pitch := mgl32.QuatRotate(pitchYawRoll.X(), AxisRight)
	yaw := mgl32.QuatRotate(pitchYawRoll.Y(), AxisUp)
	roll := mgl32.QuatRotate(pitchYawRoll.Z(), AxisForward)
	return yaw.Mul(pitch).Mul(roll)
}

func RollPitchYawMatrix(pitchYawRoll mgl32.Vec3) mgl32.Mat4 {
	return RollPitchYawQuat(pitchYawRoll).Mat4()
}

// PerspectiveFovLH maps view-space z in [near, far] to depth [0, 1].
func PerspectiveFovLH(fovY, aspect, near, far float32) mgl32.Mat4 {
	sin, cos := math.Sincos(float64(fovY) * 0.5)
	h := float32(cos / sin)
	w := h / aspect
	fRange := far / (far - near)

	return mgl32.Mat4{
		w, 0, 0, 0,
		0, h, 0, 0,
		0, 0, fRange, 1,
		0, 0, -fRange * near, 0,
	}
}

func OrthographicLH(width, height, near, far float32) mgl32.Mat4 {
	fRange := 1 / (far - near)

	return mgl32.Mat4{
		2 / width, 0, 0, 0,
		0, 2 / height, 0, 0,
		0, 0, fRange, 0,
		0, 0, -fRange * near, 1,
	}
}

// LookToLH builds a view matrix at eye looking along dir.
func LookToLH(eye, dir, up mgl32.Vec3) mgl32.Mat4 {
	z := dir.Normalize()
	x := up.Cross(z).Normalize()
	y := z.Cross(x)

	return mgl32.Mat4{
		x.X(), y.X(), z.X(), 0,
		x.Y(), y.Y(), z.Y(), 0,
		x.Z(), y.Z(), z.Z(), 0,
		-x.Dot(eye), -y.Dot(eye), -z.Dot(eye), 1,
	}
}

func LookAtLH(eye, focus, up mgl32.Vec3) mgl32.Mat4 {
	return LookToLH(eye, focus.Sub(eye), up)
}

// TransformPoint applies m to p with w = 1 and divides by the resulting w.
func TransformPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	v := m.Mul4x1(p.Vec4(1))
	if v.W() != 0 && v.W() != 1 {
		return v.Vec3().Mul(1 / v.W())
	}
	return v.Vec3()
}
