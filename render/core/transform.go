package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Transform holds position, pitch/yaw/roll and scale of one object and lazily derives
// its world matrix and local basis vectors. The two caches are invalidated separately:
// position and scale only touch the matrices, rotation touches both.
type Transform struct {
	position     mgl32.Vec3
	pitchYawRoll mgl32.Vec3
	scale        mgl32.Vec3

	worldMatrix                 mgl32.Mat4
	worldInverseTransposeMatrix mgl32.Mat4
	matrixChanged               bool

	forward       mgl32.Vec3
	right         mgl32.Vec3
	up            mgl32.Vec3
	vectorChanged bool
}

func NewTransform() *Transform {
	return &Transform{
		scale:                       mgl32.Vec3{1, 1, 1},
		worldMatrix:                 mgl32.Ident4(),
		worldInverseTransposeMatrix: mgl32.Ident4(),
		forward:                     AxisForward,
		right:                       AxisRight,
		up:                          AxisUp,
	}
}

func (t *Transform) SetPosition(position mgl32.Vec3) {
	t.position = position
	t.matrixChanged = true
}

func (t *Transform) SetRotation(pitchYawRoll mgl32.Vec3) {
	t.pitchYawRoll = pitchYawRoll
	t.matrixChanged = true
	t.vectorChanged = true
}

func (t *Transform) SetScale(scale mgl32.Vec3) {
	t.scale = scale
	t.matrixChanged = true
}

func (t *Transform) GetPosition() mgl32.Vec3     { return t.position }
func (t *Transform) GetPitchYawRoll() mgl32.Vec3 { return t.pitchYawRoll }
func (t *Transform) GetScale() mgl32.Vec3        { return t.scale }

// MoveAbsolute offsets the position along the world axes.
func (t *Transform) MoveAbsolute(offset mgl32.Vec3) {
	t.position = t.position.Add(offset)
	t.matrixChanged = true
}

// MoveRelative treats offset as a vector in the local frame, so moving along +Z goes
// wherever the object currently faces.
func (t *Transform) MoveRelative(offset mgl32.Vec3) {
	dir := RollPitchYawQuat(t.pitchYawRoll).Rotate(offset)
	t.position = t.position.Add(dir)
	t.matrixChanged = true
}

// Rotate accumulates delta onto the current pitch/yaw/roll.
func (t *Transform) Rotate(delta mgl32.Vec3) {
	t.pitchYawRoll = t.pitchYawRoll.Add(delta)
	t.matrixChanged = true
	t.vectorChanged = true
}

// Scale multiplies the current scale per axis.
func (t *Transform) Scale(factor mgl32.Vec3) {
	t.scale = mgl32.Vec3{
		t.scale.X() * factor.X(),
		t.scale.Y() * factor.Y(),
		t.scale.Z() * factor.Z(),
	}
	t.matrixChanged = true
}

func (t *Transform) GetWorldMatrix() mgl32.Mat4 {
	t.updateMatrices()
	return t.worldMatrix
}

// GetWorldInverseTransposeMatrix is the matrix normals go through; it stays correct
// under non-uniform scale.
func (t *Transform) GetWorldInverseTransposeMatrix() mgl32.Mat4 {
	t.updateMatrices()
	return t.worldInverseTransposeMatrix
}

func (t *Transform) GetForward() mgl32.Vec3 {
	t.updateVectors()
	return t.forward
}

func (t *Transform) GetRight() mgl32.Vec3 {
	t.updateVectors()
	return t.right
}

func (t *Transform) GetUp() mgl32.Vec3 {
	t.updateVectors()
	return t.up
}

func (t *Transform) updateMatrices() {
	if !t.matrixChanged {
		return
	}
	t.worldMatrix, t.worldInverseTransposeMatrix = composeWorld(t.position, t.pitchYawRoll, t.scale)
	t.matrixChanged = false
}

func (t *Transform) updateVectors() {
	if !t.vectorChanged {
		return
	}
	t.right, t.up, t.forward = basisVectors(t.pitchYawRoll)
	t.vectorChanged = false
}

// composeWorld returns M = T * R * S and its inverse transpose.
func composeWorld(position, pitchYawRoll, scale mgl32.Vec3) (mgl32.Mat4, mgl32.Mat4) {
	translate := mgl32.Translate3D(position.X(), position.Y(), position.Z())
	rotate := RollPitchYawMatrix(pitchYawRoll)
	sc := mgl32.Scale3D(scale.X(), scale.Y(), scale.Z())

	world := translate.Mul4(rotate).Mul4(sc)
	return world, world.Inv().Transpose()
}

func basisVectors(pitchYawRoll mgl32.Vec3) (right, up, forward mgl32.Vec3) {
	rot := RollPitchYawQuat(pitchYawRoll)
	return rot.Rotate(AxisRight), rot.Rotate(AxisUp), rot.Rotate(AxisForward)
}
