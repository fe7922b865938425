package core

import (
	"bytes"
	"encoding/binary"

	"github.com/go-gl/mathgl/mgl32"
)

type LightType int32

const (
	LightTypeDirectional LightType = 0
	LightTypePoint       LightType = 1
	LightTypeSpot        LightType = 2
)

func (t LightType) String() string {
	switch t {
	case LightTypeDirectional:
		return "directional"
	case LightTypePoint:
		return "point"
	case LightTypeSpot:
		return "spot"
	}
	return "unknown"
}

type Light struct {
	Type        LightType
	Direction   mgl32.Vec3 // directional and spot
	Range       float32    // point and spot attenuation
	Position    mgl32.Vec3 // point and spot
	Intensity   float32
	Color       mgl32.Vec3
	SpotFalloff float32 // cone size
}

func NewDirectionalLight(direction, color mgl32.Vec3, intensity float32) Light {
	l := Light{Type: LightTypeDirectional, Color: color, Intensity: intensity}
	l.SetDirection(direction)
	return l
}

func NewPointLight(position, color mgl32.Vec3, intensity, lightRange float32) Light {
	return Light{Type: LightTypePoint, Position: position, Color: color, Intensity: intensity, Range: lightRange}
}

// SetDirection stores the normalised direction. A zero vector is kept as is.
func (l *Light) SetDirection(direction mgl32.Vec3) {
	if direction.Len() == 0 {
		l.Direction = direction
		return
	}
	l.Direction = direction.Normalize()
}

// GPULight is the constant buffer layout of a light: four 16 byte rows.
type GPULight struct {
	Type        int32
	Direction   [3]float32
	Range       float32
	Position    [3]float32
	Intensity   float32
	Color       [3]float32
	SpotFalloff float32
	Padding     [3]float32
}

const GPULightSize = 64

func (l Light) GPU() GPULight {
	return GPULight{
		Type:        int32(l.Type),
		Direction:   l.Direction,
		Range:       l.Range,
		Position:    l.Position,
		Intensity:   l.Intensity,
		Color:       l.Color,
		SpotFalloff: l.SpotFalloff,
	}
}

// EncodeLights packs lights back to back in little endian GPU layout.
func EncodeLights(lights []Light) []byte {
	var buf bytes.Buffer
	buf.Grow(len(lights) * GPULightSize)
	for _, l := range lights {
		// Writing a fixed-size struct into a bytes.Buffer cannot fail.
		_ = binary.Write(&buf, binary.LittleEndian, l.GPU())
	}
	return buf.Bytes()
}
