package geogl

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/golang/geo/r3"
)

// Vec3 is a 3D vector.
type Vec3 = mgl32.Vec3

// Vec4 is a 4D vector.
type Vec4 = mgl32.Vec4

// Mat4 is a column-major 4x4 matrix (m[col*4+row]).
type Mat4 = mgl32.Mat4

func V3(x, y, z float32) Vec3 { return Vec3{x, y, z} }

// FromR3 narrows a float64 geometry vector to an engine vector.
func FromR3(v r3.Vector) Vec3 {
	return Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}

// FromR3s narrows a slice of geometry vectors.
func FromR3s(vs []r3.Vector) []Vec3 {
	out := make([]Vec3, len(vs))
	for i, v := range vs {
		out[i] = FromR3(v)
	}
	return out
}

// Normalize returns v with unit length, or the zero vector.
func Normalize(v Vec3) Vec3 {
	if v.Len() == 0 {
		return Vec3{}
	}
	return v.Normalize()
}

func Clamp01(v float32) float32 { return mgl32.Clamp(v, 0, 1) }

func transformPoint(m Mat4, p Vec3) Vec4 {
	return m.Mul4x1(p.Vec4(1))
}

func sin32(v float32) float32 { return float32(math.Sin(float64(v))) }
func cos32(v float32) float32 { return float32(math.Cos(float64(v))) }
