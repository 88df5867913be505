package geogl

import "image/color"

// Color is an RGBA color in 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

func RGB(r, g, b uint8) Color     { return Color{R: r, G: g, B: b, A: 0xFF} }
func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

// Hex builds an opaque color from 0xRRGGBB.
func Hex(v uint32) Color {
	return RGB(uint8(v>>16), uint8(v>>8), uint8(v))
}

// Named colors used by the viewer.
var (
	White  = RGB(0xFF, 0xFF, 0xFF)
	Violet = Hex(0xee82ee)
)

// MulScalar scales the RGB channels by s, clamped to 0..1.
func (c Color) MulScalar(s float32) Color {
	if s < 0 {
		s = 0
	}
	if s > 1 {
		s = 1
	}
	t := uint32(s * 255)
	mul := func(ch uint8) uint8 {
		return uint8((uint32(ch) * t) / 255)
	}
	return Color{R: mul(c.R), G: mul(c.G), B: mul(c.B), A: c.A}
}

// Modulate multiplies two colors channel by channel, alpha included.
func (c Color) Modulate(o Color) Color {
	mul := func(a, b uint8) uint8 { return uint8((uint32(a) * uint32(b)) / 255) }
	return Color{R: mul(c.R, o.R), G: mul(c.G, o.G), B: mul(c.B, o.B), A: mul(c.A, o.A)}
}

func (c Color) WithAlpha(a uint8) Color { c.A = a; return c }

// NRGBA converts to the non-premultiplied image/color type.
func (c Color) NRGBA() color.NRGBA { return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A} }

// blend composites src over dst with src alpha scaled by a (0..1).
func blend(dst, src Color, a float32) Color {
	a *= float32(src.A) / 255
	if a <= 0 {
		return dst
	}
	if a >= 1 {
		return src.WithAlpha(0xFF)
	}
	ia := 1 - a
	mix := func(d, s uint8) uint8 { return uint8(float32(s)*a + float32(d)*ia + 0.5) }
	return Color{R: mix(dst.R, src.R), G: mix(dst.G, src.G), B: mix(dst.B, src.B), A: 0xFF}
}
