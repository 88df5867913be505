package geogl

import (
	"errors"
	"image"
	"image/draw"
	"math"
)

// Filter selects texture sampling.
type Filter uint8

const (
	FilterLinear Filter = iota
	FilterNearest
)

// ErrEmptyTexture reports an image with no pixels.
var ErrEmptyTexture = errors.New("geogl: empty texture")

// Texture is an immutable RGBA image sampled with normalized coordinates.
type Texture struct {
	Filter Filter

	w, h int
	pix  []uint8 // NRGBA, stride w*4
}

// NewTexture copies img into a texture.
func NewTexture(img image.Image) (*Texture, error) {
	if img == nil {
		return nil, ErrEmptyTexture
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrEmptyTexture
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return &Texture{w: b.Dx(), h: b.Dy(), pix: dst.Pix}, nil
}

// SolidTexture returns a 1x1 texture of color c.
func SolidTexture(c Color) *Texture {
	return &Texture{w: 1, h: 1, pix: []uint8{c.R, c.G, c.B, c.A}}
}

func (t *Texture) Size() (w, h int) { return t.w, t.h }

// Sample returns the color at (u, v), both clamped to [0, 1]. v=0 is the top
// row.
func (t *Texture) Sample(u, v float32) Color {
	if t == nil || t.w == 0 || t.h == 0 {
		return White
	}
	u = Clamp01(u)
	v = Clamp01(v)
	if t.Filter == FilterNearest {
		x := int(u*float32(t.w-1) + 0.5)
		y := int(v*float32(t.h-1) + 0.5)
		return t.at(x, y)
	}

	fx := u*float32(t.w) - 0.5
	fy := v*float32(t.h) - 0.5
	x0 := int(math.Floor(float64(fx)))
	y0 := int(math.Floor(float64(fy)))
	ax := fx - float32(x0)
	ay := fy - float32(y0)

	c00 := t.at(x0, y0)
	c10 := t.at(x0+1, y0)
	c01 := t.at(x0, y0+1)
	c11 := t.at(x0+1, y0+1)
	lerp := func(a, b, c, d uint8) uint8 {
		top := float32(a)*(1-ax) + float32(b)*ax
		bot := float32(c)*(1-ax) + float32(d)*ax
		return uint8(top*(1-ay) + bot*ay + 0.5)
	}
	return Color{
		R: lerp(c00.R, c10.R, c01.R, c11.R),
		G: lerp(c00.G, c10.G, c01.G, c11.G),
		B: lerp(c00.B, c10.B, c01.B, c11.B),
		A: lerp(c00.A, c10.A, c01.A, c11.A),
	}
}

func (t *Texture) at(x, y int) Color {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x >= t.w {
		x = t.w - 1
	}
	if y >= t.h {
		y = t.h - 1
	}
	i := (y*t.w + x) * 4
	return Color{R: t.pix[i], G: t.pix[i+1], B: t.pix[i+2], A: t.pix[i+3]}
}
