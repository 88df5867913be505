package geogl

import "image"

// Target is a minimal pixel target for software rendering.
//
// Implementations should clip out-of-bounds coordinates.
type Target interface {
	Size() (w, h int)
	SetPixel(x, y int, c Color)
	Pixel(x, y int) Color
	Clear(c Color)
}

// RGBATarget renders into an *image.RGBA. Pixels are stored opaque.
type RGBATarget struct {
	img *image.RGBA
}

// NewRGBATarget allocates a w x h target.
func NewRGBATarget(w, h int) *RGBATarget {
	t := &RGBATarget{}
	t.Resize(w, h)
	return t
}

// Resize reallocates the backing image when the size changes. Negative
// sizes are treated as zero.
func (t *RGBATarget) Resize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	if t.img != nil && t.img.Rect.Dx() == w && t.img.Rect.Dy() == h {
		return
	}
	t.img = image.NewRGBA(image.Rect(0, 0, w, h))
}

// Image returns the backing image. It is replaced by Resize.
func (t *RGBATarget) Image() *image.RGBA { return t.img }

func (t *RGBATarget) Size() (w, h int) {
	if t == nil || t.img == nil {
		return 0, 0
	}
	return t.img.Rect.Dx(), t.img.Rect.Dy()
}

func (t *RGBATarget) Clear(c Color) {
	if t == nil || t.img == nil {
		return
	}
	pix := t.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i] = c.R
		pix[i+1] = c.G
		pix[i+2] = c.B
		pix[i+3] = 0xFF
	}
}

func (t *RGBATarget) SetPixel(x, y int, c Color) {
	if t == nil || t.img == nil {
		return
	}
	w, h := t.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	i := t.img.PixOffset(x, y)
	t.img.Pix[i] = c.R
	t.img.Pix[i+1] = c.G
	t.img.Pix[i+2] = c.B
	t.img.Pix[i+3] = 0xFF
}

func (t *RGBATarget) Pixel(x, y int) Color {
	if t == nil || t.img == nil {
		return Color{}
	}
	w, h := t.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return Color{}
	}
	i := t.img.PixOffset(x, y)
	return Color{R: t.img.Pix[i], G: t.img.Pix[i+1], B: t.img.Pix[i+2], A: t.img.Pix[i+3]}
}
