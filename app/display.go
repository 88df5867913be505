package app

import (
	"image/color"

	"flightglobe/geogl"
)

// targetDisplay adapts a geogl.Target to drivers.Displayer for tinyfont.
type targetDisplay struct {
	t geogl.Target
}

func (d targetDisplay) Size() (x, y int16) {
	if d.t == nil {
		return 0, 0
	}
	w, h := d.t.Size()
	return int16(w), int16(h)
}

func (d targetDisplay) SetPixel(x, y int16, c color.RGBA) {
	if d.t == nil {
		return
	}
	w, h := d.t.Size()
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= w || iy < 0 || iy >= h {
		return
	}
	d.t.SetPixel(ix, iy, geogl.RGBA(c.R, c.G, c.B, c.A))
}

func (d targetDisplay) Display() error { return nil }

func (d targetDisplay) fillRect(x, y, w, h int, c geogl.Color) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			d.SetPixel(int16(xx), int16(yy), color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A})
		}
	}
}
