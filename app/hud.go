package app

import (
	"image/color"

	"flightglobe/fonts/font6x8"
	"flightglobe/geogl"

	"tinygo.org/x/tinyfont"
)

var (
	hudText   = color.RGBA{R: 0x1a, G: 0x1a, B: 0x2e, A: 0xFF}
	hudWarn   = color.RGBA{R: 0xb0, G: 0x10, B: 0x10, A: 0xFF}
	hudMarker = geogl.RGB(0x33, 0x33, 0x66)
)

const hudMargin = 3

type hudLabel struct {
	text string
	pos  geogl.Vec3
}

// hud draws route labels and a status line on top of the rendered frame.
type hud struct {
	title  string
	labels []hudLabel
}

func (h *hud) draw(t geogl.Target, cam *geogl.Camera, status string, warn bool) {
	d := targetDisplay{t: t}
	w, ht := t.Size()
	if w == 0 || ht == 0 {
		return
	}

	for _, l := range h.labels {
		x, y, ok := cam.Project(l.pos, w, ht)
		if !ok || !cam.Facing(l.pos, geogl.Normalize(l.pos)) {
			continue
		}
		px, py := int(x), int(y)
		d.fillRect(px-1, py-1, 3, 3, hudMarker)
		tinyfont.WriteLine(d, font6x8.Font, int16(px+4), int16(py+3), l.text, hudText)
	}

	if h.title != "" {
		tinyfont.WriteLine(d, font6x8.Font, hudMargin, hudMargin+font6x8.CellHeight-1, h.title, hudText)
	}
	if status != "" {
		c := hudText
		if warn {
			c = hudWarn
		}
		tinyfont.WriteLine(d, font6x8.Font, hudMargin, int16(ht-hudMargin), status, c)
	}
}
