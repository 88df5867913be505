// Package font6x8 is the HUD's monospace bitmap font (6x8 cells, 5x7 glyphs,
// printable ASCII). Unknown runes render as '?'.
package font6x8

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

const (
	firstRune = 0x20
	lastRune  = 0x7E

	// CellWidth and CellHeight are the advance and line height in pixels.
	CellWidth  = 6
	CellHeight = 8
)

// Font implements tinyfont.Fonter.
// Concurrent access is not safe due to internal glyph reuse.
var Font tinyfont.Fonter = &font6x8{}

type font6x8 struct {
	g glyph
}

type glyph struct {
	r rune
}

func (g *glyph) Draw(display drivers.Displayer, x, y int16, c color.RGBA) {
	base := glyphIndex(g.r) * 5
	for col := 0; col < 5; col++ {
		b := glyphData[base+col]
		for row := 0; row < 7; row++ {
			if b&(1<<row) == 0 {
				continue
			}
			display.SetPixel(x+int16(col), y-int16(7-row), c)
		}
	}
}

func (g *glyph) Info() tinyfont.GlyphInfo {
	return tinyfont.GlyphInfo{
		Rune:     g.r,
		Width:    CellWidth,
		Height:   CellHeight,
		XAdvance: CellWidth,
		XOffset:  0,
		YOffset:  -7,
	}
}

func (f *font6x8) GetYAdvance() uint8 { return CellHeight }

func (f *font6x8) GetGlyph(r rune) tinyfont.Glypher {
	f.g.r = r
	return &f.g
}

func glyphIndex(r rune) int {
	if r < firstRune || r > lastRune {
		r = '?'
	}
	return int(r - firstRune)
}

// TextWidth returns the pixel width of s.
func TextWidth(s string) int {
	n := 0
	for range s {
		n++
	}
	return n * CellWidth
}
