package font6x8

import (
	"image/color"
	"testing"

	"tinygo.org/x/tinyfont"
)

type pixel struct{ x, y int16 }

type recordDisplay struct {
	set map[pixel]color.RGBA
}

func newRecordDisplay() *recordDisplay { return &recordDisplay{set: map[pixel]color.RGBA{}} }

func (d *recordDisplay) Size() (int16, int16) { return 128, 32 }

func (d *recordDisplay) SetPixel(x, y int16, c color.RGBA) { d.set[pixel{x, y}] = c }

func (d *recordDisplay) Display() error { return nil }

func TestGlyphBang(t *testing.T) {
	d := newRecordDisplay()
	g := Font.GetGlyph('!')
	g.Draw(d, 10, 20, color.RGBA{R: 255, A: 255})

	if len(d.set) != 6 {
		t.Fatalf("pixels = %d, want 6", len(d.set))
	}
	for p := range d.set {
		if p.x != 12 {
			t.Fatalf("pixel at x=%d, want column 12", p.x)
		}
		if p.y < 13 || p.y > 19 {
			t.Fatalf("pixel at y=%d outside cell", p.y)
		}
	}
	if _, ok := d.set[pixel{12, 18}]; ok {
		t.Fatal("gap row of '!' is set")
	}
}

func TestGlyphInfo(t *testing.T) {
	info := Font.GetGlyph('A').Info()
	if info.XAdvance != CellWidth || info.Height != CellHeight || info.YOffset != -7 {
		t.Fatalf("info = %+v", info)
	}
	if Font.GetYAdvance() != CellHeight {
		t.Fatalf("yadvance = %d", Font.GetYAdvance())
	}
}

func TestUnknownRuneFallsBack(t *testing.T) {
	a := newRecordDisplay()
	b := newRecordDisplay()
	Font.GetGlyph('é').Draw(a, 0, 7, color.RGBA{A: 255})
	Font.GetGlyph('?').Draw(b, 0, 7, color.RGBA{A: 255})
	if len(a.set) == 0 || len(a.set) != len(b.set) {
		t.Fatalf("fallback pixels = %d, '?' pixels = %d", len(a.set), len(b.set))
	}
	for p := range b.set {
		if _, ok := a.set[p]; !ok {
			t.Fatalf("fallback missing pixel %+v", p)
		}
	}
}

func TestWriteLine(t *testing.T) {
	d := newRecordDisplay()
	tinyfont.WriteLine(d, Font, 0, 7, "HI", color.RGBA{G: 255, A: 255})
	var maxX int16
	for p := range d.set {
		maxX = max(maxX, p.x)
	}
	if maxX < CellWidth || maxX >= 2*CellWidth {
		t.Fatalf("second glyph not advanced, max x = %d", maxX)
	}
	if got := TextWidth("HI"); got != 12 {
		t.Fatalf("TextWidth = %d", got)
	}
}

func TestGlyphTableSize(t *testing.T) {
	if want := (lastRune - firstRune + 1) * 5; len(glyphData) != want {
		t.Fatalf("glyphData len = %d, want %d", len(glyphData), want)
	}
}
