package app

import (
	"fmt"
	"image/color"
	"strings"
	"unicode/utf8"

	"flightglobe/fonts/font6x8"
	"flightglobe/geogl"

	"tinygo.org/x/tinyfont"
)

// drawPanic replaces the frame with the panic value and stack so a crashed
// frame is visible in the window instead of freezing on the last image.
func drawPanic(t geogl.Target, value any, stack []byte) {
	if t == nil {
		return
	}
	w, h := t.Size()
	if w == 0 || h == 0 {
		return
	}
	t.Clear(geogl.White)

	lines := []string{
		"Flight Globe panic:",
		fmt.Sprintf("panic: %v", value),
	}
	if len(stack) > 0 {
		lines = append(lines, "stack:")
		for _, line := range strings.Split(string(stack), "\n") {
			if line == "" {
				continue
			}
			lines = append(lines, strings.ReplaceAll(line, "\t", "  "))
		}
	} else {
		lines = append(lines, "stack: unavailable")
	}

	d := targetDisplay{t: t}
	fg := color.RGBA{A: 255}
	cols := w / font6x8.CellWidth
	if cols <= 0 {
		cols = 1
	}

	y := 0
	for _, line := range lines {
		for len(line) > 0 {
			if y+font6x8.CellHeight > h {
				return
			}
			chunk, rest := takeRunes(line, cols)
			tinyfont.WriteLine(d, font6x8.Font, 0, int16(y+font6x8.CellHeight-1), chunk, fg)
			y += font6x8.CellHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	var i, count int
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
