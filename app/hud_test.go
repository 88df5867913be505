package app

import (
	"errors"
	"strings"
	"testing"

	"flightglobe/geogl"
)

func countColor(t *geogl.RGBATarget, c geogl.Color) int {
	w, h := t.Size()
	n := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := t.Pixel(x, y)
			if p.R == c.R && p.G == c.G && p.B == c.B {
				n++
			}
		}
	}
	return n
}

func TestHUDDrawsVisibleLabelsOnly(t *testing.T) {
	target := geogl.NewRGBATarget(200, 200)
	cam := geogl.NewOrthographicCamera(200, 1, 1, 10000)
	cam.Position = geogl.V3(0, 0, 200)
	cam.LookAt(geogl.Vec3{})
	text := geogl.RGB(hudText.R, hudText.G, hudText.B)

	front := &hud{labels: []hudLabel{{text: "F", pos: geogl.V3(0, 0, 130)}}}
	target.Clear(geogl.White)
	front.draw(target, cam, "", false)
	if countColor(target, text) == 0 {
		t.Fatal("front label not drawn")
	}

	back := &hud{labels: []hudLabel{{text: "B", pos: geogl.V3(0, 0, -130)}}}
	target.Clear(geogl.White)
	back.draw(target, cam, "", false)
	if n := countColor(target, text); n != 0 {
		t.Fatalf("hidden label drew %d pixels", n)
	}
	if n := countColor(target, hudMarker); n != 0 {
		t.Fatalf("hidden marker drew %d pixels", n)
	}
}

func TestHUDStatusColor(t *testing.T) {
	target := geogl.NewRGBATarget(120, 40)
	cam := geogl.NewOrthographicCamera(1, 3, 1, 100)
	h := &hud{}

	target.Clear(geogl.White)
	h.draw(target, cam, "warn", true)
	if countColor(target, geogl.RGB(hudWarn.R, hudWarn.G, hudWarn.B)) == 0 {
		t.Fatal("warning not drawn in warning color")
	}

	h.draw(geogl.NewRGBATarget(0, 0), cam, "ignored", false)
}

func TestDrawPanic(t *testing.T) {
	target := geogl.NewRGBATarget(120, 60)
	target.Clear(geogl.Violet)
	drawPanic(target, errors.New("boom"), []byte("goroutine 1 [running]:\n\tmain.go:1\n"))

	if countColor(target, geogl.Violet) != 0 {
		t.Fatal("panic screen did not clear the frame")
	}
	if countColor(target, geogl.RGB(0, 0, 0)) == 0 {
		t.Fatal("panic text not drawn")
	}
	drawPanic(nil, "x", nil)
}

func TestTakeRunes(t *testing.T) {
	tests := []struct {
		in         string
		n          int
		head, rest string
	}{
		{"hello", 10, "hello", ""},
		{"hello", 2, "he", "llo"},
		{"", 3, "", ""},
		{"héllo", 2, "hé", "llo"},
	}
	for _, tt := range tests {
		head, rest := takeRunes(tt.in, tt.n)
		if head != tt.head || rest != tt.rest {
			t.Fatalf("takeRunes(%q, %d) = %q, %q", tt.in, tt.n, head, rest)
		}
	}
	if head, _ := takeRunes(strings.Repeat("a", 5), 0); head != "" {
		t.Fatal("n=0 should take nothing")
	}
}
