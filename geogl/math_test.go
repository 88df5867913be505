package geogl

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/golang/geo/r3"
)

func TestMat4MulIdentity(t *testing.T) {
	a := mgl32.Ident4()
	b := mgl32.Translate3D(1, 2, 3)
	if got := a.Mul4(b); got != b {
		t.Fatalf("identity*a mismatch")
	}
	if got := b.Mul4(a); got != b {
		t.Fatalf("a*identity mismatch")
	}
}

func TestLookAtNotIdentity(t *testing.T) {
	cam := NewOrthographicCamera(1, 1, 1, 100)
	cam.Position = V3(0, 0, 3)
	if cam.View() == mgl32.Ident4() {
		t.Fatalf("lookAt unexpectedly identity")
	}
}

func TestFromR3(t *testing.T) {
	got := FromR3s([]r3.Vector{{X: 1, Y: 2, Z: 3}, {X: -1}})
	if len(got) != 2 || got[0] != V3(1, 2, 3) || got[1] != V3(-1, 0, 0) {
		t.Fatalf("FromR3s = %v", got)
	}
}

func TestNormalizeZero(t *testing.T) {
	if got := Normalize(Vec3{}); got != (Vec3{}) {
		t.Fatalf("Normalize(0) = %v", got)
	}
}

func TestColorOps(t *testing.T) {
	if got := Hex(0xb9d3ff); got != RGB(0xb9, 0xd3, 0xff) {
		t.Fatalf("Hex = %v", got)
	}
	if got := White.Modulate(Violet); got != Violet {
		t.Fatalf("White.Modulate(Violet) = %v", got)
	}
	if got := White.MulScalar(0); got != RGB(0, 0, 0) {
		t.Fatalf("MulScalar(0) = %v", got)
	}
	if got := blend(RGB(0, 0, 0), RGBA(255, 255, 255, 0), 1); got != RGB(0, 0, 0) {
		t.Fatalf("transparent blend changed dst: %v", got)
	}
	if got := blend(RGB(0, 0, 0), White, 1); got != White {
		t.Fatalf("opaque blend = %v", got)
	}
}
