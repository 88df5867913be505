//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var keyMap = []struct {
	key  ebiten.Key
	code KeyCode
}{
	{ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyArrowLeft, KeyLeft},
	{ebiten.KeyArrowRight, KeyRight},
	{ebiten.KeyEscape, KeyEscape},
	{ebiten.KeyR, KeyReset},
	{ebiten.KeyEqual, KeyZoomIn},
	{ebiten.KeyKPAdd, KeyZoomIn},
	{ebiten.KeyMinus, KeyZoomOut},
	{ebiten.KeyKPSubtract, KeyZoomOut},
	{ebiten.KeyW, KeyWireframe},
}

type hostInput struct {
	dragging     bool
	lastX, lastY int
}

func (h *hostInput) poll() Input {
	var in Input

	x, y := ebiten.CursorPosition()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		h.dragging = true
		h.lastX, h.lastY = x, y
	}
	if h.dragging {
		if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
			in.DragX = float64(x - h.lastX)
			in.DragY = float64(y - h.lastY)
			h.lastX, h.lastY = x, y
		} else {
			h.dragging = false
		}
	}
	_, in.Wheel = ebiten.Wheel()

	for _, m := range keyMap {
		if inpututil.IsKeyJustPressed(m.key) {
			in.Keys = append(in.Keys, KeyEvent{Code: m.code, Press: true})
		}
		if inpututil.IsKeyJustReleased(m.key) {
			in.Keys = append(in.Keys, KeyEvent{Code: m.code, Press: false})
		}
		if ebiten.IsKeyPressed(m.key) {
			in.Held = append(in.Held, m.code)
		}
	}
	return in
}
