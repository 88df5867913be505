// Package hal is the host layer between the viewer and the outside world: a
// desktop window on ebiten, or a headless ticker that can snapshot frames.
package hal

import "errors"

var (
	// ErrNoWindow is returned by RunWindow in builds without a window backend.
	ErrNoWindow = errors.New("hal: window mode requires cgo (build/run with CGO_ENABLED=1)")

	// ErrQuit may be returned from App.Tick to end the host loop cleanly.
	ErrQuit = errors.New("hal: quit")
)

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGBA8888 is 32bpp, non-premultiplied, R first.
	PixelFormatRGBA8888 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEscape
	KeyReset
	KeyZoomIn
	KeyZoomOut
	KeyWireframe
)

// KeyEvent is a keyboard event.
type KeyEvent struct {
	Code  KeyCode
	Press bool
}

// Input is the pointer and keyboard state collected during one tick.
type Input struct {
	// DragX and DragY are the pointer movement in pixels while the primary
	// button is held.
	DragX, DragY float64
	// Wheel is the vertical scroll offset; positive scrolls up.
	Wheel float64
	// Keys are the press/release edges seen this tick.
	Keys []KeyEvent
	// Held lists keys that are down at the end of the tick.
	Held []KeyCode
}

// Pressed reports whether code had a press edge this tick.
func (in Input) Pressed(code KeyCode) bool {
	for _, ev := range in.Keys {
		if ev.Code == code && ev.Press {
			return true
		}
	}
	return false
}

// IsHeld reports whether code is down.
func (in Input) IsHeld(code KeyCode) bool {
	for _, c := range in.Held {
		if c == code {
			return true
		}
	}
	return false
}

// Empty reports whether the tick carried no input at all.
func (in Input) Empty() bool {
	return in.DragX == 0 && in.DragY == 0 && in.Wheel == 0 && len(in.Keys) == 0 && len(in.Held) == 0
}

// App is driven by a host: input first, then one Tick per display refresh.
// Resize may arrive at any time between ticks.
type App interface {
	HandleInput(in Input)
	Tick() error
	Resize(w, h int)
	Framebuffer() Framebuffer
}
