//go:build cgo

package hal

import (
	"context"
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// WindowConfig describes the desktop window.
type WindowConfig struct {
	Title         string
	Width, Height int
}

// RunWindow opens a resizable desktop window that displays app's framebuffer
// and forwards pointer and keyboard input. It blocks until the window closes,
// Escape is pressed or ctx is done.
func RunWindow(ctx context.Context, app App, cfg WindowConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 960, 720
	}
	g := &hostGame{ctx: ctx, app: app, in: &hostInput{}}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ebiten.SyncWithFPS)
	return ebiten.RunGame(g)
}

type hostGame struct {
	ctx   context.Context
	app   App
	in    *hostInput
	fbImg *ebiten.Image
}

func (g *hostGame) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	in := g.in.poll()
	if in.Pressed(KeyEscape) {
		return ebiten.Termination
	}
	g.app.HandleInput(in)
	if err := g.app.Tick(); err != nil {
		if errors.Is(err, ErrQuit) {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.app.Framebuffer()
	w, h := fb.Width(), fb.Height()
	if w == 0 || h == 0 || fb.Format() != PixelFormatRGBA8888 || fb.StrideBytes() != w*4 {
		return
	}
	if g.fbImg == nil || g.fbImg.Bounds().Dx() != w || g.fbImg.Bounds().Dy() != h {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(w, h)
	}
	g.fbImg.WritePixels(fb.Buffer()[:w*h*4])
	screen.DrawImage(g.fbImg, nil)
}

// Layout follows the window size in device pixels so every resize reaches
// the app and HiDPI screens get a full resolution frame.
func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := 1.0
	if m := ebiten.Monitor(); m != nil {
		scale = m.DeviceScaleFactor()
	}
	w, h := DeviceSize(outsideWidth, outsideHeight, scale)
	g.app.Resize(w, h)
	return w, h
}
