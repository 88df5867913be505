package hal

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Hz int
	// Frames stops the runner after N rendered frames (0 = run until ctx is
	// done). Apps that implement FrameCounter are counted by their frames,
	// others by ticks.
	Frames uint64
	// Snapshot, if set, receives the last frame as PNG when the runner exits.
	Snapshot string
	// Width and Height, if positive, are applied with App.Resize before the
	// first tick.
	Width, Height int
}

// FrameCounter is implemented by apps whose ticks do not always render,
// such as one waiting on assets before its first frame.
type FrameCounter interface {
	Frames() uint64
}

// RunHeadless drives app from a ticker without opening a window. The
// snapshot is only written once at least one frame was rendered.
func RunHeadless(ctx context.Context, app App, cfg HeadlessConfig) (err error) {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		app.Resize(cfg.Width, cfg.Height)
	}

	var tick uint64
	rendered := func() uint64 { return tick }
	if fc, ok := app.(FrameCounter); ok {
		rendered = fc.Frames
	}
	defer func() {
		if cfg.Snapshot == "" || rendered() == 0 {
			return
		}
		if serr := WritePNG(cfg.Snapshot, app.Framebuffer()); serr != nil {
			err = errors.Join(err, fmt.Errorf("snapshot: %w", serr))
		}
	}()

	t := time.NewTicker(d)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			app.HandleInput(Input{})
			if err := app.Tick(); err != nil {
				tick++
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}
			tick++
			if cfg.Frames > 0 && rendered() >= cfg.Frames {
				return nil
			}
		}
	}
}
