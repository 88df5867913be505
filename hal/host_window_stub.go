//go:build !cgo

package hal

import "context"

// WindowConfig describes the desktop window.
type WindowConfig struct {
	Title         string
	Width, Height int
}

func RunWindow(_ context.Context, _ App, _ WindowConfig) error {
	return ErrNoWindow
}
