package geogl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"os"
	"sync"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// DefaultMaxTextureSize bounds the longest edge of a loaded texture.
const DefaultMaxTextureSize = 2048

const maxTextureBytes = 32 * 1024 * 1024

// maxDecodeFactor bounds the declared image edge to this multiple of the
// texture size limit, checked before any pixels are decoded.
const maxDecodeFactor = 8

// ErrTextureTooLarge reports a texture file above the loader's byte limit or
// an image whose declared dimensions are too large to decode.
var ErrTextureTooLarge = errors.New("geogl: texture file too large")

// ErrUnsupportedTexture reports data in none of the registered image formats.
var ErrUnsupportedTexture = errors.New("geogl: unsupported texture format")

// ErrPending is returned by TextureRequest.Result before the load finishes.
var ErrPending = errors.New("geogl: texture load pending")

// TextureLoader loads textures in the background.
type TextureLoader struct {
	// FS is the file system paths are resolved against. Nil means the host
	// file system with paths used as given.
	FS fs.FS
	// MaxSize bounds the longest texture edge; larger images are resampled.
	MaxSize int
	Filter  Filter
}

// Load starts loading path and returns immediately.
//
// Cancelling ctx (or calling Cancel) resolves the request with the context
// error if decoding has not finished yet.
func (l *TextureLoader) Load(ctx context.Context, path string) *TextureRequest {
	ctx, cancel := context.WithCancel(ctx)
	req := &TextureRequest{path: path, done: make(chan struct{}), cancel: cancel}
	go func() {
		defer cancel()
		tex, err := l.load(ctx, path)
		if err == nil {
			err = ctx.Err()
		}
		if err != nil {
			tex = nil
		}
		req.resolve(tex, err)
	}()
	return req
}

// LoadSync loads path on the calling goroutine.
func (l *TextureLoader) LoadSync(path string) (*Texture, error) {
	return l.load(context.Background(), path)
}

func (l *TextureLoader) load(ctx context.Context, path string) (*Texture, error) {
	var (
		f   io.ReadCloser
		err error
	)
	if l.FS != nil {
		f, err = l.FS.Open(path)
	} else {
		f, err = os.Open(path)
	}
	if err != nil {
		return nil, fmt.Errorf("geogl: open texture %s: %w", path, err)
	}
	defer f.Close()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tex, err := DecodeTexture(f, l.maxSize())
	if err != nil {
		return nil, fmt.Errorf("geogl: texture %s: %w", path, err)
	}
	tex.Filter = l.Filter
	return tex, nil
}

func (l *TextureLoader) maxSize() int {
	if l == nil || l.MaxSize <= 0 {
		return DefaultMaxTextureSize
	}
	return l.MaxSize
}

// DecodeTexture decodes a png, jpeg, gif, bmp or webp image and downsamples
// it so its longest edge is at most maxSize.
func DecodeTexture(r io.Reader, maxSize int) (*Texture, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxTextureBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	if len(data) > maxTextureBytes {
		return nil, ErrTextureTooLarge
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if errors.Is(err, image.ErrFormat) {
		return nil, ErrUnsupportedTexture
	}
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if limit := decodeLimit(maxSize); cfg.Width > limit || cfg.Height > limit {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d", ErrTextureTooLarge, cfg.Width, cfg.Height, limit)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return NewTexture(downsample(img, maxSize))
}

func decodeLimit(maxSize int) int {
	if maxSize <= 0 {
		maxSize = DefaultMaxTextureSize
	}
	return maxSize * maxDecodeFactor
}

func downsample(img image.Image, maxSize int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return img
	}
	if w >= h {
		h = max(1, h*maxSize/w)
		w = maxSize
	} else {
		w = max(1, w*maxSize/h)
		h = maxSize
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// TextureRequest is the pending result of TextureLoader.Load.
type TextureRequest struct {
	path   string
	done   chan struct{}
	cancel context.CancelFunc

	mu  sync.Mutex
	tex *Texture
	err error
}

func (r *TextureRequest) resolve(tex *Texture, err error) {
	r.mu.Lock()
	r.tex, r.err = tex, err
	r.mu.Unlock()
	close(r.done)
}

// Path returns the requested path.
func (r *TextureRequest) Path() string { return r.path }

// Done is closed once the request resolves.
func (r *TextureRequest) Done() <-chan struct{} { return r.done }

// Ready reports whether the request has resolved, without blocking.
func (r *TextureRequest) Ready() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

// Result returns the loaded texture, or ErrPending if the load is still
// running.
func (r *TextureRequest) Result() (*Texture, error) {
	if !r.Ready() {
		return nil, ErrPending
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tex, r.err
}

// Wait blocks until the request resolves or ctx is done.
func (r *TextureRequest) Wait(ctx context.Context) (*Texture, error) {
	select {
	case <-r.done:
		return r.Result()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// OnReady runs fn on a new goroutine once the request resolves.
// Callers that touch a scene should poll Ready from their own loop instead.
func (r *TextureRequest) OnReady(fn func(*Texture, error)) {
	go func() {
		<-r.done
		fn(r.Result())
	}()
}

// Cancel abandons the load.
func (r *TextureRequest) Cancel() { r.cancel() }
