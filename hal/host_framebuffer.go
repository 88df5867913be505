package hal

import (
	"image"
	"image/png"
	"os"
)

// ImageSource hands out the current backing image. The image may be
// replaced between calls, e.g. on resize.
type ImageSource interface {
	Image() *image.RGBA
}

type rgbaFramebuffer struct {
	src ImageSource
}

// NewRGBAFramebuffer exposes src as a Framebuffer.
func NewRGBAFramebuffer(src ImageSource) Framebuffer {
	return &rgbaFramebuffer{src: src}
}

func (f *rgbaFramebuffer) img() *image.RGBA {
	if f.src == nil {
		return nil
	}
	return f.src.Image()
}

func (f *rgbaFramebuffer) Width() int {
	if img := f.img(); img != nil {
		return img.Rect.Dx()
	}
	return 0
}

func (f *rgbaFramebuffer) Height() int {
	if img := f.img(); img != nil {
		return img.Rect.Dy()
	}
	return 0
}

func (f *rgbaFramebuffer) Format() PixelFormat { return PixelFormatRGBA8888 }

func (f *rgbaFramebuffer) StrideBytes() int {
	if img := f.img(); img != nil {
		return img.Stride
	}
	return 0
}

func (f *rgbaFramebuffer) Buffer() []byte {
	if img := f.img(); img != nil {
		return img.Pix
	}
	return nil
}

func (f *rgbaFramebuffer) ClearRGB(r, g, b uint8) {
	buf := f.Buffer()
	for i := 0; i+3 < len(buf); i += 4 {
		buf[i+0] = r
		buf[i+1] = g
		buf[i+2] = b
		buf[i+3] = 0xFF
	}
}

func (f *rgbaFramebuffer) Present() error { return nil }

// Snapshot copies fb into a new image.
func Snapshot(fb Framebuffer) *image.RGBA {
	w, h := fb.Width(), fb.Height()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if fb.Format() != PixelFormatRGBA8888 {
		return img
	}
	src := fb.Buffer()
	stride := fb.StrideBytes()
	for y := 0; y < h; y++ {
		off := y * stride
		if off+w*4 > len(src) {
			break
		}
		copy(img.Pix[y*img.Stride:y*img.Stride+w*4], src[off:off+w*4])
	}
	return img
}

// WritePNG writes a snapshot of fb to path.
func WritePNG(path string, fb Framebuffer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, Snapshot(fb)); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
