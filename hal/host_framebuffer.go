package hal

import (
	"fmt"
	"image"
	"sync"
)

// hostFramebuffer holds the last presented frame as RGBA8888.
type hostFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	buf    []byte
	frames uint64
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	return &hostFramebuffer{
		width:  width,
		height: height,
		buf:    make([]byte, width*height*4),
	}
}

func (f *hostFramebuffer) Width() int  { return f.width }
func (f *hostFramebuffer) Height() int { return f.height }

// Present copies the overlapping region of img. A smaller frame (the
// placeholder, for example) is anchored top-left and the rest is cleared.
func (f *hostFramebuffer) Present(img *image.RGBA) error {
	if img == nil {
		return fmt.Errorf("hal: present nil frame")
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	src, stride := img.Pix[img.PixOffset(b.Min.X, b.Min.Y):], img.Stride

	f.mu.Lock()
	defer f.mu.Unlock()
	if w != f.width || h != f.height {
		clear(f.buf)
	}
	rowBytes := min(w, f.width) * 4
	for y := 0; y < min(h, f.height); y++ {
		copy(f.buf[y*f.width*4:y*f.width*4+rowBytes], src[y*stride:y*stride+rowBytes])
	}
	f.frames++
	return nil
}

func (f *hostFramebuffer) snapshot(dst []byte) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.buf)
	return f.frames
}
