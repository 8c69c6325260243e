// video_frame_rgba.go - Canvas to RGBA conversion and the presenting graphics sink

package main

import (
	"image"
	"sync"
)

// FrameRGBA expands a SMUSH canvas into RGBA. Palette mode canvases hold
// one index per pixel, high colour canvases hold RGB565 little endian.
func FrameRGBA(dst, canvas []byte, palette *[768]byte, highColor bool) {
	if highColor {
		for i := 0; i+1 < len(canvas) && i*2+3 < len(dst); i += 2 {
			v := uint16(canvas[i]) | uint16(canvas[i+1])<<8
			r := byte(v>>11) & 0x1F
			g := byte(v>>5) & 0x3F
			b := byte(v) & 0x1F
			o := i * 2
			dst[o] = r<<3 | r>>2
			dst[o+1] = g<<2 | g>>4
			dst[o+2] = b<<3 | b>>2
			dst[o+3] = 0xFF
		}
		return
	}
	for i, idx := range canvas {
		o := i * 4
		if o+3 >= len(dst) {
			return
		}
		p := int(idx) * 3
		dst[o] = palette[p]
		dst[o+1] = palette[p+1]
		dst[o+2] = palette[p+2]
		dst[o+3] = 0xFF
	}
}

// FramePresenter is the GraphicsSink used for playback. It keeps its own
// copy of the canvas and pushes RGBA frames to a VideoOutput.
type FramePresenter struct {
	mu        sync.Mutex
	out       VideoOutput
	width     int
	height    int
	highColor bool
	palette   [768]byte
	canvas    []byte
	rgba      []byte
	presented uint64
}

func NewFramePresenter(out VideoOutput, width, height int, highColor bool) *FramePresenter {
	bpp := 1
	if highColor {
		bpp = 2
	}
	return &FramePresenter{
		out:       out,
		width:     width,
		height:    height,
		highColor: highColor,
		canvas:    make([]byte, width*height*bpp),
		rgba:      make([]byte, width*height*4),
	}
}

func (fp *FramePresenter) SetPalette(rgb []byte, start, count int) {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	if start < 0 || start >= 256 {
		return
	}
	count = min(count, 256-start, len(rgb)/3)
	copy(fp.palette[start*3:(start+count)*3], rgb)
}

func (fp *FramePresenter) Blit(pixels []byte, x, y, width, height, pitch int) {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	bpp := 1
	if fp.highColor {
		bpp = 2
	}
	for row := 0; row < height; row++ {
		dy := y + row
		if dy < 0 || dy >= fp.height {
			continue
		}
		x0 := max(x, 0)
		x1 := min(x+width, fp.width)
		if x0 >= x1 {
			return
		}
		src := row*pitch + (x0-x)*bpp
		if src >= len(pixels) {
			return
		}
		dst := (dy*fp.width + x0) * bpp
		copy(fp.canvas[dst:dst+(x1-x0)*bpp], pixels[src:])
	}
}

func (fp *FramePresenter) PresentFrame() {
	fp.mu.Lock()
	FrameRGBA(fp.rgba, fp.canvas, &fp.palette, fp.highColor)
	fp.presented++
	frame := fp.rgba
	fp.mu.Unlock()
	if fp.out != nil {
		fp.out.UpdateFrame(frame)
	}
}

// Presented is the number of PresentFrame calls so far.
func (fp *FramePresenter) Presented() uint64 {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	return fp.presented
}

// Snapshot returns the last presented frame as an image.
func (fp *FramePresenter) Snapshot() *image.RGBA {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	img := image.NewRGBA(image.Rect(0, 0, fp.width, fp.height))
	copy(img.Pix, fp.rgba)
	return img
}
