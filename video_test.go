// video_test.go - Tests for RGBA conversion, the presenter and the frame dumper

package main

import (
	"bytes"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func TestFrameRGBAPalette(t *testing.T) {
	var pal [768]byte
	pal[3], pal[4], pal[5] = 10, 20, 30
	dst := make([]byte, 8)
	FrameRGBA(dst, []byte{1, 0}, &pal, false)
	if want := []byte{10, 20, 30, 255, 0, 0, 0, 255}; !bytes.Equal(dst, want) {
		t.Fatalf("got %v, want %v", dst, want)
	}
}

func TestFrameRGBAHighColor(t *testing.T) {
	dst := make([]byte, 12)
	// pure red, pure green, pure blue in RGB565 little endian
	FrameRGBA(dst, []byte{0x00, 0xF8, 0xE0, 0x07, 0x1F, 0x00}, nil, true)
	want := []byte{255, 0, 0, 255, 0, 255, 0, 255, 0, 0, 255, 255}
	if !bytes.Equal(dst, want) {
		t.Fatalf("got %v, want %v", dst, want)
	}
}

func TestFramePresenterPushesFrames(t *testing.T) {
	out := NewHeadlessVideoOutput()
	fp := NewFramePresenter(out, 2, 1, false)
	fp.SetPalette([]byte{1, 2, 3, 4, 5, 6}, 0, 2)
	fp.SetPalette([]byte{9, 9, 9}, 300, 1)
	fp.Blit([]byte{1, 0}, 0, 0, 2, 1, 2)
	fp.PresentFrame()

	if out.GetFrameCount() != 1 || fp.Presented() != 1 {
		t.Fatalf("expected one frame, output %d presenter %d", out.GetFrameCount(), fp.Presented())
	}
	if want := []byte{4, 5, 6, 255, 1, 2, 3, 255}; !bytes.Equal(out.LastFrame(), want) {
		t.Fatalf("got %v, want %v", out.LastFrame(), want)
	}
	if c := fp.Snapshot().RGBAAt(0, 0); c != (color.RGBA{4, 5, 6, 255}) {
		t.Fatalf("snapshot pixel %v", c)
	}
}

func TestFramePresenterClipsBlit(t *testing.T) {
	fp := NewFramePresenter(nil, 2, 2, false)
	fp.Blit([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9}, -1, 1, 3, 3, 3)
	if want := []byte{0, 0, 2, 3}; !bytes.Equal(fp.canvas, want) {
		t.Fatalf("got %v, want %v", fp.canvas, want)
	}
}

func TestFrameDumperWritesBMP(t *testing.T) {
	dir := t.TempDir()
	fp := NewFramePresenter(nil, 2, 2, true)
	d := NewFrameDumper(fp, dir, quietLogger())
	d.Blit([]byte{0x00, 0xF8, 0x00, 0xF8, 0x00, 0xF8, 0x00, 0xF8}, 0, 0, 2, 2, 4)
	d.PresentFrame()
	d.PresentFrame()
	if d.Written() != 2 || d.Err() != nil {
		t.Fatalf("written %d err %v", d.Written(), d.Err())
	}

	f, err := os.Open(filepath.Join(dir, "frame_00001.bmp"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := bmp.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Fatalf("bounds %v", b)
	}
	r, g, b, _ := img.At(1, 1).RGBA()
	if r>>8 != 255 || g != 0 || b != 0 {
		t.Fatalf("expected red, got %d %d %d", r>>8, g>>8, b>>8)
	}
}

func TestFrameDumperStopsOnError(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	d := NewFrameDumper(NewFramePresenter(nil, 1, 1, false), dir, quietLogger())
	d.PresentFrame()
	d.PresentFrame()
	if d.Err() == nil {
		t.Fatal("expected a write error")
	}
	if d.Written() != 1 || d.Presented() != 2 {
		t.Fatalf("dumping must stop while presenting continues: written %d presented %d", d.Written(), d.Presented())
	}
}

func TestNewVideoOutputUnknownBackend(t *testing.T) {
	_, err := NewVideoOutput(42)
	var ve *VideoError
	if !errors.As(err, &ve) || ve.Operation != "backend creation" {
		t.Fatalf("expected a VideoError, got %v", err)
	}
}

func TestHeadlessOutputLifecycle(t *testing.T) {
	out, err := NewVideoOutput(VIDEO_BACKEND_HEADLESS)
	if err != nil {
		t.Fatal(err)
	}
	if err := out.SetDisplayConfig(DisplayConfig{Width: 320, Height: 200, Scale: 2}); err != nil {
		t.Fatal(err)
	}
	out.Start()
	if !out.IsStarted() || out.GetDisplayConfig().Width != 320 {
		t.Fatal("headless output not configured")
	}
	out.Close()
	if out.IsStarted() {
		t.Fatal("Close must stop the output")
	}
}

func TestClampScale(t *testing.T) {
	for in, want := range map[int]int{0: 1, 1: 1, 3: 3, 9: 4, -2: 1} {
		if got := ClampScale(in); got != want {
			t.Errorf("ClampScale(%d) = %d, want %d", in, got, want)
		}
	}
}
