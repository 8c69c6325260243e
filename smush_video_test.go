// smush_video_test.go - Tests for container loading and frame size detection

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
)

func TestLoadANIMv1Defaults(t *testing.T) {
	pal := []byte{10, 20, 30, 40, 50, 60}
	b := newANIMBuilder(1, pal).frame(fobj(1, 0, 0, 0, 4, 2, join(codec1Row(1, 2, 3, 4), codec1Row(5, 6, 7, 8))))
	v := loadTestVideo(t, b, newRecordingAudio())

	desc := v.Descriptor()
	if desc.Tag != TAG_ANIM || desc.Version != 1 || desc.FrameCount != 1 {
		t.Fatalf("unexpected descriptor %+v", desc)
	}
	if desc.Width != 4 || desc.Height != 2 {
		t.Fatalf("expected 4x2 canvas, got %dx%d", desc.Width, desc.Height)
	}
	if desc.FrameRate != animDefaultFrameRate || desc.AudioRate != animDefaultAudioRate {
		t.Fatalf("expected default rates, got %d fps %d Hz", desc.FrameRate, desc.AudioRate)
	}
	if desc.HighColor {
		t.Fatal("ANIM must be palette mode")
	}
	if !bytes.Equal(v.HeaderPalette()[:6], pal) {
		t.Fatalf("header palette not kept: %v", v.HeaderPalette()[:6])
	}
	if len(v.CurrentFrame()) != 8 {
		t.Fatalf("expected 8 byte frame buffer, got %d", len(v.CurrentFrame()))
	}
}

func TestLoadANIMv2Rates(t *testing.T) {
	b := newANIMv2Builder(1, 12, 22050).frame(fobj(37, 0, 0, 0, 320, 200, nil))
	v := loadTestVideo(t, b, newRecordingAudio())
	desc := v.Descriptor()
	if desc.FrameRate != 12 || desc.AudioRate != 22050 {
		t.Fatalf("expected 12 fps 22050 Hz, got %d fps %d Hz", desc.FrameRate, desc.AudioRate)
	}
	if desc.Width != 320 || desc.Height != 200 {
		t.Fatalf("expected 320x200, got %dx%d", desc.Width, desc.Height)
	}
}

func TestLoadSANMHeader(t *testing.T) {
	b := newSANMBuilder(7, 640, 480, 66667, 22050, 2)
	v := loadTestVideo(t, b, newRecordingAudio())
	desc := v.Descriptor()
	if desc.Tag != TAG_SANM || !desc.HighColor {
		t.Fatalf("expected high colour SANM, got %+v", desc)
	}
	if desc.FrameCount != 7 || desc.Width != 640 || desc.Height != 480 {
		t.Fatalf("unexpected geometry %+v", desc)
	}
	if desc.AudioRate != 22050 || desc.AudioChannels != 2 {
		t.Fatalf("expected FLHD audio 22050 Hz stereo, got %d Hz %d ch", desc.AudioRate, desc.AudioChannels)
	}
	if len(v.CurrentFrame()) != 640*480*2 {
		t.Fatalf("expected 16bpp frame buffer, got %d bytes", len(v.CurrentFrame()))
	}
}

func TestFrameSizeSkipsSinglePixelObjects(t *testing.T) {
	b := newANIMBuilder(8, nil)
	for i := 0; i < 5; i++ {
		b.frame(fobj(1, 0, 0, 0, 1, 1, codec1Row(1)))
	}
	b.frame(fobj(37, 0, 0, 0, 320, 200, nil))
	// later frames with another size must not override the first match
	b.frame(fobj(37, 0, 0, 0, 640, 480, nil))
	b.raw(chunk("JUNK"))
	v := loadTestVideo(t, b, newRecordingAudio())

	desc := v.Descriptor()
	if desc.Width != 320 || desc.Height != 200 {
		t.Fatalf("expected 320x200 from the sixth frame, got %dx%d", desc.Width, desc.Height)
	}
	// the scan must not consume any frames
	if err := v.DecodeNextFrame(&recordingGraphics{}); err != nil {
		t.Fatalf("first frame after detection: %v", err)
	}
}

func TestFrameSizeAddsObjectOffset(t *testing.T) {
	b := newANIMBuilder(1, nil).frame(fobj(1, 0, 2, 1, 4, 2, nil))
	v := loadTestVideo(t, b, newRecordingAudio())
	desc := v.Descriptor()
	if desc.Width != 6 || desc.Height != 3 {
		t.Fatalf("expected 6x3, got %dx%d", desc.Width, desc.Height)
	}
}

func TestFrameSizeFailure(t *testing.T) {
	b := newANIMBuilder(2, nil).
		frame(fobj(1, 0, 0, 0, 1, 1, nil)).
		frame(chunk("NPAL", make([]byte, paletteBytes)))
	v := NewSmushVideo(newRecordingAudio(), quietLogger())
	_, err := v.LoadReader(b.reader(), "tiny.anm")
	if !errors.Is(err, ErrFrameSize) {
		t.Fatalf("expected ErrFrameSize, got %v", err)
	}
	if v.IsLoaded() {
		t.Fatal("failed load must leave the video closed")
	}
}

func TestLoadRejects(t *testing.T) {
	shortAHDR := chunk("ANIM", chunk("AHDR", make([]byte, 0x100)))
	v2NoExt := chunk("ANIM", chunk("AHDR", le16b(2), le16b(1), le16b(0), make([]byte, paletteBytes)))
	badFLHD := chunk("SANM",
		chunk("SHDR", le16b(0), le32b(1), le16b(0), le16b(8), le16b(8), le16b(0), le32b(1000), le16b(0)),
		chunk("FLHD", chunk("XXXX", make([]byte, 4))))

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"not smush", []byte("RIFF\x00\x00\x00\x04WAVE"), ErrNotSmush},
		{"standalone audio", chunk("SAUD", chunk("SDAT")), ErrStandaloneAudio},
		{"short AHDR", shortAHDR, ErrBadHeader},
		{"v2 without extension", v2NoExt, ErrBadHeader},
		{"unknown header", chunk("ANIM", chunk("XHDR", make([]byte, 8))), ErrBadHeader},
		{"bad FLHD record", badFLHD, ErrBadHeader},
		{"truncated", []byte("ANIM"), ErrTruncated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewSmushVideo(newRecordingAudio(), quietLogger())
			_, err := v.LoadReader(bytes.NewReader(tt.data), tt.name)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			var se *SmushError
			if !errors.As(err, &se) || se.Operation != "load" {
				t.Fatalf("expected a load SmushError, got %T", err)
			}
			if v.IsLoaded() {
				t.Fatal("video must stay closed")
			}
		})
	}
}

func TestLoadGzipWrappedFile(t *testing.T) {
	b := newANIMBuilder(1, nil).frame(fobj(1, 0, 0, 0, 4, 2, join(codec1Row(1, 2, 3, 4), codec1Row(1, 2, 3, 4))))
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	zw.Write(b.build())
	zw.Close()

	path := filepath.Join(t.TempDir(), "intro.anm.gz")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	v := NewSmushVideo(newRecordingAudio(), quietLogger())
	desc, err := v.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if desc.Width != 4 || desc.Height != 2 {
		t.Fatalf("expected 4x2, got %dx%d", desc.Width, desc.Height)
	}
	if v.Name() != path {
		t.Fatalf("expected name %q, got %q", path, v.Name())
	}
}

func TestLoadMissingFile(t *testing.T) {
	v := NewSmushVideo(newRecordingAudio(), quietLogger())
	if _, err := v.Load(filepath.Join(t.TempDir(), "missing.san")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if v.IsLoaded() {
		t.Fatal("video must stay closed")
	}
}

func TestReloadAfterClose(t *testing.T) {
	audio := newRecordingAudio()
	v := loadTestVideo(t, newANIMBuilder(1, nil).frame(fobj(37, 0, 0, 0, 8, 8, nil)), audio)
	v.Close()
	if v.IsLoaded() {
		t.Fatal("Close must unload")
	}
	if err := v.DecodeNextFrame(&recordingGraphics{}); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("expected ErrNotLoaded, got %v", err)
	}
	if _, err := v.LoadReader(newSANMBuilder(1, 16, 16, 1000, 0, 0).reader(), "b.san"); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if v.Descriptor().Width != 16 {
		t.Fatalf("descriptor not replaced: %+v", v.Descriptor())
	}
}

func TestNextFrameTime(t *testing.T) {
	tests := []struct {
		name string
		desc VideoDescriptor
		n    int
		want time.Duration
	}{
		{"anim 15 fps", VideoDescriptor{Tag: TAG_ANIM, FrameRate: 15}, 3, 200 * time.Millisecond},
		{"anim 12 fps", VideoDescriptor{Tag: TAG_ANIM, FrameRate: 12}, 1, 83 * time.Millisecond},
		{"sanm 66667 us", VideoDescriptor{Tag: TAG_SANM, FrameRate: 66667}, 3, 200 * time.Millisecond},
		{"sanm first frame", VideoDescriptor{Tag: TAG_SANM, FrameRate: 66667}, 0, 0},
		{"no rate", VideoDescriptor{Tag: TAG_ANIM}, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.desc.NextFrameTime(tt.n); got != tt.want {
				t.Fatalf("NextFrameTime(%d) = %v, want %v", tt.n, got, tt.want)
			}
		})
	}
}

func TestPrintSummary(t *testing.T) {
	v := loadTestVideo(t, newSANMBuilder(3, 320, 200, 83333, 22050, 2), newRecordingAudio())
	var buf bytes.Buffer
	v.PrintSummary(&buf)
	out := buf.String()
	for _, want := range []string{"SMUSH Tag: 'SANM'", "Frame Count: 3", "Width: 320", "Frame Rate: 12", "Audio Rate: 22050Hz", "Audio Channels: 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}
