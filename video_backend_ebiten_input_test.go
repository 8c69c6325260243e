//go:build !headless

// video_backend_ebiten_input_test.go - Window backend key mapping and state

package main

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestEbitenImplementsInteractiveOutput(t *testing.T) {
	eo := &EbitenOutput{}
	if _, ok := any(eo).(InteractiveOutput); !ok {
		t.Fatal("expected EbitenOutput to implement InteractiveOutput")
	}
}

func TestKeyTranslation(t *testing.T) {
	tests := []struct {
		key  ebiten.Key
		want PlayerCommand
		ok   bool
	}{
		{ebiten.KeyEscape, CommandQuit, true},
		{ebiten.KeyQ, CommandQuit, true},
		{ebiten.KeySpace, CommandTogglePause, true},
		{ebiten.KeyP, CommandTogglePause, true},
		{ebiten.KeyEnter, CommandNone, false},
	}
	for _, tt := range tests {
		got, ok := translateKey(tt.key)
		if got != tt.want || ok != tt.ok {
			t.Errorf("translateKey(%v) = %v %v, want %v %v", tt.key, got, ok, tt.want, tt.ok)
		}
	}
}

func TestEbitenDisplayConfigBeforeStart(t *testing.T) {
	out, _ := NewEbitenOutput()
	eo := out.(*EbitenOutput)
	if err := eo.SetDisplayConfig(DisplayConfig{Width: 64, Height: 32, Scale: 9, Fullscreen: true}); err != nil {
		t.Fatal(err)
	}
	got := eo.GetDisplayConfig()
	if got.Width != 64 || got.Height != 32 || got.Scale != maxScale || !got.Fullscreen {
		t.Fatalf("unexpected config %+v", got)
	}
	if len(eo.frameBuffer) != 64*32*4 || eo.windowedW != 64*maxScale {
		t.Fatalf("frame buffer %d bytes, window width %d", len(eo.frameBuffer), eo.windowedW)
	}
	if eo.IsStarted() {
		t.Fatal("configuring must not start the window")
	}
}

func TestEbitenFrameImageAndCommands(t *testing.T) {
	out, _ := NewEbitenOutput()
	eo := out.(*EbitenOutput)
	eo.SetDisplayConfig(DisplayConfig{Width: 1, Height: 1, Scale: 1})
	eo.UpdateFrame([]byte{1, 2, 3, 4})
	if img := eo.frameImage(); img.Pix[0] != 1 || img.Pix[3] != 4 {
		t.Fatalf("frame image %v", img.Pix)
	}

	var got []PlayerCommand
	eo.emit(CommandQuit)
	eo.SetCommandHandler(func(c PlayerCommand) { got = append(got, c) })
	eo.emit(CommandTogglePause)
	if len(got) != 1 || got[0] != CommandTogglePause {
		t.Fatalf("commands %v", got)
	}
}
