// smush_player_test.go - Tests for wall clock pacing, pause and the command layer

package main

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// fakeClock drives a Player without real sleeps.
type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
	onTick func()
}

func (c *fakeClock) install(p *Player) {
	p.now = func() time.Time { return c.now }
	p.sleep = func(ctx context.Context, d time.Duration) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.sleeps = append(c.sleeps, d)
		if d > 0 {
			c.now = c.now.Add(d)
		}
		if c.onTick != nil {
			c.onTick()
		}
		return nil
	}
}

func threeFrameVideo(t *testing.T) *SmushVideo {
	t.Helper()
	b := newANIMBuilder(3, []byte{1, 2, 3}).frame(twoRows(1)).frame(twoRows(2)).frame(twoRows(3))
	return loadTestVideo(t, b, newRecordingAudio())
}

func TestPlayerPacesFrames(t *testing.T) {
	v := threeFrameVideo(t)
	g := &recordingGraphics{}
	p := NewPlayer(v, g, 0, quietLogger())
	start := time.Unix(1000, 0)
	clock := &fakeClock{now: start}
	clock.install(p)

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if g.presented != 3 || p.Frame() != 3 {
		t.Fatalf("expected 3 frames, presented %d frame %d", g.presented, p.Frame())
	}
	// the header palette goes out before the first frame
	if g.paletteCalls != 1 || g.palette[0] != 1 || g.palette[2] != 3 {
		t.Fatalf("header palette not installed: calls %d", g.paletteCalls)
	}
	want := []time.Duration{0, 66 * time.Millisecond, 67 * time.Millisecond}
	if len(clock.sleeps) != len(want) {
		t.Fatalf("sleeps %v", clock.sleeps)
	}
	for i := range want {
		if clock.sleeps[i] != want[i] {
			t.Fatalf("sleep %d = %v, want %v", i, clock.sleeps[i], want[i])
		}
	}
	if v.IsLoaded() {
		t.Fatal("Run must close the video")
	}
}

func TestPlayerLateFramesAreNotDelayed(t *testing.T) {
	v := threeFrameVideo(t)
	p := NewPlayer(v, &recordingGraphics{}, 0, quietLogger())
	clock := &fakeClock{now: time.Unix(0, 0)}
	clock.install(p)
	// every decode takes a full second
	clock.onTick = func() { clock.now = clock.now.Add(time.Second) }
	if err := p.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	for i, d := range clock.sleeps[1:] {
		if d > 0 {
			t.Fatalf("sleep %d = %v for a late frame", i+1, d)
		}
	}
}

func TestPlayerFrameLimit(t *testing.T) {
	g := &recordingGraphics{}
	p := NewPlayer(threeFrameVideo(t), g, 2, quietLogger())
	(&fakeClock{now: time.Unix(0, 0)}).install(p)
	if err := p.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if g.presented != 2 || p.Status(0).FrameCount != 2 {
		t.Fatalf("expected 2 frames, got %d", g.presented)
	}
}

func TestPlayerCancelled(t *testing.T) {
	v := threeFrameVideo(t)
	p := NewPlayer(v, &recordingGraphics{}, 0, quietLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if v.IsLoaded() {
		t.Fatal("cancelled run must still close the video")
	}
}

func TestPlayerStopsOnDecodeError(t *testing.T) {
	b := newANIMBuilder(3, nil).frame(twoRows(1)).raw(chunk("JUNK"))
	p := NewPlayer(loadTestVideo(t, b, newRecordingAudio()), &recordingGraphics{}, 0, quietLogger())
	(&fakeClock{now: time.Unix(0, 0)}).install(p)
	if err := p.Run(context.Background()); !errors.Is(err, ErrFrameDesync) {
		t.Fatalf("expected ErrFrameDesync, got %v", err)
	}
	if p.Frame() != 1 {
		t.Fatalf("expected one good frame, got %d", p.Frame())
	}
}

func TestPlayerPauseShiftsSchedule(t *testing.T) {
	v := threeFrameVideo(t)
	// Run closes the video, which clears its descriptor
	interval := v.Descriptor().FrameInterval()
	p := NewPlayer(v, &recordingGraphics{}, 0, quietLogger())
	clock := &fakeClock{now: time.Unix(0, 0)}
	clock.install(p)

	if !p.TogglePause() || !p.Paused() {
		t.Fatal("expected paused")
	}
	ticks := 0
	clock.onTick = func() {
		ticks++
		if ticks == 3 && p.Paused() {
			p.TogglePause()
		}
	}
	if err := p.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	// three pause ticks, then a zero wait since the first frame is due at once
	if clock.sleeps[0] != interval || clock.sleeps[2] != interval || clock.sleeps[3] != 0 {
		t.Fatalf("unexpected sleeps %v", clock.sleeps)
	}
	if p.offset() != 3*interval {
		t.Fatalf("paused span %v, want %v", p.offset(), 3*interval)
	}
}

func TestPlayerStatus(t *testing.T) {
	v := threeFrameVideo(t)
	p := NewPlayer(v, &recordingGraphics{}, 0, quietLogger())
	(&fakeClock{now: time.Unix(0, 0)}).install(p)
	p.Run(context.Background())
	st := p.Status(2)
	if st.Name != "test.san" || st.Frame != 3 || st.FrameCount != 3 || st.AudioChannels != 2 || st.Paused {
		t.Fatalf("unexpected status %+v", st)
	}
	if len(st.Codecs) != 0 {
		t.Fatalf("codec 1 keeps no decoder state, got %v", st.Codecs)
	}
}

func TestKeyCommand(t *testing.T) {
	tests := []struct {
		key  byte
		want PlayerCommand
		ok   bool
	}{
		{'q', CommandQuit, true},
		{0x1B, CommandQuit, true},
		{0x03, CommandQuit, true},
		{' ', CommandTogglePause, true},
		{'P', CommandTogglePause, true},
		{'x', CommandNone, false},
	}
	for _, tt := range tests {
		got, ok := keyCommand(tt.key)
		if got != tt.want || ok != tt.ok {
			t.Errorf("keyCommand(%q) = %v %v, want %v %v", tt.key, got, ok, tt.want, tt.ok)
		}
	}
	if CommandTogglePause.String() != "pause" || CommandNone.String() != "none" {
		t.Fatal("unexpected command names")
	}
}

func TestPlaybackStatusLine(t *testing.T) {
	st := PlaybackStatus{Frame: 12, FrameCount: 100, Codecs: []int{47, 37}, AudioChannels: 3}
	if got, want := st.Line(0), "PLAY 12/100 codec 37,47 audio 3"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if st.Codecs[0] != 47 {
		t.Fatal("Line must not reorder the caller's slice")
	}
	st.Paused = true
	st.Codecs = nil
	if got := st.Line(0); !strings.HasPrefix(got, "PAUSE") || !strings.Contains(got, "codec -") {
		t.Fatalf("got %q", got)
	}
	if got := st.Line(5); got != "PAUSE" {
		t.Fatalf("truncated line %q", got)
	}
}
