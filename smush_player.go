// smush_player.go - Wall clock paced playback of a loaded SMUSH video

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Player drives DecodeNextFrame against the wall clock. Frame n is never
// decoded before NextFrameTime(n); late frames are decoded immediately.
type Player struct {
	video     *SmushVideo
	gfx       GraphicsSink
	maxFrames int
	logger    *slog.Logger

	paused  atomic.Bool
	current atomic.Int64
	codecs  atomic.Pointer[[]int]
	limit   atomic.Int64

	mu         sync.Mutex
	pausedAt   time.Time
	pausedSpan time.Duration

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewPlayer prepares playback of an already loaded video. maxFrames of 0
// plays the whole file.
func NewPlayer(video *SmushVideo, gfx GraphicsSink, maxFrames int, logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{
		video:     video,
		gfx:       gfx,
		maxFrames: maxFrames,
		logger:    logger.With("component", "player"),
		now:       time.Now,
		sleep:     sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// TogglePause flips the pause state and returns the new one. Time spent
// paused is removed from the schedule.
func (p *Player) TogglePause() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.paused.Load() {
		p.pausedSpan += p.now().Sub(p.pausedAt)
		p.paused.Store(false)
		return false
	}
	p.pausedAt = p.now()
	p.paused.Store(true)
	return true
}

func (p *Player) Paused() bool {
	return p.paused.Load()
}

// Frame is the number of frames presented so far.
func (p *Player) Frame() int {
	return int(p.current.Load())
}

// Status snapshots the playback state for a front end. audioChannels is
// supplied by the caller since the player does not own the mixer.
func (p *Player) Status(audioChannels int) PlaybackStatus {
	st := PlaybackStatus{
		Name:          p.video.Name(),
		Frame:         p.Frame(),
		FrameCount:    int(p.limit.Load()),
		Paused:        p.Paused(),
		AudioChannels: audioChannels,
	}
	if c := p.codecs.Load(); c != nil {
		st.Codecs = *c
	}
	return st
}

func (p *Player) frameLimit() int {
	n := p.video.FrameCount()
	if p.maxFrames > 0 && p.maxFrames < n {
		n = p.maxFrames
	}
	return n
}

func (p *Player) offset() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pausedSpan
}

// Run plays until the frame limit, a fatal decode error or ctx is done.
// The video is closed on return.
func (p *Player) Run(ctx context.Context) error {
	defer p.video.Close()

	desc := p.video.Descriptor()
	if desc.Tag == TAG_ANIM {
		p.gfx.SetPalette(p.video.HeaderPalette(), 0, 256)
	}

	limit := p.frameLimit()
	p.limit.Store(int64(limit))
	start := p.now()
	pauseTick := desc.FrameInterval()
	if pauseTick <= 0 {
		pauseTick = 20 * time.Millisecond
	}

	for n := 0; n < limit; n++ {
		for p.paused.Load() {
			if err := p.sleep(ctx, pauseTick); err != nil {
				return err
			}
		}
		due := start.Add(desc.NextFrameTime(n) + p.offset())
		if err := p.sleep(ctx, due.Sub(p.now())); err != nil {
			return err
		}
		if err := p.video.DecodeNextFrame(p.gfx); err != nil {
			return err
		}
		p.current.Store(int64(n + 1))
		active := p.video.ActiveCodecs()
		p.codecs.Store(&active)
	}
	p.logger.Debug("playback finished", "frames", limit, "elapsed", p.now().Sub(start))
	return nil
}

// Play runs the whole video against gfx with default settings.
func (v *SmushVideo) Play(ctx context.Context, gfx GraphicsSink) error {
	return NewPlayer(v, gfx, 0, v.logger).Run(ctx)
}
