// audio_track.go - Per-track audio channels and the keyed track registry

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
	"log/slog"
)

// TrackKey identifies one interleaved audio stream inside a SMUSH file.
type TrackKey struct {
	Kind      uint32 // TAG_SAUD or TAG_IMUS
	ID        uint32
	MaxFrames uint32
}

func (k TrackKey) String() string {
	return TagString(k.Kind)
}

// streamFormat is the format specific half of a track channel.
type streamFormat interface {
	// parseHeader inspects the buffered bytes. It returns ok=false while
	// more data is needed. On success it reports how many bytes the header
	// used, the payload size it declares and the output format.
	parseHeader(data []byte) (hdr streamHeader, ok bool, err error)
	// decode turns as much of data as it can into samples and reports
	// the bytes used. It is never handed more than the declared payload.
	decode(data []byte) (samples []int16, used int)
}

type streamHeader struct {
	consumed   int
	totalSize  int
	sampleRate int
	channels   int
}

// TrackChannel rebuilds one continuous stream out of numbered chunks.
type TrackChannel struct {
	key    TrackKey
	format streamFormat
	sink   AudioSink
	logger *slog.Logger

	data         []byte // unconsumed bytes
	index        int    // last chunk index seen
	headerParsed bool
	failed       bool
	totalUsed    int
	totalSize    int

	handle  AudioHandle
	volume  int
	balance int
}

func newTrackChannel(key TrackKey, format streamFormat, sink AudioSink, logger *slog.Logger) *TrackChannel {
	return &TrackChannel{
		key:    key,
		format: format,
		sink:   sink,
		logger: logger,
		index:  -1,
		volume: VolumeMax / 2,
	}
}

// AppendData adds chunk index to the stream. Index gaps are logged and
// the chunk is used as if it were contiguous.
func (c *TrackChannel) AppendData(index int, chunk []byte) {
	if c.Done() || c.failed {
		return
	}
	if index != c.index+1 {
		c.logger.Warn("audio chunk out of sequence",
			"track", c.key.ID, "kind", c.key.String(), "index", index, "expected", c.index+1)
	}
	c.index = index

	if index == 0 || len(c.data) == 0 {
		c.data = append(c.data[:0:0], chunk...)
	} else {
		c.data = append(c.data, chunk...)
	}
	c.update()
}

func (c *TrackChannel) update() {
	if !c.headerParsed {
		hdr, ok, err := c.format.parseHeader(c.data)
		if err != nil {
			c.logger.Warn("audio track header rejected", "track", c.key.ID, "kind", c.key.String(), "err", err)
			c.failed = true
			c.data = nil
			return
		}
		if !ok {
			return
		}
		c.headerParsed = true
		c.totalSize = hdr.totalSize
		c.data = c.data[hdr.consumed:]
		c.handle = c.sink.OpenChannel(hdr.sampleRate, hdr.channels)
		c.sink.SetVolume(c.handle, c.volume)
		c.sink.SetBalance(c.handle, c.balance)
		c.logger.Debug("audio track started", "track", c.key.ID, "kind", c.key.String(),
			"rate", hdr.sampleRate, "channels", hdr.channels, "size", hdr.totalSize)
	}

	avail := min(len(c.data), c.totalSize-c.totalUsed)
	if avail <= 0 {
		return
	}
	samples, used := c.format.decode(c.data[:avail])
	if used == 0 {
		return
	}
	if len(samples) > 0 {
		c.sink.Queue(c.handle, samples)
	}
	c.data = c.data[used:]
	c.totalUsed += used
}

// Done reports whether the whole declared payload has been decoded.
func (c *TrackChannel) Done() bool {
	return c.headerParsed && c.totalUsed >= c.totalSize
}

func (c *TrackChannel) SetVolume(volume int) {
	c.volume = max(0, min(volume, VolumeMax))
	if c.headerParsed {
		c.sink.SetVolume(c.handle, c.volume)
	}
}

func (c *TrackChannel) SetBalance(balance int) {
	c.balance = max(BalanceMin, min(balance, BalanceMax))
	if c.headerParsed {
		c.sink.SetBalance(c.handle, c.balance)
	}
}

// Close releases the output channel. Samples already queued are dropped.
func (c *TrackChannel) Close() {
	if c.headerParsed {
		c.sink.CloseChannel(c.handle)
	}
	c.data = nil
}

// AudioTracks is the registry of live track channels. Chunk index 0
// always starts a fresh channel for its key.
type AudioTracks struct {
	sink     AudioSink
	logger   *slog.Logger
	channels map[TrackKey]*TrackChannel
}

func NewAudioTracks(sink AudioSink, logger *slog.Logger) *AudioTracks {
	if logger == nil {
		logger = slog.Default()
	}
	return &AudioTracks{
		sink:     sink,
		logger:   logger,
		channels: make(map[TrackKey]*TrackChannel),
	}
}

// Append routes chunk to the channel for key, building one with newFormat
// when index is 0. It returns the channel that took the data, or nil.
func (t *AudioTracks) Append(key TrackKey, index int, chunk []byte, newFormat func() streamFormat) *TrackChannel {
	ch := t.channels[key]
	switch {
	case index == 0:
		if ch != nil {
			ch.Close()
		}
		ch = newTrackChannel(key, newFormat(), t.sink, t.logger)
		t.channels[key] = ch
	case ch == nil:
		t.logger.Warn("audio chunk for unknown track", "track", key.ID, "kind", key.String(), "index", index)
		return nil
	case ch.Done():
		ch.Close()
		delete(t.channels, key)
		t.logger.Debug("audio chunk after track end", "track", key.ID, "kind", key.String(), "index", index)
		return nil
	}
	ch.AppendData(index, chunk)
	return ch
}

func (t *AudioTracks) Len() int {
	return len(t.channels)
}

// CloseAll stops every channel and the sink itself.
func (t *AudioTracks) CloseAll() {
	for key, ch := range t.channels {
		ch.Close()
		delete(t.channels, key)
	}
	t.sink.CloseAll()
}
