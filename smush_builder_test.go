// smush_builder_test.go - Synthetic SMUSH files and recording sinks for tests

package main

import (
	"bytes"
	"encoding/binary"
	"io"
	"log/slog"
	"testing"
)

// chunk assembles tag + BE size + payload, padded to even length.
func chunk(tag string, parts ...[]byte) []byte {
	var body []byte
	for _, p := range parts {
		body = append(body, p...)
	}
	out := make([]byte, 8, 9+len(body))
	copy(out, tag)
	binary.BigEndian.PutUint32(out[4:], uint32(len(body)))
	out = append(out, body...)
	if len(body)&1 != 0 {
		out = append(out, 0)
	}
	return out
}

func le16b(v int) []byte {
	return binary.LittleEndian.AppendUint16(nil, uint16(v))
}

func le32b(v int) []byte {
	return binary.LittleEndian.AppendUint32(nil, uint32(v))
}

func be16b(v int) []byte {
	return binary.BigEndian.AppendUint16(nil, uint16(v))
}

func be32b(v int) []byte {
	return binary.BigEndian.AppendUint32(nil, uint32(v))
}

func join(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// fobj builds an FOBJ chunk: 14 byte object header then codec data.
func fobj(codec, param, left, top, width, height int, data []byte) []byte {
	hdr := join(
		[]byte{byte(codec), byte(param)},
		le16b(left), le16b(top), le16b(width), le16b(height),
		le16b(0), le16b(0),
	)
	return chunk("FOBJ", hdr, data)
}

// codec1Row encodes one codec 1 line of literal pixels.
func codec1Row(pixels ...byte) []byte {
	row := []byte{byte((len(pixels) - 1) << 1)}
	row = append(row, pixels...)
	return join(le16b(len(row)), row)
}

// smushBuilder assembles ANIM or SANM files chunk by chunk.
type smushBuilder struct {
	tag    string
	header []byte
	frames [][]byte
}

// newANIMBuilder writes a version 1 AHDR carrying palette.
func newANIMBuilder(frameCount int, palette []byte) *smushBuilder {
	pal := make([]byte, paletteBytes)
	copy(pal, palette)
	return &smushBuilder{
		tag:    "ANIM",
		header: chunk("AHDR", le16b(1), le16b(frameCount), le16b(0), pal),
	}
}

// newANIMv2Builder writes a version 2 AHDR with frame and audio rates.
func newANIMv2Builder(frameCount, frameRate, audioRate int) *smushBuilder {
	return &smushBuilder{
		tag: "ANIM",
		header: chunk("AHDR", le16b(2), le16b(frameCount), le16b(0), make([]byte, paletteBytes),
			le32b(frameRate), le32b(0), le32b(audioRate)),
	}
}

// newSANMBuilder writes SHDR and an FLHD with Bl16 and Wave records.
func newSANMBuilder(frameCount, width, height, frameRate, audioRate, channels int) *smushBuilder {
	shdr := chunk("SHDR",
		le16b(0), le32b(frameCount), le16b(0),
		le16b(width), le16b(height), le16b(0),
		le32b(frameRate), le16b(0))
	flhd := chunk("FLHD",
		chunk("Bl16"),
		chunk("Wave", le32b(audioRate), le32b(channels), le32b(0)))
	return &smushBuilder{tag: "SANM", header: join(shdr, flhd)}
}

func (b *smushBuilder) frame(subs ...[]byte) *smushBuilder {
	b.frames = append(b.frames, chunk("FRME", subs...))
	return b
}

func (b *smushBuilder) raw(data []byte) *smushBuilder {
	b.frames = append(b.frames, data)
	return b
}

func (b *smushBuilder) build() []byte {
	return chunk(b.tag, b.header, join(b.frames...))
}

func (b *smushBuilder) reader() io.ReadSeeker {
	return bytes.NewReader(b.build())
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// loadTestVideo loads b into a fresh video recording into audio.
func loadTestVideo(t *testing.T, b *smushBuilder, audio AudioSink) *SmushVideo {
	t.Helper()
	v := NewSmushVideo(audio, quietLogger())
	if _, err := v.LoadReader(b.reader(), "test.san"); err != nil {
		t.Fatalf("LoadReader failed: %v", err)
	}
	return v
}

type recordingGraphics struct {
	palette      [paletteBytes]byte
	paletteCalls int
	blits        int
	last         []byte
	presented    int
}

func (g *recordingGraphics) SetPalette(rgb []byte, start, count int) {
	copy(g.palette[start*3:(start+count)*3], rgb)
	g.paletteCalls++
}

func (g *recordingGraphics) Blit(pixels []byte, x, y, width, height, pitch int) {
	g.last = append(g.last[:0], pixels[:height*pitch]...)
	g.blits++
}

func (g *recordingGraphics) PresentFrame() {
	g.presented++
}

type recordingChannel struct {
	rate, channels int
	samples        []int16
	volume         int
	balance        int
	closed         bool
}

type recordingAudio struct {
	next     AudioHandle
	channels map[AudioHandle]*recordingChannel
	closeAll int
}

func newRecordingAudio() *recordingAudio {
	return &recordingAudio{channels: make(map[AudioHandle]*recordingChannel)}
}

func (a *recordingAudio) OpenChannel(sampleRate, channelCount int) AudioHandle {
	a.next++
	a.channels[a.next] = &recordingChannel{rate: sampleRate, channels: channelCount, volume: VolumeMax}
	return a.next
}

func (a *recordingAudio) Queue(h AudioHandle, samples []int16) {
	if ch, ok := a.channels[h]; ok {
		ch.samples = append(ch.samples, samples...)
	}
}

func (a *recordingAudio) SetVolume(h AudioHandle, volume int) {
	if ch, ok := a.channels[h]; ok {
		ch.volume = volume
	}
}

func (a *recordingAudio) SetBalance(h AudioHandle, balance int) {
	if ch, ok := a.channels[h]; ok {
		ch.balance = balance
	}
}

func (a *recordingAudio) CloseChannel(h AudioHandle) {
	if ch, ok := a.channels[h]; ok {
		ch.closed = true
	}
}

func (a *recordingAudio) CloseAll() {
	a.closeAll++
}

// only returns the single open channel, failing otherwise.
func (a *recordingAudio) only(t *testing.T) *recordingChannel {
	t.Helper()
	if len(a.channels) != 1 {
		t.Fatalf("expected exactly one audio channel, got %d", len(a.channels))
	}
	for _, ch := range a.channels {
		return ch
	}
	return nil
}
