// audio_test.go - Tests for PCM framing, track reassembly, VIMA and the mixer

package main

import (
	"encoding/binary"
	"errors"
	"slices"
	"testing"
)

func TestDecodePCM(t *testing.T) {
	tests := []struct {
		name  string
		data  []byte
		flags PCMFlags
		want  []int16
	}{
		{"signed 8", []byte{0x01, 0xFF}, 0, []int16{256, -256}},
		{"unsigned 8", []byte{0x80, 0x00}, PCMUnsigned, []int16{0, -32768}},
		{"16 big endian", []byte{0x12, 0x34, 0xFF}, PCM16Bit, []int16{0x1234}},
		{"16 little endian", []byte{0x34, 0x12}, PCM16Bit | PCMLittleEndian, []int16{0x1234}},
		{"unsigned 16", []byte{0x80, 0x01}, PCM16Bit | PCMUnsigned, []int16{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodePCM(tt.data, tt.flags); !slices.Equal(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecode12(t *testing.T) {
	got := Decode12([]byte{0x12, 0x34, 0x56, 0x00})
	if want := []int16{-16096, -19104}; !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSAUDHeaderNeedsMoreData(t *testing.T) {
	f := newSAUDFormat(22050)
	stream := saudStream(11025, []byte{1, 2})
	for n := 0; n < 38; n++ {
		if _, ok, err := f.parseHeader(stream[:n]); ok || err != nil {
			t.Fatalf("prefix of %d bytes: ok %v err %v", n, ok, err)
		}
	}
	hdr, ok, err := f.parseHeader(stream)
	if !ok || err != nil {
		t.Fatalf("full header rejected: %v", err)
	}
	if hdr.consumed != 38 || hdr.totalSize != 2 || hdr.sampleRate != 11025 || hdr.channels != 1 {
		t.Fatalf("unexpected header %+v", hdr)
	}
	if _, _, err := newSAUDFormat(22050).parseHeader(make([]byte, 16)); err == nil {
		t.Fatal("non SAUD data accepted")
	}
}

func TestIMuseHeaderRejectsFormats(t *testing.T) {
	build := func(bits, channels int) []byte {
		frmt := join(be32b(0), be32b(0), be32b(bits), be32b(22050), be32b(channels))
		return join([]byte("iMUS"), be32b(0), []byte("MAP "), be32b(28),
			[]byte("FRMT"), be32b(20), frmt, []byte("DATA"), be32b(0))
	}
	if _, ok, err := newIMuseFormat(quietLogger()).parseHeader(build(12, 2)); !ok || err != nil {
		t.Fatalf("12-bit stereo rejected: %v", err)
	}
	if _, _, err := newIMuseFormat(quietLogger()).parseHeader(build(24, 1)); err == nil {
		t.Fatal("24-bit accepted")
	}
	if _, _, err := newIMuseFormat(quietLogger()).parseHeader(build(16, 6)); err == nil {
		t.Fatal("six channels accepted")
	}
}

func TestAudioTracksLifecycle(t *testing.T) {
	audio := newRecordingAudio()
	tracks := NewAudioTracks(audio, quietLogger())
	key := TrackKey{Kind: TAG_SAUD, ID: 1, MaxFrames: 3}
	newFormat := func() streamFormat { return newSAUDFormat(22050) }

	if ch := tracks.Append(key, 1, []byte{1}, newFormat); ch != nil {
		t.Fatal("chunk for an unknown track accepted")
	}

	stream := saudStream(11025, []byte{0x80, 0x80, 0x80})
	if ch := tracks.Append(key, 0, stream[:20], newFormat); ch == nil || ch.headerParsed {
		t.Fatal("partial header should be buffered")
	}
	ch := tracks.Append(key, 1, stream[20:], newFormat)
	if ch == nil || !ch.Done() {
		t.Fatal("track should be complete")
	}
	rc := audio.only(t)
	if rc.rate != 11025 || len(rc.samples) != 3 {
		t.Fatalf("unexpected channel %+v", rc)
	}

	if tracks.Append(key, 2, []byte{0x80}, newFormat) != nil {
		t.Fatal("data after the end of a track accepted")
	}
	if !rc.closed || tracks.Len() != 0 {
		t.Fatal("finished track not released")
	}
}

func TestAudioTracksRestartOnIndexZero(t *testing.T) {
	audio := newRecordingAudio()
	tracks := NewAudioTracks(audio, quietLogger())
	key := TrackKey{Kind: TAG_SAUD, ID: 4}
	newFormat := func() streamFormat { return newSAUDFormat(22050) }

	tracks.Append(key, 0, saudStream(11025, []byte{0x80, 0x80}), newFormat)
	tracks.Append(key, 0, saudStream(8000, []byte{0x80}), newFormat)
	if len(audio.channels) != 2 {
		t.Fatalf("expected two channels, got %d", len(audio.channels))
	}
	if !audio.channels[1].closed || audio.channels[2].closed {
		t.Fatal("restart must close the old channel only")
	}
	if audio.channels[2].rate != 8000 {
		t.Fatalf("new channel rate %d", audio.channels[2].rate)
	}
}

func TestTrackChannelRejectsBadHeader(t *testing.T) {
	audio := newRecordingAudio()
	tracks := NewAudioTracks(audio, quietLogger())
	key := TrackKey{Kind: TAG_IMUS, ID: 1}
	ch := tracks.Append(key, 0, make([]byte, 32), func() streamFormat { return newIMuseFormat(quietLogger()) })
	if ch == nil || !ch.failed {
		t.Fatal("bad header not flagged")
	}
	if len(audio.channels) != 0 {
		t.Fatal("channel opened for a rejected header")
	}
}

func TestDecodeVIMAStereoHeader(t *testing.T) {
	// stereo streams flag the first byte and carry a second step/value pair
	src := []byte{^byte(0), 0x00, 0x10, 0x00, 0x00, 0x20}
	out, channels, err := DecodeVIMA(src, 0)
	if err != nil || channels != 2 || len(out) != 0 {
		t.Fatalf("got %v %d %v", out, channels, err)
	}
	if _, _, err := DecodeVIMA([]byte{0}, 1); err == nil {
		t.Fatal("headerless stream accepted")
	}
	_, _, err = DecodeVIMA([]byte{0x00, 0x00, 0x00}, 4)
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestDecodeVIMALiteral(t *testing.T) {
	out, channels, err := DecodeVIMA([]byte{0x00, 0x00, 0x00, 0x71, 0x23, 0x40}, 1)
	if err != nil || channels != 1 || !slices.Equal(out, []int16{0x1234}) {
		t.Fatalf("got %v %d %v", out, channels, err)
	}
}

func readFrames(m *AudioMixer, n int) [][2]int16 {
	buf := make([]byte, n*4)
	m.Read(buf)
	out := make([][2]int16, n)
	for i := range out {
		out[i][0] = int16(binary.LittleEndian.Uint16(buf[i*4:]))
		out[i][1] = int16(binary.LittleEndian.Uint16(buf[i*4+2:]))
	}
	return out
}

func TestMixerMonoVolumeAndBalance(t *testing.T) {
	m := NewAudioMixer()
	h := m.OpenChannel(MixerSampleRate, 1)
	m.Queue(h, []int16{1000, 2000})
	m.SetBalance(h, 64)
	if m.Playing() != 1 {
		t.Fatal("queued channel not playing")
	}
	got := readFrames(m, 3)
	want := [][2]int16{{500, 1000}, {1000, 2000}, {0, 0}}
	if !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if m.Playing() != 0 {
		t.Fatal("drained channel still playing")
	}
}

func TestMixerSumsAndClamps(t *testing.T) {
	m := NewAudioMixer()
	a := m.OpenChannel(MixerSampleRate, 2)
	b := m.OpenChannel(MixerSampleRate, 2)
	m.Queue(a, []int16{30000, -30000})
	m.Queue(b, []int16{30000, -30000})
	if got := readFrames(m, 1); got[0] != [2]int16{32767, -32768} {
		t.Fatalf("got %v", got[0])
	}
}

func TestMixerMuteAndClose(t *testing.T) {
	m := NewAudioMixer()
	h := m.OpenChannel(MixerSampleRate, 1)
	m.Queue(h, []int16{1000, 1000})
	m.SetMuted(true)
	if got := readFrames(m, 1); got[0] != [2]int16{0, 0} {
		t.Fatalf("muted output %v", got[0])
	}
	m.SetMuted(false)
	m.CloseChannel(h)
	m.Queue(h, []int16{5})
	if got := readFrames(m, 1); got[0] != [2]int16{0, 0} {
		t.Fatalf("closed channel still audible: %v", got[0])
	}
}

func TestMixerResamples(t *testing.T) {
	m := NewAudioMixer()
	h := m.OpenChannel(MixerSampleRate/2, 1)
	m.Queue(h, []int16{100, 200})
	got := readFrames(m, 5)
	// odd output frames sit halfway between source frames; the last one is held
	want := [][2]int16{{100, 100}, {150, 150}, {200, 200}, {200, 200}, {0, 0}}
	if !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestMixerInterpolatesAcrossBlocks(t *testing.T) {
	m := NewAudioMixer()
	h := m.OpenChannel(MixerSampleRate/2, 2)
	m.Queue(h, []int16{0, -400})
	m.Queue(h, []int16{400, 0})
	got := readFrames(m, 4)
	want := [][2]int16{{0, -400}, {200, -200}, {400, 0}, {400, 0}}
	if !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTrackChannelIndexGapKeepsBuffer(t *testing.T) {
	audio := newRecordingAudio()
	tracks := NewAudioTracks(audio, quietLogger())
	key := TrackKey{Kind: TAG_SAUD, ID: 9}
	newFormat := func() streamFormat { return newSAUDFormat(22050) }

	pcm := []byte{0x81, 0x81, 0x81, 0x81, 0x81}
	stream := saudStream(11025, pcm)
	head := len(stream) - len(pcm)
	tracks.Append(key, 0, stream[:head], newFormat)
	tracks.Append(key, 1, pcm[:1], newFormat)
	tracks.Append(key, 2, pcm[1:2], newFormat)
	// a repeated index is reported and then used as the next chunk
	ch := tracks.Append(key, 1, pcm[2:3], newFormat)
	if ch == nil || ch.Done() {
		t.Fatal("channel lost after an out of sequence chunk")
	}
	tracks.Append(key, 2, pcm[3:], newFormat)

	rc := audio.only(t)
	if len(rc.samples) != 5 || rc.samples[4] != 256 {
		t.Fatalf("samples %v", rc.samples)
	}
	if !ch.Done() {
		t.Fatal("track should be complete")
	}
}
