// smush_audio_test.go - Tests for IACT, PSAD and Wave routing to the audio sink

package main

import (
	"bytes"
	"slices"
	"testing"
)

func iactChunk(trackFlags, trackID, index, frameCount int, data []byte) []byte {
	return chunk("IACT",
		le16b(iactAudioCode), le16b(iactAudioFlags), le16b(0), le16b(trackFlags),
		le16b(trackID), le16b(index), le16b(frameCount), le32b(0), data)
}

// saudStream is a SAUD header with a STRK rate override and an SDAT body.
func saudStream(rate int, pcm []byte) []byte {
	strk := make([]byte, 14)
	copy(strk[12:], be16b(rate))
	return join([]byte("SAUD"), be32b(0),
		[]byte("STRK"), be32b(len(strk)), strk,
		[]byte("SDAT"), be32b(len(pcm)), pcm)
}

func TestIACTInteractiveRecords(t *testing.T) {
	record := join(be16b(1+2048), []byte{0x00}, bytes.Repeat([]byte{1}, 2048))
	b := newSANMBuilder(3, 2, 2, 66667, 0, 0).
		frame(iactChunk(0, 0, 0, 0, record[:1000])).
		frame(iactChunk(0, 0, 1, 0, record[1000:])).
		frame(iactChunk(iactSkipTrack, 0, 0, 0, record))
	audio := newRecordingAudio()
	v := loadTestVideo(t, b, audio)
	g := &recordingGraphics{}

	if err := v.DecodeNextFrame(g); err != nil {
		t.Fatal(err)
	}
	ch := audio.only(t)
	if ch.rate != iactSampleRate || ch.channels != iactChannels {
		t.Fatalf("expected %d Hz stereo, got %d Hz %d ch", iactSampleRate, ch.rate, ch.channels)
	}
	if len(ch.samples) != 0 {
		t.Fatalf("incomplete record must not be queued, got %d samples", len(ch.samples))
	}

	for i := 0; i < 2; i++ {
		if err := v.DecodeNextFrame(g); err != nil {
			t.Fatal(err)
		}
	}
	if len(ch.samples) != 2048 {
		t.Fatalf("expected one 2048 sample block, got %d", len(ch.samples))
	}
	for i, s := range ch.samples {
		if s != 1 {
			t.Fatalf("sample %d = %d, want 1", i, s)
		}
	}
}

func TestDecodeIACTRecordShiftsAndEscape(t *testing.T) {
	rec := make([]byte, 1+2048+2)
	rec[0] = 0x21 // left << 2, right << 1
	rec[1] = 0xFF
	rec[2] = 3
	rec[3] = iactEscapeValue
	rec[4] = 0x12
	rec[5] = 0x34
	out := decodeIACTRecord(rec)
	if len(out) != 2048 {
		t.Fatalf("expected 2048 samples, got %d", len(out))
	}
	want := []int16{-4, 6, 0x1234}
	if !slices.Equal(out[:3], want) {
		t.Fatalf("got %v, want %v", out[:3], want)
	}
}

func TestIACTIMuseTrack(t *testing.T) {
	frmt := join(be32b(0), be32b(0), be32b(16), be32b(22050), be32b(1))
	stream := join(
		[]byte("iMUS"), be32b(0),
		[]byte("MAP "), be32b(8+len(frmt)),
		[]byte("FRMT"), be32b(len(frmt)), frmt,
		[]byte("DATA"), be32b(4),
		[]byte{0x01, 0x00, 0x00, 0x02},
	)
	b := newSANMBuilder(1, 2, 2, 66667, 0, 0).frame(iactChunk(150, 5, 0, 3, stream))
	audio := newRecordingAudio()
	v := loadTestVideo(t, b, audio)
	if err := v.DecodeNextFrame(&recordingGraphics{}); err != nil {
		t.Fatal(err)
	}
	ch := audio.only(t)
	if ch.rate != 22050 || ch.channels != 1 {
		t.Fatalf("expected 22050 Hz mono, got %d Hz %d ch", ch.rate, ch.channels)
	}
	if !slices.Equal(ch.samples, []int16{256, 2}) {
		t.Fatalf("unexpected samples %v", ch.samples)
	}
	if ch.volume != 100 {
		t.Fatalf("expected volume 100 from track flags 150, got %d", ch.volume)
	}
}

func TestIMuseTrackMapping(t *testing.T) {
	tests := []struct {
		flags  int
		id     int
		volume int
		ok     bool
	}{
		{1, 107, 127, true},
		{3, 307, 127, true},
		{100, 407, 0, true},
		{163, 407, 126, true},
		{250, 507, 100, true},
		{363, 607, 126, true},
		{50, 0, 127, false},
	}
	for _, tt := range tests {
		id, ok := imuseTrackID(7, tt.flags)
		vol, _ := imuseVolume(tt.flags)
		if ok != tt.ok || id != tt.id || vol != tt.volume {
			t.Errorf("flags %d: got id %d ok %v volume %d, want %d %v %d",
				tt.flags, id, ok, vol, tt.id, tt.ok, tt.volume)
		}
	}
}

func TestPSADNewHeader(t *testing.T) {
	pcm := []byte{0x80, 0x81, 0x7F, 0xFF}
	psad := chunk("PSAD",
		le16b(1), le16b(0), le16b(10), le16b(0),
		[]byte{100, 0xEC}, // volume 100, pan -20
		saudStream(11025, pcm))
	b := newSANMBuilder(1, 2, 2, 66667, 22050, 1).frame(psad)
	audio := newRecordingAudio()
	v := loadTestVideo(t, b, audio)
	if err := v.DecodeNextFrame(&recordingGraphics{}); err != nil {
		t.Fatal(err)
	}
	ch := audio.only(t)
	if ch.rate != 11025 || ch.channels != 1 {
		t.Fatalf("expected STRK rate 11025 mono, got %d Hz %d ch", ch.rate, ch.channels)
	}
	if !slices.Equal(ch.samples, []int16{0, 256, -256, 32512}) {
		t.Fatalf("unexpected samples %v", ch.samples)
	}
	if ch.volume != 200 || ch.balance != -20 {
		t.Fatalf("expected volume 200 balance -20, got %d %d", ch.volume, ch.balance)
	}
}

func TestPSADOldHeaderAcrossFrames(t *testing.T) {
	first := join([]byte("SAUD"), be32b(0), []byte("SDAT"), be32b(4), []byte{0x90, 0x70})
	b := newSANMBuilder(2, 2, 2, 66667, 0, 0).
		frame(chunk("PSAD", be32b(2), be32b(0), be32b(5), first)).
		frame(chunk("PSAD", be32b(2), be32b(1), be32b(5), []byte{0x80, 0x80}))
	audio := newRecordingAudio()
	v := loadTestVideo(t, b, audio)
	g := &recordingGraphics{}
	for i := 0; i < 2; i++ {
		if err := v.DecodeNextFrame(g); err != nil {
			t.Fatal(err)
		}
	}
	ch := audio.only(t)
	if ch.rate != saudFallbackRate {
		t.Fatalf("expected fallback rate %d, got %d", saudFallbackRate, ch.rate)
	}
	if !slices.Equal(ch.samples, []int16{4096, -4096, 0, 0}) {
		t.Fatalf("unexpected samples %v", ch.samples)
	}
	if ch.volume != VolumeMax/2 {
		t.Fatalf("old headers carry no volume, got %d", ch.volume)
	}
}

func TestWaveVIMA(t *testing.T) {
	stream := []byte{0x00, 0x00, 0x00, 0x71, 0x23, 0x40}
	b := newSANMBuilder(2, 2, 2, 66667, 22050, 1).
		frame(chunk("Wave", be32b(1), stream)).
		frame(chunk("Wave", be32b(-1), be32b(0), be32b(1), stream))
	audio := newRecordingAudio()
	v := loadTestVideo(t, b, audio)
	g := &recordingGraphics{}
	for i := 0; i < 2; i++ {
		if err := v.DecodeNextFrame(g); err != nil {
			t.Fatal(err)
		}
	}
	ch := audio.only(t)
	if ch.rate != 22050 || ch.channels != 1 {
		t.Fatalf("expected 22050 Hz mono, got %d Hz %d ch", ch.rate, ch.channels)
	}
	if !slices.Equal(ch.samples, []int16{0x1234, 0x1234}) {
		t.Fatalf("unexpected samples %v", ch.samples)
	}
}

func TestCloseStopsAudio(t *testing.T) {
	pcm := []byte{0x80, 0x80, 0x80, 0x80}
	psad := chunk("PSAD", le16b(1), le16b(0), le16b(10), le16b(0), []byte{64, 0}, saudStream(11025, pcm[:2]))
	b := newSANMBuilder(1, 2, 2, 66667, 22050, 1).frame(psad)
	audio := newRecordingAudio()
	v := loadTestVideo(t, b, audio)
	if err := v.DecodeNextFrame(&recordingGraphics{}); err != nil {
		t.Fatal(err)
	}
	before := audio.closeAll
	v.Close()
	if !audio.only(t).closed {
		t.Fatal("track channel not closed")
	}
	if audio.closeAll != before+1 {
		t.Fatalf("expected CloseAll on the sink, got %d calls", audio.closeAll-before)
	}
}
