// audio_mixer.go - Software mixer feeding the audio output callback

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
	"encoding/binary"
	"sync"
)

const (
	MixerSampleRate = 44100
	MixerChannels   = 2
	mixerFracBits   = 16
	mixerFracOne    = 1 << mixerFracBits
)

type mixChannel struct {
	rate     int
	channels int
	blocks   [][]int16
	pos      int    // sample frame inside blocks[0]
	frac     uint32 // 16.16 position between frames
	step     uint32
	volume   int
	balance  int
}

func (mc *mixChannel) idle() bool {
	return len(mc.blocks) == 0
}

func (mc *mixChannel) sampleAt(b []int16, pos int) (int32, int32) {
	if mc.channels == 1 {
		v := int32(b[pos])
		return v, v
	}
	i := pos * 2
	if i+1 >= len(b) {
		return int32(b[i]), int32(b[i])
	}
	return int32(b[i]), int32(b[i+1])
}

// frame returns the left/right sample pair before gain, interpolated
// between the current frame and the next one by the fractional position.
// The last queued frame is held.
func (mc *mixChannel) frame() (int32, int32) {
	l0, r0 := mc.sampleAt(mc.blocks[0], mc.pos)
	if mc.frac == 0 {
		return l0, r0
	}
	var l1, r1 int32
	switch {
	case mc.pos+1 < len(mc.blocks[0])/mc.channels:
		l1, r1 = mc.sampleAt(mc.blocks[0], mc.pos+1)
	case len(mc.blocks) > 1:
		l1, r1 = mc.sampleAt(mc.blocks[1], 0)
	default:
		return l0, r0
	}
	f := int64(mc.frac)
	l := l0 + int32(int64(l1-l0)*f>>mixerFracBits)
	r := r0 + int32(int64(r1-r0)*f>>mixerFracBits)
	return l, r
}

func (mc *mixChannel) advance() {
	mc.frac += mc.step
	for mc.frac >= mixerFracOne && len(mc.blocks) > 0 {
		mc.frac -= mixerFracOne
		mc.pos++
		if mc.pos >= len(mc.blocks[0])/mc.channels {
			mc.blocks[0] = nil
			mc.blocks = mc.blocks[1:]
			mc.pos = 0
		}
	}
}

// gains converts volume and balance to per side multipliers out of 255*128.
func (mc *mixChannel) gains() (int32, int32) {
	left, right := int32(128), int32(128)
	if mc.balance > 0 {
		left = int32(128 - mc.balance)
	} else if mc.balance < 0 {
		right = int32(128 + mc.balance)
	}
	vol := int32(mc.volume)
	return left * vol, right * vol
}

// AudioMixer is the AudioSink used for playback. Decoding goroutines queue
// sample blocks while the output callback drains them through Read.
type AudioMixer struct {
	mu       sync.Mutex
	channels map[AudioHandle]*mixChannel
	next     AudioHandle
	muted    bool
}

func NewAudioMixer() *AudioMixer {
	return &AudioMixer{channels: make(map[AudioHandle]*mixChannel)}
}

func (m *AudioMixer) OpenChannel(sampleRate, channelCount int) AudioHandle {
	if channelCount < 1 {
		channelCount = 1
	}
	if channelCount > 2 {
		channelCount = 2
	}
	if sampleRate <= 0 {
		sampleRate = MixerSampleRate
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	m.channels[m.next] = &mixChannel{
		rate:     sampleRate,
		channels: channelCount,
		step:     uint32(uint64(sampleRate) << mixerFracBits / MixerSampleRate),
		volume:   VolumeMax,
	}
	return m.next
}

func (m *AudioMixer) Queue(h AudioHandle, samples []int16) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mc, ok := m.channels[h]
	if !ok || len(samples) < mc.channels {
		return
	}
	mc.blocks = append(mc.blocks, samples)
}

func (m *AudioMixer) SetVolume(h AudioHandle, volume int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if mc, ok := m.channels[h]; ok {
		mc.volume = max(0, min(volume, VolumeMax))
	}
}

func (m *AudioMixer) SetBalance(h AudioHandle, balance int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if mc, ok := m.channels[h]; ok {
		mc.balance = max(BalanceMin, min(balance, BalanceMax))
	}
}

func (m *AudioMixer) CloseChannel(h AudioHandle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.channels, h)
}

func (m *AudioMixer) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.channels)
}

func (m *AudioMixer) SetMuted(muted bool) {
	m.mu.Lock()
	m.muted = muted
	m.mu.Unlock()
}

// Playing counts channels that still have queued samples.
func (m *AudioMixer) Playing() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, mc := range m.channels {
		if !mc.idle() {
			n++
		}
	}
	return n
}

// Read fills p with signed 16-bit little endian stereo frames at
// MixerSampleRate. Silence is produced when nothing is queued.
func (m *AudioMixer) Read(p []byte) (int, error) {
	frames := len(p) / 4
	m.mu.Lock()
	defer m.mu.Unlock()

	for f := 0; f < frames; f++ {
		var left, right int32
		for _, mc := range m.channels {
			if mc.idle() {
				continue
			}
			l, r := mc.frame()
			gl, gr := mc.gains()
			left += l * gl / (VolumeMax * 128)
			right += r * gr / (VolumeMax * 128)
			mc.advance()
		}
		if m.muted {
			left, right = 0, 0
		}
		binary.LittleEndian.PutUint16(p[f*4:], uint16(clampSample(left)))
		binary.LittleEndian.PutUint16(p[f*4+2:], uint16(clampSample(right)))
	}
	clear(p[frames*4:])
	return len(p), nil
}

func clampSample(v int32) int16 {
	return int16(max(-32768, min(v, 32767)))
}
