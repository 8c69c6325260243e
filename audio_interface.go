// audio_interface.go - Boundary between the SMUSH decoder and audio output

package main

// AudioHandle names one open output channel.
type AudioHandle int

// AudioSink receives decoded sample blocks. Implementations never block
// the caller, and a queued slice belongs to the sink once Queue returns.
type AudioSink interface {
	OpenChannel(sampleRate, channelCount int) AudioHandle
	Queue(h AudioHandle, samples []int16)
	SetVolume(h AudioHandle, volume int)   // 0..255
	SetBalance(h AudioHandle, balance int) // -128..127
	CloseChannel(h AudioHandle)
	CloseAll()
}

// Output ranges for SetVolume and SetBalance
const (
	VolumeMax  = 255
	BalanceMin = -128
	BalanceMax = 127
)
