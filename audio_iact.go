// audio_iact.go - Interactive (IACT) audio records

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

const (
	iactSampleRate  = 22050
	iactChannels    = 2
	iactBlockBytes  = 4096
	iactBlockPairs  = 1024
	iactEscapeValue = 0x80
)

// iactAudio reassembles length prefixed IACT audio records that span
// several chunks. The stream always plays at 22050 Hz stereo whatever the
// file header claims.
type iactAudio struct {
	sink   AudioSink
	handle AudioHandle
	open   bool
	buf    []byte // partial record including its BE16 length prefix
}

func newIACTAudio(sink AudioSink) *iactAudio {
	return &iactAudio{sink: sink}
}

// Append feeds record bytes and queues one 4096 byte block for every
// record that completes.
func (ia *iactAudio) Append(data []byte) int {
	if !ia.open {
		ia.handle = ia.sink.OpenChannel(iactSampleRate, iactChannels)
		ia.open = true
	}
	blocks := 0
	for len(data) > 0 {
		if len(ia.buf) < 2 {
			ia.buf = append(ia.buf, data[0])
			data = data[1:]
			continue
		}
		need := int(be16(ia.buf, 0)) + 2 - len(ia.buf)
		if need > len(data) {
			ia.buf = append(ia.buf, data...)
			break
		}
		ia.buf = append(ia.buf, data[:need]...)
		data = data[need:]
		ia.sink.Queue(ia.handle, decodeIACTRecord(ia.buf[2:]))
		ia.buf = ia.buf[:0]
		blocks++
	}
	return blocks
}

func (ia *iactAudio) Close() {
	if ia.open {
		ia.sink.CloseChannel(ia.handle)
		ia.open = false
	}
	ia.buf = nil
}

// decodeIACTRecord expands one record into 2048 interleaved stereo
// samples. The first byte holds the left and right shift counts; each
// following byte is a shifted 8-bit sample unless it is 0x80, which
// escapes a raw big-endian 16-bit sample.
func decodeIACTRecord(rec []byte) []int16 {
	in := &byteCursor{data: rec}
	shifts := in.next()
	leftShift := shifts >> 4
	rightShift := shifts & 0x0F

	out := make([]int16, 0, iactBlockBytes/2)
	sample := func(shift byte) int16 {
		v := in.next()
		if v == iactEscapeValue {
			return int16(uint16(in.next())<<8 | uint16(in.next()))
		}
		return int16(int8(v)) << shift
	}
	for i := 0; i < iactBlockPairs; i++ {
		out = append(out, sample(leftShift), sample(rightShift))
	}
	return out
}
