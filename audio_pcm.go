// audio_pcm.go - Raw PCM framing and the 12-bit packed sample format

package main

import "encoding/binary"

// PCMFlags select sample width, signedness and byte order. The zero value
// is signed 8-bit.
type PCMFlags uint8

const (
	PCMUnsigned     PCMFlags = 1 << 0
	PCM16Bit        PCMFlags = 1 << 1
	PCMLittleEndian PCMFlags = 1 << 2
)

func (f PCMFlags) sampleBytes() int {
	if f&PCM16Bit != 0 {
		return 2
	}
	return 1
}

// DecodePCM converts raw PCM bytes to signed 16-bit samples. A trailing
// partial 16-bit sample is dropped.
func DecodePCM(data []byte, flags PCMFlags) []int16 {
	width := flags.sampleBytes()
	out := make([]int16, len(data)/width)
	var flip uint16
	if flags&PCMUnsigned != 0 {
		flip = 0x8000
	}
	for i := range out {
		var v uint16
		switch {
		case width == 1:
			v = uint16(data[i]) << 8
		case flags&PCMLittleEndian != 0:
			v = binary.LittleEndian.Uint16(data[i*2:])
		default:
			v = binary.BigEndian.Uint16(data[i*2:])
		}
		out[i] = int16(v ^ flip)
	}
	return out
}

// Decode12 unpacks every 3 byte group into two 12-bit samples scaled to
// 16 bits. Trailing bytes that do not form a full group are ignored.
func Decode12(src []byte) []int16 {
	groups := len(src) / 3
	out := make([]int16, groups*2)
	for g := 0; g < groups; g++ {
		v1 := int(src[g*3])
		v2 := int(src[g*3+1])
		v3 := int(src[g*3+2])
		out[g*2] = int16(((((v2 & 0x0F) << 8) | v1) << 4) - 0x8000)
		out[g*2+1] = int16(((((v2 & 0xF0) << 4) | v3) << 4) - 0x8000)
	}
	return out
}
