// audio_vima.go - VIMA adaptive ADPCM decoder for SANM Wave chunks

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
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/icza/bitio"
)

const vimaPredictSize = 5786

var vimaStepTable = [89]int32{
	7, 8, 9, 10, 11, 12, 13, 14, 16, 17,
	19, 21, 23, 25, 28, 31, 34, 37, 41, 45,
	50, 55, 60, 66, 73, 80, 88, 97, 107, 118,
	130, 143, 157, 173, 190, 209, 230, 253, 279, 307,
	337, 371, 408, 449, 494, 544, 598, 658, 724, 796,
	876, 963, 1060, 1166, 1282, 1411, 1552, 1707, 1878, 2066,
	2272, 2499, 2749, 3024, 3327, 3660, 4026, 4428, 4871, 5358,
	5894, 6484, 7132, 7845, 8630, 9493, 10442, 11487, 12635, 13899,
	15289, 16818, 18500, 20350, 22385, 24623, 27086, 29794, 32767,
}

// vimaSizeTable is the code width in bits for each step index.
var vimaSizeTable = [89]uint8{
	4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6,
	7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7,
}

// vimaIndexTables holds the step index adjustment per code, one table per
// code width from 2 to 7 bits.
var vimaIndexTables = [6][]int8{
	{-1, 4, -1, 4},
	{-1, -1, 2, 6, -1, -1, 2, 6},
	{-1, -1, -1, -1, 1, 2, 4, 6, -1, -1, -1, -1, 1, 2, 4, 6},
	{
		-1, -1, -1, -1, -1, -1, -1, -1, 1, 1, 1, 2, 2, 4, 5, 6,
		-1, -1, -1, -1, -1, -1, -1, -1, 1, 1, 1, 2, 2, 4, 5, 6,
	},
	{
		-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1,
		1, 1, 1, 1, 1, 2, 2, 2, 2, 4, 4, 4, 5, 5, 6, 6,
		-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1,
		1, 1, 1, 1, 1, 2, 2, 2, 2, 4, 4, 4, 5, 5, 6, 6,
	},
	{
		-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1,
		-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1,
		1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 2, 2, 2, 2, 2, 2,
		2, 2, 4, 4, 4, 4, 4, 4, 5, 5, 5, 5, 6, 6, 6, 6,
		-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1,
		-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1,
		1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 2, 2, 2, 2, 2, 2,
		2, 2, 4, 4, 4, 4, 4, 4, 5, 5, 5, 5, 6, 6, 6, 6,
	},
}

var (
	vimaPredictOnce  sync.Once
	vimaPredictTable []int32
)

// vimaPredictions returns the shared prediction table, building it on
// first use.
func vimaPredictions() []int32 {
	vimaPredictOnce.Do(func() {
		t := make([]int32, vimaPredictSize)
		for start := 0; start < 64; start++ {
			for step := range vimaStepTable {
				put := int32(0)
				value := vimaStepTable[step]
				for count := 32; count != 0; count >>= 1 {
					if start&count != 0 {
						put += value
					}
					value >>= 1
				}
				t[step*64+start] = put
			}
		}
		vimaPredictTable = t
	})
	return vimaPredictTable
}

// DecodeVIMA decodes sampleCount frames from a VIMA stream and returns
// interleaved 16-bit samples plus the channel count the stream declared.
// A truncated stream yields the samples decoded so far.
func DecodeVIMA(src []byte, sampleCount int) ([]int16, int, error) {
	if len(src) < 3 {
		return nil, 0, fmt.Errorf("VIMA: stream of %d bytes has no header", len(src))
	}
	predict := vimaPredictions()

	pos := 0
	var stepIndex [2]int
	var output [2]int32
	channels := 1
	first := src[pos]
	pos++
	if first&0x80 != 0 {
		first = ^first
		channels = 2
	}
	stepIndex[0] = int(first)
	output[0] = int32(int16(be16(src, pos)))
	pos += 2
	if channels == 2 {
		stepIndex[1] = int(byteAt(src, pos))
		output[1] = int32(int16(be16(src, pos+1)))
		pos += 3
	}
	if pos > len(src) {
		return nil, channels, fmt.Errorf("VIMA: truncated stereo header")
	}

	out := make([]int16, sampleCount*channels)
	br := bitio.NewReader(bytes.NewReader(src[pos:]))

	for ch := 0; ch < channels; ch++ {
		idx := stepIndex[ch]
		value := output[ch]
		for n := 0; n < sampleCount; n++ {
			idx = max(0, min(idx, len(vimaStepTable)-1))
			size := vimaSizeTable[idx]
			code, err := br.ReadBits(size)
			if err != nil {
				return out, channels, vimaEOF(err)
			}
			lookup := int(code)
			highBit := 1 << (size - 1)
			lowBits := highBit - 1
			negative := lookup&highBit != 0
			lookup &^= highBit

			if lookup == lowBits {
				lit, err := br.ReadBits(16)
				if err != nil {
					return out, channels, vimaEOF(err)
				}
				value = int32(int16(lit))
			} else {
				pi := (lookup << (7 - size)) | (idx << 6)
				pi = max(0, min(pi, vimaPredictSize-1))
				diff := predict[pi]
				if lookup != 0 {
					diff += vimaStepTable[idx] >> (size - 1)
				}
				if negative {
					diff = -diff
				}
				value = max(-32768, min(value+diff, 32767))
			}
			out[n*channels+ch] = int16(value)
			idx += int(vimaIndexTables[size-2][lookup])
		}
	}
	return out, channels, nil
}

func vimaEOF(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("VIMA: %w", ErrTruncated)
	}
	return fmt.Errorf("VIMA: %v", err)
}
