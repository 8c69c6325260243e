// blocky16.go - High colour frame decoder for SANM Bl16 chunks

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
	"fmt"
)

const (
	blocky16HeaderSize  = 560
	blocky16ColorTable  = 40
	blocky16ColorCount  = 256
	blocky16BytesPerPix = 2
)

// Blocky16Decoder renders RGB565 little-endian frames. Like codec 47 it
// rotates a current buffer through two reference buffers.
type Blocky16Decoder struct {
	width, height int
	frameSize     int // bytes, two per pixel

	curBuf    []byte
	deltaBufs [2][]byte
	indexBuf  []byte
	colors    [blocky16ColorCount]uint16
	prevSeqNb int
}

func NewBlocky16Decoder(width, height int) *Blocky16Decoder {
	frameSize := width * height * blocky16BytesPerPix
	return &Blocky16Decoder{
		width:     width,
		height:    height,
		frameSize: frameSize,
		curBuf:    make([]byte, frameSize),
		deltaBufs: [2][]byte{make([]byte, frameSize), make([]byte, frameSize)},
		indexBuf:  make([]byte, width*height),
		prevSeqNb: -1,
	}
}

func (b *Blocky16Decoder) Decode(dst, src []byte) error {
	if len(src) < blocky16HeaderSize {
		return fmt.Errorf("blocky16: payload of %d bytes is shorter than the frame header", len(src))
	}
	seq := int(le16(src, 16))
	frameType := src[18]
	rotate := src[19]
	decodedSize := int(le32(src, 36))
	data := src[blocky16HeaderSize:]

	for i := range b.colors {
		b.colors[i] = le16(src, blocky16ColorTable+i*2)
	}

	if seq == 0 {
		b.fillBackground(src[32], src[33])
		b.prevSeqNb = -1
	}

	var err error
	switch frameType {
	case 0:
		copy(b.curBuf, data)
	case 3:
		copy(b.curBuf, b.deltaBufs[1])
	case 4:
		copy(b.curBuf, b.deltaBufs[0])
	case 5:
		bompDecode(b.curBuf, data, decodedSize)
	case 6:
		b.expandIndices(data)
	case 8:
		n := bompDecode(b.indexBuf, data, decodedSize)
		b.expandIndices(b.indexBuf[:n])
	case 1, 2, 7:
		err = &CodecStubError{Codec: 16, FrameType: int(frameType)}
	default:
		err = fmt.Errorf("blocky16: unknown frame type %d", frameType)
	}

	copy(dst, b.curBuf)

	if seq == b.prevSeqNb+1 {
		switch rotate {
		case 1:
			b.curBuf, b.deltaBufs[1] = b.deltaBufs[1], b.curBuf
		case 2:
			b.deltaBufs[0], b.deltaBufs[1] = b.deltaBufs[1], b.deltaBufs[0]
			b.deltaBufs[1], b.curBuf = b.curBuf, b.deltaBufs[1]
		}
	}
	b.prevSeqNb = seq
	return err
}

// fillBackground resets both reference buffers. Equal bytes are a plain
// byte fill, otherwise the pair is one RGB565 pixel.
func (b *Blocky16Decoder) fillBackground(lo, hi byte) {
	for _, buf := range b.deltaBufs {
		if lo == hi {
			fillBytes(buf, lo)
			continue
		}
		for i := 0; i+1 < len(buf); i += 2 {
			buf[i] = lo
			buf[i+1] = hi
		}
	}
}

// expandIndices maps 8-bit colour indices through the frame's colour table.
func (b *Blocky16Decoder) expandIndices(indices []byte) {
	n := min(len(indices), len(b.curBuf)/blocky16BytesPerPix)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint16(b.curBuf[i*2:], b.colors[indices[i]])
	}
}
