// codec47.go - Rotating three-buffer codec (FOBJ codec 47)

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
	"fmt"
	"sync"
)

const (
	codec47HeaderSize  = 26
	codec47ExtraTables = 0x8080
	codec47ParamsAt    = 8
)

// Codec47Decoder keeps the current frame and two reference frames. The
// reference roles rotate when the sequence number advances by one.
type Codec47Decoder struct {
	width, height int
	frameSize     int

	curBuf    []byte
	deltaBufs [2][]byte
	prevSeqNb int

	// interp maps an unordered colour pair to the colour between them.
	// Frames with header bit 0 of byte 4 set carry a new one.
	interp []byte
}

func NewCodec47Decoder(width, height int) *Codec47Decoder {
	frameSize := width * height
	// whole 8x8 blocks may run past the right and bottom edges
	bufSize := (height+7)/8*8*width + 8
	return &Codec47Decoder{
		width:     width,
		height:    height,
		frameSize: frameSize,
		curBuf:    make([]byte, bufSize),
		deltaBufs: [2][]byte{make([]byte, bufSize), make([]byte, bufSize)},
		prevSeqNb: -1,
	}
}

func (c *Codec47Decoder) Decode(dst, src []byte) error {
	if len(src) < codec47HeaderSize {
		return fmt.Errorf("codec 47: payload of %d bytes is shorter than the frame header", len(src))
	}
	seq := int(le16(src, 0))
	frameType := src[2]
	rotate := src[3]
	data := src[codec47HeaderSize:]

	if seq == 0 {
		fillBytes(c.deltaBufs[0], src[12])
		fillBytes(c.deltaBufs[1], src[13])
		c.prevSeqNb = -1
	}
	if src[4]&1 != 0 {
		if len(data) < codec47ExtraTables {
			data = nil
		} else {
			c.loadInterpolation(data[:codec47ExtraTables])
			data = data[codec47ExtraTables:]
		}
	}

	var err error
	switch frameType {
	case 0:
		copy(c.curBuf[:c.frameSize], data)
	case 1:
		c.scaleFrame(data)
	case 2:
		if seq == c.prevSeqNb+1 {
			c.decodeBlocks(data, src[codec47ParamsAt:codec47ParamsAt+8])
		}
	case 3:
		copy(c.curBuf, c.deltaBufs[1])
	case 4:
		copy(c.curBuf, c.deltaBufs[0])
	case 5:
		bompDecode(c.curBuf[:c.frameSize], data, int(le32(src, 14)))
	default:
		err = fmt.Errorf("codec 47: unknown frame type %d", frameType)
	}

	copy(dst, c.curBuf[:c.frameSize])

	if seq == c.prevSeqNb+1 {
		switch rotate {
		case 1:
			c.curBuf, c.deltaBufs[1] = c.deltaBufs[1], c.curBuf
		case 2:
			c.deltaBufs[0], c.deltaBufs[1] = c.deltaBufs[1], c.deltaBufs[0]
			c.deltaBufs[1], c.curBuf = c.curBuf, c.deltaBufs[1]
		}
	}
	c.prevSeqNb = seq
	return err
}

// loadInterpolation expands the triangular pair table that precedes the
// frame data into a full 256x256 lookup.
func (c *Codec47Decoder) loadInterpolation(table []byte) {
	if c.interp == nil {
		c.interp = make([]byte, 256*256)
	}
	k := 0
	for a := 0; a < 256; a++ {
		for b := a; b < 256; b++ {
			c.interp[a*256+b] = table[k]
			c.interp[b*256+a] = table[k]
			k++
		}
	}
}

func (c *Codec47Decoder) between(a, b byte) byte {
	if c.interp == nil {
		return a
	}
	return c.interp[int(a)*256+int(b)]
}

// scaleFrame expands a half size image. Without an interpolation table
// every source pixel becomes a 2x2 block.
func (c *Codec47Decoder) scaleFrame(data []byte) {
	w2, h2 := c.width/2, c.height/2
	in := &byteCursor{data: data}
	half := make([]byte, w2*h2)
	for i := range half {
		half[i] = in.next()
	}
	at := func(x, y int) byte {
		return half[min(y, h2-1)*w2+min(x, w2-1)]
	}
	for y := 0; y < h2; y++ {
		for x := 0; x < w2; x++ {
			p := at(x, y)
			right := at(x+1, y)
			down := at(x, y+1)
			o := 2*y*c.width + 2*x
			c.curBuf[o] = p
			c.curBuf[o+1] = c.between(p, right)
			c.curBuf[o+c.width] = c.between(p, down)
			c.curBuf[o+c.width+1] = c.between(p, at(x+1, y+1))
		}
	}
}

// decodeBlocks walks the frame in 8x8 blocks. Motion vectors point into
// reference buffer 1 and code 0xFC copies from reference buffer 0.
func (c *Codec47Decoder) decodeBlocks(data, params []byte) {
	b := &codec47Blocks{
		c:      c,
		in:     &byteCursor{data: data},
		params: params,
		motion: c.deltaBufs[1],
		still:  c.deltaBufs[0],
	}
	for y := 0; y < c.height; y += 8 {
		for x := 0; x < c.width; x += 8 {
			if b.in.exhausted() {
				return
			}
			b.block(y*c.width+x, 8)
		}
	}
}

type codec47Blocks struct {
	c      *Codec47Decoder
	in     *byteCursor
	params []byte
	motion []byte
	still  []byte
}

func (b *codec47Blocks) block(at, size int) {
	pitch := b.c.width
	cur := b.c.curBuf
	code := b.in.next()
	switch {
	case code == 0xFF && size == 2:
		cur[at] = b.in.next()
		cur[at+1] = b.in.next()
		cur[at+pitch] = b.in.next()
		cur[at+pitch+1] = b.in.next()
	case code == 0xFF:
		half := size / 2
		b.block(at, half)
		b.block(at+half, half)
		b.block(at+half*pitch, half)
		b.block(at+half*pitch+half, half)
	case code == 0xFE:
		b.fill(at, size, b.in.next())
	case code == 0xFD && size > 2:
		mask := glyphFor(b.in.next(), size)
		on, off := b.in.next(), b.in.next()
		for y := 0; y < size; y++ {
			row := cur[at+y*pitch : at+y*pitch+size]
			for x := range row {
				if mask[y*size+x] != 0 {
					row[x] = on
				} else {
					row[x] = off
				}
			}
		}
	case code == 0xFC:
		b.copyFrom(b.still, at, at, size)
	case code >= 0xF8:
		b.fill(at, size, b.params[code-0xF8])
	default:
		dx := int(codec47MotionVectors[int(code)*2])
		dy := int(codec47MotionVectors[int(code)*2+1])
		b.copyFrom(b.motion, at, at+dy*pitch+dx, size)
	}
}

func (b *codec47Blocks) fill(at, size int, v byte) {
	pitch := b.c.width
	for y := 0; y < size; y++ {
		fillBytes(b.c.curBuf[at+y*pitch:at+y*pitch+size], v)
	}
}

// copyFrom copies a block out of a reference buffer. Sources that fall
// outside the buffer leave the block untouched.
func (b *codec47Blocks) copyFrom(ref []byte, at, from, size int) {
	pitch := b.c.width
	if from < 0 || from+(size-1)*pitch+size > len(ref) {
		return
	}
	for y := 0; y < size; y++ {
		copy(b.c.curBuf[at+y*pitch:at+y*pitch+size], ref[from+y*pitch:from+y*pitch+size])
	}
}

func fillBytes(b []byte, v byte) {
	for i := range b {
		b[i] = v
	}
}

// glyph outlines

const (
	edgeBottom = iota
	edgeTop
	edgeLeft
	edgeRight
	edgeNone
)

const (
	dirNone = iota
	dirUp
	dirDown
	dirLeft
	dirRight
)

var (
	glyphOnce   sync.Once
	glyphsSmall [256][16]byte
	glyphsBig   [256][64]byte
)

func glyphFor(index byte, size int) []byte {
	glyphOnce.Do(func() {
		for i := range glyphsSmall {
			makeGlyph(glyphsSmall[i][:], i, 4, &glyph4X, &glyph4Y)
			makeGlyph(glyphsBig[i][:], i, 8, &glyph8X, &glyph8Y)
		}
	})
	if size == 8 {
		return glyphsBig[index][:]
	}
	return glyphsSmall[index][:]
}

func glyphEdge(x, y, size int) int {
	switch {
	case y == 0:
		return edgeBottom
	case y == size-1:
		return edgeTop
	case x == 0:
		return edgeLeft
	case x == size-1:
		return edgeRight
	}
	return edgeNone
}

func glyphDirection(e0, e1 int) int {
	switch {
	case e0 == edgeLeft && e1 == edgeRight, e1 == edgeLeft && e0 == edgeRight,
		e0 == edgeBottom && e1 != edgeTop, e1 == edgeBottom && e0 != edgeTop:
		return dirUp
	case e0 == edgeTop && e1 != edgeBottom, e1 == edgeTop && e0 != edgeBottom:
		return dirDown
	case e0 == edgeLeft && e1 != edgeRight, e1 == edgeLeft && e0 != edgeRight:
		return dirLeft
	case e0 == edgeTop && e1 == edgeBottom, e1 == edgeTop && e0 == edgeBottom,
		e0 == edgeRight && e1 != edgeLeft, e1 == edgeRight && e0 != edgeLeft:
		return dirRight
	}
	return dirNone
}

// makeGlyph rasterises the line from point index/16 to point index%16 and
// floods every point on it towards the side chosen by the edges.
func makeGlyph(mask []byte, index, size int, xs, ys *[16]int) {
	x0, y0 := xs[index>>4], ys[index>>4]
	x1, y1 := xs[index&15], ys[index&15]
	dir := glyphDirection(glyphEdge(x0, y0, size), glyphEdge(x1, y1, size))
	n := max(abs(x1-x0), abs(y1-y0))
	for pos := 0; pos <= n; pos++ {
		px, py := x0, y0
		if n > 0 {
			px = (x0*pos + x1*(n-pos) + n/2) / n
			py = (y0*pos + y1*(n-pos) + n/2) / n
		}
		mask[py*size+px] = 1
		switch dir {
		case dirUp:
			for y := py; y >= 0; y-- {
				mask[y*size+px] = 1
			}
		case dirDown:
			for y := py; y < size; y++ {
				mask[y*size+px] = 1
			}
		case dirLeft:
			for x := px; x >= 0; x-- {
				mask[py*size+x] = 1
			}
		case dirRight:
			for x := px; x < size; x++ {
				mask[py*size+x] = 1
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
