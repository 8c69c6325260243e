// codec37.go - Motion compensated 4x4 block codec (FOBJ codec 37)

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

import "fmt"

const (
	codec37HeaderSize = 16
	codec37DeltaPad   = 0x13600
	codec37Buf0Offset = 0x4D80
	codec37Buf1Base   = 0xE880
	codec37TableSets  = len(codec37MotionVectors) / (2 * 255)
)

// Codec37Decoder owns the ping-pong delta buffers and the offset table
// that persist from one frame to the next.
type Codec37Decoder struct {
	width, height int
	frameSize     int

	deltaBuf  []byte
	bufOffset [2]int // start of each delta buffer inside deltaBuf
	curTable  int

	offsetTable    [255]int
	tableLastPitch int
	tableLastIndex int
	tableBuilds    int

	prevSeqNb int16
}

func NewCodec37Decoder(width, height int) *Codec37Decoder {
	frameSize := width * height
	return &Codec37Decoder{
		width:          width,
		height:         height,
		frameSize:      frameSize,
		deltaBuf:       make([]byte, frameSize*3+codec37DeltaPad),
		bufOffset:      [2]int{codec37Buf0Offset, codec37Buf1Base + frameSize},
		tableLastPitch: -1,
		tableLastIndex: -1,
	}
}

// makeTable converts motion vector set index into byte offsets for the
// given row pitch. Repeated calls with the same pitch and index are free.
func (c *Codec37Decoder) makeTable(pitch, index int) {
	if c.tableLastPitch == pitch && c.tableLastIndex == index {
		return
	}
	c.tableLastPitch = pitch
	c.tableLastIndex = index
	c.tableBuilds++

	base := index * 255
	for i := range c.offsetTable {
		j := (i + base) * 2
		c.offsetTable[i] = int(codec37MotionVectors[j+1])*pitch + int(codec37MotionVectors[j])
	}
}

func (c *Codec37Decoder) Decode(dst, src []byte) error {
	if len(src) < codec37HeaderSize {
		return fmt.Errorf("codec 37: payload of %d bytes is shorter than the frame header", len(src))
	}
	bw := (c.width + 3) / 4
	bh := (c.height + 3) / 4
	pitch := bw * 4

	mode := src[0]
	index := int(src[1])
	seq := int16(le16(src, 2))
	decodedSize := int(le32(src, 4))
	maskFlags := src[12]
	data := src[codec37HeaderSize:]

	if index >= codec37TableSets {
		return fmt.Errorf("codec 37: motion vector set %d out of range", index)
	}
	c.makeTable(pitch, index)

	switch mode {
	case 0:
		cur := c.bufOffset[c.curTable]
		n := min(decodedSize, len(data), len(c.deltaBuf)-cur)
		c.clearOutside(cur, n)
		copy(c.deltaBuf[cur:cur+n], data[:n])
	case 2:
		cur := c.bufOffset[c.curTable]
		n := min(decodedSize, len(c.deltaBuf)-cur)
		bompDecode(c.deltaBuf[cur:], data, n)
		c.clearOutside(cur, n)
	case 1, 3, 4:
		if seq&1 != 0 || maskFlags&1 == 0 {
			c.curTable ^= 1
		}
		cur := c.bufOffset[c.curTable]
		nextOffs := c.bufOffset[c.curTable^1] - cur
		in := &byteCursor{data: data}
		withFDFE := maskFlags&4 != 0
		switch mode {
		case 1:
			c.proc1(cur, in, nextOffs, bw, bh, pitch)
		case 3:
			c.proc3(cur, in, nextOffs, bw, bh, pitch, withFDFE)
		case 4:
			c.proc4(cur, in, nextOffs, bw, bh, pitch, withFDFE)
		}
	default:
		return fmt.Errorf("codec 37: unknown mode %d", mode)
	}
	c.prevSeqNb = seq

	c.copyOut(dst, pitch)
	return nil
}

// clearOutside zeroes the whole delta area except the n bytes written at cur.
func (c *Codec37Decoder) clearOutside(cur, n int) {
	clear(c.deltaBuf[:cur])
	if cur+n < len(c.deltaBuf) {
		clear(c.deltaBuf[cur+n:])
	}
}

func (c *Codec37Decoder) copyOut(dst []byte, pitch int) {
	cur := c.bufOffset[c.curTable]
	if pitch == c.width {
		copy(dst, c.deltaBuf[cur:cur+c.frameSize])
		return
	}
	for y := 0; y < c.height; y++ {
		row := y * c.width
		if row >= len(dst) {
			return
		}
		from := cur + y*pitch
		copy(dst[row:min(row+c.width, len(dst))], c.deltaBuf[from:from+c.width])
	}
}

// block helpers; every helper silently drops blocks that would land
// outside the delta area

func (c *Codec37Decoder) blockFits(at, pitch int) bool {
	return at >= 0 && at+3*pitch+4 <= len(c.deltaBuf)
}

func (c *Codec37Decoder) copyBlock(at, from, pitch int) {
	if !c.blockFits(at, pitch) || !c.blockFits(from, pitch) {
		return
	}
	for y := 0; y < 4; y++ {
		d := at + y*pitch
		s := from + y*pitch
		copy(c.deltaBuf[d:d+4], c.deltaBuf[s:s+4])
	}
}

// motionCopy copies the block the offset table points at in the previous
// buffer. Code 0xFF has no table entry; a fill run carrying it skips the block.
func (c *Codec37Decoder) motionCopy(at int, code byte, nextOffs, pitch int) {
	if int(code) >= len(c.offsetTable) {
		return
	}
	c.copyBlock(at, at+c.offsetTable[code]+nextOffs, pitch)
}

func (c *Codec37Decoder) fillRows(at, pitch int, colors [4]byte) {
	if !c.blockFits(at, pitch) {
		return
	}
	for y := 0; y < 4; y++ {
		row := c.deltaBuf[at+y*pitch : at+y*pitch+4]
		for x := range row {
			row[x] = colors[y]
		}
	}
}

func (c *Codec37Decoder) literal4x4(at, pitch int, in *byteCursor) {
	v := in.next()
	c.fillRows(at, pitch, [4]byte{v, v, v, v})
}

func (c *Codec37Decoder) literal4x1(at, pitch int, in *byteCursor) {
	c.fillRows(at, pitch, [4]byte{in.next(), in.next(), in.next(), in.next()})
}

func (c *Codec37Decoder) literal1x1(at, pitch int, in *byteCursor) {
	var px [16]byte
	for i := range px {
		px[i] = in.next()
	}
	if !c.blockFits(at, pitch) {
		return
	}
	for y := 0; y < 4; y++ {
		copy(c.deltaBuf[at+y*pitch:at+y*pitch+4], px[y*4:y*4+4])
	}
}

func (c *Codec37Decoder) setPixel(at int, v byte) {
	if at >= 0 && at < len(c.deltaBuf) {
		c.deltaBuf[at] = v
	}
}

// proc1 decodes the bit packed variant: a length byte whose low bit marks
// a fill run, then block codes where 0xFF escapes to sixteen raw pixels.
func (c *Codec37Decoder) proc1(dst int, in *byteCursor, nextOffs, bw, bh, pitch int) {
	var pitches [16]int
	for p := range pitches {
		pitches[p] = (p>>2)*pitch + (p & 3)
	}

	var code byte
	filling := false
	length := -1
	i := bw
	for !in.exhausted() {
		skipCode := true
		if length < 0 {
			b := in.next()
			filling = b&1 == 1
			length = int(b >> 1)
			skipCode = false
		}
		if !filling || !skipCode {
			code = in.next()
			if code == 0xFF {
				length--
				for p := 0; p < 16; p++ {
					if length < 0 {
						b := in.next()
						filling = b&1 == 1
						length = int(b >> 1)
						if filling {
							code = in.next()
						}
					}
					if filling {
						c.setPixel(dst+pitches[p], code)
					} else {
						c.setPixel(dst+pitches[p], in.next())
					}
					length--
				}
				dst += 4
				i--
				if i == 0 {
					dst += pitch * 3
					bh--
					if bh == 0 {
						return
					}
					i = bw
				}
				continue
			}
		}
		c.motionCopy(dst, code, nextOffs, pitch)
		dst += 4
		i--
		if i == 0 {
			dst += pitch * 3
			bh--
			if bh == 0 {
				return
			}
			i = bw
		}
		length--
	}
}

// escape handles the literal codes shared by modes 3 and 4. It reports
// whether code was consumed as a literal.
func (c *Codec37Decoder) escape(code byte, dst, pitch int, in *byteCursor, withFDFE bool) bool {
	switch {
	case code == 0xFF:
		c.literal1x1(dst, pitch, in)
	case withFDFE && code == 0xFE:
		c.literal4x1(dst, pitch, in)
	case withFDFE && code == 0xFD:
		c.literal4x4(dst, pitch, in)
	default:
		return false
	}
	return true
}

func (c *Codec37Decoder) proc3(dst int, in *byteCursor, nextOffs, bw, bh, pitch int, withFDFE bool) {
	for ; bh > 0; bh-- {
		for i := 0; i < bw; i++ {
			if in.exhausted() {
				return
			}
			code := in.next()
			if !c.escape(code, dst, pitch, in, withFDFE) {
				c.motionCopy(dst, code, nextOffs, pitch)
			}
			dst += 4
		}
		dst += pitch * 3
	}
}

// proc4 is proc3 plus code 0x00, which copies the co-located block from
// the previous buffer for the next count+1 blocks.
func (c *Codec37Decoder) proc4(dst int, in *byteCursor, nextOffs, bw, bh, pitch int, withFDFE bool) {
	i := bw
	for bh > 0 {
		if in.exhausted() {
			return
		}
		code := in.next()
		switch {
		case c.escape(code, dst, pitch, in, withFDFE):
			dst += 4
			i--
		case code == 0x00:
			count := int(in.next()) + 1
			for ; count > 0; count-- {
				c.copyBlock(dst, dst+nextOffs, pitch)
				dst += 4
				i--
				if i == 0 {
					dst += pitch * 3
					bh--
					i = bw
					if bh == 0 {
						return
					}
				}
			}
			continue
		default:
			c.motionCopy(dst, code, nextOffs, pitch)
			dst += 4
			i--
		}
		if i == 0 {
			dst += pitch * 3
			bh--
			i = bw
		}
	}
}
