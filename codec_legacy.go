// codec_legacy.go - Line based FOBJ codecs used by the early ANIM titles

package main

// objectRect is the canvas rectangle an FOBJ declares in its header.
type objectRect struct {
	Left, Top     int
	Width, Height int
}

// canvas8 is the palette mode frame buffer a legacy codec paints into.
type canvas8 struct {
	pix    []byte
	pitch  int
	height int
}

func (cv canvas8) set(x, y int, v byte) {
	if x < 0 || y < 0 || x >= cv.pitch || y >= cv.height {
		return
	}
	cv.pix[y*cv.pitch+x] = v
}

// decodeCodec1 handles codecs 1 and 3: every line is a LE16 byte count
// followed by bomp records, zero pixels are transparent.
func decodeCodec1(cv canvas8, r objectRect, data []byte) {
	in := &byteCursor{data: data}
	for y := 0; y < r.Height && !in.exhausted(); y++ {
		lineSize := int(in.next()) | int(in.next())<<8
		x := r.Left
		for lineSize > 0 && !in.exhausted() {
			code := in.next()
			lineSize--
			length := int(code>>1) + 1
			if code&1 != 0 {
				v := in.next()
				lineSize--
				if v != 0 {
					for i := 0; i < length; i++ {
						cv.set(x+i, r.Top+y, v)
					}
				}
				x += length
				continue
			}
			lineSize -= length
			for i := 0; i < length; i++ {
				if v := in.next(); v != 0 {
					cv.set(x, r.Top+y, v)
				}
				x++
			}
		}
	}
}

// decodeCodec21 handles codecs 21 and 44: each line is a LE16 byte count,
// then alternating LE16 skip and LE16 (count-1) literal spans.
func decodeCodec21(cv canvas8, r objectRect, data []byte) {
	pos := 0
	for y := 0; y < r.Height && pos+2 <= len(data); y++ {
		lineSize := int(le16(data, pos))
		pos += 2
		in := &byteCursor{data: data[pos:min(pos+lineSize, len(data))]}
		pos += lineSize

		x := r.Left
		remaining := r.Width
		for remaining > 0 && !in.exhausted() {
			offs := int(in.next()) | int(in.next())<<8
			x += offs
			remaining -= offs
			if remaining <= 0 {
				break
			}
			w := (int(in.next()) | int(in.next())<<8) + 1
			remaining -= w
			if remaining < 0 {
				w += remaining
			}
			for i := 0; i < w; i++ {
				if v := in.next(); v != 0 {
					cv.set(x, r.Top+y, v)
				}
				x++
			}
		}
	}
}

// decodeCodec31 handles codecs 31 and 32. Records are laid out like codec 1
// but every byte carries two 4-bit pixels (low nibble first) that are
// offset into the palette bank given by the object parameter. Codec 31
// skips zero nibbles, codec 32 paints them.
func decodeCodec31(cv canvas8, r objectRect, bank byte, data []byte, opaque bool) {
	put := func(x, y int, nibble byte) {
		if nibble == 0 && !opaque {
			return
		}
		cv.set(x, y, bank+nibble)
	}

	in := &byteCursor{data: data}
	for y := 0; y < r.Height && !in.exhausted(); y++ {
		lineSize := int(in.next()) | int(in.next())<<8
		x := r.Left
		for lineSize > 0 && !in.exhausted() {
			code := in.next()
			lineSize--
			length := int(code>>1) + 1
			if code&1 != 0 {
				v := in.next()
				lineSize--
				for i := 0; i < length; i++ {
					put(x, r.Top+y, v&0x0F)
					put(x+1, r.Top+y, v>>4)
					x += 2
				}
				continue
			}
			lineSize -= length
			for i := 0; i < length; i++ {
				v := in.next()
				put(x, r.Top+y, v&0x0F)
				put(x+1, r.Top+y, v>>4)
				x += 2
			}
		}
	}
}

// legacyStubCodecs are recognised codec ids whose decoding is not known.
var legacyStubCodecs = map[int]bool{
	2: true, 4: true, 5: true, 23: true, 33: true, 34: true, 45: true,
}
