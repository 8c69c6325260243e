// smush_palette.go - 256 colour palette with pending fade deltas

package main

const (
	paletteBytes      = 256 * 3
	xpalFullSize      = paletteBytes*3 + 4 // deltas followed by a new palette
	xpalDeltaOnlySize = paletteBytes*2 + 4
)

// Palette is the header or NPAL palette plus the deltas set by the last
// XPAL record.
type Palette struct {
	RGB   [paletteBytes]byte
	Delta [paletteBytes]int16
}

// deltaColor steps one component toward its target: (c*129 + d) / 128,
// clamped to a byte.
func deltaColor(c byte, d int16) byte {
	t := (int(c)*129 + int(d)) / 128
	return byte(max(0, min(t, 255)))
}

// ApplyDelta advances every component by its pending delta.
func (p *Palette) ApplyDelta() {
	for i := range p.RGB {
		p.RGB[i] = deltaColor(p.RGB[i], p.Delta[i])
	}
}

// handleDeltaPalette interprets an XPAL payload of the given declared size.
// It returns false when the size matches none of the known layouts.
func (p *Palette) handleDeltaPalette(r *SmushReader, size uint32) (changed, ok bool) {
	switch size {
	case xpalFullSize:
		r.Skip(4)
		p.readDeltas(r)
		copy(p.RGB[:], r.Bytes(paletteBytes))
		return true, true
	case 4, 6:
		p.ApplyDelta()
		return true, true
	case xpalDeltaOnlySize:
		r.Skip(4)
		p.readDeltas(r)
		return false, true
	}
	return false, false
}

func (p *Palette) readDeltas(r *SmushReader) {
	for i := range p.Delta {
		p.Delta[i] = r.S16LE()
	}
}
