// smush_framesize.go - Canvas size detection for ANIM files

package main

import "fmt"

const (
	frameSizeScanLimit = 20
	fobjHeaderSize     = 14
)

// fobjHeader is the fixed prefix of every FOBJ payload.
type fobjHeader struct {
	Codec  int
	Param  byte
	Left   int
	Top    int
	Width  int
	Height int
}

func parseFOBJHeader(b []byte) (fobjHeader, bool) {
	if len(b) < fobjHeaderSize {
		return fobjHeader{}, false
	}
	return fobjHeader{
		Codec:  int(b[0]),
		Param:  b[1],
		Left:   int(int16(le16(b, 2))),
		Top:    int(int16(le16(b, 4))),
		Width:  int(le16(b, 6)),
		Height: int(le16(b, 8)),
	}, true
}

// fullFrameCodec reports codecs that always cover the whole canvas.
func fullFrameCodec(codec int) bool {
	return codec == 37 || codec == 47 || codec == 48
}

// detectFrameSize scans the first frames for a video object that reveals
// the canvas size, since AHDR does not carry one. The read position is
// restored afterwards.
func (v *SmushVideo) detectFrameSize() error {
	start := v.r.Pos()
	limit := min(frameSizeScanLimit, v.desc.FrameCount)

	found := false
	for i := 0; i < limit && !found; i++ {
		frame := v.r.ChunkHeader()
		if v.r.Err() != nil {
			return loadError("frame size detection", fmt.Errorf("%w: %v", ErrTruncated, v.r.Err()))
		}
		if frame.Tag != TAG_FRME {
			return loadError(fmt.Sprintf("frame %d has tag %q", i, TagString(frame.Tag)), ErrFrameSize)
		}
		end := frame.Start + int64(frame.Size)
		for v.r.Pos() < end && !found {
			sub := v.r.ChunkHeader()
			if v.r.EOF() {
				return loadError("frame size detection", ErrTruncated)
			}
			var head []byte
			switch sub.Tag {
			case TAG_FOBJ:
				head = v.r.Bytes(min(int(sub.Size), fobjHeaderSize))
			case TAG_ZFOB:
				expanded, err := expandZFOB(v.r.Bytes(int(sub.Size)))
				if err != nil {
					return loadError("frame size detection", err)
				}
				head = expanded
			}
			if obj, ok := parseFOBJHeader(head); ok && obj.Width != 1 && obj.Height != 1 {
				v.applyDetectedSize(obj)
				found = true
			}
			v.r.SeekTo(sub.End())
		}
		v.r.SeekTo(frame.End())
	}

	if v.desc.Width <= 0 || v.desc.Height <= 0 {
		return loadError(fmt.Sprintf("no usable video object in the first %d frames", limit), ErrFrameSize)
	}
	v.r.SeekTo(start)
	return nil
}

func (v *SmushVideo) applyDetectedSize(obj fobjHeader) {
	v.desc.Width = obj.Width
	v.desc.Height = obj.Height
	if fullFrameCodec(obj.Codec) {
		return
	}
	// partial objects are assumed to sit in the bottom right of the canvas
	if obj.Left > 0 {
		v.desc.Width += obj.Left
	}
	if obj.Top > 0 {
		v.desc.Height += obj.Top
	}
}
