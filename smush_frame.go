// smush_frame.go - FRME record decoding and sub-chunk handlers

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
	"errors"
	"fmt"
)

// DecodeNextFrame decodes one FRME record into the frame buffer, feeding
// video objects to gfx and audio to the sink, then presents the frame.
func (v *SmushVideo) DecodeNextFrame(gfx GraphicsSink) error {
	if !v.loaded {
		return ErrNotLoaded
	}

	hdr := v.r.ChunkHeader()
	if hdr.Tag == TAG_ANNO {
		v.r.SeekTo(hdr.End())
		hdr = v.r.ChunkHeader()
	}
	if err := v.r.Err(); err != nil {
		return decodeError(fmt.Sprintf("frame %d header", v.framesDecoded), fmt.Errorf("%w: %v", ErrTruncated, err))
	}
	if hdr.Tag != TAG_FRME {
		return decodeError(fmt.Sprintf("frame %d found %q at offset %d", v.framesDecoded, TagString(hdr.Tag), hdr.Start-8), ErrFrameDesync)
	}

	end := hdr.Start + int64(hdr.Size)
	for v.r.Pos() < end {
		sub := v.r.ChunkHeader()
		if v.r.EOF() {
			return decodeError(fmt.Sprintf("frame %d", v.framesDecoded), ErrTruncated)
		}
		if err := v.handleSubChunk(gfx, sub); err != nil {
			return err
		}
		if v.r.EOF() {
			return decodeError(fmt.Sprintf("frame %d %s chunk", v.framesDecoded, TagString(sub.Tag)), ErrTruncated)
		}
		// the declared size wins over whatever the handler consumed
		v.r.SeekTo(sub.End())
	}
	v.r.SeekTo(hdr.End())
	if err := v.r.Err(); err != nil {
		return decodeError(fmt.Sprintf("frame %d", v.framesDecoded), fmt.Errorf("%w: %v", ErrTruncated, err))
	}

	gfx.PresentFrame()
	v.framesDecoded++
	return nil
}

func (v *SmushVideo) handleSubChunk(gfx GraphicsSink, sub chunkHeader) error {
	switch sub.Tag {
	case TAG_FOBJ, TAG_ZFOB, TAG_BL16:
		payload, err := v.readPayload(sub)
		if err != nil {
			return err
		}
		switch sub.Tag {
		case TAG_FOBJ:
			v.handleFrameObject(gfx, payload)
		case TAG_ZFOB:
			expanded, err := expandZFOB(payload)
			if err != nil {
				return decodeError(fmt.Sprintf("frame %d ZFOB", v.framesDecoded), err)
			}
			v.handleFrameObject(gfx, expanded)
		default:
			v.handleBlocky16(gfx, payload)
		}
	case TAG_NPAL:
		v.handleNewPalette(gfx, sub.Size)
	case TAG_XPAL:
		changed, ok := v.palette.handleDeltaPalette(v.r, sub.Size)
		if !ok {
			v.logger.Warn("bad XPAL chunk", "size", sub.Size)
		} else if changed {
			gfx.SetPalette(v.palette.RGB[:], 0, 256)
		}
	case TAG_STOR:
		v.storeFrame = true
	case TAG_FTCH:
		v.handleFetch(sub.Size)
	case TAG_IACT:
		v.handleIACT(sub.Size)
	case TAG_WAVE:
		v.handleVIMA(sub)
	case TAG_PSAD, TAG_PSD2, TAG_PVOC:
		v.handleSoundFrame(sub.Size)
	case TAG_GOST:
		v.handleGhost(sub.Size)
	case TAG_SKIP, TAG_GAME, TAG_GAM2, TAG_LOAD, TAG_TEXT, TAG_TRES, TAG_SEGA, TAG_FADE:
	default:
		v.logger.Debug("unknown sub-chunk", "tag", TagString(sub.Tag), "size", sub.Size)
	}
	return nil
}

// readPayload reads a whole sub-chunk body. A body running past the end
// of the file is a truncation error.
func (v *SmushVideo) readPayload(sub chunkHeader) ([]byte, error) {
	payload := v.r.Bytes(int(sub.Size))
	if err := v.r.Err(); err != nil {
		return nil, decodeError(fmt.Sprintf("frame %d %s chunk of %d bytes", v.framesDecoded, TagString(sub.Tag), sub.Size),
			fmt.Errorf("%w: %v", ErrTruncated, err))
	}
	return payload, nil
}

func (v *SmushVideo) handleFrameObject(gfx GraphicsSink, payload []byte) {
	if v.desc.HighColor {
		v.logger.Warn("frame object in 16bpp video")
		return
	}
	obj, ok := parseFOBJHeader(payload)
	if !ok {
		v.logger.Warn("short frame object", "size", len(payload))
		return
	}
	data := payload[fobjHeaderSize:]

	if fullFrameCodec(obj.Codec) {
		if obj.Width != v.desc.Width || obj.Height != v.desc.Height {
			v.logger.Warn("codec dimensions differ from canvas",
				"codec", obj.Codec, "width", obj.Width, "height", obj.Height)
			return
		}
		dec, _ := v.codecs.Decoder(obj.Codec)
		v.reportDecodeError(obj.Codec, dec.Decode(v.buffer, data))
		v.finishVideoObject(gfx)
		return
	}

	if obj.Left < 0 || obj.Top < 0 || obj.Left+obj.Width > v.desc.Width || obj.Top+obj.Height > v.desc.Height {
		v.logger.Warn("frame object outside canvas", "codec", obj.Codec,
			"left", obj.Left, "top", obj.Top, "width", obj.Width, "height", obj.Height)
		return
	}

	cv := canvas8{pix: v.buffer, pitch: v.pitch, height: v.desc.Height}
	rect := objectRect{Left: obj.Left, Top: obj.Top, Width: obj.Width, Height: obj.Height}
	switch {
	case obj.Codec == 1 || obj.Codec == 3:
		decodeCodec1(cv, rect, data)
	case obj.Codec == 21 || obj.Codec == 44:
		decodeCodec21(cv, rect, data)
	case obj.Codec == 31:
		decodeCodec31(cv, rect, obj.Param, data, false)
	case obj.Codec == 32:
		decodeCodec31(cv, rect, obj.Param, data, true)
	case legacyStubCodecs[obj.Codec]:
		v.codecs.reportOnce(obj.Codec, "unhandled codec")
	default:
		v.codecs.reportOnce(obj.Codec, "unknown codec")
	}
	v.finishVideoObject(gfx)
}

func (v *SmushVideo) handleBlocky16(gfx GraphicsSink, payload []byte) {
	if !v.desc.HighColor {
		v.logger.Warn("Bl16 chunk in 8bpp video")
		return
	}
	dec, _ := v.codecs.Decoder(codecBlocky16)
	v.reportDecodeError(codecBlocky16, dec.Decode(v.buffer, payload))
	v.finishVideoObject(gfx)
}

func (v *SmushVideo) reportDecodeError(codec int, err error) {
	if err == nil {
		return
	}
	var stub *CodecStubError
	if errors.As(err, &stub) {
		v.logger.Debug(err.Error(), "codec", codec)
		return
	}
	v.logger.Warn("video decode problem", "codec", codec, "err", err)
}

// finishVideoObject takes a pending STOR snapshot and blits the canvas.
func (v *SmushVideo) finishVideoObject(gfx GraphicsSink) {
	if v.storeFrame {
		if v.stored == nil {
			v.stored = make([]byte, len(v.buffer))
		}
		copy(v.stored, v.buffer)
		v.storeFrame = false
	}
	gfx.Blit(v.buffer, 0, 0, v.desc.Width, v.desc.Height, v.pitch)
}

func (v *SmushVideo) handleNewPalette(gfx GraphicsSink, size uint32) {
	if size < paletteBytes {
		v.logger.Warn("bad NPAL chunk", "size", size)
		return
	}
	copy(v.palette.RGB[:], v.r.Bytes(paletteBytes))
	gfx.SetPalette(v.palette.RGB[:], 0, 256)
}

// handleFetch restores the STOR snapshot into the frame buffer. SANM
// records may carry a pixel offset; only the part that lands on the canvas
// is copied. Nothing is blitted: the restored pixels reach the sink with
// the next video object.
func (v *SmushVideo) handleFetch(size uint32) {
	if v.stored == nil || v.buffer == nil {
		return
	}
	if !v.desc.HighColor || size < 12 {
		copy(v.buffer, v.stored)
		return
	}
	v.r.Skip(4)
	dx := int(v.r.S32BE())
	dy := int(v.r.S32BE())
	if dx == 0 && dy == 0 {
		copy(v.buffer, v.stored)
		return
	}

	bpp := v.desc.BytesPerPixel()
	w, h := v.desc.Width, v.desc.Height
	for y := 0; y < h; y++ {
		ty := y + dy
		if ty < 0 || ty >= h {
			continue
		}
		x0 := max(0, -dx)
		x1 := min(w, w-dx)
		if x0 >= x1 {
			break
		}
		src := (y*w + x0) * bpp
		dst := (ty*w + x0 + dx) * bpp
		copy(v.buffer[dst:dst+(x1-x0)*bpp], v.stored[src:src+(x1-x0)*bpp])
	}
}

// handleGhost parses GOST records. The mirroring effect is not drawn.
func (v *SmushVideo) handleGhost(size uint32) {
	if size != 12 {
		v.logger.Warn("invalid ghost chunk", "size", size)
		return
	}
	unk := v.r.U32BE()
	x := v.r.S32BE()
	y := v.r.S32BE()
	v.logger.Debug("ghost chunk ignored", "unknown", unk, "x", x, "y", y)
}
