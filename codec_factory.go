// codec_factory.go - Lazily constructed video decoders keyed by codec id

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
	"log/slog"
)

// FrameDecoder decompresses one video object into a canvas sized frame
// buffer. Decoders keep their state between calls. A returned error is a
// diagnostic: the frame buffer is still valid.
type FrameDecoder interface {
	Decode(dst, src []byte) error
}

// Blocky16 shares the decoder table with the FOBJ codecs under this id.
const codecBlocky16 = 16

// CodecStubError reports a frame type that is recognised but not decoded.
type CodecStubError struct {
	Codec     int
	FrameType int
}

func (e *CodecStubError) Error() string {
	return fmt.Sprintf("STUB: codec %d frame type %d is not implemented", e.Codec, e.FrameType)
}

// CodecFactory builds each stateful decoder on first use and hands out the
// same instance for the rest of the file.
type CodecFactory struct {
	width, height int
	decoders      map[int]FrameDecoder
	reported      map[int]bool
	logger        *slog.Logger
}

func NewCodecFactory(width, height int, logger *slog.Logger) *CodecFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return &CodecFactory{
		width:    width,
		height:   height,
		decoders: make(map[int]FrameDecoder),
		reported: make(map[int]bool),
		logger:   logger,
	}
}

// Decoder returns the decoder for codec, or false when the codec has no
// stateful decoder.
func (f *CodecFactory) Decoder(codec int) (FrameDecoder, bool) {
	if d, ok := f.decoders[codec]; ok {
		return d, true
	}
	var d FrameDecoder
	switch codec {
	case 37:
		d = NewCodec37Decoder(f.width, f.height)
	case 47:
		d = NewCodec47Decoder(f.width, f.height)
	case 48:
		d = NewCodec48Decoder(f.width, f.height)
	case codecBlocky16:
		d = NewBlocky16Decoder(f.width, f.height)
	default:
		return nil, false
	}
	f.logger.Debug("codec decoder created", "codec", codec, "width", f.width, "height", f.height)
	f.decoders[codec] = d
	return d, true
}

// Active lists the codec ids that have a live decoder.
func (f *CodecFactory) Active() []int {
	ids := make([]int, 0, len(f.decoders))
	for id := range f.decoders {
		ids = append(ids, id)
	}
	return ids
}

// reportOnce logs msg the first time codec is seen.
func (f *CodecFactory) reportOnce(codec int, msg string) {
	if f.reported[codec] {
		return
	}
	f.reported[codec] = true
	f.logger.Warn(msg, "codec", codec)
}

// Reset drops every decoder and its buffers.
func (f *CodecFactory) Reset() {
	clear(f.decoders)
	clear(f.reported)
}
