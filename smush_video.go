// smush_video.go - SMUSH container loading, header parsing and lifetime

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
	"io"
	"log/slog"
	"time"
)

const (
	ahdrMinSize   = 0x306
	ahdrV2MinSize = 0x312

	animDefaultFrameRate = 15
	animDefaultAudioRate = 11025
)

// VideoDescriptor summarises a loaded SMUSH file.
type VideoDescriptor struct {
	Tag           uint32 // TAG_ANIM or TAG_SANM
	Version       int    // ANIM only
	FrameCount    int
	Width         int
	Height        int
	HighColor     bool
	FrameRate     int // ANIM: frames per second, SANM: microseconds per frame
	AudioRate     int
	AudioChannels int
}

// NextFrameTime is when frame n is due, measured from the first frame.
func (d VideoDescriptor) NextFrameTime(n int) time.Duration {
	if d.FrameRate <= 0 {
		return 0
	}
	if d.Tag == TAG_SANM {
		return time.Duration(int64(n)*int64(d.FrameRate)/1000) * time.Millisecond
	}
	return time.Duration(int64(n)*1000/int64(d.FrameRate)) * time.Millisecond
}

// FrameInterval is the nominal time between two frames.
func (d VideoDescriptor) FrameInterval() time.Duration {
	if d.FrameRate <= 0 {
		return 0
	}
	if d.Tag == TAG_SANM {
		return time.Duration(d.FrameRate) * time.Microsecond
	}
	return time.Second / time.Duration(d.FrameRate)
}

func (d VideoDescriptor) FramesPerSecond() float64 {
	if d.FrameRate <= 0 {
		return 0
	}
	if d.Tag == TAG_SANM {
		return 1000000.0 / float64(d.FrameRate)
	}
	return float64(d.FrameRate)
}

func (d VideoDescriptor) BytesPerPixel() int {
	if d.HighColor {
		return 2
	}
	return 1
}

// SmushVideo demuxes one ANIM or SANM file. It owns the frame buffer, the
// codec state and the audio tracks for the lifetime of a load.
type SmushVideo struct {
	name   string
	r      *SmushReader
	desc   VideoDescriptor
	loaded bool
	logger *slog.Logger

	palette    Palette
	headerPal  [paletteBytes]byte
	buffer     []byte
	pitch      int
	stored     []byte
	storeFrame bool

	codecs *CodecFactory

	audio          AudioSink
	tracks         *AudioTracks
	iact           *iactAudio
	vimaHandle     AudioHandle
	vimaOpen       bool
	soundChecked   bool
	oldSoundHeader bool

	framesDecoded int
}

func NewSmushVideo(audio AudioSink, logger *slog.Logger) *SmushVideo {
	if logger == nil {
		logger = slog.Default()
	}
	return &SmushVideo{
		audio:  audio,
		logger: logger.With("component", "smush"),
	}
}

// Load opens path, unwrapping gzip, zlib or zstd compression first.
func (v *SmushVideo) Load(path string) (VideoDescriptor, error) {
	src, err := OpenSource(path)
	if err != nil {
		v.Close()
		return VideoDescriptor{}, loadError(path, err)
	}
	return v.LoadReader(src, path)
}

// LoadReader parses the container header from src. On failure the video
// is left closed.
func (v *SmushVideo) LoadReader(src io.ReadSeeker, name string) (VideoDescriptor, error) {
	v.Close()
	v.name = name
	v.r = NewSmushReader(src)

	tag := v.r.Tag()
	v.r.U32BE() // file size, informational
	if err := v.r.Err(); err != nil {
		v.Close()
		return VideoDescriptor{}, loadError("container tag", fmt.Errorf("%w: %v", ErrTruncated, err))
	}
	switch tag {
	case TAG_ANIM, TAG_SANM:
	case TAG_SAUD:
		v.Close()
		return VideoDescriptor{}, loadError(name, ErrStandaloneAudio)
	default:
		v.Close()
		return VideoDescriptor{}, loadError(fmt.Sprintf("container tag %q", TagString(tag)), ErrNotSmush)
	}
	v.desc = VideoDescriptor{Tag: tag, HighColor: tag == TAG_SANM}

	if err := v.readHeader(); err != nil {
		v.Close()
		return VideoDescriptor{}, err
	}
	if err := v.r.Err(); err != nil {
		v.Close()
		return VideoDescriptor{}, loadError("header", fmt.Errorf("%w: %v", ErrTruncated, err))
	}

	bpp := v.desc.BytesPerPixel()
	v.pitch = v.desc.Width * bpp
	v.buffer = make([]byte, v.pitch*v.desc.Height)
	v.codecs = NewCodecFactory(v.desc.Width, v.desc.Height, v.logger)
	if v.audio == nil {
		v.audio = NewAudioMixer()
	}
	v.tracks = NewAudioTracks(v.audio, v.logger)
	v.iact = newIACTAudio(v.audio)
	v.loaded = true
	v.logger.Debug("loaded", "name", name, "tag", TagString(tag),
		"frames", v.desc.FrameCount, "width", v.desc.Width, "height", v.desc.Height)
	return v.desc, nil
}

func (v *SmushVideo) readHeader() error {
	hdr := v.r.ChunkHeader()
	switch hdr.Tag {
	case TAG_AHDR:
		if hdr.Size < ahdrMinSize {
			return loadError(fmt.Sprintf("AHDR of %d bytes", hdr.Size), ErrBadHeader)
		}
		v.desc.Version = int(v.r.U16LE())
		v.desc.FrameCount = int(v.r.U16LE())
		v.r.U16LE() // unknown
		copy(v.palette.RGB[:], v.r.Bytes(paletteBytes))
		v.headerPal = v.palette.RGB

		if v.desc.Version == 2 {
			if hdr.Size < ahdrV2MinSize {
				return loadError("ANIM v2 without extended header", ErrBadHeader)
			}
			v.desc.FrameRate = int(v.r.U32LE())
			v.r.U32LE()
			v.desc.AudioRate = int(v.r.U32LE())
		} else {
			v.desc.FrameRate = animDefaultFrameRate
			v.desc.AudioRate = animDefaultAudioRate
		}
		v.desc.AudioChannels = 1
		v.r.SeekTo(hdr.End())
		return v.detectFrameSize()

	case TAG_SHDR:
		v.r.U16LE()
		v.desc.FrameCount = int(v.r.U32LE())
		v.r.U16LE()
		v.desc.Width = int(v.r.U16LE())
		v.desc.Height = int(v.r.U16LE())
		v.r.U16LE()
		v.desc.FrameRate = int(v.r.U32LE())
		v.r.U16LE() // flags
		v.r.SeekTo(hdr.End())
		if v.desc.Width == 0 || v.desc.Height == 0 {
			return loadError("SHDR declares an empty canvas", ErrBadHeader)
		}
		return v.readFrameHeader()
	}
	return loadError(fmt.Sprintf("unknown header type %q", TagString(hdr.Tag)), ErrBadHeader)
}

// readFrameHeader parses the SANM FLHD record that follows SHDR.
func (v *SmushVideo) readFrameHeader() error {
	hdr := v.r.ChunkHeader()
	if hdr.Tag != TAG_FLHD {
		return loadError(fmt.Sprintf("expected FLHD, found %q", TagString(hdr.Tag)), ErrBadHeader)
	}
	end := hdr.Start + int64(hdr.Size)
	for v.r.Pos() < end && v.r.Err() == nil {
		sub := v.r.ChunkHeader()
		switch sub.Tag {
		case TAG_BL16:
		case TAG_WAVE:
			v.desc.AudioRate = int(v.r.U32LE())
			v.desc.AudioChannels = int(v.r.U32LE())
			// the declared size is unreliable, the record is always 12 bytes
			sub.Size = 12
		default:
			return loadError(fmt.Sprintf("invalid frame header record %q", TagString(sub.Tag)), ErrBadHeader)
		}
		v.r.SeekTo(sub.End())
	}
	v.r.SeekTo(hdr.End())
	return nil
}

// Close stops every audio channel and releases all per-file state.
func (v *SmushVideo) Close() {
	if v.tracks != nil {
		v.tracks.CloseAll()
	} else if v.audio != nil {
		v.audio.CloseAll()
	}
	if v.iact != nil {
		v.iact.Close()
	}
	if v.codecs != nil {
		v.codecs.Reset()
	}
	v.r = nil
	v.buffer = nil
	v.stored = nil
	v.storeFrame = false
	v.codecs = nil
	v.tracks = nil
	v.iact = nil
	v.vimaOpen = false
	v.soundChecked = false
	v.oldSoundHeader = false
	v.framesDecoded = 0
	v.palette = Palette{}
	v.desc = VideoDescriptor{}
	v.loaded = false
}

func (v *SmushVideo) IsLoaded() bool {
	return v.loaded
}

func (v *SmushVideo) Descriptor() VideoDescriptor {
	return v.desc
}

func (v *SmushVideo) Name() string {
	return v.name
}

func (v *SmushVideo) FrameCount() int {
	return v.desc.FrameCount
}

// FramesDecoded counts DecodeNextFrame successes since Load.
func (v *SmushVideo) FramesDecoded() int {
	return v.framesDecoded
}

// CurrentFrame returns the live frame buffer. It is only valid until the
// next decode call.
func (v *SmushVideo) CurrentFrame() []byte {
	return v.buffer
}

// HeaderPalette is the palette carried by AHDR.
func (v *SmushVideo) HeaderPalette() []byte {
	return v.headerPal[:]
}

// ActiveCodecs lists the codec ids with live decoder state.
func (v *SmushVideo) ActiveCodecs() []int {
	if v.codecs == nil {
		return nil
	}
	return v.codecs.Active()
}

// PrintSummary writes the load summary shown before playback.
func (v *SmushVideo) PrintSummary(w io.Writer) {
	d := v.desc
	fmt.Fprintf(w, "'%s' Details:\n", v.name)
	fmt.Fprintf(w, "\tSMUSH Tag: '%s'\n", TagString(d.Tag))
	fmt.Fprintf(w, "\tFrame Count: %d\n", d.FrameCount)
	fmt.Fprintf(w, "\tWidth: %d\n", d.Width)
	fmt.Fprintf(w, "\tHeight: %d\n", d.Height)
	if d.Tag == TAG_ANIM {
		fmt.Fprintf(w, "\tVersion: %d\n", d.Version)
		if d.Version == 2 {
			fmt.Fprintf(w, "\tFrame Rate: %d\n", d.FrameRate)
			fmt.Fprintf(w, "\tAudio Rate: %dHz\n", d.AudioRate)
		}
		return
	}
	fmt.Fprintf(w, "\tFrame Rate: %d\n", int(d.FramesPerSecond()+0.5))
	if d.AudioRate != 0 {
		fmt.Fprintf(w, "\tAudio Rate: %dHz\n", d.AudioRate)
		fmt.Fprintf(w, "\tAudio Channels: %d\n", d.AudioChannels)
	}
}
