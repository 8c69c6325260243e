// audio_imuse.go - iMUS track format carried by IACT chunks

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

// imuseFormat parses an iMUS/MAP header and streams 8, 12 or 16 bit PCM.
type imuseFormat struct {
	bits     int
	rate     int
	channels int
	logger   *slog.Logger
}

func newIMuseFormat(logger *slog.Logger) *imuseFormat {
	return &imuseFormat{logger: logger}
}

func (f *imuseFormat) parseHeader(data []byte) (streamHeader, bool, error) {
	if len(data) < 8 {
		return streamHeader{}, false, nil
	}
	if be32(data, 0) != TAG_IMUS {
		return streamHeader{}, false, fmt.Errorf("missing iMUS header")
	}
	if len(data) < 16 {
		return streamHeader{}, false, nil
	}
	if be32(data, 8) != TAG_MAP {
		return streamHeader{}, false, fmt.Errorf("missing iMUS map")
	}
	mapSize := int(be32(data, 12))
	pos := 16
	if mapSize+8 > len(data)-pos {
		return streamHeader{}, false, nil
	}

	end := pos + mapSize
	for pos+8 <= end {
		tag := be32(data, pos)
		size := int(be32(data, pos+4))
		pos += 8
		switch tag {
		case TAG_FRMT:
			if size != 20 {
				return streamHeader{}, false, fmt.Errorf("FRMT record of %d bytes", size)
			}
			f.bits = int(be32(data, pos+8))
			f.rate = int(be32(data, pos+12))
			f.channels = int(be32(data, pos+16))
		case TAG_TEXT:
		case TAG_REGN:
			if size != 8 {
				f.logger.Debug("unexpected REGN size", "size", size)
			}
		case TAG_STOP:
			if size != 4 {
				f.logger.Debug("unexpected STOP size", "size", size)
			}
		default:
			f.logger.Warn("unknown iMUS map record", "tag", TagString(tag))
		}
		pos += size
	}
	pos = end

	switch f.bits {
	case 8, 12, 16:
	default:
		return streamHeader{}, false, fmt.Errorf("unsupported sample width %d", f.bits)
	}
	if f.channels != 1 && f.channels != 2 {
		return streamHeader{}, false, fmt.Errorf("unsupported channel count %d", f.channels)
	}
	if be32(data, pos) != TAG_DATA {
		return streamHeader{}, false, fmt.Errorf("missing DATA record after map")
	}
	return streamHeader{
		consumed:   pos + 8,
		totalSize:  int(be32(data, pos+4)),
		sampleRate: f.rate,
		channels:   f.channels,
	}, true, nil
}

// frameBytes is the byte width of one sample frame, 0 for 8-bit data
// which can be split anywhere.
func (f *imuseFormat) frameBytes() int {
	switch f.bits {
	case 12:
		return f.channels * 3
	case 16:
		return f.channels * 2
	}
	return 0
}

func (f *imuseFormat) decode(data []byte) ([]int16, int) {
	n := len(data)
	if fb := f.frameBytes(); fb > 0 {
		n -= n % fb
	}
	if n == 0 {
		return nil, 0
	}
	switch f.bits {
	case 8:
		return DecodePCM(data[:n], PCMUnsigned), n
	case 12:
		return Decode12(data[:n]), n
	default:
		return DecodePCM(data[:n], PCM16Bit), n
	}
}

// imuseTrackID folds the IACT track flags into the track id so that
// tracks in different groups never share a key.
func imuseTrackID(trackID, trackFlags int) (int, bool) {
	switch {
	case trackFlags == 1:
		return trackID + 100, true
	case trackFlags == 2:
		return trackID + 200, true
	case trackFlags == 3:
		return trackID + 300, true
	case trackFlags >= 100 && trackFlags <= 163:
		return trackID + 400, true
	case trackFlags >= 200 && trackFlags <= 263:
		return trackID + 500, true
	case trackFlags >= 300 && trackFlags <= 363:
		return trackID + 600, true
	}
	return 0, false
}

// imuseVolume maps IACT track flags to a 0..255 channel volume.
func imuseVolume(trackFlags int) (int, bool) {
	switch {
	case trackFlags >= 1 && trackFlags <= 3:
		return 127, true
	case trackFlags >= 100 && trackFlags <= 163:
		return trackFlags*2 - 200, true
	case trackFlags >= 200 && trackFlags <= 263:
		return trackFlags*2 - 400, true
	case trackFlags >= 300 && trackFlags <= 363:
		return trackFlags*2 - 600, true
	}
	return 127, false
}
