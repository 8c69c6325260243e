// audio_saud.go - SAUD track format carried by PSAD, PSD2 and PVOC chunks

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

const saudMinHeader = 16

// saudFormat is unsigned 8-bit mono PCM after a SAUD record header.
type saudFormat struct {
	rate int
}

func newSAUDFormat(defaultRate int) *saudFormat {
	return &saudFormat{rate: defaultRate}
}

func (f *saudFormat) parseHeader(data []byte) (streamHeader, bool, error) {
	if len(data) < saudMinHeader {
		return streamHeader{}, false, nil
	}
	if be32(data, 0) != TAG_SAUD {
		return streamHeader{}, false, fmt.Errorf("expected SAUD, found %q", TagString(be32(data, 0)))
	}

	pos := 8
	for {
		if pos+8 > len(data) {
			return streamHeader{}, false, nil
		}
		tag := be32(data, pos)
		size := int(be32(data, pos+4))
		pos += 8

		if tag == TAG_SDAT {
			return streamHeader{consumed: pos, totalSize: size, sampleRate: f.rate, channels: 1}, true, nil
		}
		if size+8 > len(data)-pos {
			return streamHeader{}, false, nil
		}
		// only this record size carries a rate override
		if tag == TAG_STRK && size == 14 {
			f.rate = int(be16(data, pos+12))
		}
		pos += size
	}
}

func (f *saudFormat) decode(data []byte) ([]int16, int) {
	return DecodePCM(data, PCMUnsigned), len(data)
}
