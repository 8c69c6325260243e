// smush_compress.go - Transparent unwrapping of compressed SMUSH files and ZFOB objects

package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

const (
	wrapNone = iota
	wrapGzip
	wrapZlib
	wrapZstd
)

var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// detectWrapper inspects the leading bytes of a file for a known
// compression envelope.
func detectWrapper(head []byte) int {
	if len(head) >= 4 && bytes.Equal(head[:4], zstdMagic) {
		return wrapZstd
	}
	if len(head) < 2 {
		return wrapNone
	}
	hdr := binary.BigEndian.Uint16(head)
	if hdr == 0x1F8B {
		return wrapGzip
	}
	if hdr&0x0F00 == 0x0800 && hdr%31 == 0 {
		return wrapZlib
	}
	return wrapNone
}

// OpenSource reads a SMUSH file from disk, inflating it first when it is
// wrapped in gzip, zlib or zstd. The result is always seekable.
func OpenSource(path string) (io.ReadSeeker, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return UnwrapSource(data)
}

// UnwrapSource returns a seekable view of data, decompressing it when a
// compression envelope is detected.
func UnwrapSource(data []byte) (io.ReadSeeker, error) {
	var (
		plain []byte
		err   error
	)
	switch detectWrapper(data) {
	case wrapGzip:
		plain, err = inflateGzip(data)
	case wrapZlib:
		plain, err = inflateZlib(data)
	case wrapZstd:
		plain, err = inflateZstd(data)
	default:
		return bytes.NewReader(data), nil
	}
	if err != nil {
		return nil, &SmushError{Operation: "unwrap", Details: "compressed container", Err: err}
	}
	return bytes.NewReader(plain), nil
}

func inflateGzip(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

func inflateZlib(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

func inflateZstd(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(data, nil)
}

// expandZFOB turns a ZFOB payload (BE decompressed size + zlib stream) into
// the equivalent FOBJ payload.
func expandZFOB(payload []byte) ([]byte, error) {
	if len(payload) < 4 {
		return nil, fmt.Errorf("%w: payload too short (%d bytes)", ErrCompressedObject, len(payload))
	}
	want := int(binary.BigEndian.Uint32(payload))
	zr, err := zlib.NewReader(bytes.NewReader(payload[4:]))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompressedObject, err)
	}
	defer zr.Close()

	out := make([]byte, want)
	if _, err := io.ReadFull(zr, out); err != nil {
		return nil, fmt.Errorf("%w: expanded short of %d bytes: %v", ErrCompressedObject, want, err)
	}
	return out, nil
}
