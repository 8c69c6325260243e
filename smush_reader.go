// smush_reader.go - Byte-order aware cursor over a seekable SMUSH source

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
	"encoding/binary"
	"errors"
	"io"
)

// SmushReader is a sequential, seekable cursor with big and little endian
// scalar reads. The first failed read is sticky: later reads return zero and
// Err reports the original failure.
type SmushReader struct {
	r    io.ReadSeeker
	pos  int64
	size int64
	err  error
	buf  [8]byte
}

func NewSmushReader(r io.ReadSeeker) *SmushReader {
	sr := &SmushReader{r: r}
	sr.pos, sr.err = r.Seek(0, io.SeekCurrent)
	if sr.err == nil {
		sr.size, sr.err = r.Seek(0, io.SeekEnd)
	}
	if sr.err == nil {
		_, sr.err = r.Seek(sr.pos, io.SeekStart)
	}
	return sr
}

// Err returns the first read or seek failure, if any.
func (sr *SmushReader) Err() error {
	return sr.err
}

// EOF reports whether a read ran off the end of the source.
func (sr *SmushReader) EOF() bool {
	return errors.Is(sr.err, io.ErrUnexpectedEOF) || errors.Is(sr.err, io.EOF)
}

func (sr *SmushReader) Pos() int64 {
	return sr.pos
}

// SeekTo moves to an absolute offset. A successful seek does not clear an
// earlier read error.
func (sr *SmushReader) SeekTo(pos int64) {
	if sr.err != nil {
		return
	}
	n, err := sr.r.Seek(pos, io.SeekStart)
	if err != nil {
		sr.err = err
		return
	}
	sr.pos = n
}

func (sr *SmushReader) Skip(n int64) {
	sr.SeekTo(sr.pos + n)
}

// Size returns the total length of the underlying source.
func (sr *SmushReader) Size() int64 {
	return sr.size
}

func (sr *SmushReader) fill(n int) []byte {
	if sr.err != nil {
		clear(sr.buf[:n])
		return sr.buf[:n]
	}
	got, err := io.ReadFull(sr.r, sr.buf[:n])
	sr.pos += int64(got)
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		sr.err = err
		clear(sr.buf[:n])
	}
	return sr.buf[:n]
}

// Bytes reads exactly n bytes into a fresh slice. A request running past
// the end of the source consumes what is left, records
// io.ErrUnexpectedEOF and returns nil.
func (sr *SmushReader) Bytes(n int) []byte {
	if n <= 0 || sr.err != nil {
		return nil
	}
	short := false
	if left := sr.size - sr.pos; int64(n) > left {
		n = int(max(left, 0))
		short = true
	}
	out := make([]byte, n)
	got, err := io.ReadFull(sr.r, out)
	sr.pos += int64(got)
	if err == nil && short {
		err = io.ErrUnexpectedEOF
	}
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		sr.err = err
		return nil
	}
	return out
}

func (sr *SmushReader) U8() uint8 {
	return sr.fill(1)[0]
}

func (sr *SmushReader) S8() int8 {
	return int8(sr.U8())
}

func (sr *SmushReader) U16LE() uint16 {
	return binary.LittleEndian.Uint16(sr.fill(2))
}

func (sr *SmushReader) S16LE() int16 {
	return int16(sr.U16LE())
}

func (sr *SmushReader) U16BE() uint16 {
	return binary.BigEndian.Uint16(sr.fill(2))
}

func (sr *SmushReader) S16BE() int16 {
	return int16(sr.U16BE())
}

func (sr *SmushReader) U32LE() uint32 {
	return binary.LittleEndian.Uint32(sr.fill(4))
}

func (sr *SmushReader) S32LE() int32 {
	return int32(sr.U32LE())
}

func (sr *SmushReader) U32BE() uint32 {
	return binary.BigEndian.Uint32(sr.fill(4))
}

func (sr *SmushReader) S32BE() int32 {
	return int32(sr.U32BE())
}

// Tag reads a big-endian fourCC.
func (sr *SmushReader) Tag() uint32 {
	return sr.U32BE()
}

// chunkHeader is the tag+size prefix shared by every SMUSH record.
type chunkHeader struct {
	Tag   uint32
	Size  uint32
	Start int64 // offset of the first payload byte
}

// End is the offset of the next record, payloads being padded to even length.
func (c chunkHeader) End() int64 {
	return c.Start + int64(c.Size) + int64(c.Size&1)
}

// Span is the number of bytes the record occupies including its header.
func (c chunkHeader) Span() int64 {
	return 8 + int64(c.Size) + int64(c.Size&1)
}

func (sr *SmushReader) ChunkHeader() chunkHeader {
	tag := sr.Tag()
	size := sr.U32BE()
	return chunkHeader{Tag: tag, Size: size, Start: sr.pos}
}

// byte slice helpers for payloads already in memory

func le16(b []byte, off int) uint16 {
	if off < 0 || off+2 > len(b) {
		return 0
	}
	return binary.LittleEndian.Uint16(b[off:])
}

func le32(b []byte, off int) uint32 {
	if off < 0 || off+4 > len(b) {
		return 0
	}
	return binary.LittleEndian.Uint32(b[off:])
}

func be16(b []byte, off int) uint16 {
	if off < 0 || off+2 > len(b) {
		return 0
	}
	return binary.BigEndian.Uint16(b[off:])
}

func be32(b []byte, off int) uint32 {
	if off < 0 || off+4 > len(b) {
		return 0
	}
	return binary.BigEndian.Uint32(b[off:])
}

func byteAt(b []byte, off int) byte {
	if off < 0 || off >= len(b) {
		return 0
	}
	return b[off]
}

// byteCursor walks an in-memory codec payload. Reading past the end yields
// zero and marks the cursor exhausted so decoders can stop early.
type byteCursor struct {
	data []byte
	pos  int
}

func (b *byteCursor) next() byte {
	if b.pos >= len(b.data) {
		b.pos = len(b.data) + 1
		return 0
	}
	v := b.data[b.pos]
	b.pos++
	return v
}

func (b *byteCursor) exhausted() bool {
	return b.pos > len(b.data)
}
