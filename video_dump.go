// video_dump.go - Writes every presented frame to disk as a BMP file

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"
)

// FrameDumper passes drawing through to a FramePresenter and saves each
// presented frame as DIR/frame_NNNNN.bmp.
type FrameDumper struct {
	*FramePresenter
	dir    string
	next   int
	logger *slog.Logger
	err    error
}

func NewFrameDumper(inner *FramePresenter, dir string, logger *slog.Logger) *FrameDumper {
	if logger == nil {
		logger = slog.Default()
	}
	return &FrameDumper{FramePresenter: inner, dir: dir, logger: logger}
}

func (d *FrameDumper) PresentFrame() {
	d.FramePresenter.PresentFrame()
	if d.err != nil {
		return
	}
	path := filepath.Join(d.dir, fmt.Sprintf("frame_%05d.bmp", d.next))
	d.next++
	if err := d.writeBMP(path); err != nil {
		// first failure stops dumping, playback carries on
		d.err = err
		d.logger.Error("frame dump failed", "path", path, "err", err)
	}
}

func (d *FrameDumper) writeBMP(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := bmp.Encode(f, d.Snapshot()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Err reports the failure that stopped dumping, if any.
func (d *FrameDumper) Err() error {
	return d.err
}

func (d *FrameDumper) Written() int {
	return d.next
}
