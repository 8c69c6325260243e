// smush_errors.go - Error taxonomy for loading and decoding SMUSH files

package main

import (
	"errors"
	"fmt"
)

var (
	ErrNotSmush         = errors.New("not a SMUSH file")
	ErrStandaloneAudio  = errors.New("standalone SAUD audio files are not supported")
	ErrBadHeader        = errors.New("bad SMUSH header")
	ErrFrameSize        = errors.New("unable to detect frame size")
	ErrFrameDesync      = errors.New("expected FRME record")
	ErrTruncated        = errors.New("unexpected end of file")
	ErrCompressedObject = errors.New("compressed frame object expansion failed")
	ErrNotLoaded        = errors.New("no video loaded")
)

// SmushError provides context for a failed load or decode step
type SmushError struct {
	Operation string // What operation was being attempted
	Details   string // Additional error context
	Err       error  // Underlying error if any
}

func (e *SmushError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("smush %s failed: %s: %v", e.Operation, e.Details, e.Err)
	}
	return fmt.Sprintf("smush %s failed: %s", e.Operation, e.Details)
}

func (e *SmushError) Unwrap() error {
	return e.Err
}

func loadError(details string, err error) error {
	return &SmushError{Operation: "load", Details: details, Err: err}
}

func decodeError(details string, err error) error {
	return &SmushError{Operation: "decode", Details: details, Err: err}
}
