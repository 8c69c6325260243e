//go:build windows

package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

func init() {
	compiledFeatures = append(compiledFeatures, "terminal:console")
}

// TerminalControls reads raw stdin and turns key presses into player
// commands. Only instantiated in main.go for interactive use.
type TerminalControls struct {
	handler      func(PlayerCommand)
	stopCh       chan struct{}
	done         chan struct{}
	stopped      sync.Once
	fd           int
	oldTermState *term.State
}

func NewTerminalControls(handler func(PlayerCommand)) *TerminalControls {
	return &TerminalControls{
		handler: handler,
		stopCh:  make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start sets stdin to raw mode and begins reading in a goroutine.
// The reader blocks in Read, so Stop only takes effect after the next key.
func (tc *TerminalControls) Start() {
	tc.fd = int(os.Stdin.Fd())
	if !term.IsTerminal(tc.fd) {
		close(tc.done)
		return
	}

	oldState, err := term.MakeRaw(tc.fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "terminal_controls: failed to set raw mode: %v\n", err)
		close(tc.done)
		return
	}
	tc.oldTermState = oldState

	go func() {
		defer close(tc.done)
		buf := make([]byte, 1)

		for {
			select {
			case <-tc.stopCh:
				return
			default:
			}

			n, err := os.Stdin.Read(buf)
			if n > 0 {
				if cmd, ok := keyCommand(buf[0]); ok {
					tc.handler(cmd)
				}
			}
			if err != nil {
				return
			}
			if n == 0 {
				time.Sleep(5 * time.Millisecond)
			}
		}
	}()
}

// Stop restores the terminal state. The reader goroutine exits on its
// next read.
func (tc *TerminalControls) Stop() {
	tc.stopped.Do(func() {
		close(tc.stopCh)
	})
	if tc.oldTermState != nil {
		_ = term.Restore(tc.fd, tc.oldTermState)
		tc.oldTermState = nil
	}
}

func progressWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 1 {
		return 79
	}
	return w - 1
}
