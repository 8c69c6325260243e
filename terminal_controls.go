//go:build !windows

// terminal_controls.go - Raw mode keyboard controls for headless playback

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
	"os"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"
)

func init() {
	compiledFeatures = append(compiledFeatures, "terminal:raw")
}

// TerminalControls reads raw stdin and turns key presses into player
// commands. Only instantiated in main.go for interactive use.
type TerminalControls struct {
	handler      func(PlayerCommand)
	stopCh       chan struct{}
	done         chan struct{}
	stopped      sync.Once
	fd           int
	nonblockSet  bool
	oldTermState *term.State
}

func NewTerminalControls(handler func(PlayerCommand)) *TerminalControls {
	return &TerminalControls{
		handler: handler,
		stopCh:  make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start switches stdin to raw non-blocking mode and begins reading in a
// goroutine. Stdin that is not a terminal is left alone.
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

	if err := syscall.SetNonblock(tc.fd, true); err != nil {
		fmt.Fprintf(os.Stderr, "terminal_controls: failed to set nonblocking stdin: %v\n", err)
		_ = term.Restore(tc.fd, tc.oldTermState)
		tc.oldTermState = nil
		close(tc.done)
		return
	}
	tc.nonblockSet = true

	go func() {
		defer close(tc.done)
		buf := make([]byte, 1)

		for {
			select {
			case <-tc.stopCh:
				return
			default:
			}

			n, err := syscall.Read(tc.fd, buf)
			if n > 0 {
				if cmd, ok := keyCommand(buf[0]); ok {
					tc.handler(cmd)
				}
			}
			if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK {
				time.Sleep(5 * time.Millisecond)
				continue
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

// Stop ends the reader goroutine and restores stdin.
func (tc *TerminalControls) Stop() {
	tc.stopped.Do(func() {
		close(tc.stopCh)
	})
	<-tc.done
	if tc.nonblockSet {
		_ = syscall.SetNonblock(tc.fd, false)
		tc.nonblockSet = false
	}
	if tc.oldTermState != nil {
		_ = term.Restore(tc.fd, tc.oldTermState)
		tc.oldTermState = nil
	}
}

// progressWidth is the usable width for the one line progress display.
func progressWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 1 {
		return 79
	}
	return w - 1
}
