// player_commands.go - Commands shared by the window and terminal front ends

package main

import (
	"fmt"
	"slices"
	"strings"
)

// PlayerCommand is a user request raised by a front end.
type PlayerCommand int

const (
	CommandNone PlayerCommand = iota
	CommandQuit
	CommandTogglePause
)

func (c PlayerCommand) String() string {
	switch c {
	case CommandQuit:
		return "quit"
	case CommandTogglePause:
		return "pause"
	}
	return "none"
}

// keyCommand maps a raw terminal byte to a command.
func keyCommand(b byte) (PlayerCommand, bool) {
	switch b {
	case 'q', 'Q', 0x1B, 0x03:
		return CommandQuit, true
	case ' ', 'p', 'P':
		return CommandTogglePause, true
	}
	return CommandNone, false
}

// PlaybackStatus is what the status bar and the terminal progress line
// show. It is assembled from values safe to read off the decode goroutine.
type PlaybackStatus struct {
	Name          string
	Frame         int
	FrameCount    int
	Paused        bool
	Codecs        []int
	AudioChannels int
}

func (s PlaybackStatus) codecList() string {
	if len(s.Codecs) == 0 {
		return "-"
	}
	ids := slices.Clone(s.Codecs)
	slices.Sort(ids)
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, ",")
}

// Line renders the status in at most width columns. A width of 0 means
// no limit.
func (s PlaybackStatus) Line(width int) string {
	state := "PLAY"
	if s.Paused {
		state = "PAUSE"
	}
	line := fmt.Sprintf("%s %d/%d codec %s audio %d", state, s.Frame, s.FrameCount, s.codecList(), s.AudioChannels)
	if width > 0 && len(line) > width {
		line = line[:width]
	}
	return line
}
