// config.go - Command line configuration for the player

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
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// PlayerConfig holds everything parsed from the command line.
type PlayerConfig struct {
	Filename   string
	Scale      int
	Mute       bool
	Headless   bool
	DumpDir    string
	MaxFrames  int
	Fullscreen bool
	Verbose    bool
	Features   bool
}

var (
	errNoFilename    = errors.New("no input file given")
	errNegativeLimit = errors.New("frame limit must not be negative")
)

// ParseConfig reads args (without the program name). flag.ErrHelp is
// returned unchanged when -h was given.
func ParseConfig(name string, args []string, usage io.Writer) (PlayerConfig, error) {
	var cfg PlayerConfig

	flagSet := flag.NewFlagSet(name, flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.IntVar(&cfg.Scale, "scale", 2, "Window scale factor (1-4)")
	flagSet.BoolVar(&cfg.Mute, "mute", false, "Decode audio without playing it")
	flagSet.BoolVar(&cfg.Headless, "headless", false, "Run without a window")
	flagSet.StringVar(&cfg.DumpDir, "dump", "", "Write every presented frame as a BMP into this directory")
	flagSet.IntVar(&cfg.MaxFrames, "frames", 0, "Stop after this many frames (0 plays everything)")
	flagSet.BoolVar(&cfg.Fullscreen, "fullscreen", false, "Start in fullscreen")
	flagSet.BoolVar(&cfg.Verbose, "v", false, "Verbose diagnostics")
	flagSet.BoolVar(&cfg.Features, "features", false, "Print version and compiled backends, then exit")

	flagSet.Usage = func() {
		flagSet.SetOutput(usage)
		fmt.Fprintf(usage, "Usage: %s [-scale N] [-mute] [-headless] [-dump DIR] [-frames N] [-fullscreen] [-v] [-features] filename\n", name)
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			flagSet.Usage()
		}
		return cfg, err
	}
	cfg.Filename = flagSet.Arg(0)
	cfg.Scale = ClampScale(cfg.Scale)
	if cfg.Features {
		return cfg, nil
	}
	return cfg, cfg.Validate()
}

func (c PlayerConfig) Validate() error {
	if c.Filename == "" {
		return errNoFilename
	}
	if c.MaxFrames < 0 {
		return errNegativeLimit
	}
	if c.DumpDir != "" {
		if err := os.MkdirAll(c.DumpDir, 0o755); err != nil {
			return fmt.Errorf("dump directory: %w", err)
		}
		probe, err := os.CreateTemp(c.DumpDir, ".probe-*")
		if err != nil {
			return fmt.Errorf("dump directory not writable: %w", err)
		}
		probe.Close()
		os.Remove(filepath.Clean(probe.Name()))
	}
	return nil
}

// LogLevel is Debug with -v and Info otherwise.
func (c PlayerConfig) LogLevel() slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
