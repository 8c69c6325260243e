// config_test.go - Tests for command line parsing

package main

import (
	"bytes"
	"errors"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig("smushplay", []string{"intro.san"}, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	want := PlayerConfig{Filename: "intro.san", Scale: 2}
	if cfg != want {
		t.Fatalf("got %+v, want %+v", cfg, want)
	}
	if cfg.LogLevel() != slog.LevelInfo {
		t.Fatal("default log level should be Info")
	}
}

func TestParseConfigFlags(t *testing.T) {
	dump := filepath.Join(t.TempDir(), "frames")
	args := []string{"-scale", "9", "-mute", "-headless", "-dump", dump, "-frames", "40", "-fullscreen", "-v", "movie.anm"}
	cfg, err := ParseConfig("smushplay", args, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	want := PlayerConfig{
		Filename: "movie.anm", Scale: 4, Mute: true, Headless: true,
		DumpDir: dump, MaxFrames: 40, Fullscreen: true, Verbose: true,
	}
	if cfg != want {
		t.Fatalf("got %+v, want %+v", cfg, want)
	}
	if st, err := os.Stat(dump); err != nil || !st.IsDir() {
		t.Fatalf("dump directory not created: %v", err)
	}
	entries, _ := os.ReadDir(dump)
	if len(entries) != 0 {
		t.Fatalf("writability probe left behind: %v", entries)
	}
	if cfg.LogLevel() != slog.LevelDebug {
		t.Fatal("-v should enable debug logging")
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"no file", nil, errNoFilename},
		{"negative limit", []string{"-frames", "-1", "a.san"}, errNegativeLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseConfig("smushplay", tt.args, &bytes.Buffer{}); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
	if _, err := ParseConfig("smushplay", []string{"-bogus"}, &bytes.Buffer{}); err == nil {
		t.Fatal("unknown flag accepted")
	}
}

func TestParseConfigHelp(t *testing.T) {
	var usage bytes.Buffer
	_, err := ParseConfig("smushplay", []string{"-h"}, &usage)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
	if !strings.Contains(usage.String(), "Usage: smushplay") || !strings.Contains(usage.String(), "-headless") {
		t.Fatalf("usage not printed:\n%s", usage.String())
	}
}

func TestValidateUnwritableDump(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := PlayerConfig{Filename: "a.san", DumpDir: filepath.Join(blocker, "sub")}
	if err := cfg.Validate(); err == nil {
		t.Fatal("dump directory below a file accepted")
	}
}

func TestParseConfigFeaturesNeedsNoFile(t *testing.T) {
	cfg, err := ParseConfig("smushplay", []string{"-features"}, &bytes.Buffer{})
	if err != nil || !cfg.Features {
		t.Fatalf("got %+v %v", cfg, err)
	}
	var out bytes.Buffer
	printFeatures(&out)
	if !strings.HasPrefix(out.String(), "smushplay "+Version) || !strings.Contains(out.String(), "Compiled features:") {
		t.Fatalf("unexpected feature listing:\n%s", out.String())
	}
}
