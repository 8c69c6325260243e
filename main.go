// main.go - Entry point for the SMUSH video player

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
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

func boilerPlate() {
	fmt.Println("\n\033[38;2;255;20;147m ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████\033[0m\n\033[38;2;255;50;147m▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀\033[0m\n\033[38;2;255;80;147m▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███\033[0m\n\033[38;2;255;110;147m░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄\033[0m\n\033[38;2;255;140;147m░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒\033[0m\n\033[38;2;255;170;147m░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░\033[0m\n\033[38;2;255;200;147m ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░\033[0m\n\033[38;2;255;230;147m ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░\033[0m\n\033[38;2;255;255;147m ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░\033[0m")
	fmt.Println("\nsmushplay - SMUSH (ANIM/SANM) cutscene player")
	fmt.Println("(c) 2024 - 2026 Zayn Otley")
	fmt.Println("https://github.com/IntuitionAmiga/IntuitionEngine")
	fmt.Println("License: GPLv3 or later")
}

func main() {
	boilerPlate()

	cfg, err := ParseConfig(os.Args[0], os.Args[1:], os.Stdout)
	if err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.Features {
		printFeatures(os.Stdout)
		return
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel()}))
	os.Exit(run(cfg, logger))
}

func run(cfg PlayerConfig, logger *slog.Logger) int {
	mixer := NewAudioMixer()
	mixer.SetMuted(cfg.Mute)

	video := NewSmushVideo(mixer, logger)
	desc, err := video.Load(cfg.Filename)
	if err != nil {
		fmt.Printf("Error loading %s: %v\n", cfg.Filename, err)
		return 1
	}
	video.PrintSummary(os.Stdout)

	soundOut, err := NewOtoPlayer(MixerSampleRate)
	if err != nil {
		logger.Warn("audio output unavailable, playing silently", "err", err)
	} else {
		soundOut.SetupPlayer(mixer)
		soundOut.Start()
		defer soundOut.Close()
	}

	backend := VIDEO_BACKEND_EBITEN
	if cfg.Headless {
		backend = VIDEO_BACKEND_HEADLESS
	}
	out, err := NewVideoOutput(backend)
	if err != nil {
		fmt.Printf("Failed to initialize video: %v\n", err)
		video.Close()
		return 1
	}
	if err := out.SetDisplayConfig(DisplayConfig{
		Width:       desc.Width,
		Height:      desc.Height,
		Scale:       cfg.Scale,
		RefreshRate: 60,
		PixelFormat: PixelFormatRGBA,
		Fullscreen:  cfg.Fullscreen,
	}); err != nil {
		fmt.Printf("Failed to configure video: %v\n", err)
		video.Close()
		return 1
	}

	presenter := NewFramePresenter(out, desc.Width, desc.Height, desc.HighColor)
	var gfx GraphicsSink = presenter
	var dumper *FrameDumper
	if cfg.DumpDir != "" {
		dumper = NewFrameDumper(presenter, cfg.DumpDir, logger)
		gfx = dumper
	}
	player := NewPlayer(video, gfx, cfg.MaxFrames, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	runCtx, stopAll := context.WithCancel(ctx)
	defer stopAll()

	onCommand := func(cmd PlayerCommand) {
		switch cmd {
		case CommandQuit:
			stopAll()
		case CommandTogglePause:
			paused := player.TogglePause()
			mixer.SetMuted(cfg.Mute || paused)
		}
	}
	status := func() PlaybackStatus {
		return player.Status(mixer.Playing())
	}

	window, interactive := out.(InteractiveOutput)
	if interactive {
		window.SetCommandHandler(onCommand)
		window.SetStatusSource(status)
		window.SetTitle("smushplay - " + cfg.Filename)
	}
	if err := out.Start(); err != nil {
		fmt.Printf("Failed to start video: %v\n", err)
		video.Close()
		return 1
	}
	defer out.Close()

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		defer stopAll()
		return player.Run(gctx)
	})
	if interactive {
		g.Go(func() error {
			select {
			case <-window.Done():
				stopAll()
			case <-gctx.Done():
			}
			return nil
		})
	} else {
		controls := NewTerminalControls(onCommand)
		controls.Start()
		g.Go(func() error {
			defer controls.Stop()
			return showProgress(gctx, status)
		})
	}

	err = g.Wait()
	if dumper != nil {
		if derr := dumper.Err(); derr != nil {
			logger.Warn("frame dump stopped", "err", derr, "written", dumper.Written())
		}
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Printf("\r\nError playing %s: %v\n", cfg.Filename, err)
		return 1
	}
	fmt.Printf("\r\nDone!\n")
	return 0
}

// showProgress redraws a one line status until ctx is done.
func showProgress(ctx context.Context, status func() PlaybackStatus) error {
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			fmt.Printf("\r%s", status().Line(progressWidth()))
			return nil
		case <-ticker.C:
			fmt.Printf("\r%s", status().Line(progressWidth()))
		}
	}
}
