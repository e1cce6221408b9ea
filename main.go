package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/dotfield/internal/config"
	"github.com/iburimskiy/dotfield/internal/field"
	"github.com/iburimskiy/dotfield/internal/game"
	"github.com/iburimskiy/dotfield/internal/snapshot"
)

func main() {
	var (
		configPath   = flag.String("config", "", "JSON config file (defaults are used for missing keys)")
		chooseConfig = flag.Bool("choose-config", false, "pick the config file with a native dialog")
		reduceMotion = flag.Bool("reduce-motion", os.Getenv("REDUCE_MOTION") != "", "draw one frame and stop animating")
		fps          = flag.Float64("fps", -1, "frame rate cap, 0 for uncapped (overrides config)")
		seed         = flag.Uint64("seed", 0, "random seed, 0 for unseeded")
		hud          = flag.Bool("hud", false, "show the stats overlay")
		verbose      = flag.Bool("v", false, "debug logging")

		snapshotPath = flag.String("snapshot", "", "render headless to this PNG instead of opening a window")
		frames       = flag.Int("frames", 120, "frames to simulate for -snapshot")
		width        = flag.Float64("width", config.WindowWidth, "logical width for -snapshot")
		height       = flag.Float64("height", config.WindowHeight, "logical height for -snapshot")
		ratio        = flag.Float64("ratio", 1, "device pixel ratio for -snapshot")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	field.SetLogger(logger)

	cfg, err := loadConfig(*configPath, *chooseConfig)
	if err != nil {
		// The background is decorative: fall back rather than refuse to run.
		logger.Warn("using default config", slog.Any("err", err))
		cfg = config.Default()
	}
	if *fps >= 0 {
		cfg.FPSCap = *fps
	}

	if *snapshotPath != "" {
		_, err := snapshot.WritePNG(*snapshotPath, cfg, snapshot.Options{
			Width:         *width,
			Height:        *height,
			Ratio:         *ratio,
			Frames:        *frames,
			ReducedMotion: *reduceMotion,
			Seed:          *seed,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	// Skipped frames (fps cap, frozen) must keep the last drawing.
	ebiten.SetScreenClearedEveryFrame(false)

	g := game.New(cfg, game.Options{ReducedMotion: *reduceMotion, Seed: *seed, HUD: *hud})
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string, choose bool) (config.Config, error) {
	if choose {
		picked, err := game.SelectConfigFile()
		if err != nil {
			return config.Default(), fmt.Errorf("config dialog: %w", err)
		}
		if picked != "" {
			path = picked
		}
	}
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
