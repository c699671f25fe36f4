package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"runtime"
	"time"

	"minecraf2/internal/config"
	"minecraf2/internal/host"

	"github.com/xlab/closer"
)

// shutdownTimeout bounds how long a signal waits for the loop to release the window.
const shutdownTimeout = 3 * time.Second

func init() {
	runtime.LockOSThread()
}

func main() {
	var (
		configPath = flag.String("config", "", "TOML config file, watched for changes")
		logLevel   = flag.String("log-level", "info", "debug, info, warn or error")
		shotDir    = flag.String("screenshot-dir", ".", "directory for F12 screenshots")
		shotFormat = flag.String("screenshot-format", "png", "png, bmp or tiff")
		flags      config.Flags
	)
	flag.IntVar(&flags.Width, "width", 0, "window width override")
	flag.IntVar(&flags.Height, "height", 0, "window height override")
	flag.IntVar(&flags.FPSLimit, "fps", 0, "frame rate cap override")
	flag.BoolVar(&flags.VSync, "vsync", false, "enable vsync")
	flag.Float64Var(&flags.MoveSpeed, "speed", 0, "movement speed override, units per second")
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		slog.Error("bad -log-level", "value", *logLevel, "err", err)
		os.Exit(2)
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Error("load config", "err", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(flags)
	if err := cfg.Validate(); err != nil {
		log.Error("invalid settings", "err", err)
		os.Exit(1)
	}

	app, err := host.New(host.Options{
		Config:           cfg,
		ConfigPath:       *configPath,
		Flags:            flags,
		ScreenshotDir:    *shotDir,
		ScreenshotFormat: *shotFormat,
		Args:             flag.Args(),
		Log:              log,
	})
	if err != nil {
		log.Error("startup failed", "err", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	closer.Bind(func() {
		cancel()
		select {
		case <-app.Done():
		case <-time.After(shutdownTimeout):
			log.Warn("main loop did not stop in time")
		}
	})
	defer closer.Close()

	app.Run(ctx)
}
