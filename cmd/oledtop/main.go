// Package main is the entry point for the oledtop display daemon. It loads
// configuration, prepares the animation sets and the display sink, and runs
// the render loop as a foreground process until interrupted.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/oledtop/oledtop/internal/anim"
	"github.com/oledtop/oledtop/internal/config"
	"github.com/oledtop/oledtop/internal/display"
	"github.com/oledtop/oledtop/internal/metrics"
	"github.com/oledtop/oledtop/internal/monitor"
	"github.com/oledtop/oledtop/internal/render"
	"github.com/oledtop/oledtop/internal/stats"
)

var (
	// version is set at build time via -ldflags.
	version = "dev"

	configPath  = flag.String("config", "", "Path to configuration file (default: search standard locations)")
	gifDir      = flag.String("gifs", "", "Animation directory (overrides config)")
	preview     = flag.Bool("preview", false, "Render to the terminal instead of the I2C panel")
	initConfig  = flag.Bool("init-config", false, "Write a default config file and exit")
	showVersion = flag.Bool("version", false, "Show version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("oledtop %s\n", version)
		os.Exit(0)
	}

	if *initConfig {
		path := *configPath
		if path == "" {
			path = "oledtop.yaml"
		}
		if err := config.WriteConfig(config.DefaultConfig(), path); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", path)
		os.Exit(0)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)
	defer logger.Sync()

	logger.Info("Starting oledtop",
		zap.String("version", version),
		zap.String("gif_dir", cfg.Media.GIFDir),
		zap.Bool("preview", cfg.Display.Preview))

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle OS signals for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("Received signal, shutting down",
			zap.String("signal", sig.String()))
		cancel()
	}()

	if err := runMonitor(ctx, cancel, cfg, logger); err != nil {
		logger.Fatal("Display unavailable", zap.Error(err))
	}
	logger.Info("Monitor stopped")
}

func loadConfig() (*config.Config, error) {
	cli := config.CLIOverrides{GIFDir: *gifDir, Preview: *preview}
	if *configPath == "" {
		return config.LoadLayered(cli)
	}
	return config.LoadLayered(cli, *configPath)
}

// runMonitor opens the sink, loads the animation sets and drives the render
// loop. It blocks until the context is cancelled. The deferred Close keeps
// the panel released on every exit path, interrupt included.
func runMonitor(ctx context.Context, cancel context.CancelFunc, cfg *config.Config, logger *zap.Logger) error {
	sink, err := openSink(cfg, cancel, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := sink.Close(); err != nil {
			logger.Warn("Closing display failed", zap.Error(err))
		}
	}()

	if err := os.MkdirAll(cfg.Media.GIFDir, 0o755); err != nil {
		logger.Warn("Creating gif directory failed",
			zap.String("dir", cfg.Media.GIFDir), zap.Error(err))
	}
	sets := anim.LoadSets(cfg.Media.GIFDir, logger.Named("anim"))

	sampler := stats.NewSampler(metrics.NewHostSource("/"), logger.Named("sampler"))
	mon := monitor.New(sampler, anim.NewScheduler(sets), sink, logger.Named("monitor"))

	logger.Info("Monitor running")
	mon.Run(ctx)
	return nil
}

// openSink picks the display backend. The terminal preview wires its quit
// key to the daemon's cancel func; a panel that cannot be opened is the one
// startup failure that aborts the process.
func openSink(cfg *config.Config, cancel context.CancelFunc, logger *zap.Logger) (display.Sink, error) {
	if cfg.Display.Preview {
		logger.Info("Preview sink enabled")
		return display.OpenTerminal(render.Width, render.Height, cancel), nil
	}

	addr, err := cfg.Display.ParseAddress()
	if err != nil {
		return nil, err
	}
	logger.Info("Opening panel",
		zap.Int("bus", cfg.Display.Bus),
		zap.String("address", cfg.Display.Address))
	return display.OpenSSD1306(cfg.Display.Bus, addr)
}

// initLogger creates a zap logger based on the configuration.
// It outputs to console (human-readable) and optionally a JSON log file.
// In preview mode the console core is dropped since bubbletea owns the
// terminal; logs then reach only the file, if one is configured.
func initLogger(cfg *config.Config) *zap.Logger {
	var level zapcore.Level
	switch cfg.Logging.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var cores []zapcore.Core

	if !cfg.Display.Preview {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.AddSync(os.Stdout),
			level,
		))
	}

	if cfg.Logging.File != "" {
		file, err := os.OpenFile(cfg.Logging.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
		if err == nil {
			cores = append(cores, zapcore.NewCore(
				zapcore.NewJSONEncoder(encoderConfig),
				zapcore.AddSync(file),
				level,
			))
		}
	}

	if len(cores) == 0 {
		return zap.NewNop()
	}
	return zap.New(zapcore.NewTee(cores...))
}
