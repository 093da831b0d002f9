package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"canvas-builder/drag"
	"canvas-builder/settings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

type runOptions struct {
	configPath  string
	metricsAddr string
	debug       bool
	width       int
	height      int
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := buildRootCmd().Execute(); err != nil {
		slog.Error("command execution failed", "error", err)
		os.Exit(1)
	}
}

// buildRootCmd creates the root command with all subcommands attached.
func buildRootCmd() *cobra.Command {
	var opts runOptions
	rootCmd := &cobra.Command{
		Use:          "canvas-builder",
		Short:        "Drag-and-drop canvas builder",
		Version:      fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}
	flags := rootCmd.Flags()
	flags.StringVar(&opts.configPath, "config", "canvas.yaml", "Settings file (watched for changes)")
	flags.StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flags.IntVar(&opts.width, "width", 0, "Window width (overrides settings)")
	flags.IntVar(&opts.height, "height", 0, "Window height (overrides settings)")

	rootCmd.AddCommand(buildConfigCmd(), buildRuleCmd())
	return rootCmd
}

func run(ctx context.Context, opts runOptions) error {
	level := slog.LevelInfo
	if opts.debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	s, err := settings.Load(opts.configPath)
	if err != nil {
		logger.Warn("using default settings", "error", err)
	}
	if opts.width > 0 {
		s.Window.Width = opts.width
	}
	if opts.height > 0 {
		s.Window.Height = opts.height
	}
	store := settings.NewStore(s)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := drag.NewMetrics(registry)
	if opts.metricsAddr != "" {
		srv := startMetricsServer(opts.metricsAddr, registry, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	game := NewGame(GameOptions{
		Store:   store,
		Logger:  logger,
		Metrics: metrics,
		Face:    LoadUIFont(logger),
	})
	defer game.Close()

	watcher, err := settings.NewWatcher(opts.configPath, store, logger, game.OnSettingsChanged)
	if err == nil {
		err = watcher.Start(ctx)
	}
	if err != nil {
		logger.Warn("settings hot reload disabled", "error", err)
	} else {
		defer watcher.Close()
	}

	ebiten.SetWindowSize(s.Window.Width, s.Window.Height)
	ebiten.SetWindowTitle(s.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	runner := &contextGame{Game: game, ctx: ctx}
	if err := ebiten.RunGame(runner); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// contextGame ends the ebiten loop when ctx is cancelled.
type contextGame struct {
	*Game
	ctx context.Context
}

func (g *contextGame) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	return g.Game.Update()
}

func startMetricsServer(addr string, registry *prometheus.Registry, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "addr", addr, "error", err)
		}
	}()
	logger.Info("serving metrics", "addr", addr)
	return srv
}
