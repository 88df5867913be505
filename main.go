package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flightglobe/app"
	"flightglobe/hal"
	"flightglobe/internal/buildinfo"
	"flightglobe/internal/config"
	"flightglobe/internal/logging"
	"flightglobe/internal/metrics"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

func main() {
	fs := pflag.NewFlagSet("flightglobe", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load(fs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error(ctx, "flightglobe exited", logging.Err(err))
		os.Exit(1)
	}
}

// run mounts the viewer and drives it on the calling goroutine, which must be
// the main goroutine in window mode. The metrics endpoint, if configured,
// runs alongside and stops with the host.
func run(ctx context.Context, cfg *config.Config, log logging.Logger) error {
	log.Info(ctx, "starting",
		logging.String("version", buildinfo.Version),
		logging.String("commit", buildinfo.Revision()),
		logging.Bool("headless", cfg.Headless.Enabled),
	)

	m, err := metrics.New(nil)
	if err != nil {
		return err
	}
	viewer, err := app.New(ctx, app.Options{Config: cfg, Logger: log, Metrics: m})
	if err != nil {
		return err
	}
	if err := viewer.Mount(); err != nil {
		return err
	}
	defer viewer.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	if cfg.Metrics.Addr != "" {
		serveMetrics(gctx, g, cfg.Metrics.Addr, m, log)
	}

	hostErr := runHost(gctx, cfg, viewer)
	cancel()
	if err := g.Wait(); err != nil {
		return err
	}
	if errors.Is(hostErr, context.Canceled) {
		return nil
	}
	if errors.Is(hostErr, hal.ErrNoWindow) {
		log.Warn(ctx, "no window backend in this build, use --headless")
	}
	return hostErr
}

func runHost(ctx context.Context, cfg *config.Config, viewer *app.Viewer) error {
	if cfg.Headless.Enabled {
		return hal.RunHeadless(ctx, viewer, hal.HeadlessConfig{
			Hz:       cfg.Headless.Hz,
			Frames:   cfg.Headless.Frames,
			Snapshot: cfg.Headless.Snapshot,
			Width:    cfg.Window.Width,
			Height:   cfg.Window.Height,
		})
	}
	return hal.RunWindow(ctx, viewer, hal.WindowConfig{
		Title:  fmt.Sprintf("%s (%s)", cfg.Window.Title, buildinfo.Short()),
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
	})
}

func serveMetrics(ctx context.Context, g *errgroup.Group, addr string, m *metrics.Collector, log logging.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	g.Go(func() error {
		log.Info(ctx, "metrics listening", logging.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
}
