package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/contentcore/contentd/internal/app"
	"github.com/contentcore/contentd/internal/config"
	"github.com/contentcore/contentd/internal/server"
)

const defaultConfigPath = "contentd.yaml"

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		configPath string
		port       int
		verbose    bool
	)
	flag.StringVar(&configPath, "config", defaultConfigPath, "Path to optional YAML configuration file")
	flag.IntVar(&port, "port", 0, "Listen port (overrides CCORE_PORT)")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if err := run(configPath, port, verbose); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func run(configPath string, port int, verbose bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	explicit := configPath != defaultConfigPath
	if err := config.LoadFile(configPath, explicit, cfg); err != nil {
		return fmt.Errorf("load config file: %w", err)
	}
	if port != 0 {
		cfg.Port = port
	}

	switch {
	case verbose || cfg.LogLevel == "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case cfg.LogLevel == "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           (&server.Server{App: a, Cfg: cfg}).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Int("port", cfg.Port).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
