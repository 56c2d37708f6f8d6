package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joshhsoj1902/steam-library-exporter/internal/api"
	"github.com/joshhsoj1902/steam-library-exporter/internal/config"
	"github.com/joshhsoj1902/steam-library-exporter/internal/library"
	"github.com/joshhsoj1902/steam-library-exporter/internal/logger"
	"github.com/joshhsoj1902/steam-library-exporter/internal/prompt"
	"github.com/joshhsoj1902/steam-library-exporter/internal/render"
	"github.com/joshhsoj1902/steam-library-exporter/internal/steam"
	"github.com/joshhsoj1902/steam-library-exporter/internal/store"
	"github.com/sirupsen/logrus"
)

const (
	modeJSON  = "json"
	modeHTML  = "html"
	modeServe = "serve"

	noGamesMessage = "No games found or failed to retrieve data."
)

func main() {
	mode := modeJSON
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}

	if err := run(mode); err != nil {
		logger.Log.WithError(err).Error("Run failed")
		os.Exit(1)
	}
}

func run(mode string) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}
	logger.SetLevel(cfg.LogLevel)

	logger.Log.WithFields(logrus.Fields{
		"mode":            mode,
		"steam_id":        cfg.SteamID,
		"api_origin":      cfg.APIOrigin,
		"request_timeout": cfg.RequestTimeout,
		"output_dir":      cfg.OutputDir,
		"redis_addr":      cfg.RedisAddr,
		"pushgateway_set": cfg.PushgatewayURL != "",
		"steam_key_set":   cfg.SteamKey != "",
	}).Info("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var summaries *store.Store
	if cfg.RedisEnabled() {
		summaries = store.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer summaries.Close()
	}

	switch mode {
	case modeJSON:
		return runJSON(ctx, cfg, summaries, os.Stdout)
	case modeHTML:
		return runHTML(ctx, cfg, summaries, os.Stdin, os.Stdout)
	case modeServe:
		return runServe(ctx, cfg, summaries)
	}
	return fmt.Errorf("unknown mode %q - expected %s, %s or %s", mode, modeJSON, modeHTML, modeServe)
}

// collect runs the fetch and aggregation pass. ok is false when the library
// could not be retrieved, in which case nothing should be written.
func collect(ctx context.Context, cfg config.Config, out io.Writer) (library.Summary, bool) {
	client := steam.NewClient(cfg.SteamKey, cfg.APIOrigin, cfg.RequestTimeout)
	summary, ok := library.NewCollector(client, cfg.SteamID).Collect(ctx)
	if !ok {
		fmt.Fprintln(out, noGamesMessage)
	}
	return summary, ok
}

func runJSON(ctx context.Context, cfg config.Config, summaries *store.Store, out io.Writer) error {
	summary, ok := collect(ctx, cfg, out)
	if !ok {
		return nil
	}

	if _, err := render.WriteJSON(cfg.OutputDir, summary); err != nil {
		return err
	}
	publish(ctx, cfg, summaries, summary)
	return nil
}

func runHTML(ctx context.Context, cfg config.Config, summaries *store.Store, in io.Reader, out io.Writer) error {
	summary, ok := collect(ctx, cfg, out)
	if !ok {
		return nil
	}
	publish(ctx, cfg, summaries, summary)

	renderer := render.NewHTMLRenderer(cfg.OutputDir)
	loop := &prompt.Loop{
		In:  in,
		Out: out,
		Render: func(mode library.SortMode) error {
			sorted, err := summary.Sorted(mode)
			if err != nil {
				return err
			}
			if err := render.WriteTable(out, sorted); err != nil {
				return err
			}
			return renderer.Render(summary, mode)
		},
	}
	return loop.Run()
}

// publish sends the summary to Redis and the Pushgateway when configured.
// Failures are logged; the files on disk remain the primary output.
func publish(ctx context.Context, cfg config.Config, summaries *store.Store, summary library.Summary) {
	if summaries != nil {
		data, err := render.EncodeJSON(summary)
		if err == nil {
			err = summaries.PublishSummary(ctx, cfg.SteamID, data)
		}
		if err != nil {
			logger.Log.WithError(err).Warn("Failed to publish summary to Redis")
		}
	}

	if cfg.PushgatewayURL != "" {
		if err := api.PushSteamMetrics(cfg.PushgatewayURL, cfg.SteamID); err != nil {
			logger.Log.WithError(err).Warn("Failed to push metrics")
		}
	}
}

func runServe(ctx context.Context, cfg config.Config, summaries *store.Store) error {
	var summaryStore api.SummaryStore
	if summaries != nil {
		summaryStore = summaries
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: api.NewRouter(api.NewHandlers(cfg.OutputDir, summaryStore)),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.WithField("port", cfg.Port).Info("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Log.Info("Server exited")
	return nil
}
