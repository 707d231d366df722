package main

import (
	"context"
	"encoding/json"
	"errors"
	"expvar"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fleetcore/internal/core"
	"fleetcore/internal/httpapi"
)

var CLI struct {
	EnvFile string `short:"e" help:"Env file loaded before startup" default:".env"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Serve struct {
		Addr string `short:"a" help:"HTTP listen address" default:":8080"`
	} `cmd:"" help:"Serve the fleet maintenance API"`

	Kpis struct{} `cmd:"" help:"Print the fleet KPIs and exit"`
}

func main() {
	ctx := kong.Parse(&CLI)

	if err := godotenv.Load(CLI.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("env file not loaded", "path", CLI.EnvFile, "error", err)
	}

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	switch ctx.Command() {
	case "serve":
		if err := runServe(CLI.Serve.Addr); err != nil {
			slog.Error("Serve failed", "error", err)
			os.Exit(1)
		}
	case "kpis":
		if err := runKPIs(); err != nil {
			slog.Error("KPI query failed", "error", err)
			os.Exit(1)
		}
	}
}

func newService(ctx context.Context, metrics core.MetricsRecorder) (*core.Service, error) {
	bridge, err := core.OpenPersistenceBridge(ctx)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	opts := []core.Option{core.WithLogger(core.NewSlogLogger(slog.Default()))}
	if metrics != nil {
		opts = append(opts, core.WithMetricsRecorder(metrics))
	}
	svc := core.NewService(bridge, opts...)
	if err := svc.Start(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

func runServe(addr string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	prom := core.NewPromMetricsRecorder()
	metrics := core.MultiMetricsRecorder(prom, core.NewExpvarMetricsRecorder("fleetcore_service_metrics"))
	svc, err := newService(ctx, metrics)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/api/v1/", httpapi.NewHandler(svc))
	mux.Handle("/metrics", promhttp.HandlerFor(prom.Registry(), promhttp.HandlerOpts{}))
	mux.Handle("/debug/vars", expvar.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		errChan <- server.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		slog.Info("Shutdown signal received, stopping server...")
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer stopCancel()
	if err := server.Shutdown(stopCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("Server stopped")
	return nil
}

func runKPIs() error {
	ctx := context.Background()
	svc, err := newService(ctx, nil)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(svc.Views().KPIs())
}
