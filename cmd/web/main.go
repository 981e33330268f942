package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/coloradocarlos/epc-redistricting-2023/internal/config"
	"github.com/coloradocarlos/epc-redistricting-2023/internal/infrastructure"
	"github.com/coloradocarlos/epc-redistricting-2023/internal/services"
	transporthttp "github.com/coloradocarlos/epc-redistricting-2023/internal/transport/http"
)

func main() {
	configFile := flag.String("config", "", "configuration file path")
	port := flag.Int("port", 0, "listen port (overrides configuration)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
		cfg.Server.Enabled = true
	}
	if !cfg.Server.Enabled {
		fmt.Fprintln(os.Stderr, "report server is disabled; set server.enabled in the config or pass -port")
		os.Exit(2)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	if err := cfg.Paths.EnsureDirectories(); err != nil {
		logger.Error("Failed to create directories", slog.String("error", err.Error()))
		os.Exit(1)
	}

	reportService := services.NewReportService(cfg, logger)
	reportHandler := transporthttp.NewReportHandler(reportService, logger)
	router := transporthttp.NewRouter(cfg, logger, reportHandler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Report server listening",
			slog.Int("port", cfg.Server.Port),
			slog.String("reports_dir", cfg.Paths.ReportPath()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		logger.Error("Server failed", slog.String("error", err.Error()))
		os.Exit(1)
	case <-ctx.Done():
		logger.Info("Shutting down report server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Report server stopped")
}
