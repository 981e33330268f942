package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/coloradocarlos/epc-redistricting-2023/internal/config"
	"github.com/coloradocarlos/epc-redistricting-2023/internal/infrastructure"
	"github.com/coloradocarlos/epc-redistricting-2023/internal/operations"
)

func main() {
	plan := flag.String("plan", "", "name of the configured redistricting plan to analyze")
	configFile := flag.String("config", "", "configuration file path")
	flag.Parse()

	if *plan == "" {
		fmt.Fprintln(os.Stderr, "usage: planresults -plan <name> [-config <file>]")
		os.Exit(2)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	steps, err := operations.PlanSteps(cfg, *plan, logger)
	if err != nil {
		logger.Error("Failed to prepare plan pipeline",
			slog.String("plan", *plan),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Starting plan analysis", slog.String("plan", *plan))

	manager := operations.NewManager(logger)
	state, err := manager.Run(ctx, steps)
	for _, st := range state.StepStates() {
		fmt.Printf("%-24s %s\n", st.Name, st.CurrentStatus())
	}
	if err != nil {
		logger.Error("Plan analysis failed",
			slog.String("plan", *plan),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	if written, ok := state.Get(operations.KeyReportsWritten); ok {
		if paths, ok := written.([]string); ok {
			for _, p := range paths {
				fmt.Println(p)
			}
			logger.Info("Plan analysis completed",
				slog.String("plan", *plan),
				slog.Int("reports", len(paths)))
		}
	}
}
