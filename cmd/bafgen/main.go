package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/coloradocarlos/epc-redistricting-2023/internal/baf"
	"github.com/coloradocarlos/epc-redistricting-2023/internal/config"
	"github.com/coloradocarlos/epc-redistricting-2023/internal/exporter"
	"github.com/coloradocarlos/epc-redistricting-2023/internal/infrastructure"
)

func main() {
	in := flag.String("in", "", "QGIS attribute table export (GEOID20,PRECINCT,ZOVERLAP csv or xlsx)")
	out := flag.String("out", "", "output block assignment file (defaults to epc_files/precinct_block_assignments.csv)")
	configFile := flag.String("config", "", "configuration file path")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "usage: bafgen -in <attribute_table> [-out <baf.csv>]")
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

	if *out == "" {
		*out = cfg.Paths.CountyPath("precinct_block_assignments.csv")
	}

	logger.Info("Starting block assignment generation",
		slog.String("input", *in),
		slog.String("output", *out))

	assignments, summary, err := baf.Generate(cfg.Paths.InputPath(*in), logger)
	if err != nil {
		logger.Error("Block assignment generation failed",
			slog.String("input", *in),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	writer := exporter.NewCSVWriter(cfg.Paths.BaseDir, logger)
	if err := writer.WriteBlockAssignments(assignments, *out); err != nil {
		logger.Error("Failed to write block assignment file",
			slog.String("output", *out),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Block assignment generation completed",
		slog.Int("total_rows", summary.TotalRows),
		slog.Int("blocks_not_split", summary.BlocksNotSplit),
		slog.Int("split_rows", summary.SplitRows),
		slog.Int("distinct_blocks", summary.DistinctBlocks),
		slog.String("output", *out))

	fmt.Printf("Block assignment complete: %d blocks (%d from split rows)\n",
		summary.DistinctBlocks, summary.SplitRows)
}
