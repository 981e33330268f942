package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/coloradocarlos/epc-redistricting-2023/internal/config"
	"github.com/coloradocarlos/epc-redistricting-2023/internal/election"
	"github.com/coloradocarlos/epc-redistricting-2023/internal/exporter"
	"github.com/coloradocarlos/epc-redistricting-2023/internal/infrastructure"
)

func main() {
	yearFlag := flag.String("year", "", "election year to process (defaults to all configured years)")
	configFile := flag.String("config", "", "configuration file path")
	flag.Parse()

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

	years, err := selectYears(cfg, *yearFlag)
	if err != nil {
		logger.Error("Invalid year selection", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Starting election results aggregation", slog.Int("years", len(years)))

	var g errgroup.Group
	for _, year := range years {
		g.Go(func() error {
			return processYear(cfg, year, logger.With(slog.Int("year", year)))
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("Results aggregation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Results aggregation completed", slog.Int("years", len(years)))
	fmt.Printf("Results aggregation complete: %d years\n", len(years))
}

// selectYears resolves the -year flag against the configured years.
func selectYears(cfg *config.Config, yearFlag string) ([]int, error) {
	if yearFlag != "" {
		year, err := strconv.Atoi(yearFlag)
		if err != nil {
			return nil, fmt.Errorf("invalid year %q: %w", yearFlag, err)
		}
		if _, err := cfg.Year(year); err != nil {
			return nil, err
		}
		return []int{year}, nil
	}

	years := make([]int, 0, len(cfg.Years))
	for year := range cfg.Years {
		years = append(years, year)
	}
	if len(years) == 0 {
		return nil, fmt.Errorf("no years configured")
	}
	sort.Ints(years)
	return years, nil
}

// processYear aggregates one year's statewide results and writes its
// race reports plus the statewide partisan index pivot.
func processYear(cfg *config.Config, year int, logger *slog.Logger) error {
	yc, err := cfg.Year(year)
	if err != nil {
		return err
	}

	catalog, err := election.CatalogForYear(year)
	if err != nil {
		return err
	}

	precincts, err := election.LoadPrecinctTable(cfg.Paths.InputPath(yc.CommissionerPrecincts))
	if err != nil {
		return fmt.Errorf("year %d: %w", year, err)
	}

	types := append(election.StatewideDistrictTypes(),
		election.CommissionerDistrictType(cfg.County.Name, cfg.County.Number, cfg.County.CommissionerDistricts))

	assigner := election.NewAssigner(year, types, logger,
		election.WithCommissionerResolver(precincts),
		election.WithProvisionalTable(election.DefaultProvisionalTable()))

	agg := election.NewAggregator(catalog, types, assigner, cfg.County.Name, logger)
	if err := agg.IngestStatewide(cfg.Paths.InputPath(yc.StatewideResults)); err != nil {
		return fmt.Errorf("year %d: %w", year, err)
	}
	for _, race := range election.CountywideRaces(year) {
		path, ok := yc.CountywideResults[race]
		if !ok {
			logger.Warn("No countywide results configured", slog.String("race", race))
			continue
		}
		if err := agg.IngestCountywide(race, cfg.Paths.InputPath(path)); err != nil {
			return fmt.Errorf("year %d: %w", year, err)
		}
	}
	results := agg.Results()

	writer := exporter.NewCSVWriter(cfg.Paths.ReportPath(), logger)
	subDir := strconv.Itoa(year)

	written, err := writer.WriteRaceReports(results, subDir)
	if err != nil {
		return fmt.Errorf("year %d: %w", year, err)
	}
	logger.Info("Race reports written", slog.Int("count", len(written)))

	commissioner := types[len(types)-1]
	table, err := election.PartisanIndexTable(results, commissioner.Key, election.DownBallotStatewide())
	if err != nil {
		// Years whose catalogs carry no down-ballot statewide races
		// get race reports only.
		logger.Warn("Skipping partisan index", slog.String("error", err.Error()))
		return nil
	}
	path, err := writer.WritePartisanIndex(year, "statewide", commissioner.Key, election.DownBallotStatewide(), table, subDir)
	if err != nil {
		return fmt.Errorf("year %d: %w", year, err)
	}
	logger.Info("Partisan index written", slog.String("path", path))

	if len(yc.CountywideResults) > 0 {
		table, err := election.PartisanIndexTable(results, commissioner.Key, election.DownBallotCountywide())
		if err != nil {
			logger.Warn("Skipping countywide partisan index", slog.String("error", err.Error()))
			return nil
		}
		path, err := writer.WritePartisanIndex(year, "countywide", commissioner.Key, election.DownBallotCountywide(), table, subDir)
		if err != nil {
			return fmt.Errorf("year %d: %w", year, err)
		}
		logger.Info("Partisan index written", slog.String("path", path))
	}

	return nil
}
