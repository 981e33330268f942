package operations

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/coloradocarlos/epc-redistricting-2023/internal/config"
	"github.com/coloradocarlos/epc-redistricting-2023/internal/election"
	"github.com/coloradocarlos/epc-redistricting-2023/internal/exporter"
)

// Step identifiers for plan analysis runs.
const (
	StepIDAssignments = "assignments"
	StepIDAggregation = "aggregation"
	StepIDReports     = "reports"
)

// Step names for plan analysis runs.
const (
	StepNameAssignments = "Plan Assignment Loading"
	StepNameAggregation = "Results Aggregation"
	StepNameReports     = "Report Generation"
)

// PlanSteps builds the step sequence that analyzes one redistricting
// plan: load its block assignments, aggregate the year's statewide and
// countywide results by proposed commissioner district, write reports.
func PlanSteps(cfg *config.Config, planName string, logger *slog.Logger) ([]Step, error) {
	if logger == nil {
		logger = slog.Default()
	}
	plan, err := cfg.Plan(planName)
	if err != nil {
		return nil, err
	}
	catalog, err := election.CatalogForYear(plan.Year)
	if err != nil {
		return nil, err
	}

	return []Step{
		&assignmentsStep{cfg: cfg, plan: plan, planName: planName, logger: logger},
		&aggregationStep{cfg: cfg, plan: plan, catalog: catalog, logger: logger},
		&reportsStep{cfg: cfg, planName: planName, logger: logger},
	}, nil
}

// assignmentsStep loads the plan's district assignments and the precinct
// BAF, and publishes a commissioner resolver for the aggregation step.
type assignmentsStep struct {
	cfg      *config.Config
	plan     config.PlanConfig
	planName string
	logger   *slog.Logger
}

func (s *assignmentsStep) ID() string   { return StepIDAssignments }
func (s *assignmentsStep) Name() string { return StepNameAssignments }

func (s *assignmentsStep) Validate(*State) error {
	if s.plan.DistrictAssignments == "" || s.plan.PrecinctBAF == "" {
		return fmt.Errorf("plan %s is missing assignment files", s.planName)
	}
	return nil
}

func (s *assignmentsStep) Execute(_ context.Context, state *State) error {
	blockToDistrict, err := election.LoadBlockAssignments(s.cfg.Paths.InputPath(s.plan.DistrictAssignments))
	if err != nil {
		return err
	}
	precinctToBlock, err := election.LoadPrecinctBAF(s.cfg.Paths.InputPath(s.plan.PrecinctBAF))
	if err != nil {
		return err
	}

	state.Set(KeyPlanName, s.planName)
	state.Set(KeyYear, s.plan.Year)
	state.Set(KeyBlockCount, len(blockToDistrict))
	state.Set(KeyPrecinctCount, len(precinctToBlock))
	state.Set(KeyResolver, election.NewPlanResolver(precinctToBlock, blockToDistrict, s.logger))

	s.logger.Info("loaded plan assignments",
		slog.String("plan", s.planName),
		slog.Int("blocks", len(blockToDistrict)),
		slog.Int("precincts", len(precinctToBlock)))
	return nil
}

// aggregationStep ingests the year's results against the plan resolver.
type aggregationStep struct {
	cfg     *config.Config
	plan    config.PlanConfig
	catalog election.RaceCatalog
	logger  *slog.Logger
}

func (s *aggregationStep) ID() string   { return StepIDAggregation }
func (s *aggregationStep) Name() string { return StepNameAggregation }

func (s *aggregationStep) Validate(state *State) error {
	if _, ok := state.Get(KeyResolver); !ok {
		return fmt.Errorf("no commissioner resolver in state; %s must run first", StepIDAssignments)
	}
	return nil
}

func (s *aggregationStep) Execute(_ context.Context, state *State) error {
	v, err := state.MustGet(KeyResolver)
	if err != nil {
		return err
	}
	resolver, ok := v.(election.CommissionerResolver)
	if !ok {
		return fmt.Errorf("state value %q has unexpected type %T", KeyResolver, v)
	}

	county := s.cfg.County
	types := []election.DistrictType{
		election.CommissionerDistrictType(county.Name, county.Number, county.CommissionerDistricts),
	}
	assigner := election.NewAssigner(s.plan.Year, types, s.logger,
		election.WithCommissionerResolver(resolver))
	agg := election.NewAggregator(s.catalog, types, assigner, county.Name, s.logger)

	yearCfg, err := s.cfg.Year(s.plan.Year)
	if err != nil {
		return err
	}
	if err := agg.IngestStatewide(s.cfg.Paths.InputPath(yearCfg.StatewideResults)); err != nil {
		return err
	}
	for _, race := range election.CountywideRaces(s.plan.Year) {
		path, ok := s.plan.CountywideResults[race]
		if !ok {
			s.logger.Warn("no countywide results configured for race",
				slog.String("race", race))
			continue
		}
		if err := agg.IngestCountywide(race, s.cfg.Paths.InputPath(path)); err != nil {
			return err
		}
	}

	state.Set(KeyResults, agg.Results())
	return nil
}

// reportsStep writes per-race reports and partisan index pivots under
// the plan's report directory.
type reportsStep struct {
	cfg      *config.Config
	planName string
	logger   *slog.Logger
}

func (s *reportsStep) ID() string   { return StepIDReports }
func (s *reportsStep) Name() string { return StepNameReports }

func (s *reportsStep) Validate(state *State) error {
	if _, ok := state.Get(KeyResults); !ok {
		return fmt.Errorf("no results in state; %s must run first", StepIDAggregation)
	}
	return nil
}

func (s *reportsStep) Execute(_ context.Context, state *State) error {
	v, err := state.MustGet(KeyResults)
	if err != nil {
		return err
	}
	results, ok := v.(*election.Results)
	if !ok {
		return fmt.Errorf("state value %q has unexpected type %T", KeyResults, v)
	}

	writer := exporter.NewCSVWriter(s.cfg.Paths.ReportPath(), s.logger)

	written, err := writer.WriteRaceReports(results, s.planName)
	if err != nil {
		return err
	}

	commissionerKey := election.CommissionerDistrictType(
		s.cfg.County.Name, s.cfg.County.Number, s.cfg.County.CommissionerDistricts).Key

	// Down-ballot statewide races vary by year; only 2022-style ballots
	// carry the three races the statewide index averages.
	if hasRaces(results, election.DownBallotStatewide()) {
		statewideTable, err := election.PartisanIndexTable(results, commissionerKey, election.DownBallotStatewide())
		if err != nil {
			return err
		}
		path, err := writer.WritePartisanIndex(results.Year, "statewide", commissionerKey,
			election.DownBallotStatewide(), statewideTable, s.planName)
		if err != nil {
			return err
		}
		written = append(written, path)
	}

	if hasRaces(results, election.DownBallotCountywide()) {
		countywideTable, err := election.PartisanIndexTable(results, commissionerKey, election.DownBallotCountywide())
		if err != nil {
			return err
		}
		path, err := writer.WritePartisanIndex(results.Year, "countywide", commissionerKey,
			election.DownBallotCountywide(), countywideTable, s.planName)
		if err != nil {
			return err
		}
		written = append(written, path)
	}

	state.Set(KeyReportsWritten, written)
	s.logger.Info("plan reports written",
		slog.String("plan", s.planName),
		slog.Int("files", len(written)))
	return nil
}

// hasRaces reports whether every listed race exists in the results.
func hasRaces(results *election.Results, races []string) bool {
	have := make(map[string]bool, len(results.Races()))
	for _, r := range results.Races() {
		have[r] = true
	}
	for _, r := range races {
		if !have[r] {
			return false
		}
	}
	return true
}
