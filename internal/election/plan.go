package election

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/coloradocarlos/epc-redistricting-2023/internal/tabular"
)

// PrecinctTable resolves commissioner districts from a direct
// precinct-to-district table (PRECINCT,COM_DIST), the format the county
// publishes for the districts currently in effect.
type PrecinctTable map[int]int

// Resolve implements CommissionerResolver.
func (t PrecinctTable) Resolve(shortPrecinct int) (int, bool) {
	district, ok := t[shortPrecinct]
	return district, ok
}

// LoadPrecinctTable reads a PRECINCT,COM_DIST CSV.
func LoadPrecinctTable(path string) (PrecinctTable, error) {
	table := make(PrecinctTable)
	err := tabular.ReadRows(path, func(row tabular.Row) error {
		precinct, err := strconv.Atoi(strings.TrimSpace(row["PRECINCT"]))
		if err != nil {
			return fmt.Errorf("invalid PRECINCT value %q: %w", row["PRECINCT"], err)
		}
		district, err := strconv.Atoi(strings.TrimSpace(row["COM_DIST"]))
		if err != nil {
			return fmt.Errorf("invalid COM_DIST value %q: %w", row["COM_DIST"], err)
		}
		table[precinct] = district
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load precinct table %s: %w", path, err)
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("precinct table %s has no rows", path)
	}
	return table, nil
}

// PlanResolver resolves commissioner districts for a redistricting plan:
// short precinct -> census block (via the precinct BAF), then census
// block -> proposed district (via the plan's assignment file).
type PlanResolver struct {
	precinctToBlock map[int]string
	blockToDistrict map[string]int
	logger          *slog.Logger
}

// NewPlanResolver builds a resolver from loaded assignment maps.
func NewPlanResolver(precinctToBlock map[int]string, blockToDistrict map[string]int, logger *slog.Logger) *PlanResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlanResolver{
		precinctToBlock: precinctToBlock,
		blockToDistrict: blockToDistrict,
		logger:          logger,
	}
}

// Resolve implements CommissionerResolver.
func (r *PlanResolver) Resolve(shortPrecinct int) (int, bool) {
	block, ok := r.precinctToBlock[shortPrecinct]
	if !ok {
		r.logger.Warn("unhandled precinct number in BAF",
			slog.Int("short_precinct", shortPrecinct))
		return 0, false
	}
	district, ok := r.blockToDistrict[block]
	if !ok {
		r.logger.Warn("unhandled block number in plan",
			slog.String("block", block),
			slog.Int("short_precinct", shortPrecinct))
		return 0, false
	}
	return district, true
}

// LoadBlockAssignments reads a plan's block-to-district assignment file.
// Header names vary across plan sources (BLOCK or GEOID20, DISTRICT or
// District), so the first column is taken as the block and the second as
// the district.
func LoadBlockAssignments(path string) (map[string]int, error) {
	header, err := tabular.ReadHeader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load block assignments %s: %w", path, err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("block assignment file %s needs at least 2 columns, got %d", path, len(header))
	}
	blockColumn, districtColumn := header[0], header[1]

	assignments := make(map[string]int)
	err = tabular.ReadRows(path, func(row tabular.Row) error {
		block := strings.TrimSpace(row[blockColumn])
		if block == "" {
			return fmt.Errorf("empty block value in %s", path)
		}
		district, err := strconv.Atoi(strings.TrimSpace(row[districtColumn]))
		if err != nil {
			return fmt.Errorf("invalid district value %q for block %s: %w", row[districtColumn], block, err)
		}
		assignments[block] = district
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load block assignments %s: %w", path, err)
	}
	if len(assignments) == 0 {
		return nil, fmt.Errorf("block assignment file %s has no rows", path)
	}
	return assignments, nil
}

// LoadPrecinctBAF reads the precinct block assignment file produced by
// bafgen (BLOCK,PRECINCT) into a precinct-to-block map.
func LoadPrecinctBAF(path string) (map[int]string, error) {
	precinctToBlock := make(map[int]string)
	err := tabular.ReadRows(path, func(row tabular.Row) error {
		block := strings.TrimSpace(row["BLOCK"])
		if block == "" {
			return fmt.Errorf("empty BLOCK value in %s", path)
		}
		precinct, err := strconv.Atoi(strings.TrimSpace(row["PRECINCT"]))
		if err != nil {
			return fmt.Errorf("invalid PRECINCT value %q: %w", row["PRECINCT"], err)
		}
		precinctToBlock[precinct] = block
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load precinct BAF %s: %w", path, err)
	}
	if len(precinctToBlock) == 0 {
		return nil, fmt.Errorf("precinct BAF %s has no rows", path)
	}
	return precinctToBlock, nil
}
