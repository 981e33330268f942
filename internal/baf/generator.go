// Package baf generates the precinct block assignment file from a QGIS
// intersection attribute table.
//
// Not all 2020 census blocks nest inside the county's precincts: the
// TIGER shapefile lags precinct boundary changes, and state statute
// avoids splitting residential parcels between legislative districts.
// The attribute table therefore contains one row per block/precinct
// intersection polygon, with a ZOVERLAP field holding the polygon area.
// Split blocks are resolved to the precinct with the largest overlap.
package baf

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/coloradocarlos/epc-redistricting-2023/internal/tabular"
)

// Attribute table column names, as exported from QGIS.
const (
	ColumnBlock    = "GEOID20"
	ColumnPrecinct = "PRECINCT"
	ColumnOverlap  = "ZOVERLAP"
)

// Assignment maps one census block to its precinct.
type Assignment struct {
	Block    string
	Precinct string
	// Overlap is the winning intersection area.
	Overlap float64
}

// Summary describes a generation run.
type Summary struct {
	TotalRows      int
	BlocksNotSplit int
	SplitRows      int
	DistinctBlocks int
}

// Generate reads an intersection attribute table and resolves each census
// block to a single precinct, keeping first-seen block order. Duplicate
// rows replace the held assignment only when strictly larger in overlap,
// so ties keep the earlier row.
func Generate(attributeTablePath string, logger *slog.Logger) ([]Assignment, Summary, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		order   []string
		byBlock = make(map[string]*Assignment)
		summary Summary
	)

	err := tabular.ReadRows(attributeTablePath, func(row tabular.Row) error {
		summary.TotalRows++

		block := strings.TrimSpace(row[ColumnBlock])
		if block == "" {
			return fmt.Errorf("row %d: missing %s column value", summary.TotalRows, ColumnBlock)
		}
		precinct := strings.TrimSpace(row[ColumnPrecinct])
		if precinct == "" {
			return fmt.Errorf("row %d (block %s): missing %s column value", summary.TotalRows, block, ColumnPrecinct)
		}
		overlap, err := tabular.ParseArea(row[ColumnOverlap])
		if err != nil {
			return fmt.Errorf("row %d (block %s): bad %s: %w", summary.TotalRows, block, ColumnOverlap, err)
		}

		if existing, ok := byBlock[block]; ok {
			// Split census block: intersects more than one precinct.
			summary.SplitRows++
			logger.Debug("split census block",
				slog.String("block", block),
				slog.String("precinct", precinct),
				slog.Float64("overlap", overlap),
				slog.String("existing_precinct", existing.Precinct),
				slog.Float64("existing_overlap", existing.Overlap))
			if overlap > existing.Overlap {
				existing.Precinct = precinct
				existing.Overlap = overlap
			}
			return nil
		}

		summary.BlocksNotSplit++
		byBlock[block] = &Assignment{Block: block, Precinct: precinct, Overlap: overlap}
		order = append(order, block)
		return nil
	})
	if err != nil {
		return nil, Summary{}, fmt.Errorf("failed to generate block assignments from %s: %w", attributeTablePath, err)
	}

	summary.DistinctBlocks = len(byBlock)

	assignments := make([]Assignment, len(order))
	for i, block := range order {
		assignments[i] = *byBlock[block]
	}

	logger.Info("block assignment summary",
		slog.Int("total_rows", summary.TotalRows),
		slog.Int("blocks_not_split", summary.BlocksNotSplit),
		slog.Int("split_rows", summary.SplitRows),
		slog.Int("distinct_blocks", summary.DistinctBlocks))

	return assignments, summary, nil
}
