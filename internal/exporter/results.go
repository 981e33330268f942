package exporter

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/coloradocarlos/epc-redistricting-2023/internal/baf"
	"github.com/coloradocarlos/epc-redistricting-2023/internal/election"
)

// raceReportHeader is the per-race district results header.
var raceReportHeader = []string{"district", "counties", "democrat", "republican", "other"}

// WriteRaceReports writes one CSV per (race, district type) under subDir,
// named {year}_{race}_by_{type}.csv. It returns the relative paths of the
// files written.
func (w *CSVWriter) WriteRaceReports(results *election.Results, subDir string) ([]string, error) {
	var written []string
	for _, race := range results.Races() {
		for _, dt := range results.Types() {
			name := fmt.Sprintf("%d_%s_by_%s.csv", results.Year, race, dt.Key)
			relPath := filepath.Join(subDir, name)

			records := make([][]string, 0, len(dt.Districts))
			for _, district := range results.Districts(race, dt.Key) {
				totals, err := results.Totals(race, dt.Key, district)
				if err != nil {
					return nil, err
				}
				records = append(records, []string{
					strconv.Itoa(district),
					joinCounties(totals.Counties),
					formatInt(totals.Democrat),
					formatInt(totals.Republican),
					formatInt(totals.Other),
				})
			}

			if err := w.WriteSimpleCSV(relPath, raceReportHeader, records); err != nil {
				return nil, fmt.Errorf("failed to write race report %s: %w", relPath, err)
			}
			written = append(written, relPath)
		}
	}
	return written, nil
}

// WritePartisanIndex writes a partisan index pivot CSV named
// {year}_{scope}_partisan_index_by_{type}.csv under subDir, with one
// column per down-ballot race plus the averaged partisan_index column.
func (w *CSVWriter) WritePartisanIndex(year int, scope, typeKey string, downBallot []string, table []election.IndexRow, subDir string) (string, error) {
	header := append([]string{"district"}, downBallot...)
	header = append(header, "partisan_index")

	records := make([][]string, 0, len(table))
	for _, row := range table {
		record := make([]string, 0, len(header))
		record = append(record, strconv.Itoa(row.District))
		for _, race := range downBallot {
			record = append(record, formatIndex(row.ByRace[race]))
		}
		record = append(record, formatIndex(row.Average))
		records = append(records, record)
	}

	name := fmt.Sprintf("%d_%s_partisan_index_by_%s.csv", year, scope, typeKey)
	relPath := filepath.Join(subDir, name)
	if err := w.WriteSimpleCSV(relPath, header, records); err != nil {
		return "", fmt.Errorf("failed to write partisan index %s: %w", relPath, err)
	}
	return relPath, nil
}

// WriteBlockAssignments streams a block assignment file (BLOCK,PRECINCT).
func (w *CSVWriter) WriteBlockAssignments(assignments []baf.Assignment, filePath string) error {
	stream, err := w.CreateStreamWriter(filePath, []string{"BLOCK", "PRECINCT"})
	if err != nil {
		return err
	}
	for _, a := range assignments {
		if err := stream.WriteRecord([]string{a.Block, a.Precinct}); err != nil {
			stream.Close()
			return fmt.Errorf("failed to write assignment for block %s: %w", a.Block, err)
		}
	}
	return stream.Close()
}
