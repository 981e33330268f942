package election

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/coloradocarlos/epc-redistricting-2023/internal/tabular"
)

// maskedVotes is how SOVC exports redact counts in low-turnout precincts
// to protect voter privacy. Masked cells contribute zero.
const maskedVotes = "****"

// Aggregator accumulates precinct-level result rows into district totals.
type Aggregator struct {
	catalog  RaceCatalog
	assigner *Assigner
	results  *Results
	logger   *slog.Logger

	// countyName labels countywide race rows, which carry no County
	// column of their own.
	countyName string
}

// NewAggregator creates an aggregator for one year. The results are
// initialized with a zero cell for every statewide and countywide race
// across the given district types.
func NewAggregator(catalog RaceCatalog, types []DistrictType, assigner *Assigner, countyName string, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	raceKeys := append(catalog.StatewideKeys(), CountywideRaces(catalog.Year)...)
	return &Aggregator{
		catalog:    catalog,
		assigner:   assigner,
		results:    NewResults(catalog.Year, raceKeys, types),
		logger:     logger,
		countyName: countyName,
	}
}

// Results returns the accumulated totals.
func (a *Aggregator) Results() *Results {
	return a.results
}

// IngestStatewide processes an SOS precinct-level results file. Rows for
// races outside the year's catalog are ignored. Provisional rows without
// a district guess are logged and skipped.
func (a *Aggregator) IngestStatewide(path string) error {
	rows := 0
	matched := 0
	err := tabular.ReadRows(path, func(row tabular.Row) error {
		rows++
		race := a.catalog.MatchOffice(row[a.catalog.OfficeColumn])
		if race == "" {
			return nil
		}
		matched++

		assignment, err := a.assigner.Assign(row["Precinct"], row["County"])
		if err != nil {
			if errors.Is(err, ErrUnknownProvisional) {
				a.logger.Warn("skipping provisional row without district table",
					slog.String("county", row["County"]))
				return nil
			}
			return err
		}

		votes, err := tabular.ParseCount(row[a.catalog.VotesColumn])
		if err != nil {
			return fmt.Errorf("row for precinct %s: %w", row["Precinct"], err)
		}
		party := PartyFromName(row["Party"])

		for _, dt := range a.results.Types() {
			district, ok := assignment[dt.Key]
			if !ok {
				continue
			}
			totals, err := a.results.Totals(race, dt.Key, district)
			if err != nil {
				return fmt.Errorf("row for precinct %s: %w", row["Precinct"], err)
			}
			totals.Add(party, votes)
			totals.AddCounty(row["County"])
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to ingest statewide results %s: %w", path, err)
	}

	a.logger.Info("ingested statewide results",
		slog.String("path", path),
		slog.Int("rows", rows),
		slog.Int("matched_rows", matched))
	return nil
}

// IngestCountywide processes a county SOVC export for one two-party race.
// The Democrat and Republican candidate columns are discovered by their
// "(DEM)" and "(REP)" header suffixes; both must be present.
func (a *Aggregator) IngestCountywide(raceKey, path string) error {
	header, err := tabular.ReadHeader(path)
	if err != nil {
		return fmt.Errorf("failed to ingest countywide results %s: %w", path, err)
	}

	var demHeader, repHeader string
	for _, field := range header {
		switch {
		case strings.Contains(field, "(DEM)"):
			demHeader = field
		case strings.Contains(field, "(REP)"):
			repHeader = field
		}
	}
	if demHeader == "" || repHeader == "" {
		return fmt.Errorf("missing DEM or REP column in %s for %s (this needs to be a two party race)", path, raceKey)
	}

	rows := 0
	err = tabular.ReadRows(path, func(row tabular.Row) error {
		rows++
		assignment, err := a.assigner.Assign(row["Precinct"], a.countyName)
		if err != nil {
			return err
		}

		for _, dt := range a.results.Types() {
			district, ok := assignment[dt.Key]
			if !ok {
				continue
			}
			totals, err := a.results.Totals(raceKey, dt.Key, district)
			if err != nil {
				return fmt.Errorf("row for precinct %s: %w", row["Precinct"], err)
			}
			if err := addUnlessMasked(totals, PartyDemocrat, row[demHeader]); err != nil {
				return fmt.Errorf("row for precinct %s: %w", row["Precinct"], err)
			}
			if err := addUnlessMasked(totals, PartyRepublican, row[repHeader]); err != nil {
				return fmt.Errorf("row for precinct %s: %w", row["Precinct"], err)
			}
			totals.Counties = []string{a.countyName}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to ingest countywide results %s: %w", path, err)
	}

	a.logger.Info("ingested countywide results",
		slog.String("race", raceKey),
		slog.String("path", path),
		slog.Int("rows", rows))
	return nil
}

func addUnlessMasked(totals *VoteTotals, party Party, value string) error {
	if strings.TrimSpace(value) == maskedVotes {
		return nil
	}
	votes, err := tabular.ParseCount(value)
	if err != nil {
		return err
	}
	totals.Add(party, votes)
	return nil
}
