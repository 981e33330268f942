package election

import (
	"fmt"
	"strings"
)

// Race pairs a short race key with the office name the SOS uses for it.
type Race struct {
	Key    string
	Office string
}

// RaceCatalog describes the statewide races and result-file column names
// for one general election year. The SOS renamed columns between cycles.
type RaceCatalog struct {
	Year         int
	OfficeColumn string
	VotesColumn  string
	Statewide    []Race
}

// statewide race catalogs by year.
var catalogs = map[int]RaceCatalog{
	2016: {
		Year:         2016,
		OfficeColumn: "Office/Issue/Judgeship",
		VotesColumn:  "Candidate Votes",
		Statewide: []Race{
			{Key: "us_president", Office: "President/Vice President"},
			{Key: "us_senator", Office: "United States Senator"},
			{Key: "regent_at_large", Office: "Regent Of The University Of Colorado - At Large"},
		},
	},
	2020: {
		Year:         2020,
		OfficeColumn: "Office/Issue/Judgeship",
		VotesColumn:  "Candidate Votes",
		Statewide: []Race{
			{Key: "us_president", Office: "President/Vice President"},
			{Key: "us_senator", Office: "United States Senator"},
		},
	},
	2022: {
		Year:         2022,
		OfficeColumn: "Office",
		VotesColumn:  "Votes",
		Statewide: []Race{
			{Key: "governor", Office: "Governor/Lieutenant Governor"},
			{Key: "sec_of_state", Office: "Secretary of State"},
			{Key: "state_treasurer", Office: "State Treasurer"},
			{Key: "attorney_general", Office: "Attorney General"},
			{Key: "boe_at_large", Office: "State Board of Education Member - At Large"},
		},
	},
}

// Down-ballot races used for the partisan index. Top-of-ticket races are
// excluded: a popular governor or an SOS who has been in the news skews
// the index away from baseline party preference.
var (
	downBallotStatewide  = []string{"state_treasurer", "attorney_general", "boe_at_large"}
	downBallotCountywide = []string{"assessor", "car", "sheriff", "county_treasurer"}
)

// countywideRaces lists the county races with SOVC exports per year.
var countywideRaces = map[int][]string{
	2022: {"assessor", "car", "sheriff", "county_treasurer"},
}

// CatalogForYear returns the race catalog for a supported election year.
func CatalogForYear(year int) (RaceCatalog, error) {
	c, ok := catalogs[year]
	if !ok {
		return RaceCatalog{}, fmt.Errorf("no race catalog for year %d", year)
	}
	return c, nil
}

// SupportedYears returns the years with a race catalog.
func SupportedYears() []int {
	years := make([]int, 0, len(catalogs))
	for y := range catalogs {
		years = append(years, y)
	}
	return years
}

// MatchOffice returns the race key whose office name matches the row's
// office column, or "" when the row belongs to a race outside the catalog.
func (c RaceCatalog) MatchOffice(office string) string {
	office = strings.TrimSpace(office)
	for _, race := range c.Statewide {
		if race.Office == office {
			return race.Key
		}
	}
	return ""
}

// StatewideKeys returns the statewide race keys in ballot order.
func (c RaceCatalog) StatewideKeys() []string {
	keys := make([]string, len(c.Statewide))
	for i, race := range c.Statewide {
		keys[i] = race.Key
	}
	return keys
}

// CountywideRaces returns the county race keys for a year, in canonical
// order. Years without SOVC exports return nil.
func CountywideRaces(year int) []string {
	return countywideRaces[year]
}

// DownBallotStatewide returns the statewide races averaged into the
// partisan index.
func DownBallotStatewide() []string {
	return append([]string(nil), downBallotStatewide...)
}

// DownBallotCountywide returns the countywide races averaged into the
// partisan index.
func DownBallotCountywide() []string {
	return append([]string(nil), downBallotCountywide...)
}
