// Package election models Colorado general election results and the
// district geography needed to aggregate them: the statewide district
// types encoded in SOS precinct numbers, per-year race catalogs, and
// vote totals by party.
package election

import (
	"fmt"
	"sort"
	"strings"
)

// Party is the normalized party bucket used for vote totals.
type Party string

const (
	PartyDemocrat   Party = "democrat"
	PartyRepublican Party = "republican"
	PartyOther      Party = "other"
)

// PartyFromName maps the party vocabulary used across SOS export years.
// 2020 files spell out "Democratic Party"; 2022 files abbreviate to "DEM".
func PartyFromName(name string) Party {
	switch strings.TrimSpace(name) {
	case "Democratic Party", "DEM":
		return PartyDemocrat
	case "Republican Party", "REP":
		return PartyRepublican
	default:
		return PartyOther
	}
}

// Precinct number match groups, in SOS digit order.
const (
	MatchGroupCongressional = 0
	MatchGroupStateSenate   = 1
	MatchGroupStateHouse    = 2
	MatchGroupCounty        = 3
)

// DistrictType describes one way of slicing results by district.
type DistrictType struct {
	// Key names the district type in results and report filenames,
	// e.g. "us_house" or "elpaso_commissioner".
	Key string
	// Districts is the full district number range for the type.
	Districts []int
	// MatchGroup selects which precinct number segment carries the
	// district for this type.
	MatchGroup int
	// CountyNumber restricts the type to a single county when non-zero.
	// District numbers then come from a commissioner resolver rather
	// than the precinct number itself.
	CountyNumber int
	// CountyName is the SOS spelling of the county, set together with
	// CountyNumber.
	CountyName string
}

// CountyScoped reports whether this type only exists within one county.
func (dt DistrictType) CountyScoped() bool {
	return dt.CountyNumber != 0
}

// districtRange returns [1, n].
func districtRange(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// StatewideDistrictTypes returns the district types decodable from any
// Colorado precinct number: congressional, state senate, state house,
// and county.
func StatewideDistrictTypes() []DistrictType {
	return []DistrictType{
		{Key: "us_house", Districts: districtRange(8), MatchGroup: MatchGroupCongressional},
		{Key: "co_senate", Districts: districtRange(35), MatchGroup: MatchGroupStateSenate},
		{Key: "co_house", Districts: districtRange(65), MatchGroup: MatchGroupStateHouse},
		{Key: "co_county", Districts: districtRange(64), MatchGroup: MatchGroupCounty},
	}
}

// CommissionerDistrictType builds the county commissioner district type
// for a county, keyed like "elpaso_commissioner".
func CommissionerDistrictType(countyName string, countyNumber, districts int) DistrictType {
	key := strings.ToLower(strings.ReplaceAll(countyName, " ", "")) + "_commissioner"
	return DistrictType{
		Key:          key,
		Districts:    districtRange(districts),
		MatchGroup:   MatchGroupCounty,
		CountyNumber: countyNumber,
		CountyName:   countyName,
	}
}

// VoteTotals accumulates votes for one district, with the ordered list of
// counties that contributed them.
type VoteTotals struct {
	Counties   []string
	Democrat   int64
	Republican int64
	Other      int64
}

// Add accumulates votes for one party.
func (v *VoteTotals) Add(party Party, votes int64) {
	switch party {
	case PartyDemocrat:
		v.Democrat += votes
	case PartyRepublican:
		v.Republican += votes
	default:
		v.Other += votes
	}
}

// AddCounty records a contributing county, preserving first-seen order.
func (v *VoteTotals) AddCounty(name string) {
	for _, c := range v.Counties {
		if c == name {
			return
		}
	}
	v.Counties = append(v.Counties, name)
}

// TwoPartyTotal returns the combined Democrat and Republican vote count.
func (v *VoteTotals) TwoPartyTotal() int64 {
	return v.Democrat + v.Republican
}

// Results holds aggregated vote totals indexed by race key, district type
// key, and district number.
type Results struct {
	Year  int
	races []string
	types []DistrictType
	votes map[string]map[string]map[int]*VoteTotals
}

// NewResults initializes totals for every (race, type, district) cell so
// reports include zero rows for districts with no votes.
func NewResults(year int, raceKeys []string, types []DistrictType) *Results {
	r := &Results{
		Year:  year,
		races: append([]string(nil), raceKeys...),
		types: append([]DistrictType(nil), types...),
		votes: make(map[string]map[string]map[int]*VoteTotals),
	}
	for _, race := range r.races {
		r.votes[race] = make(map[string]map[int]*VoteTotals)
		for _, dt := range r.types {
			byDistrict := make(map[int]*VoteTotals, len(dt.Districts))
			for _, d := range dt.Districts {
				byDistrict[d] = &VoteTotals{}
			}
			r.votes[race][dt.Key] = byDistrict
		}
	}
	return r
}

// Races returns race keys in catalog order.
func (r *Results) Races() []string {
	return r.races
}

// Types returns the district types in declaration order.
func (r *Results) Types() []DistrictType {
	return r.types
}

// Totals returns the vote totals cell, or an error for unknown coordinates.
func (r *Results) Totals(race, typeKey string, district int) (*VoteTotals, error) {
	byType, ok := r.votes[race]
	if !ok {
		return nil, fmt.Errorf("unknown race %q", race)
	}
	byDistrict, ok := byType[typeKey]
	if !ok {
		return nil, fmt.Errorf("unknown district type %q", typeKey)
	}
	totals, ok := byDistrict[district]
	if !ok {
		return nil, fmt.Errorf("district %d out of range for %s", district, typeKey)
	}
	return totals, nil
}

// Districts returns the sorted district numbers recorded for a type.
func (r *Results) Districts(race, typeKey string) []int {
	byType, ok := r.votes[race]
	if !ok {
		return nil
	}
	byDistrict, ok := byType[typeKey]
	if !ok {
		return nil
	}
	out := make([]int, 0, len(byDistrict))
	for d := range byDistrict {
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}
