package election

// ProvisionalTable maps election year and county to best-guess district
// assignments for provisional rows, keyed by district type.
type ProvisionalTable map[int]map[string]map[string]int

// Lookup returns the district guesses for a year and county.
func (t ProvisionalTable) Lookup(year int, county string) (map[string]int, bool) {
	byCounty, ok := t[year]
	if !ok {
		return nil, false
	}
	guesses, ok := byCounty[county]
	return guesses, ok
}

// DefaultProvisionalTable returns the known provisional precinct
// assignments. These are educated guesses from the contents of the SOS
// files: low-count provisional precincts are published without precinct
// numbers, so the districts are inferred from the county's other rows.
// Counties spanning several districts are annotated with the plausible
// alternatives.
func DefaultProvisionalTable() ProvisionalTable {
	return ProvisionalTable{
		2016: {
			"Larimer": {
				"us_house":  2,
				"co_senate": 14, // Could also be 52, 53
				"co_house":  49,
				"co_county": 35,
			},
		},
		2014: {
			"Larimer": {
				"us_house":  2,
				"co_senate": 15,
				"co_house":  49, // Could also be 52, 53
				"co_county": 35,
			},
			"Summit": {
				"us_house":  2,
				"co_senate": 8,
				"co_house":  61,
				"co_county": 59,
			},
			"Rio Grande": {
				"us_house":  3,
				"co_senate": 35,
				"co_house":  62,
				"co_county": 53,
			},
		},
		2012: {
			"Archuleta": {
				"us_house":  3,
				"co_senate": 6,
				"co_house":  59,
				"co_county": 4,
			},
			"Broomfield": {
				"us_house":  2,
				"co_senate": 23,
				"co_house":  33,
				"co_county": 64,
			},
			"Clear Creek": {
				"us_house":  2,
				"co_senate": 2,
				"co_house":  13,
				"co_county": 10,
			},
			"Conejos": {
				"us_house":  3,
				"co_senate": 35,
				"co_house":  62,
				"co_county": 11,
			},
			"Delta": {
				"us_house":  3,
				"co_senate": 5,
				"co_house":  61, // Could be 54
				"co_county": 15,
			},
			"Dolores": {
				"us_house":  3,
				"co_senate": 6,
				"co_house":  58,
				"co_county": 17,
			},
			"Douglas": {
				"us_house":  6,  // Could be 4
				"co_senate": 30, // Could be 4
				"co_house":  43, // Could be 39, 44, 45
				"co_county": 18,
			},
			"Fremont": {
				"us_house":  5,
				"co_senate": 2,
				"co_house":  60, // Could be 47
				"co_county": 22,
			},
			"Grand": {
				"us_house":  2,
				"co_senate": 8,
				"co_house":  13,
				"co_county": 25,
			},
			"Gunnison": {
				"us_house":  3,
				"co_senate": 5,
				"co_house":  61, // Could be 59
				"co_county": 26,
			},
			"Jackson": {
				"us_house":  3,
				"co_senate": 8,
				"co_house":  13,
				"co_county": 29,
			},
			"Kit Carson": {
				"us_house":  4,
				"co_senate": 1,
				"co_house":  65,
				"co_county": 32,
			},
			"Larimer": {
				"us_house":  2,
				"co_senate": 14, // Could be 23
				"co_house":  52, // Could be 49, 51, 53
				"co_county": 35,
			},
			"Moffat": {
				"us_house":  3,
				"co_senate": 8,
				"co_house":  57,
				"co_county": 41,
			},
			"Montrose": {
				"us_house":  3,
				"co_senate": 6,
				"co_house":  58,
				"co_county": 43,
			},
			"Pitkin": {
				"us_house":  3,
				"co_senate": 5,
				"co_house":  61,
				"co_county": 49,
			},
			"Rio Blanco": {
				"us_house":  3,
				"co_senate": 8,
				"co_house":  57,
				"co_county": 52,
			},
			"Summit": {
				"us_house":  2,
				"co_senate": 8,
				"co_house":  61,
				"co_county": 59,
			},
			"Weld": {
				"us_house":  4,
				"co_senate": 23,
				"co_house":  63, // Could be 48, 49, 50
				"co_county": 62,
			},
			"Yuma": {
				"us_house":  4,
				"co_senate": 1,
				"co_house":  65,
				"co_county": 63,
			},
		},
	}
}
