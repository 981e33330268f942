package election

import "fmt"

// PartisanIndex computes the two-party lean of a district:
// R/(D+R) - D/(D+R). Positive values lean Republican, negative lean
// Democratic. Districts with no two-party votes index at zero.
func PartisanIndex(v *VoteTotals) float64 {
	total := v.TwoPartyTotal()
	if total == 0 {
		return 0
	}
	return float64(v.Republican)/float64(total) - float64(v.Democrat)/float64(total)
}

// IndexRow is one district's partisan index pivot row.
type IndexRow struct {
	District int
	// ByRace holds the per-race index for each down-ballot race.
	ByRace map[string]float64
	// Average is the mean index across the down-ballot races.
	Average float64
}

// PartisanIndexTable builds the partisan index pivot for one district
// type, averaging the given down-ballot races. Every listed race must
// exist in the results.
func PartisanIndexTable(results *Results, typeKey string, downBallot []string) ([]IndexRow, error) {
	if len(downBallot) == 0 {
		return nil, fmt.Errorf("no down-ballot races given")
	}

	var table []IndexRow
	for _, dt := range results.Types() {
		if dt.Key != typeKey {
			continue
		}
		for _, district := range dt.Districts {
			row := IndexRow{
				District: district,
				ByRace:   make(map[string]float64, len(downBallot)),
			}
			var sum float64
			for _, race := range downBallot {
				totals, err := results.Totals(race, typeKey, district)
				if err != nil {
					return nil, err
				}
				index := PartisanIndex(totals)
				row.ByRace[race] = index
				sum += index
			}
			row.Average = sum / float64(len(downBallot))
			table = append(table, row)
		}
	}
	if table == nil {
		return nil, fmt.Errorf("unknown district type %q", typeKey)
	}
	return table, nil
}
