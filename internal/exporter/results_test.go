package exporter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coloradocarlos/epc-redistricting-2023/internal/baf"
	"github.com/coloradocarlos/epc-redistricting-2023/internal/election"
)

func TestWriteRaceReports(t *testing.T) {
	writer, dir := newTestWriter(t)

	types := []election.DistrictType{election.CommissionerDistrictType("El Paso", 21, 2)}
	results := election.NewResults(2022, []string{"governor"}, types)

	totals, err := results.Totals("governor", "elpaso_commissioner", 1)
	require.NoError(t, err)
	totals.Add(election.PartyDemocrat, 1200)
	totals.Add(election.PartyRepublican, 2500)
	totals.Add(election.PartyOther, 33)
	totals.AddCounty("El Paso")

	written, err := writer.WriteRaceReports(results, "current")
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join("current", "2022_governor_by_elpaso_commissioner.csv")}, written)

	data, err := os.ReadFile(filepath.Join(dir, written[0]))
	require.NoError(t, err)
	assert.Equal(t,
		"district,counties,democrat,republican,other\n"+
			"1,El Paso,1200,2500,33\n"+
			"2,,0,0,0\n",
		string(data))
}

func TestWritePartisanIndex(t *testing.T) {
	writer, dir := newTestWriter(t)

	table := []election.IndexRow{
		{District: 1, ByRace: map[string]float64{"sheriff": 0.25, "assessor": -0.25}, Average: 0},
		{District: 2, ByRace: map[string]float64{"sheriff": 0.5, "assessor": 0.5}, Average: 0.5},
	}

	relPath, err := writer.WritePartisanIndex(2022, "countywide", "elpaso_commissioner",
		[]string{"assessor", "sheriff"}, table, "current")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("current", "2022_countywide_partisan_index_by_elpaso_commissioner.csv"), relPath)

	data, err := os.ReadFile(filepath.Join(dir, relPath))
	require.NoError(t, err)
	assert.Equal(t,
		"district,assessor,sheriff,partisan_index\n"+
			"1,-0.2500,0.2500,0.0000\n"+
			"2,0.5000,0.5000,0.5000\n",
		string(data))
}

func TestWriteBlockAssignments(t *testing.T) {
	writer, dir := newTestWriter(t)

	assignments := []baf.Assignment{
		{Block: "080410001001000", Precinct: "45", Overlap: 100},
		{Block: "080410001001001", Precinct: "102", Overlap: 50},
	}

	require.NoError(t, writer.WriteBlockAssignments(assignments, "precinct_block_assign_file.csv"))

	data, err := os.ReadFile(filepath.Join(dir, "precinct_block_assign_file.csv"))
	require.NoError(t, err)
	assert.Equal(t, "BLOCK,PRECINCT\n080410001001000,45\n080410001001001,102\n", string(data))
}
