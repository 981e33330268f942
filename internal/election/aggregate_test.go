package election

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Precinct 5120721045 decodes to us_house 5, co_senate 12, co_house 7,
// county 21 (El Paso), short precinct 45.
const epcPrecinct = "5120721045"

// Precinct 1010216002 decodes to county 16 (Denver).
const denverPrecinct = "1010216002"

func newTestAggregator(t *testing.T, year int) *Aggregator {
	t.Helper()
	catalog, err := CatalogForYear(year)
	require.NoError(t, err)
	assigner := NewAssigner(year, elPasoTypes(), slog.Default(),
		WithCommissionerResolver(PrecinctTable{45: 3}),
		WithProvisionalTable(DefaultProvisionalTable()))
	return NewAggregator(catalog, elPasoTypes(), assigner, "El Paso", slog.Default())
}

func TestIngestStatewide2022(t *testing.T) {
	path := writeFixture(t, "statewide.csv",
		"County,Precinct,Office,Party,Votes\n"+
			"El Paso,"+epcPrecinct+",Governor/Lieutenant Governor,DEM,\"1,200\"\n"+
			"El Paso,"+epcPrecinct+",Governor/Lieutenant Governor,REP,2500\n"+
			"El Paso,"+epcPrecinct+",Governor/Lieutenant Governor,LBR,33\n"+
			"El Paso,"+epcPrecinct+",State Senate - District 12,DEM,999\n"+
			"Denver,"+denverPrecinct+",Governor/Lieutenant Governor,DEM,400\n")

	agg := newTestAggregator(t, 2022)
	require.NoError(t, agg.IngestStatewide(path))
	results := agg.Results()

	totals, err := results.Totals("governor", "elpaso_commissioner", 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1200), totals.Democrat)
	assert.Equal(t, int64(2500), totals.Republican)
	assert.Equal(t, int64(33), totals.Other)
	assert.Equal(t, []string{"El Paso"}, totals.Counties)

	// Denver's row counts toward statewide types but not the commissioner type.
	usHouse, err := results.Totals("governor", "us_house", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(400), usHouse.Democrat)

	// The non-catalog State Senate race is ignored.
	for _, race := range results.Races() {
		if race == "governor" {
			continue
		}
		totals, err := results.Totals(race, "co_senate", 12)
		require.NoError(t, err)
		assert.Zero(t, totals.Democrat, race)
	}
}

func TestIngestStatewide2020PartyNames(t *testing.T) {
	path := writeFixture(t, "statewide.csv",
		"County,Precinct,Office/Issue/Judgeship,Party,Candidate Votes\n"+
			"El Paso,"+epcPrecinct+",President/Vice President,Democratic Party,100\n"+
			"El Paso,"+epcPrecinct+",President/Vice President,Republican Party,300\n"+
			"El Paso,"+epcPrecinct+",President/Vice President,Approval Voting Party,5\n")

	agg := newTestAggregator(t, 2020)
	require.NoError(t, agg.IngestStatewide(path))

	totals, err := agg.Results().Totals("us_president", "elpaso_commissioner", 3)
	require.NoError(t, err)
	assert.Equal(t, int64(100), totals.Democrat)
	assert.Equal(t, int64(300), totals.Republican)
	assert.Equal(t, int64(5), totals.Other)
}

func TestIngestStatewideProvisionalRows(t *testing.T) {
	// 2016 Larimer provisional rows resolve through the guess table.
	path := writeFixture(t, "statewide.csv",
		"County,Precinct,Office/Issue/Judgeship,Party,Candidate Votes\n"+
			"Larimer,Provisional,President/Vice President,Democratic Party,12\n")

	agg := newTestAggregator(t, 2016)
	require.NoError(t, agg.IngestStatewide(path))

	totals, err := agg.Results().Totals("us_president", "co_house", 49)
	require.NoError(t, err)
	assert.Equal(t, int64(12), totals.Democrat)
}

func TestIngestStatewideUnknownProvisionalSkipped(t *testing.T) {
	// No guess table entry for 2022; the row is skipped, not fatal.
	path := writeFixture(t, "statewide.csv",
		"County,Precinct,Office,Party,Votes\n"+
			"Denver,Provisional,Governor/Lieutenant Governor,DEM,12\n"+
			"El Paso,"+epcPrecinct+",Governor/Lieutenant Governor,DEM,90\n")

	agg := newTestAggregator(t, 2022)
	require.NoError(t, agg.IngestStatewide(path))

	totals, err := agg.Results().Totals("governor", "elpaso_commissioner", 3)
	require.NoError(t, err)
	assert.Equal(t, int64(90), totals.Democrat)
}

func TestIngestStatewideBadPrecinct(t *testing.T) {
	path := writeFixture(t, "statewide.csv",
		"County,Precinct,Office,Party,Votes\n"+
			"El Paso,badnumber,Governor/Lieutenant Governor,DEM,12\n")

	agg := newTestAggregator(t, 2022)
	assert.Error(t, agg.IngestStatewide(path))
}

func TestIngestStatewideBadVotes(t *testing.T) {
	path := writeFixture(t, "statewide.csv",
		"County,Precinct,Office,Party,Votes\n"+
			"El Paso,"+epcPrecinct+",Governor/Lieutenant Governor,DEM,not-a-number\n")

	agg := newTestAggregator(t, 2022)
	assert.Error(t, agg.IngestStatewide(path))
}

func TestIngestCountywide(t *testing.T) {
	path := writeFixture(t, "sovc.csv",
		"Precinct,John Doe (DEM),Jane Roe (REP)\n"+
			epcPrecinct+",\"1,050\",2000\n"+
			epcPrecinct+",****,150\n")

	agg := newTestAggregator(t, 2022)
	require.NoError(t, agg.IngestCountywide("sheriff", path))

	totals, err := agg.Results().Totals("sheriff", "elpaso_commissioner", 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1050), totals.Democrat, "masked votes count as zero")
	assert.Equal(t, int64(2150), totals.Republican)
	assert.Zero(t, totals.Other)
	assert.Equal(t, []string{"El Paso"}, totals.Counties)
}

func TestIngestCountywideRequiresTwoParties(t *testing.T) {
	path := writeFixture(t, "sovc.csv",
		"Precinct,John Doe (DEM)\n"+epcPrecinct+",100\n")

	agg := newTestAggregator(t, 2022)
	err := agg.IngestCountywide("sheriff", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "two party")
}

func TestIngestCountywideProvisionalFatal(t *testing.T) {
	agg := NewAggregator(
		mustCatalog(t, 2022),
		[]DistrictType{CommissionerDistrictType("El Paso", 21, 5)},
		NewAssigner(2022, []DistrictType{CommissionerDistrictType("El Paso", 21, 5)}, slog.Default(),
			WithCommissionerResolver(PrecinctTable{45: 3})),
		"El Paso", slog.Default())

	path := writeFixture(t, "sovc.csv",
		"Precinct,John Doe (DEM),Jane Roe (REP)\nProvisional,1,2\n")

	err := agg.IngestCountywide("sheriff", path)
	assert.ErrorIs(t, err, ErrProvisionalUnsupported)
}

func mustCatalog(t *testing.T, year int) RaceCatalog {
	t.Helper()
	c, err := CatalogForYear(year)
	require.NoError(t, err)
	return c
}
