package election

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogForYear(t *testing.T) {
	c2022, err := CatalogForYear(2022)
	require.NoError(t, err)
	assert.Equal(t, "Office", c2022.OfficeColumn)
	assert.Equal(t, "Votes", c2022.VotesColumn)
	assert.Equal(t, []string{"governor", "sec_of_state", "state_treasurer", "attorney_general", "boe_at_large"}, c2022.StatewideKeys())

	c2020, err := CatalogForYear(2020)
	require.NoError(t, err)
	assert.Equal(t, "Office/Issue/Judgeship", c2020.OfficeColumn)
	assert.Equal(t, "Candidate Votes", c2020.VotesColumn)
	assert.Equal(t, []string{"us_president", "us_senator"}, c2020.StatewideKeys())

	c2016, err := CatalogForYear(2016)
	require.NoError(t, err)
	assert.Contains(t, c2016.StatewideKeys(), "regent_at_large")

	_, err = CatalogForYear(2018)
	assert.Error(t, err)
}

func TestMatchOffice(t *testing.T) {
	c, err := CatalogForYear(2022)
	require.NoError(t, err)

	assert.Equal(t, "governor", c.MatchOffice("Governor/Lieutenant Governor"))
	assert.Equal(t, "boe_at_large", c.MatchOffice("State Board of Education Member - At Large"))
	assert.Equal(t, "", c.MatchOffice("State Senate - District 11"))
	assert.Equal(t, "", c.MatchOffice(""))
}

func TestCountywideRaces(t *testing.T) {
	assert.Equal(t, []string{"assessor", "car", "sheriff", "county_treasurer"}, CountywideRaces(2022))
	assert.Nil(t, CountywideRaces(2020))
}

func TestDownBallotRaces(t *testing.T) {
	assert.Equal(t, []string{"state_treasurer", "attorney_general", "boe_at_large"}, DownBallotStatewide())
	assert.Equal(t, []string{"assessor", "car", "sheriff", "county_treasurer"}, DownBallotCountywide())
}

func TestSupportedYears(t *testing.T) {
	years := SupportedYears()
	assert.ElementsMatch(t, []int{2016, 2020, 2022}, years)
}
