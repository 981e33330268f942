package baf

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAttributeTable(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "attribute_table.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestGenerate(t *testing.T) {
	path := writeAttributeTable(t,
		"PRECINCT,GEOID20,ZOVERLAP\n"+
			"45,080410001001000,1000.5\n"+
			"102,080410001001001,250.0\n")

	assignments, summary, err := Generate(path, slog.Default())
	require.NoError(t, err)

	require.Len(t, assignments, 2)
	assert.Equal(t, Assignment{Block: "080410001001000", Precinct: "45", Overlap: 1000.5}, assignments[0])
	assert.Equal(t, Assignment{Block: "080410001001001", Precinct: "102", Overlap: 250.0}, assignments[1])

	assert.Equal(t, Summary{TotalRows: 2, BlocksNotSplit: 2, SplitRows: 0, DistinctBlocks: 2}, summary)
}

func TestGenerateSplitBlockKeepsLargestOverlap(t *testing.T) {
	path := writeAttributeTable(t,
		"PRECINCT,GEOID20,ZOVERLAP\n"+
			"45,080410001001000,100.0\n"+
			"102,080410001001000,900.0\n"+
			"7,080410001001000,300.0\n")

	assignments, summary, err := Generate(path, slog.Default())
	require.NoError(t, err)

	require.Len(t, assignments, 1)
	assert.Equal(t, "102", assignments[0].Precinct)
	assert.Equal(t, 900.0, assignments[0].Overlap)

	assert.Equal(t, 3, summary.TotalRows)
	assert.Equal(t, 1, summary.BlocksNotSplit)
	assert.Equal(t, 2, summary.SplitRows)
	assert.Equal(t, 1, summary.DistinctBlocks)
}

func TestGenerateTieKeepsFirstSeen(t *testing.T) {
	path := writeAttributeTable(t,
		"PRECINCT,GEOID20,ZOVERLAP\n"+
			"45,080410001001000,500.0\n"+
			"102,080410001001000,500.0\n")

	assignments, _, err := Generate(path, slog.Default())
	require.NoError(t, err)

	require.Len(t, assignments, 1)
	assert.Equal(t, "45", assignments[0].Precinct)
}

func TestGeneratePreservesFirstSeenOrder(t *testing.T) {
	path := writeAttributeTable(t,
		"PRECINCT,GEOID20,ZOVERLAP\n"+
			"45,B3,1.0\n"+
			"45,B1,1.0\n"+
			"102,B3,2.0\n"+
			"45,B2,1.0\n")

	assignments, _, err := Generate(path, slog.Default())
	require.NoError(t, err)

	blocks := make([]string, len(assignments))
	for i, a := range assignments {
		blocks[i] = a.Block
	}
	assert.Equal(t, []string{"B3", "B1", "B2"}, blocks)
	assert.Equal(t, "102", assignments[0].Precinct)
}

func TestGenerateBadInput(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing overlap value", "PRECINCT,GEOID20,ZOVERLAP\n45,080410001001000,\n"},
		{"bad overlap value", "PRECINCT,GEOID20,ZOVERLAP\n45,080410001001000,abc\n"},
		{"missing block column", "PRECINCT,ZOVERLAP\n45,1.0\n"},
		{"missing precinct value", "PRECINCT,GEOID20,ZOVERLAP\n,080410001001000,1.0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeAttributeTable(t, tt.content)
			_, _, err := Generate(path, slog.Default())
			assert.Error(t, err)
		})
	}
}
