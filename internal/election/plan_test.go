package election

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadPrecinctTable(t *testing.T) {
	path := writeFixture(t, "epc_precincts.csv", "PRECINCT,COM_DIST\n45,3\n102,1\n")

	table, err := LoadPrecinctTable(path)
	require.NoError(t, err)

	district, ok := table.Resolve(45)
	require.True(t, ok)
	assert.Equal(t, 3, district)

	district, ok = table.Resolve(102)
	require.True(t, ok)
	assert.Equal(t, 1, district)

	_, ok = table.Resolve(999)
	assert.False(t, ok)
}

func TestLoadPrecinctTableInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad precinct", "PRECINCT,COM_DIST\nabc,3\n"},
		{"bad district", "PRECINCT,COM_DIST\n45,x\n"},
		{"no rows", "PRECINCT,COM_DIST\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFixture(t, "bad.csv", tt.content)
			_, err := LoadPrecinctTable(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadBlockAssignments(t *testing.T) {
	t.Run("BLOCK and DISTRICT headers", func(t *testing.T) {
		path := writeFixture(t, "plan.csv", "BLOCK,DISTRICT\n080410001001000,4\n080410001001001,2\n")
		assignments, err := LoadBlockAssignments(path)
		require.NoError(t, err)
		assert.Equal(t, 4, assignments["080410001001000"])
		assert.Equal(t, 2, assignments["080410001001001"])
	})

	t.Run("GEOID20 and District headers", func(t *testing.T) {
		path := writeFixture(t, "plan.csv", "GEOID20,District\n080410001001000,5\n")
		assignments, err := LoadBlockAssignments(path)
		require.NoError(t, err)
		assert.Equal(t, 5, assignments["080410001001000"])
	})

	t.Run("too few columns", func(t *testing.T) {
		path := writeFixture(t, "plan.csv", "BLOCK\n080410001001000\n")
		_, err := LoadBlockAssignments(path)
		assert.Error(t, err)
	})

	t.Run("bad district value", func(t *testing.T) {
		path := writeFixture(t, "plan.csv", "BLOCK,DISTRICT\n080410001001000,x\n")
		_, err := LoadBlockAssignments(path)
		assert.Error(t, err)
	})
}

func TestLoadPrecinctBAF(t *testing.T) {
	path := writeFixture(t, "baf.csv", "BLOCK,PRECINCT\n080410001001000,45\n080410001001001,45\n080410002002000,102\n")

	precinctToBlock, err := LoadPrecinctBAF(path)
	require.NoError(t, err)

	// Later rows for the same precinct win.
	assert.Equal(t, "080410001001001", precinctToBlock[45])
	assert.Equal(t, "080410002002000", precinctToBlock[102])
}

func TestPlanResolver(t *testing.T) {
	resolver := NewPlanResolver(
		map[int]string{45: "080410001001000"},
		map[string]int{"080410001001000": 4},
		slog.Default(),
	)

	district, ok := resolver.Resolve(45)
	require.True(t, ok)
	assert.Equal(t, 4, district)

	// Unmapped precinct.
	_, ok = resolver.Resolve(999)
	assert.False(t, ok)

	// Mapped precinct whose block is absent from the plan.
	resolver = NewPlanResolver(
		map[int]string{45: "080410009999000"},
		map[string]int{"080410001001000": 4},
		slog.Default(),
	)
	_, ok = resolver.Resolve(45)
	assert.False(t, ok)
}
