package exporter

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWriter(t *testing.T) (*CSVWriter, string) {
	t.Helper()
	dir := t.TempDir()
	return NewCSVWriter(dir, slog.Default()), dir
}

func TestWriteSimpleCSV(t *testing.T) {
	writer, dir := newTestWriter(t)

	err := writer.WriteSimpleCSV("out/test.csv",
		[]string{"district", "democrat"},
		[][]string{{"1", "100"}, {"2", "200"}})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "out", "test.csv"))
	require.NoError(t, err)
	assert.Equal(t, "district,democrat\n1,100\n2,200\n", string(data))
}

func TestWriteCSVWithBOM(t *testing.T) {
	writer, dir := newTestWriter(t)

	err := writer.WriteCSV("bom.csv", WriteOptions{
		Headers:   []string{"a"},
		Records:   [][]string{{"1"}},
		BOMPrefix: true,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "bom.csv"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, data[:3])
}

func TestWriteCSVAbsolutePath(t *testing.T) {
	writer, _ := newTestWriter(t)
	target := filepath.Join(t.TempDir(), "abs.csv")

	require.NoError(t, writer.WriteSimpleCSV(target, []string{"x"}, [][]string{{"1"}}))

	_, err := os.Stat(target)
	assert.NoError(t, err)
}

func TestWriteCSVQuoting(t *testing.T) {
	writer, dir := newTestWriter(t)

	err := writer.WriteSimpleCSV("quoted.csv",
		[]string{"district", "counties"},
		[][]string{{"1", "El Paso - Teller, Park"}})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "quoted.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"El Paso - Teller, Park"`)
}

func TestStreamWriter(t *testing.T) {
	writer, dir := newTestWriter(t)

	stream, err := writer.CreateStreamWriter("stream.csv", []string{"BLOCK", "PRECINCT"})
	require.NoError(t, err)

	require.NoError(t, stream.WriteRecord([]string{"080410001001000", "45"}))
	require.NoError(t, stream.WriteRecord([]string{"080410001001001", "102"}))
	require.NoError(t, stream.Close())

	data, err := os.ReadFile(filepath.Join(dir, "stream.csv"))
	require.NoError(t, err)
	assert.Equal(t, "BLOCK,PRECINCT\n080410001001000,45\n080410001001001,102\n", string(data))
}

func TestFormatIndex(t *testing.T) {
	assert.Equal(t, "0.5000", formatIndex(0.5))
	assert.Equal(t, "-0.1234", formatIndex(-0.12341))
	assert.Equal(t, "0.0000", formatIndex(0))
}

func TestJoinCounties(t *testing.T) {
	assert.Equal(t, "", joinCounties(nil))
	assert.Equal(t, "El Paso", joinCounties([]string{"El Paso"}))
	assert.Equal(t, "El Paso - Teller", joinCounties([]string{"El Paso", "Teller"}))
}
