package fileio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAnyMapsCSV(t *testing.T) {
	csv := "Player,ID\nLuka Doncic,77\n\u00A0Nikola Jokic\u00A0,15\n,,\n"
	rows, err := ReadAnyMaps(strings.NewReader(csv), "export.csv", 1)
	require.NoError(t, err)
	require.Len(t, rows, 2) // the all-empty row is dropped

	assert.Equal(t, "Luka Doncic", rows[0]["Player"])
	assert.Equal(t, "77", rows[0]["ID"])
	// NBSP padding trimmed
	assert.Equal(t, "Nikola Jokic", rows[1]["Player"])
}

func TestReadAnyMapsHeaderRow(t *testing.T) {
	csv := "league export 2025\nPlayer,ID\nLuka Doncic,77\n"
	rows, err := ReadAnyMaps(strings.NewReader(csv), "export.csv", 2)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Luka Doncic", rows[0]["Player"])
}

func TestReadAnyMapsEmptyHeaderCells(t *testing.T) {
	csv := ",ID\nLuka Doncic,77\n"
	rows, err := ReadAnyMaps(strings.NewReader(csv), "export.csv", 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Luka Doncic", rows[0]["Column 1"])
}

func TestReadAnyMapsUnsupported(t *testing.T) {
	_, err := ReadAnyMaps(strings.NewReader("x"), "export.pdf", 1)
	assert.Error(t, err)
}
