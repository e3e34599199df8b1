package reader

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() *Table {
	return &Table{
		Columns: []Column{
			{Name: "保单号", Values: []string{"P001", "P002"}},
			{Name: "手机号", Values: []string{"10012345678", "10087654321"}},
		},
	}
}

func TestWriteFile_CSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteFile(path, sampleTable()))

	got, err := ReadFile(path, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"保单号", "手机号"}, got.Headers())
	assert.Equal(t, []string{"P001", "P002"}, got.Columns[0].Values)
}

func TestWriteFile_ExcelRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	tbl := sampleTable()
	tbl.Sheet = "明细"
	require.NoError(t, WriteFile(path, tbl))

	got, err := ReadFile(path, "明细")
	require.NoError(t, err)
	assert.Equal(t, []string{"保单号", "手机号"}, got.Headers())
	assert.Equal(t, []string{"10012345678", "10087654321"}, got.Columns[1].Values)
}

func TestWriteFile_UnsupportedExtension(t *testing.T) {
	err := WriteFile("out.parquet", sampleTable())
	assert.ErrorContains(t, err, "unsupported output type")
}
