package output

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperjump/lookalike/internal/models"
)

func sampleResult() *models.Result {
	return &models.Result{
		RunID:     "run-1",
		Customers: 4,
		Entries: []models.LookalikeEntry{
			{CustomerID: "C0001", Lookalikes: []models.Lookalike{
				{CustomerID: "C0003", Score: 0.9731234567890123},
				{CustomerID: "C0002", Score: 0.5},
			}},
			{CustomerID: "C0004"},
		},
		MeanScore:  0.7365617283945062,
		Categories: []string{"Books"},
	}
}

func TestEncodePairs(t *testing.T) {
	got, err := EncodePairs([]models.Lookalike{{CustomerID: "C0002", Score: 0.25}, {CustomerID: "C0107", Score: 1}})
	require.NoError(t, err)
	assert.Equal(t, `[["C0002",0.25],["C0107",1]]`, got)

	empty, err := EncodePairs(nil)
	require.NoError(t, err)
	assert.Equal(t, `[]`, empty)
}

func TestDecodePairs_invalid(t *testing.T) {
	for _, in := range []string{`[["C1"]]`, `[["C1", "x"]]`, `not json`, `[[1, 0.5]]`} {
		_, err := DecodePairs(in)
		assert.Error(t, err, in)
	}
}

func TestWriteCSV_roundTrip(t *testing.T) {
	result := sampleResult()
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, result.Entries))
	assert.True(t, strings.HasPrefix(buf.String(), "CustomerID,Lookalikes\n"))

	entries, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, result.Entries[0], entries[0])
	assert.Equal(t, "C0004", entries[1].CustomerID)
	assert.Empty(t, entries[1].Lookalikes)
}

func TestReadCSV_badHeader(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("id,list\nC1,[]\n"))
	assert.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	result := sampleResult()

	csvPath := filepath.Join(dir, "nested", "Lookalike.csv")
	require.NoError(t, WriteFile(csvPath, FormatCSV, result))
	f, err := os.Open(csvPath)
	require.NoError(t, err)
	defer f.Close()
	entries, err := ReadCSV(f)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	jsonPath := filepath.Join(dir, "Lookalike.json")
	require.NoError(t, WriteFile(jsonPath, FormatJSON, result))
	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var decoded models.Result
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "run-1", decoded.RunID)
	assert.Equal(t, result.Entries[0].Lookalikes, decoded.Entries[0].Lookalikes)

	assert.Error(t, WriteFile(filepath.Join(dir, "x.xml"), Format("xml"), result))
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	r := sampleResult()
	r.Skipped = []string{"C9999"}
	WriteSummary(&buf, r)
	out := buf.String()
	assert.Contains(t, out, "C0001 -> C0003 (0.9731), C0002 (0.5000)")
	assert.Contains(t, out, "Skipped (no transactions): C9999")
	assert.Contains(t, out, "Mean similarity score: 0.7366")
}
