// Package output writes lookalike results as CSV or JSON and prints run summaries.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/hyperjump/lookalike/internal/models"
)

// Format is the output file format.
type Format string

const (
	// FormatCSV writes CustomerID,Lookalikes rows (default).
	FormatCSV Format = "csv"
	// FormatJSON writes the whole result as one JSON document.
	FormatJSON Format = "json"
)

// CSV header columns.
var csvHeader = []string{"CustomerID", "Lookalikes"}

// pair serializes a lookalike as a two-element JSON array: ["C0002",0.97].
type pair models.Lookalike

func (p pair) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{p.CustomerID, p.Score})
}

func (p *pair) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("lookalike pair: expected 2 elements, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &p.CustomerID); err != nil {
		return fmt.Errorf("lookalike pair id: %w", err)
	}
	if err := json.Unmarshal(raw[1], &p.Score); err != nil {
		return fmt.Errorf("lookalike pair score: %w", err)
	}
	return nil
}

// EncodePairs returns the JSON pair-list form of lookalikes.
func EncodePairs(lookalikes []models.Lookalike) (string, error) {
	pairs := make([]pair, len(lookalikes))
	for i, l := range lookalikes {
		pairs[i] = pair(l)
	}
	b, err := json.Marshal(pairs)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodePairs parses the JSON pair-list form written by EncodePairs.
func DecodePairs(s string) ([]models.Lookalike, error) {
	var pairs []pair
	if err := json.Unmarshal([]byte(s), &pairs); err != nil {
		return nil, err
	}
	out := make([]models.Lookalike, len(pairs))
	for i, p := range pairs {
		out[i] = models.Lookalike(p)
	}
	return out, nil
}

// WriteCSV writes a header and one row per entry.
func WriteCSV(w io.Writer, entries []models.LookalikeEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range entries {
		encoded, err := EncodePairs(e.Lookalikes)
		if err != nil {
			return fmt.Errorf("encode lookalikes for %s: %w", e.CustomerID, err)
		}
		if err := cw.Write([]string{e.CustomerID, encoded}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a file written by WriteCSV.
func ReadCSV(r io.Reader) ([]models.LookalikeEntry, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 || len(records[0]) != 2 || records[0][0] != csvHeader[0] || records[0][1] != csvHeader[1] {
		return nil, fmt.Errorf("unexpected lookalike header")
	}
	entries := make([]models.LookalikeEntry, 0, len(records)-1)
	for i, rec := range records[1:] {
		lookalikes, err := DecodePairs(rec[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, models.LookalikeEntry{CustomerID: rec[0], Lookalikes: lookalikes})
	}
	return entries, nil
}

// WriteJSON writes the whole result as indented JSON.
func WriteJSON(w io.Writer, result *models.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// WriteFile writes result to path in the given format, creating parent directories.
func WriteFile(path string, format Format, result *models.Result) (err error) {
	write := func(w io.Writer) error { return WriteCSV(w, result.Entries) }
	switch format {
	case FormatCSV, "":
	case FormatJSON:
		write = func(w io.Writer) error { return WriteJSON(w, result) }
	default:
		return fmt.Errorf("unknown output format: %s (supported: csv, json)", format)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output file: %w", cerr)
		}
	}()

	if err := write(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
