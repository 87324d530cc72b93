// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package parcel scrapes boundary point rows out of free-text model replies
// and writes them as CSV.
package parcel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/pdiddy/parcelles/pkg/types"
)

// rowPattern matches "B<digits>, <x>, <y>" with optional spaces around the
// commas. X and Y only need to be runs of digits and dots.
var rowPattern = regexp.MustCompile(`(B\d+)\s*,\s*([\d.]+)\s*,\s*([\d.]+)`)

// Extract returns every non-overlapping row in reply, left to right. Rows
// are not deduplicated and coordinates are not parsed. The result is never
// nil, so an empty table encodes as [] rather than null.
func Extract(reply string) []types.ParcelRow {
	matches := rowPattern.FindAllStringSubmatch(reply, -1)
	rows := make([]types.ParcelRow, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, types.ParcelRow{Label: m[1], X: m[2], Y: m[3]})
	}
	return rows
}

// WriteCSV writes the header and rows to path, creating parent directories
// as needed. The table is written to a temporary file in the same directory
// and renamed over path, so a failed write leaves any previous file intact.
// Callers skip the call entirely when there are no rows.
func WriteCSV(path string, rows []types.ParcelRow) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary file for %s: %w", path, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once renamed

	if err := writeRows(tmp, rows); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("setting mode on %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// writeRows encodes the header and rows as CSV.
func writeRows(w io.Writer, rows []types.ParcelRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(types.CSVHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(r.Record()); err != nil {
			return fmt.Errorf("writing row %s: %w", r.Label, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing rows: %w", err)
	}
	return nil
}
