// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parcel

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/parcelles/pkg/types"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  []types.ParcelRow
	}{
		{
			name:  "single compact row",
			reply: "B1,427094.70,712773.67",
			want:  []types.ParcelRow{{Label: "B1", X: "427094.70", Y: "712773.67"}},
		},
		{
			name:  "irregular spacing",
			reply: "B2, 100, 200",
			want:  []types.ParcelRow{{Label: "B2", X: "100", Y: "200"}},
		},
		{
			name:  "no rows",
			reply: "No data available.",
			want:  []types.ParcelRow{},
		},
		{
			name:  "interleaved with prose keeps order",
			reply: "Row one: B1,1,2 some text B2,3,4 end",
			want: []types.ParcelRow{
				{Label: "B1", X: "1", Y: "2"},
				{Label: "B2", X: "3", Y: "4"},
			},
		},
		{
			name: "csv block inside markdown fence",
			reply: "Here is the table:\n```csv\nParcelle,X,Y\nB1,427094.70,712773.67\nB2,427120.15,712790.02\n```\n",
			want: []types.ParcelRow{
				{Label: "B1", X: "427094.70", Y: "712773.67"},
				{Label: "B2", X: "427120.15", Y: "712790.02"},
			},
		},
		{
			name:  "separator spans a line break",
			reply: "B7 ,\n10.5 ,\t20.25",
			want:  []types.ParcelRow{{Label: "B7", X: "10.5", Y: "20.25"}},
		},
		{
			name:  "duplicate labels are kept",
			reply: "B1,1,2\nB1,1,2",
			want: []types.ParcelRow{
				{Label: "B1", X: "1", Y: "2"},
				{Label: "B1", X: "1", Y: "2"},
			},
		},
		{
			name:  "malformed decimal still matches the character class",
			reply: "B3,1.2.3,4",
			want:  []types.ParcelRow{{Label: "B3", X: "1.2.3", Y: "4"}},
		},
		{
			name:  "label embedded in a longer word",
			reply: "PB12,5,6",
			want:  []types.ParcelRow{{Label: "B12", X: "5", Y: "6"}},
		},
		{
			name:  "lowercase b is not a label",
			reply: "b1,5,6",
			want:  []types.ParcelRow{},
		},
		{
			name:  "semicolon separated rows do not match",
			reply: "B1;427094.70;712773.67",
			want:  []types.ParcelRow{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.reply))
		})
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parcelles.csv")
	rows := []types.ParcelRow{
		{Label: "B1", X: "427094.70", Y: "712773.67"},
		{Label: "B2", X: "100", Y: "200"},
	}

	require.NoError(t, WriteCSV(path, rows))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Parcelle,X,Y\nB1,427094.70,712773.67\nB2,100,200\n", string(data))
}

func TestWriteCSVCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "points.csv")

	require.NoError(t, WriteCSV(path, []types.ParcelRow{{Label: "B1", X: "1", Y: "2"}}))
	assert.FileExists(t, path)
}

func TestWriteCSVOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parcelles.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale content that is longer than the new file\n"), 0o644))

	require.NoError(t, WriteCSV(path, []types.ParcelRow{{Label: "B9", X: "9", Y: "9"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Parcelle,X,Y\nB9,9,9\n", string(data))
}

func TestWriteCSVLeavesNoTemporaryFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "parcelles.csv")

	require.NoError(t, WriteCSV(path, []types.ParcelRow{{Label: "B1", X: "1", Y: "2"}}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "parcelles.csv", entries[0].Name())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestWriteCSVFailureKeepsTarget(t *testing.T) {
	dir := t.TempDir()
	// A non-empty directory at the target path cannot be replaced by a file.
	path := filepath.Join(dir, "parcelles.csv")
	require.NoError(t, os.Mkdir(path, 0o755))
	keep := filepath.Join(path, "previous.csv")
	require.NoError(t, os.WriteFile(keep, []byte("Parcelle,X,Y\nB5,5,5\n"), 0o644))

	err := WriteCSV(path, []types.ParcelRow{{Label: "B1", X: "1", Y: "2"}})
	require.Error(t, err)

	data, err := os.ReadFile(keep)
	require.NoError(t, err)
	assert.Equal(t, "Parcelle,X,Y\nB5,5,5\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary file must be removed")
}

// failingWriter accepts n bytes, then errors.
type failingWriter struct{ n int }

func (f *failingWriter) Write(p []byte) (int, error) {
	if len(p) > f.n {
		return 0, errors.New("disk full")
	}
	f.n -= len(p)
	return len(p), nil
}

func TestWriteRowsReportsWriteErrors(t *testing.T) {
	err := writeRows(&failingWriter{n: 0}, []types.ParcelRow{{Label: "B1", X: "1", Y: "2"}})
	assert.ErrorContains(t, err, "disk full")
}
