// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// CSVHeader is the header row of every output table.
var CSVHeader = []string{"Parcelle", "X", "Y"}

// ParcelRow is one boundary point scraped from a model reply. X and Y are
// kept as the exact text the model produced.
type ParcelRow struct {
	// Label is the point name, "B" followed by digits (e.g. "B12").
	Label string `json:"parcelle" yaml:"parcelle"`

	// X is the easting as written in the reply.
	X string `json:"x" yaml:"x"`

	// Y is the northing as written in the reply.
	Y string `json:"y" yaml:"y"`
}

// Record returns the row in CSV column order.
func (r ParcelRow) Record() []string {
	return []string{r.Label, r.X, r.Y}
}
