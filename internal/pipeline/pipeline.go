// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one extraction: encode the image, ask the model,
// scrape rows from the reply and write them to CSV.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/parcelles/internal/encode"
	"github.com/pdiddy/parcelles/internal/inference"
	"github.com/pdiddy/parcelles/internal/parcel"
	"github.com/pdiddy/parcelles/pkg/types"
)

// Result describes a finished run.
type Result struct {
	// Reply is the raw model output.
	Reply string `json:"reply"`

	// Rows are the matches found in Reply, in order.
	Rows []types.ParcelRow `json:"rows"`

	// OutputPath is the CSV written, empty when no rows were found.
	OutputPath string `json:"output_path,omitempty"`
}

// Written reports whether a CSV file was produced.
func (r Result) Written() bool {
	return r.OutputPath != ""
}

// Run executes the pipeline once with cfg and reports progress to w.
// A missing image fails with *encode.FileAccessError before the backend is
// called; a failed call returns the backend error and nothing is written.
// Finding no rows is a normal outcome: the output path is left untouched.
func Run(ctx context.Context, backend inference.Backend, cfg types.ExtractConfig, w io.Writer) (Result, error) {
	cfg = cfg.WithDefaults()

	dataURL, err := encode.DataURL(cfg.ImagePath, cfg.MIMEType)
	if err != nil {
		return Result{}, err
	}

	reply, err := backend.Complete(ctx, cfg.Prompt, dataURL)
	if err != nil {
		return Result{}, err
	}

	fmt.Fprintf(w, "Model reply:\n%s\n", reply)

	result := Result{Reply: reply, Rows: parcel.Extract(reply)}
	if len(result.Rows) == 0 {
		fmt.Fprintln(w, "\nNo valid rows found in model reply.")
		return result, nil
	}

	if err := parcel.WriteCSV(cfg.OutputPath, result.Rows); err != nil {
		return result, fmt.Errorf("writing CSV: %w", err)
	}
	result.OutputPath = cfg.OutputPath

	fmt.Fprintf(w, "\nCSV saved at: %s (%d rows)\n", result.OutputPath, len(result.Rows))
	return result, nil
}
