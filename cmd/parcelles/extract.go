// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/parcelles/internal/inference"
	"github.com/pdiddy/parcelles/internal/pipeline"
)

var extractCmd = &cobra.Command{
	Use:   "extract [image]",
	Short: "Read one survey plan image and save its coordinate rows as CSV",
	Long: `Extract encodes the image as a base64 data URL, sends it with the
extraction prompt to the configured model, prints the raw reply, and writes
every "B<n>, X, Y" row it contains to the output CSV. When the reply holds no
rows nothing is written and the command still succeeds.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().Bool("json", false, "print the run result as JSON on stdout (progress goes to stderr)")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := resolveConfig(args)
	if cfg.ImagePath == "" {
		return fmt.Errorf("provide an image path as argument, --image, or image_path in the config file")
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	var progress io.Writer = os.Stdout
	if jsonOutput {
		progress = os.Stderr
	}

	backend := inference.NewOpenRouter(cfg.AIConfig, nil)
	result, err := pipeline.Run(context.Background(), backend, cfg, progress)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	return nil
}
