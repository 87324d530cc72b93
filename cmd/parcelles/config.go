// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/parcelles/pkg/types"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration as YAML",
	Long: `Config prints the settings extract would use after merging flags,
environment, config file, secrets and defaults. The API key is masked. The
output is a valid parcelles.yaml once the key is filled in.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeConfigYAML(os.Stdout, resolveConfig(nil))
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// writeConfigYAML renders cfg with its API key masked.
func writeConfigYAML(w io.Writer, cfg types.ExtractConfig) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg.Redacted()); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}
