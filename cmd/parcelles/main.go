// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the parcelles CLI, which reads survey
// plan images with a multimodal model and saves the boundary points as CSV.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/parcelles/internal/secrets"
	"github.com/pdiddy/parcelles/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from the secrets directory at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback if set, otherwise the secret value for key.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the parcelles CLI.
var rootCmd = &cobra.Command{
	Use:   "parcelles",
	Short: "Extract parcel boundary coordinates from survey plan images",
	Long: `parcelles sends a survey plan image to a multimodal model through an
OpenAI-compatible API (OpenRouter by default), scrapes the "B<n>, X, Y" rows
out of the reply and writes them to a CSV file with the header Parcelle,X,Y.

Settings come from flags, PARCELLES_* environment variables, parcelles.yaml,
and the .secrets/ directory, in that order.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("secrets-dir")
		return loadSecrets(dir)
	},
}

// loadSecrets fills loadedSecrets from dir and lists the key names on stderr.
func loadSecrets(dir string) error {
	s, err := secrets.Load(dir)
	if err != nil {
		return err
	}
	loadedSecrets = s
	if len(s) > 0 {
		keys := make([]string, 0, len(s))
		for k := range s {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
	}
	return nil
}

// configFlags maps viper keys to the persistent flags that set them. The
// keys match the yaml tags of types.ExtractConfig.
var configFlags = []struct {
	key, flag, usage string
}{
	{"image_path", "image", "image file to read"},
	{"output_path", "output", "CSV file to write (default " + types.DefaultOutputPath + ")"},
	{"model", "model", "remote model identifier (default " + types.DefaultModel + ")"},
	{"api_key", "api-key", "API key (default: .secrets/" + secrets.OpenRouterAPIKey + ")"},
	{"base_url", "base-url", "OpenAI-compatible API root (default " + types.DefaultBaseURL + ")"},
	{"prompt", "prompt", "instruction sent with the image"},
	{"mime_type", "mime-type", "media type of the image (default: detect)"},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./parcelles.yaml or ~/.config/parcelles/config.yaml)")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets/", "directory of secret files")

	for _, f := range configFlags {
		rootCmd.PersistentFlags().String(f.flag, "", f.usage)
	}
	bindConfigFlags()
}

// bindConfigFlags attaches the persistent flags to their viper keys. A flag
// only overrides env and config file values once it has been set.
func bindConfigFlags() {
	for _, f := range configFlags {
		_ = viper.BindPFlag(f.key, rootCmd.PersistentFlags().Lookup(f.flag))
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("parcelles")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "parcelles"))
		}
	}

	viper.SetEnvPrefix("PARCELLES")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// resolveConfig builds the run configuration from viper and the secrets
// directory. An image given as the first argument wins over --image.
func resolveConfig(args []string) types.ExtractConfig {
	cfg := types.ExtractConfig{
		AIConfig: types.AIConfig{
			Model:   viper.GetString("model"),
			APIKey:  secretDefault(secrets.OpenRouterAPIKey, viper.GetString("api_key")),
			BaseURL: viper.GetString("base_url"),
		},
		ImagePath:  viper.GetString("image_path"),
		OutputPath: viper.GetString("output_path"),
		MIMEType:   viper.GetString("mime_type"),
		Prompt:     viper.GetString("prompt"),
	}
	if len(args) > 0 {
		cfg.ImagePath = args[0]
	}
	return cfg.WithDefaults()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
