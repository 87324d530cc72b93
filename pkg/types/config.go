// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// Defaults carried over from the original extraction script.
const (
	DefaultModel      = "google/gemini-2.0-flash-exp:free"
	DefaultBaseURL    = "https://openrouter.ai/api/v1"
	DefaultOutputPath = "parcelles.csv"
	DefaultPrompt     = "Extract a table of Parcelle, X, Y coordinates from this image in CSV format."
)

// AIConfig holds settings for the remote chat completion endpoint.
type AIConfig struct {
	// Model is the remote model identifier (e.g. "google/gemini-2.0-flash-exp:free").
	Model string `json:"model" yaml:"model"`

	// APIKey is the bearer credential sent to the endpoint.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL is the OpenAI-compatible API root (e.g. "https://openrouter.ai/api/v1").
	BaseURL string `json:"base_url" yaml:"base_url"`
}

// ExtractConfig holds everything one extraction run needs. It is built once
// at startup and passed down; nothing reads configuration from globals.
type ExtractConfig struct {
	AIConfig `yaml:",inline"`

	// ImagePath is the local image submitted to the model.
	ImagePath string `json:"image_path" yaml:"image_path"`

	// OutputPath is where the CSV is written when rows are found.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// MIMEType overrides the data URL media type. Empty means detect.
	MIMEType string `json:"mime_type,omitempty" yaml:"mime_type,omitempty"`

	// Prompt is the instruction sent alongside the image.
	Prompt string `json:"prompt" yaml:"prompt"`
}

// WithDefaults returns a copy of c with empty fields filled from the
// package defaults. ImagePath, APIKey and MIMEType have no default.
func (c ExtractConfig) WithDefaults() ExtractConfig {
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.OutputPath == "" {
		c.OutputPath = DefaultOutputPath
	}
	if c.Prompt == "" {
		c.Prompt = DefaultPrompt
	}
	return c
}

// Redacted returns a copy of c safe to print: the API key keeps only its
// last four characters.
func (c ExtractConfig) Redacted() ExtractConfig {
	if c.APIKey == "" {
		return c
	}
	const visible = 4
	if len(c.APIKey) <= visible {
		c.APIKey = strings.Repeat("*", len(c.APIKey))
		return c
	}
	c.APIKey = strings.Repeat("*", len(c.APIKey)-visible) + c.APIKey[len(c.APIKey)-visible:]
	return c
}
