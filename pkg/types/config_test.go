// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractConfigWithDefaults(t *testing.T) {
	got := ExtractConfig{ImagePath: "data/leve4.jpeg"}.WithDefaults()

	assert.Equal(t, "data/leve4.jpeg", got.ImagePath)
	assert.Equal(t, DefaultModel, got.Model)
	assert.Equal(t, DefaultBaseURL, got.BaseURL)
	assert.Equal(t, DefaultOutputPath, got.OutputPath)
	assert.Equal(t, DefaultPrompt, got.Prompt)
	assert.Empty(t, got.APIKey)
	assert.Empty(t, got.MIMEType)
}

func TestExtractConfigWithDefaultsKeepsValues(t *testing.T) {
	cfg := ExtractConfig{
		AIConfig:   AIConfig{Model: "openai/gpt-4o", BaseURL: "http://localhost:8080/v1"},
		OutputPath: "out/points.csv",
		Prompt:     "List the points.",
	}
	assert.Equal(t, cfg, cfg.WithDefaults())
}

func TestExtractConfigRedacted(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{name: "empty key stays empty", key: "", want: ""},
		{name: "short key fully masked", key: "abc", want: "***"},
		{name: "long key keeps last four", key: "sk-or-v1-abcdef1234", want: "***************1234"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := ExtractConfig{AIConfig: AIConfig{APIKey: tt.key}}
			got := cfg.Redacted()
			assert.Equal(t, tt.want, got.APIKey)
			assert.Equal(t, tt.key, cfg.APIKey, "original must not change")
		})
	}
}
