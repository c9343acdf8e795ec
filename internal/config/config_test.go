package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name              string
		configContent     string
		env               map[string]string
		wantErr           bool
		wantErrorContains []string
		assertConfig      func(t *testing.T, cfg *Config)
	}{
		{
			name:          "defaults when no config file exists",
			configContent: "",
			assertConfig: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 10, cfg.Review.CountdownTicks)
				assert.Equal(t, time.Second, cfg.Review.TickInterval)
				assert.Equal(t, 1500*time.Millisecond, cfg.Review.FeedbackDelay)
				assert.Equal(t, 500*time.Millisecond, cfg.Review.AudioDelay)
				assert.Equal(t, 2, cfg.Review.FuzzyThreshold)
				assert.Equal(t, 5, cfg.Match.PageSize)
				assert.Equal(t, "fr", cfg.Speech.Language)
				assert.InDelta(t, 0.8, cfg.Speech.Rate, 1e-9)
				assert.Equal(t, filepath.Join("data", "decks"), cfg.Data.DecksDirectory)
				assert.Equal(t, "en", cfg.UI.Language)
			},
		},
		{
			name: "custom values from a config file",
			configContent: `review:
  countdown_ticks: 15
  tick_interval: 500ms
  fuzzy_threshold: 1
match:
  page_size: 4
speech:
  language: de
  rate: 1.2
ui:
  language: fr
`,
			assertConfig: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 15, cfg.Review.CountdownTicks)
				assert.Equal(t, 500*time.Millisecond, cfg.Review.TickInterval)
				assert.Equal(t, 1, cfg.Review.FuzzyThreshold)
				assert.Equal(t, 4, cfg.Match.PageSize)
				assert.Equal(t, "de", cfg.Speech.Language)
				assert.InDelta(t, 1.2, cfg.Speech.Rate, 1e-9)
				assert.Equal(t, "fr", cfg.UI.Language)
				// unrelated keys keep their defaults
				assert.Equal(t, 10, cfg.Review.XPReward)
			},
		},
		{
			name: "environment variables override the config file",
			configContent: `speech:
  language: fr
ui:
  language: en
`,
			env: map[string]string{
				"LEXI_SPEECH_LANGUAGE":    "it",
				"LEXI_UI_LANGUAGE":        "es",
				"LEXI_SPEECH_SYNTHESIZER": "espeak-ng",
			},
			assertConfig: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "it", cfg.Speech.Language)
				assert.Equal(t, "es", cfg.UI.Language)
				assert.Equal(t, "espeak-ng", cfg.Speech.SynthesizerCommand)
			},
		},
		{
			name: "invalid YAML format",
			configContent: `review:
  countdown_ticks: 15
  invalid yaml here [[[
`,
			wantErr: true,
			wantErrorContains: []string{
				"configuration file found but could not be read",
			},
		},
		{
			name: "countdown ticks below minimum",
			configContent: `review:
  countdown_ticks: 0
`,
			wantErr: true,
			wantErrorContains: []string{
				"invalid configuration",
				"countdown_ticks",
			},
		},
		{
			name: "pairs file must exist when set",
			configContent: `data:
  pairs_file: /nonexistent/pairs.yml
`,
			wantErr: true,
			wantErrorContains: []string{
				"must be an existing and readable file",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()

			var configPath string
			if tt.configContent != "" {
				configPath = filepath.Join(tempDir, "config.yml")
				err := os.WriteFile(configPath, []byte(tt.configContent), 0644)
				require.NoError(t, err)
			} else {
				// keep the search path away from any real config
				origDir, err := os.Getwd()
				require.NoError(t, err)
				require.NoError(t, os.Chdir(tempDir))
				t.Cleanup(func() { _ = os.Chdir(origDir) })
				t.Setenv("HOME", tempDir)
			}
			for envVar, value := range tt.env {
				t.Setenv(envVar, value)
			}

			got, err := Load(configPath)
			if tt.wantErr {
				require.Error(t, err)
				for _, substr := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), substr)
				}
				return
			}

			require.NoError(t, err)
			tt.assertConfig(t, got)
		})
	}
}

func TestLoad_PairsFileBelowRegularFile(t *testing.T) {
	tempDir := t.TempDir()
	plainFile := filepath.Join(tempDir, "plain.txt")
	require.NoError(t, os.WriteFile(plainFile, []byte("not a directory"), 0644))

	// Stat fails with ENOTDIR here, not ENOENT; it must still surface
	// as a validation error.
	configContent := fmt.Sprintf("data:\n  pairs_file: %s\n", filepath.Join(plainFile, "nested.yml"))
	configPath := filepath.Join(tempDir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	_, err := Load(configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be an existing and readable file")
}
