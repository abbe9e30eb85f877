package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_PartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	data := "backend: native\nkeep_intermediates: true\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, BackendNative, cfg.Backend)
	assert.True(t, cfg.KeepIntermediates)
	assert.Equal(t, "debug", cfg.LogLevel)
	// untouched keys keep defaults
	assert.Equal(t, ".pdfignore", cfg.IgnoreFile)
	assert.Equal(t, "output", cfg.OutputDir)
	assert.Equal(t, "{divider}", cfg.Divider)
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("backend: [unterminated\n"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("backend: wkhtml\n"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown backend")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"empty ignore file", func(c *Config) { c.IgnoreFile = " " }, "ignore_file"},
		{"empty output dir", func(c *Config) { c.OutputDir = "" }, "output_dir"},
		{"empty divider", func(c *Config) { c.Divider = "" }, "divider"},
		{"divider with slash", func(c *Config) { c.Divider = "a/b" }, "path separator"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"upper log level", func(c *Config) { c.LogLevel = "DEBUG" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateBackend(t *testing.T) {
	b, err := ValidateBackend("chrome")
	require.NoError(t, err)
	assert.Equal(t, BackendChrome, b)

	b, err = ValidateBackend("native")
	require.NoError(t, err)
	assert.Equal(t, BackendNative, b)

	_, err = ValidateBackend("")
	assert.Error(t, err)
}
