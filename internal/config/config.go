package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the optional per-project configuration file.
const FileName = ".codepdf.yaml"

// Backend names the service that turns a document into PDF bytes.
type Backend string

const (
	// BackendChrome renders HTML through headless Chrome
	BackendChrome Backend = "chrome"
	// BackendNative draws pages directly without a browser
	BackendNative Backend = "native"
)

// Config holds the settings for one run
type Config struct {
	// IgnoreFile is the project-relative path of the glob ignore list
	IgnoreFile string `yaml:"ignore_file"`

	// OutputDir is the working directory for intermediate documents
	OutputDir string `yaml:"output_dir"`

	// Divider replaces path separators in intermediate file names
	Divider string `yaml:"divider"`

	// Backend selects the PDF backend (chrome, native)
	Backend Backend `yaml:"backend"`

	// BrowserBin overrides Chrome lookup for the chrome backend
	BrowserBin string `yaml:"browser_bin"`

	// NoSandbox disables the Chrome sandbox (containers, CI)
	NoSandbox bool `yaml:"no_sandbox"`

	// KeepIntermediates leaves OutputDir on disk after the run
	KeepIntermediates bool `yaml:"keep_intermediates"`

	// LogLevel sets diagnostic verbosity (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns a Config with the stock settings
func DefaultConfig() *Config {
	return &Config{
		IgnoreFile: ".pdfignore",
		OutputDir:  "output",
		Divider:    "{divider}",
		Backend:    BackendChrome,
		LogLevel:   "warn",
	}
}

// LoadConfig loads configuration from the specified file path.
// A missing file yields the defaults; a malformed one is an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Unset keys keep their defaults.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks that the configuration can drive a run
func (c *Config) Validate() error {
	if _, err := ValidateBackend(string(c.Backend)); err != nil {
		return err
	}
	if strings.TrimSpace(c.IgnoreFile) == "" {
		return fmt.Errorf("ignore_file must not be empty")
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	if c.Divider == "" {
		return fmt.Errorf("divider must not be empty")
	}
	if strings.ContainsAny(c.Divider, `/\`) {
		return fmt.Errorf("divider %q must not contain a path separator", c.Divider)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level: %q (valid options: debug, info, warn, error)", c.LogLevel)
	}
	return nil
}

// ValidateBackend checks if the given backend string is valid and returns the Backend
func ValidateBackend(name string) (Backend, error) {
	switch Backend(name) {
	case BackendChrome:
		return BackendChrome, nil
	case BackendNative:
		return BackendNative, nil
	default:
		return "", fmt.Errorf("unknown backend: %q (valid options: chrome, native)", name)
	}
}
