package cmd

import (
	"os"
	"path/filepath"

	"github.com/itsmostafa/codepdf/internal/config"
	"github.com/spf13/cobra"
)

// settingsFlags are the flags shared by build and plan
type settingsFlags struct {
	configFile string
	ignoreFile string
	output     string
	backend    string
	browser    string
	noSandbox  bool
	keep       bool
	logLevel   string
}

func (f *settingsFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configFile, "config", "c", "", "Config file (default <dir>/"+config.FileName+")")
	cmd.Flags().StringVarP(&f.ignoreFile, "ignore-file", "i", "", "Ignore file relative to the project (default .pdfignore)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Working directory for intermediate documents (default output)")

	// Backend flag with env var fallback
	defaultBackend := ""
	if envBackend := os.Getenv("CODEPDF_BACKEND"); envBackend != "" {
		defaultBackend = envBackend
	}
	cmd.Flags().StringVar(&f.backend, "backend", defaultBackend, "PDF backend to use (chrome, native)")

	cmd.Flags().StringVar(&f.browser, "browser", "", "Chrome or Chromium executable for the chrome backend")
	cmd.Flags().BoolVar(&f.noSandbox, "no-sandbox", false, "Disable the Chrome sandbox")
	cmd.Flags().BoolVar(&f.keep, "keep", false, "Keep intermediate documents after the run")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "Diagnostic level (debug, info, warn, error)")
}

// load reads the project config file and applies explicitly set flags
func (f *settingsFlags) load(cmd *cobra.Command, dir string) (*config.Config, error) {
	path := f.configFile
	if path == "" {
		path = filepath.Join(dir, config.FileName)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if f.ignoreFile != "" {
		cfg.IgnoreFile = f.ignoreFile
	}
	if f.output != "" {
		cfg.OutputDir = f.output
	}
	if f.backend != "" {
		backend, err := config.ValidateBackend(f.backend)
		if err != nil {
			return nil, err
		}
		cfg.Backend = backend
	}
	if f.browser != "" {
		cfg.BrowserBin = f.browser
	}
	if flags.Changed("no-sandbox") {
		cfg.NoSandbox = f.noSandbox
	}
	if flags.Changed("keep") {
		cfg.KeepIntermediates = f.keep
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}

	return cfg, cfg.Validate()
}

func projectDir(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
