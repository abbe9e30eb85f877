package pipeline

import (
	"io"
	"log/slog"
	"strings"

	"github.com/itsmostafa/codepdf/internal/config"
	"github.com/itsmostafa/codepdf/internal/document"
)

// NewConverter builds the PDF backend named in settings
func NewConverter(settings *config.Config, log *slog.Logger) document.Converter {
	switch settings.Backend {
	case config.BackendNative:
		return document.NewNativeConverter()
	default:
		return document.NewChromeConverter(document.ChromeOptions{
			Bin:       settings.BrowserBin,
			NoSandbox: settings.NoSandbox,
			Logger:    log,
		})
	}
}

// NewLogger returns a text logger writing to w at the named level.
// Unknown levels fall back to warn.
func NewLogger(level string, w io.Writer) *slog.Logger {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "info":
		l = slog.LevelInfo
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
}
