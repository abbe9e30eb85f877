package document

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// ChromeOptions configures the headless browser
type ChromeOptions struct {
	// Bin is the Chrome/Chromium executable; empty means PATH lookup, then
	// rod's managed download
	Bin string

	// NoSandbox disables the Chrome sandbox
	NoSandbox bool

	Logger *slog.Logger
}

// ChromeConverter prints the HTML form of a document through headless
// Chrome. The browser starts on first use and is reused until Close.
type ChromeConverter struct {
	opts ChromeOptions
	log  *slog.Logger

	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// NewChromeConverter creates a converter; no process is started yet
func NewChromeConverter(opts ChromeOptions) *ChromeConverter {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &ChromeConverter{opts: opts, log: log}
}

func (c *ChromeConverter) Name() string { return "chrome" }

func (c *ChromeConverter) connect() (*rod.Browser, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.browser != nil {
		return c.browser, nil
	}

	l := launcher.New().Headless(true).NoSandbox(c.opts.NoSandbox)
	if c.opts.Bin != "" {
		l = l.Bin(c.opts.Bin)
	} else if path, found := launcher.LookPath(); found {
		l = l.Bin(path)
	}

	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(url)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	c.log.Debug("browser started", "control_url", url)
	c.launcher = l
	c.browser = browser
	return browser, nil
}

// Convert loads the document HTML into a blank tab and prints it with the
// CSS page size, so orientation follows the document's @page rule.
func (c *ChromeConverter) Convert(ctx context.Context, doc *Document, w io.Writer) error {
	html, err := doc.HTML()
	if err != nil {
		return err
	}

	browser, err := c.connect()
	if err != nil {
		return err
	}

	page, err := browser.Context(ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return fmt.Errorf("failed to open page: %w", err)
	}
	defer page.Close()

	if err := page.SetDocumentContent(html); err != nil {
		return fmt.Errorf("failed to load html: %w", err)
	}

	stream, err := page.PDF(&proto.PagePrintToPDF{
		Landscape:         doc.Orientation == Landscape,
		PrintBackground:   true,
		PreferCSSPageSize: true,
	})
	if err != nil {
		return fmt.Errorf("failed to print pdf: %w", err)
	}

	if _, err := io.Copy(w, stream); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

// Close shuts the browser down
func (c *ChromeConverter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.browser == nil {
		return nil
	}

	err := c.browser.Close()
	c.launcher.Kill()
	c.launcher.Cleanup()
	c.browser = nil
	c.launcher = nil
	return err
}
