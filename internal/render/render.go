// Package render turns one source file into a highlighted, line-numbered
// PDF document.
package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/itsmostafa/codepdf/internal/document"
)

// LandscapeThreshold is the widest line, in characters, that still fits a
// portrait page.
const LandscapeThreshold = 140

// ErrUndecodable marks a file that is not valid text
var ErrUndecodable = errors.New("file is not valid text")

// Outcome classifies what happened to one file
type Outcome int

const (
	// Produced means a PDF was written
	Produced Outcome = iota
	// Skipped means the file could not be decoded as text
	Skipped
	// Failed means the PDF backend reported an error
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Produced:
		return "produced"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result describes the rendering of one file
type Result struct {
	// Source is the slash-separated path relative to the project root
	Source string
	// Output is the written PDF, set only when Outcome is Produced
	Output      string
	Outcome     Outcome
	Orientation document.Orientation
	Lines       int
	Lexer       string
	// Err is the reason for a Skipped or Failed outcome
	Err error
}

// Renderer renders project files through a document.Converter
type Renderer struct {
	baseDir   string
	converter document.Converter
	style     *chroma.Style
	log       *slog.Logger
}

// New creates a Renderer for files under baseDir
func New(baseDir string, converter document.Converter, log *slog.Logger) *Renderer {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Renderer{
		baseDir:   baseDir,
		converter: converter,
		style:     loadStyle(),
		log:       log,
	}
}

// Render writes the PDF for rel to outPath. Undecodable files are skipped
// and backend errors reported in the Result; neither is returned as an
// error. Only failures to read the file are fatal.
func (r *Renderer) Render(ctx context.Context, rel, outPath string) (Result, error) {
	res := Result{Source: rel}

	doc, lexer, err := r.Build(rel)
	if errors.Is(err, ErrUndecodable) {
		res.Outcome = Skipped
		res.Err = err
		r.log.Debug("skipped undecodable file", "path", rel)
		return res, nil
	}
	if err != nil {
		return res, err
	}

	res.Orientation = doc.Orientation
	res.Lines = len(doc.Lines)
	res.Lexer = lexer

	if err := document.WriteFile(ctx, r.converter, doc, outPath); err != nil {
		res.Outcome = Failed
		res.Err = err
		r.log.Error("render failed", "path", rel, "backend", r.converter.Name(), "error", err)
		return res, nil
	}

	r.log.Debug("rendered file", "path", rel, "lexer", lexer, "orientation", doc.Orientation, "lines", res.Lines)
	res.Outcome = Produced
	res.Output = outPath
	return res, nil
}

// Build reads rel and lays it out as a document. It also returns the name
// of the lexer used.
func (r *Renderer) Build(rel string) (*document.Document, string, error) {
	data, err := os.ReadFile(filepath.Join(r.baseDir, filepath.FromSlash(rel)))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", rel, err)
	}

	text, err := Decode(data)
	if err != nil {
		return nil, "", err
	}

	lines := SplitLines(text)
	lexer := lexerFor(path.Base(rel))
	highlighted := highlight(lexer, r.style, text, lines)

	doc := &document.Document{
		Kind:        document.KindSource,
		Title:       "# " + path.Base(rel),
		Subtitle:    "# Location: " + Location(rel),
		Orientation: OrientationFor(MaxLineWidth(lines)),
		Lines:       make([]document.Line, len(lines)),
	}
	for i, spans := range highlighted {
		gutter := document.Span{Text: LineNumber(i + 1), Color: "#6e6e6e"}
		doc.Lines[i] = document.Line{Spans: append([]document.Span{gutter}, spans...)}
	}

	return doc, lexer.Config().Name, nil
}

// Decode validates data as UTF-8 text (a UTF-16 BOM is honoured) and
// normalises line endings to "\n".
func Decode(data []byte) (string, error) {
	out, _, err := transform.Bytes(unicode.BOMOverride(encoding.UTF8Validator), data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	text := strings.ReplaceAll(string(out), "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n"), nil
}

// SplitLines splits text into lines without their terminators. A trailing
// newline does not start an extra line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// MaxLineWidth returns the longest line length in characters
func MaxLineWidth(lines []string) int {
	width := 0
	for _, l := range lines {
		if n := utf8.RuneCountInString(l); n > width {
			width = n
		}
	}
	return width
}

// OrientationFor picks landscape only for lines wider than LandscapeThreshold
func OrientationFor(width int) document.Orientation {
	if width > LandscapeThreshold {
		return document.Landscape
	}
	return document.Portrait
}

// LineNumber formats the 1-based gutter: right-justified to 4 columns and
// followed by ": ".
func LineNumber(n int) string {
	return fmt.Sprintf("%4d: ", n)
}

// Location is the containing directory shown under the title: "." for
// top-level files, otherwise the directory with a trailing slash.
func Location(rel string) string {
	dir := path.Dir(rel)
	if dir == "." {
		return "."
	}
	return dir + "/"
}
