// Package document holds the backend-neutral description of a rendered page
// and the converters that turn it into PDF bytes.
//
// Source pages and the file index are both built as a Document: a title
// block followed by lines of styled spans. The chrome converter prints the
// HTML form of a Document through headless Chrome; the native converter
// draws it directly.
package document

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// Orientation is the page layout of a document
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// Kind selects the title block styling
type Kind int

const (
	// KindSource is one highlighted, numbered source file
	KindSource Kind = iota
	// KindIndex is the project file index
	KindIndex
)

// Span is a run of text sharing one style. Color is "#rrggbb" or empty
// for the document default.
type Span struct {
	Text   string
	Color  string
	Bold   bool
	Italic bool
}

// Line is one output line, indented by Indent steps
type Line struct {
	Indent int
	Spans  []Span
}

// Text returns the unstyled content of the line
func (l Line) Text() string {
	var b strings.Builder
	for _, s := range l.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Document is a titled block of styled lines with a fixed page layout
type Document struct {
	Kind        Kind
	Title       string
	Subtitle    string
	Orientation Orientation
	Lines       []Line
}

// Converter renders a Document as PDF
type Converter interface {
	// Name identifies the backend in console output
	Name() string

	// Convert writes doc as PDF to w
	Convert(ctx context.Context, doc *Document, w io.Writer) error

	// Close releases backend resources (browser processes)
	Close() error
}

// WriteFile converts doc into a new file at path. A partially written file
// is removed when conversion fails.
func WriteFile(ctx context.Context, c Converter, doc *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := c.Convert(ctx, doc, f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
