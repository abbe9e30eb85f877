package document

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
)

const (
	marginMM     = 20.0
	indentStepMM = 5.0
	codePt       = 8.0
	indexPt      = 9.0
)

// NativeConverter draws documents with core PDF fonts. It needs no browser
// but only covers the cp1252 character set.
type NativeConverter struct{}

// NewNativeConverter creates a browser-free converter
func NewNativeConverter() *NativeConverter {
	return &NativeConverter{}
}

func (c *NativeConverter) Name() string { return "native" }

func (c *NativeConverter) Close() error { return nil }

// Convert lays out doc on A4 pages with 2cm margins
func (c *NativeConverter) Convert(ctx context.Context, doc *Document, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	orientation := "P"
	if doc.Orientation == Landscape {
		orientation = "L"
	}

	pdf := fpdf.New(orientation, "mm", "A4", "")
	pdf.SetMargins(marginMM, marginMM, marginMM)
	pdf.SetAutoPageBreak(true, marginMM)
	pdf.SetCreator("codepdf", true)
	pdf.SetTitle(doc.Title, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetTextColor(0x6e, 0x6e, 0x6e)

	titlePt, subtitlePt, bodyPt := 12.0, 10.0, codePt
	if doc.Kind == KindIndex {
		titlePt, subtitlePt, bodyPt = 20.0, 13.0, indexPt
	}

	pdf.SetFont("Courier", "B", titlePt)
	pdf.MultiCell(0, ptToMM(titlePt)*1.3, tr(doc.Title), "", "L", false)
	pdf.SetFont("Courier", "", subtitlePt)
	pdf.MultiCell(0, ptToMM(subtitlePt)*1.3, tr(doc.Subtitle), "", "L", false)
	pdf.Ln(ptToMM(bodyPt))

	lineHeight := ptToMM(bodyPt) * 1.25
	for _, line := range doc.Lines {
		pdf.SetX(marginMM + float64(line.Indent)*indentStepMM)
		for _, span := range line.Spans {
			r, g, b := parseHexColor(span.Color, doc.Kind)
			pdf.SetTextColor(r, g, b)
			pdf.SetFont("Courier", fontStyle(span), bodyPt)
			pdf.Write(lineHeight, tr(expandTabs(span.Text)))
		}
		pdf.Ln(lineHeight)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("native render failed: %w", err)
	}
	return nil
}

func fontStyle(s Span) string {
	style := ""
	if s.Bold {
		style += "B"
	}
	if s.Italic {
		style += "I"
	}
	return style
}

func ptToMM(pt float64) float64 {
	return pt * 25.4 / 72
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

// parseHexColor returns the RGB of "#rrggbb", or the kind's default colour.
func parseHexColor(c string, kind Kind) (int, int, int) {
	if !isHexColor(c) {
		if kind == KindIndex {
			return 0x6e, 0x6e, 0x6e
		}
		return 0, 0, 0
	}
	v, _ := strconv.ParseUint(c[1:], 16, 32)
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}
