package pageindex

import (
	"strconv"
	"strings"

	"github.com/itsmostafa/codepdf/internal/document"
)

// Leader separates a file name from its page number
const Leader = " .......................... "

// Subtitle heads the file listing
const Subtitle = "Index of Files"

// Lines renders the tree one entry per line: directories as "name/",
// files as "name .......................... page", children one indent
// step deeper than their directory.
func Lines(root *Dir) []document.Line {
	var lines []document.Line
	root.Walk(func(_ string, depth int, n Node) {
		var text string
		switch node := n.(type) {
		case *Dir:
			text = node.Name() + "/"
		case *Leaf:
			text = node.Name() + Leader + strconv.Itoa(node.Page)
		}
		lines = append(lines, document.Line{
			Indent: depth,
			Spans:  []document.Span{{Text: text}},
		})
	})
	return lines
}

// Build returns the index document for root under the project title
func Build(title string, root *Dir) *document.Document {
	return &document.Document{
		Kind:        document.KindIndex,
		Title:       title,
		Subtitle:    Subtitle,
		Orientation: document.Portrait,
		Lines:       Lines(root),
	}
}

// Text renders the tree as plain text, one line per entry, indented by
// two spaces per level.
func Text(root *Dir) string {
	var b strings.Builder
	for _, l := range Lines(root) {
		b.WriteString(strings.Repeat("  ", l.Indent))
		b.WriteString(l.Text())
		b.WriteByte('\n')
	}
	return b.String()
}
