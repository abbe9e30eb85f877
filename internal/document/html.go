package document

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// indentPx is the horizontal step per Line.Indent in the HTML form
const indentPx = 20

var htmlTemplate = template.Must(template.New("document").Funcs(template.FuncMap{
	"spanStyle": spanStyle,
	"indent":    func(n int) int { return n * indentPx },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
@page {
    size: A4 {{.Orientation}};
    margin: 2cm;
}
h1 {
    font-family: Menlo, monospace;
    color: #6e6e6e;
}
body {
    font-family: Menlo, monospace;
    color: #6e6e6e;
}
.code {
    font-family: Menlo, monospace;
    font-size: 11px;
    color: #000000;
}
.index {
    font-size: 12px;
}
.line {
    white-space: pre-wrap;
    word-break: break-all;
    min-height: 1.2em;
}
</style>
</head>
<body>
{{- if .Index}}
<h3 style="font-family: Menlo, monospace; font-size: 28px; color: #6e6e6e;">{{.Title}}</h3><br>
<h5 style="font-family: Menlo, monospace; font-size: 17px; color: #6e6e6e;">{{.Subtitle}}</h5>
<div class="index">
{{- else}}
<h6 style="font-family: Menlo, monospace; font-size: 16px; color: #6e6e6e; margin-bottom: 0;">{{.Title}}</h6>
<p style="font-family: Menlo, monospace; font-size: 14px; color: #6e6e6e; margin-top: 0;">{{.Subtitle}}</p>
<div class="code">
{{- end}}
{{- range .Lines}}
<div class="line" style="margin-left: {{indent .Indent}}px;">{{range .Spans}}<span style="{{spanStyle .}}">{{.Text}}</span>{{end}}</div>
{{- end}}
</div>
</body>
</html>
`))

type htmlData struct {
	*Document
	Index bool
}

// HTML renders doc as a standalone HTML page whose @page rule carries the
// document's orientation.
func (d *Document) HTML() (string, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, htmlData{Document: d, Index: d.Kind == KindIndex}); err != nil {
		return "", fmt.Errorf("failed to render html: %w", err)
	}
	return buf.String(), nil
}

func spanStyle(s Span) template.CSS {
	var parts []string
	if isHexColor(s.Color) {
		parts = append(parts, "color: "+s.Color)
	}
	if s.Bold {
		parts = append(parts, "font-weight: bold")
	}
	if s.Italic {
		parts = append(parts, "font-style: italic")
	}
	return template.CSS(strings.Join(parts, "; "))
}

func isHexColor(c string) bool {
	if len(c) != 7 || c[0] != '#' {
		return false
	}
	for _, r := range c[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
