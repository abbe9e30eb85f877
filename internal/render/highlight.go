package render

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/itsmostafa/codepdf/internal/document"
)

// StyleName is the fixed highlighting theme
const StyleName = "colorful"

// fallbackLexer keeps unknown file types renderable as key/value text
const fallbackLexer = "ini"

// lexerFor picks a lexer from the file name, falling back to INI.
func lexerFor(filename string) chroma.Lexer {
	lexer := lexers.Match(filename)
	if lexer == nil {
		lexer = lexers.Get(fallbackLexer)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

// highlight tokenises text and returns one slice of styled spans per
// source line. The result always has exactly len(lines) entries.
func highlight(lexer chroma.Lexer, style *chroma.Style, text string, lines []string) [][]document.Span {
	out := make([][]document.Span, len(lines))

	it, err := lexer.Tokenise(nil, text)
	if err != nil {
		for i, l := range lines {
			out[i] = []document.Span{{Text: l}}
		}
		return out
	}

	tokenLines := chroma.SplitTokensIntoLines(it.Tokens())
	for i, l := range lines {
		if i >= len(tokenLines) {
			out[i] = []document.Span{{Text: l}}
			continue
		}
		out[i] = spansFor(style, tokenLines[i])
	}
	return out
}

func spansFor(style *chroma.Style, tokens []chroma.Token) []document.Span {
	spans := make([]document.Span, 0, len(tokens))
	for _, tok := range tokens {
		text := strings.TrimSuffix(tok.Value, "\n")
		if text == "" {
			continue
		}

		entry := style.Get(tok.Type)
		span := document.Span{
			Text:   text,
			Bold:   entry.Bold == chroma.Yes,
			Italic: entry.Italic == chroma.Yes,
		}
		if entry.Colour.IsSet() {
			span.Color = entry.Colour.String()
		}
		spans = append(spans, span)
	}
	return spans
}

func loadStyle() *chroma.Style {
	if s := styles.Get(StyleName); s != nil {
		return s
	}
	return styles.Fallback
}
