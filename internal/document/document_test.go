package document

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sourceDoc(orientation Orientation) *Document {
	return &Document{
		Kind:        KindSource,
		Title:       "# a.py",
		Subtitle:    "# Location: .",
		Orientation: orientation,
		Lines: []Line{
			{Spans: []Span{{Text: "   1: "}, {Text: "def", Color: "#008800", Bold: true}, {Text: " f():"}}},
			{Spans: []Span{{Text: "   2: "}, {Text: "\treturn <1>", Italic: true}}},
		},
	}
}

func TestLine_Text(t *testing.T) {
	l := Line{Spans: []Span{{Text: "a"}, {Text: "b", Bold: true}, {Text: "c"}}}
	assert.Equal(t, "abc", l.Text())
}

func TestHTML_Source(t *testing.T) {
	html, err := sourceDoc(Landscape).HTML()
	require.NoError(t, err)

	assert.Contains(t, html, "size: A4 landscape")
	assert.Contains(t, html, "margin: 2cm")
	assert.Contains(t, html, "# a.py</h6>")
	assert.Contains(t, html, "# Location: .</p>")
	assert.Contains(t, html, `<span style="color: #008800; font-weight: bold">def</span>`)
	assert.Contains(t, html, `<span style="font-style: italic">`)
	// text is escaped
	assert.Contains(t, html, "&lt;1&gt;")
	assert.NotContains(t, html, "Index of Files")
}

func TestHTML_Portrait(t *testing.T) {
	html, err := sourceDoc(Portrait).HTML()
	require.NoError(t, err)
	assert.Contains(t, html, "size: A4 portrait")
}

func TestHTML_Index(t *testing.T) {
	doc := &Document{
		Kind:        KindIndex,
		Title:       "project",
		Subtitle:    "Index of Files",
		Orientation: Portrait,
		Lines: []Line{
			{Indent: 0, Spans: []Span{{Text: "sub/"}}},
			{Indent: 1, Spans: []Span{{Text: "b.py .......................... 2"}}},
		},
	}

	html, err := doc.HTML()
	require.NoError(t, err)
	assert.Contains(t, html, "project</h3>")
	assert.Contains(t, html, "Index of Files</h5>")
	assert.Contains(t, html, "margin-left: 0px;")
	assert.Contains(t, html, "margin-left: 20px;")
}

func TestSpanStyle_RejectsNonHexColor(t *testing.T) {
	assert.Equal(t, "", string(spanStyle(Span{Color: "red; background: url(x)"})))
	assert.Equal(t, "color: #AbC123", string(spanStyle(Span{Color: "#AbC123"})))
}

func TestParseHexColor(t *testing.T) {
	r, g, b := parseHexColor("#102030", KindSource)
	assert.Equal(t, []int{0x10, 0x20, 0x30}, []int{r, g, b})

	r, g, b = parseHexColor("", KindSource)
	assert.Equal(t, []int{0, 0, 0}, []int{r, g, b})

	r, g, b = parseHexColor("", KindIndex)
	assert.Equal(t, []int{0x6e, 0x6e, 0x6e}, []int{r, g, b})
}

func TestNativeConverter_Convert(t *testing.T) {
	c := NewNativeConverter()
	defer c.Close()

	for _, o := range []Orientation{Portrait, Landscape} {
		t.Run(string(o), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, c.Convert(context.Background(), sourceDoc(o), &buf))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
		})
	}
}

func TestNativeConverter_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewNativeConverter().Convert(ctx, sourceDoc(Portrait), io.Discard)
	assert.ErrorIs(t, err, context.Canceled)
}

type failingConverter struct{}

func (failingConverter) Name() string { return "failing" }
func (failingConverter) Close() error { return nil }
func (failingConverter) Convert(_ context.Context, _ *Document, w io.Writer) error {
	io.WriteString(w, "%PDF-partial")
	return errors.New("backend exploded")
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("success", func(t *testing.T) {
		path := filepath.Join(dir, "ok.pdf")
		require.NoError(t, WriteFile(context.Background(), NewNativeConverter(), sourceDoc(Portrait), path))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "%PDF-"))
	})

	t.Run("failure removes partial file", func(t *testing.T) {
		path := filepath.Join(dir, "bad.pdf")
		err := WriteFile(context.Background(), failingConverter{}, sourceDoc(Portrait), path)
		require.Error(t, err)
		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("missing directory", func(t *testing.T) {
		err := WriteFile(context.Background(), NewNativeConverter(), sourceDoc(Portrait), filepath.Join(dir, "nope", "x.pdf"))
		assert.Error(t, err)
	})
}
