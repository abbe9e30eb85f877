package merge

import (
	"fmt"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/itsmostafa/codepdf/internal/document"
)

// PageInfo is the displayed geometry of one page
type PageInfo struct {
	Width  float64
	Height float64
	// Rotate is the /Rotate entry normalised to 0, 90, 180 or 270
	Rotate int
}

// Orientation reports landscape when the page is wider than tall as shown,
// taking /Rotate into account.
func (p PageInfo) Orientation() document.Orientation {
	w, h := p.Width, p.Height
	if p.Rotate == 90 || p.Rotate == 270 {
		w, h = h, w
	}
	if w > h {
		return document.Landscape
	}
	return document.Portrait
}

// Inspect returns the geometry of every page in the PDF at path
func Inspect(path string) ([]PageInfo, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	n := reader.NumPage()
	pages := make([]PageInfo, 0, n)
	for i := 1; i <= n; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			return nil, fmt.Errorf("%s: page %d is missing", path, i)
		}
		pages = append(pages, pageInfo(page.V))
	}
	return pages, nil
}

func pageInfo(v pdflib.Value) PageInfo {
	var info PageInfo

	box := inherited(v, "MediaBox")
	if box.Len() == 4 {
		info.Width = abs(box.Index(2).Float64() - box.Index(0).Float64())
		info.Height = abs(box.Index(3).Float64() - box.Index(1).Float64())
	}

	rot := int(inherited(v, "Rotate").Int64()) % 360
	if rot < 0 {
		rot += 360
	}
	info.Rotate = rot
	return info
}

// inherited looks key up on the page, then up its /Parent chain.
func inherited(v pdflib.Value, key string) pdflib.Value {
	for depth := 0; depth < 32 && !v.IsNull(); depth++ {
		if x := v.Key(key); !x.IsNull() {
			return x
		}
		v = v.Key("Parent")
	}
	return pdflib.Value{}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
