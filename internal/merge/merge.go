// Package merge concatenates a directory of PDFs into one document,
// optionally stamping running page numbers and recording where each
// source document starts.
package merge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/itsmostafa/codepdf/internal/document"
)

// ErrNoDocuments is returned when the source directory holds no PDFs
var ErrNoDocuments = errors.New("no documents to merge")

// StampText is the page-number overlay; pdfcpu substitutes %p with the
// page's number in the merged output.
const StampText = "(%p)"

// stampDescription centres the number 30pt above the bottom edge. pdfcpu
// positions against each page's own box, so landscape pages get the stamp
// centred on their wider edge.
const stampDescription = "fontname:Helvetica, points:10, position:bc, offset:0 30, scalefactor:1 abs, rotation:0, fillcolor:#000000, opacity:1"

func init() {
	// Keep pdfcpu from creating a user config directory.
	api.DisableConfigDir()
}

// Entry records one merged source document
type Entry struct {
	// Name is the document's file name inside the source directory
	Name string
	// Start is the 1-based page on which the document begins
	Start int
	// Pages holds the geometry of each of the document's pages
	Pages []PageInfo
}

// PageCount returns the number of pages the document contributed
func (e Entry) PageCount() int { return len(e.Pages) }

// Result is the outcome of one merge pass
type Result struct {
	// Entries lists the merged documents in merge order
	Entries []Entry
	// NextPage is the page counter after the pass: 1 + total pages
	NextPage int
}

// TotalPages returns the page count of the merged document
func (r *Result) TotalPages() int { return r.NextPage - 1 }

// Options configures a merge pass
type Options struct {
	// NumberPages stamps every output page with its running number
	NumberPages bool
	Logger      *slog.Logger
}

// ListDocuments returns the paths of the PDFs directly inside dir, sorted
// by file name.
func ListDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(e.Name(), ".pdf") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
	}
	return paths, nil
}

// Merge concatenates every PDF in sourceDir, in file-name order, into
// outputPath. Each document's entry is recorded with the counter value at
// the moment it begins, before its own pages are counted.
func Merge(ctx context.Context, sourceDir, outputPath string, opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	paths, err := ListDocuments(sourceDir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%s: %w", sourceDir, ErrNoDocuments)
	}

	result := &Result{NextPage: 1}
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pages, err := countPages(p, log)
		if err != nil {
			return nil, err
		}

		result.Entries = append(result.Entries, Entry{
			Name:  filepath.Base(p),
			Start: result.NextPage,
			Pages: pages,
		})
		result.NextPage += len(pages)
	}

	if err := write(paths, outputPath, opts.NumberPages); err != nil {
		return nil, err
	}

	log.Debug("merged documents", "source", sourceDir, "output", outputPath,
		"documents", len(paths), "pages", result.TotalPages(), "numbered", opts.NumberPages)
	return result, nil
}

// countPages inspects p, falling back to pdfcpu's page count when the
// reader cannot parse the file's page tree.
func countPages(p string, log *slog.Logger) ([]PageInfo, error) {
	pages, err := Inspect(p)
	if err == nil {
		return pages, nil
	}

	log.Warn("page inspection failed, using page count only", "path", p, "error", err)
	n, err := api.PageCountFile(p)
	if err != nil {
		return nil, fmt.Errorf("failed to count pages of %s: %w", p, err)
	}
	return make([]PageInfo, n), nil
}

func write(paths []string, outputPath string, numbered bool) error {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	target := outputPath
	if numbered {
		target = outputPath + ".unnumbered"
		defer os.Remove(target)
	}

	if len(paths) == 1 {
		if err := copyFile(paths[0], target); err != nil {
			return err
		}
	} else if err := api.MergeCreateFile(paths, target, false, conf); err != nil {
		return fmt.Errorf("failed to merge into %s: %w", outputPath, err)
	}

	if !numbered {
		return nil
	}

	if err := api.AddTextWatermarksFile(target, outputPath, nil, true, StampText, stampDescription, conf); err != nil {
		return fmt.Errorf("failed to stamp page numbers on %s: %w", outputPath, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return out.Close()
}

// Orientations summarises how many merged pages are portrait and landscape
func (r *Result) Orientations() map[document.Orientation]int {
	counts := make(map[document.Orientation]int)
	for _, e := range r.Entries {
		for _, p := range e.Pages {
			counts[p.Orientation()]++
		}
	}
	return counts
}
