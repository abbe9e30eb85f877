// Package pipeline runs a full build: enumerate, render every file, merge
// the pages with numbering, build the index, and merge the final document.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/itsmostafa/codepdf/internal/config"
	"github.com/itsmostafa/codepdf/internal/document"
	"github.com/itsmostafa/codepdf/internal/ignore"
	"github.com/itsmostafa/codepdf/internal/merge"
	"github.com/itsmostafa/codepdf/internal/pageindex"
	"github.com/itsmostafa/codepdf/internal/render"
	"github.com/itsmostafa/codepdf/internal/scan"
)

const (
	// PageDir holds one rendered document per source file
	PageDir = "page"
	// BundleName is the numbered merge of every page document
	BundleName = "pages.pdf"
	// IndexName is the rendered index; it sorts before BundleName so the
	// final merge puts the index first
	IndexName = "index.pdf"
	// IndexTextName is the plain-text index kept with the intermediates
	IndexTextName = "index.txt"
	// markerName tags a working directory this tool created
	markerName = ".codepdf-output"
)

var (
	// ErrUnsafeOutput is returned when the working directory would contain
	// the project
	ErrUnsafeOutput = errors.New("output directory must not be the project directory or one of its parents")

	// ErrForeignOutput is returned when the working directory holds files
	// this tool did not write
	ErrForeignOutput = errors.New("output directory exists and was not created by codepdf")
)

// Config holds the pipeline configuration
type Config struct {
	// BaseDir is the project root; empty means the working directory
	BaseDir string

	// Settings are the loaded config file values plus flag overrides
	Settings *config.Config

	// Output receives console progress; nil means stdout
	Output io.Writer

	Logger *slog.Logger

	// Converter overrides the backend named in Settings
	Converter document.Converter
}

// Result summarises one run
type Result struct {
	RunID   string
	Project string
	// Files holds one entry per enumerated file, in enumeration order
	Files []render.Result
	// Entries are the starting pages recorded by the numbered merge
	Entries    []pageindex.Entry
	Produced   int
	Skipped    int
	Failed     int
	TotalPages int
	// Orientations counts the bundle's pages by layout
	Orientations map[document.Orientation]int
	// Output is the final document
	Output string
}

// paths are the locations one run reads and writes
type paths struct {
	base    string
	project string
	ignore  string
	work    string
	pages   string
	bundle  string
	index   string
	final   string
}

func resolve(cfg Config) (paths, error) {
	base := cfg.BaseDir
	if base == "" {
		base = "."
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return paths{}, fmt.Errorf("failed to resolve project directory: %w", err)
	}

	project := filepath.Base(abs)
	work := under(abs, cfg.Settings.OutputDir)
	if contains(work, abs) {
		return paths{}, fmt.Errorf("%s: %w", cfg.Settings.OutputDir, ErrUnsafeOutput)
	}
	return paths{
		base:    abs,
		project: project,
		ignore:  under(abs, cfg.Settings.IgnoreFile),
		work:    work,
		pages:   filepath.Join(work, PageDir),
		bundle:  filepath.Join(work, BundleName),
		index:   filepath.Join(work, IndexName),
		final:   filepath.Join(abs, project+".pdf"),
	}, nil
}

// under joins p onto base unless p is already absolute
func under(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// contains reports whether dir is p or one of its ancestors, comparing
// both the cleaned paths and their symlink-resolved forms.
func contains(dir, p string) bool {
	if within(dir, p) {
		return true
	}
	rdir, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return false
	}
	rp, err := filepath.EvalSymlinks(p)
	if err != nil {
		return false
	}
	return within(rdir, rp)
}

func within(dir, p string) bool {
	rel, err := filepath.Rel(dir, p)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// cleanWork removes a previous working directory. A non-empty directory
// without the marker is left alone.
func cleanWork(work string) error {
	entries, err := os.ReadDir(work)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to inspect output directory: %w", err)
	}
	if len(entries) > 0 {
		if _, err := os.Stat(filepath.Join(work, markerName)); err != nil {
			return fmt.Errorf("%s: %w", work, ErrForeignOutput)
		}
	}
	if err := os.RemoveAll(work); err != nil {
		return fmt.Errorf("failed to remove previous output %s: %w", work, err)
	}
	return nil
}

func withDefaults(cfg Config) Config {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Settings == nil {
		cfg.Settings = config.DefaultConfig()
	}
	return cfg
}

// Run executes the build. Per-file problems are reported and counted;
// filesystem errors abort the run.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	cfg = withDefaults(cfg)
	log := cfg.Logger

	if err := cfg.Settings.Validate(); err != nil {
		return nil, err
	}

	p, err := resolve(cfg)
	if err != nil {
		return nil, err
	}

	lock, err := acquireLock(p.base)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := lock.release(); err != nil {
			log.Warn("failed to release lock", "path", lock.path(), "error", err)
		}
	}()

	converter := cfg.Converter
	if converter == nil {
		converter = NewConverter(cfg.Settings, log)
		defer converter.Close()
	}

	result := &Result{RunID: uuid.New().String(), Project: p.project, Output: p.final}
	cfg.Logger = log.With("run", result.RunID)
	log = cfg.Logger
	FormatHeader(cfg.Output, p.project, p.base, converter.Name())

	// Prior artifacts go first so they are never enumerated as sources.
	if err := cleanWork(p.work); err != nil {
		return nil, err
	}
	if err := os.RemoveAll(p.final); err != nil {
		return nil, fmt.Errorf("failed to remove previous output %s: %w", p.final, err)
	}

	patterns, err := ignore.Load(p.ignore)
	if err != nil {
		return nil, err
	}
	matcher := ignore.New(patterns)
	log.Debug("loaded ignore patterns", "file", p.ignore, "patterns", matcher.Patterns())

	files, err := scan.Enumerate(p.base, scan.Options{Matcher: matcher, Logger: log})
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(p.pages, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(p.work, markerName), nil, 0644); err != nil {
		return nil, fmt.Errorf("failed to mark output directory: %w", err)
	}

	sources, err := renderAll(ctx, cfg, p, files, converter, result)
	if err != nil {
		return nil, err
	}

	if result.Produced > 0 {
		bundle, err := merge.Merge(ctx, p.pages, p.bundle, merge.Options{NumberPages: true, Logger: log})
		if err != nil {
			return nil, err
		}
		result.TotalPages = bundle.TotalPages()
		result.Orientations = bundle.Orientations()
		for _, e := range bundle.Entries {
			src, ok := sources[e.Name]
			if !ok {
				src = pageindex.SourcePath(e.Name, cfg.Settings.Divider)
			}
			result.Entries = append(result.Entries, pageindex.Entry{Path: src, Page: e.Start})
		}
	} else {
		log.Warn("no pages were produced", "files", len(files))
	}

	tree, err := pageindex.BuildTree(result.Entries)
	if err != nil {
		return nil, err
	}
	log.Debug("built index tree", "tree", tree)
	if err := document.WriteFile(ctx, converter, pageindex.Build(p.project, tree), p.index); err != nil {
		return nil, fmt.Errorf("failed to render index: %w", err)
	}

	if _, err := merge.Merge(ctx, p.work, p.final, merge.Options{Logger: log}); err != nil {
		return nil, err
	}

	if cfg.Settings.KeepIntermediates {
		if err := os.WriteFile(filepath.Join(p.work, IndexTextName), []byte(pageindex.Text(tree)), 0644); err != nil {
			return nil, fmt.Errorf("failed to write text index: %w", err)
		}
		log.Info("kept intermediate documents", "path", p.work)
	} else if err := os.RemoveAll(p.work); err != nil {
		return nil, fmt.Errorf("failed to clean up %s: %w", p.work, err)
	}

	FormatSummary(cfg.Output, result)
	FormatDone(cfg.Output, p.final)
	return result, nil
}

// renderAll renders every file into the page directory and returns the
// flat file name to project path mapping of everything produced.
func renderAll(ctx context.Context, cfg Config, p paths, files []string, converter document.Converter, result *Result) (map[string]string, error) {
	log := cfg.Logger
	renderer := render.New(p.base, converter, log)
	sources := make(map[string]string, len(files))

	for _, rel := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		FormatProgress(cfg.Output, rel)

		name := pageindex.FlatName(rel, cfg.Settings.Divider)
		if prev, dup := sources[name]; dup {
			err := fmt.Errorf("%s flattens to the same name as %s", rel, prev)
			log.Warn("skipping file", "path", rel, "error", err)
			result.Files = append(result.Files, render.Result{Source: rel, Outcome: render.Skipped, Err: err})
			result.Skipped++
			continue
		}

		res, err := renderer.Render(ctx, rel, filepath.Join(p.pages, name))
		if err != nil {
			return nil, err
		}
		result.Files = append(result.Files, res)

		switch res.Outcome {
		case render.Produced:
			sources[name] = rel
			result.Produced++
		case render.Skipped:
			result.Skipped++
		case render.Failed:
			if errors.Is(res.Err, context.Canceled) {
				return nil, res.Err
			}
			FormatRenderError(cfg.Output, rel, res.Err)
			result.Failed++
		}
	}
	return sources, nil
}

// PlannedFile is one file a build would render
type PlannedFile struct {
	Path        string
	Name        string
	Orientation document.Orientation
	Lexer       string
	Lines       int
	// Skip is set when the file would not be rendered
	Skip error
}

// Plan enumerates and lays out every file without writing anything
func Plan(cfg Config) ([]PlannedFile, error) {
	cfg = withDefaults(cfg)
	if err := cfg.Settings.Validate(); err != nil {
		return nil, err
	}

	p, err := resolve(cfg)
	if err != nil {
		return nil, err
	}

	patterns, err := ignore.Load(p.ignore)
	if err != nil {
		return nil, err
	}
	files, err := scan.Enumerate(p.base, scan.Options{Matcher: ignore.New(patterns), Logger: cfg.Logger})
	if err != nil {
		return nil, err
	}

	renderer := render.New(p.base, nil, cfg.Logger)
	seen := make(map[string]string, len(files))
	planned := make([]PlannedFile, 0, len(files))
	for _, rel := range files {
		pf := PlannedFile{Path: rel, Name: pageindex.FlatName(rel, cfg.Settings.Divider)}

		if prev, dup := seen[pf.Name]; dup {
			pf.Skip = fmt.Errorf("flattens to the same name as %s", prev)
			planned = append(planned, pf)
			continue
		}

		doc, lexer, err := renderer.Build(rel)
		switch {
		case errors.Is(err, render.ErrUndecodable):
			pf.Skip = err
		case err != nil:
			return nil, err
		default:
			seen[pf.Name] = rel
			pf.Orientation = doc.Orientation
			pf.Lexer = lexer
			pf.Lines = len(doc.Lines)
		}
		planned = append(planned, pf)
	}
	return planned, nil
}
