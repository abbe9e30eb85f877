package scan

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/itsmostafa/codepdf/internal/ignore"
)

// Options configures the project walk
type Options struct {
	// Matcher decides exclusions; nil includes everything
	Matcher *ignore.Matcher

	// Logger receives pruning and skip diagnostics
	Logger *slog.Logger
}

// Enumerate walks baseDir depth-first in lexical order and returns the
// slash-separated relative paths of every included regular file.
//
// An ignored directory is pruned with its whole subtree. Symlinked
// directories are never followed; symlinks to regular files are kept.
func Enumerate(baseDir string, opts Options) ([]string, error) {
	info, err := os.Stat(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", baseDir)
	}

	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	files := make([]string, 0)
	err = filepath.WalkDir(baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// The root itself is never tested.
		if path == baseDir {
			return nil
		}

		rel, err := filepath.Rel(baseDir, path)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", path, err)
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if opts.Matcher.IsIgnored(rel) {
				log.Debug("pruned directory", "path", rel)
				return filepath.SkipDir
			}
			return nil
		}

		if !includeEntry(path, d) {
			log.Debug("skipped non-regular entry", "path", rel)
			return nil
		}

		if opts.Matcher.IsIgnored(rel) {
			log.Debug("ignored file", "path", rel)
			return nil
		}

		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	return files, nil
}

// includeEntry keeps regular files and symlinks that resolve to one.
func includeEntry(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	target, err := os.Stat(path)
	if err != nil {
		return false
	}
	return target.Mode().IsRegular()
}
