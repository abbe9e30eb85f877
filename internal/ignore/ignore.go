// Package ignore decides which project paths are excluded from the PDF.
//
// Rules come from a plain text file with one shell-style glob per line.
// A path is ignored when any rule matches its base name, its full
// slash-separated relative path, or names a directory the path sits in.
// Globs follow fnmatch: `*` and `?` also match `/`, `[...]` classes are
// supported, and braces and backslashes are ordinary characters. There is
// no negation.
package ignore

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// Load reads the ignore file at path and returns its patterns in file order.
// A missing file yields no patterns.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open ignore file: %w", err)
	}
	defer f.Close()

	patterns, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read ignore file %s: %w", path, err)
	}
	return patterns, nil
}

// Parse returns the non-blank, non-comment lines of r, trimmed.
// Only a `#` in the first column starts a comment.
func Parse(r io.Reader) ([]string, error) {
	var patterns []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		raw := scanner.Text()
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(raw, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return patterns, nil
}

type rule struct {
	raw    string
	prefix string
	glob   glob.Glob // nil when raw cannot be compiled
}

func (r rule) matchGlob(s string) bool {
	if r.glob == nil {
		return s == r.raw
	}
	return r.glob.Match(s)
}

// Matcher tests relative paths against an immutable rule list
type Matcher struct {
	rules []rule
}

// New compiles patterns into a Matcher. An empty list ignores nothing.
func New(patterns []string) *Matcher {
	m := &Matcher{rules: make([]rule, 0, len(patterns))}
	for _, p := range patterns {
		r := rule{raw: p, prefix: strings.TrimRight(p, "/")}
		if g, err := compileFnmatch(p); err == nil {
			r.glob = g
		}
		m.rules = append(m.rules, r)
	}
	return m
}

// Patterns returns the rule text in load order
func (m *Matcher) Patterns() []string {
	out := make([]string, len(m.rules))
	for i, r := range m.rules {
		out[i] = r.raw
	}
	return out
}

// IsIgnored reports whether rel, a path relative to the project root,
// is excluded. Matching is case-sensitive.
func (m *Matcher) IsIgnored(rel string) bool {
	if m == nil || len(m.rules) == 0 {
		return false
	}

	rel = filepath.ToSlash(rel)
	base := path.Base(rel)

	for _, r := range m.rules {
		if r.matchGlob(base) || r.matchGlob(rel) {
			return true
		}
		// Directory prefix: the raw rule text is compared as a path, so a
		// rule carrying glob metacharacters only matches itself literally.
		if common, ok := commonPath(rel, r.raw); ok && common == r.prefix {
			return true
		}
	}
	return false
}

// IsIgnored is a convenience wrapper for one-off checks
func IsIgnored(rel string, patterns []string) bool {
	return New(patterns).IsIgnored(rel)
}

// commonPath returns the longest shared leading run of path components of
// a and b. Empty and "." components are dropped before comparing. Mixing
// absolute and relative paths has no common path.
func commonPath(a, b string) (string, bool) {
	absA, absB := strings.HasPrefix(a, "/"), strings.HasPrefix(b, "/")
	if absA != absB {
		return "", false
	}

	ca, cb := components(a), components(b)
	n := 0
	for n < len(ca) && n < len(cb) && ca[n] == cb[n] {
		n++
	}

	common := strings.Join(ca[:n], "/")
	if absA {
		common = "/" + common
	}
	return common, true
}

func components(p string) []string {
	parts := strings.Split(p, "/")
	out := parts[:0]
	for _, part := range parts {
		if part == "" || part == "." {
			continue
		}
		out = append(out, part)
	}
	return out
}
