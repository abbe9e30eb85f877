package pageindex

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPathConflict is returned when one path is both a file and a directory
var ErrPathConflict = errors.New("path is both a file and a directory")

// BuildTree nests entries by path segment. Each file becomes a leaf holding
// its page; a repeated path keeps the last page seen.
func BuildTree(entries []Entry) (*Dir, error) {
	root := NewDir("")

	for _, e := range entries {
		parts := splitPath(e.Path)
		if len(parts) == 0 {
			return nil, fmt.Errorf("empty index path for page %d", e.Page)
		}

		current := root
		for i, part := range parts[:len(parts)-1] {
			next, ok := current.children[part]
			if !ok {
				dir := NewDir(part)
				current.children[part] = dir
				current = dir
				continue
			}
			dir, isDir := next.(*Dir)
			if !isDir {
				return nil, fmt.Errorf("%s: %w", strings.Join(parts[:i+1], "/"), ErrPathConflict)
			}
			current = dir
		}

		name := parts[len(parts)-1]
		if existing, ok := current.children[name]; ok {
			if _, isDir := existing.(*Dir); isDir {
				return nil, fmt.Errorf("%s: %w", e.Path, ErrPathConflict)
			}
		}
		current.children[name] = &Leaf{name: name, Page: e.Page}
	}

	return root, nil
}

// Lookup walks path segment by segment and returns the node it names
func (d *Dir) Lookup(path string) (Node, bool) {
	parts := splitPath(path)
	if len(parts) == 0 {
		return nil, false
	}

	var n Node = d
	for _, part := range parts {
		dir, ok := n.(*Dir)
		if !ok {
			return nil, false
		}
		if n, ok = dir.children[part]; !ok {
			return nil, false
		}
	}
	return n, true
}

// PageOf returns the starting page of the file at path
func (d *Dir) PageOf(path string) (int, bool) {
	n, ok := d.Lookup(path)
	if !ok {
		return 0, false
	}
	leaf, ok := n.(*Leaf)
	if !ok {
		return 0, false
	}
	return leaf.Page, true
}

func splitPath(p string) []string {
	var parts []string
	for _, part := range strings.Split(p, "/") {
		if part != "" && part != "." {
			parts = append(parts, part)
		}
	}
	return parts
}
