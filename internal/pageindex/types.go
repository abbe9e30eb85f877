package pageindex

import (
	"encoding/json"
	"sort"
)

// Entry is one merged source file and the page its content starts on.
// Path is the original slash-separated project path.
type Entry struct {
	Path string `json:"path"`
	Page int    `json:"page"`
}

// Node is one position in the index tree: a *Dir or a *Leaf.
type Node interface {
	// Name is the path segment this node stands for
	Name() string
	node()
}

// Dir is a directory whose children are keyed by path segment
type Dir struct {
	name     string
	children map[string]Node
}

// Leaf is a file and the page it starts on
type Leaf struct {
	name string
	Page int
}

// NewDir creates an empty directory node
func NewDir(name string) *Dir {
	return &Dir{name: name, children: make(map[string]Node)}
}

func (d *Dir) Name() string { return d.name }
func (d *Dir) node()        {}

func (l *Leaf) Name() string { return l.name }
func (l *Leaf) node()        {}

// Len returns the number of direct children
func (d *Dir) Len() int { return len(d.children) }

// Child returns the direct child named name
func (d *Dir) Child(name string) (Node, bool) {
	n, ok := d.children[name]
	return n, ok
}

// Children returns the direct children sorted by name
func (d *Dir) Children() []Node {
	names := make([]string, 0, len(d.children))
	for name := range d.children {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Node, len(names))
	for i, name := range names {
		out[i] = d.children[name]
	}
	return out
}

// Walk traverses the tree depth-first in sorted order, calling fn with each
// node's slash-joined path and its depth (0 for children of d).
func (d *Dir) Walk(fn func(path string, depth int, n Node)) {
	var walk func(dir *Dir, prefix string, depth int)
	walk = func(dir *Dir, prefix string, depth int) {
		for _, child := range dir.Children() {
			p := child.Name()
			if prefix != "" {
				p = prefix + "/" + p
			}
			fn(p, depth, child)
			if sub, ok := child.(*Dir); ok {
				walk(sub, p, depth+1)
			}
		}
	}
	walk(d, "", 0)
}

// MarshalJSON encodes directories as objects and leaves as page numbers.
func (d *Dir) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(d.children))
	for name, child := range d.children {
		switch c := child.(type) {
		case *Dir:
			m[name] = c
		case *Leaf:
			m[name] = c.Page
		}
	}
	return json.Marshal(m)
}

// String returns a JSON representation of the tree for debugging.
func (d *Dir) String() string {
	b, _ := json.MarshalIndent(d, "", "  ")
	return string(b)
}
