package pageindex

import (
	"errors"
	"reflect"
	"testing"
)

func TestSplitPath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"single file", "a.py", []string{"a.py"}},
		{"nested", "sub/b.py", []string{"sub", "b.py"}},
		{"deep", "a/b/c/d.go", []string{"a", "b", "c", "d.go"}},
		{"dot and empty segments", "./a//b", []string{"a", "b"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitPath(tt.input)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("splitPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestBuildTree(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		root, err := BuildTree(nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if root.Len() != 0 {
			t.Errorf("expected empty root, got %d children", root.Len())
		}
	})

	t.Run("top level leaf and nested dir", func(t *testing.T) {
		root, err := BuildTree([]Entry{
			{Path: "a.py", Page: 1},
			{Path: "sub/b.py", Page: 2},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		a, ok := root.Child("a.py")
		if !ok {
			t.Fatal("expected a.py at top level")
		}
		if leaf, isLeaf := a.(*Leaf); !isLeaf || leaf.Page != 1 {
			t.Errorf("expected a.py to be a leaf on page 1, got %#v", a)
		}

		sub, ok := root.Child("sub")
		if !ok {
			t.Fatal("expected sub at top level")
		}
		dir, isDir := sub.(*Dir)
		if !isDir {
			t.Fatalf("expected sub to be a directory, got %T", sub)
		}
		b, ok := dir.Child("b.py")
		if !ok {
			t.Fatal("expected b.py inside sub")
		}
		if leaf, isLeaf := b.(*Leaf); !isLeaf || leaf.Page != 2 {
			t.Errorf("expected b.py to be a leaf on page 2, got %#v", b)
		}
	})

	t.Run("shared directories merge", func(t *testing.T) {
		root, err := BuildTree([]Entry{
			{Path: "src/a/x.go", Page: 1},
			{Path: "src/a/y.go", Page: 2},
			{Path: "src/b/z.go", Page: 4},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if root.Len() != 1 {
			t.Fatalf("expected 1 root child, got %d", root.Len())
		}
		src, _ := root.Child("src")
		if got := src.(*Dir).Len(); got != 2 {
			t.Errorf("expected src to have 2 children, got %d", got)
		}
	})

	t.Run("repeated path keeps last page", func(t *testing.T) {
		root, err := BuildTree([]Entry{{Path: "a.py", Page: 1}, {Path: "a.py", Page: 7}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if page, _ := root.PageOf("a.py"); page != 7 {
			t.Errorf("expected page 7, got %d", page)
		}
	})

	t.Run("file then directory conflicts", func(t *testing.T) {
		_, err := BuildTree([]Entry{{Path: "a", Page: 1}, {Path: "a/b", Page: 2}})
		if !errors.Is(err, ErrPathConflict) {
			t.Errorf("expected ErrPathConflict, got %v", err)
		}
	})

	t.Run("directory then file conflicts", func(t *testing.T) {
		_, err := BuildTree([]Entry{{Path: "a/b", Page: 1}, {Path: "a", Page: 2}})
		if !errors.Is(err, ErrPathConflict) {
			t.Errorf("expected ErrPathConflict, got %v", err)
		}
	})

	t.Run("empty path", func(t *testing.T) {
		if _, err := BuildTree([]Entry{{Path: "", Page: 1}}); err == nil {
			t.Error("expected error for empty path")
		}
	})
}

// Every recorded path must lead back to a leaf holding its page.
func TestBuildTree_EveryEntryReachable(t *testing.T) {
	entries := []Entry{
		{Path: "README.md", Page: 1},
		{Path: "cmd/root.go", Page: 2},
		{Path: "internal/a/a.go", Page: 3},
		{Path: "internal/a/a_test.go", Page: 5},
		{Path: "internal/b/deep/er/b.go", Page: 8},
		{Path: "main.go", Page: 9},
	}

	root, err := BuildTree(entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, e := range entries {
		page, ok := root.PageOf(e.Path)
		if !ok {
			t.Errorf("%s not reachable", e.Path)
			continue
		}
		if page != e.Page {
			t.Errorf("%s: expected page %d, got %d", e.Path, e.Page, page)
		}
	}
}

func TestLookup(t *testing.T) {
	root, err := BuildTree([]Entry{{Path: "sub/b.py", Page: 3}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if n, ok := root.Lookup("sub"); !ok {
		t.Error("expected sub to resolve")
	} else if _, isDir := n.(*Dir); !isDir {
		t.Errorf("expected sub to be a directory, got %T", n)
	}

	if _, ok := root.Lookup("sub/b.py/x"); ok {
		t.Error("expected lookup through a leaf to fail")
	}
	if _, ok := root.Lookup("missing"); ok {
		t.Error("expected missing path to fail")
	}
	if _, ok := root.Lookup(""); ok {
		t.Error("expected empty path to fail")
	}
	if _, ok := root.PageOf("sub"); ok {
		t.Error("expected PageOf a directory to fail")
	}
}

func TestChildrenSorted(t *testing.T) {
	root, err := BuildTree([]Entry{
		{Path: "zeta.go", Page: 1},
		{Path: "Alpha.go", Page: 2},
		{Path: "beta/x.go", Page: 3},
		{Path: "alpha.go", Page: 4},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var names []string
	for _, c := range root.Children() {
		names = append(names, c.Name())
	}
	expected := []string{"Alpha.go", "alpha.go", "beta", "zeta.go"}
	if !reflect.DeepEqual(names, expected) {
		t.Errorf("Children() = %q, want %q", names, expected)
	}
}

func TestFlatName(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"a.py", "a.py.pdf"},
		{"sub/b.py", "sub{divider}b.py.pdf"},
		{"a/b/c.go", "a{divider}b{divider}c.go.pdf"},
	}

	for _, tt := range tests {
		result := FlatName(tt.path, "{divider}")
		if result != tt.expected {
			t.Errorf("FlatName(%q) = %q, want %q", tt.path, result, tt.expected)
		}
		if back := SourcePath(result, "{divider}"); back != tt.path {
			t.Errorf("SourcePath(%q) = %q, want %q", result, back, tt.path)
		}
	}
}
