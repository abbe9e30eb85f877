package pageindex

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/itsmostafa/codepdf/internal/document"
)

func sampleTree(t *testing.T) *Dir {
	t.Helper()
	root, err := BuildTree([]Entry{
		{Path: "a.py", Page: 1},
		{Path: "sub/b.py", Page: 2},
		{Path: "sub/inner/c.py", Page: 4},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return root
}

func TestDirString(t *testing.T) {
	result := sampleTree(t).String()
	if result == "" {
		t.Fatal("expected non-empty string representation")
	}

	// Should be valid JSON
	var parsed map[string]any
	if err := json.Unmarshal([]byte(result), &parsed); err != nil {
		t.Fatalf("String() should return valid JSON: %v", err)
	}

	if parsed["a.py"] != float64(1) {
		t.Errorf("expected a.py=1, got %v", parsed["a.py"])
	}
	sub, ok := parsed["sub"].(map[string]any)
	if !ok {
		t.Fatalf("expected sub to be an object, got %T", parsed["sub"])
	}
	if sub["b.py"] != float64(2) {
		t.Errorf("expected sub/b.py=2, got %v", sub["b.py"])
	}
}

func TestWalk(t *testing.T) {
	var visited []string
	var depths []int
	sampleTree(t).Walk(func(path string, depth int, _ Node) {
		visited = append(visited, path)
		depths = append(depths, depth)
	})

	expected := []string{"a.py", "sub", "sub/b.py", "sub/inner", "sub/inner/c.py"}
	if strings.Join(visited, ",") != strings.Join(expected, ",") {
		t.Errorf("Walk visited %v, want %v", visited, expected)
	}
	expectedDepths := []int{0, 0, 1, 1, 2}
	for i := range expectedDepths {
		if depths[i] != expectedDepths[i] {
			t.Errorf("depth of %s = %d, want %d", visited[i], depths[i], expectedDepths[i])
		}
	}
}

func TestLines(t *testing.T) {
	lines := Lines(sampleTree(t))

	expected := []struct {
		indent int
		text   string
	}{
		{0, "a.py .......................... 1"},
		{0, "sub/"},
		{1, "b.py .......................... 2"},
		{1, "inner/"},
		{2, "c.py .......................... 4"},
	}

	if len(lines) != len(expected) {
		t.Fatalf("expected %d lines, got %d", len(expected), len(lines))
	}
	for i, e := range expected {
		if lines[i].Indent != e.indent {
			t.Errorf("line %d indent = %d, want %d", i, lines[i].Indent, e.indent)
		}
		if lines[i].Text() != e.text {
			t.Errorf("line %d = %q, want %q", i, lines[i].Text(), e.text)
		}
	}
}

func TestBuild(t *testing.T) {
	doc := Build("myproject", sampleTree(t))

	if doc.Kind != document.KindIndex {
		t.Errorf("expected index kind, got %v", doc.Kind)
	}
	if doc.Title != "myproject" {
		t.Errorf("expected title 'myproject', got %q", doc.Title)
	}
	if doc.Subtitle != "Index of Files" {
		t.Errorf("expected subtitle 'Index of Files', got %q", doc.Subtitle)
	}
	if doc.Orientation != document.Portrait {
		t.Errorf("expected portrait index, got %s", doc.Orientation)
	}
	if len(doc.Lines) != 5 {
		t.Errorf("expected 5 lines, got %d", len(doc.Lines))
	}
}

func TestText(t *testing.T) {
	expected := "a.py .......................... 1\n" +
		"sub/\n" +
		"  b.py .......................... 2\n" +
		"  inner/\n" +
		"    c.py .......................... 4\n"

	if got := Text(sampleTree(t)); got != expected {
		t.Errorf("Text() =\n%s\nwant\n%s", got, expected)
	}
}

func TestBuild_EmptyTree(t *testing.T) {
	root, err := BuildTree(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc := Build("empty", root)
	if len(doc.Lines) != 0 {
		t.Errorf("expected no lines, got %d", len(doc.Lines))
	}
}
