package pageindex

import "strings"

// FlatName is the flat intermediate file name for a project path: each
// "/" becomes divider and ".pdf" is appended.
func FlatName(path, divider string) string {
	return strings.ReplaceAll(path, "/", divider) + ".pdf"
}

// SourcePath reverses FlatName. The result is ambiguous when the original
// path contained divider, so callers should prefer the path recorded when
// the file was rendered.
func SourcePath(name, divider string) string {
	return strings.ReplaceAll(strings.TrimSuffix(name, ".pdf"), divider, "/")
}
