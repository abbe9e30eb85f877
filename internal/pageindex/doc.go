// Package pageindex builds the file index of a merged PDF.
//
// The numbered merge pass records, for every source file, the page on which
// its content starts. BuildTree nests those entries by path segment into a
// tree of directories and leaves that mirrors the project layout, and Build
// turns the tree into a document listing every file with its page number.
//
// # Key Concepts
//
//   - Entry: a project path and its 1-based starting page in the bundle.
//
//   - Node: either a *Dir keyed by path segment or a *Leaf holding a page.
//     Type switches over Node make the directory/file distinction explicit.
//
//   - Flat names: intermediate PDFs are stored flat, one per source file,
//     named by FlatName. Callers keep the original path alongside each flat
//     name, so the tree never has to be rebuilt from file names.
//
// # Usage
//
//	tree, err := pageindex.BuildTree(entries)
//	if err != nil {
//		return err
//	}
//	doc := pageindex.Build(projectName, tree)
//
// Siblings are always listed in sorted order, so the index is stable
// across runs over the same tree.
package pageindex
