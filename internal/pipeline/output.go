package pipeline

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/itsmostafa/codepdf/internal/document"
)

var (
	// titleStyle for bold red headers
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("160"))

	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// successStyle for success indicators
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// warnStyle for skipped files
	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	// errorStyle for error indicators
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	// boxStyle for summary box with rounded border
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("160")).
			Padding(0, 1)

	// headerBoxStyle for the header
	headerBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("160")).
			Padding(0, 1)
)

// FormatHeader renders the run header with configuration info
func FormatHeader(w io.Writer, project, base, backend string) {
	content := fmt.Sprintf("%s %s  %s %s\n%s %s",
		dimStyle.Render("Project:"), titleStyle.Render(project),
		dimStyle.Render("Backend:"), titleStyle.Render(backend),
		dimStyle.Render("Path:"), base,
	)
	fmt.Fprintln(w, headerBoxStyle.Render(content))
}

// FormatProgress writes the per-file progress line
func FormatProgress(w io.Writer, path string) {
	fmt.Fprintf(w, "> Processing: %s\n", path)
}

// FormatRenderError writes the line reported for a backend failure
func FormatRenderError(w io.Writer, path string, err error) {
	fmt.Fprintf(w, "%s %s: %v\n", errorStyle.Render("Error rendering"), path, err)
}

// FormatSummary renders the run summary box
func FormatSummary(w io.Writer, r *Result) {
	failed := fmt.Sprintf("%d", r.Failed)
	if r.Failed > 0 {
		failed = errorStyle.Render(failed)
	}
	skipped := fmt.Sprintf("%d", r.Skipped)
	if r.Skipped > 0 {
		skipped = warnStyle.Render(skipped)
	}

	line1 := fmt.Sprintf("%s %s  %s %s  %s %s",
		dimStyle.Render("Rendered:"), successStyle.Render(fmt.Sprintf("%d", r.Produced)),
		dimStyle.Render("Skipped:"), skipped,
		dimStyle.Render("Failed:"), failed,
	)
	line2 := fmt.Sprintf("%s %d (%d portrait, %d landscape)  %s %d",
		dimStyle.Render("Pages:"), r.TotalPages,
		r.Orientations[document.Portrait], r.Orientations[document.Landscape],
		dimStyle.Render("Indexed:"), len(r.Entries),
	)

	content := titleStyle.Render("Build Complete") + "\n" + line1 + "\n" + line2
	fmt.Fprintln(w, boxStyle.Render(content))
}

// FormatDone writes the completion message
func FormatDone(w io.Writer, output string) {
	fmt.Fprintln(w, successStyle.Render("All done... "+output))
}

// FormatPlan lists what a build would render
func FormatPlan(w io.Writer, files []PlannedFile) {
	for _, f := range files {
		if f.Skip != nil {
			fmt.Fprintf(w, "%s %s %s\n", warnStyle.Render("skip"), f.Path, dimStyle.Render(f.Skip.Error()))
			continue
		}
		fmt.Fprintf(w, "%-9s %s %s\n", string(f.Orientation), f.Path,
			dimStyle.Render(fmt.Sprintf("(%s, %d lines)", f.Lexer, f.Lines)))
	}
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("%d files", len(files))))
}
