package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/itsmostafa/codepdf/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "codepdf",
	Short: "Print a source tree as one indexed, highlighted PDF",
	Long: `codepdf walks a project directory, renders every file as a syntax-highlighted,
line-numbered PDF page, and merges the pages behind a tree index of starting
page numbers into <project>.pdf.

Paths listed in .pdfignore (one glob per line) are left out.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("%s\n", version.String()))
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
