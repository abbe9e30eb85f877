package cmd

import (
	"os"

	"github.com/itsmostafa/codepdf/internal/pipeline"
	"github.com/spf13/cobra"
)

var buildFlags settingsFlags

var buildCmd = &cobra.Command{
	Use:   "build [dir]",
	Short: "Render the project into <project>.pdf",
	Long: `Render every included file in dir (default: the working directory), merge the
pages with page numbers, and write <project>.pdf with the file index first.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := projectDir(args)
		settings, err := buildFlags.load(cmd, dir)
		if err != nil {
			return err
		}

		_, err = pipeline.Run(cmd.Context(), pipeline.Config{
			BaseDir:  dir,
			Settings: settings,
			Output:   cmd.OutOrStdout(),
			Logger:   pipeline.NewLogger(settings.LogLevel, os.Stderr),
		})
		return err
	},
}

func init() {
	buildFlags.register(buildCmd)
	rootCmd.AddCommand(buildCmd)
}
