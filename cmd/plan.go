package cmd

import (
	"os"

	"github.com/itsmostafa/codepdf/internal/pipeline"
	"github.com/spf13/cobra"
)

var planFlags settingsFlags

var planCmd = &cobra.Command{
	Use:   "plan [dir]",
	Short: "List the files a build would render",
	Long:  `List every included file with the page layout and highlighter a build would use. Nothing is written.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := projectDir(args)
		settings, err := planFlags.load(cmd, dir)
		if err != nil {
			return err
		}

		planned, err := pipeline.Plan(pipeline.Config{
			BaseDir:  dir,
			Settings: settings,
			Logger:   pipeline.NewLogger(settings.LogLevel, os.Stderr),
		})
		if err != nil {
			return err
		}

		pipeline.FormatPlan(cmd.OutOrStdout(), planned)
		return nil
	},
}

func init() {
	planFlags.register(planCmd)
	rootCmd.AddCommand(planCmd)
}
