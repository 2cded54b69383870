package cmd

import (
	"github.com/spf13/cobra"
)

// Execute runs the command tree with the process arguments.
func Execute(version string) error {
	return NewRootCommand(version).Execute()
}

// NewRootCommand builds the mealmate command tree. Without a subcommand it
// launches the terminal UI.
func NewRootCommand(version string) *cobra.Command {
	var configFlag string
	var baseURLFlag string
	var logLevelFlag string
	var jsonFlag bool

	ctx := newCommandContext(&configFlag, &baseURLFlag, &logLevelFlag, &jsonFlag)

	rootCmd := &cobra.Command{
		Use:           "mealmate",
		Short:         "Browse TheMealDB recipes from the terminal",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, ctx)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&baseURLFlag, "base-url", "", "TheMealDB API base URL")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "Write command output as JSON")

	rootCmd.AddCommand(newSearchCommand(ctx))
	rootCmd.AddCommand(newLetterCommand(ctx))
	rootCmd.AddCommand(newFilterCommand(ctx))
	rootCmd.AddCommand(newShowCommand(ctx))
	rootCmd.AddCommand(newRandomCommand(ctx))
	rootCmd.AddCommand(newHomeCommand(ctx))
	rootCmd.AddCommand(newCategoriesCommand(ctx))
	rootCmd.AddCommand(newAreasCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
