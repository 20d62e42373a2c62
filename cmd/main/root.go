package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var opts runOptions

	rootCmd := &cobra.Command{
		Use:   "coursegen",
		Short: "Generate course documents and demo scripts from course metadata",
		Long: `coursegen reads course records from a loosely structured source file, picks a
content bundle for every course and writes one directory per course holding a
document and its demo script. With --discover it regenerates the course
directories that already exist under the output directory instead.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "coursegen.json", "Configuration file path (.json, .yaml, .yml or .toml)")
	flags.BoolVar(&opts.discover, "discover", false, "Read courses from the existing course directories instead of the source file")
	flags.StringVar(&opts.logLevel, "log-level", "", "Override the configured log level (debug, info, warn, error)")

	rootCmd.AddCommand(newTemplatesCommand(&opts))
	rootCmd.AddCommand(newPreviewCommand(&opts))

	return rootCmd
}
