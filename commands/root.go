// Package commands wires the ontoforge CLI: one cobra subcommand per
// operation, each loading a YAML configuration and printing a formatted
// report.
package commands

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// Version information, overridable at build time.
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "ontoforge"
)

// Root builds the ontoforge command tree.
func Root() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Ontology merge, split, and migration toolkit",
		Long: `Ontoforge merges multiple ontology documents into one graph with
explicit conflict handling, splits a monolithic ontology into modules
with inferred dependencies, and migrates identifiers across ontologies
and their instance data.

Operations are driven by YAML configuration files; run
"ontoforge init-config <kind>" to generate a starting point.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(logLevel)
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newMergeCmd(),
		newSplitCmd(),
		newMigrateCmd(),
		newDeprecateCmd(),
		newInitConfigCmd(),
		newVersionCmd(),
	)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	}
}

func configureLogging(logLevel string) {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}
