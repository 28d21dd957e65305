package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ontoforge/ontoforge/config"
	"github.com/ontoforge/ontoforge/refactor"
	"github.com/ontoforge/ontoforge/report"
)

func newDeprecateCmd() *cobra.Command {
	var (
		configPath   string
		dryRun       bool
		reportFormat string
	)

	cmd := &cobra.Command{
		Use:   "deprecate <source.ttl>",
		Short: "Apply renames and deprecations to an ontology",
		Long: `Deprecate loads one ontology, applies the configured identifier
renames, marks the configured entities as deprecated (owl:deprecated,
dcterms:isReplacedBy, and a DEPRECATED comment), and writes the result
to the configured output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadRefactorConfig(configPath)
			if err != nil {
				return err
			}
			if dryRun {
				cfg.DryRun = true
			}
			formatter, err := report.Get(reportFormat)
			if err != nil {
				return err
			}

			result := refactor.Apply(args[0], *cfg)
			if !result.Success {
				return fmt.Errorf("refactor failed: %s", result.Error)
			}
			if result.RenameStats.TotalRenames() > 0 {
				cmd.Printf("renamed %d identifier occurrence(s)\n", result.RenameStats.TotalRenames())
			}
			cmd.Print(formatter.FormatDeprecationResult(refactor.DeprecationResult{
				Stats:      result.DeprecationStats,
				EntityInfo: result.EntityInfo,
				Success:    true,
			}))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "deprecations.yml", "Refactor configuration file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compute the refactor without writing output")
	cmd.Flags().StringVar(&reportFormat, "report", "text", "Report format (text, markdown, md)")
	return cmd
}
