package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ontoforge/ontoforge/config"
	"github.com/ontoforge/ontoforge/migrate"
	"github.com/ontoforge/ontoforge/report"
)

func newMigrateCmd() *cobra.Command {
	var (
		configPath   string
		dryRun       bool
		reportFormat string
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Rewrite identifiers across instance data",
		Long: `Migrate applies the configured URI map (explicit entity mappings and
namespace moves) plus rename/transform rules to every configured data
file. Literal values are never rewritten; literals that mention a
renamed identifier are reported for manual review.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadMigrationConfig(configPath)
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

			result := migrate.Run(*cfg)
			if !result.Success {
				return fmt.Errorf("migration failed: %s", result.Error)
			}
			for _, file := range result.Files {
				cmd.Printf("%s -> %s\n", file.Source, file.Output)
			}
			cmd.Print(formatter.FormatMigrationResult(migrate.MigrationResult{
				Stats:   result.Stats,
				Success: true,
			}))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "migration.yml", "Migration configuration file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compute the migration without writing output")
	cmd.Flags().StringVar(&reportFormat, "report", "text", "Report format (text, markdown, md)")
	return cmd
}
