package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ontoforge/ontoforge/config"
	"github.com/ontoforge/ontoforge/report"
	"github.com/ontoforge/ontoforge/split"
)

func newSplitCmd() *cobra.Command {
	var (
		configPath   string
		byNamespace  string
		outputDir    string
		dryRun       bool
		reportFormat string
	)

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a monolithic ontology into modules",
		Long: `Split partitions one ontology into the configured modules: entities
are claimed by explicit lists, namespace prefixes, and subclass
descendants, and cross-module references become owl:imports
dependencies. With --by-namespace, modules are derived from the source
graph's prefix bindings instead of a configuration file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := report.Get(reportFormat)
			if err != nil {
				return err
			}

			if byNamespace != "" {
				result := split.ByNamespace(byNamespace, outputDir, dryRun)
				cmd.Print(formatter.FormatSplitResult(result))
				if !result.Success {
					return fmt.Errorf("split failed: %s", result.Error)
				}
				return nil
			}

			cfg, err := config.LoadSplitConfig(configPath)
			if err != nil {
				return err
			}
			if dryRun {
				cfg.DryRun = true
			}

			splitter := split.NewSplitter(*cfg)
			result := splitter.Split()
			cmd.Print(formatter.FormatSplitResult(result))
			if !result.Success {
				return fmt.Errorf("split failed: %s", result.Error)
			}

			if err := splitter.WriteModules(result); err != nil {
				return err
			}
			return splitter.WriteManifest(result)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "split.yml", "Split configuration file")
	cmd.Flags().StringVar(&byNamespace, "by-namespace", "", "Split the given source with one module per namespace prefix")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "modules", "Output directory for --by-namespace")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compute the split without writing output")
	cmd.Flags().StringVar(&reportFormat, "report", "text", "Report format (text, markdown, md)")
	return cmd
}
