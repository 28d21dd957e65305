package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ontoforge/ontoforge/config"
)

// starter configurations by kind, with their default file names.
var starterConfigs = map[string]struct {
	filename string
	content  func() string
}{
	"merge":       {"merge.yml", config.DefaultMergeYAML},
	"split":       {"split.yml", config.DefaultSplitYAML},
	"rename":      {"renames.yml", config.DefaultRenameYAML},
	"deprecation": {"deprecations.yml", config.DefaultDeprecationYAML},
}

func newInitConfigCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "init-config <kind>",
		Short: "Generate a starter configuration file",
		Long: `Init-config writes a commented starter configuration for the given
kind: merge, split, rename, or deprecation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			starter, ok := starterConfigs[args[0]]
			if !ok {
				return fmt.Errorf("unknown config kind %q (want merge, split, rename, or deprecation)", args[0])
			}

			path := output
			if path == "" {
				path = starter.filename
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists, use --output to write elsewhere", path)
			}
			if err := os.WriteFile(path, []byte(starter.content()), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			cmd.Printf("wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (defaults to <kind>.yml)")
	return cmd
}
