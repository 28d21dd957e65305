package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/ontoforge/ontoforge/config"
	"github.com/ontoforge/ontoforge/merge"
	"github.com/ontoforge/ontoforge/migrate"
	"github.com/ontoforge/ontoforge/report"
)

func newMergeCmd() *cobra.Command {
	var (
		configPath   string
		dryRun       bool
		reportFormat string
		watch        bool
	)

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge ontology sources into one graph",
		Long: `Merge loads the configured sources, detects value conflicts per
(subject, predicate) pair, resolves them per the configured strategy,
and writes the unioned graph. With --watch, the merge reruns whenever
a source file changes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadMergeConfig(configPath)
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

			if !watch {
				return runMerge(cmd, cfg, formatter)
			}
			return watchMerge(cmd, cfg, formatter)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "merge.yml", "Merge configuration file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compute the merge without writing output")
	cmd.Flags().StringVar(&reportFormat, "report", "text", "Report format (text, markdown, md)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Rerun the merge when a source file changes")
	return cmd
}

func runMerge(cmd *cobra.Command, cfg *config.MergeConfig, formatter report.Formatter) error {
	result := merge.NewMerger(*cfg).Merge()
	cmd.Print(formatter.FormatMergeResult(result))
	if !result.Success {
		return fmt.Errorf("merge failed: %s", result.Error)
	}

	if cfg.Migration != nil {
		migrated := migrate.Run(*cfg.Migration)
		if !migrated.Success {
			return fmt.Errorf("data migration failed: %s", migrated.Error)
		}
		for _, file := range migrated.Files {
			slog.Info("migrated data file",
				"source", file.Source,
				"output", file.Output,
				"renames", file.Stats.TotalRenames())
		}
	}
	return nil
}

// watchMerge reruns the merge whenever a configured source file is
// written. Events are debounced because editors fire several per save.
func watchMerge(cmd *cobra.Command, cfg *config.MergeConfig, formatter report.Formatter) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]bool)
	for _, source := range cfg.Sources {
		dir := filepath.Dir(source.Path)
		if !watched[dir] {
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			watched[dir] = true
		}
	}
	sources := make(map[string]bool, len(cfg.Sources))
	for _, source := range cfg.Sources {
		sources[filepath.Clean(source.Path)] = true
	}

	if err := runMerge(cmd, cfg, formatter); err != nil {
		slog.Error("merge failed", "error", err)
	}
	slog.Info("watching for source changes", "sources", len(sources))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var debounce *time.Timer
	rerun := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			slog.Info("stopping watch")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !sources[filepath.Clean(event.Name)] {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(250*time.Millisecond, func() {
				select {
				case rerun <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", "error", err)
		case <-rerun:
			slog.Info("source changed, rerunning merge")
			if err := runMerge(cmd, cfg, formatter); err != nil {
				slog.Error("merge failed", "error", err)
				fmt.Fprintln(os.Stderr, err)
			}
		}
	}
}
