package migrate

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ontoforge/ontoforge/config"
	"github.com/ontoforge/ontoforge/rdfio"
)

// FileResult is the outcome of migrating one source file.
type FileResult struct {
	Source string
	Output string
	Stats  MigrationStats
}

// RunResult is the outcome of a config-driven migration across files.
type RunResult struct {
	Files []FileResult
	// Stats aggregates the per-file counts.
	Stats MigrationStats

	Success bool
	Error   string
}

// ExpandSources resolves the configured source entries, treating each as
// a doublestar glob. Plain paths match themselves. The result is sorted
// and de-duplicated.
func ExpandSources(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad source pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("source pattern %q matched no files", pattern)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

// Run migrates every configured source file: the URI map is assembled
// from explicit entity mappings plus namespace-derived ones (explicit
// entries win), applied to each file, rules run after, and results land
// in the output directory under the source's base name.
func Run(cfg config.DataMigrationConfig) RunResult {
	if err := cfg.Validate(); err != nil {
		return RunResult{Error: err.Error()}
	}

	files, err := ExpandSources(cfg.Sources)
	if err != nil {
		return RunResult{Error: err.Error()}
	}

	migrator := NewDataMigrator()
	run := RunResult{Success: true}

	for _, src := range files {
		g, err := rdfio.LoadFile(src)
		if err != nil {
			return RunResult{Error: err.Error()}
		}

		uriMap := migrator.BuildURIMapFromNamespaces(g, cfg.Namespaces)
		for from, to := range cfg.Entities {
			uriMap[from] = to
		}

		result := migrator.Migrate(g, uriMap)
		if len(cfg.Rules) > 0 {
			result = mergeStats(result, migrator.ApplyRules(result.Migrated, cfg.Rules))
		}
		if !result.Success {
			return RunResult{Error: result.Error}
		}

		output := filepath.Join(cfg.OutputDir, filepath.Base(src))
		if !cfg.DryRun {
			if err := rdfio.WriteFile(result.Migrated, output); err != nil {
				return RunResult{Error: err.Error()}
			}
		}

		run.Files = append(run.Files, FileResult{Source: src, Output: output, Stats: result.Stats})
		accumulate(&run.Stats, result.Stats)
	}
	return run
}

// mergeStats folds a rule pass's result into the preceding map pass.
func mergeStats(base, rules MigrationResult) MigrationResult {
	if !rules.Success {
		return rules
	}
	accumulate(&rules.Stats, base.Stats)
	return rules
}

func accumulate(dst *MigrationStats, src MigrationStats) {
	dst.SubjectsUpdated += src.SubjectsUpdated
	dst.PredicatesUpdated += src.PredicatesUpdated
	dst.ObjectsUpdated += src.ObjectsUpdated
	dst.TriplesConstructed += src.TriplesConstructed
	dst.TriplesDeleted += src.TriplesDeleted
	dst.LiteralMentions = append(dst.LiteralMentions, src.LiteralMentions...)
}
