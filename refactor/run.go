package refactor

import (
	"github.com/ontoforge/ontoforge/config"
	"github.com/ontoforge/ontoforge/migrate"
	"github.com/ontoforge/ontoforge/rdf"
	"github.com/ontoforge/ontoforge/rdfio"
)

// RefactorResult is the outcome of a config-driven refactor over a file:
// renames first, then deprecations, against one graph.
type RefactorResult struct {
	// Graph is the refactored graph, written to the configured output
	// unless the run was dry.
	Graph *rdf.Graph

	RenameStats      migrate.MigrationStats
	DeprecationStats DeprecationStats
	EntityInfo       []DeprecationInfo

	Success bool
	Error   string
}

// Apply loads a source ontology, applies the rename configuration and
// then every deprecation spec, and writes the result.
func Apply(source string, cfg config.RefactorConfig) RefactorResult {
	if err := cfg.Validate(); err != nil {
		return RefactorResult{Error: err.Error()}
	}

	g, err := rdfio.LoadFile(source)
	if err != nil {
		return RefactorResult{Error: err.Error()}
	}

	result := RefactorResult{Graph: g, Success: true}

	if cfg.Rename != nil {
		renamed := NewRenamer().Rename(g, *cfg.Rename)
		if !renamed.Success {
			return RefactorResult{Error: renamed.Error}
		}
		result.Graph = renamed.Renamed
		result.RenameStats = renamed.Stats
	}

	if len(cfg.Deprecations) > 0 {
		deprecated := NewDeprecator().DeprecateBulk(result.Graph, cfg.Deprecations)
		if !deprecated.Success {
			return RefactorResult{Error: deprecated.Error}
		}
		result.Graph = deprecated.Deprecated
		result.DeprecationStats = deprecated.Stats
		result.EntityInfo = deprecated.EntityInfo
	}

	if !cfg.DryRun && cfg.Output != "" {
		if err := rdfio.WriteFile(result.Graph, cfg.Output); err != nil {
			return RefactorResult{Error: err.Error()}
		}
	}
	return result
}
