// Package refactor applies maintenance edits to an ontology in place:
// identifier renames (explicit or namespace-wide) and entity deprecation
// with replacement pointers.
package refactor

import (
	"github.com/ontoforge/ontoforge/config"
	"github.com/ontoforge/ontoforge/migrate"
	"github.com/ontoforge/ontoforge/rdf"
)

// RenameResult is the outcome of one rename pass.
type RenameResult struct {
	// Renamed is the rewritten graph. The input graph is not mutated.
	Renamed *rdf.Graph
	Stats   migrate.MigrationStats

	Success bool
	Error   string
}

// OntologyRenamer rewrites identifiers across an ontology. It is a thin
// facade over the data migrator with rename-specific entry points.
type OntologyRenamer struct {
	migrator *migrate.DataMigrator
}

// NewRenamer creates a renamer.
func NewRenamer() *OntologyRenamer {
	return &OntologyRenamer{migrator: migrate.NewDataMigrator()}
}

// RenameSingle rewrites one identifier everywhere it appears as a
// subject, predicate, or object.
func (r *OntologyRenamer) RenameSingle(g *rdf.Graph, from, to string) RenameResult {
	return r.apply(g, map[string]string{from: to})
}

// RenameNamespace moves every identifier under the old namespace to the
// new one, preserving local names.
func (r *OntologyRenamer) RenameNamespace(g *rdf.Graph, oldNS, newNS string) RenameResult {
	uriMap := r.migrator.BuildURIMapFromNamespaces(g, map[string]string{oldNS: newNS})
	return r.apply(g, uriMap)
}

// Rename applies a full rename configuration: namespace moves first, then
// explicit entity mappings, which override namespace-derived ones.
func (r *OntologyRenamer) Rename(g *rdf.Graph, cfg config.RenameConfig) RenameResult {
	uriMap := r.migrator.BuildURIMapFromNamespaces(g, cfg.Namespaces)
	for from, to := range cfg.Entities {
		uriMap[from] = to
	}
	return r.apply(g, uriMap)
}

func (r *OntologyRenamer) apply(g *rdf.Graph, uriMap map[string]string) RenameResult {
	result := r.migrator.Migrate(g, uriMap)
	return RenameResult{
		Renamed: result.Migrated,
		Stats:   result.Stats,
		Success: result.Success,
		Error:   result.Error,
	}
}
