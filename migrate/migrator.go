// Package migrate rewrites identifiers across a graph: bulk URI
// substitution from explicit or namespace-derived maps, plus a small
// pattern-matching rule engine for transformations that are not 1:1.
package migrate

import (
	"sort"
	"strings"

	"github.com/ontoforge/ontoforge/config"
	"github.com/ontoforge/ontoforge/rdf"
)

// LiteralMention records a place where a renamed identifier's local name
// appears inside a literal's text. The literal is deliberately left
// untouched; the mention is informational, for manual review.
type LiteralMention struct {
	// URI is the mapped identifier whose local name was found.
	URI string
	// Subject and Predicate locate the literal.
	Subject   string
	Predicate string
	// Text is the literal's lexical form.
	Text string
}

// MigrationStats counts what a migration touched.
type MigrationStats struct {
	SubjectsUpdated   int
	PredicatesUpdated int
	ObjectsUpdated    int
	// TriplesConstructed and TriplesDeleted count transform rule effects.
	TriplesConstructed int
	TriplesDeleted     int
	// LiteralMentions lists identifiers found inside literal text.
	LiteralMentions []LiteralMention
}

// TotalRenames returns the number of term rewrites across all positions.
func (s MigrationStats) TotalRenames() int {
	return s.SubjectsUpdated + s.PredicatesUpdated + s.ObjectsUpdated
}

// MigrationResult is the outcome of one migration run.
type MigrationResult struct {
	// Migrated is the rewritten graph. The input graph is not mutated.
	Migrated *rdf.Graph
	Stats    MigrationStats

	Success bool
	Error   string
}

// DataMigrator rewrites identifiers in an arbitrary graph. It is
// independent of the merger but consumed by it and by the splitter's
// instance-data step.
type DataMigrator struct{}

// NewDataMigrator creates a migrator.
func NewDataMigrator() *DataMigrator { return &DataMigrator{} }

// BuildURIMapFromNamespaces enumerates every identifier in the graph whose
// value starts with an old namespace and maps it to the new namespace plus
// the same local suffix.
func (m *DataMigrator) BuildURIMapFromNamespaces(g *rdf.Graph, namespaces map[string]string) map[string]string {
	// Longest namespace first: when one configured old namespace is a
	// prefix of another, the most specific one must win the match.
	olds := make([]string, 0, len(namespaces))
	for old := range namespaces {
		olds = append(olds, old)
	}
	sort.Slice(olds, func(i, j int) bool {
		if len(olds[i]) != len(olds[j]) {
			return len(olds[i]) > len(olds[j])
		}
		return olds[i] < olds[j]
	})

	uriMap := make(map[string]string)
	record := func(term rdf.Term) {
		iri, ok := term.(rdf.IRI)
		if !ok {
			return
		}
		for _, old := range olds {
			if strings.HasPrefix(iri.Value, old) {
				uriMap[iri.Value] = namespaces[old] + iri.Value[len(old):]
				return
			}
		}
	}
	for _, t := range g.Triples() {
		record(t.S)
		record(t.P)
		record(t.O)
	}
	return uriMap
}

// Migrate rewrites every subject, predicate, and object present as a key
// in the URI map. Literal values are never rewritten, even when their text
// contains a mapped identifier's local name; such occurrences are recorded
// as literal mentions.
func (m *DataMigrator) Migrate(g *rdf.Graph, uriMap map[string]string) MigrationResult {
	out := rdf.NewGraph()
	out.CopyBindings(g)

	var stats MigrationStats
	locals := localNames(uriMap)

	for _, t := range g.Triples() {
		subject := t.S
		if iri, ok := subject.(rdf.IRI); ok {
			if renamed, hit := uriMap[iri.Value]; hit {
				subject = rdf.NewIRI(renamed)
				stats.SubjectsUpdated++
			}
		}

		predicate := t.P
		if renamed, hit := uriMap[predicate.Value]; hit {
			predicate = rdf.NewIRI(renamed)
			stats.PredicatesUpdated++
		}

		object := t.O
		switch o := object.(type) {
		case rdf.IRI:
			if renamed, hit := uriMap[o.Value]; hit {
				object = rdf.NewIRI(renamed)
				stats.ObjectsUpdated++
			}
		case rdf.Literal:
			for _, ln := range locals {
				if strings.Contains(o.Lexical, ln.local) {
					stats.LiteralMentions = append(stats.LiteralMentions, LiteralMention{
						URI:       ln.uri,
						Subject:   t.S.String(),
						Predicate: t.P.Value,
						Text:      o.Lexical,
					})
				}
			}
		}

		out.Add(rdf.Triple{S: subject, P: predicate, O: object})
	}

	return MigrationResult{Migrated: out, Stats: stats, Success: true}
}

// ApplyRules runs the configured migration rules in order: rename rules
// are gathered into one URI map and applied first, then each transform
// rule matches and constructs per binding.
func (m *DataMigrator) ApplyRules(g *rdf.Graph, rules []config.MigrationRule) MigrationResult {
	uriMap := make(map[string]string)
	for _, r := range rules {
		if r.Type == config.RuleRename {
			uriMap[r.From] = r.To
		}
	}

	result := m.Migrate(g, uriMap)
	current := result.Migrated

	engine := NewRuleEngine(current)
	for _, r := range rules {
		if r.Type != config.RuleTransform {
			continue
		}
		constructed, deleted, err := engine.ApplyTransform(current, r)
		if err != nil {
			return MigrationResult{Success: false, Error: err.Error()}
		}
		result.Stats.TriplesConstructed += constructed
		result.Stats.TriplesDeleted += deleted
	}

	result.Migrated = current
	return result
}

type localName struct {
	uri   string
	local string
}

// localNames extracts the local name of every mapped identifier, sorted
// for deterministic mention ordering.
func localNames(uriMap map[string]string) []localName {
	keys := make([]string, 0, len(uriMap))
	for k := range uriMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]localName, 0, len(keys))
	for _, k := range keys {
		local := k
		if idx := strings.LastIndexAny(k, "#/"); idx >= 0 && idx < len(k)-1 {
			local = k[idx+1:]
		}
		out = append(out, localName{uri: k, local: local})
	}
	return out
}
