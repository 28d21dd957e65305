package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ontoforge/ontoforge/merge"
	"github.com/ontoforge/ontoforge/migrate"
	"github.com/ontoforge/ontoforge/rdf"
	"github.com/ontoforge/ontoforge/refactor"
	"github.com/ontoforge/ontoforge/report"
	"github.com/ontoforge/ontoforge/split"
)

func sampleConflicts() []merge.Conflict {
	resolvedValue := merge.ConflictValue{
		Value:    rdf.NewLiteral("Structure"),
		Path:     "ext.ttl",
		Priority: 2,
	}
	resolved := merge.Conflict{
		Subject:   rdf.NewIRI("http://example.org/ont#Building"),
		Predicate: rdf.NewIRI("http://www.w3.org/2000/01/rdf-schema#label"),
		Values: []merge.ConflictValue{
			{Value: rdf.NewLiteral("Building"), Path: "core.ttl", Priority: 1},
			resolvedValue,
		},
		Resolution: &resolvedValue,
		Resolved:   true,
	}
	unresolved := merge.Conflict{
		Subject:   rdf.NewIRI("http://example.org/ont#Floor"),
		Predicate: rdf.NewIRI("http://www.w3.org/2000/01/rdf-schema#comment"),
		Values: []merge.ConflictValue{
			{Value: rdf.NewLiteral("A level."), Path: "core.ttl", Priority: 1},
			{Value: rdf.NewLiteral("A storey."), Path: "ext.ttl", Priority: 2},
		},
	}
	return []merge.Conflict{resolved, unresolved}
}

func TestGetFormatter(t *testing.T) {
	text, err := report.Get("text")
	require.NoError(t, err)
	assert.IsType(t, &report.TextFormatter{}, text)

	for _, name := range []string{"markdown", "md", "Markdown"} {
		f, err := report.Get(name)
		require.NoError(t, err)
		assert.IsType(t, &report.MarkdownFormatter{}, f)
	}

	_, err = report.Get("html")
	assert.ErrorContains(t, err, "unknown formatter")
}

func TestTextMergeResult(t *testing.T) {
	f := &report.TextFormatter{}
	result := merge.MergeResult{
		SourceStats:  map[string]int{"core.ttl": 5, "ext.ttl": 4},
		TotalTriples: 8,
		Conflicts:    sampleConflicts(),
		Success:      true,
	}

	out := f.FormatMergeResult(result)
	assert.Contains(t, out, "core.ttl: 5 triples")
	assert.Contains(t, out, "ext.ttl: 4 triples")
	assert.Contains(t, out, "merged: 8 triples")
	assert.Contains(t, out, "2 total, 1 unresolved")
	assert.NotContains(t, out, "\x1b[")
}

func TestTextColour(t *testing.T) {
	f := &report.TextFormatter{UseColour: true}
	out := f.FormatMergeResult(merge.MergeResult{Success: true})
	assert.Contains(t, out, "\x1b[1m")
	assert.Contains(t, out, "\x1b[0m")
}

func TestTextConflictReport(t *testing.T) {
	f := &report.TextFormatter{}

	out := f.FormatConflictReport(sampleConflicts())
	assert.Contains(t, out, "Conflicts (2)")
	assert.Contains(t, out, "http://example.org/ont#Building")
	assert.Contains(t, out, `resolved: "Structure"`)
	assert.Contains(t, out, "unresolved")

	assert.Equal(t, "No conflicts detected.\n", f.FormatConflictReport(nil))
}

func TestTextMigrationResult(t *testing.T) {
	f := &report.TextFormatter{}
	result := migrate.MigrationResult{
		Stats: migrate.MigrationStats{
			SubjectsUpdated: 3,
			LiteralMentions: []migrate.LiteralMention{{
				URI:       "http://example.org/ont#hasColour",
				Subject:   "http://example.org/ont#doc",
				Predicate: "http://www.w3.org/2000/01/rdf-schema#comment",
				Text:      "See hasColour.",
			}},
		},
		Success: true,
	}

	out := f.FormatMigrationResult(result)
	assert.Contains(t, out, "subjects renamed: 3")
	assert.Contains(t, out, "left untouched")
	assert.Contains(t, out, "hasColour")
}

func TestMarkdownConflictReport(t *testing.T) {
	f := &report.MarkdownFormatter{}

	out := f.FormatConflictReport(sampleConflicts())
	assert.Contains(t, out, "# Merge Conflict Report")
	assert.Contains(t, out, "## Unresolved (1)")
	assert.Contains(t, out, "## Resolved (1)")
	assert.Contains(t, out, "`\"Building\"`")
	assert.Contains(t, out, "`\"Structure\"`")
	assert.Contains(t, out, "Resolved to `\"Structure\"` from ext.ttl.")

	empty := f.FormatConflictReport(nil)
	assert.Contains(t, empty, "No conflicts detected.")
}

func TestMarkdownMergeResult(t *testing.T) {
	f := &report.MarkdownFormatter{}
	result := merge.MergeResult{
		SourceStats:      map[string]int{"core.ttl": 5},
		TotalTriples:     5,
		ImportsPlaceheld: []string{"http://external.org/upper.ttl"},
		Success:          true,
	}

	out := f.FormatMergeResult(result)
	assert.Contains(t, out, "# Merge Report")
	assert.Contains(t, out, "| core.ttl | 5 |")
	assert.Contains(t, out, "## Import Placeholders")
	assert.Contains(t, out, "- `http://external.org/upper.ttl`")
}

func TestMarkdownSplitResult(t *testing.T) {
	f := &report.MarkdownFormatter{}
	core := rdf.NewGraph()
	core.Add(rdf.Triple{
		S: rdf.NewIRI("http://example.org/core#Entity"),
		P: rdf.NewIRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#type"),
		O: rdf.NewIRI("http://www.w3.org/2002/07/owl#Class"),
	})

	result := split.SplitResult{
		Modules:      map[string]*rdf.Graph{"core": core},
		Dependencies: map[string][]string{"core": {"shared"}},
		ModuleOrder:  []string{"core"},
		Unmatched:    []string{"http://example.org/other#Thing"},
		Success:      true,
	}

	out := f.FormatSplitResult(result)
	assert.Contains(t, out, "# Split Report")
	assert.Contains(t, out, "| core | 1 | shared |")
	assert.Contains(t, out, "## Unmatched Entities (1)")
	assert.Contains(t, out, "- `http://example.org/other#Thing`")
}

func TestDeprecationFormatting(t *testing.T) {
	result := refactor.DeprecationResult{
		Stats: refactor.DeprecationStats{EntitiesDeprecated: 1, EntitiesNotFound: 1},
		EntityInfo: []refactor.DeprecationInfo{
			{
				Entity:     "http://example.org/ont#hasColour",
				ReplacedBy: "http://example.org/ont#hasColor",
				Status:     refactor.StatusDeprecated,
			},
			{Entity: "http://example.org/ont#Missing", Status: refactor.StatusNotFound},
		},
		Success: true,
	}

	text := (&report.TextFormatter{}).FormatDeprecationResult(result)
	assert.Contains(t, text, "replaced by http://example.org/ont#hasColor")
	assert.Contains(t, text, "not found")
	assert.Contains(t, text, "deprecated: 1, not found: 1, already deprecated: 0")

	md := (&report.MarkdownFormatter{}).FormatDeprecationResult(result)
	assert.Contains(t, md, "# Deprecation Report")
	assert.Contains(t, md, "**not found**")
	assert.Contains(t, md, "Deprecated 1, not found 1, already deprecated 0.")
}
