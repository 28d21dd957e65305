package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ontoforge/ontoforge/merge"
	"github.com/ontoforge/ontoforge/migrate"
	"github.com/ontoforge/ontoforge/refactor"
	"github.com/ontoforge/ontoforge/split"
)

// MarkdownFormatter renders results as Markdown review documents.
type MarkdownFormatter struct{}

// FormatMergeResult renders a source table and conflict summary.
func (f *MarkdownFormatter) FormatMergeResult(result merge.MergeResult) string {
	var b strings.Builder
	b.WriteString("# Merge Report\n\n")
	b.WriteString("| Source | Triples |\n|---|---|\n")

	paths := make([]string, 0, len(result.SourceStats))
	for path := range result.SourceStats {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		fmt.Fprintf(&b, "| %s | %d |\n", path, result.SourceStats[path])
	}
	fmt.Fprintf(&b, "| **merged** | **%d** |\n\n", result.TotalTriples)

	if len(result.Conflicts) > 0 {
		b.WriteString(f.FormatConflictReport(result.Conflicts))
	}
	if len(result.ImportsPlaceheld) > 0 {
		b.WriteString("\n## Import Placeholders\n\n")
		for _, target := range result.ImportsPlaceheld {
			fmt.Fprintf(&b, "- `%s`\n", target)
		}
	}
	return b.String()
}

// FormatConflictReport renders unresolved conflicts first, then resolved
// ones, each with its competing values.
func (f *MarkdownFormatter) FormatConflictReport(conflicts []merge.Conflict) string {
	var b strings.Builder
	b.WriteString("# Merge Conflict Report\n\n")
	if len(conflicts) == 0 {
		b.WriteString("No conflicts detected.\n")
		return b.String()
	}

	var unresolved, resolved []merge.Conflict
	for _, c := range conflicts {
		if c.Resolved {
			resolved = append(resolved, c)
		} else {
			unresolved = append(unresolved, c)
		}
	}

	fmt.Fprintf(&b, "## Unresolved (%d)\n\n", len(unresolved))
	for _, c := range unresolved {
		f.writeConflict(&b, c)
	}
	fmt.Fprintf(&b, "## Resolved (%d)\n\n", len(resolved))
	for _, c := range resolved {
		f.writeConflict(&b, c)
	}
	return b.String()
}

func (f *MarkdownFormatter) writeConflict(b *strings.Builder, c merge.Conflict) {
	fmt.Fprintf(b, "### `%s` `%s`\n\n", c.Subject.String(), c.Predicate.Value)
	for _, v := range c.Values {
		fmt.Fprintf(b, "- `%s` — %s (priority %d)\n", v.Value.String(), v.Path, v.Priority)
	}
	if c.Resolved {
		fmt.Fprintf(b, "\nResolved to `%s` from %s.\n\n", c.Resolution.Value.String(), c.Resolution.Path)
	} else {
		b.WriteString("\n")
	}
}

// FormatMigrationResult renders rename counts and literal mentions.
func (f *MarkdownFormatter) FormatMigrationResult(result migrate.MigrationResult) string {
	var b strings.Builder
	b.WriteString("# Migration Report\n\n")
	fmt.Fprintf(&b, "- Subjects renamed: %d\n", result.Stats.SubjectsUpdated)
	fmt.Fprintf(&b, "- Predicates renamed: %d\n", result.Stats.PredicatesUpdated)
	fmt.Fprintf(&b, "- Objects renamed: %d\n", result.Stats.ObjectsUpdated)
	fmt.Fprintf(&b, "- Triples constructed: %d\n", result.Stats.TriplesConstructed)
	fmt.Fprintf(&b, "- Triples deleted: %d\n", result.Stats.TriplesDeleted)

	if len(result.Stats.LiteralMentions) > 0 {
		b.WriteString("\n## Literal Mentions\n\nLiterals are never rewritten; review these manually.\n\n")
		for _, m := range result.Stats.LiteralMentions {
			fmt.Fprintf(&b, "- `%s` mentioned in `%s` `%s`: %q\n", m.URI, m.Subject, m.Predicate, m.Text)
		}
	}
	return b.String()
}

// FormatSplitResult renders a module table, the dependency graph, and
// the unmatched list.
func (f *MarkdownFormatter) FormatSplitResult(result split.SplitResult) string {
	var b strings.Builder
	b.WriteString("# Split Report\n\n")
	b.WriteString("| Module | Triples | Depends on |\n|---|---|---|\n")
	for _, name := range result.ModuleOrder {
		g, ok := result.Modules[name]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "| %s | %d | %s |\n", name, g.Len(), strings.Join(result.Dependencies[name], ", "))
	}
	if len(result.Unmatched) > 0 {
		fmt.Fprintf(&b, "\n## Unmatched Entities (%d)\n\n", len(result.Unmatched))
		for _, entity := range result.Unmatched {
			fmt.Fprintf(&b, "- `%s`\n", entity)
		}
	}
	return b.String()
}

// FormatDeprecationResult renders per-entity outcomes.
func (f *MarkdownFormatter) FormatDeprecationResult(result refactor.DeprecationResult) string {
	var b strings.Builder
	b.WriteString("# Deprecation Report\n\n")
	for _, info := range result.EntityInfo {
		switch info.Status {
		case refactor.StatusDeprecated:
			fmt.Fprintf(&b, "- `%s`: deprecated", info.Entity)
			if info.ReplacedBy != "" {
				fmt.Fprintf(&b, ", replaced by `%s`", info.ReplacedBy)
			}
			b.WriteString("\n")
		case refactor.StatusNotFound:
			fmt.Fprintf(&b, "- `%s`: **not found**\n", info.Entity)
		case refactor.StatusAlreadyDeprecated:
			fmt.Fprintf(&b, "- `%s`: already deprecated\n", info.Entity)
		}
	}
	fmt.Fprintf(&b, "\nDeprecated %d, not found %d, already deprecated %d.\n",
		result.Stats.EntitiesDeprecated,
		result.Stats.EntitiesNotFound,
		result.Stats.EntitiesAlreadyDeprecated)
	return b.String()
}
