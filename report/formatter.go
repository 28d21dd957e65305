// Package report renders operation results for humans: plain text for
// terminals and Markdown for review documents.
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

// Formatter renders results in one output format.
type Formatter interface {
	FormatMergeResult(result merge.MergeResult) string
	FormatConflictReport(conflicts []merge.Conflict) string
	FormatMigrationResult(result migrate.MigrationResult) string
	FormatSplitResult(result split.SplitResult) string
	FormatDeprecationResult(result refactor.DeprecationResult) string
}

// Get returns the formatter registered under the given name. "text"
// selects the plain formatter; "markdown" and "md" select Markdown.
func Get(name string) (Formatter, error) {
	switch strings.ToLower(name) {
	case "text":
		return &TextFormatter{}, nil
	case "markdown", "md":
		return &MarkdownFormatter{}, nil
	}
	return nil, fmt.Errorf("unknown formatter %q (want text, markdown, or md)", name)
}

// ANSI escape sequences for the text formatter.
const (
	colourReset  = "\x1b[0m"
	colourBold   = "\x1b[1m"
	colourRed    = "\x1b[31m"
	colourGreen  = "\x1b[32m"
	colourYellow = "\x1b[33m"
)

// TextFormatter renders results as plain terminal text, with optional
// ANSI colour.
type TextFormatter struct {
	UseColour bool
}

func (f *TextFormatter) paint(colour, text string) string {
	if !f.UseColour {
		return text
	}
	return colour + text + colourReset
}

// FormatMergeResult renders per-source triple counts, the merged total,
// and a conflict summary.
func (f *TextFormatter) FormatMergeResult(result merge.MergeResult) string {
	var b strings.Builder
	b.WriteString(f.paint(colourBold, "Merge result") + "\n")

	paths := make([]string, 0, len(result.SourceStats))
	for path := range result.SourceStats {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		fmt.Fprintf(&b, "  %s: %d triples\n", path, result.SourceStats[path])
	}
	fmt.Fprintf(&b, "  merged: %d triples\n", result.TotalTriples)

	unresolved := result.UnresolvedConflicts()
	switch {
	case len(result.Conflicts) == 0:
		b.WriteString("  conflicts: " + f.paint(colourGreen, "none") + "\n")
	case len(unresolved) == 0:
		fmt.Fprintf(&b, "  conflicts: %s\n",
			f.paint(colourGreen, fmt.Sprintf("%d resolved", len(result.Conflicts))))
	default:
		fmt.Fprintf(&b, "  conflicts: %s\n",
			f.paint(colourYellow, fmt.Sprintf("%d total, %d unresolved", len(result.Conflicts), len(unresolved))))
	}
	for _, target := range result.ImportsPlaceheld {
		fmt.Fprintf(&b, "  import placeholder: %s\n", target)
	}
	if !result.Success {
		fmt.Fprintf(&b, "  %s: %s\n", f.paint(colourRed, "error"), result.Error)
	}
	return b.String()
}

// FormatConflictReport renders each conflict with its competing values
// and resolution.
func (f *TextFormatter) FormatConflictReport(conflicts []merge.Conflict) string {
	if len(conflicts) == 0 {
		return "No conflicts detected.\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d)\n", f.paint(colourBold, "Conflicts"), len(conflicts))
	for _, c := range conflicts {
		fmt.Fprintf(&b, "  %s %s\n", c.Subject.String(), c.Predicate.Value)
		for _, v := range c.Values {
			fmt.Fprintf(&b, "    %s (from %s, priority %d)\n", v.Value.String(), v.Path, v.Priority)
		}
		if c.Resolved {
			fmt.Fprintf(&b, "    -> %s\n", f.paint(colourGreen, "resolved: "+c.Resolution.Value.String()))
		} else {
			fmt.Fprintf(&b, "    -> %s\n", f.paint(colourYellow, "unresolved"))
		}
	}
	return b.String()
}

// FormatMigrationResult renders rename counts and literal mentions.
func (f *TextFormatter) FormatMigrationResult(result migrate.MigrationResult) string {
	var b strings.Builder
	b.WriteString(f.paint(colourBold, "Migration result") + "\n")
	fmt.Fprintf(&b, "  subjects renamed: %d\n", result.Stats.SubjectsUpdated)
	fmt.Fprintf(&b, "  predicates renamed: %d\n", result.Stats.PredicatesUpdated)
	fmt.Fprintf(&b, "  objects renamed: %d\n", result.Stats.ObjectsUpdated)
	if result.Stats.TriplesConstructed > 0 || result.Stats.TriplesDeleted > 0 {
		fmt.Fprintf(&b, "  triples constructed: %d\n", result.Stats.TriplesConstructed)
		fmt.Fprintf(&b, "  triples deleted: %d\n", result.Stats.TriplesDeleted)
	}
	if len(result.Stats.LiteralMentions) > 0 {
		b.WriteString(f.paint(colourYellow,
			fmt.Sprintf("  %d literal(s) mention renamed identifiers and were left untouched:", len(result.Stats.LiteralMentions))) + "\n")
		for _, m := range result.Stats.LiteralMentions {
			fmt.Fprintf(&b, "    %s in %s %s: %q\n", m.URI, m.Subject, m.Predicate, m.Text)
		}
	}
	if !result.Success {
		fmt.Fprintf(&b, "  %s: %s\n", f.paint(colourRed, "error"), result.Error)
	}
	return b.String()
}

// FormatSplitResult renders per-module counts, dependencies, and the
// unmatched list.
func (f *TextFormatter) FormatSplitResult(result split.SplitResult) string {
	var b strings.Builder
	b.WriteString(f.paint(colourBold, "Split result") + "\n")
	for _, name := range result.ModuleOrder {
		g, ok := result.Modules[name]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "  %s: %d triples", name, g.Len())
		if deps := result.Dependencies[name]; len(deps) > 0 {
			fmt.Fprintf(&b, " (depends on %s)", strings.Join(deps, ", "))
		}
		b.WriteString("\n")
	}
	for _, name := range result.ModuleOrder {
		if g, ok := result.DataModules[name]; ok {
			fmt.Fprintf(&b, "  %s data: %d triples\n", name, g.Len())
		}
	}
	if len(result.Unmatched) > 0 {
		b.WriteString(f.paint(colourYellow,
			fmt.Sprintf("  unmatched entities: %d", len(result.Unmatched))) + "\n")
	}
	if !result.Success {
		fmt.Fprintf(&b, "  %s: %s\n", f.paint(colourRed, "error"), result.Error)
	}
	return b.String()
}

// FormatDeprecationResult renders per-entity outcomes and totals.
func (f *TextFormatter) FormatDeprecationResult(result refactor.DeprecationResult) string {
	var b strings.Builder
	b.WriteString(f.paint(colourBold, "Deprecation result") + "\n")
	for _, info := range result.EntityInfo {
		switch info.Status {
		case refactor.StatusDeprecated:
			fmt.Fprintf(&b, "  %s: %s", info.Entity, f.paint(colourGreen, "deprecated"))
			if info.ReplacedBy != "" {
				fmt.Fprintf(&b, " (replaced by %s)", info.ReplacedBy)
			}
			b.WriteString("\n")
		case refactor.StatusNotFound:
			fmt.Fprintf(&b, "  %s: %s\n", info.Entity, f.paint(colourYellow, "not found"))
		case refactor.StatusAlreadyDeprecated:
			fmt.Fprintf(&b, "  %s: already deprecated\n", info.Entity)
		}
	}
	fmt.Fprintf(&b, "  deprecated: %d, not found: %d, already deprecated: %d\n",
		result.Stats.EntitiesDeprecated,
		result.Stats.EntitiesNotFound,
		result.Stats.EntitiesAlreadyDeprecated)
	if !result.Success {
		fmt.Fprintf(&b, "  %s: %s\n", f.paint(colourRed, "error"), result.Error)
	}
	return b.String()
}
