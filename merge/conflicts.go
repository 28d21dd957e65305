package merge

import (
	"fmt"
	"sort"

	"github.com/ontoforge/ontoforge/rdf"
)

// ConflictValue is one competing value for a (subject, predicate) pair.
type ConflictValue struct {
	// Value is the differing object term.
	Value rdf.Term
	// Path is the origin file of the first source reporting this value.
	Path string
	// Priority is that source's priority.
	Priority int
	// Order is that source's position in the configured source list.
	Order int
}

// Conflict records a (subject, predicate) pair for which two or more
// sources contributed differing values. All values share the same subject
// and predicate; a resolution, once set, is one of the values.
type Conflict struct {
	Subject   rdf.Term
	Predicate rdf.IRI
	Values    []ConflictValue
	// Resolution is the chosen value, nil while unresolved.
	Resolution *ConflictValue
	// Resolved reports whether a strategy has picked a value.
	Resolved bool
}

// ResolveByPriority picks the value with the highest source priority.
// Ties resolve to the earliest source in configuration order.
func (c *Conflict) ResolveByPriority() {
	best := 0
	for i := 1; i < len(c.Values); i++ {
		if c.Values[i].Priority > c.Values[best].Priority {
			best = i
		} else if c.Values[i].Priority == c.Values[best].Priority && c.Values[i].Order < c.Values[best].Order {
			best = i
		}
	}
	c.resolve(best)
}

// ResolveByFirst picks the value from the earliest configured source. When
// that source contributed several values, the first in sorted-value order
// wins.
func (c *Conflict) ResolveByFirst() {
	best := 0
	for i := 1; i < len(c.Values); i++ {
		if c.Values[i].Order < c.Values[best].Order {
			best = i
		}
	}
	c.resolve(best)
}

// ResolveByLast picks the value from the latest configured source. When
// that source contributed several values, the last in sorted-value order
// wins, mirroring ResolveByFirst from the other end.
func (c *Conflict) ResolveByLast() {
	best := 0
	for i := 1; i < len(c.Values); i++ {
		if c.Values[i].Order >= c.Values[best].Order {
			best = i
		}
	}
	c.resolve(best)
}

func (c *Conflict) resolve(index int) {
	value := c.Values[index]
	c.Resolution = &value
	c.Resolved = true
}

// ConflictMarker returns the machine-readable begin sentinel bracketing a
// conflict's competing triples in mark_all output.
func ConflictMarker(c Conflict) string {
	return fmt.Sprintf("# BEGIN-CONFLICT subject=<%s> predicate=<%s> values=%d",
		c.Subject.String(), c.Predicate.Value, len(c.Values))
}

// ConflictEndMarker returns the matching end sentinel.
func ConflictEndMarker(c Conflict) string {
	return fmt.Sprintf("# END-CONFLICT subject=<%s> predicate=<%s>",
		c.Subject.String(), c.Predicate.Value)
}

// ConflictDetector compares triples across source graphs and reports
// (subject, predicate) pairs with differing values. Detection is purely
// textual: any difference counts, regardless of whether the predicate is
// semantically multi-valued.
type ConflictDetector struct {
	// IgnorePredicates lists predicate IRIs that never produce conflicts.
	IgnorePredicates map[string]bool
}

// NewConflictDetector creates a detector ignoring the given predicates.
func NewConflictDetector(ignorePredicates ...string) *ConflictDetector {
	ignore := make(map[string]bool, len(ignorePredicates))
	for _, p := range ignorePredicates {
		ignore[p] = true
	}
	return &ConflictDetector{IgnorePredicates: ignore}
}

// pairKey identifies a (subject, predicate) pair.
type pairKey struct {
	subject   string
	predicate string
}

// DetectConflicts is a pure function over the sources: it returns one
// Conflict per (subject, predicate) pair whose contributed value sets
// differ across two or more sources, sorted by subject then predicate.
func (d *ConflictDetector) DetectConflicts(sources []SourceGraph) []Conflict {
	type contribution struct {
		subject   rdf.Term
		predicate rdf.IRI
		// valuesBySource maps source order to that source's value set.
		valuesBySource map[int]map[string]rdf.Term
	}

	pairs := make(map[pairKey]*contribution)
	var keys []pairKey

	for _, src := range sources {
		for _, t := range src.Graph.Triples() {
			if d.IgnorePredicates[t.P.Value] {
				continue
			}
			key := pairKey{subject: t.S.String(), predicate: t.P.Value}
			entry, ok := pairs[key]
			if !ok {
				entry = &contribution{
					subject:        t.S,
					predicate:      t.P,
					valuesBySource: make(map[int]map[string]rdf.Term),
				}
				pairs[key] = entry
				keys = append(keys, key)
			}
			values, ok := entry.valuesBySource[src.Order]
			if !ok {
				values = make(map[string]rdf.Term)
				entry.valuesBySource[src.Order] = values
			}
			values[t.O.String()] = t.O
		}
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].subject != keys[j].subject {
			return keys[i].subject < keys[j].subject
		}
		return keys[i].predicate < keys[j].predicate
	})

	var conflicts []Conflict
	for _, key := range keys {
		entry := pairs[key]
		if len(entry.valuesBySource) < 2 {
			continue
		}
		if !valueSetsDiffer(entry.valuesBySource) {
			continue
		}

		// One ConflictValue per distinct value, attributed to the first
		// source (in configuration order) that contributed it.
		orders := make([]int, 0, len(entry.valuesBySource))
		for order := range entry.valuesBySource {
			orders = append(orders, order)
		}
		sort.Ints(orders)

		seen := make(map[string]bool)
		var values []ConflictValue
		for _, order := range orders {
			src := sourceByOrder(sources, order)
			valueKeys := make([]string, 0, len(entry.valuesBySource[order]))
			for vk := range entry.valuesBySource[order] {
				valueKeys = append(valueKeys, vk)
			}
			sort.Strings(valueKeys)
			for _, vk := range valueKeys {
				if seen[vk] {
					continue
				}
				seen[vk] = true
				values = append(values, ConflictValue{
					Value:    entry.valuesBySource[order][vk],
					Path:     src.Path,
					Priority: src.Priority,
					Order:    src.Order,
				})
			}
		}

		conflicts = append(conflicts, Conflict{
			Subject:   entry.subject,
			Predicate: entry.predicate,
			Values:    values,
		})
	}

	return conflicts
}

// valueSetsDiffer reports whether any two sources contributed different
// value sets for a pair. Sources agreeing on the full set of values do not
// conflict, even when that set has several members.
func valueSetsDiffer(valuesBySource map[int]map[string]rdf.Term) bool {
	var reference map[string]rdf.Term
	for _, values := range valuesBySource {
		if reference == nil {
			reference = values
			continue
		}
		if len(values) != len(reference) {
			return true
		}
		for vk := range values {
			if _, ok := reference[vk]; !ok {
				return true
			}
		}
	}
	return false
}

func sourceByOrder(sources []SourceGraph, order int) SourceGraph {
	for _, src := range sources {
		if src.Order == order {
			return src
		}
	}
	return SourceGraph{}
}
