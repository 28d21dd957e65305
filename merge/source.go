// Package merge combines multiple ontology documents into one graph with
// explicit, auditable conflict handling.
package merge

import (
	"sort"
	"strings"

	"github.com/ontoforge/ontoforge/rdf"
)

// SourceGraph pairs a loaded graph with its origin path and priority.
// Created once per input at merge start and never mutated; a namespace
// remap produces a new SourceGraph.
type SourceGraph struct {
	// Graph holds the parsed triples.
	Graph *rdf.Graph
	// Path is the origin file.
	Path string
	// Priority drives the priority conflict strategy. Defaults to the
	// 1-based position in the configured source list.
	Priority int
	// Order is the 0-based position in the configured source list, used
	// for documented tie-breaks.
	Order int
}

// remapNamespaces returns a new SourceGraph with every identifier that
// starts with an old namespace rewritten to the corresponding new
// namespace, preserving the local name. Prefix bindings pointing at an old
// namespace follow the move.
func (s SourceGraph) remapNamespaces(remap map[string]string) SourceGraph {
	if len(remap) == 0 {
		return s
	}

	// Longest namespace first: when one configured old namespace is a
	// prefix of another, the most specific one must win the match.
	olds := namespacesByLength(remap)

	rewrite := func(iri string) string {
		for _, old := range olds {
			if strings.HasPrefix(iri, old) {
				return remap[old] + iri[len(old):]
			}
		}
		return iri
	}

	out := rdf.NewGraph()
	for _, pair := range s.Graph.Prefixes() {
		ns := pair[1]
		if renamed, ok := remap[ns]; ok {
			ns = renamed
		}
		out.Bind(pair[0], ns)
	}
	for _, t := range s.Graph.Triples() {
		subject := t.S
		if iri, ok := subject.(rdf.IRI); ok {
			subject = rdf.NewIRI(rewrite(iri.Value))
		}
		object := t.O
		if iri, ok := object.(rdf.IRI); ok {
			object = rdf.NewIRI(rewrite(iri.Value))
		}
		out.Add(rdf.Triple{S: subject, P: rdf.NewIRI(rewrite(t.P.Value)), O: object})
	}

	return SourceGraph{Graph: out, Path: s.Path, Priority: s.Priority, Order: s.Order}
}

// namespacesByLength returns the map's keys longest first, ties broken
// lexically.
func namespacesByLength(remap map[string]string) []string {
	olds := make([]string, 0, len(remap))
	for old := range remap {
		olds = append(olds, old)
	}
	sort.Slice(olds, func(i, j int) bool {
		if len(olds[i]) != len(olds[j]) {
			return len(olds[i]) > len(olds[j])
		}
		return olds[i] < olds[j]
	})
	return olds
}
