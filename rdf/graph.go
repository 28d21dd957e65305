package rdf

import (
	"sort"
	"strings"
)

// Graph is an in-memory set of triples with namespace bindings. Insertion
// order is tracked so the order-preserving writer can emit subjects in
// first-seen order; set membership ignores order.
//
// Graph is not safe for concurrent mutation. Every merge/split/migrate
// invocation owns its graphs end to end, so no locking is needed.
type Graph struct {
	triples []Triple
	index   map[string]int // triple key -> position in triples

	prefixes map[string]string // prefix -> namespace
	order    []string          // prefixes in binding order
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		index:    make(map[string]int),
		prefixes: make(map[string]string),
	}
}

// Add inserts a triple. Duplicate triples are ignored.
func (g *Graph) Add(t Triple) {
	key := t.String()
	if _, ok := g.index[key]; ok {
		return
	}
	g.index[key] = len(g.triples)
	g.triples = append(g.triples, t)
}

// AddAll inserts every triple from another graph.
func (g *Graph) AddAll(other *Graph) {
	for _, t := range other.triples {
		g.Add(t)
	}
}

// Remove deletes a triple if present.
func (g *Graph) Remove(t Triple) {
	key := t.String()
	if _, ok := g.index[key]; !ok {
		return
	}
	delete(g.index, key)
	// Rebuild positions; removal is rare relative to queries.
	kept := make([]Triple, 0, len(g.triples)-1)
	for _, existing := range g.triples {
		if existing.String() != key {
			kept = append(kept, existing)
		}
	}
	g.triples = kept
	for i, existing := range g.triples {
		g.index[existing.String()] = i
	}
}

// Has reports whether the triple is in the graph.
func (g *Graph) Has(t Triple) bool {
	_, ok := g.index[t.String()]
	return ok
}

// Len returns the number of triples.
func (g *Graph) Len() int { return len(g.triples) }

// Triples returns all triples in insertion order. The returned slice is a
// copy; mutating it does not affect the graph.
func (g *Graph) Triples() []Triple {
	out := make([]Triple, len(g.triples))
	copy(out, g.triples)
	return out
}

// Subjects returns distinct subjects in first-seen order.
func (g *Graph) Subjects() []Term {
	seen := make(map[string]bool)
	var out []Term
	for _, t := range g.triples {
		key := t.S.String()
		if !seen[key] {
			seen[key] = true
			out = append(out, t.S)
		}
	}
	return out
}

// TriplesFor returns all triples with the given subject, in insertion order.
func (g *Graph) TriplesFor(subject Term) []Triple {
	var out []Triple
	for _, t := range g.triples {
		if TermEqual(t.S, subject) {
			out = append(out, t)
		}
	}
	return out
}

// Objects returns the objects of all triples matching subject and predicate.
func (g *Graph) Objects(subject Term, predicate IRI) []Term {
	var out []Term
	for _, t := range g.triples {
		if t.P.Value == predicate.Value && TermEqual(t.S, subject) {
			out = append(out, t.O)
		}
	}
	return out
}

// SubjectsWith returns distinct subjects of triples matching predicate and
// object, in first-seen order.
func (g *Graph) SubjectsWith(predicate IRI, object Term) []Term {
	seen := make(map[string]bool)
	var out []Term
	for _, t := range g.triples {
		if t.P.Value != predicate.Value || !TermEqual(t.O, object) {
			continue
		}
		key := t.S.String()
		if !seen[key] {
			seen[key] = true
			out = append(out, t.S)
		}
	}
	return out
}

// Clone returns a deep copy of the graph, including namespace bindings.
func (g *Graph) Clone() *Graph {
	clone := NewGraph()
	clone.CopyBindings(g)
	for _, t := range g.triples {
		clone.Add(t)
	}
	return clone
}

// Bind associates a prefix with a namespace IRI. Rebinding an existing
// prefix replaces the namespace.
func (g *Graph) Bind(prefix, namespace string) {
	if _, ok := g.prefixes[prefix]; !ok {
		g.order = append(g.order, prefix)
	}
	g.prefixes[prefix] = namespace
}

// Namespace returns the namespace bound to a prefix.
func (g *Graph) Namespace(prefix string) (string, bool) {
	ns, ok := g.prefixes[prefix]
	return ns, ok
}

// Prefixes returns prefix/namespace pairs sorted by prefix.
func (g *Graph) Prefixes() [][2]string {
	keys := make([]string, 0, len(g.prefixes))
	for p := range g.prefixes {
		keys = append(keys, p)
	}
	sort.Strings(keys)
	out := make([][2]string, 0, len(keys))
	for _, p := range keys {
		out = append(out, [2]string{p, g.prefixes[p]})
	}
	return out
}

// CopyBindings copies every namespace binding from another graph.
func (g *Graph) CopyBindings(other *Graph) {
	for _, prefix := range other.order {
		g.Bind(prefix, other.prefixes[prefix])
	}
}

// Expand resolves a CURIE such as "ex:Building" against the graph's
// bindings. Absolute IRIs and unknown prefixes are returned unchanged.
func (g *Graph) Expand(curie string) string {
	if strings.HasPrefix(curie, "http://") || strings.HasPrefix(curie, "https://") || strings.HasPrefix(curie, "urn:") {
		return curie
	}
	idx := strings.Index(curie, ":")
	if idx < 0 {
		return curie
	}
	prefix, local := curie[:idx], curie[idx+1:]
	if ns, ok := g.prefixes[prefix]; ok {
		return ns + local
	}
	return curie
}

// Compact returns the CURIE form of an IRI if a bound namespace prefixes
// it, otherwise the empty string. The longest matching namespace wins.
func (g *Graph) Compact(iri string) string {
	best := ""
	bestNS := ""
	for prefix, ns := range g.prefixes {
		if strings.HasPrefix(iri, ns) && len(ns) > len(bestNS) {
			best = prefix
			bestNS = ns
		}
	}
	if bestNS == "" {
		return ""
	}
	local := iri[len(bestNS):]
	if local == "" || strings.ContainsAny(local, "/#") {
		return ""
	}
	return best + ":" + local
}
