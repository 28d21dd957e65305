package rdfio

import (
	"sort"
	"strings"

	"github.com/ontoforge/ontoforge/rdf"
	"github.com/ontoforge/ontoforge/vocabulary"
)

// Encoder serialises a graph as Turtle while preserving semantic ordering.
// Stock serialisers sort subjects alphabetically, which destroys the
// curated ordering of ontology files; this writer keeps subjects in the
// order the graph first saw them.
//
// Formatting rules:
//   - prefixes sorted alphabetically at the top
//   - subjects in first-seen order
//   - rdf:type written first for each subject, using the "a" shorthand
//   - remaining predicates sorted alphabetically
//   - objects sorted alphabetically within each predicate
type Encoder struct{}

// Encode serialises the whole graph.
func (e Encoder) Encode(g *rdf.Graph) string {
	var sb strings.Builder
	e.writePrefixes(&sb, g)
	for _, subject := range g.Subjects() {
		e.writeSubject(&sb, g, subject)
	}
	return sb.String()
}

// EncodeTriples serialises the given triples one per line, resolving
// prefixes against the graph's bindings. Used for conflict marker blocks.
func (e Encoder) EncodeTriples(g *rdf.Graph, triples []rdf.Triple) string {
	var sb strings.Builder
	for _, t := range triples {
		sb.WriteString(FormatTerm(g, t.S))
		sb.WriteString(" ")
		sb.WriteString(e.predicateString(g, t.P))
		sb.WriteString(" ")
		sb.WriteString(FormatTerm(g, t.O))
		sb.WriteString(" .\n")
	}
	return sb.String()
}

func (e Encoder) writePrefixes(sb *strings.Builder, g *rdf.Graph) {
	prefixes := g.Prefixes()
	for _, pair := range prefixes {
		if pair[0] == "" {
			continue
		}
		sb.WriteString("@prefix ")
		sb.WriteString(pair[0])
		sb.WriteString(": <")
		sb.WriteString(pair[1])
		sb.WriteString("> .\n")
	}
	if len(prefixes) > 0 {
		sb.WriteString("\n")
	}
}

func (e Encoder) writeSubject(sb *strings.Builder, g *rdf.Graph, subject rdf.Term) {
	triples := g.TriplesFor(subject)
	if len(triples) == 0 {
		return
	}

	sb.WriteString(FormatTerm(g, subject))
	sb.WriteString("\n")

	// Group objects by predicate.
	grouped := make(map[string][]rdf.Term)
	var predicates []rdf.IRI
	seen := make(map[string]bool)
	for _, t := range triples {
		if !seen[t.P.Value] {
			seen[t.P.Value] = true
			predicates = append(predicates, t.P)
		}
		grouped[t.P.Value] = append(grouped[t.P.Value], t.O)
	}

	// rdf:type first, then the rest alphabetically by formatted name.
	sort.Slice(predicates, func(i, j int) bool {
		pi, pj := predicates[i], predicates[j]
		if pi.Value == vocabulary.RDFType {
			return pj.Value != vocabulary.RDFType
		}
		if pj.Value == vocabulary.RDFType {
			return false
		}
		return e.predicateString(g, pi) < e.predicateString(g, pj)
	})

	for i, p := range predicates {
		objects := grouped[p.Value]
		sort.Slice(objects, func(a, b int) bool {
			return FormatTerm(g, objects[a]) < FormatTerm(g, objects[b])
		})

		last := i == len(predicates)-1
		if len(objects) == 1 {
			sb.WriteString("    ")
			sb.WriteString(e.predicateString(g, p))
			sb.WriteString(" ")
			sb.WriteString(FormatTerm(g, objects[0]))
			sb.WriteString(e.terminator(last))
			continue
		}

		sb.WriteString("    ")
		sb.WriteString(e.predicateString(g, p))
		sb.WriteString("\n")
		for j, o := range objects {
			sb.WriteString("        ")
			sb.WriteString(FormatTerm(g, o))
			if j < len(objects)-1 {
				sb.WriteString(" ,\n")
			} else {
				sb.WriteString(e.terminator(last))
			}
		}
	}
	sb.WriteString("\n")
}

func (e Encoder) predicateString(g *rdf.Graph, p rdf.IRI) string {
	if p.Value == vocabulary.RDFType {
		return "a"
	}
	return FormatTerm(g, p)
}

func (e Encoder) terminator(last bool) string {
	if last {
		return " .\n"
	}
	return " ;\n"
}

// FormatTerm renders a term as Turtle text, compacting IRIs to CURIEs when
// the graph binds a matching prefix.
func FormatTerm(g *rdf.Graph, term rdf.Term) string {
	switch t := term.(type) {
	case rdf.IRI:
		if curie := g.Compact(t.Value); curie != "" {
			return curie
		}
		return "<" + t.Value + ">"
	case rdf.BlankNode:
		return t.String()
	case rdf.Literal:
		value := escapeLiteral(t.Lexical)
		switch {
		case t.Lang != "":
			return `"` + value + `"@` + t.Lang
		case t.Datatype != "":
			return `"` + value + `"^^` + FormatTerm(g, rdf.NewIRI(t.Datatype))
		default:
			return `"` + value + `"`
		}
	default:
		return term.String()
	}
}

func escapeLiteral(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\r", `\r`)
	s = strings.ReplaceAll(s, "\t", `\t`)
	return s
}
