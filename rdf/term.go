// Package rdf provides the in-memory triple and graph model that every
// ontoforge operation works on. Graphs arrive from the rdfio decoder and
// leave through the rdfio writer; everything in between manipulates the
// types defined here.
package rdf

import "fmt"

// TermKind identifies RDF term types.
type TermKind uint8

const (
	// TermIRI represents an IRI term.
	TermIRI TermKind = iota
	// TermBlankNode represents a blank node term.
	TermBlankNode
	// TermLiteral represents a literal term.
	TermLiteral
)

// Term is a value that can appear in a triple.
type Term interface {
	Kind() TermKind
	String() string
}

// IRI represents an RDF IRI.
type IRI struct {
	// Value is the IRI string value.
	Value string
}

// NewIRI creates an IRI term.
func NewIRI(value string) IRI { return IRI{Value: value} }

// Kind returns TermIRI.
func (i IRI) Kind() TermKind { return TermIRI }

// String returns the IRI value.
func (i IRI) String() string { return i.Value }

// BlankNode represents an RDF blank node.
type BlankNode struct {
	// ID is the blank node identifier without the "_:" prefix.
	ID string
}

// Kind returns TermBlankNode.
func (b BlankNode) Kind() TermKind { return TermBlankNode }

// String returns the blank node identifier prefixed with "_:".
func (b BlankNode) String() string { return "_:" + b.ID }

// Literal represents an RDF literal.
type Literal struct {
	// Lexical is the lexical form of the literal.
	Lexical string
	// Datatype is the datatype IRI, if any.
	Datatype string
	// Lang is the language tag, if any.
	Lang string
}

// NewLiteral creates a plain literal.
func NewLiteral(lexical string) Literal { return Literal{Lexical: lexical} }

// NewLangLiteral creates a language-tagged literal.
func NewLangLiteral(lexical, lang string) Literal {
	return Literal{Lexical: lexical, Lang: lang}
}

// NewTypedLiteral creates a literal with a datatype IRI.
func NewTypedLiteral(lexical, datatype string) Literal {
	return Literal{Lexical: lexical, Datatype: datatype}
}

// Kind returns TermLiteral.
func (l Literal) Kind() TermKind { return TermLiteral }

// String returns a canonical representation of the literal.
func (l Literal) String() string {
	if l.Lang != "" {
		return fmt.Sprintf("%q@%s", l.Lexical, l.Lang)
	}
	if l.Datatype != "" {
		return fmt.Sprintf("%q^^<%s>", l.Lexical, l.Datatype)
	}
	return fmt.Sprintf("%q", l.Lexical)
}

// Triple is a subject-predicate-object statement, the atomic unit of the
// graph model. Triples are immutable once created.
type Triple struct {
	// S is the subject: an IRI or blank node.
	S Term
	// P is the predicate.
	P IRI
	// O is the object: an IRI, blank node, or literal.
	O Term
}

// String returns an N-Triples-like representation, used as the identity
// key for set membership.
func (t Triple) String() string {
	return t.S.String() + " <" + t.P.Value + "> " + t.O.String()
}

// TermEqual reports whether two terms are identical.
func TermEqual(a, b Term) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind() != b.Kind() {
		return false
	}
	return a.String() == b.String()
}
