// Package rdfio is the I/O boundary of ontoforge. It parses Turtle
// documents into rdf.Graph values and serialises graphs back out with an
// order-preserving writer (subjects in first-seen order, rdf:type first,
// remaining predicates sorted).
//
// The algorithmic core never touches files directly; failures here surface
// as load or write errors on the operation that needed them.
package rdfio
