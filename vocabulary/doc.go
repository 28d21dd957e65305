// Package vocabulary defines the well-known IRIs the merge, split, and
// migration engines depend on: RDF, RDFS, OWL, XSD, and Dublin Core terms.
//
// Only the terms the tool actually interprets are listed; everything else
// in an input graph is carried through opaquely.
package vocabulary
