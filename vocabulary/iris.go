package vocabulary

// Base namespace IRIs.
const (
	// RDFNamespace is the RDF syntax namespace.
	RDFNamespace = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

	// RDFSNamespace is the RDF Schema namespace.
	RDFSNamespace = "http://www.w3.org/2000/01/rdf-schema#"

	// OWLNamespace is the Web Ontology Language namespace.
	OWLNamespace = "http://www.w3.org/2002/07/owl#"

	// XSDNamespace is the XML Schema datatypes namespace.
	XSDNamespace = "http://www.w3.org/2001/XMLSchema#"

	// DCTermsNamespace is the Dublin Core terms namespace.
	DCTermsNamespace = "http://purl.org/dc/terms/"
)

// RDF terms.
const (
	// RDFType is the instance-of predicate, written "a" in Turtle.
	RDFType = RDFNamespace + "type"

	// RDFProperty is the class of RDF properties.
	RDFProperty = RDFNamespace + "Property"
)

// RDFS terms.
const (
	// RDFSLabel is the human-readable label predicate.
	RDFSLabel = RDFSNamespace + "label"

	// RDFSComment is the description predicate.
	RDFSComment = RDFSNamespace + "comment"

	// RDFSSubClassOf is the hierarchy relation used for descendant
	// expansion and dependency detection.
	RDFSSubClassOf = RDFSNamespace + "subClassOf"

	// RDFSSubPropertyOf is the property hierarchy relation.
	RDFSSubPropertyOf = RDFSNamespace + "subPropertyOf"

	// RDFSDomain declares a property's domain class.
	RDFSDomain = RDFSNamespace + "domain"

	// RDFSRange declares a property's range class.
	RDFSRange = RDFSNamespace + "range"

	// RDFSSeeAlso points to related resources.
	RDFSSeeAlso = RDFSNamespace + "seeAlso"
)

// OWL terms.
const (
	// OWLOntology is the class of ontology headers.
	OWLOntology = OWLNamespace + "Ontology"

	// OWLClass is the class of OWL classes.
	OWLClass = OWLNamespace + "Class"

	// OWLObjectProperty is the class of object properties.
	OWLObjectProperty = OWLNamespace + "ObjectProperty"

	// OWLDatatypeProperty is the class of datatype properties.
	OWLDatatypeProperty = OWLNamespace + "DatatypeProperty"

	// OWLAnnotationProperty is the class of annotation properties.
	OWLAnnotationProperty = OWLNamespace + "AnnotationProperty"

	// OWLImports declares a dependency on another ontology document.
	OWLImports = OWLNamespace + "imports"

	// OWLDeprecated marks an entity as deprecated.
	OWLDeprecated = OWLNamespace + "deprecated"
)

// XSD datatypes.
const (
	// XSDBoolean is the boolean datatype IRI.
	XSDBoolean = XSDNamespace + "boolean"

	// XSDInteger is the integer datatype IRI.
	XSDInteger = XSDNamespace + "integer"

	// XSDDecimal is the decimal datatype IRI.
	XSDDecimal = XSDNamespace + "decimal"

	// XSDString is the string datatype IRI.
	XSDString = XSDNamespace + "string"
)

// Dublin Core terms.
const (
	// DCTIsReplacedBy links a deprecated entity to its replacement.
	DCTIsReplacedBy = DCTermsNamespace + "isReplacedBy"
)

// DefaultPrefixes returns the prefix bindings every freshly created output
// graph starts with.
func DefaultPrefixes() map[string]string {
	return map[string]string{
		"rdf":     RDFNamespace,
		"rdfs":    RDFSNamespace,
		"owl":     OWLNamespace,
		"xsd":     XSDNamespace,
		"dcterms": DCTermsNamespace,
	}
}
