package rdfio_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ontoforge/ontoforge/rdf"
	"github.com/ontoforge/ontoforge/rdfio"
	"github.com/ontoforge/ontoforge/vocabulary"
)

const sampleTurtle = `@prefix ex: <http://example.org/ont#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
@prefix owl: <http://www.w3.org/2002/07/owl#> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .

# A building class.
ex:Building a owl:Class ;
    rdfs:label "Building"@en , "Gebäude"@de ;
    rdfs:comment "A structure with a roof." .

ex:floorCount a owl:DatatypeProperty ;
    rdfs:domain ex:Building ;
    rdfs:range xsd:integer .

ex:hq a ex:Building ;
    ex:floorCount 12 ;
    ex:heritage true ;
    ex:area 120.5 .
`

func TestParseSample(t *testing.T) {
	g, err := rdfio.Parse(sampleTurtle)
	require.NoError(t, err)

	ns, ok := g.Namespace("ex")
	require.True(t, ok)
	assert.Equal(t, "http://example.org/ont#", ns)

	building := rdf.NewIRI("http://example.org/ont#Building")
	types := g.Objects(building, rdf.NewIRI(vocabulary.RDFType))
	require.Len(t, types, 1)
	assert.Equal(t, vocabulary.OWLClass, types[0].String())

	labels := g.Objects(building, rdf.NewIRI(vocabulary.RDFSLabel))
	require.Len(t, labels, 2)
	for _, label := range labels {
		lit, ok := label.(rdf.Literal)
		require.True(t, ok)
		assert.NotEmpty(t, lit.Lang)
	}
}

func TestParseDatatypedObjects(t *testing.T) {
	g, err := rdfio.Parse(sampleTurtle)
	require.NoError(t, err)

	hq := rdf.NewIRI("http://example.org/ont#hq")

	floors := g.Objects(hq, rdf.NewIRI("http://example.org/ont#floorCount"))
	require.Len(t, floors, 1)
	assert.Equal(t, rdf.Literal{Lexical: "12", Datatype: vocabulary.XSDInteger}, floors[0])

	heritage := g.Objects(hq, rdf.NewIRI("http://example.org/ont#heritage"))
	require.Len(t, heritage, 1)
	assert.Equal(t, rdf.Literal{Lexical: "true", Datatype: vocabulary.XSDBoolean}, heritage[0])

	area := g.Objects(hq, rdf.NewIRI("http://example.org/ont#area"))
	require.Len(t, area, 1)
	assert.Equal(t, rdf.Literal{Lexical: "120.5", Datatype: vocabulary.XSDDecimal}, area[0])
}

func TestParseExplicitDatatypeAndBlankNode(t *testing.T) {
	g, err := rdfio.Parse(`@prefix ex: <http://example.org/> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .

ex:a ex:count "5"^^xsd:integer .
_:node ex:p ex:a .
[] ex:q ex:a .
`)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Len())

	count := g.Objects(rdf.NewIRI("http://example.org/a"), rdf.NewIRI("http://example.org/count"))
	require.Len(t, count, 1)
	assert.Equal(t, rdf.Literal{Lexical: "5", Datatype: vocabulary.XSDInteger}, count[0])

	subjects := g.SubjectsWith(rdf.NewIRI("http://example.org/p"), rdf.NewIRI("http://example.org/a"))
	require.Len(t, subjects, 1)
	assert.Equal(t, rdf.TermBlankNode, subjects[0].Kind())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"base directive", `@base <http://example.org/> .`},
		{"unterminated iri", `<http://example.org/a ex:p ex:b .`},
		{"missing dot", `@prefix ex: <http://example.org/> .` + "\nex:a ex:p ex:b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rdfio.Parse(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestEncodeOrdering(t *testing.T) {
	g, err := rdfio.Parse(sampleTurtle)
	require.NoError(t, err)

	out := rdfio.Encoder{}.Encode(g)

	// Prefixes sorted at the top.
	exIdx := strings.Index(out, "@prefix ex:")
	owlIdx := strings.Index(out, "@prefix owl:")
	require.True(t, exIdx >= 0 && owlIdx >= 0)
	assert.Less(t, exIdx, owlIdx)

	// Subjects in first-seen order.
	buildingIdx := strings.Index(out, "ex:Building")
	hqIdx := strings.Index(out, "ex:hq")
	require.True(t, buildingIdx >= 0 && hqIdx >= 0)
	assert.Less(t, buildingIdx, hqIdx)

	// rdf:type first, as "a".
	assert.Contains(t, out, "ex:Building\n    a owl:Class ;")

	// Multi-object predicates separated by commas, sorted.
	assert.Contains(t, out, `"Building"@en ,`)
	assert.Contains(t, out, `"Gebäude"@de`)
}

func TestEncodeRoundTrip(t *testing.T) {
	original, err := rdfio.Parse(sampleTurtle)
	require.NoError(t, err)

	encoded := rdfio.Encoder{}.Encode(original)
	reparsed, err := rdfio.Parse(encoded)
	require.NoError(t, err)

	require.Equal(t, original.Len(), reparsed.Len())
	for _, triple := range original.Triples() {
		assert.True(t, reparsed.Has(triple), "missing triple: %s", triple.String())
	}
}

func TestFormatTerm(t *testing.T) {
	g := rdf.NewGraph()
	g.Bind("ex", "http://example.org/")

	assert.Equal(t, "ex:Building", rdfio.FormatTerm(g, rdf.NewIRI("http://example.org/Building")))
	assert.Equal(t, "<http://other.org/x>", rdfio.FormatTerm(g, rdf.NewIRI("http://other.org/x")))
	assert.Equal(t, "_:b1", rdfio.FormatTerm(g, rdf.BlankNode{ID: "b1"}))
	assert.Equal(t, `"say \"hi\""`, rdfio.FormatTerm(g, rdf.NewLiteral(`say "hi"`)))
	assert.Equal(t, `"hi"@en`, rdfio.FormatTerm(g, rdf.NewLangLiteral("hi", "en")))
}

func TestLoadAndWriteFile(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "sample.ttl")
	require.NoError(t, os.WriteFile(source, []byte(sampleTurtle), 0o644))

	g, err := rdfio.LoadFile(source)
	require.NoError(t, err)
	assert.Greater(t, g.Len(), 0)

	// Writing creates intermediate directories.
	out := filepath.Join(dir, "nested", "out.ttl")
	require.NoError(t, rdfio.WriteFile(g, out))

	reloaded, err := rdfio.LoadFile(out)
	require.NoError(t, err)
	assert.Equal(t, g.Len(), reloaded.Len())
}

func TestLoadFileMissing(t *testing.T) {
	_, err := rdfio.LoadFile(filepath.Join(t.TempDir(), "absent.ttl"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load")
}
