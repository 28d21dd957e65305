package migrate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ontoforge/ontoforge/migrate"
	"github.com/ontoforge/ontoforge/rdf"
	"github.com/ontoforge/ontoforge/rdfio"
	"github.com/ontoforge/ontoforge/vocabulary"
)

func parse(t *testing.T, text string) *rdf.Graph {
	t.Helper()
	g, err := rdfio.Parse(text)
	require.NoError(t, err)
	return g
}

const instanceTurtle = `@prefix old: <http://old.example.org/ont#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .

old:alice a old:Person ;
    rdfs:label "Alice" ;
    old:knows old:bob .

old:bob a old:Person .
`

func TestMigrateExplicitMap(t *testing.T) {
	g := parse(t, instanceTurtle)
	m := migrate.NewDataMigrator()

	result := m.Migrate(g, map[string]string{
		"http://old.example.org/ont#alice": "http://example.org/ont#alice",
		"http://old.example.org/ont#knows": "http://example.org/ont#knows",
		"http://old.example.org/ont#bob":   "http://example.org/ont#bob",
	})
	require.True(t, result.Success)

	assert.True(t, result.Migrated.Has(rdf.Triple{
		S: rdf.NewIRI("http://example.org/ont#alice"),
		P: rdf.NewIRI("http://example.org/ont#knows"),
		O: rdf.NewIRI("http://example.org/ont#bob"),
	}))
	// alice keeps her unmapped type.
	assert.True(t, result.Migrated.Has(rdf.Triple{
		S: rdf.NewIRI("http://example.org/ont#alice"),
		P: rdf.NewIRI(vocabulary.RDFType),
		O: rdf.NewIRI("http://old.example.org/ont#Person"),
	}))

	// alice appears as subject in 3 triples, bob in 1.
	assert.Equal(t, 4, result.Stats.SubjectsUpdated)
	assert.Equal(t, 1, result.Stats.PredicatesUpdated)
	assert.Equal(t, 1, result.Stats.ObjectsUpdated)
	assert.Equal(t, 6, result.Stats.TotalRenames())
}

func TestMigrateDoesNotMutateInput(t *testing.T) {
	g := parse(t, instanceTurtle)
	before := g.Len()

	m := migrate.NewDataMigrator()
	result := m.Migrate(g, map[string]string{
		"http://old.example.org/ont#alice": "http://example.org/ont#alice",
	})
	require.True(t, result.Success)

	assert.Equal(t, before, g.Len())
	assert.True(t, g.Has(rdf.Triple{
		S: rdf.NewIRI("http://old.example.org/ont#alice"),
		P: rdf.NewIRI(vocabulary.RDFType),
		O: rdf.NewIRI("http://old.example.org/ont#Person"),
	}))
}

func TestBuildURIMapFromNamespaces(t *testing.T) {
	g := parse(t, instanceTurtle)
	m := migrate.NewDataMigrator()

	uriMap := m.BuildURIMapFromNamespaces(g, map[string]string{
		"http://old.example.org/ont#": "http://example.org/ont#",
	})

	assert.Equal(t, "http://example.org/ont#alice", uriMap["http://old.example.org/ont#alice"])
	assert.Equal(t, "http://example.org/ont#Person", uriMap["http://old.example.org/ont#Person"])
	assert.Equal(t, "http://example.org/ont#knows", uriMap["http://old.example.org/ont#knows"])

	result := m.Migrate(g, uriMap)
	require.True(t, result.Success)
	for _, triple := range result.Migrated.Triples() {
		assert.NotContains(t, triple.S.String(), "old.example.org")
		assert.NotContains(t, triple.P.Value, "old.example.org")
	}
	assert.Equal(t, g.Len(), result.Migrated.Len())
}

func TestBuildURIMapLongestNamespaceWins(t *testing.T) {
	g := parse(t, `@prefix base: <http://old.example.org/> .
@prefix ont: <http://old.example.org/ont#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .

ont:alice a ont:Person ;
    rdfs:seeAlso base:alice .
`)
	m := migrate.NewDataMigrator()

	// One old namespace is a prefix of the other; the more specific
	// match must win regardless of map order.
	uriMap := m.BuildURIMapFromNamespaces(g, map[string]string{
		"http://old.example.org/":     "http://example.org/",
		"http://old.example.org/ont#": "http://example.org/vocab#",
	})

	assert.Equal(t, "http://example.org/vocab#alice", uriMap["http://old.example.org/ont#alice"])
	assert.Equal(t, "http://example.org/vocab#Person", uriMap["http://old.example.org/ont#Person"])
	assert.Equal(t, "http://example.org/alice", uriMap["http://old.example.org/alice"])
}

func TestMigrateRecordsLiteralMentions(t *testing.T) {
	g := parse(t, `@prefix ex: <http://example.org/ont#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .

ex:doc rdfs:comment "See hasColour for details." .
`)

	m := migrate.NewDataMigrator()
	result := m.Migrate(g, map[string]string{
		"http://example.org/ont#hasColour": "http://example.org/ont#hasColor",
	})
	require.True(t, result.Success)

	require.Len(t, result.Stats.LiteralMentions, 1)
	mention := result.Stats.LiteralMentions[0]
	assert.Equal(t, "http://example.org/ont#hasColour", mention.URI)
	assert.Equal(t, "http://example.org/ont#doc", mention.Subject)
	assert.Equal(t, vocabulary.RDFSComment, mention.Predicate)
	assert.Equal(t, "See hasColour for details.", mention.Text)

	// The literal itself is untouched.
	comments := result.Migrated.Objects(
		rdf.NewIRI("http://example.org/ont#doc"),
		rdf.NewIRI(vocabulary.RDFSComment))
	require.Len(t, comments, 1)
	assert.Equal(t, "See hasColour for details.", comments[0].(rdf.Literal).Lexical)
}

func TestMigrateEmptyMapIsNoOp(t *testing.T) {
	g := parse(t, instanceTurtle)
	m := migrate.NewDataMigrator()

	result := m.Migrate(g, nil)
	require.True(t, result.Success)
	assert.Equal(t, 0, result.Stats.TotalRenames())
	assert.Equal(t, g.Len(), result.Migrated.Len())
	for _, triple := range g.Triples() {
		assert.True(t, result.Migrated.Has(triple))
	}
}
