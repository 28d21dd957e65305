package rdf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ontoforge/ontoforge/rdf"
)

func triple(s, p, o string) rdf.Triple {
	return rdf.Triple{S: rdf.NewIRI(s), P: rdf.NewIRI(p), O: rdf.NewIRI(o)}
}

func TestGraphAddDeduplicates(t *testing.T) {
	g := rdf.NewGraph()
	g.Add(triple("http://x/a", "http://x/p", "http://x/b"))
	g.Add(triple("http://x/a", "http://x/p", "http://x/b"))

	assert.Equal(t, 1, g.Len())
}

func TestGraphRemove(t *testing.T) {
	g := rdf.NewGraph()
	first := triple("http://x/a", "http://x/p", "http://x/b")
	second := triple("http://x/a", "http://x/p", "http://x/c")
	g.Add(first)
	g.Add(second)

	g.Remove(first)

	assert.Equal(t, 1, g.Len())
	assert.False(t, g.Has(first))
	assert.True(t, g.Has(second))

	// Removing an absent triple is a no-op.
	g.Remove(first)
	assert.Equal(t, 1, g.Len())
}

func TestGraphSubjectsFirstSeenOrder(t *testing.T) {
	g := rdf.NewGraph()
	g.Add(triple("http://x/b", "http://x/p", "http://x/1"))
	g.Add(triple("http://x/a", "http://x/p", "http://x/2"))
	g.Add(triple("http://x/b", "http://x/q", "http://x/3"))

	subjects := g.Subjects()
	require.Len(t, subjects, 2)
	assert.Equal(t, "http://x/b", subjects[0].String())
	assert.Equal(t, "http://x/a", subjects[1].String())
}

func TestGraphObjectsAndSubjectsWith(t *testing.T) {
	g := rdf.NewGraph()
	g.Add(triple("http://x/a", "http://x/p", "http://x/b"))
	g.Add(triple("http://x/a", "http://x/p", "http://x/c"))
	g.Add(triple("http://x/d", "http://x/p", "http://x/b"))

	objects := g.Objects(rdf.NewIRI("http://x/a"), rdf.NewIRI("http://x/p"))
	require.Len(t, objects, 2)

	subjects := g.SubjectsWith(rdf.NewIRI("http://x/p"), rdf.NewIRI("http://x/b"))
	require.Len(t, subjects, 2)
	assert.Equal(t, "http://x/a", subjects[0].String())
	assert.Equal(t, "http://x/d", subjects[1].String())
}

func TestGraphCloneIsIndependent(t *testing.T) {
	g := rdf.NewGraph()
	g.Bind("ex", "http://example.org/")
	g.Add(triple("http://example.org/a", "http://example.org/p", "http://example.org/b"))

	clone := g.Clone()
	clone.Add(triple("http://example.org/c", "http://example.org/p", "http://example.org/d"))

	assert.Equal(t, 1, g.Len())
	assert.Equal(t, 2, clone.Len())

	ns, ok := clone.Namespace("ex")
	require.True(t, ok)
	assert.Equal(t, "http://example.org/", ns)
}

func TestExpand(t *testing.T) {
	g := rdf.NewGraph()
	g.Bind("ex", "http://example.org/")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"curie", "ex:Building", "http://example.org/Building"},
		{"absolute http", "http://other.org/x", "http://other.org/x"},
		{"urn", "urn:isbn:123", "urn:isbn:123"},
		{"unknown prefix", "nope:Building", "nope:Building"},
		{"no colon", "Building", "Building"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Expand(tt.input))
		})
	}
}

func TestCompact(t *testing.T) {
	g := rdf.NewGraph()
	g.Bind("ex", "http://example.org/")
	g.Bind("sub", "http://example.org/sub#")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "http://example.org/Building", "ex:Building"},
		{"longest namespace wins", "http://example.org/sub#Thing", "sub:Thing"},
		{"no binding", "http://other.org/x", ""},
		{"slash in local part", "http://example.org/a/b", ""},
		{"namespace itself", "http://example.org/", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Compact(tt.input))
		})
	}
}

func TestLiteralString(t *testing.T) {
	assert.Equal(t, `"hi"`, rdf.NewLiteral("hi").String())
	assert.Equal(t, `"hi"@en`, rdf.NewLangLiteral("hi", "en").String())
	assert.Equal(t, `"1"^^<http://www.w3.org/2001/XMLSchema#integer>`,
		rdf.NewTypedLiteral("1", "http://www.w3.org/2001/XMLSchema#integer").String())
}

func TestTermEqual(t *testing.T) {
	assert.True(t, rdf.TermEqual(rdf.NewIRI("http://x/a"), rdf.NewIRI("http://x/a")))
	assert.False(t, rdf.TermEqual(rdf.NewIRI("http://x/a"), rdf.NewLiteral("http://x/a")))
	assert.False(t, rdf.TermEqual(rdf.NewLiteral("a"), rdf.NewLangLiteral("a", "en")))
}
