package refactor

import (
	"fmt"

	"github.com/ontoforge/ontoforge/config"
	"github.com/ontoforge/ontoforge/rdf"
	"github.com/ontoforge/ontoforge/vocabulary"
)

// Deprecation entity statuses recorded in DeprecationInfo.
const (
	StatusDeprecated        = "deprecated"
	StatusNotFound          = "not_found"
	StatusAlreadyDeprecated = "already_deprecated"
)

// DeprecationStats counts what a deprecation pass touched.
type DeprecationStats struct {
	EntitiesDeprecated        int
	EntitiesNotFound          int
	EntitiesAlreadyDeprecated int
	TriplesAdded              int
}

// DeprecationInfo records the outcome for one entity.
type DeprecationInfo struct {
	Entity     string
	ReplacedBy string
	Comment    string
	Status     string
}

// DeprecationResult is the outcome of one deprecation pass.
type DeprecationResult struct {
	// Deprecated is the annotated graph. The input graph is not mutated.
	Deprecated *rdf.Graph
	Stats      DeprecationStats
	// EntityInfo holds one record per requested entity, in request order.
	EntityInfo []DeprecationInfo

	Success bool
	Error   string
}

// OntologyDeprecator marks entities as deprecated: owl:deprecated true,
// an optional dcterms:isReplacedBy pointer, and a DEPRECATED comment.
type OntologyDeprecator struct{}

// NewDeprecator creates a deprecator.
func NewDeprecator() *OntologyDeprecator { return &OntologyDeprecator{} }

// Deprecate marks one entity. A missing entity or an already-deprecated
// one is counted, not failed, so bulk runs can continue.
func (d *OntologyDeprecator) Deprecate(g *rdf.Graph, spec config.DeprecationSpec) DeprecationResult {
	return d.DeprecateBulk(g, []config.DeprecationSpec{spec})
}

// DeprecateBulk marks every entity in the spec list against one graph.
func (d *OntologyDeprecator) DeprecateBulk(g *rdf.Graph, specs []config.DeprecationSpec) DeprecationResult {
	out := g.Clone()
	result := DeprecationResult{Deprecated: out, Success: true}

	for _, spec := range specs {
		if err := spec.Validate(); err != nil {
			return DeprecationResult{Error: err.Error()}
		}
		entity := out.Expand(spec.Entity)
		info := DeprecationInfo{Entity: entity, ReplacedBy: spec.ReplacedBy}

		if len(out.TriplesFor(rdf.NewIRI(entity))) == 0 {
			result.Stats.EntitiesNotFound++
			info.Status = StatusNotFound
			result.EntityInfo = append(result.EntityInfo, info)
			continue
		}
		if isDeprecated(out, entity) {
			result.Stats.EntitiesAlreadyDeprecated++
			info.Status = StatusAlreadyDeprecated
			result.EntityInfo = append(result.EntityInfo, info)
			continue
		}

		subject := rdf.NewIRI(entity)
		added := 0
		out.Add(rdf.Triple{
			S: subject,
			P: rdf.NewIRI(vocabulary.OWLDeprecated),
			O: rdf.NewTypedLiteral("true", vocabulary.XSDBoolean),
		})
		added++

		if spec.ReplacedBy != "" {
			replacement := out.Expand(spec.ReplacedBy)
			info.ReplacedBy = replacement
			out.Add(rdf.Triple{
				S: subject,
				P: rdf.NewIRI(vocabulary.DCTIsReplacedBy),
				O: rdf.NewIRI(replacement),
			})
			added++
		}

		if comment := deprecationComment(spec); comment != "" {
			info.Comment = comment
			out.Add(rdf.Triple{
				S: subject,
				P: rdf.NewIRI(vocabulary.RDFSComment),
				O: rdf.NewLiteral(comment),
			})
			added++
		}

		result.Stats.EntitiesDeprecated++
		result.Stats.TriplesAdded += added
		info.Status = StatusDeprecated
		result.EntityInfo = append(result.EntityInfo, info)
	}
	return result
}

// isDeprecated reports whether the entity already carries a true
// owl:deprecated annotation.
func isDeprecated(g *rdf.Graph, entity string) bool {
	for _, o := range g.Objects(rdf.NewIRI(entity), rdf.NewIRI(vocabulary.OWLDeprecated)) {
		if lit, ok := o.(rdf.Literal); ok && lit.Lexical == "true" {
			return true
		}
	}
	return false
}

// deprecationComment renders "DEPRECATED (v<version>): <message>",
// omitting the parts that were not provided.
func deprecationComment(spec config.DeprecationSpec) string {
	switch {
	case spec.Message == "" && spec.Version == "":
		return ""
	case spec.Version == "":
		return fmt.Sprintf("DEPRECATED: %s", spec.Message)
	case spec.Message == "":
		return fmt.Sprintf("DEPRECATED (v%s)", spec.Version)
	default:
		return fmt.Sprintf("DEPRECATED (v%s): %s", spec.Version, spec.Message)
	}
}
