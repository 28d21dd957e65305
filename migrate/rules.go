package migrate

import (
	"fmt"
	"strings"

	"github.com/ontoforge/ontoforge/config"
	"github.com/ontoforge/ontoforge/rdf"
	"github.com/ontoforge/ontoforge/vocabulary"
)

// PatternTermKind discriminates the components of a triple pattern.
type PatternTermKind uint8

const (
	// TermVariable is a "?name" token that binds the matched term.
	TermVariable PatternTermKind = iota
	// TermIRIRef is a concrete IRI: absolute, CURIE-expanded, or the "a"
	// shorthand for rdf:type.
	TermIRIRef
	// TermLiteralRef is a quoted literal value.
	TermLiteralRef
)

// PatternTerm is one component of a parsed triple pattern.
type PatternTerm struct {
	Kind PatternTermKind
	// Name is the variable name without the "?" marker.
	Name string
	// IRI is the resolved identifier for TermIRIRef.
	IRI string
	// Literal is the value for TermLiteralRef.
	Literal string
}

// Pattern is a single-triple match pattern. The engine supports exactly
// one triple per pattern: no joins, no aggregation.
type Pattern struct {
	S, P, O PatternTerm
}

// PatternParser turns pattern text into a Pattern, expanding CURIEs
// against a graph's namespace bindings.
type PatternParser struct {
	graph *rdf.Graph
}

// NewPatternParser creates a parser resolving CURIEs against g's bindings.
func NewPatternParser(g *rdf.Graph) *PatternParser {
	return &PatternParser{graph: g}
}

// ParsePattern parses "subject predicate object" where each component is a
// variable, an absolute IRI in angle brackets, a CURIE, a quoted literal,
// or the "a" type shorthand.
func (p *PatternParser) ParsePattern(text string) (Pattern, error) {
	fields, err := splitPattern(text)
	if err != nil {
		return Pattern{}, err
	}
	if len(fields) != 3 {
		return Pattern{}, fmt.Errorf("pattern %q must have exactly three components", text)
	}

	s, err := p.parseComponent(fields[0])
	if err != nil {
		return Pattern{}, err
	}
	pr, err := p.parseComponent(fields[1])
	if err != nil {
		return Pattern{}, err
	}
	o, err := p.parseComponent(fields[2])
	if err != nil {
		return Pattern{}, err
	}
	return Pattern{S: s, P: pr, O: o}, nil
}

func (p *PatternParser) parseComponent(token string) (PatternTerm, error) {
	switch {
	case strings.HasPrefix(token, "?"):
		name := token[1:]
		if name == "" {
			return PatternTerm{}, fmt.Errorf("empty variable name")
		}
		return PatternTerm{Kind: TermVariable, Name: name}, nil

	case token == "a":
		return PatternTerm{Kind: TermIRIRef, IRI: vocabulary.RDFType}, nil

	case strings.HasPrefix(token, "<") && strings.HasSuffix(token, ">"):
		return PatternTerm{Kind: TermIRIRef, IRI: token[1 : len(token)-1]}, nil

	case strings.HasPrefix(token, `"`) && strings.HasSuffix(token, `"`) && len(token) >= 2:
		return PatternTerm{Kind: TermLiteralRef, Literal: token[1 : len(token)-1]}, nil

	case strings.Contains(token, ":"):
		expanded := p.graph.Expand(token)
		if expanded == token && !strings.HasPrefix(token, "http") && !strings.HasPrefix(token, "urn:") {
			return PatternTerm{}, fmt.Errorf("cannot expand %q against the graph's namespace bindings", token)
		}
		return PatternTerm{Kind: TermIRIRef, IRI: expanded}, nil

	default:
		return PatternTerm{}, fmt.Errorf("cannot interpret pattern component %q", token)
	}
}

// splitPattern splits on whitespace while keeping quoted literals intact.
func splitPattern(text string) ([]string, error) {
	var fields []string
	var sb strings.Builder
	inQuote := false
	for _, r := range text {
		switch {
		case r == '"':
			inQuote = !inQuote
			sb.WriteRune(r)
		case !inQuote && (r == ' ' || r == '\t'):
			if sb.Len() > 0 {
				fields = append(fields, sb.String())
				sb.Reset()
			}
		default:
			sb.WriteRune(r)
		}
	}
	if inQuote {
		return nil, fmt.Errorf("unterminated quote in pattern %q", text)
	}
	if sb.Len() > 0 {
		fields = append(fields, sb.String())
	}
	return fields, nil
}

// Binding maps variable names to the terms they matched.
type Binding map[string]rdf.Term

// Match pairs a matched triple with its variable bindings.
type Match struct {
	Triple  rdf.Triple
	Binding Binding
}

// RuleEngine matches single-triple patterns against a graph and applies
// transform rules.
type RuleEngine struct {
	parser *PatternParser
}

// NewRuleEngine creates an engine resolving patterns against g's
// namespace bindings.
func NewRuleEngine(g *rdf.Graph) *RuleEngine {
	return &RuleEngine{parser: NewPatternParser(g)}
}

// FindMatches returns one match per triple the pattern matches, in the
// graph's insertion order.
func (e *RuleEngine) FindMatches(g *rdf.Graph, pattern Pattern) []Match {
	var matches []Match
	for _, t := range g.Triples() {
		binding := Binding{}
		if !matchComponent(pattern.S, t.S, binding) {
			continue
		}
		if !matchComponent(pattern.P, t.P, binding) {
			continue
		}
		if !matchComponent(pattern.O, t.O, binding) {
			continue
		}
		matches = append(matches, Match{Triple: t, Binding: binding})
	}
	return matches
}

// FindMatchesText parses the pattern text and returns its matches.
func (e *RuleEngine) FindMatchesText(g *rdf.Graph, text string) ([]Match, error) {
	pattern, err := e.parser.ParsePattern(text)
	if err != nil {
		return nil, err
	}
	return e.FindMatches(g, pattern), nil
}

// ApplyTransform runs one transform rule against the graph in place,
// returning the number of constructed and deleted triples.
func (e *RuleEngine) ApplyTransform(g *rdf.Graph, rule config.MigrationRule) (constructed, deleted int, err error) {
	pattern, err := e.parser.ParsePattern(rule.Match)
	if err != nil {
		return 0, 0, fmt.Errorf("rule %q: %w", rule.Description, err)
	}
	matches := e.FindMatches(g, pattern)

	for _, m := range matches {
		binding := m.Binding
		for _, tmpl := range rule.Construct {
			if tmpl.Bind != "" {
				if err := applyBind(tmpl.Bind, binding); err != nil {
					return constructed, deleted, fmt.Errorf("rule %q: %w", rule.Description, err)
				}
			}
			out, err := e.instantiate(tmpl.Pattern, binding)
			if err != nil {
				return constructed, deleted, fmt.Errorf("rule %q: %w", rule.Description, err)
			}
			g.Add(out)
			constructed++
		}
	}

	if rule.DeleteMatched {
		for _, m := range matches {
			g.Remove(m.Triple)
			deleted++
		}
	}
	return constructed, deleted, nil
}

// instantiate substitutes a binding into a construct template.
func (e *RuleEngine) instantiate(text string, binding Binding) (rdf.Triple, error) {
	pattern, err := e.parser.ParsePattern(text)
	if err != nil {
		return rdf.Triple{}, err
	}

	subject, err := resolveComponent(pattern.S, binding)
	if err != nil {
		return rdf.Triple{}, err
	}
	predicateTerm, err := resolveComponent(pattern.P, binding)
	if err != nil {
		return rdf.Triple{}, err
	}
	predicate, ok := predicateTerm.(rdf.IRI)
	if !ok {
		return rdf.Triple{}, fmt.Errorf("construct predicate must resolve to an IRI")
	}
	object, err := resolveComponent(pattern.O, binding)
	if err != nil {
		return rdf.Triple{}, err
	}
	return rdf.Triple{S: subject, P: predicate, O: object}, nil
}

func matchComponent(pt PatternTerm, term rdf.Term, binding Binding) bool {
	switch pt.Kind {
	case TermVariable:
		if bound, ok := binding[pt.Name]; ok {
			return rdf.TermEqual(bound, term)
		}
		binding[pt.Name] = term
		return true
	case TermIRIRef:
		iri, ok := term.(rdf.IRI)
		return ok && iri.Value == pt.IRI
	case TermLiteralRef:
		lit, ok := term.(rdf.Literal)
		return ok && lit.Lexical == pt.Literal
	}
	return false
}

func resolveComponent(pt PatternTerm, binding Binding) (rdf.Term, error) {
	switch pt.Kind {
	case TermVariable:
		term, ok := binding[pt.Name]
		if !ok {
			return nil, fmt.Errorf("unbound variable ?%s in construct template", pt.Name)
		}
		return term, nil
	case TermIRIRef:
		return rdf.NewIRI(pt.IRI), nil
	case TermLiteralRef:
		return rdf.NewLiteral(pt.Literal), nil
	}
	return nil, fmt.Errorf("unresolvable pattern component")
}

// applyBind evaluates a bind expression of the form
//
//	STRBEFORE(?x, "sep") AS ?y
//	STRAFTER(?x, "sep") AS ?y
//
// and adds the derived literal to the binding. Following SPARQL, a
// separator that does not occur yields the empty string.
func applyBind(expr string, binding Binding) error {
	fn, srcVar, sep, target, err := parseBind(expr)
	if err != nil {
		return err
	}

	source, ok := binding[srcVar]
	if !ok {
		return fmt.Errorf("bind references unbound variable ?%s", srcVar)
	}
	lit, ok := source.(rdf.Literal)
	if !ok {
		return fmt.Errorf("bind source ?%s is not a literal", srcVar)
	}

	var derived string
	switch fn {
	case "STRBEFORE":
		if idx := strings.Index(lit.Lexical, sep); idx >= 0 {
			derived = lit.Lexical[:idx]
		}
	case "STRAFTER":
		if idx := strings.Index(lit.Lexical, sep); idx >= 0 {
			derived = lit.Lexical[idx+len(sep):]
		}
	default:
		return fmt.Errorf("unsupported bind function %q", fn)
	}

	out := rdf.Literal{Lexical: derived, Lang: lit.Lang}
	binding[target] = out
	return nil
}

func parseBind(expr string) (fn, srcVar, sep, target string, err error) {
	asIdx := strings.LastIndex(expr, " AS ")
	if asIdx < 0 {
		return "", "", "", "", fmt.Errorf("bind expression %q missing AS clause", expr)
	}
	targetPart := strings.TrimSpace(expr[asIdx+4:])
	if !strings.HasPrefix(targetPart, "?") || len(targetPart) < 2 {
		return "", "", "", "", fmt.Errorf("bind target must be a variable, got %q", targetPart)
	}
	target = targetPart[1:]

	call := strings.TrimSpace(expr[:asIdx])
	open := strings.Index(call, "(")
	if open < 0 || !strings.HasSuffix(call, ")") {
		return "", "", "", "", fmt.Errorf("malformed bind call %q", call)
	}
	fn = strings.ToUpper(strings.TrimSpace(call[:open]))
	args := call[open+1 : len(call)-1]

	comma := strings.Index(args, ",")
	if comma < 0 {
		return "", "", "", "", fmt.Errorf("bind call %q requires two arguments", call)
	}
	varPart := strings.TrimSpace(args[:comma])
	if !strings.HasPrefix(varPart, "?") || len(varPart) < 2 {
		return "", "", "", "", fmt.Errorf("bind source must be a variable, got %q", varPart)
	}
	srcVar = varPart[1:]

	sepPart := strings.TrimSpace(args[comma+1:])
	sepPart = strings.Trim(sepPart, `'"`)
	sep = sepPart
	return fn, srcVar, sep, target, nil
}
