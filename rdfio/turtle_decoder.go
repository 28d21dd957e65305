package rdfio

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/ontoforge/ontoforge/rdf"
	"github.com/ontoforge/ontoforge/vocabulary"
)

// Decoder parses a Turtle document into a graph. It covers the subset the
// tool emits and the test corpora use: @prefix/PREFIX directives, prefixed
// names, IRIs, literals with language tags and datatypes, numeric and
// boolean shorthand, the "a" keyword, blank node labels and [] anonymous
// nodes, and ;/, predicate-object lists.
type Decoder struct {
	input []rune
	pos   int
	line  int

	graph *rdf.Graph
}

// Parse decodes a Turtle document from a string.
func Parse(input string) (*rdf.Graph, error) {
	d := &Decoder{input: []rune(input), line: 1, graph: rdf.NewGraph()}
	if err := d.run(); err != nil {
		return nil, err
	}
	return d.graph, nil
}

func (d *Decoder) run() error {
	for {
		d.skipWhitespace()
		if d.eof() {
			return nil
		}
		if err := d.parseStatement(); err != nil {
			return fmt.Errorf("line %d: %w", d.line, err)
		}
	}
}

func (d *Decoder) parseStatement() error {
	if d.peekWord("@prefix") || d.peekWord("PREFIX") || d.peekWord("prefix") {
		return d.parsePrefix()
	}
	if d.peekWord("@base") || d.peekWord("BASE") {
		return fmt.Errorf("base directives are not supported")
	}

	subject, err := d.parseTerm()
	if err != nil {
		return err
	}
	if subject.Kind() == rdf.TermLiteral {
		return fmt.Errorf("literal cannot be a subject")
	}

	for {
		d.skipWhitespace()
		predicate, err := d.parsePredicate()
		if err != nil {
			return err
		}
		for {
			d.skipWhitespace()
			object, err := d.parseTerm()
			if err != nil {
				return err
			}
			d.graph.Add(rdf.Triple{S: subject, P: predicate, O: object})

			d.skipWhitespace()
			if d.peek() == ',' {
				d.pos++
				continue
			}
			break
		}

		d.skipWhitespace()
		switch d.peek() {
		case ';':
			d.pos++
			d.skipWhitespace()
			// A trailing semicolon before '.' is legal Turtle.
			if d.peek() == '.' {
				d.pos++
				return nil
			}
			continue
		case '.':
			d.pos++
			return nil
		default:
			return fmt.Errorf("expected ';' or '.' after object")
		}
	}
}

func (d *Decoder) parsePrefix() error {
	directive := d.readWord()
	sparqlStyle := directive != "@prefix"

	d.skipWhitespace()
	name := d.readUntil(':')
	if d.peek() != ':' {
		return fmt.Errorf("malformed prefix declaration")
	}
	d.pos++ // ':'

	d.skipWhitespace()
	if d.peek() != '<' {
		return fmt.Errorf("expected IRI in prefix declaration")
	}
	iri, err := d.parseIRIRef()
	if err != nil {
		return err
	}

	d.skipWhitespace()
	if !sparqlStyle {
		if d.peek() != '.' {
			return fmt.Errorf("expected '.' after @prefix declaration")
		}
		d.pos++
	}

	d.graph.Bind(strings.TrimSpace(name), iri)
	return nil
}

func (d *Decoder) parsePredicate() (rdf.IRI, error) {
	if d.peek() == 'a' && d.isTermBoundary(d.pos+1) {
		d.pos++
		return rdf.NewIRI(vocabulary.RDFType), nil
	}
	term, err := d.parseTerm()
	if err != nil {
		return rdf.IRI{}, err
	}
	iri, ok := term.(rdf.IRI)
	if !ok {
		return rdf.IRI{}, fmt.Errorf("predicate must be an IRI")
	}
	return iri, nil
}

func (d *Decoder) parseTerm() (rdf.Term, error) {
	d.skipWhitespace()
	if d.eof() {
		return nil, fmt.Errorf("unexpected end of input")
	}

	switch c := d.peek(); {
	case c == '<':
		iri, err := d.parseIRIRef()
		if err != nil {
			return nil, err
		}
		return rdf.NewIRI(iri), nil

	case c == '"' || c == '\'':
		return d.parseLiteral(c)

	case c == '_' && d.peekAt(1) == ':':
		d.pos += 2
		label := d.readLocalName()
		if label == "" {
			return nil, fmt.Errorf("empty blank node label")
		}
		return rdf.BlankNode{ID: label}, nil

	case c == '[':
		d.pos++
		d.skipWhitespace()
		if d.peek() != ']' {
			return nil, fmt.Errorf("non-empty blank node property lists are not supported")
		}
		d.pos++
		return rdf.BlankNode{ID: "b" + strings.ReplaceAll(uuid.New().String(), "-", "")}, nil

	case c == '(':
		return nil, fmt.Errorf("RDF collections are not supported")

	case unicode.IsDigit(c) || c == '+' || c == '-':
		return d.parseNumber()

	default:
		word := d.readLocalName()
		switch word {
		case "true", "false":
			return rdf.NewTypedLiteral(word, vocabulary.XSDBoolean), nil
		case "":
			return nil, fmt.Errorf("unexpected character %q", string(c))
		}
		if d.peek() != ':' {
			return nil, fmt.Errorf("unexpected token %q", word)
		}
		d.pos++ // ':'
		local := d.readLocalName()
		ns, ok := d.graph.Namespace(word)
		if !ok {
			return nil, fmt.Errorf("undefined prefix %q", word)
		}
		return rdf.NewIRI(ns + local), nil
	}
}

func (d *Decoder) parseIRIRef() (string, error) {
	d.pos++ // '<'
	var sb strings.Builder
	for !d.eof() {
		c := d.peek()
		if c == '>' {
			d.pos++
			return sb.String(), nil
		}
		if c == '\n' {
			return "", fmt.Errorf("unterminated IRI")
		}
		sb.WriteRune(c)
		d.pos++
	}
	return "", fmt.Errorf("unterminated IRI")
}

func (d *Decoder) parseLiteral(quote rune) (rdf.Term, error) {
	d.pos++ // opening quote
	var sb strings.Builder
	for {
		if d.eof() {
			return nil, fmt.Errorf("unterminated literal")
		}
		c := d.peek()
		if c == '\\' {
			d.pos++
			if d.eof() {
				return nil, fmt.Errorf("unterminated escape")
			}
			switch e := d.peek(); e {
			case 'n':
				sb.WriteRune('\n')
			case 'r':
				sb.WriteRune('\r')
			case 't':
				sb.WriteRune('\t')
			case '\\', '"', '\'':
				sb.WriteRune(e)
			default:
				return nil, fmt.Errorf("unsupported escape \\%c", e)
			}
			d.pos++
			continue
		}
		if c == quote {
			d.pos++
			break
		}
		if c == '\n' {
			d.line++
		}
		sb.WriteRune(c)
		d.pos++
	}

	lexical := sb.String()

	// Optional language tag or datatype.
	if d.peek() == '@' {
		d.pos++
		lang := d.readWhile(func(r rune) bool {
			return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-'
		})
		if lang == "" {
			return nil, fmt.Errorf("empty language tag")
		}
		return rdf.NewLangLiteral(lexical, lang), nil
	}
	if d.peek() == '^' && d.peekAt(1) == '^' {
		d.pos += 2
		dt, err := d.parseTerm()
		if err != nil {
			return nil, err
		}
		dtIRI, ok := dt.(rdf.IRI)
		if !ok {
			return nil, fmt.Errorf("datatype must be an IRI")
		}
		return rdf.NewTypedLiteral(lexical, dtIRI.Value), nil
	}
	return rdf.NewLiteral(lexical), nil
}

func (d *Decoder) parseNumber() (rdf.Term, error) {
	raw := d.readWhile(func(r rune) bool {
		return unicode.IsDigit(r) || r == '.' || r == '+' || r == '-' || r == 'e' || r == 'E'
	})
	// A trailing '.' is the statement terminator, not part of the number.
	if strings.HasSuffix(raw, ".") {
		raw = raw[:len(raw)-1]
		d.pos--
	}
	if raw == "" {
		return nil, fmt.Errorf("malformed numeric literal")
	}
	if strings.ContainsAny(raw, ".eE") {
		return rdf.NewTypedLiteral(raw, vocabulary.XSDDecimal), nil
	}
	return rdf.NewTypedLiteral(raw, vocabulary.XSDInteger), nil
}

// --- scanning helpers ---

func (d *Decoder) eof() bool { return d.pos >= len(d.input) }

func (d *Decoder) peek() rune {
	if d.eof() {
		return 0
	}
	return d.input[d.pos]
}

func (d *Decoder) peekAt(offset int) rune {
	if d.pos+offset >= len(d.input) {
		return 0
	}
	return d.input[d.pos+offset]
}

func (d *Decoder) peekWord(word string) bool {
	runes := []rune(word)
	for i, r := range runes {
		if d.peekAt(i) != r {
			return false
		}
	}
	return d.isTermBoundary(d.pos + len(runes))
}

func (d *Decoder) isTermBoundary(pos int) bool {
	if pos >= len(d.input) {
		return true
	}
	c := d.input[pos]
	return unicode.IsSpace(c) || c == '<' || c == '"' || c == '\''
}

func (d *Decoder) readWord() string {
	return d.readWhile(func(r rune) bool { return !unicode.IsSpace(r) })
}

func (d *Decoder) readUntil(stop rune) string {
	return d.readWhile(func(r rune) bool { return r != stop && !unicode.IsSpace(r) })
}

func (d *Decoder) readLocalName() string {
	return d.readWhile(func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-'
	})
}

func (d *Decoder) readWhile(pred func(rune) bool) string {
	start := d.pos
	for !d.eof() && pred(d.peek()) {
		d.pos++
	}
	return string(d.input[start:d.pos])
}

func (d *Decoder) skipWhitespace() {
	for !d.eof() {
		c := d.peek()
		if c == '#' {
			for !d.eof() && d.peek() != '\n' {
				d.pos++
			}
			continue
		}
		if !unicode.IsSpace(c) {
			return
		}
		if c == '\n' {
			d.line++
		}
		d.pos++
	}
}
