package rdfio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ontoforge/ontoforge/rdf"
)

// LoadFile reads and parses a Turtle file. A missing or unparsable file is
// a load error; callers report it on the operation that needed the graph.
func LoadFile(path string) (*rdf.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	g, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return g, nil
}

// WriteFile serialises a graph to a Turtle file, creating parent
// directories as needed.
func WriteFile(g *rdf.Graph, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	content := Encoder{}.Encode(g)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// WriteText writes pre-serialised Turtle text, creating parent directories
// as needed. The merger uses this to emit conflict marker blocks that the
// plain encoder cannot express.
func WriteText(content, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
