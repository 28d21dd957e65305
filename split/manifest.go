package split

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ManifestModule summarizes one module for the manifest file.
type ManifestModule struct {
	Name         string   `yaml:"name"`
	Output       string   `yaml:"output"`
	Description  string   `yaml:"description,omitempty"`
	Entities     int      `yaml:"entities"`
	Triples      int      `yaml:"triples"`
	Dependencies []string `yaml:"dependencies,omitempty"`
}

// ManifestSummary aggregates the split's totals.
type ManifestSummary struct {
	TotalModules   int `yaml:"total_modules"`
	TotalEntities  int `yaml:"total_entities"`
	UnmatchedCount int `yaml:"unmatched_count"`
}

// Manifest is the structured summary written alongside module files.
type Manifest struct {
	Modules   []ManifestModule `yaml:"modules"`
	Summary   ManifestSummary  `yaml:"summary"`
	Unmatched []string         `yaml:"unmatched,omitempty"`
}

// BuildManifest assembles the manifest for a split result, modules in
// write order.
func (s *OntologySplitter) BuildManifest(result SplitResult) Manifest {
	manifest := Manifest{Unmatched: result.Unmatched}

	descriptions := make(map[string]string, len(s.cfg.Modules))
	for _, m := range s.cfg.Modules {
		descriptions[m.Name] = m.Description
	}

	for _, name := range result.ModuleOrder {
		g, ok := result.Modules[name]
		if !ok {
			continue
		}
		entities := len(g.Subjects())
		manifest.Modules = append(manifest.Modules, ManifestModule{
			Name:         name,
			Output:       s.outputs[name],
			Description:  descriptions[name],
			Entities:     entities,
			Triples:      g.Len(),
			Dependencies: result.Dependencies[name],
		})
		manifest.Summary.TotalEntities += entities
	}
	manifest.Summary.TotalModules = len(manifest.Modules)
	manifest.Summary.UnmatchedCount = len(result.Unmatched)
	return manifest
}

// WriteManifest serializes the manifest to manifest.yml in the output
// directory. A dry run returns without touching storage.
func (s *OntologySplitter) WriteManifest(result SplitResult) error {
	if s.cfg.DryRun || !result.Success || !s.cfg.GenerateManifest {
		return nil
	}
	manifest := s.BuildManifest(result)
	data, err := yaml.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	path := filepath.Join(s.cfg.OutputDir, "manifest.yml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
