package config

import "fmt"

// RenameConfig declares identifier renames: bulk namespace moves plus
// explicit entity mappings. Explicit mappings override namespace-derived
// ones for the same entity.
type RenameConfig struct {
	// Namespaces maps old namespace prefixes to new ones.
	Namespaces map[string]string `yaml:"namespaces"`
	// Entities maps explicit old URIs to new URIs.
	Entities map[string]string `yaml:"entities"`
}

// DeprecationSpec declares one entity deprecation.
type DeprecationSpec struct {
	// Entity is the URI to deprecate.
	Entity string `yaml:"entity"`
	// ReplacedBy optionally names the replacement entity.
	ReplacedBy string `yaml:"replaced_by"`
	// Message is recorded in the deprecation comment.
	Message string `yaml:"message"`
	// Version is included in the deprecation comment when set.
	Version string `yaml:"version"`
}

// Validate requires an entity URI.
func (s *DeprecationSpec) Validate() error {
	if s.Entity == "" {
		return fmt.Errorf("deprecation requires an entity")
	}
	return nil
}

// RefactorConfig is the complete configuration for one refactor run.
type RefactorConfig struct {
	Rename       *RenameConfig     `yaml:"rename"`
	Deprecations []DeprecationSpec `yaml:"deprecations"`
	// Output is where the refactored graph is written.
	Output string `yaml:"output"`
	// DryRun skips the output write.
	DryRun bool `yaml:"dry_run"`
}

// Validate checks every deprecation spec and rename entry.
func (c *RefactorConfig) Validate() error {
	if c.Rename != nil {
		for old, renamed := range c.Rename.Namespaces {
			if old == "" || renamed == "" {
				return fmt.Errorf("malformed namespace rename entry")
			}
		}
		for old, renamed := range c.Rename.Entities {
			if old == "" || renamed == "" {
				return fmt.Errorf("malformed entity rename entry")
			}
		}
	}
	for i := range c.Deprecations {
		if err := c.Deprecations[i].Validate(); err != nil {
			return fmt.Errorf("deprecation %d: %w", i+1, err)
		}
	}
	return nil
}
