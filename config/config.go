// Package config provides configuration loading and validation for
// ontoforge merge, split, and refactor runs. Unknown strategy names are
// rejected at load time, before any processing begins.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ConflictStrategy selects how detected conflicts are resolved.
type ConflictStrategy string

const (
	// StrategyPriority picks the value from the highest-priority source;
	// ties resolve to the earliest source in configuration order.
	StrategyPriority ConflictStrategy = "priority"
	// StrategyFirst picks the value from the earliest configured source.
	StrategyFirst ConflictStrategy = "first"
	// StrategyLast picks the value from the latest configured source.
	StrategyLast ConflictStrategy = "last"
	// StrategyMarkAll keeps every competing value, bracketed by conflict
	// markers for manual post-processing.
	StrategyMarkAll ConflictStrategy = "mark_all"
)

// Validate rejects unknown strategy names.
func (s ConflictStrategy) Validate() error {
	switch s {
	case StrategyPriority, StrategyFirst, StrategyLast, StrategyMarkAll:
		return nil
	}
	return fmt.Errorf("unknown conflict strategy %q", string(s))
}

// ImportsStrategy selects how owl:imports declarations are handled.
type ImportsStrategy string

const (
	// ImportsPreserve keeps import declarations unmodified.
	ImportsPreserve ImportsStrategy = "preserve"
	// ImportsStrip removes import declarations from the merged graph.
	ImportsStrip ImportsStrategy = "strip"
	// ImportsPlaceholder keeps import declarations and lists them in the
	// result for external resolution. Nothing is fetched.
	ImportsPlaceholder ImportsStrategy = "placeholder"
)

// Validate rejects unknown strategy names.
func (s ImportsStrategy) Validate() error {
	switch s {
	case ImportsPreserve, ImportsStrip, ImportsPlaceholder:
		return nil
	}
	return fmt.Errorf("unknown imports strategy %q", string(s))
}

// SourceConfig describes one merge input.
type SourceConfig struct {
	// Path is the source file location.
	Path string `yaml:"path"`
	// Priority is used by the priority conflict strategy. Zero means
	// "default": the 1-based position in the source list.
	Priority int `yaml:"priority"`
	// NamespaceRemap rewrites identifiers under each old namespace to the
	// corresponding new namespace before merging.
	NamespaceRemap map[string]string `yaml:"namespace_remap"`
}

// UnmarshalYAML accepts either a plain path string or a full mapping.
func (s *SourceConfig) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		s.Path = node.Value
		return nil
	}
	type plain SourceConfig
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*s = SourceConfig(p)
	return nil
}

// ConflictConfig configures conflict detection and resolution.
type ConflictConfig struct {
	// Strategy selects the resolution strategy. Defaults to priority.
	Strategy ConflictStrategy `yaml:"strategy"`
	// IgnorePredicates lists predicate IRIs that never produce conflicts;
	// their triples are unioned as-is.
	IgnorePredicates []string `yaml:"ignore_predicates"`
}

// OutputConfig configures where a merged graph is written.
type OutputConfig struct {
	// Path is the merged output file. Empty means no file is written.
	Path string `yaml:"path"`
}

// MergeConfig is the complete configuration for one merge run.
type MergeConfig struct {
	Sources   []SourceConfig  `yaml:"sources"`
	Conflicts ConflictConfig  `yaml:"conflicts"`
	Imports   ImportsStrategy `yaml:"imports"`
	Output    OutputConfig    `yaml:"output"`
	// DryRun skips the output write while still returning full results.
	DryRun bool `yaml:"dry_run"`
	// Migration optionally rewrites instance data after the merge.
	Migration *DataMigrationConfig `yaml:"migration"`
}

// DefaultMergeConfig returns a MergeConfig with default strategies.
func DefaultMergeConfig() MergeConfig {
	return MergeConfig{
		Conflicts: ConflictConfig{Strategy: StrategyPriority},
		Imports:   ImportsPreserve,
	}
}

// Normalize fills defaulted fields: empty strategies and zero priorities
// (which default to the 1-based source position).
func (c *MergeConfig) Normalize() {
	if c.Conflicts.Strategy == "" {
		c.Conflicts.Strategy = StrategyPriority
	}
	if c.Imports == "" {
		c.Imports = ImportsPreserve
	}
	for i := range c.Sources {
		if c.Sources[i].Priority == 0 {
			c.Sources[i].Priority = i + 1
		}
	}
}

// Validate checks the configuration before any processing begins.
func (c *MergeConfig) Validate() error {
	if len(c.Sources) == 0 {
		return fmt.Errorf("at least one source is required")
	}
	for i, src := range c.Sources {
		if src.Path == "" {
			return fmt.Errorf("source %d: path is required", i+1)
		}
		for old, renamed := range src.NamespaceRemap {
			if old == "" || renamed == "" {
				return fmt.Errorf("source %s: malformed namespace remap entry", src.Path)
			}
		}
	}
	if err := c.Conflicts.Strategy.Validate(); err != nil {
		return err
	}
	if err := c.Imports.Validate(); err != nil {
		return err
	}
	if c.Migration != nil {
		if err := c.Migration.Validate(); err != nil {
			return err
		}
	}
	return nil
}
