package config

import "fmt"

// UnmatchedStrategy selects what happens to entities no module claims.
type UnmatchedStrategy string

const (
	// UnmatchedCommon routes unmatched entities to a shared module.
	UnmatchedCommon UnmatchedStrategy = "common"
	// UnmatchedError fails the split, reporting every unmatched entity.
	UnmatchedError UnmatchedStrategy = "error"
	// UnmatchedDrop silently excludes unmatched entities.
	UnmatchedDrop UnmatchedStrategy = "drop"
)

// Validate rejects unknown strategy names.
func (s UnmatchedStrategy) Validate() error {
	switch s {
	case UnmatchedCommon, UnmatchedError, UnmatchedDrop:
		return nil
	}
	return fmt.Errorf("unknown unmatched strategy %q", string(s))
}

// EntityLists holds the explicit entity membership of a module.
type EntityLists struct {
	Classes    []string `yaml:"classes"`
	Properties []string `yaml:"properties"`
	Instances  []string `yaml:"instances"`
}

// ModuleDefinition declares one target module of a split. Modules are
// evaluated in declaration order; the first module that claims an entity
// owns it.
type ModuleDefinition struct {
	// Name identifies the module in results and manifests.
	Name string `yaml:"name"`
	// Output is the module's file name, relative to the output directory.
	Output string `yaml:"output"`
	// Description documents the module in the manifest.
	Description string `yaml:"description"`
	// Include lists explicit entities; exact matches win over namespaces.
	Include EntityLists `yaml:"include"`
	// Namespaces claims every entity under the listed namespace prefixes.
	Namespaces []string `yaml:"namespaces"`
	// IncludeDescendants also claims every transitive subclass of an
	// explicitly included class.
	IncludeDescendants bool `yaml:"include_descendants"`
	// Imports are always emitted as owl:imports in the module's output.
	Imports []string `yaml:"imports"`
	// AutoImports adds an owl:imports declaration for every inferred
	// module dependency.
	AutoImports bool `yaml:"auto_imports"`
}

// Validate requires a name and an output file.
func (m *ModuleDefinition) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("module requires a name")
	}
	if m.Output == "" {
		return fmt.Errorf("module %s requires an output file", m.Name)
	}
	return nil
}

// UnmatchedConfig configures handling of entities no module claims.
type UnmatchedConfig struct {
	Strategy UnmatchedStrategy `yaml:"strategy"`
	// Module names the shared module for the common strategy.
	Module string `yaml:"module"`
	// Output is the shared module's file name.
	Output string `yaml:"output"`
}

// SplitDataConfig configures instance-data splitting alongside an
// ontology split. Instances are routed to the module owning their type.
type SplitDataConfig struct {
	// Sources lists data files; entries may be doublestar glob patterns.
	Sources []string `yaml:"sources"`
	// OutputDir receives the per-module data files.
	OutputDir string `yaml:"output_dir"`
	// Prefix is prepended to each data module's file name.
	Prefix string `yaml:"prefix"`
}

// SplitConfig is the complete configuration for one split run.
type SplitConfig struct {
	// Source is the monolithic ontology to partition.
	Source string `yaml:"source"`
	// OutputDir receives one file per module plus the manifest.
	OutputDir string `yaml:"output_dir"`
	// Modules are evaluated in declaration order.
	Modules []ModuleDefinition `yaml:"modules"`
	// Unmatched selects the policy for unclaimed entities.
	Unmatched UnmatchedConfig `yaml:"unmatched"`
	// GenerateManifest enables manifest.yml output.
	GenerateManifest bool `yaml:"generate_manifest"`
	// DryRun computes everything without touching storage.
	DryRun bool `yaml:"dry_run"`
	// SplitData optionally splits instance data alongside the ontology.
	SplitData *SplitDataConfig `yaml:"split_data"`
}

// Normalize fills defaulted fields: the unmatched policy defaults to a
// shared "common" module.
func (c *SplitConfig) Normalize() {
	if c.Unmatched.Strategy == "" {
		c.Unmatched.Strategy = UnmatchedCommon
	}
	if c.Unmatched.Strategy == UnmatchedCommon {
		if c.Unmatched.Module == "" {
			c.Unmatched.Module = "common"
		}
		if c.Unmatched.Output == "" {
			c.Unmatched.Output = c.Unmatched.Module + ".ttl"
		}
	}
}

// Validate checks the configuration before any processing begins.
func (c *SplitConfig) Validate() error {
	if c.Source == "" {
		return fmt.Errorf("split source is required")
	}
	names := make(map[string]bool)
	for i := range c.Modules {
		if err := c.Modules[i].Validate(); err != nil {
			return err
		}
		if names[c.Modules[i].Name] {
			return fmt.Errorf("duplicate module name %q", c.Modules[i].Name)
		}
		names[c.Modules[i].Name] = true
	}
	if err := c.Unmatched.Strategy.Validate(); err != nil {
		return err
	}
	return nil
}
