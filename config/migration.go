package config

import "fmt"

// Migration rule kinds.
const (
	// RuleRename is a 1:1 URI substitution.
	RuleRename = "rename"
	// RuleTransform is a pattern-driven rewrite: match a triple pattern,
	// construct replacements per binding, optionally delete the match.
	RuleTransform = "transform"
)

// ConstructTemplate is one output pattern of a transform rule.
type ConstructTemplate struct {
	// Pattern is a triple pattern with variables, e.g. "?s ex:givenName ?given".
	Pattern string `yaml:"pattern"`
	// Bind optionally derives a new variable, e.g.
	// `STRBEFORE(?name, " ") AS ?given`.
	Bind string `yaml:"bind"`
}

// MigrationRule is one declared data migration step. Rules are declared in
// configuration and never mutated at runtime.
type MigrationRule struct {
	// Type is "rename" or "transform".
	Type string `yaml:"type"`
	// Description documents the rule in reports.
	Description string `yaml:"description"`

	// From and To apply to rename rules.
	From string `yaml:"from"`
	To   string `yaml:"to"`

	// Match, Construct, and DeleteMatched apply to transform rules.
	Match         string              `yaml:"match"`
	Construct     []ConstructTemplate `yaml:"construct"`
	DeleteMatched bool                `yaml:"delete_matched"`
}

// Validate checks the rule shape for its declared type.
func (r *MigrationRule) Validate() error {
	switch r.Type {
	case RuleRename:
		if r.From == "" || r.To == "" {
			return fmt.Errorf("rename rule requires from and to")
		}
	case RuleTransform:
		if r.Match == "" {
			return fmt.Errorf("transform rule requires a match pattern")
		}
		if len(r.Construct) == 0 {
			return fmt.Errorf("transform rule requires at least one construct template")
		}
		for _, c := range r.Construct {
			if c.Pattern == "" {
				return fmt.Errorf("construct template requires a pattern")
			}
		}
	default:
		return fmt.Errorf("unknown migration rule type %q", r.Type)
	}
	return nil
}

// DataMigrationConfig configures identifier rewriting over instance data.
// Exactly one of Entities, Namespaces, or Rules drives the migration;
// they may also be combined, with explicit entity mappings taking
// precedence over namespace-derived ones.
type DataMigrationConfig struct {
	// Sources lists data files to migrate. Entries may be glob patterns
	// (doublestar syntax, e.g. "data/**/*.ttl").
	Sources []string `yaml:"sources"`
	// OutputDir receives migrated files, one per source.
	OutputDir string `yaml:"output_dir"`
	// Entities maps explicit old URIs to new URIs.
	Entities map[string]string `yaml:"entities"`
	// Namespaces maps old namespace prefixes to new ones; every identifier
	// under an old namespace is rewritten, preserving its local name.
	Namespaces map[string]string `yaml:"namespaces"`
	// Rules lists rename/transform rules applied after the URI map.
	Rules []MigrationRule `yaml:"rules"`
	// DryRun skips output writes.
	DryRun bool `yaml:"dry_run"`
}

// Validate checks every rule and remap entry.
func (c *DataMigrationConfig) Validate() error {
	for old, renamed := range c.Namespaces {
		if old == "" || renamed == "" {
			return fmt.Errorf("malformed namespace mapping")
		}
	}
	for i := range c.Rules {
		if err := c.Rules[i].Validate(); err != nil {
			return fmt.Errorf("rule %d: %w", i+1, err)
		}
	}
	return nil
}
