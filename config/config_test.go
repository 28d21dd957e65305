package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ontoforge/ontoforge/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMergeConfig(t *testing.T) {
	path := writeConfig(t, `
sources:
  - path: core.ttl
    priority: 2
    namespace_remap:
      "http://old.example.org/": "http://example.org/"
  - ext.ttl

conflicts:
  strategy: mark_all
  ignore_predicates:
    - http://www.w3.org/2000/01/rdf-schema#comment

imports: strip

output:
  path: merged.ttl
`)

	cfg, err := config.LoadMergeConfig(path)
	require.NoError(t, err)

	require.Len(t, cfg.Sources, 2)
	assert.Equal(t, "core.ttl", cfg.Sources[0].Path)
	assert.Equal(t, 2, cfg.Sources[0].Priority)
	assert.Equal(t, "http://example.org/", cfg.Sources[0].NamespaceRemap["http://old.example.org/"])

	// Scalar source entries are shorthand for {path: ...}.
	assert.Equal(t, "ext.ttl", cfg.Sources[1].Path)
	// Zero priorities default to the 1-based position.
	assert.Equal(t, 2, cfg.Sources[1].Priority)

	assert.Equal(t, config.StrategyMarkAll, cfg.Conflicts.Strategy)
	assert.Equal(t, config.ImportsStrip, cfg.Imports)
	assert.Equal(t, "merged.ttl", cfg.Output.Path)
}

func TestLoadMergeConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
sources:
  - a.ttl
  - b.ttl
output:
  path: out.ttl
`)

	cfg, err := config.LoadMergeConfig(path)
	require.NoError(t, err)

	assert.Equal(t, config.StrategyPriority, cfg.Conflicts.Strategy)
	assert.Equal(t, config.ImportsPreserve, cfg.Imports)
	assert.Equal(t, 1, cfg.Sources[0].Priority)
	assert.Equal(t, 2, cfg.Sources[1].Priority)
}

func TestLoadMergeConfigInvalidStrategy(t *testing.T) {
	path := writeConfig(t, `
sources:
  - a.ttl
conflicts:
  strategy: newest
`)

	_, err := config.LoadMergeConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown conflict strategy")
}

func TestLoadSplitConfig(t *testing.T) {
	path := writeConfig(t, `
split:
  source: monolith.ttl
  output_dir: modules
  modules:
    - name: core
      output: core.ttl
      include:
        classes:
          - http://example.org/ontology#Entity
        properties:
          - http://example.org/ontology#identifier
      include_descendants: true
    - name: org
      output: org.ttl
      namespaces:
        - "http://example.org/ontology/org#"
      auto_imports: true
  generate_manifest: true
`)

	cfg, err := config.LoadSplitConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "monolith.ttl", cfg.Source)
	require.Len(t, cfg.Modules, 2)
	assert.True(t, cfg.Modules[0].IncludeDescendants)
	assert.Len(t, cfg.Modules[0].Include.Classes, 1)
	assert.True(t, cfg.Modules[1].AutoImports)
	assert.True(t, cfg.GenerateManifest)

	// Unmatched defaults to a shared common module.
	assert.Equal(t, config.UnmatchedCommon, cfg.Unmatched.Strategy)
	assert.Equal(t, "common", cfg.Unmatched.Module)
	assert.Equal(t, "common.ttl", cfg.Unmatched.Output)
}

func TestLoadSplitConfigDuplicateModule(t *testing.T) {
	path := writeConfig(t, `
split:
  source: monolith.ttl
  modules:
    - name: core
      output: a.ttl
    - name: core
      output: b.ttl
`)

	_, err := config.LoadSplitConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate module name")
}

func TestLoadMigrationConfig(t *testing.T) {
	path := writeConfig(t, `
migration:
  sources:
    - "data/**/*.ttl"
  output_dir: migrated
  namespaces:
    "http://old.example.org/": "http://example.org/"
  rules:
    - type: rename
      from: http://example.org/a
      to: http://example.org/b
    - type: transform
      description: split name
      match: "?s ex:name ?name"
      construct:
        - pattern: "?s ex:givenName ?given"
          bind: 'STRBEFORE(?name, " ") AS ?given'
      delete_matched: true
`)

	cfg, err := config.LoadMigrationConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"data/**/*.ttl"}, cfg.Sources)
	require.Len(t, cfg.Rules, 2)
	assert.Equal(t, config.RuleRename, cfg.Rules[0].Type)
	assert.Equal(t, config.RuleTransform, cfg.Rules[1].Type)
	assert.True(t, cfg.Rules[1].DeleteMatched)
}

func TestMigrationRuleValidate(t *testing.T) {
	tests := []struct {
		name    string
		rule    config.MigrationRule
		wantErr bool
	}{
		{
			name: "valid rename",
			rule: config.MigrationRule{Type: config.RuleRename, From: "http://a", To: "http://b"},
		},
		{
			name:    "rename missing to",
			rule:    config.MigrationRule{Type: config.RuleRename, From: "http://a"},
			wantErr: true,
		},
		{
			name: "valid transform",
			rule: config.MigrationRule{
				Type:      config.RuleTransform,
				Match:     "?s ?p ?o",
				Construct: []config.ConstructTemplate{{Pattern: "?s ?p ?o"}},
			},
		},
		{
			name:    "transform without construct",
			rule:    config.MigrationRule{Type: config.RuleTransform, Match: "?s ?p ?o"},
			wantErr: true,
		},
		{
			name:    "unknown type",
			rule:    config.MigrationRule{Type: "replace"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadRefactorConfig(t *testing.T) {
	path := writeConfig(t, `
rename:
  namespaces:
    "http://old.example.org/v1#": "http://example.org/v2#"
  entities:
    "http://example.org/ont#Buiding": "http://example.org/ont#Building"

deprecations:
  - entity: http://example.org/ont#LegacyPerson
    replaced_by: http://example.org/ont#Agent
    message: Use Agent instead.
    version: "2.0.0"

output: fixed.ttl
`)

	cfg, err := config.LoadRefactorConfig(path)
	require.NoError(t, err)

	require.NotNil(t, cfg.Rename)
	assert.Len(t, cfg.Rename.Entities, 1)
	require.Len(t, cfg.Deprecations, 1)
	assert.Equal(t, "http://example.org/ont#Agent", cfg.Deprecations[0].ReplacedBy)
	assert.Equal(t, "2.0.0", cfg.Deprecations[0].Version)
	assert.Equal(t, "fixed.ttl", cfg.Output)
}

func TestDefaultYAMLRoundTrips(t *testing.T) {
	t.Run("merge", func(t *testing.T) {
		path := writeConfig(t, config.DefaultMergeYAML())
		cfg, err := config.LoadMergeConfig(path)
		require.NoError(t, err)
		assert.NotEmpty(t, cfg.Sources)
	})
	t.Run("split", func(t *testing.T) {
		path := writeConfig(t, config.DefaultSplitYAML())
		cfg, err := config.LoadSplitConfig(path)
		require.NoError(t, err)
		assert.NotEmpty(t, cfg.Modules)
	})
	t.Run("rename", func(t *testing.T) {
		path := writeConfig(t, config.DefaultRenameYAML())
		cfg, err := config.LoadRefactorConfig(path)
		require.NoError(t, err)
		require.NotNil(t, cfg.Rename)
	})
	t.Run("deprecation", func(t *testing.T) {
		path := writeConfig(t, config.DefaultDeprecationYAML())
		cfg, err := config.LoadRefactorConfig(path)
		require.NoError(t, err)
		assert.NotEmpty(t, cfg.Deprecations)
	})
}
