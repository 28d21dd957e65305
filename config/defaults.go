package config

// DefaultMergeYAML returns a commented starter merge configuration,
// written by "ontoforge init-config merge".
func DefaultMergeYAML() string {
	return `# ontoforge merge configuration
sources:
  - path: core.ttl
    priority: 1
  - path: extension.ttl
    priority: 2
    # namespace_remap:
    #   "http://old.example.org/": "http://example.org/"

conflicts:
  # priority | first | last | mark_all
  strategy: priority
  # ignore_predicates:
  #   - http://www.w3.org/2000/01/rdf-schema#comment

# preserve | strip | placeholder
imports: preserve

output:
  path: merged.ttl
`
}

// DefaultSplitYAML returns a commented starter split configuration.
func DefaultSplitYAML() string {
	return `# ontoforge split configuration
split:
  source: monolith.ttl
  output_dir: modules

  modules:
    - name: core
      output: core.ttl
      include:
        classes:
          - http://example.org/ontology#Entity
      include_descendants: false
    - name: organisation
      output: organisation.ttl
      namespaces:
        - "http://example.org/ontology/org#"
      auto_imports: true

  unmatched:
    # common | error | drop
    strategy: common
    module: common
    output: common.ttl

  generate_manifest: true
`
}

// DefaultRenameYAML returns a commented starter rename configuration.
func DefaultRenameYAML() string {
	return `# ontoforge rename configuration
rename:
  namespaces:
    "http://old.example.org/v1#": "http://example.org/v2#"
  entities:
    "http://example.org/ont#Buiding": "http://example.org/ont#Building"

output: renamed.ttl
`
}

// DefaultDeprecationYAML returns a commented starter deprecation
// configuration.
func DefaultDeprecationYAML() string {
	return `# ontoforge deprecation configuration
deprecations:
  - entity: http://example.org/ont#LegacyPerson
    replaced_by: http://example.org/ont#Agent
    message: Use Agent instead.
    version: "2.0.0"

output: deprecated.ttl
`
}
