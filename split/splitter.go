// Package split partitions one ontology graph into modules: entities are
// claimed by declared modules (explicit lists, then namespaces, then
// subclass descendants), cross-module references become an inferred
// dependency graph, and instance data can be routed alongside by type.
package split

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ontoforge/ontoforge/config"
	"github.com/ontoforge/ontoforge/rdf"
	"github.com/ontoforge/ontoforge/rdfio"
	"github.com/ontoforge/ontoforge/vocabulary"
)

// SplitResult is the complete outcome of one split run: everything is
// computed in memory so a dry run can inspect it without touching storage.
type SplitResult struct {
	// Modules maps module names to their partitioned graphs. A shared
	// module appears here when the common unmatched strategy created it.
	Modules map[string]*rdf.Graph
	// DataModules maps module names to routed instance-data graphs.
	DataModules map[string]*rdf.Graph
	// Assignments maps every claimed entity to its owning module.
	Assignments map[string]string
	// Dependencies maps a module to the sorted modules it references.
	Dependencies map[string][]string
	// Unmatched lists entities no declared module claimed, in the source
	// graph's subject order.
	Unmatched []string
	// ModuleOrder is declaration order, with the shared module last.
	ModuleOrder []string

	Success bool
	Error   string
}

// TotalModules returns the number of non-empty modules produced.
func (r SplitResult) TotalModules() int { return len(r.Modules) }

// OntologySplitter partitions a source ontology per its configuration.
type OntologySplitter struct {
	cfg config.SplitConfig

	// outputs maps module names to their output file names.
	outputs map[string]string
}

// NewSplitter creates a splitter, filling configuration defaults.
func NewSplitter(cfg config.SplitConfig) *OntologySplitter {
	cfg.Normalize()
	outputs := make(map[string]string, len(cfg.Modules)+1)
	for _, m := range cfg.Modules {
		outputs[m.Name] = m.Output
	}
	if cfg.Unmatched.Strategy == config.UnmatchedCommon {
		outputs[cfg.Unmatched.Module] = cfg.Unmatched.Output
	}
	return &OntologySplitter{cfg: cfg, outputs: outputs}
}

// Split computes the full partition without writing anything. Use
// WriteModules and WriteManifest to persist the result.
func (s *OntologySplitter) Split() SplitResult {
	if err := s.cfg.Validate(); err != nil {
		return failure(err)
	}

	source, err := rdfio.LoadFile(s.cfg.Source)
	if err != nil {
		return failure(err)
	}

	result := SplitResult{
		Modules:      make(map[string]*rdf.Graph),
		DataModules:  make(map[string]*rdf.Graph),
		Assignments:  make(map[string]string),
		Dependencies: make(map[string][]string),
		Success:      true,
	}
	for _, m := range s.cfg.Modules {
		result.ModuleOrder = append(result.ModuleOrder, m.Name)
	}

	entities := subjectKeys(source)
	s.assignExplicit(source, entities, result.Assignments)
	s.assignByNamespace(entities, result.Assignments)
	s.assignDescendants(source, result.Assignments)

	for _, entity := range entities {
		if _, claimed := result.Assignments[entity]; !claimed {
			result.Unmatched = append(result.Unmatched, entity)
		}
	}

	switch s.cfg.Unmatched.Strategy {
	case config.UnmatchedError:
		if len(result.Unmatched) > 0 {
			return failure(fmt.Errorf("Unmatched entities: %s", strings.Join(result.Unmatched, ", ")))
		}
	case config.UnmatchedCommon:
		if len(result.Unmatched) > 0 {
			result.ModuleOrder = append(result.ModuleOrder, s.cfg.Unmatched.Module)
			for _, entity := range result.Unmatched {
				result.Assignments[entity] = s.cfg.Unmatched.Module
			}
		}
	case config.UnmatchedDrop:
		// Excluded from every module.
	}

	s.buildModuleGraphs(source, &result)
	s.inferDependencies(source, &result)
	s.addImports(&result)

	if s.cfg.SplitData != nil {
		if err := s.splitData(&result); err != nil {
			return failure(err)
		}
	}
	return result
}

// assignExplicit claims entities from the modules' explicit include
// lists, in declaration order. CURIEs are expanded against the source.
func (s *OntologySplitter) assignExplicit(source *rdf.Graph, entities []string, assignments map[string]string) {
	present := make(map[string]bool, len(entities))
	for _, e := range entities {
		present[e] = true
	}
	for _, m := range s.cfg.Modules {
		for _, list := range [][]string{m.Include.Classes, m.Include.Properties, m.Include.Instances} {
			for _, entry := range list {
				entity := source.Expand(entry)
				if present[entity] {
					claim(assignments, entity, m.Name)
				}
			}
		}
	}
}

// assignByNamespace claims remaining entities whose identifier starts
// with one of a module's namespace prefixes.
func (s *OntologySplitter) assignByNamespace(entities []string, assignments map[string]string) {
	for _, m := range s.cfg.Modules {
		if len(m.Namespaces) == 0 {
			continue
		}
		for _, entity := range entities {
			for _, ns := range m.Namespaces {
				if strings.HasPrefix(entity, ns) {
					claim(assignments, entity, m.Name)
					break
				}
			}
		}
	}
}

// assignDescendants claims every unclaimed transitive subclass of a
// module's explicitly included classes.
func (s *OntologySplitter) assignDescendants(source *rdf.Graph, assignments map[string]string) {
	for _, m := range s.cfg.Modules {
		if !m.IncludeDescendants {
			continue
		}
		queue := make([]string, 0, len(m.Include.Classes))
		for _, entry := range m.Include.Classes {
			queue = append(queue, source.Expand(entry))
		}
		seen := make(map[string]bool)
		for len(queue) > 0 {
			class := queue[0]
			queue = queue[1:]
			if seen[class] {
				continue
			}
			seen[class] = true
			for _, sub := range source.SubjectsWith(rdf.NewIRI(vocabulary.RDFSSubClassOf), rdf.NewIRI(class)) {
				claim(assignments, sub.String(), m.Name)
				queue = append(queue, sub.String())
			}
		}
	}
}

// subjectKeys returns the source's distinct subject identifiers in
// first-seen order.
func subjectKeys(g *rdf.Graph) []string {
	subjects := g.Subjects()
	out := make([]string, 0, len(subjects))
	for _, s := range subjects {
		out = append(out, s.String())
	}
	return out
}

// claim records an assignment only when the entity is still unowned.
func claim(assignments map[string]string, entity, module string) {
	if _, taken := assignments[entity]; !taken {
		assignments[entity] = module
	}
}

// buildModuleGraphs routes every triple to the module owning its subject.
func (s *OntologySplitter) buildModuleGraphs(source *rdf.Graph, result *SplitResult) {
	for _, t := range source.Triples() {
		module, owned := result.Assignments[t.S.String()]
		if !owned {
			continue
		}
		g, ok := result.Modules[module]
		if !ok {
			g = rdf.NewGraph()
			g.CopyBindings(source)
			result.Modules[module] = g
		}
		g.Add(t)
	}
}

// inferDependencies records that module A depends on module B whenever a
// triple's subject belongs to A and its object identifier belongs to B.
func (s *OntologySplitter) inferDependencies(source *rdf.Graph, result *SplitResult) {
	deps := make(map[string]map[string]bool)
	for _, t := range source.Triples() {
		from, owned := result.Assignments[t.S.String()]
		if !owned {
			continue
		}
		obj, isIRI := t.O.(rdf.IRI)
		if !isIRI {
			continue
		}
		to, targetOwned := result.Assignments[obj.Value]
		if !targetOwned || to == from {
			continue
		}
		if deps[from] == nil {
			deps[from] = make(map[string]bool)
		}
		deps[from][to] = true
	}
	for from, targets := range deps {
		sorted := make([]string, 0, len(targets))
		for to := range targets {
			sorted = append(sorted, to)
		}
		sort.Strings(sorted)
		result.Dependencies[from] = sorted
	}
}

// addImports emits owl:imports declarations: explicit imports always,
// inferred dependencies only for auto_imports modules.
func (s *OntologySplitter) addImports(result *SplitResult) {
	for _, m := range s.cfg.Modules {
		g, ok := result.Modules[m.Name]
		if !ok {
			continue
		}
		subject := s.ontologyIRI(m.Name, result)
		for _, target := range m.Imports {
			g.Add(rdf.Triple{
				S: subject,
				P: rdf.NewIRI(vocabulary.OWLImports),
				O: rdf.NewIRI(g.Expand(target)),
			})
		}
		if !m.AutoImports {
			continue
		}
		for _, dep := range result.Dependencies[m.Name] {
			g.Add(rdf.Triple{
				S: subject,
				P: rdf.NewIRI(vocabulary.OWLImports),
				O: s.ontologyIRI(dep, result),
			})
		}
	}
}

// ontologyIRI returns the module's ontology header subject: an existing
// owl:Ontology subject in its graph if there is one, a stable synthetic
// identifier otherwise.
func (s *OntologySplitter) ontologyIRI(module string, result *SplitResult) rdf.IRI {
	if g, ok := result.Modules[module]; ok {
		for _, subject := range g.SubjectsWith(rdf.NewIRI(vocabulary.RDFType), rdf.NewIRI(vocabulary.OWLOntology)) {
			if iri, isIRI := subject.(rdf.IRI); isIRI {
				return iri
			}
		}
	}
	return rdf.NewIRI("urn:ontoforge:module:" + module)
}

// splitData routes instance triples to the module owning the instance's
// declared type. An instance with several assigned types goes to the
// module declared earliest in the configuration, not to whichever type
// triple happens to come first. Instances with no assigned type follow
// the unmatched policy.
func (s *OntologySplitter) splitData(result *SplitResult) error {
	data := rdf.NewGraph()
	for _, pattern := range s.cfg.SplitData.Sources {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return fmt.Errorf("bad data source pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return fmt.Errorf("data source pattern %q matched no files", pattern)
		}
		sort.Strings(matches)
		for _, path := range matches {
			g, err := rdfio.LoadFile(path)
			if err != nil {
				return err
			}
			data.AddAll(g)
			data.CopyBindings(g)
		}
	}

	// Declared modules rank by configuration order; the shared module
	// ranks after all of them.
	rank := make(map[string]int, len(s.cfg.Modules)+1)
	for i, m := range s.cfg.Modules {
		rank[m.Name] = i
	}
	if s.cfg.Unmatched.Strategy == config.UnmatchedCommon {
		rank[s.cfg.Unmatched.Module] = len(s.cfg.Modules)
	}

	var unmatchedInstances []string
	for _, instance := range data.Subjects() {
		module := ""
		best := len(rank)
		for _, typ := range data.Objects(instance, rdf.NewIRI(vocabulary.RDFType)) {
			iri, ok := typ.(rdf.IRI)
			if !ok {
				continue
			}
			owner, assigned := result.Assignments[iri.Value]
			if !assigned {
				continue
			}
			if r, known := rank[owner]; known && (module == "" || r < best) {
				module = owner
				best = r
			}
		}
		if module == "" {
			switch s.cfg.Unmatched.Strategy {
			case config.UnmatchedError:
				unmatchedInstances = append(unmatchedInstances, instance.String())
				continue
			case config.UnmatchedDrop:
				continue
			case config.UnmatchedCommon:
				module = s.cfg.Unmatched.Module
			}
		}
		g, ok := result.DataModules[module]
		if !ok {
			g = rdf.NewGraph()
			g.CopyBindings(data)
			result.DataModules[module] = g
			ensureModuleListed(result, module)
		}
		for _, t := range data.TriplesFor(instance) {
			g.Add(t)
		}
	}

	if len(unmatchedInstances) > 0 {
		return fmt.Errorf("Unmatched entities: %s", strings.Join(unmatchedInstances, ", "))
	}
	return nil
}

// WriteModules persists every module graph (and data modules when
// configured). A dry run returns without touching storage.
func (s *OntologySplitter) WriteModules(result SplitResult) error {
	if s.cfg.DryRun || !result.Success {
		return nil
	}
	for _, name := range result.ModuleOrder {
		g, ok := result.Modules[name]
		if !ok {
			continue
		}
		output, known := s.outputs[name]
		if !known {
			return fmt.Errorf("no output file configured for module %s", name)
		}
		if err := rdfio.WriteFile(g, joinPath(s.cfg.OutputDir, output)); err != nil {
			return err
		}
	}
	if s.cfg.SplitData == nil {
		return nil
	}
	for _, name := range result.ModuleOrder {
		g, ok := result.DataModules[name]
		if !ok {
			continue
		}
		output, known := s.outputs[name]
		if !known {
			output = name + ".ttl"
		}
		path := joinPath(s.cfg.SplitData.OutputDir, s.cfg.SplitData.Prefix+output)
		if err := rdfio.WriteFile(g, path); err != nil {
			return err
		}
	}
	return nil
}

// ensureModuleListed appends a module to the write order if a data-only
// routing created it (the shared module may hold data but no ontology).
func ensureModuleListed(result *SplitResult, module string) {
	for _, name := range result.ModuleOrder {
		if name == module {
			return
		}
	}
	result.ModuleOrder = append(result.ModuleOrder, module)
}

func joinPath(dir, file string) string {
	if dir == "" {
		return file
	}
	return strings.TrimRight(dir, "/") + "/" + file
}

func failure(err error) SplitResult {
	return SplitResult{Error: err.Error()}
}

// ByNamespace splits a source ontology with one module per non-core
// namespace prefix bound in it, named after the prefix. Module files are
// written to outputDir unless dryRun is set.
func ByNamespace(source, outputDir string, dryRun bool) SplitResult {
	g, err := rdfio.LoadFile(source)
	if err != nil {
		return failure(err)
	}

	core := map[string]bool{
		vocabulary.RDFNamespace:     true,
		vocabulary.RDFSNamespace:    true,
		vocabulary.OWLNamespace:     true,
		vocabulary.XSDNamespace:     true,
		vocabulary.DCTermsNamespace: true,
	}

	cfg := config.SplitConfig{
		Source:    source,
		OutputDir: outputDir,
		DryRun:    dryRun,
	}
	for _, binding := range g.Prefixes() {
		prefix, namespace := binding[0], binding[1]
		if prefix == "" || core[namespace] {
			continue
		}
		cfg.Modules = append(cfg.Modules, config.ModuleDefinition{
			Name:       prefix,
			Output:     prefix + ".ttl",
			Namespaces: []string{namespace},
		})
	}

	splitter := NewSplitter(cfg)
	result := splitter.Split()
	if !result.Success {
		return result
	}
	if err := splitter.WriteModules(result); err != nil {
		return failure(err)
	}
	return result
}
