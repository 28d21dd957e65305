package merge

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ontoforge/ontoforge/config"
	"github.com/ontoforge/ontoforge/rdf"
	"github.com/ontoforge/ontoforge/rdfio"
	"github.com/ontoforge/ontoforge/vocabulary"
)

// MarkerBlock pairs an unresolved conflict with its competing triples for
// mark_all output.
type MarkerBlock struct {
	Conflict Conflict
	Triples  []rdf.Triple
}

// MergeResult is the complete outcome of one merge run. Fatal conditions
// surface as Success=false plus a message rather than an error return, so
// batch callers can continue past one failure.
type MergeResult struct {
	// Merged is the unioned graph. Every input triple is accounted for:
	// merged output, a resolved conflict, or a marker block.
	Merged *rdf.Graph
	// Conflicts lists every detected conflict, resolved or not.
	Conflicts []Conflict
	// SourceStats maps each source path to its triple count after remap.
	SourceStats map[string]int
	// TotalTriples is the merged graph's triple count.
	TotalTriples int
	// Markers holds conflict marker blocks under the mark_all strategy.
	Markers []MarkerBlock
	// ImportsPlaceheld lists import targets left for external resolution
	// under the placeholder strategy.
	ImportsPlaceheld []string

	Success bool
	Error   string
}

// UnresolvedConflicts returns the conflicts no strategy resolved.
func (r MergeResult) UnresolvedConflicts() []Conflict {
	var out []Conflict
	for _, c := range r.Conflicts {
		if !c.Resolved {
			out = append(out, c)
		}
	}
	return out
}

// OntologyMerger orchestrates loading, namespace remapping, conflict
// detection and resolution, import handling, and the final triple union.
type OntologyMerger struct {
	cfg config.MergeConfig
}

// NewMerger creates a merger for the given configuration.
func NewMerger(cfg config.MergeConfig) *OntologyMerger {
	cfg.Normalize()
	return &OntologyMerger{cfg: cfg}
}

// Merge runs the full pipeline and returns a fully populated result. The
// merged output file is written unless DryRun is set or no output path is
// configured.
func (m *OntologyMerger) Merge() MergeResult {
	if err := m.cfg.Validate(); err != nil {
		return failure(err)
	}

	sources, err := m.loadSources()
	if err != nil {
		return failure(err)
	}

	detector := NewConflictDetector(m.cfg.Conflicts.IgnorePredicates...)
	conflicts := detector.DetectConflicts(sources)

	for i := range conflicts {
		switch m.cfg.Conflicts.Strategy {
		case config.StrategyPriority:
			conflicts[i].ResolveByPriority()
		case config.StrategyFirst:
			conflicts[i].ResolveByFirst()
		case config.StrategyLast:
			conflicts[i].ResolveByLast()
		case config.StrategyMarkAll:
			// Left unresolved; every competing triple is retained.
		}
	}

	result := m.union(sources, conflicts)
	m.handleImports(&result)

	result.TotalTriples = result.Merged.Len()
	result.Success = true

	if !m.cfg.DryRun && m.cfg.Output.Path != "" {
		if err := m.writeOutput(result); err != nil {
			result.Success = false
			result.Error = err.Error()
		}
	}
	return result
}

func (m *OntologyMerger) loadSources() ([]SourceGraph, error) {
	sources := make([]SourceGraph, 0, len(m.cfg.Sources))
	for i, sc := range m.cfg.Sources {
		g, err := rdfio.LoadFile(sc.Path)
		if err != nil {
			return nil, err
		}
		src := SourceGraph{Graph: g, Path: sc.Path, Priority: sc.Priority, Order: i}
		if len(sc.NamespaceRemap) > 0 {
			src = src.remapNamespaces(sc.NamespaceRemap)
		}
		sources = append(sources, src)
	}
	return sources, nil
}

// union builds the merged graph: all non-conflicting triples from all
// sources, plus the chosen (or, under mark_all, every competing) value for
// each conflicted pair.
func (m *OntologyMerger) union(sources []SourceGraph, conflicts []Conflict) MergeResult {
	conflicted := make(map[pairKey]int, len(conflicts))
	for i, c := range conflicts {
		conflicted[pairKey{subject: c.Subject.String(), predicate: c.Predicate.Value}] = i
	}

	merged := rdf.NewGraph()
	for name, ns := range vocabulary.DefaultPrefixes() {
		merged.Bind(name, ns)
	}

	stats := make(map[string]int, len(sources))
	markAll := m.cfg.Conflicts.Strategy == config.StrategyMarkAll
	blocks := make([][]rdf.Triple, len(conflicts))

	for _, src := range sources {
		merged.CopyBindings(src.Graph)
		stats[src.Path] = src.Graph.Len()

		for _, t := range src.Graph.Triples() {
			key := pairKey{subject: t.S.String(), predicate: t.P.Value}
			idx, isConflicted := conflicted[key]
			if !isConflicted {
				merged.Add(t)
				continue
			}
			if markAll {
				if !containsTriple(blocks[idx], t) {
					blocks[idx] = append(blocks[idx], t)
				}
				merged.Add(t)
			}
		}
	}

	// Resolved conflicts contribute exactly their chosen value.
	for _, c := range conflicts {
		if c.Resolved {
			merged.Add(rdf.Triple{S: c.Subject, P: c.Predicate, O: c.Resolution.Value})
		}
	}

	result := MergeResult{
		Merged:      merged,
		Conflicts:   conflicts,
		SourceStats: stats,
	}
	if markAll {
		for i, c := range conflicts {
			sort.Slice(blocks[i], func(a, b int) bool {
				return blocks[i][a].String() < blocks[i][b].String()
			})
			result.Markers = append(result.Markers, MarkerBlock{Conflict: c, Triples: blocks[i]})
		}
	}
	return result
}

func (m *OntologyMerger) handleImports(result *MergeResult) {
	var importTriples []rdf.Triple
	for _, t := range result.Merged.Triples() {
		if t.P.Value == vocabulary.OWLImports {
			importTriples = append(importTriples, t)
		}
	}

	switch m.cfg.Imports {
	case config.ImportsPreserve:
		// Declarations pass through unmodified.
	case config.ImportsStrip:
		for _, t := range importTriples {
			result.Merged.Remove(t)
		}
	case config.ImportsPlaceholder:
		for _, t := range importTriples {
			result.ImportsPlaceheld = append(result.ImportsPlaceheld, t.O.String())
		}
		sort.Strings(result.ImportsPlaceheld)
	}
}

// writeOutput serialises the merged graph. Under mark_all, triples that
// belong to a marker block are emitted inside begin/end sentinels instead
// of the main body.
func (m *OntologyMerger) writeOutput(result MergeResult) error {
	if len(result.Markers) == 0 {
		return rdfio.WriteFile(result.Merged, m.cfg.Output.Path)
	}

	inBlock := make(map[string]bool)
	for _, block := range result.Markers {
		for _, t := range block.Triples {
			inBlock[t.String()] = true
		}
	}

	body := result.Merged.Clone()
	for _, t := range result.Merged.Triples() {
		if inBlock[t.String()] {
			body.Remove(t)
		}
	}

	enc := rdfio.Encoder{}
	var sb strings.Builder
	sb.WriteString(enc.Encode(body))
	for _, block := range result.Markers {
		sb.WriteString(ConflictMarker(block.Conflict))
		sb.WriteString("\n")
		sb.WriteString(enc.EncodeTriples(result.Merged, block.Triples))
		sb.WriteString(ConflictEndMarker(block.Conflict))
		sb.WriteString("\n\n")
	}
	return rdfio.WriteText(sb.String(), m.cfg.Output.Path)
}

func containsTriple(triples []rdf.Triple, t rdf.Triple) bool {
	for _, existing := range triples {
		if existing.String() == t.String() {
			return true
		}
	}
	return false
}

func failure(err error) MergeResult {
	return MergeResult{Success: false, Error: err.Error()}
}

// FileOptions tunes the Files convenience entry point.
type FileOptions struct {
	// Strategy defaults to priority.
	Strategy config.ConflictStrategy
	// Priorities overrides the default 1-based priorities, matched to the
	// source list by position.
	Priorities []int
	// DryRun skips the output write.
	DryRun bool
}

// Files merges the given source files into output using defaults for
// everything an option does not override.
func Files(sources []string, output string, opts FileOptions) (MergeResult, error) {
	if len(opts.Priorities) > 0 && len(opts.Priorities) != len(sources) {
		return MergeResult{}, fmt.Errorf("got %d priorities for %d sources", len(opts.Priorities), len(sources))
	}

	cfg := config.DefaultMergeConfig()
	for i, path := range sources {
		sc := config.SourceConfig{Path: path}
		if len(opts.Priorities) > 0 {
			sc.Priority = opts.Priorities[i]
		}
		cfg.Sources = append(cfg.Sources, sc)
	}
	if opts.Strategy != "" {
		cfg.Conflicts.Strategy = opts.Strategy
	}
	cfg.Output.Path = output
	cfg.DryRun = opts.DryRun

	return NewMerger(cfg).Merge(), nil
}
