package domain

import "encoding/json"

// FileDependencies holds the outgoing dependencies of one project file
type FileDependencies struct {
	// Dependencies are edge targets in the order their imports appear
	Dependencies []string `json:"dependencies"`

	// OutDegree is len(Dependencies), kept for report consumers
	OutDegree int `json:"out_degree"`
}

// DependencyGraph is a directed graph from project files to the
// modules they import. Nodes are project files in insertion order;
// edge targets may name modules that are not project files (bare
// package paths recorded verbatim) and therefore have no node of
// their own.
type DependencyGraph struct {
	order []string
	nodes map[string]*FileDependencies
}

// NewDependencyGraph creates an empty DependencyGraph
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		order: make([]string, 0),
		nodes: make(map[string]*FileDependencies),
	}
}

// AddFile registers a project file as a graph node. Re-adding an
// existing file is a no-op so insertion order stays stable.
func (g *DependencyGraph) AddFile(file string) {
	if _, ok := g.nodes[file]; ok {
		return
	}
	g.order = append(g.order, file)
	g.nodes[file] = &FileDependencies{Dependencies: make([]string, 0)}
}

// AddDependency records a directed edge from a registered file to a
// target module. The source file must have been added first.
func (g *DependencyGraph) AddDependency(from, to string) {
	node, ok := g.nodes[from]
	if !ok {
		return
	}
	node.Dependencies = append(node.Dependencies, to)
	node.OutDegree = len(node.Dependencies)
}

// Files returns the node identifiers in insertion order
func (g *DependencyGraph) Files() []string {
	return g.order
}

// Dependencies returns the outgoing edge targets for a file.
// Unknown identifiers (including polluted edge targets) yield nil.
func (g *DependencyGraph) Dependencies(file string) []string {
	if node, ok := g.nodes[file]; ok {
		return node.Dependencies
	}
	return nil
}

// HasFile reports whether the identifier is a registered project file
func (g *DependencyGraph) HasFile(file string) bool {
	_, ok := g.nodes[file]
	return ok
}

// FileCount returns the number of registered project files
func (g *DependencyGraph) FileCount() int {
	return len(g.order)
}

// EdgeCount returns the total number of edges in the graph
func (g *DependencyGraph) EdgeCount() int {
	count := 0
	for _, node := range g.nodes {
		count += len(node.Dependencies)
	}
	return count
}

// MarshalJSON renders the graph as a file -> dependencies mapping
func (g *DependencyGraph) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.asMap())
}

// MarshalYAML renders the same mapping for YAML encoders
func (g *DependencyGraph) MarshalYAML() (interface{}, error) {
	return g.asMap(), nil
}

func (g *DependencyGraph) asMap() map[string]*FileDependencies {
	out := make(map[string]*FileDependencies, len(g.nodes))
	for file, node := range g.nodes {
		out[file] = node
	}
	return out
}

// DependencyMetrics summarizes the shape of the dependency graph
type DependencyMetrics struct {
	TotalFiles          int     `json:"total_files" yaml:"total_files"`
	AverageDependencies float64 `json:"average_dependencies" yaml:"average_dependencies"`
	MaxDependencies     int     `json:"max_dependencies" yaml:"max_dependencies"`
}

// DependencyReport is the dependency grapher's contribution to the
// analysis result. Circular dependencies are reported here and are
// intentionally not folded into the summary issue totals.
type DependencyReport struct {
	Graph                *DependencyGraph  `json:"graph"`
	CircularDependencies [][]string        `json:"circular_dependencies"`
	Metrics              DependencyMetrics `json:"metrics"`
}

// EmptyDependencyReport returns a zero-valued report with a usable graph
func EmptyDependencyReport() *DependencyReport {
	return &DependencyReport{
		Graph:                NewDependencyGraph(),
		CircularDependencies: [][]string{},
	}
}
