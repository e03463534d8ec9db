package analyzer

import "github.com/tslens/tslens/domain"

// CycleDetector finds circular dependencies with a depth-first search
// that tracks the active traversal stack.
//
// The visited set is shared across traversal roots, so a file's
// cycles are only discovered from whichever root reaches it first.
// That can under- or over-report distinct cycles through shared nodes;
// the behavior is kept deliberately because callers depend on the
// resulting output shape.
type CycleDetector struct{}

// NewCycleDetector creates a cycle detector
func NewCycleDetector() *CycleDetector {
	return &CycleDetector{}
}

// DetectCycles runs a DFS from every unvisited node in graph
// insertion order. The graph must be fully built before this is
// called; detection reads it but never mutates it.
func (d *CycleDetector) DetectCycles(graph *domain.DependencyGraph) [][]string {
	visited := make(map[string]bool)
	cycles := [][]string{}

	for _, file := range graph.Files() {
		if !visited[file] {
			d.search(file, graph, visited, make(map[string]bool), nil, &cycles)
		}
	}

	return cycles
}

// search visits node, recording a cycle whenever an edge reaches a
// node already on the active stack. The recorded cycle is the current
// path from that node's first occurrence onward.
func (d *CycleDetector) search(node string, graph *domain.DependencyGraph, visited, onStack map[string]bool, path []string, cycles *[][]string) {
	visited[node] = true
	onStack[node] = true
	path = append(path, node)

	for _, dep := range graph.Dependencies(node) {
		if !visited[dep] {
			d.search(dep, graph, visited, onStack, path, cycles)
		} else if onStack[dep] {
			*cycles = append(*cycles, cycleFrom(path, dep))
		}
	}

	onStack[node] = false
}

// cycleFrom copies the path subsequence starting at the first
// occurrence of start
func cycleFrom(path []string, start string) []string {
	for i, node := range path {
		if node == start {
			cycle := make([]string, len(path)-i)
			copy(cycle, path[i:])
			return cycle
		}
	}
	return nil
}
