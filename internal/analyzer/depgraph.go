package analyzer

import (
	"path/filepath"
	"strings"

	"github.com/tslens/tslens/domain"
	"github.com/tslens/tslens/internal/loader"
	"github.com/tslens/tslens/internal/parser"
)

// resolveExtensions are tried in order when a relative import omits
// the file extension
var resolveExtensions = []string{".ts", ".tsx", ".js", ".jsx", ".mts", ".cts", ".mjs", ".cjs"}

// DependencyGraphBuilder resolves each unit's imports into a directed
// graph. All file nodes are registered before any edge is added, so
// relative specifiers always resolve against the complete file set.
type DependencyGraphBuilder struct{}

// NewDependencyGraphBuilder creates a graph builder
func NewDependencyGraphBuilder() *DependencyGraphBuilder {
	return &DependencyGraphBuilder{}
}

// Build constructs the dependency graph from the unit set. Units are
// inserted in the order given, which downstream cycle detection
// relies on.
func (b *DependencyGraphBuilder) Build(units []*loader.SourceUnit) *domain.DependencyGraph {
	graph := domain.NewDependencyGraph()

	for _, unit := range units {
		graph.AddFile(unit.Path)
	}

	for _, unit := range units {
		for _, specifier := range collectImportSpecifiers(unit.AST) {
			if target, ok := b.resolve(specifier, unit.Path, graph); ok {
				graph.AddDependency(unit.Path, target)
			}
		}
	}

	return graph
}

// collectImportSpecifiers gathers the module specifiers of all import
// declarations in source order
func collectImportSpecifiers(ast *parser.Node) []string {
	var specifiers []string
	ast.Walk(func(n *parser.Node) bool {
		if n.Kind == parser.KindImportDeclaration && n.Source != "" {
			specifiers = append(specifiers, n.Source)
		}
		return true
	})
	return specifiers
}

// resolve maps a module specifier to an edge target.
//
// Relative specifiers resolve against the importing file's directory,
// probing known project files with common extensions and index files;
// when nothing matches, the cleaned path is kept as-is. Scoped
// packages and bare names without a path separator are dropped. Bare
// paths that do contain a separator are recorded verbatim even though
// they never name a project file, so they can appear in the graph as
// unreachable targets.
func (b *DependencyGraphBuilder) resolve(specifier, fromFile string, graph *domain.DependencyGraph) (string, bool) {
	if strings.HasPrefix(specifier, ".") {
		resolved := filepath.Clean(filepath.Join(filepath.Dir(fromFile), specifier))
		if graph.HasFile(resolved) {
			return resolved, true
		}
		for _, ext := range resolveExtensions {
			if candidate := resolved + ext; graph.HasFile(candidate) {
				return candidate, true
			}
		}
		for _, ext := range resolveExtensions {
			if candidate := filepath.Join(resolved, "index"+ext); graph.HasFile(candidate) {
				return candidate, true
			}
		}
		return resolved, true
	}

	if strings.HasPrefix(specifier, "@") || !strings.Contains(specifier, "/") {
		return "", false
	}

	return specifier, true
}

// GraphMetrics computes file count and out-degree statistics,
// reporting a zero average for an empty graph
func GraphMetrics(graph *domain.DependencyGraph) domain.DependencyMetrics {
	totalFiles := graph.FileCount()
	if totalFiles == 0 {
		return domain.DependencyMetrics{}
	}

	maxDeps := 0
	for _, file := range graph.Files() {
		if deps := len(graph.Dependencies(file)); deps > maxDeps {
			maxDeps = deps
		}
	}

	return domain.DependencyMetrics{
		TotalFiles:          totalFiles,
		AverageDependencies: float64(graph.EdgeCount()) / float64(totalFiles),
		MaxDependencies:     maxDeps,
	}
}
