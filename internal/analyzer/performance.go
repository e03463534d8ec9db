package analyzer

import (
	"fmt"
	"math"
	"strings"

	"github.com/tslens/tslens/domain"
	"github.com/tslens/tslens/internal/loader"
	"github.com/tslens/tslens/internal/parser"
)

// PerformanceConfig holds thresholds for the performance detector
type PerformanceConfig struct {
	// ComplexityWarningThreshold is the complexity above which an
	// issue is emitted
	ComplexityWarningThreshold int

	// ComplexityCriticalThreshold is the complexity above which the
	// issue severity becomes high
	ComplexityCriticalThreshold int

	// LargeArrayThreshold is the immediate element count above which
	// an array literal is flagged
	LargeArrayThreshold int

	// ExcerptLimit bounds embedded code excerpts, in characters
	ExcerptLimit int
}

// DefaultPerformanceConfig returns the standard thresholds
func DefaultPerformanceConfig() *PerformanceConfig {
	return &PerformanceConfig{
		ComplexityWarningThreshold:  10,
		ComplexityCriticalThreshold: 20,
		LargeArrayThreshold:         1000,
		ExcerptLimit:                100,
	}
}

// PerformanceAnalyzer walks each unit's syntax tree for performance
// anti-patterns and aggregates project-wide metrics
type PerformanceAnalyzer struct {
	config *PerformanceConfig
}

// NewPerformanceAnalyzer creates an analyzer with the given config
func NewPerformanceAnalyzer(config *PerformanceConfig) *PerformanceAnalyzer {
	if config == nil {
		config = DefaultPerformanceConfig()
	}
	return &PerformanceAnalyzer{config: config}
}

// Analyze runs all performance sweeps over the unit set
func (a *PerformanceAnalyzer) Analyze(units []*loader.SourceUnit) *domain.PerformanceReport {
	report := domain.EmptyPerformanceReport()

	totalComplexity := 0
	totalLines := 0

	for _, unit := range units {
		report.Issues = append(report.Issues, a.detectNestedLoops(unit)...)
		report.Issues = append(report.Issues, a.detectLargeArrays(unit)...)
		report.Issues = append(report.Issues, a.detectChurnCalls(unit)...)

		issues, complexity := a.analyzeComplexity(unit)
		report.Issues = append(report.Issues, issues...)
		totalComplexity += complexity
		totalLines += unit.Lines
	}

	report.Metrics = domain.PerformanceMetrics{
		CyclomaticComplexity: totalComplexity,
		MaintainabilityIndex: maintainabilityIndex(totalLines, totalComplexity),
		LinesOfCode:          totalLines,
	}
	report.Recommendations = a.recommendations(report.Issues)

	return report
}

// detectNestedLoops emits one high-severity issue per loop ancestor
// of each loop statement, located at the inner loop. Issues are not
// deduplicated across multiple ancestors.
func (a *PerformanceAnalyzer) detectNestedLoops(unit *loader.SourceUnit) []domain.Issue {
	var issues []domain.Issue

	unit.AST.Walk(func(n *parser.Node) bool {
		if !n.IsLoop() {
			return true
		}
		for ancestor := n.Parent; ancestor != nil; ancestor = ancestor.Parent {
			if !ancestor.IsLoop() {
				continue
			}
			issues = append(issues, domain.Issue{
				Kind:        domain.IssueKindPerformance,
				Category:    domain.CategoryLoop,
				Severity:    domain.SeverityHigh,
				File:        unit.Path,
				Line:        n.Location.StartLine,
				Description: "Nested loop detected; the combined iteration count grows multiplicatively",
				Suggestion:  "Extract the inner loop or restructure with a lookup table to avoid O(n^2) iteration",
				Excerpt:     truncateExcerpt(n.Text, a.config.ExcerptLimit),
			})
		}
		return true
	})

	return issues
}

// detectLargeArrays flags array literals with more immediate elements
// than the configured threshold
func (a *PerformanceAnalyzer) detectLargeArrays(unit *loader.SourceUnit) []domain.Issue {
	var issues []domain.Issue

	unit.AST.Walk(func(n *parser.Node) bool {
		if n.Kind != parser.KindArrayLiteral || len(n.Children) <= a.config.LargeArrayThreshold {
			return true
		}
		issues = append(issues, domain.Issue{
			Kind:        domain.IssueKindMemory,
			Category:    domain.CategoryMemory,
			Severity:    domain.SeverityMedium,
			File:        unit.Path,
			Line:        n.Location.StartLine,
			Description: fmt.Sprintf("Array literal with %d elements allocated inline", len(n.Children)),
			Suggestion:  "Load large datasets lazily or stream them instead of embedding them in source",
			Excerpt:     truncateExcerpt(n.Text, a.config.ExcerptLimit),
		})
		return true
	})

	return issues
}

// detectChurnCalls flags call expressions whose textual form contains
// memory-churning array operations
func (a *PerformanceAnalyzer) detectChurnCalls(unit *loader.SourceUnit) []domain.Issue {
	var issues []domain.Issue

	unit.AST.Walk(func(n *parser.Node) bool {
		if n.Kind != parser.KindCallExpression {
			return true
		}
		if !strings.Contains(n.Text, "concat") && !strings.Contains(n.Text, "splice") {
			return true
		}
		issues = append(issues, domain.Issue{
			Kind:        domain.IssueKindMemory,
			Category:    domain.CategoryMemory,
			Severity:    domain.SeverityLow,
			File:        unit.Path,
			Line:        n.Location.StartLine,
			Description: "Call allocates a new array on every invocation (concat/splice)",
			Suggestion:  "Prefer in-place operations or spread into a preallocated array inside hot paths",
			Excerpt:     truncateExcerpt(n.Text, a.config.ExcerptLimit),
		})
		return true
	})

	return issues
}

// analyzeComplexity computes cyclomatic complexity for every
// function-like node and emits issues above the warning threshold.
// The returned total is the unit's contribution to the project-wide
// complexity metric.
func (a *PerformanceAnalyzer) analyzeComplexity(unit *loader.SourceUnit) ([]domain.Issue, int) {
	var issues []domain.Issue
	total := 0

	unit.AST.Walk(func(n *parser.Node) bool {
		if !n.IsFunction() {
			return true
		}

		complexity := functionComplexity(n)
		total += complexity

		if complexity > a.config.ComplexityWarningThreshold {
			severity := domain.SeverityMedium
			if complexity > a.config.ComplexityCriticalThreshold {
				severity = domain.SeverityHigh
			}
			issues = append(issues, domain.Issue{
				Kind:        domain.IssueKindPerformance,
				Category:    domain.CategoryComplexity,
				Severity:    severity,
				File:        unit.Path,
				Line:        n.Location.StartLine,
				Description: fmt.Sprintf("Function '%s' has cyclomatic complexity %d", functionName(n), complexity),
				Suggestion:  "Split the function into smaller single-purpose functions",
			})
		}
		return true
	})

	return issues, total
}

// functionComplexity starts at 1 and adds one for every descendant
// decision point: conditional branches, loops, switch-case clauses,
// catch clauses, ternaries and binary logical expressions
func functionComplexity(fn *parser.Node) int {
	complexity := 1
	for _, child := range fn.Children {
		child.Walk(func(n *parser.Node) bool {
			if isDecisionPoint(n) {
				complexity++
			}
			return true
		})
	}
	return complexity
}

func isDecisionPoint(n *parser.Node) bool {
	switch {
	case n.Kind == parser.KindIfStatement:
		return true
	case n.IsLoop():
		return true
	case n.Kind == parser.KindSwitchCase:
		return true
	case n.Kind == parser.KindCatchClause:
		return true
	case n.Kind == parser.KindTernaryExpression:
		return true
	case n.IsLogicalBinary():
		return true
	}
	return false
}

func functionName(n *parser.Node) string {
	if n.Name != "" {
		return n.Name
	}
	return "<anonymous>"
}

// maintainabilityIndex computes the standard maintainability formula
// over project totals, clamped at zero and rounded to an integer.
// The result cannot exceed 100 for non-negative inputs.
func maintainabilityIndex(linesOfCode, totalComplexity int) int {
	if linesOfCode < 1 {
		linesOfCode = 1
	}
	mi := (171 - 5.2*math.Log(float64(linesOfCode)) - 0.23*float64(totalComplexity)) * 100 / 171
	if mi < 0 {
		mi = 0
	}
	return int(math.Round(mi))
}

// recommendations returns the canned remediation set for the issue
// categories that are present
func (a *PerformanceAnalyzer) recommendations(issues []domain.Issue) []string {
	categories := make(map[string]bool)
	for _, issue := range issues {
		categories[issue.Category] = true
	}

	var recs []string
	if categories[domain.CategoryLoop] {
		recs = append(recs, "Reduce loop nesting: extract inner loops into helper functions or replace them with indexed lookups")
	}
	if categories[domain.CategoryMemory] {
		recs = append(recs, "Reduce allocation churn: avoid concat/splice in hot paths and keep large literals out of source files")
	}
	if categories[domain.CategoryComplexity] {
		recs = append(recs, "Refactor high-complexity functions into smaller units with early returns")
	}
	return recs
}

// truncateExcerpt bounds an embedded code excerpt, appending an
// ellipsis when the text was cut
func truncateExcerpt(text string, limit int) string {
	if limit <= 0 || len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}
