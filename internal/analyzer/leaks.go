package analyzer

import (
	"strings"

	"github.com/tslens/tslens/domain"
	"github.com/tslens/tslens/internal/loader"
	"github.com/tslens/tslens/internal/parser"
)

// generalLeakSuggestions are always appended to the per-issue
// suggestions, in this order
var generalLeakSuggestions = []string{
	"Use WeakMap or WeakSet for object-keyed caches so entries stay collectable",
	"Profile heap usage over time to confirm suspected leaks before refactoring",
	"Register and release external resources in matching lifecycle hooks",
}

// LeakAnalyzer walks each unit's tree for leak-prone constructs.
// All four sweeps are textual heuristics over syntax shape; they do
// not verify actual capture or missing cleanup.
type LeakAnalyzer struct{}

// NewLeakAnalyzer creates a leak analyzer
func NewLeakAnalyzer() *LeakAnalyzer {
	return &LeakAnalyzer{}
}

// Analyze runs the four leak sweeps over every unit and aggregates
// severity and suggestions
func (a *LeakAnalyzer) Analyze(units []*loader.SourceUnit) *domain.LeakReport {
	report := domain.EmptyLeakReport()

	for _, unit := range units {
		report.PotentialLeaks = append(report.PotentialLeaks, a.detectEventListeners(unit)...)
		report.PotentialLeaks = append(report.PotentialLeaks, a.detectClosures(unit)...)
		report.PotentialLeaks = append(report.PotentialLeaks, a.detectTimers(unit)...)
		report.PotentialLeaks = append(report.PotentialLeaks, a.detectCollectionGrowth(unit)...)
	}

	report.Severity = overallLeakSeverity(report.PotentialLeaks)
	report.Suggestions = collectSuggestions(report.PotentialLeaks)

	return report
}

// detectEventListeners flags calls whose callee text contains
// addEventListener
func (a *LeakAnalyzer) detectEventListeners(unit *loader.SourceUnit) []domain.Issue {
	var issues []domain.Issue

	unit.AST.Walk(func(n *parser.Node) bool {
		if n.Kind != parser.KindCallExpression || !strings.Contains(n.Callee, "addEventListener") {
			return true
		}
		issues = append(issues, domain.Issue{
			Kind:        domain.IssueKindMemory,
			Category:    domain.CategoryEventListener,
			Severity:    domain.SeverityMedium,
			File:        unit.Path,
			Line:        n.Location.StartLine,
			Description: "Event listener registered without a visible matching removal",
			Suggestion:  "Remove listeners with removeEventListener when the owner is torn down",
		})
		return true
	})

	return issues
}

// detectClosures flags arrow functions and function declarations
// whose full text mentions this., state or props. This is a pure
// containment check and does not prove the closure captures anything.
func (a *LeakAnalyzer) detectClosures(unit *loader.SourceUnit) []domain.Issue {
	var issues []domain.Issue

	unit.AST.Walk(func(n *parser.Node) bool {
		if n.Kind != parser.KindArrowFunction && n.Kind != parser.KindFunctionDeclaration {
			return true
		}
		if !strings.Contains(n.Text, "this.") &&
			!strings.Contains(n.Text, "state") &&
			!strings.Contains(n.Text, "props") {
			return true
		}
		issues = append(issues, domain.Issue{
			Kind:        domain.IssueKindMemory,
			Category:    domain.CategoryClosure,
			Severity:    domain.SeverityLow,
			File:        unit.Path,
			Line:        n.Location.StartLine,
			Description: "Closure may capture surrounding component state",
			Suggestion:  "Pass only the values the closure needs instead of capturing the enclosing scope",
		})
		return true
	})

	return issues
}

// detectTimers flags calls whose callee text contains setInterval or
// setTimeout
func (a *LeakAnalyzer) detectTimers(unit *loader.SourceUnit) []domain.Issue {
	var issues []domain.Issue

	unit.AST.Walk(func(n *parser.Node) bool {
		if n.Kind != parser.KindCallExpression {
			return true
		}
		if !strings.Contains(n.Callee, "setInterval") && !strings.Contains(n.Callee, "setTimeout") {
			return true
		}
		issues = append(issues, domain.Issue{
			Kind:        domain.IssueKindMemory,
			Category:    domain.CategoryTimer,
			Severity:    domain.SeverityMedium,
			File:        unit.Path,
			Line:        n.Location.StartLine,
			Description: "Timer registered without a visible matching clear call",
			Suggestion:  "Store the timer handle and clear it with clearInterval/clearTimeout",
		})
		return true
	})

	return issues
}

// detectCollectionGrowth flags property accesses whose text contains
// .push or .unshift
func (a *LeakAnalyzer) detectCollectionGrowth(unit *loader.SourceUnit) []domain.Issue {
	var issues []domain.Issue

	unit.AST.Walk(func(n *parser.Node) bool {
		if n.Kind != parser.KindMemberExpression {
			return true
		}
		if !strings.Contains(n.Text, ".push") && !strings.Contains(n.Text, ".unshift") {
			return true
		}
		issues = append(issues, domain.Issue{
			Kind:        domain.IssueKindMemory,
			Category:    domain.CategoryCollectionGrowth,
			Severity:    domain.SeverityLow,
			File:        unit.Path,
			Line:        n.Location.StartLine,
			Description: "Collection grows without a visible bound or eviction",
			Suggestion:  "Bound the collection size or evict stale entries periodically",
		})
		return true
	})

	return issues
}

// overallLeakSeverity is high when any high-severity issue exists,
// medium when more than two medium issues exist, low otherwise
func overallLeakSeverity(issues []domain.Issue) domain.Severity {
	if domain.CountBySeverity(issues, domain.SeverityHigh) > 0 {
		return domain.SeverityHigh
	}
	if domain.CountBySeverity(issues, domain.SeverityMedium) > 2 {
		return domain.SeverityMedium
	}
	return domain.SeverityLow
}

// collectSuggestions de-duplicates per-issue suggestions in first-seen
// order, then appends the fixed general suggestions
func collectSuggestions(issues []domain.Issue) []string {
	seen := make(map[string]bool)
	var suggestions []string
	for _, issue := range issues {
		if issue.Suggestion == "" || seen[issue.Suggestion] {
			continue
		}
		seen[issue.Suggestion] = true
		suggestions = append(suggestions, issue.Suggestion)
	}
	return append(suggestions, generalLeakSuggestions...)
}
