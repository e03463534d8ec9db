package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestDomainError_Error(t *testing.T) {
	err := NewDomainError(ErrCodeAnalysisError, "something broke", nil)
	expected := "[ANALYSIS_ERROR] something broke"
	if err.Error() != expected {
		t.Errorf("Error() = %q, expected %q", err.Error(), expected)
	}
}

func TestDomainError_ErrorWithCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := NewOutputError("cannot write report", cause)
	expected := "[OUTPUT_ERROR] cannot write report: disk full"
	if err.Error() != expected {
		t.Errorf("Error() = %q, expected %q", err.Error(), expected)
	}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause through Unwrap")
	}
}

func TestDomainError_Predicates(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		predicate func(error) bool
		expected  bool
	}{
		{"project not found", NewProjectNotFoundError("/missing", nil), IsProjectNotFound, true},
		{"config not found", NewConfigNotFoundError("/proj"), IsConfigNotFound, true},
		{"parse error", NewParseError("a.ts", fmt.Errorf("bad")), IsParseError, true},
		{"wrapped project not found", fmt.Errorf("outer: %w", NewProjectNotFoundError("/missing", nil)), IsProjectNotFound, true},
		{"mismatched code", NewConfigNotFoundError("/proj"), IsProjectNotFound, false},
		{"plain error", fmt.Errorf("plain"), IsParseError, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.predicate(tc.err); got != tc.expected {
				t.Errorf("predicate = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestSeverity_Rank(t *testing.T) {
	if SeverityLow.Rank() >= SeverityMedium.Rank() {
		t.Error("low should rank below medium")
	}
	if SeverityMedium.Rank() >= SeverityHigh.Rank() {
		t.Error("medium should rank below high")
	}
	if Severity("bogus").Rank() != 0 {
		t.Error("unknown severity should rank 0")
	}
}

func TestCountBySeverity(t *testing.T) {
	issues := []Issue{
		{Severity: SeverityHigh},
		{Severity: SeverityLow},
		{Severity: SeverityHigh},
		{Severity: SeverityMedium},
	}
	if got := CountBySeverity(issues, SeverityHigh); got != 2 {
		t.Errorf("high count = %d, expected 2", got)
	}
	if got := CountBySeverity(issues, SeverityMedium); got != 1 {
		t.Errorf("medium count = %d, expected 1", got)
	}
}

func issuesOf(n int, severity Severity) []Issue {
	issues := make([]Issue, n)
	for i := range issues {
		issues[i] = Issue{Severity: severity}
	}
	return issues
}

func TestComputeSummary_HealthPolicy(t *testing.T) {
	tests := []struct {
		name             string
		perfIssues       []Issue
		leakIssues       []Issue
		expectedTotal    int
		expectedCritical int
		expectedHealth   OverallHealth
	}{
		{"clean project", nil, nil, 0, 0, HealthGood},
		{"few low issues", issuesOf(3, SeverityLow), issuesOf(2, SeverityLow), 5, 0, HealthGood},
		{"exactly ten issues", issuesOf(10, SeverityLow), nil, 10, 0, HealthGood},
		{"eleven issues", issuesOf(11, SeverityLow), nil, 11, 0, HealthModerate},
		{"many issues split", issuesOf(6, SeverityMedium), issuesOf(6, SeverityLow), 12, 0, HealthModerate},
		{"single critical wins", issuesOf(1, SeverityHigh), nil, 1, 1, HealthPoor},
		{"critical leak wins", nil, issuesOf(1, SeverityHigh), 1, 1, HealthPoor},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := &AnalysisResult{
				Performance: &PerformanceReport{Issues: tc.perfIssues},
				MemoryLeaks: &LeakReport{PotentialLeaks: tc.leakIssues},
			}
			result.ComputeSummary(time.Now())

			if result.Summary.TotalIssues != tc.expectedTotal {
				t.Errorf("TotalIssues = %d, expected %d", result.Summary.TotalIssues, tc.expectedTotal)
			}
			if result.Summary.CriticalIssues != tc.expectedCritical {
				t.Errorf("CriticalIssues = %d, expected %d", result.Summary.CriticalIssues, tc.expectedCritical)
			}
			if result.Summary.OverallHealth != tc.expectedHealth {
				t.Errorf("OverallHealth = %s, expected %s", result.Summary.OverallHealth, tc.expectedHealth)
			}
		})
	}
}

func TestComputeSummary_CyclesExcludedFromTotals(t *testing.T) {
	result := &AnalysisResult{
		Performance: EmptyPerformanceReport(),
		MemoryLeaks: EmptyLeakReport(),
		Dependencies: &DependencyReport{
			Graph:                NewDependencyGraph(),
			CircularDependencies: [][]string{{"a.ts", "b.ts"}, {"c.ts"}},
		},
	}
	result.ComputeSummary(time.Now())

	if result.Summary.TotalIssues != 0 {
		t.Errorf("dependency cycles must not count toward TotalIssues, got %d", result.Summary.TotalIssues)
	}
	if result.Summary.OverallHealth != HealthGood {
		t.Errorf("health = %s, expected good", result.Summary.OverallHealth)
	}
}

func TestComputeSummary_Timestamp(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	result := &AnalysisResult{}
	result.ComputeSummary(now)

	if result.Summary.Timestamp != "2026-03-14T09:26:53Z" {
		t.Errorf("Timestamp = %q, expected RFC3339 rendering", result.Summary.Timestamp)
	}
}

func TestDependencyGraph_InsertionOrder(t *testing.T) {
	graph := NewDependencyGraph()
	graph.AddFile("b.ts")
	graph.AddFile("a.ts")
	graph.AddFile("b.ts")

	files := graph.Files()
	if len(files) != 2 {
		t.Fatalf("expected 2 files after duplicate add, got %d", len(files))
	}
	if files[0] != "b.ts" || files[1] != "a.ts" {
		t.Errorf("insertion order not preserved: %v", files)
	}
}

func TestDependencyGraph_Edges(t *testing.T) {
	graph := NewDependencyGraph()
	graph.AddFile("a.ts")
	graph.AddFile("b.ts")
	graph.AddDependency("a.ts", "b.ts")
	graph.AddDependency("a.ts", "lodash/merge")
	graph.AddDependency("ghost.ts", "a.ts")

	deps := graph.Dependencies("a.ts")
	if len(deps) != 2 || deps[0] != "b.ts" || deps[1] != "lodash/merge" {
		t.Errorf("unexpected dependencies for a.ts: %v", deps)
	}
	if graph.EdgeCount() != 2 {
		t.Errorf("EdgeCount = %d, expected 2 (edge from unregistered file must be dropped)", graph.EdgeCount())
	}
	if graph.Dependencies("lodash/merge") != nil {
		t.Error("edge targets without nodes should yield nil dependencies")
	}
	if graph.HasFile("lodash/merge") {
		t.Error("edge target must not become a file node")
	}
}

func TestAnalyzeRequest_DetectorEnabled(t *testing.T) {
	all := &AnalyzeRequest{}
	for _, d := range AllDetectors() {
		if !all.DetectorEnabled(d) {
			t.Errorf("empty selection should enable %s", d)
		}
	}

	only := &AnalyzeRequest{Detectors: []Detector{DetectorMemory}}
	if only.DetectorEnabled(DetectorPerformance) {
		t.Error("performance should be disabled")
	}
	if !only.DetectorEnabled(DetectorMemory) {
		t.Error("memory should be enabled")
	}
}
