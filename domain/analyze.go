package domain

import (
	"context"
	"io"
	"time"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// Detector names a selectable analysis pass
type Detector string

const (
	DetectorPerformance  Detector = "performance"
	DetectorMemory       Detector = "memory"
	DetectorDependencies Detector = "dependencies"
)

// AllDetectors returns every detector in canonical order
func AllDetectors() []Detector {
	return []Detector{DetectorPerformance, DetectorMemory, DetectorDependencies}
}

// OverallHealth is the derived classification of a project
type OverallHealth string

const (
	HealthGood     OverallHealth = "good"
	HealthModerate OverallHealth = "moderate"
	HealthPoor     OverallHealth = "poor"
)

// PerformanceMetrics holds project-wide performance measurements
type PerformanceMetrics struct {
	// CyclomaticComplexity is complexity summed across all functions
	CyclomaticComplexity int `json:"cyclomatic_complexity" yaml:"cyclomatic_complexity"`

	// MaintainabilityIndex is bounded to [0, 100]
	MaintainabilityIndex int `json:"maintainability_index" yaml:"maintainability_index"`

	// LinesOfCode is the total line count of analyzed units
	LinesOfCode int `json:"lines_of_code" yaml:"lines_of_code"`
}

// PerformanceReport is the performance detector output
type PerformanceReport struct {
	Issues          []Issue            `json:"issues"`
	Metrics         PerformanceMetrics `json:"metrics"`
	Recommendations []string           `json:"recommendations"`
}

// EmptyPerformanceReport returns a zero-valued performance report
func EmptyPerformanceReport() *PerformanceReport {
	return &PerformanceReport{Issues: []Issue{}, Recommendations: []string{}}
}

// LeakReport is the memory-leak detector output
type LeakReport struct {
	PotentialLeaks []Issue  `json:"potential_leaks"`
	Severity       Severity `json:"severity"`
	Suggestions    []string `json:"suggestions"`
}

// EmptyLeakReport returns a zero-valued leak report
func EmptyLeakReport() *LeakReport {
	return &LeakReport{PotentialLeaks: []Issue{}, Severity: SeverityLow, Suggestions: []string{}}
}

// Summary aggregates the detector outputs into headline numbers.
// TotalIssues covers performance and leak issues only; dependency
// cycles are reported separately and deliberately not counted here.
type Summary struct {
	TotalIssues    int           `json:"total_issues" yaml:"total_issues"`
	CriticalIssues int           `json:"critical_issues" yaml:"critical_issues"`
	OverallHealth  OverallHealth `json:"overall_health" yaml:"overall_health"`
	Timestamp      string        `json:"timestamp" yaml:"timestamp"`
}

// AnalysisResult is the single record produced by one analysis run
type AnalysisResult struct {
	Performance  *PerformanceReport `json:"performance"`
	MemoryLeaks  *LeakReport        `json:"memory_leaks"`
	Dependencies *DependencyReport  `json:"dependencies"`
	Summary      Summary            `json:"summary"`

	// Warnings carries per-file skip notices (parse failures)
	Warnings []string `json:"warnings,omitempty"`

	// Duration is the wall-clock analysis time in milliseconds
	Duration int64 `json:"duration_ms"`
}

// ComputeSummary derives the summary from the detector reports.
// Health policy: poor when any critical issue exists, moderate when
// more than ten total issues exist, good otherwise.
func (r *AnalysisResult) ComputeSummary(now time.Time) {
	total := 0
	critical := 0
	if r.Performance != nil {
		total += len(r.Performance.Issues)
		critical += CountBySeverity(r.Performance.Issues, SeverityHigh)
	}
	if r.MemoryLeaks != nil {
		total += len(r.MemoryLeaks.PotentialLeaks)
		critical += CountBySeverity(r.MemoryLeaks.PotentialLeaks, SeverityHigh)
	}

	health := HealthGood
	switch {
	case critical > 0:
		health = HealthPoor
	case total > 10:
		health = HealthModerate
	}

	r.Summary = Summary{
		TotalIssues:    total,
		CriticalIssues: critical,
		OverallHealth:  health,
		Timestamp:      now.Format(time.RFC3339),
	}
}

// AnalyzeRequest describes one analysis run
type AnalyzeRequest struct {
	// ProjectRoot is the directory to analyze
	ProjectRoot string `json:"project_root"`

	// Detectors selects which analysis passes run (empty = all)
	Detectors []Detector `json:"detectors,omitempty"`

	// Output configuration
	OutputFormat OutputFormat `json:"output_format"`
	OutputWriter io.Writer    `json:"-"`
	OutputPath   string       `json:"output_path,omitempty"`
}

// DetectorEnabled reports whether the request selects the detector
func (req *AnalyzeRequest) DetectorEnabled(d Detector) bool {
	if len(req.Detectors) == 0 {
		return true
	}
	for _, selected := range req.Detectors {
		if selected == d {
			return true
		}
	}
	return false
}

// DefaultAnalyzeRequest returns a request with default values
func DefaultAnalyzeRequest() *AnalyzeRequest {
	return &AnalyzeRequest{
		Detectors:    AllDetectors(),
		OutputFormat: OutputFormatText,
	}
}

// AnalysisService defines the core analysis operation
type AnalysisService interface {
	// AnalyzeProject runs the selected detectors over the project
	// rooted at req.ProjectRoot and returns one result record.
	// It fails with PROJECT_NOT_FOUND or CONFIG_NOT_FOUND before any
	// detector starts; per-file parse errors surface as warnings.
	AnalyzeProject(ctx context.Context, req *AnalyzeRequest) (*AnalysisResult, error)
}

// ResultFormatter renders an AnalysisResult for the reporting layer
type ResultFormatter interface {
	Write(result *AnalysisResult, format OutputFormat, writer io.Writer) error
}
