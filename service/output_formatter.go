package service

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tslens/tslens/domain"
	"github.com/tslens/tslens/internal/version"
)

// OutputFormatterImpl implements domain.ResultFormatter
type OutputFormatterImpl struct{}

// NewOutputFormatter creates an output formatter
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{}
}

// AnalysisResultJSON wraps AnalysisResult with report metadata
type AnalysisResultJSON struct {
	Version      string                    `json:"version" yaml:"version"`
	Performance  *domain.PerformanceReport `json:"performance" yaml:"performance"`
	MemoryLeaks  *domain.LeakReport        `json:"memory_leaks" yaml:"memory_leaks"`
	Dependencies *domain.DependencyReport  `json:"dependencies" yaml:"dependencies"`
	Summary      domain.Summary            `json:"summary" yaml:"summary"`
	Warnings     []string                  `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Duration     int64                     `json:"duration_ms" yaml:"duration_ms"`
}

// Write renders the analysis result in the requested format
func (f *OutputFormatterImpl) Write(result *domain.AnalysisResult, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return f.writeJSON(result, writer)
	case domain.OutputFormatYAML:
		return f.writeYAML(result, writer)
	case domain.OutputFormatText:
		return f.writeText(result, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

func (f *OutputFormatterImpl) wrap(result *domain.AnalysisResult) *AnalysisResultJSON {
	return &AnalysisResultJSON{
		Version:      version.GetVersion(),
		Performance:  result.Performance,
		MemoryLeaks:  result.MemoryLeaks,
		Dependencies: result.Dependencies,
		Summary:      result.Summary,
		Warnings:     result.Warnings,
		Duration:     result.Duration,
	}
}

func (f *OutputFormatterImpl) writeJSON(result *domain.AnalysisResult, writer io.Writer) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(f.wrap(result)); err != nil {
		return domain.NewOutputError("failed to encode JSON output", err)
	}
	return nil
}

func (f *OutputFormatterImpl) writeYAML(result *domain.AnalysisResult, writer io.Writer) error {
	encoder := yaml.NewEncoder(writer)
	defer encoder.Close()
	if err := encoder.Encode(f.wrap(result)); err != nil {
		return domain.NewOutputError("failed to encode YAML output", err)
	}
	return nil
}

func (f *OutputFormatterImpl) writeText(result *domain.AnalysisResult, writer io.Writer) error {
	var sb strings.Builder

	sb.WriteString("tslens analysis report\n")
	sb.WriteString("======================\n\n")

	if result.Performance != nil {
		sb.WriteString("Performance\n")
		sb.WriteString(fmt.Sprintf("  Issues:                %d\n", len(result.Performance.Issues)))
		sb.WriteString(fmt.Sprintf("  Cyclomatic complexity: %d\n", result.Performance.Metrics.CyclomaticComplexity))
		sb.WriteString(fmt.Sprintf("  Maintainability index: %d\n", result.Performance.Metrics.MaintainabilityIndex))
		sb.WriteString(fmt.Sprintf("  Lines of code:         %d\n", result.Performance.Metrics.LinesOfCode))
		writeIssueLines(&sb, result.Performance.Issues)
		for _, rec := range result.Performance.Recommendations {
			sb.WriteString(fmt.Sprintf("  * %s\n", rec))
		}
		sb.WriteString("\n")
	}

	if result.MemoryLeaks != nil {
		sb.WriteString("Memory leaks\n")
		sb.WriteString(fmt.Sprintf("  Potential leaks: %d (overall severity: %s)\n",
			len(result.MemoryLeaks.PotentialLeaks), result.MemoryLeaks.Severity))
		writeIssueLines(&sb, result.MemoryLeaks.PotentialLeaks)
		sb.WriteString("\n")
	}

	if result.Dependencies != nil {
		sb.WriteString("Dependencies\n")
		sb.WriteString(fmt.Sprintf("  Files:                %d\n", result.Dependencies.Metrics.TotalFiles))
		sb.WriteString(fmt.Sprintf("  Average dependencies: %.2f\n", result.Dependencies.Metrics.AverageDependencies))
		sb.WriteString(fmt.Sprintf("  Max dependencies:     %d\n", result.Dependencies.Metrics.MaxDependencies))
		sb.WriteString(fmt.Sprintf("  Circular chains:      %d\n", len(result.Dependencies.CircularDependencies)))
		for _, cycle := range result.Dependencies.CircularDependencies {
			sb.WriteString(fmt.Sprintf("    - %s\n", strings.Join(cycle, " -> ")))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Summary\n")
	sb.WriteString(fmt.Sprintf("  Total issues:    %d\n", result.Summary.TotalIssues))
	sb.WriteString(fmt.Sprintf("  Critical issues: %d\n", result.Summary.CriticalIssues))
	sb.WriteString(fmt.Sprintf("  Overall health:  %s\n", result.Summary.OverallHealth))
	sb.WriteString(fmt.Sprintf("  Generated at:    %s\n", result.Summary.Timestamp))

	for _, warning := range result.Warnings {
		sb.WriteString(fmt.Sprintf("\nwarning: %s", warning))
	}
	if len(result.Warnings) > 0 {
		sb.WriteString("\n")
	}

	if _, err := io.WriteString(writer, sb.String()); err != nil {
		return domain.NewOutputError("failed to write text output", err)
	}
	return nil
}

// writeIssueLines renders individual findings, worst first within
// their original order
func writeIssueLines(sb *strings.Builder, issues []domain.Issue) {
	for _, issue := range issues {
		sb.WriteString(fmt.Sprintf("  [%s] %s:%d %s (%s)\n",
			issue.Severity, issue.File, issue.Line, issue.Description, issue.Category))
	}
}
