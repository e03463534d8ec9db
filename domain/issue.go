package domain

// Severity represents the ordinal classification of a detected issue
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Rank returns a comparable ordering value (low < medium < high)
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	}
	return 0
}

// IssueKind classifies which detector family produced an issue
type IssueKind string

const (
	// IssueKindPerformance marks issues from the performance detector
	IssueKindPerformance IssueKind = "performance"

	// IssueKindMemory marks issues from memory-related detection
	// (oversized literals, churn calls, leak-prone constructs)
	IssueKindMemory IssueKind = "memory"
)

// Issue category tags, shared between the performance and leak detectors
const (
	CategoryLoop             = "loop"
	CategoryMemory           = "memory"
	CategoryComplexity       = "complexity"
	CategoryEventListener    = "event-listener"
	CategoryClosure          = "closure"
	CategoryTimer            = "timer"
	CategoryCollectionGrowth = "collection-growth"
)

// Issue represents a single finding produced by a detector.
// Issues are immutable once created and owned by the result they
// belong to.
type Issue struct {
	// Kind is the detector family (performance or memory)
	Kind IssueKind `json:"kind"`

	// Category is the detection category tag (loop, complexity, timer, ...)
	Category string `json:"category"`

	// Severity is the ordinal classification
	Severity Severity `json:"severity"`

	// File is the absolute path of the affected source file
	File string `json:"file"`

	// Line is the 1-based source line of the finding
	Line int `json:"line"`

	// Description is a human-readable explanation
	Description string `json:"description"`

	// Suggestion is the recommended remediation
	Suggestion string `json:"suggestion,omitempty"`

	// Excerpt is an optional code snippet, truncated at creation time
	Excerpt string `json:"excerpt,omitempty"`
}

// CountBySeverity returns how many issues carry the given severity
func CountBySeverity(issues []Issue, severity Severity) int {
	count := 0
	for _, issue := range issues {
		if issue.Severity == severity {
			count++
		}
	}
	return count
}
