package config

import "fmt"

// Strictness selects a threshold profile for generated config files
type Strictness string

const (
	StrictnessStandard Strictness = "standard"
	StrictnessRelaxed  Strictness = "relaxed"
	StrictnessStrict   Strictness = "strict"
)

// strictnessThresholds maps a profile to its threshold values
var strictnessThresholds = map[Strictness]ThresholdsConfig{
	StrictnessStandard: {
		ComplexityWarning:  DefaultComplexityWarningThreshold,
		ComplexityCritical: DefaultComplexityCriticalThreshold,
		LargeArraySize:     DefaultLargeArrayThreshold,
	},
	StrictnessRelaxed: {
		ComplexityWarning:  15,
		ComplexityCritical: 30,
		LargeArraySize:     5000,
	},
	StrictnessStrict: {
		ComplexityWarning:  7,
		ComplexityCritical: 15,
		LargeArraySize:     500,
	},
}

// GetMinimalConfigTemplate returns a short config file with only the
// options most projects change
func GetMinimalConfigTemplate() string {
	return `# tslens configuration
detectors:
  performance: true
  memory: true
  dependencies: true

output:
  format: text
`
}

// GetFullConfigTemplate returns a documented config file for the
// given strictness profile
func GetFullConfigTemplate(strictness Strictness) string {
	thresholds, ok := strictnessThresholds[strictness]
	if !ok {
		thresholds = strictnessThresholds[StrictnessStandard]
	}

	return fmt.Sprintf(`# tslens configuration
# Strictness profile: %s

# Select which detectors run during analysis.
detectors:
  performance: true
  memory: true
  dependencies: true

# Detector thresholds.
thresholds:
  # Functions above this cyclomatic complexity are reported.
  complexity_warning: %d
  # Above this the report severity becomes high.
  complexity_critical: %d
  # Array literals with more inline elements than this are reported.
  large_array_size: %d

# Execution settings.
runtime:
  # 0 uses one worker per CPU.
  max_goroutines: 0
  # Show progress bars on interactive terminals.
  progress: true

# Output settings.
output:
  # text, json or yaml
  format: text
`, strictness, thresholds.ComplexityWarning, thresholds.ComplexityCritical, thresholds.LargeArraySize)
}
