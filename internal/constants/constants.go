package constants

// Tool name and related constants
const (
	// ToolName is the name of this tool
	ToolName = "tslens"

	// ConfigFileName is the default config file name
	ConfigFileName = "tslens.yaml"

	// EnvVarPrefix is the prefix for environment variables
	EnvVarPrefix = "TSLENS"
)

// Detector name constants
const (
	DetectorPerformance  = "performance"
	DetectorMemory       = "memory"
	DetectorDependencies = "dependencies"
)

// Output format constants
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)
