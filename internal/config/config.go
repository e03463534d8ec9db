package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/tslens/tslens/internal/constants"
)

// Default detector thresholds
const (
	// DefaultComplexityWarningThreshold is the complexity above which
	// a function is reported
	DefaultComplexityWarningThreshold = 10

	// DefaultComplexityCriticalThreshold is the complexity above which
	// the report severity becomes high
	DefaultComplexityCriticalThreshold = 20

	// DefaultLargeArrayThreshold is the inline element count above
	// which an array literal is reported
	DefaultLargeArrayThreshold = 1000

	// DefaultExcerptLimit bounds code excerpts embedded in issues
	DefaultExcerptLimit = 100
)

// Config is the main configuration structure
type Config struct {
	// Detectors selects which analysis passes run
	Detectors DetectorsConfig `json:"detectors" mapstructure:"detectors" yaml:"detectors"`

	// Thresholds holds detector threshold values
	Thresholds ThresholdsConfig `json:"thresholds" mapstructure:"thresholds" yaml:"thresholds"`

	// Runtime holds execution settings
	Runtime RuntimeConfig `json:"runtime" mapstructure:"runtime" yaml:"runtime"`

	// Output holds output formatting settings
	Output OutputConfig `json:"output" mapstructure:"output" yaml:"output"`
}

// DetectorsConfig enables or disables individual detectors
type DetectorsConfig struct {
	Performance  bool `json:"performance" mapstructure:"performance" yaml:"performance"`
	Memory       bool `json:"memory" mapstructure:"memory" yaml:"memory"`
	Dependencies bool `json:"dependencies" mapstructure:"dependencies" yaml:"dependencies"`
}

// ThresholdsConfig holds detector threshold values
type ThresholdsConfig struct {
	// ComplexityWarning is the complexity above which an issue is emitted
	ComplexityWarning int `json:"complexityWarning" mapstructure:"complexity_warning" yaml:"complexity_warning"`

	// ComplexityCritical is the complexity above which severity becomes high
	ComplexityCritical int `json:"complexityCritical" mapstructure:"complexity_critical" yaml:"complexity_critical"`

	// LargeArraySize is the inline element count above which an array
	// literal is reported
	LargeArraySize int `json:"largeArraySize" mapstructure:"large_array_size" yaml:"large_array_size"`
}

// RuntimeConfig holds execution settings
type RuntimeConfig struct {
	// MaxGoroutines bounds parallel parsing (0 = NumCPU)
	MaxGoroutines int `json:"maxGoroutines" mapstructure:"max_goroutines" yaml:"max_goroutines"`

	// Progress enables interactive progress bars
	Progress bool `json:"progress" mapstructure:"progress" yaml:"progress"`
}

// OutputConfig holds output formatting settings
type OutputConfig struct {
	// Format is text, json or yaml
	Format string `json:"format" mapstructure:"format" yaml:"format"`

	// Path is the output file path (empty = stdout)
	Path string `json:"path,omitempty" mapstructure:"path" yaml:"path,omitempty"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Detectors: DetectorsConfig{
			Performance:  true,
			Memory:       true,
			Dependencies: true,
		},
		Thresholds: ThresholdsConfig{
			ComplexityWarning:  DefaultComplexityWarningThreshold,
			ComplexityCritical: DefaultComplexityCriticalThreshold,
			LargeArraySize:     DefaultLargeArrayThreshold,
		},
		Runtime: RuntimeConfig{
			MaxGoroutines: 0,
			Progress:      true,
		},
		Output: OutputConfig{
			Format: "text",
		},
	}
}

// Validate checks the configuration for inconsistent values
func (c *Config) Validate() error {
	if c.Thresholds.ComplexityWarning < 1 {
		return fmt.Errorf("complexity_warning must be >= 1, got %d", c.Thresholds.ComplexityWarning)
	}
	if c.Thresholds.ComplexityCritical < c.Thresholds.ComplexityWarning {
		return fmt.Errorf("complexity_critical (%d) must be >= complexity_warning (%d)",
			c.Thresholds.ComplexityCritical, c.Thresholds.ComplexityWarning)
	}
	if c.Thresholds.LargeArraySize < 1 {
		return fmt.Errorf("large_array_size must be >= 1, got %d", c.Thresholds.LargeArraySize)
	}
	switch c.Output.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown output format: %s", c.Output.Format)
	}
	return nil
}

// configCandidates are default config file names, in preference order
var configCandidates = []string{
	"tslens.yaml",
	"tslens.yml",
	".tslens.yaml",
	".tslens.yml",
	"tslens.json",
	".tslens.json",
}

// LoadConfig loads configuration from the given path, or discovers a
// default config file when the path is empty
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// LoadConfigWithTarget loads configuration, discovering a config file
// upward from targetPath when no explicit path is given
func LoadConfigWithTarget(configPath, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = findDefaultConfig(targetPath)
	}
	return loadConfigFromFile(configPath)
}

// loadConfigFromFile reads and parses one configuration file
func loadConfigFromFile(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}

	// A fresh viper instance per load avoids shared-state races
	v := viper.New()
	cfg := DefaultConfig()
	v.SetConfigFile(configPath)
	v.SetEnvPrefix(constants.EnvVarPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// findDefaultConfig searches candidate names from targetPath upward,
// then falls back to the current directory
func findDefaultConfig(targetPath string) string {
	if targetPath != "" {
		absPath, err := filepath.Abs(targetPath)
		if err == nil {
			if info, err := os.Stat(absPath); err == nil && !info.IsDir() {
				absPath = filepath.Dir(absPath)
			}
			for dir := absPath; ; dir = filepath.Dir(dir) {
				if found := searchConfigInDirectory(dir); found != "" {
					return found
				}
				if filepath.Dir(dir) == dir {
					break
				}
			}
		}
	}

	return searchConfigInDirectory(".")
}

func searchConfigInDirectory(dir string) string {
	for _, candidate := range configCandidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
