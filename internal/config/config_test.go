package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
	if !cfg.Detectors.Performance || !cfg.Detectors.Memory || !cfg.Detectors.Dependencies {
		t.Error("all detectors should be enabled by default")
	}
	if cfg.Thresholds.ComplexityWarning != DefaultComplexityWarningThreshold {
		t.Errorf("complexity warning = %d, expected %d",
			cfg.Thresholds.ComplexityWarning, DefaultComplexityWarningThreshold)
	}
	if cfg.Output.Format != "text" {
		t.Errorf("default format = %s, expected text", cfg.Output.Format)
	}
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero warning threshold", func(c *Config) { c.Thresholds.ComplexityWarning = 0 }},
		{"critical below warning", func(c *Config) { c.Thresholds.ComplexityCritical = 5 }},
		{"zero array threshold", func(c *Config) { c.Thresholds.LargeArraySize = 0 }},
		{"unknown format", func(c *Config) { c.Output.Format = "xml" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadConfig_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tslens.yaml")
	writeConfig(t, path, `
detectors:
  performance: true
  memory: false
  dependencies: true
thresholds:
  complexity_warning: 15
  complexity_critical: 30
  large_array_size: 500
output:
  format: json
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Detectors.Memory {
		t.Error("memory detector should be disabled")
	}
	if cfg.Thresholds.ComplexityWarning != 15 {
		t.Errorf("complexity warning = %d, expected 15", cfg.Thresholds.ComplexityWarning)
	}
	if cfg.Thresholds.LargeArraySize != 500 {
		t.Errorf("large array size = %d, expected 500", cfg.Thresholds.LargeArraySize)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("format = %s, expected json", cfg.Output.Format)
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tslens.yaml")
	writeConfig(t, path, "thresholds:\n  complexity_warning: 8\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Thresholds.ComplexityWarning != 8 {
		t.Errorf("overridden warning = %d, expected 8", cfg.Thresholds.ComplexityWarning)
	}
	if cfg.Thresholds.ComplexityCritical != DefaultComplexityCriticalThreshold {
		t.Errorf("critical should keep its default, got %d", cfg.Thresholds.ComplexityCritical)
	}
	if !cfg.Detectors.Performance {
		t.Error("detectors should keep their defaults")
	}
}

func TestLoadConfig_InvalidValuesRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tslens.yaml")
	writeConfig(t, path, "thresholds:\n  complexity_warning: 50\n  complexity_critical: 10\n")

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected validation failure for critical < warning")
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestLoadConfigWithTarget_Discovery(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, filepath.Join(root, "tslens.yaml"), "thresholds:\n  complexity_warning: 12\n")
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	cfg, err := LoadConfigWithTarget("", nested)
	if err != nil {
		t.Fatalf("LoadConfigWithTarget failed: %v", err)
	}
	if cfg.Thresholds.ComplexityWarning != 12 {
		t.Errorf("discovered config not applied, warning = %d", cfg.Thresholds.ComplexityWarning)
	}
}

func TestSearchConfigInDirectory_Preference(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, filepath.Join(dir, ".tslens.yaml"), "")
	writeConfig(t, filepath.Join(dir, "tslens.yaml"), "")

	found := searchConfigInDirectory(dir)
	if filepath.Base(found) != "tslens.yaml" {
		t.Errorf("expected tslens.yaml to win, got %s", found)
	}
}

func TestConfigTemplates(t *testing.T) {
	minimal := GetMinimalConfigTemplate()
	if !strings.Contains(minimal, "detectors:") {
		t.Error("minimal template should list detectors")
	}

	for _, strictness := range []Strictness{StrictnessStandard, StrictnessRelaxed, StrictnessStrict} {
		full := GetFullConfigTemplate(strictness)
		if !strings.Contains(full, "thresholds:") {
			t.Errorf("%s template should include thresholds", strictness)
		}
	}

	if !strings.Contains(GetFullConfigTemplate(StrictnessStrict), "complexity_warning: 7") {
		t.Error("strict profile should lower the warning threshold")
	}
	if !strings.Contains(GetFullConfigTemplate("bogus"), "complexity_warning: 10") {
		t.Error("unknown strictness should fall back to standard thresholds")
	}
}
