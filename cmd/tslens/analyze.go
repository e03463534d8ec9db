package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tslens/tslens/app"
	"github.com/tslens/tslens/domain"
	"github.com/tslens/tslens/internal/config"
	"github.com/tslens/tslens/service"
)

var (
	selectDetectors []string
	outputFormat    string
	jsonOutput      bool
	yamlOutput      bool
	outputPath      string
	configPath      string
	noProgress      bool
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Analyze a TypeScript/JavaScript project",
		Long: `Analyze a TypeScript/JavaScript project for performance issues,
potential memory leaks, and dependency cycles.

The path must be inside a project: a directory containing (or below a
directory containing) package.json, tsconfig.json, or jsconfig.json.

Examples:
  tslens analyze .
  tslens analyze --select performance src/
  tslens analyze --select performance,memory --json .
  tslens analyze --format yaml -o report.yaml .`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().StringSliceVarP(&selectDetectors, "select", "s", nil,
		"Detectors to run (comma-separated): performance,memory,dependencies (default: all)")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "",
		"Output format: text, json, yaml")
	cmd.Flags().BoolVar(&jsonOutput, "json", false,
		"Output results as JSON (shorthand for --format json)")
	cmd.Flags().BoolVar(&yamlOutput, "yaml", false,
		"Output results as YAML (shorthand for --format yaml)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"Output file path (default: stdout)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false,
		"Disable progress bars")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	cfg, err := config.LoadConfigWithTarget(configPath, root)
	if err != nil {
		return err
	}

	format, err := resolveFormat(cfg)
	if err != nil {
		return err
	}

	detectors, err := resolveDetectors(cfg)
	if err != nil {
		return err
	}

	if outputPath == "" {
		outputPath = cfg.Output.Path
	}

	// Progress bars would interleave with structured stdout output
	progressEnabled := cfg.Runtime.Progress && !noProgress &&
		(format == domain.OutputFormatText || outputPath != "")
	pm := service.NewProgressManager(progressEnabled)
	defer pm.Close()

	uc, err := app.NewAnalyzeUseCaseBuilder().
		WithService(service.NewAnalysisServiceWithProgress(cfg, pm)).
		WithFormatter(service.NewOutputFormatter()).
		Build()
	if err != nil {
		return err
	}

	req := &domain.AnalyzeRequest{
		ProjectRoot:  root,
		Detectors:    detectors,
		OutputFormat: format,
		OutputPath:   outputPath,
	}

	result, err := uc.Execute(context.Background(), req)
	if err != nil {
		return err
	}

	if outputPath != "" {
		absPath, _ := filepath.Abs(outputPath)
		fmt.Printf("Report saved to: %s\n", absPath)
	}
	if format == domain.OutputFormatText && outputPath == "" {
		fmt.Printf("\nAnalysis completed in %dms\n", result.Duration)
	}

	return nil
}

// resolveFormat merges flag shorthands, --format, and config
func resolveFormat(cfg *config.Config) (domain.OutputFormat, error) {
	name := outputFormat
	if jsonOutput {
		name = "json"
	} else if yamlOutput {
		name = "yaml"
	}
	if name == "" {
		name = cfg.Output.Format
	}

	switch name {
	case "text", "":
		return domain.OutputFormatText, nil
	case "json":
		return domain.OutputFormatJSON, nil
	case "yaml":
		return domain.OutputFormatYAML, nil
	default:
		return "", domain.NewUnsupportedFormatError(name)
	}
}

// resolveDetectors merges --select with the config's detector toggles.
// The flag wins when given; otherwise disabled detectors are dropped.
func resolveDetectors(cfg *config.Config) ([]domain.Detector, error) {
	if len(selectDetectors) > 0 {
		var detectors []domain.Detector
		for _, name := range selectDetectors {
			switch strings.TrimSpace(name) {
			case "performance":
				detectors = append(detectors, domain.DetectorPerformance)
			case "memory":
				detectors = append(detectors, domain.DetectorMemory)
			case "dependencies":
				detectors = append(detectors, domain.DetectorDependencies)
			default:
				return nil, domain.NewDomainError(domain.ErrCodeInvalidInput,
					fmt.Sprintf("unknown detector %q (expected performance, memory, or dependencies)", name), nil)
			}
		}
		return detectors, nil
	}

	var detectors []domain.Detector
	if cfg.Detectors.Performance {
		detectors = append(detectors, domain.DetectorPerformance)
	}
	if cfg.Detectors.Memory {
		detectors = append(detectors, domain.DetectorMemory)
	}
	if cfg.Detectors.Dependencies {
		detectors = append(detectors, domain.DetectorDependencies)
	}
	if len(detectors) == 0 {
		fmt.Fprintln(os.Stderr, "warning: all detectors disabled in config; enabling all")
		return domain.AllDetectors(), nil
	}
	return detectors, nil
}
