package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tslens/tslens/domain"
	"github.com/tslens/tslens/internal/config"
	"github.com/tslens/tslens/service"
)

var (
	depsOutputFormat string
	depsJSONOutput   bool
	depsConfigPath   string
)

func depsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deps [path]",
		Short: "Show the module dependency graph and cycles",
		Long: `Build the relative-import dependency graph of a project and report
circular dependency chains.

Examples:
  tslens deps .
  tslens deps --format json src/`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDeps,
	}

	cmd.Flags().StringVarP(&depsOutputFormat, "format", "f", "text",
		"Output format: text, json")
	cmd.Flags().BoolVar(&depsJSONOutput, "json", false,
		"Output results as JSON (shorthand for --format json)")
	cmd.Flags().StringVarP(&depsConfigPath, "config", "c", "",
		"Path to config file")

	return cmd
}

func runDeps(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	cfg, err := config.LoadConfigWithTarget(depsConfigPath, root)
	if err != nil {
		return err
	}

	asJSON := depsJSONOutput || depsOutputFormat == "json"
	if !asJSON && depsOutputFormat != "text" {
		return domain.NewUnsupportedFormatError(depsOutputFormat)
	}

	svc := service.NewAnalysisService(cfg)
	req := &domain.AnalyzeRequest{
		ProjectRoot: root,
		Detectors:   []domain.Detector{domain.DetectorDependencies},
	}

	result, err := svc.AnalyzeProject(context.Background(), req)
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}

	if asJSON {
		formatter := service.NewOutputFormatter()
		return formatter.Write(result, domain.OutputFormatJSON, os.Stdout)
	}

	return writeDepsText(result.Dependencies)
}

func writeDepsText(report *domain.DependencyReport) error {
	fmt.Printf("Files: %d, edges: %d\n\n",
		report.Metrics.TotalFiles, report.Graph.EdgeCount())

	for _, file := range report.Graph.Files() {
		deps := report.Graph.Dependencies(file)
		fmt.Printf("%s (%d)\n", file, len(deps))
		for _, dep := range deps {
			fmt.Printf("  -> %s\n", dep)
		}
	}

	if len(report.CircularDependencies) > 0 {
		fmt.Printf("\nCircular dependencies (%d):\n", len(report.CircularDependencies))
		for _, cycle := range report.CircularDependencies {
			fmt.Printf("  %s\n", strings.Join(cycle, " -> "))
		}
	} else {
		fmt.Println("\nNo circular dependencies found.")
	}

	return nil
}
