package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tslens/tslens/domain"
	"github.com/tslens/tslens/internal/version"
)

var (
	// Version information (set via ldflags during build)
	Version = version.Version
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tslens",
		Short: "tslens - TypeScript/JavaScript project analyzer",
		Long: `tslens inspects a TypeScript or JavaScript project and reports
performance hotspots, potential memory leaks, and module dependency cycles.`,
		Version: Version,
	}

	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(depsCmd())
	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		var domainErr domain.DomainError
		if errors.As(err, &domainErr) {
			fmt.Fprintf(os.Stderr, "Error: %s\n", domainErr.Message)
			if domainErr.Cause != nil {
				fmt.Fprintf(os.Stderr, "  caused by: %v\n", domainErr.Cause)
			}
			os.Exit(exitCodeFor(domainErr))
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// exitCodeFor maps error codes to process exit codes so scripts can
// distinguish "bad project" from "bad invocation"
func exitCodeFor(err domain.DomainError) int {
	switch err.Code {
	case domain.ErrCodeProjectNotFound, domain.ErrCodeConfigNotFound:
		return 2
	case domain.ErrCodeInvalidInput, domain.ErrCodeUnsupportedFormat:
		return 3
	default:
		return 1
	}
}

func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				fmt.Println(version.GetFullVersion())
			} else {
				fmt.Printf("tslens version %s\n", version.GetVersion())
			}
		},
	}

	cmd.Flags().BoolP("verbose", "v", false, "Show detailed version information")
	return cmd
}
