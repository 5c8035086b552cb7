package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "sift",
	Short: "Sift - boolean rule engine for attribute records",
	Long: `Sift evaluates plain-text boolean rules against attribute records.

Rules are expressions like "(age > 30 AND department = 'Sales')" built from
ordered comparisons (>, <), equality (=), and the logical connectives AND
and OR. Rule sets are YAML files whose rules evaluate as a conjunction.

Sift provides:
  - A strict recursive grammar parser with typed grammar errors
  - Record evaluation with typed evaluation errors
  - Hot reloading of rule set files in watch mode
  - An audit trail of evaluations with retention pruning
  - Prometheus metrics for parses, evaluations, and reloads`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "sift.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
