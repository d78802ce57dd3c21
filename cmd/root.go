package cmd

import (
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var (
	// Global flags
	configPath string
	verbose    bool
	noColor    bool
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var rootCmd = &cobra.Command{
	Use:   "depaudit",
	Short: "Dependency update auditor for UPM projects",
	Long: `A CLI tool that reads the installed package set of a UPM project,
walks the declared dependency graph, and reports which packages have
newer versions available in their registries.

This tool never installs or modifies anything. It helps you see:
- Which direct dependencies are outdated
- Which transitive dependencies are outdated, and who pulls them in
- Which packages are missing from their registry entirely`,
}

func Execute() error {
	return rootCmd.Execute()
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Path to config file (default: auto-detect)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colored output")
}
