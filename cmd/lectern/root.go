package main

import (
	"github.com/spf13/cobra"

	"github.com/lectern-ai/lectern/internal/api"
	"github.com/lectern-ai/lectern/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "lectern",
	Short: "Agentic document analysis with LLM-powered cleaning and classification",
	Long: `Lectern is a document analysis engine that cleans, classifies, and
summarizes raw text using an iterative, tool-driven LLM workflow.

The engine provides:
  - Agentic analysis with line-windowed document navigation
  - Standalone analysis over pre-chunked documents
  - Content polishing, cleanliness evaluation, and finalization
  - Glossary term lookup and keyword extraction`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.lectern/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "lectern home directory (default: ~/.lectern)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}
