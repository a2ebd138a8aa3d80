package main

import (
	"github.com/spf13/cobra"

	"github.com/lectern-ai/lectern/internal/server/endpoints"
)

var serverURL string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Commands that call the running server",
	Long: `API commands call the running Lectern server via HTTP.

These commands require a running server (lectern serve).
Use --server to specify a custom server URL.

Examples:
  lectern api health                  # Check server health
  lectern api study document.txt      # Stream an agentic analysis
  lectern api cleanliness draft.txt   # Evaluate article cleanliness`,
}

// getServerURL returns the server URL at runtime (after flag parsing).
func getServerURL() string {
	return serverURL
}

func init() {
	// Add --server flag to api command (persistent so all subcommands inherit it)
	apiCmd.PersistentFlags().StringVar(
		&serverURL, "server", "http://localhost:16009", "Server URL",
	)

	apiCmd.AddCommand((&endpoints.HealthEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.StudyTextEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.CleanlinessEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.PolishEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.FinalizeEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.GlossaryLookupEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.SwaggerEndpoint{}).Command(getServerURL))

	rootCmd.AddCommand(apiCmd)
}
