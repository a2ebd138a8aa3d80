package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lectern-ai/lectern/internal/config"
	"github.com/lectern-ai/lectern/internal/home"
	"github.com/lectern-ai/lectern/internal/server"
	"github.com/lectern-ai/lectern/internal/server/endpoints"
)

var (
	serveHost string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Lectern server",
	Long: `Start the Lectern HTTP server.

The server watches its config file and applies LLM settings changes
without a restart.

The server provides:
  - /health              - Server health and active model
  - /study_text          - Streaming document analysis (SSE)
  - /polish_content      - Single-pass content polishing
  - /finalize_content    - Metadata and summary extraction
  - /glossary_lookup     - Glossary term search

Examples:
  lectern serve                    # Start on default port 16009
  lectern serve --port 3000        # Start on custom port
  lectern serve --host 0.0.0.0     # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Set up logger
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))

		// Get home directory
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		// Load config, preferring an explicit --config path, then the
		// home directory config if one has been written.
		configPath := cfgFile
		if configPath == "" && h.ConfigExists() {
			configPath = h.ConfigPath()
		}
		cm, err := config.NewManager(configPath)
		if err != nil {
			return err
		}
		cm.WatchConfig()

		// Create server
		srv, err := server.New(server.Config{
			Host:            serveHost,
			Port:            servePort,
			ConfigManager:   cm,
			Home:            h,
			Logger:          logger,
			SwaggerSpecPath: endpoints.GetSwaggerSpecPath(),
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Host to bind to")
	serveCmd.Flags().StringVar(&servePort, "port", "16009", "Port to listen on")

	rootCmd.AddCommand(serveCmd)
}
