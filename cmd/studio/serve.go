package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sooperboring/content-studio/internal/config"
	"github.com/sooperboring/content-studio/internal/server"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for browsing content, editing drafts and uploading assets.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	if servePort != "" {
		os.Setenv("PORT", servePort)
	}

	cfg, err := config.NewAppConfig()
	if err != nil {
		return err
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
