// Package main provides the entry point for the Content Studio HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "studio",
	Short: "Content Studio HTTP API Server",
	Long:  "Content Studio manages the portfolio content of a single-page site: articles, jobs, theories, videos, spotlights and designer profiles, with draft editing sessions and file uploads.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
