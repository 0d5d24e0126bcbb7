package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sooperboring/content-studio/internal/browse"
	"github.com/sooperboring/content-studio/internal/catalog"
	"github.com/sooperboring/content-studio/internal/config"
	"github.com/sooperboring/content-studio/internal/observability"
	"github.com/sooperboring/content-studio/internal/remote/postgres"
)

var contentSearch string

var contentCmd = &cobra.Command{
	Use:   "content [type]",
	Short: "List stored content records",
	Long:  `List the records of one content type (articles, jobs, theories, videos, spotlights, profiles), newest first.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runContent,
}

func init() {
	contentCmd.Flags().StringVar(&contentSearch, "search", "", "Filter by search term")
	rootCmd.AddCommand(contentCmd)
}

func runContent(_ *cobra.Command, args []string) error {
	typ, ok := catalog.ByName(args[0])
	if !ok {
		return fmt.Errorf("unknown content type: %s", args[0])
	}

	cfg, err := config.NewAppConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	store, err := postgres.Connect(ctx, cfg.DatabaseURL, cfg.StorageBaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer store.Close()

	b := browse.New(store, typ)
	b.Fetch(ctx, contentSearch)
	if msg := b.Error(); msg != "" {
		return fmt.Errorf("%s", msg)
	}

	observability.NewPrinter(os.Stdout).PrintContentList(typ, b.Items())
	return nil
}
