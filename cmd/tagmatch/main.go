package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matcatalog/tag-matching/internal/config"
	"github.com/matcatalog/tag-matching/internal/logger"
	"github.com/matcatalog/tag-matching/internal/matcher"
	"github.com/matcatalog/tag-matching/internal/tags"
	"github.com/matcatalog/tag-matching/internal/tagstore"
	"github.com/matcatalog/tag-matching/internal/web"
)

var (
	cfg     *config.Matching
	store   *tagstore.Postgres
	service *matcher.Service
)

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load environment: %v\n", err)
		os.Exit(1)
	}

	cfg = config.LoadMatching()
	logger.SetDebug(cfg.Debug)

	err := newRootCmd().Execute()

	if service != nil {
		service.Flush()
	}
	if store != nil {
		store.Close()
	}

	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. The tag store connection is deferred
// to a PersistentPreRunE so help and usage output work without a reachable
// database.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tagmatch",
		Short: "Material catalog tag matching engine",
		Long:  `Resolves free-form extracted text to canonical taxonomy tags with ranked, confidence-scored matches`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return ensureService()
		},
	}

	rootCmd.AddCommand(createMatchCmd())
	rootCmd.AddCommand(createMatchAllCmd())
	rootCmd.AddCommand(createValidateCmd())
	rootCmd.AddCommand(createServeCmd())
	rootCmd.AddCommand(createCacheCmd())
	rootCmd.AddCommand(createPingCmd())

	return rootCmd
}

// ensureService connects to the tag store and builds the matching service.
func ensureService() error {
	if service != nil {
		return nil
	}

	var err error
	store, err = tagstore.Connect()
	if err != nil {
		return fmt.Errorf("failed to connect to tag store: %w", err)
	}

	service = matcher.NewService(store, cfg.CacheTTL)
	return nil
}

// createMatchCmd matches a single text against one category
func createMatchCmd() *cobra.Command {
	var (
		minConfidence float64
		maxResults    int
		noFuzzy       bool
		noSynonyms    bool
	)

	cmd := &cobra.Command{
		Use:   "match <text> <category>",
		Short: "Match extracted text against one category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := tags.MatchingOptions{
				MinConfidence:         minConfidence,
				EnableFuzzyMatching:   !noFuzzy,
				EnableSynonymMatching: !noSynonyms,
				MaxResults:            maxResults,
			}

			results, err := service.FindMatchingTags(cmd.Context(), args[0], args[1], opts)
			if err != nil {
				return err
			}

			return printJSON(results)
		},
	}

	cmd.Flags().Float64Var(&minConfidence, "min-confidence", cfg.MinConfidence, "Confidence floor for fuzzy matches")
	cmd.Flags().IntVar(&maxResults, "max-results", cfg.MaxResults, "Maximum results to return")
	cmd.Flags().BoolVar(&noFuzzy, "no-fuzzy", false, "Disable fuzzy matching")
	cmd.Flags().BoolVar(&noSynonyms, "no-synonyms", false, "Disable synonym matching")

	return cmd
}

// createMatchAllCmd matches a single text against several categories
func createMatchAllCmd() *cobra.Command {
	var categories []string

	cmd := &cobra.Command{
		Use:   "match-all <text>",
		Short: "Match extracted text against all categories concurrently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			byCategory, err := service.FindTagsForAllCategories(cmd.Context(), args[0], categories, tags.DefaultOptions())
			if err != nil {
				return err
			}

			return printJSON(byCategory)
		},
	}

	cmd.Flags().StringSliceVar(&categories, "categories", nil, "Categories to scan (default: all)")

	return cmd
}

// createValidateCmd probes the tag store's backing operations
func createValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that the tag store's backing operations are reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			result := service.ValidateBackingFunctions(cmd.Context())
			if err := printJSON(result); err != nil {
				return err
			}
			if !result.IsValid {
				os.Exit(1)
			}
			return nil
		},
	}
}

// createServeCmd runs the HTTP API
func createServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the matching HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := web.NewServer(service, addr)
			return server.Start()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", cfg.HTTPAddr, "Listen address")

	return cmd
}

// createCacheCmd reports category cache contents
func createCacheCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cache",
		Short: "Show category cache statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(service.CacheStats())
		},
	}
}

// createPingCmd tests tag store connectivity
func createPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Test tag store connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()

			if err := store.Ping(ctx); err != nil {
				return fmt.Errorf("tag store unreachable: %w", err)
			}

			fmt.Println("Tag store connection successful!")
			return nil
		},
	}
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
