// Package matcher implements the tag matching engine: remote-first
// delegation with a local exact/synonym/fuzzy cascade as the fallback.
package matcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matcatalog/tag-matching/internal/logger"
	"github.com/matcatalog/tag-matching/internal/normalize"
	"github.com/matcatalog/tag-matching/internal/tagcache"
	"github.com/matcatalog/tag-matching/internal/tags"
)

// decisionLogTimeout bounds the fire-and-forget decision log write.
const decisionLogTimeout = 10 * time.Second

// Service is the tag matching engine. It holds the category tag cache as
// internal state; construct one per tag store and share it.
type Service struct {
	store tags.Store
	cache *tagcache.Cache
	log   *log.Logger

	// logWG tracks in-flight decision log writes so tests and shutdown can
	// wait for them.
	logWG sync.WaitGroup
}

// NewService creates a matching engine over the given store. A non-positive
// cacheTTL falls back to the default category cache TTL.
func NewService(store tags.Store, cacheTTL time.Duration) *Service {
	return &Service{
		store: store,
		cache: tagcache.New(store, cacheTTL),
		log:   logger.New("matcher"),
	}
}

// FindMatchingTags resolves extracted text to ranked tag candidates within a
// category. The remote matching procedure is tried first; any error there is
// degraded to "no results" and the local cascade runs against the cached tag
// set. Only a failed tag fetch on the fallback path returns an error, since
// no further fallback exists at that point.
func (s *Service) FindMatchingTags(ctx context.Context, extractedText, categoryName string, opts tags.MatchingOptions) ([]tags.MatchResult, error) {
	if normalize.IsBlank(extractedText) || normalize.IsBlank(categoryName) {
		s.log.Warn("blank text or category, skipping match",
			"category", categoryName)
		return []tags.MatchResult{}, nil
	}

	normalizedText := normalize.Text(extractedText)

	remote, err := s.store.MatchTags(ctx, extractedText, categoryName, opts.MinConfidence)
	if err != nil {
		s.log.Warn("remote matching unavailable, falling back to local cascade",
			"category", categoryName, "err", err)
	} else if len(remote) > 0 {
		return truncate(remote, opts.MaxResults), nil
	}

	tagSet, err := s.cache.GetTags(ctx, categoryName)
	if err != nil {
		return nil, fmt.Errorf("failed to find matching tags for category %q: %w", categoryName, err)
	}

	results := MatchLocally(normalizedText, tagSet, opts)
	s.log.Debug("local cascade complete",
		"category", categoryName, "candidates", len(results))

	return truncate(results, opts.MaxResults), nil
}

// FindTagsForAllCategories runs FindMatchingTags concurrently for every
// category and aggregates the results per category. Every requested category
// appears in the returned map, with an empty slice when nothing matched. A
// failure in any single category fails the whole call. An empty category
// list scans the default category set.
func (s *Service) FindTagsForAllCategories(ctx context.Context, extractedText string, categories []string, opts tags.MatchingOptions) (map[string][]tags.MatchResult, error) {
	if len(categories) == 0 {
		categories = tags.DefaultCategories
	}

	var mu sync.Mutex
	byCategory := make(map[string][]tags.MatchResult, len(categories))

	g, gctx := errgroup.WithContext(ctx)
	for _, category := range categories {
		category := category
		g.Go(func() error {
			results, err := s.FindMatchingTags(gctx, extractedText, category, opts)
			if err != nil {
				return err
			}
			mu.Lock()
			byCategory[category] = results
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return byCategory, nil
}

// LogDecision records a matching decision for downstream analytics. The
// write happens on a background goroutine with its own timeout; failures are
// logged and swallowed so the caller's response path is never blocked or
// failed by analytics.
func (s *Service) LogDecision(entry tags.DecisionLogEntry) {
	s.logWG.Add(1)
	go func() {
		defer s.logWG.Done()

		ctx, cancel := context.WithTimeout(context.Background(), decisionLogTimeout)
		defer cancel()

		if _, err := s.store.AppendDecisionLog(ctx, entry); err != nil {
			s.log.Error("failed to record match decision",
				"category", entry.CategoryName, "err", err)
		}
	}()
}

// Flush waits for in-flight decision log writes. Used at shutdown and in
// tests; the matching path never calls it.
func (s *Service) Flush() {
	s.logWG.Wait()
}

// CacheStats reports category cache contents for observability.
func (s *Service) CacheStats() tagcache.Stats {
	return s.cache.Stats()
}

// ClearCache drops all cached category tag lists.
func (s *Service) ClearCache() {
	s.cache.Clear()
}

func truncate(results []tags.MatchResult, max int) []tags.MatchResult {
	if max > 0 && len(results) > max {
		return results[:max]
	}
	return results
}
