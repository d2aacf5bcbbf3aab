package tagcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matcatalog/tag-matching/internal/tags"
)

type countingStore struct {
	listCalls int
	tags      map[string][]tags.Tag
	listErr   error
}

func (s *countingStore) ListTags(ctx context.Context, category string) ([]tags.Tag, error) {
	s.listCalls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.tags[category], nil
}

func (s *countingStore) MatchTags(ctx context.Context, text, category string, minConfidence float64) ([]tags.MatchResult, error) {
	return nil, nil
}

func (s *countingStore) AppendDecisionLog(ctx context.Context, entry tags.DecisionLogEntry) (int64, error) {
	return 0, nil
}

func fixtureTags() map[string][]tags.Tag {
	return map[string][]tags.Tag{
		"finishes": {
			{ID: "t1", Name: "Matte", NormalizedName: "matte"},
			{ID: "t2", Name: "Gloss", NormalizedName: "gloss"},
		},
		"colors": {
			{ID: "t3", Name: "Oxide Red", NormalizedName: "oxide red"},
		},
	}
}

func TestGetTagsCachesWithinTTL(t *testing.T) {
	store := &countingStore{tags: fixtureTags()}
	cache := New(store, 5*time.Minute)

	got, err := cache.GetTags(context.Background(), "finishes")
	require.NoError(t, err)
	require.Len(t, got, 2)

	got, err = cache.GetTags(context.Background(), "finishes")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, 1, store.listCalls, "second call within TTL must be served from cache")
}

func TestGetTagsRefetchesAfterTTL(t *testing.T) {
	store := &countingStore{tags: fixtureTags()}
	cache := New(store, 5*time.Minute)

	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return current }

	_, err := cache.GetTags(context.Background(), "finishes")
	require.NoError(t, err)

	current = current.Add(5*time.Minute + time.Second)

	_, err = cache.GetTags(context.Background(), "finishes")
	require.NoError(t, err)

	assert.Equal(t, 2, store.listCalls, "expired entry must be refetched")
}

func TestGetTagsErrorDoesNotPoisonCache(t *testing.T) {
	store := &countingStore{tags: fixtureTags()}
	cache := New(store, 5*time.Minute)

	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return current }

	_, err := cache.GetTags(context.Background(), "finishes")
	require.NoError(t, err)

	// Expire the entry, then make the store fail.
	current = current.Add(10 * time.Minute)
	store.listErr = errors.New("connection refused")

	_, err = cache.GetTags(context.Background(), "finishes")
	require.Error(t, err)

	// Store recovers; the next read retries instead of serving the failure.
	store.listErr = nil
	got, err := cache.GetTags(context.Background(), "finishes")
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 3, store.listCalls)
}

func TestClear(t *testing.T) {
	store := &countingStore{tags: fixtureTags()}
	cache := New(store, 5*time.Minute)

	_, err := cache.GetTags(context.Background(), "finishes")
	require.NoError(t, err)

	cache.Clear()

	_, err = cache.GetTags(context.Background(), "finishes")
	require.NoError(t, err)
	assert.Equal(t, 2, store.listCalls, "cleared cache must refetch")
}

func TestStats(t *testing.T) {
	store := &countingStore{tags: fixtureTags()}
	cache := New(store, 5*time.Minute)

	assert.Equal(t, Stats{}, cache.Stats())

	first := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	current := first
	cache.now = func() time.Time { return current }

	_, err := cache.GetTags(context.Background(), "finishes")
	require.NoError(t, err)

	current = current.Add(time.Minute)
	_, err = cache.GetTags(context.Background(), "colors")
	require.NoError(t, err)

	s := cache.Stats()
	assert.Equal(t, 2, s.Categories)
	assert.Equal(t, 3, s.TotalTags)
	assert.Equal(t, first, s.OldestFetch)
}
