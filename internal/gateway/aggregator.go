package gateway

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Ritik-rajput786/internfinder/internal/domain"
)

// Cache stores normalized listings between fetches. Misses return ("", nil).
// Implemented by persistence.Redis; a nil Cache disables caching.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

const cacheKeyPrefix = "external_jobs:"

// Aggregator fans out to every configured provider under one deadline,
// absorbs per-provider failures, and caches the merged normalized set.
// The upstream APIs are rate-limited, so the cache is not just a latency
// optimization.
type Aggregator struct {
	providers []Provider
	cache     Cache
	cacheTTL  time.Duration
	timeout   time.Duration
	logger    *zap.Logger
}

// NewAggregator constructs the gateway aggregator.
func NewAggregator(providers []Provider, cache Cache, cacheTTL, timeout time.Duration, logger *zap.Logger) *Aggregator {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Aggregator{
		providers: providers,
		cache:     cache,
		cacheTTL:  cacheTTL,
		timeout:   timeout,
		logger:    logger,
	}
}

// Fetch returns the merged normalized listings from all providers. A
// provider that fails or times out contributes zero results; Fetch only
// errors when every provider failed and nothing was cached.
func (a *Aggregator) Fetch(ctx context.Context, query Query) ([]domain.Job, error) {
	if jobs, ok := a.fromCache(ctx, query); ok {
		return jobs, nil
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	type result struct {
		provider string
		jobs     []domain.Job
		err      error
	}

	results := make([]result, len(a.providers))
	var wg sync.WaitGroup
	for i, provider := range a.providers {
		wg.Add(1)
		go func(i int, provider Provider) {
			defer wg.Done()
			jobs, err := provider.Fetch(ctx, query)
			results[i] = result{provider: provider.Name(), jobs: jobs, err: err}
		}(i, provider)
	}
	wg.Wait()

	merged := []domain.Job{}
	failures := 0
	var lastErr error
	for _, res := range results {
		if res.err != nil {
			failures++
			lastErr = res.err
			a.logger.Warn("external job provider failed",
				zap.String("provider", res.provider), zap.Error(res.err))
			continue
		}
		merged = append(merged, res.jobs...)
	}

	if len(a.providers) > 0 && failures == len(a.providers) {
		return nil, lastErr
	}

	a.store(ctx, query, merged)
	return merged, nil
}

func (a *Aggregator) fromCache(ctx context.Context, query Query) ([]domain.Job, bool) {
	if a.cache == nil || a.cacheTTL <= 0 {
		return nil, false
	}
	raw, err := a.cache.Get(ctx, cacheKey(query))
	if err != nil || raw == "" {
		return nil, false
	}
	var jobs []domain.Job
	if err := json.Unmarshal([]byte(raw), &jobs); err != nil {
		return nil, false
	}
	return jobs, true
}

func (a *Aggregator) store(ctx context.Context, query Query, jobs []domain.Job) {
	if a.cache == nil || a.cacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(jobs)
	if err != nil {
		return
	}
	if err := a.cache.Set(ctx, cacheKey(query), string(raw), a.cacheTTL); err != nil {
		a.logger.Debug("external job cache write failed", zap.Error(err))
	}
}

func cacheKey(query Query) string {
	if query.Title == "" {
		return cacheKeyPrefix + "all"
	}
	return cacheKeyPrefix + "title:" + query.Title
}
