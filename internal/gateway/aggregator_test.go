package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Ritik-rajput786/internfinder/internal/domain"
)

type fakeProvider struct {
	name  string
	jobs  []domain.Job
	err   error
	calls int
	mu    sync.Mutex
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) Fetch(_ context.Context, _ Query) ([]domain.Job, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	return p.jobs, p.err
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]string)}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[key], nil
}

func (c *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func sampleJob(id string) domain.Job {
	return domain.Job{
		ID:          id,
		Title:       "Engineer",
		ApplyType:   domain.ApplyTypeExternal,
		ApplyTarget: "https://jobs.example.org/" + id,
	}
}

func TestAggregatorMergesAllProviders(t *testing.T) {
	a := NewAggregator([]Provider{
		&fakeProvider{name: "one", jobs: []domain.Job{sampleJob("a")}},
		&fakeProvider{name: "two", jobs: []domain.Job{sampleJob("b"), sampleJob("c")}},
	}, nil, 0, time.Second, zap.NewNop())

	jobs, err := a.Fetch(context.Background(), Query{})
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(jobs) != 3 {
		t.Fatalf("expected 3 merged jobs, got %d", len(jobs))
	}
}

func TestAggregatorAbsorbsPartialFailure(t *testing.T) {
	a := NewAggregator([]Provider{
		&fakeProvider{name: "healthy", jobs: []domain.Job{sampleJob("a")}},
		&fakeProvider{name: "broken", err: errors.New("connection refused")},
	}, nil, 0, time.Second, zap.NewNop())

	jobs, err := a.Fetch(context.Background(), Query{})
	if err != nil {
		t.Fatalf("one healthy provider must be enough: %v", err)
	}
	if len(jobs) != 1 || jobs[0].ID != "a" {
		t.Fatalf("expected the healthy subset, got %v", jobs)
	}
}

func TestAggregatorErrorsWhenAllProvidersFail(t *testing.T) {
	a := NewAggregator([]Provider{
		&fakeProvider{name: "one", err: errors.New("timeout")},
		&fakeProvider{name: "two", err: errors.New("timeout")},
	}, nil, 0, time.Second, zap.NewNop())

	if _, err := a.Fetch(context.Background(), Query{}); err == nil {
		t.Fatal("expected error when every provider failed")
	}
}

func TestAggregatorCacheHitSkipsProviders(t *testing.T) {
	provider := &fakeProvider{name: "one", jobs: []domain.Job{sampleJob("a")}}
	cache := newFakeCache()
	a := NewAggregator([]Provider{provider}, cache, time.Minute, time.Second, zap.NewNop())

	if _, err := a.Fetch(context.Background(), Query{}); err != nil {
		t.Fatalf("first fetch failed: %v", err)
	}
	jobs, err := a.Fetch(context.Background(), Query{})
	if err != nil {
		t.Fatalf("second fetch failed: %v", err)
	}
	if provider.calls != 1 {
		t.Fatalf("cache hit must skip providers, got %d calls", provider.calls)
	}
	if len(jobs) != 1 || jobs[0].ID != "a" {
		t.Fatalf("cached payload corrupted: %v", jobs)
	}
}

func TestAggregatorCacheKeyedByQuery(t *testing.T) {
	cache := newFakeCache()
	a := NewAggregator([]Provider{
		&fakeProvider{name: "one", jobs: []domain.Job{sampleJob("a")}},
	}, cache, time.Minute, time.Second, zap.NewNop())

	if _, err := a.Fetch(context.Background(), Query{Title: "golang"}); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	raw, _ := cache.Get(context.Background(), cacheKeyPrefix+"title:golang")
	if raw == "" {
		t.Fatal("expected a title-scoped cache entry")
	}
	var cached []domain.Job
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		t.Fatalf("cache entry must be JSON: %v", err)
	}
}

func TestAggregatorEmptyProviderSet(t *testing.T) {
	a := NewAggregator(nil, newFakeCache(), time.Minute, time.Second, zap.NewNop())
	jobs, err := a.Fetch(context.Background(), Query{})
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(jobs) != 0 {
		t.Fatalf("expected no jobs, got %v", jobs)
	}
}
