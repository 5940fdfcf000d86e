package gateway

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Ritik-rajput786/internfinder/internal/domain"
)

// Query narrows an upstream fetch where the provider supports it. Providers
// are free to ignore fields they cannot push down; the aggregator's caller
// re-filters post-normalization anyway.
type Query struct {
	Title string
}

// Provider fetches listings from one upstream job API and normalizes them
// into the canonical Job shape. Implementations must force
// ApplyType=EXTERNAL and drop records without a usable apply URL.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, query Query) ([]domain.Job, error)
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 10 * time.Second}
}

// mapJobType folds heterogeneous upstream type labels into the two
// supported kinds. Internship markers win; everything else is full-time.
func mapJobType(labels ...string) domain.JobType {
	for _, label := range labels {
		if strings.Contains(strings.ToLower(label), "intern") {
			return domain.JobTypeInternship
		}
	}
	return domain.JobTypeFullTime
}
