package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Ritik-rajput786/internfinder/internal/domain"
)

const remotiveSample = `{
  "job-count": 3,
  "jobs": [
    {
      "id": 101,
      "url": "https://remotive.com/remote-jobs/software-dev/backend-engineer-101",
      "title": "Backend Engineer",
      "company_name": "Remote Co",
      "candidate_required_location": "Worldwide",
      "job_type": "full_time",
      "publication_date": "2024-03-01T09:30:00",
      "salary": "$80k - $100k",
      "description": "Build APIs",
      "tags": ["go", "postgres"]
    },
    {
      "id": 102,
      "url": "",
      "title": "Ghost Listing",
      "company_name": "Nowhere Inc",
      "job_type": "full_time"
    },
    {
      "id": 103,
      "url": "https://remotive.com/remote-jobs/software-dev/intern-103",
      "title": "Engineering Intern",
      "company_name": "Remote Co",
      "job_type": "internship",
      "publication_date": "2024-02-20T12:00:00"
    }
  ]
}`

func TestRemotiveNormalization(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(remotiveSample))
	}))
	defer server.Close()

	provider := NewRemotiveProvider(server.URL)
	jobs, err := provider.Fetch(context.Background(), Query{})
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	// The listing without a usable URL is dropped, not surfaced as an error.
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}

	first := jobs[0]
	if first.ApplyType != domain.ApplyTypeExternal {
		t.Fatalf("apply type must be forced external, got %s", first.ApplyType)
	}
	if first.ApplyTarget == "" {
		t.Fatal("apply target must come from the upstream URL")
	}
	if first.SourceName != "Remotive" {
		t.Fatalf("unexpected source name %q", first.SourceName)
	}
	if first.Type != domain.JobTypeFullTime {
		t.Fatalf("expected FULL_TIME, got %s", first.Type)
	}
	if first.SalaryDisplay != "$80k - $100k" {
		t.Fatalf("salary not carried over: %q", first.SalaryDisplay)
	}
	if len(first.Skills) != 2 {
		t.Fatalf("tags must map to skills, got %v", first.Skills)
	}
	if first.CreatedAt.IsZero() {
		t.Fatal("publication date must be parsed")
	}

	intern := jobs[1]
	if intern.Type != domain.JobTypeInternship {
		t.Fatalf("internship mapping failed, got %s", intern.Type)
	}
	if intern.Skills == nil || len(intern.Skills) != 0 {
		t.Fatalf("missing tags must default to empty slice, got %v", intern.Skills)
	}
	if intern.SalaryDisplay != "" {
		t.Fatalf("missing salary must stay empty, got %q", intern.SalaryDisplay)
	}
}

func TestRemotiveUpstreamErrorPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	provider := NewRemotiveProvider(server.URL)
	if _, err := provider.Fetch(context.Background(), Query{}); err == nil {
		t.Fatal("expected error on non-200 upstream response")
	}
}

func TestRemotivePushesTitleSearch(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("search")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"jobs": []}`))
	}))
	defer server.Close()

	provider := NewRemotiveProvider(server.URL)
	if _, err := provider.Fetch(context.Background(), Query{Title: "golang"}); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if gotQuery != "golang" {
		t.Fatalf("expected search pushdown, got %q", gotQuery)
	}
}
