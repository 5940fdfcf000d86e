package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Ritik-rajput786/internfinder/internal/domain"
)

const arbeitnowSample = `{
  "data": [
    {
      "slug": "golang-developer-berlin-201",
      "company_name": "Berlin Tech",
      "title": "Golang Developer",
      "description": "Ship services",
      "remote": false,
      "url": "https://www.arbeitnow.com/jobs/companies/berlin-tech/golang-developer-201",
      "tags": ["golang"],
      "job_types": ["full time"],
      "location": "Berlin",
      "created_at": 1709280000
    },
    {
      "slug": "working-student-202",
      "company_name": "Remote GmbH",
      "title": "Working Student Internship",
      "remote": true,
      "url": "https://www.arbeitnow.com/jobs/companies/remote-gmbh/working-student-202",
      "job_types": ["internship"],
      "location": ""
    },
    {
      "slug": "broken-203",
      "company_name": "NoLink AG",
      "title": "Unreachable Role",
      "url": ""
    }
  ]
}`

func TestArbeitnowNormalization(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(arbeitnowSample))
	}))
	defer server.Close()

	provider := NewArbeitnowProvider(server.URL)
	jobs, err := provider.Fetch(context.Background(), Query{})
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs after dropping the URL-less entry, got %d", len(jobs))
	}

	first := jobs[0]
	if first.ApplyType != domain.ApplyTypeExternal || first.ApplyTarget == "" {
		t.Fatalf("external apply contract violated: %s %q", first.ApplyType, first.ApplyTarget)
	}
	if first.Location != "Berlin" {
		t.Fatalf("unexpected location %q", first.Location)
	}
	if first.CreatedAt.IsZero() {
		t.Fatal("unix created_at must be parsed")
	}

	second := jobs[1]
	if second.Type != domain.JobTypeInternship {
		t.Fatalf("internship mapping failed, got %s", second.Type)
	}
	if second.Location != "Remote" {
		t.Fatalf("remote fallback location failed, got %q", second.Location)
	}
	if second.CreatedAt.IsZero() == false {
		t.Fatal("missing created_at must stay zero")
	}
}
