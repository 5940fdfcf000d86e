package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Ritik-rajput786/internfinder/internal/domain"
)

const remotiveTimeLayout = "2006-01-02T15:04:05"

// remotiveJob mirrors one entry of the Remotive remote-jobs payload.
type remotiveJob struct {
	ID              int64    `json:"id"`
	URL             string   `json:"url"`
	Title           string   `json:"title"`
	CompanyName     string   `json:"company_name"`
	Location        string   `json:"candidate_required_location"`
	JobType         string   `json:"job_type"`
	PublicationDate string   `json:"publication_date"`
	Salary          string   `json:"salary"`
	Description     string   `json:"description"`
	Tags            []string `json:"tags"`
}

type remotiveResponse struct {
	Jobs []remotiveJob `json:"jobs"`
}

// RemotiveProvider normalizes listings from the Remotive public API.
type RemotiveProvider struct {
	baseURL string
	client  *http.Client
}

// NewRemotiveProvider constructs the provider.
func NewRemotiveProvider(baseURL string) *RemotiveProvider {
	return &RemotiveProvider{baseURL: baseURL, client: newHTTPClient()}
}

// Name identifies the upstream source.
func (p *RemotiveProvider) Name() string {
	return "Remotive"
}

// Fetch queries the upstream and maps each entry into the canonical shape.
// Records without a usable listing URL are dropped, not surfaced as errors.
func (p *RemotiveProvider) Fetch(ctx context.Context, query Query) ([]domain.Job, error) {
	endpoint := p.baseURL
	if strings.TrimSpace(query.Title) != "" {
		endpoint += "?search=" + url.QueryEscape(query.Title)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remotive: unexpected status %d", resp.StatusCode)
	}

	var payload remotiveResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("remotive: decode response: %w", err)
	}

	jobs := make([]domain.Job, 0, len(payload.Jobs))
	for _, entry := range payload.Jobs {
		if strings.TrimSpace(entry.URL) == "" {
			continue
		}
		job := domain.Job{
			ID:            "remotive-" + strconv.FormatInt(entry.ID, 10),
			Title:         entry.Title,
			CompanyName:   entry.CompanyName,
			Location:      entry.Location,
			Country:       entry.Location,
			Type:          mapJobType(entry.JobType, entry.Title),
			Description:   entry.Description,
			Skills:        entry.Tags,
			SalaryDisplay: entry.Salary,
			ApplyType:     domain.ApplyTypeExternal,
			ApplyTarget:   entry.URL,
			SourceName:    p.Name(),
		}
		if job.Skills == nil {
			job.Skills = []string{}
		}
		if ts, err := time.Parse(remotiveTimeLayout, entry.PublicationDate); err == nil {
			job.CreatedAt = ts
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}
