package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Ritik-rajput786/internfinder/internal/domain"
)

// arbeitnowJob mirrors one entry of the Arbeitnow job-board payload.
type arbeitnowJob struct {
	Slug        string   `json:"slug"`
	CompanyName string   `json:"company_name"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Remote      bool     `json:"remote"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags"`
	JobTypes    []string `json:"job_types"`
	Location    string   `json:"location"`
	CreatedAt   int64    `json:"created_at"`
}

type arbeitnowResponse struct {
	Data []arbeitnowJob `json:"data"`
}

// ArbeitnowProvider normalizes listings from the Arbeitnow public API.
type ArbeitnowProvider struct {
	baseURL string
	client  *http.Client
}

// NewArbeitnowProvider constructs the provider.
func NewArbeitnowProvider(baseURL string) *ArbeitnowProvider {
	return &ArbeitnowProvider{baseURL: baseURL, client: newHTTPClient()}
}

// Name identifies the upstream source.
func (p *ArbeitnowProvider) Name() string {
	return "Arbeitnow"
}

// Fetch queries the upstream and maps each entry into the canonical shape.
func (p *ArbeitnowProvider) Fetch(ctx context.Context, _ Query) ([]domain.Job, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arbeitnow: unexpected status %d", resp.StatusCode)
	}

	var payload arbeitnowResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("arbeitnow: decode response: %w", err)
	}

	jobs := make([]domain.Job, 0, len(payload.Data))
	for _, entry := range payload.Data {
		if strings.TrimSpace(entry.URL) == "" {
			continue
		}
		location := entry.Location
		if location == "" && entry.Remote {
			location = "Remote"
		}
		typeLabels := append([]string{entry.Title}, entry.JobTypes...)
		job := domain.Job{
			ID:          "arbeitnow-" + entry.Slug,
			Title:       entry.Title,
			CompanyName: entry.CompanyName,
			Location:    location,
			Type:        mapJobType(typeLabels...),
			Description: entry.Description,
			Skills:      entry.Tags,
			ApplyType:   domain.ApplyTypeExternal,
			ApplyTarget: entry.URL,
			SourceName:  p.Name(),
		}
		if job.Skills == nil {
			job.Skills = []string{}
		}
		if entry.CreatedAt > 0 {
			job.CreatedAt = time.Unix(entry.CreatedAt, 0).UTC()
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}
