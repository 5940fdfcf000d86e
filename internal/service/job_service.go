package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/Ritik-rajput786/internfinder/internal/domain"
	"github.com/Ritik-rajput786/internfinder/internal/events"
	"github.com/Ritik-rajput786/internfinder/internal/gateway"
	"github.com/Ritik-rajput786/internfinder/internal/repository"
	apperrors "github.com/Ritik-rajput786/internfinder/pkg/util"
)

// ExternalFetcher is the gateway surface JobService depends on.
type ExternalFetcher interface {
	Fetch(ctx context.Context, query gateway.Query) ([]domain.Job, error)
}

// JobService merges platform jobs with best-effort external listings.
type JobService struct {
	jobs       repository.JobRepository
	external   ExternalFetcher
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// JobDependencies bundles collaborators for the service.
type JobDependencies struct {
	JobRepo    repository.JobRepository
	External   ExternalFetcher
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// JobFilter narrows listings; matching is case-insensitive substring
// containment, applied uniformly to both provenances.
type JobFilter struct {
	Title    string
	Location string
	Country  string
}

// JobCreateInput describes a platform job posting payload.
type JobCreateInput struct {
	Title         string
	CompanyName   string
	Location      string
	Country       string
	Type          domain.JobType
	Description   string
	Skills        []string
	SalaryDisplay string
	ApplyType     domain.ApplyType
	ApplyTarget   string
}

// NewJobService constructs the service.
func NewJobService(deps JobDependencies) *JobService {
	return &JobService{
		jobs:       deps.JobRepo,
		external:   deps.External,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// List returns platform and external jobs as one merged sequence. External
// fetch failures degrade to zero external results and are never surfaced.
func (s *JobService) List(ctx context.Context, filter JobFilter) ([]domain.Job, error) {
	platform, err := s.jobs.List(ctx, repository.JobFilter{
		Title:    filter.Title,
		Location: filter.Location,
		Country:  filter.Country,
	})
	if err != nil {
		return nil, err
	}

	var external []domain.Job
	if s.external != nil {
		fetched, err := s.external.Fetch(ctx, gateway.Query{Title: filter.Title})
		if err != nil {
			s.logger.Warn("external job fetch failed; serving platform jobs only", zap.Error(err))
		} else {
			external = filterJobs(fetched, filter)
		}
	}

	return mergeJobs(platform, external), nil
}

// ListExternal returns external listings only. With no platform subset to
// fall back on, a total gateway failure surfaces as UpstreamUnavailable.
func (s *JobService) ListExternal(ctx context.Context, filter JobFilter) ([]domain.Job, error) {
	if s.external == nil {
		return []domain.Job{}, nil
	}
	fetched, err := s.external.Fetch(ctx, gateway.Query{Title: filter.Title})
	if err != nil {
		return nil, apperrors.NewUpstreamUnavailable(err)
	}
	jobs := filterJobs(fetched, filter)
	return sortByRecency(jobs), nil
}

// Get returns a platform job by id. External jobs have no stable identity
// across requests and are not addressable here.
func (s *JobService) Get(ctx context.Context, id string) (*domain.Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("job", nil)
		}
		return nil, err
	}
	return job, nil
}

// Create persists a platform job posted by an authenticated user.
func (s *JobService) Create(ctx context.Context, userID string, input JobCreateInput) (*domain.Job, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.CompanyName) == "" {
		return nil, apperrors.NewValidationError("title and companyName required", nil)
	}
	applyType := input.ApplyType
	if applyType == "" {
		applyType = domain.ApplyTypeInternal
	}
	if applyType == domain.ApplyTypeExternal && strings.TrimSpace(input.ApplyTarget) == "" {
		return nil, apperrors.NewValidationError("applyTarget required for external apply type", nil)
	}
	jobType := input.Type
	if jobType == "" {
		jobType = domain.JobTypeFullTime
	}

	job := &domain.Job{
		Title:         strings.TrimSpace(input.Title),
		CompanyName:   strings.TrimSpace(input.CompanyName),
		Location:      strings.TrimSpace(input.Location),
		Country:       strings.TrimSpace(input.Country),
		Type:          jobType,
		Description:   strings.TrimSpace(input.Description),
		Skills:        input.Skills,
		SalaryDisplay: strings.TrimSpace(input.SalaryDisplay),
		ApplyType:     applyType,
		ApplyTarget:   strings.TrimSpace(input.ApplyTarget),
		SourceName:    "InternFinder",
		PostedByID:    &userID,
	}
	if job.Skills == nil {
		job.Skills = []string{}
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:   events.EventJobPosted,
		UserID: userID,
		Payload: events.JobPostedPayload{
			JobID:       job.ID,
			Title:       job.Title,
			CompanyName: job.CompanyName,
			Type:        job.Type,
			ApplyType:   job.ApplyType,
		},
	})
	return job, nil
}

// filterJobs applies case-insensitive substring filters post-normalization
// so both provenances are matched the same way.
func filterJobs(jobs []domain.Job, filter JobFilter) []domain.Job {
	title := strings.ToLower(strings.TrimSpace(filter.Title))
	location := strings.ToLower(strings.TrimSpace(filter.Location))
	country := strings.ToLower(strings.TrimSpace(filter.Country))
	if title == "" && location == "" && country == "" {
		return jobs
	}

	result := make([]domain.Job, 0, len(jobs))
	for _, job := range jobs {
		if title != "" && !strings.Contains(strings.ToLower(job.Title), title) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(job.Location), location) {
			continue
		}
		if country != "" && !strings.Contains(strings.ToLower(job.Country), country) {
			continue
		}
		result = append(result, job)
	}
	return result
}

// mergeJobs concatenates the two provenances and orders by recency. No
// dedup across sources: identity is not comparable between them.
func mergeJobs(platform, external []domain.Job) []domain.Job {
	merged := make([]domain.Job, 0, len(platform)+len(external))
	merged = append(merged, platform...)
	merged = append(merged, external...)
	return sortByRecency(merged)
}

// sortByRecency orders newest first; entries without a timestamp sort after
// timestamped ones, keeping their upstream relative order.
func sortByRecency(jobs []domain.Job) []domain.Job {
	sort.SliceStable(jobs, func(i, j int) bool {
		ti, tj := jobs[i].CreatedAt, jobs[j].CreatedAt
		if ti.IsZero() {
			return false
		}
		if tj.IsZero() {
			return true
		}
		return ti.After(tj)
	})
	return jobs
}

func (s *JobService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
