package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/Ritik-rajput786/internfinder/internal/domain"
	"github.com/Ritik-rajput786/internfinder/internal/events"
	"github.com/Ritik-rajput786/internfinder/internal/repository"
	"github.com/Ritik-rajput786/internfinder/internal/storage"
	apperrors "github.com/Ritik-rajput786/internfinder/pkg/util"
)

// ApplicationService owns the application lifecycle: submission with
// duplicate prevention, listing, and the one-way cancel transition.
type ApplicationService struct {
	applications repository.ApplicationRepository
	jobs         repository.JobRepository
	resumes      storage.ResumeStore
	dispatcher   events.Dispatcher
	logger       *zap.Logger
}

// ApplicationDependencies bundles collaborators for the service.
type ApplicationDependencies struct {
	ApplicationRepo repository.ApplicationRepository
	JobRepo         repository.JobRepository
	ResumeStore     storage.ResumeStore
	Dispatcher      events.Dispatcher
	Logger          *zap.Logger
}

// SubmitInput describes an apply payload. ResumeKey must already have been
// accepted by the resume store.
type SubmitInput struct {
	JobID          string
	FullName       string
	Email          string
	Phone          string
	College        string
	Degree         string
	CurrentYear    string
	Skills         []string
	Message        string
	ResumeKey      string
	ResumeFileName string
}

// NewApplicationService constructs the service.
func NewApplicationService(deps ApplicationDependencies) *ApplicationService {
	return &ApplicationService{
		applications: deps.ApplicationRepo,
		jobs:         deps.JobRepo,
		resumes:      deps.ResumeStore,
		dispatcher:   deps.Dispatcher,
		logger:       deps.Logger,
	}
}

// Submit creates a SUBMITTED application for the user. At most one live
// application may exist per (user, job); the storage-level partial unique
// index is the authoritative guard, the FindSubmitted probe just gives a
// cleaner error on the common path. On any failure after the resume was
// stored, the file is removed so no partial state survives.
func (s *ApplicationService) Submit(ctx context.Context, userID string, input SubmitInput) (*domain.Application, error) {
	if strings.TrimSpace(input.JobID) == "" {
		return nil, apperrors.NewValidationError("jobId required", nil)
	}
	if strings.TrimSpace(input.FullName) == "" || strings.TrimSpace(input.Email) == "" {
		return nil, apperrors.NewValidationError("fullName and email required", nil)
	}
	if strings.TrimSpace(input.ResumeKey) == "" {
		return nil, apperrors.NewValidationError("resume required", nil)
	}

	job, err := s.jobs.GetByID(ctx, input.JobID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, s.rollbackResume(ctx, input.ResumeKey, apperrors.NewNotFound("job", nil))
		}
		return nil, s.rollbackResume(ctx, input.ResumeKey, err)
	}
	if job.IsExternal() {
		return nil, s.rollbackResume(ctx, input.ResumeKey,
			apperrors.NewValidationError("this job accepts applications on an external site", nil))
	}

	if _, err := s.applications.FindSubmitted(ctx, userID, job.ID); err == nil {
		return nil, s.rollbackResume(ctx, input.ResumeKey, apperrors.NewDuplicateApplication(job.ID))
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, s.rollbackResume(ctx, input.ResumeKey, err)
	}

	app := &domain.Application{
		JobID:          job.ID,
		UserID:         userID,
		FullName:       strings.TrimSpace(input.FullName),
		Email:          strings.TrimSpace(input.Email),
		Phone:          strings.TrimSpace(input.Phone),
		College:        strings.TrimSpace(input.College),
		Degree:         strings.TrimSpace(input.Degree),
		CurrentYear:    strings.TrimSpace(input.CurrentYear),
		Skills:         input.Skills,
		Message:        strings.TrimSpace(input.Message),
		ResumeKey:      input.ResumeKey,
		ResumeFileName: input.ResumeFileName,
		Status:         domain.ApplicationStatusSubmitted,
	}
	if app.Skills == nil {
		app.Skills = []string{}
	}

	if err := s.applications.Create(ctx, app); err != nil {
		if errors.Is(err, repository.ErrDuplicateSubmitted) {
			// Two concurrent applies for the same pair: the unique index
			// let exactly one through.
			return nil, s.rollbackResume(ctx, input.ResumeKey, apperrors.NewDuplicateApplication(job.ID))
		}
		return nil, s.rollbackResume(ctx, input.ResumeKey, err)
	}

	s.publishEvent(ctx, events.Event{
		Type:   events.EventApplicationSubmitted,
		UserID: userID,
		Payload: events.ApplicationSubmittedPayload{
			ApplicationID: app.ID,
			JobID:         job.ID,
			JobTitle:      job.Title,
		},
	})
	return app, nil
}

// ListMine returns every application owned by the user, newest first, with
// platform jobs expanded. Safe to call repeatedly.
func (s *ApplicationService) ListMine(ctx context.Context, userID string) ([]domain.Application, error) {
	apps, err := s.applications.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if apps == nil {
		apps = []domain.Application{}
	}
	return apps, nil
}

// CancelByApplicationID cancels the user's application identified directly.
func (s *ApplicationService) CancelByApplicationID(ctx context.Context, userID, applicationID string) (*domain.Application, error) {
	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("application", nil)
		}
		return nil, err
	}
	return s.cancel(ctx, userID, app)
}

// CancelByJobID cancels the user's live application for a job. Equivalent
// to CancelByApplicationID when both selectors resolve to the same record.
func (s *ApplicationService) CancelByJobID(ctx context.Context, userID, jobID string) (*domain.Application, error) {
	app, err := s.applications.FindSubmitted(ctx, userID, jobID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("application", nil)
		}
		return nil, err
	}
	return s.cancel(ctx, userID, app)
}

// cancel is the single transition point for SUBMITTED -> CANCELLED.
func (s *ApplicationService) cancel(ctx context.Context, userID string, app *domain.Application) (*domain.Application, error) {
	if app.UserID != userID {
		return nil, apperrors.NewForbidden("application belongs to another user")
	}
	if app.Status != domain.ApplicationStatusSubmitted {
		// Re-cancelling signals stale client state; reject rather than mask.
		return nil, apperrors.NewInvalidState("application is already cancelled")
	}

	cancelled, err := s.applications.MarkCancelled(ctx, app.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// A concurrent cancel won the conditional update.
			return nil, apperrors.NewInvalidState("application is already cancelled")
		}
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:   events.EventApplicationCancelled,
		UserID: userID,
		Payload: events.ApplicationCancelledPayload{
			ApplicationID: cancelled.ID,
			JobID:         cancelled.JobID,
		},
	})
	return cancelled, nil
}

// OpenResume returns the stored resume of the user's own application.
func (s *ApplicationService) OpenResume(ctx context.Context, userID, applicationID string) (io.ReadCloser, string, error) {
	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", apperrors.NewNotFound("application", nil)
		}
		return nil, "", err
	}
	if app.UserID != userID {
		return nil, "", apperrors.NewForbidden("application belongs to another user")
	}
	rc, err := s.resumes.Open(app.ResumeKey)
	if err != nil {
		return nil, "", err
	}
	name := app.ResumeFileName
	if name == "" {
		name = app.ResumeKey
	}
	return rc, name, nil
}

// rollbackResume removes the stored file so a failed apply leaves nothing
// behind, then returns the original error.
func (s *ApplicationService) rollbackResume(ctx context.Context, key string, cause error) error {
	if s.resumes != nil && key != "" {
		if err := s.resumes.Remove(ctx, key); err != nil {
			s.logger.Warn("failed to remove resume after rejected apply",
				zap.String("resume_key", key), zap.Error(err))
		}
	}
	return cause
}

func (s *ApplicationService) publishEvent(ctx context.Context, event events.Event) {
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
