package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/Ritik-rajput786/internfinder/internal/domain"
	"github.com/Ritik-rajput786/internfinder/internal/repository"
	apperrors "github.com/Ritik-rajput786/internfinder/pkg/util"
)

// fakeApplicationRepo emulates the Postgres ledger including the partial
// unique index on (user_id, job_id, status=SUBMITTED).
type fakeApplicationRepo struct {
	mu   sync.Mutex
	apps map[string]*domain.Application
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: make(map[string]*domain.Application)}
}

func (r *fakeApplicationRepo) Create(_ context.Context, app *domain.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.apps {
		if existing.UserID == app.UserID && existing.JobID == app.JobID &&
			existing.Status == domain.ApplicationStatusSubmitted {
			return repository.ErrDuplicateSubmitted
		}
	}
	app.ID = uuid.NewString()
	clone := *app
	r.apps[app.ID] = &clone
	return nil
}

func (r *fakeApplicationRepo) GetByID(_ context.Context, id string) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *app
	return &clone, nil
}

func (r *fakeApplicationRepo) FindSubmitted(_ context.Context, userID, jobID string) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, app := range r.apps {
		if app.UserID == userID && app.JobID == jobID && app.Status == domain.ApplicationStatusSubmitted {
			clone := *app
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeApplicationRepo) ListByUser(_ context.Context, userID string) ([]domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Application
	for _, app := range r.apps {
		if app.UserID == userID {
			result = append(result, *app)
		}
	}
	return result, nil
}

func (r *fakeApplicationRepo) MarkCancelled(_ context.Context, id string) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok || app.Status != domain.ApplicationStatusSubmitted {
		return nil, pgx.ErrNoRows
	}
	app.Status = domain.ApplicationStatusCancelled
	clone := *app
	return &clone, nil
}

type fakeJobRepo struct {
	jobs map[string]*domain.Job
}

func (r *fakeJobRepo) Create(_ context.Context, job *domain.Job) error {
	job.ID = uuid.NewString()
	r.jobs[job.ID] = job
	return nil
}

func (r *fakeJobRepo) GetByID(_ context.Context, id string) (*domain.Job, error) {
	job, ok := r.jobs[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return job, nil
}

func (r *fakeJobRepo) List(_ context.Context, _ repository.JobFilter) ([]domain.Job, error) {
	var result []domain.Job
	for _, job := range r.jobs {
		result = append(result, *job)
	}
	return result, nil
}

// fakeResumeStore records which keys were removed so rollback behavior is
// observable.
type fakeResumeStore struct {
	mu      sync.Mutex
	removed []string
}

func (s *fakeResumeStore) Save(_ context.Context, fileName, _ string, _ int64, _ io.Reader) (string, error) {
	if !strings.HasSuffix(strings.ToLower(fileName), ".pdf") {
		return "", apperrors.NewUnsupportedFileType("resume must be a PDF file")
	}
	return uuid.NewString() + ".pdf", nil
}

func (s *fakeResumeStore) Open(_ string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("%PDF-1.4")), nil
}

func (s *fakeResumeStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removed = append(s.removed, key)
	return nil
}

func newTestApplicationService(t *testing.T) (*ApplicationService, *fakeApplicationRepo, *fakeJobRepo, *fakeResumeStore) {
	t.Helper()
	appRepo := newFakeApplicationRepo()
	jobRepo := &fakeJobRepo{jobs: make(map[string]*domain.Job)}
	resumes := &fakeResumeStore{}
	svc := NewApplicationService(ApplicationDependencies{
		ApplicationRepo: appRepo,
		JobRepo:         jobRepo,
		ResumeStore:     resumes,
		Logger:          zap.NewNop(),
	})
	return svc, appRepo, jobRepo, resumes
}

func seedJob(jobRepo *fakeJobRepo, applyType domain.ApplyType) *domain.Job {
	job := &domain.Job{
		ID:          uuid.NewString(),
		Title:       "Backend Intern",
		CompanyName: "Zoho",
		ApplyType:   applyType,
	}
	if applyType == domain.ApplyTypeExternal {
		job.ApplyTarget = "https://example.org/apply"
	}
	jobRepo.jobs[job.ID] = job
	return job
}

func submitInput(jobID string) SubmitInput {
	return SubmitInput{
		JobID:     jobID,
		FullName:  "Test Student",
		Email:     "student@example.com",
		ResumeKey: uuid.NewString() + ".pdf",
	}
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var de *apperrors.DomainError
	if !errors.As(err, &de) {
		t.Fatalf("expected DomainError, got %v", err)
	}
	return de.Code
}

func TestSubmitCancelReapplyLifecycle(t *testing.T) {
	svc, _, jobRepo, _ := newTestApplicationService(t)
	job := seedJob(jobRepo, domain.ApplyTypeInternal)
	ctx := context.Background()
	userID := uuid.NewString()

	app, err := svc.Submit(ctx, userID, submitInput(job.ID))
	if err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	if app.Status != domain.ApplicationStatusSubmitted {
		t.Fatalf("expected SUBMITTED, got %s", app.Status)
	}

	if _, err := svc.Submit(ctx, userID, submitInput(job.ID)); domainCode(t, err) != "DUPLICATE_APPLICATION" {
		t.Fatalf("expected DUPLICATE_APPLICATION, got %v", err)
	}

	cancelled, err := svc.CancelByApplicationID(ctx, userID, app.ID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != domain.ApplicationStatusCancelled {
		t.Fatalf("expected CANCELLED, got %s", cancelled.Status)
	}

	// Re-applying after cancellation creates a fresh record.
	second, err := svc.Submit(ctx, userID, submitInput(job.ID))
	if err != nil {
		t.Fatalf("re-apply failed: %v", err)
	}
	if second.ID == app.ID {
		t.Fatal("re-apply must create a new record")
	}
}

func TestSubmitRejectsExternalJob(t *testing.T) {
	svc, _, jobRepo, resumes := newTestApplicationService(t)
	job := seedJob(jobRepo, domain.ApplyTypeExternal)

	input := submitInput(job.ID)
	_, err := svc.Submit(context.Background(), uuid.NewString(), input)
	if domainCode(t, err) != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED, got %v", err)
	}
	if len(resumes.removed) != 1 || resumes.removed[0] != input.ResumeKey {
		t.Fatalf("expected resume %q to be rolled back, removed=%v", input.ResumeKey, resumes.removed)
	}
}

func TestSubmitUnknownJobRollsBackResume(t *testing.T) {
	svc, _, _, resumes := newTestApplicationService(t)

	input := submitInput(uuid.NewString())
	_, err := svc.Submit(context.Background(), uuid.NewString(), input)
	if domainCode(t, err) != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
	if len(resumes.removed) != 1 {
		t.Fatalf("expected resume rollback, removed=%v", resumes.removed)
	}
}

func TestConcurrentSubmitsSingleWinner(t *testing.T) {
	svc, appRepo, jobRepo, _ := newTestApplicationService(t)
	job := seedJob(jobRepo, domain.ApplyTypeInternal)
	userID := uuid.NewString()

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Submit(context.Background(), userID, submitInput(job.ID))
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		}
	}
	if successes != 1 {
		t.Fatalf("expected exactly 1 successful submit, got %d", successes)
	}

	submitted := 0
	for _, app := range appRepo.apps {
		if app.Status == domain.ApplicationStatusSubmitted {
			submitted++
		}
	}
	if submitted != 1 {
		t.Fatalf("expected exactly 1 SUBMITTED row, got %d", submitted)
	}
}

func TestCancelByJobMatchesCancelByApplication(t *testing.T) {
	svc, _, jobRepo, _ := newTestApplicationService(t)
	job := seedJob(jobRepo, domain.ApplyTypeInternal)
	ctx := context.Background()
	userID := uuid.NewString()

	app, err := svc.Submit(ctx, userID, submitInput(job.ID))
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	cancelled, err := svc.CancelByJobID(ctx, userID, job.ID)
	if err != nil {
		t.Fatalf("cancel by job failed: %v", err)
	}
	if cancelled.ID != app.ID {
		t.Fatalf("cancel by job resolved %s, want %s", cancelled.ID, app.ID)
	}

	// The other entry point now sees the already-cancelled record.
	if _, err := svc.CancelByApplicationID(ctx, userID, app.ID); domainCode(t, err) != "INVALID_STATE" {
		t.Fatalf("expected INVALID_STATE, got %v", err)
	}
}

func TestCancelIsNotIdempotent(t *testing.T) {
	svc, _, jobRepo, _ := newTestApplicationService(t)
	job := seedJob(jobRepo, domain.ApplyTypeInternal)
	ctx := context.Background()
	userID := uuid.NewString()

	app, err := svc.Submit(ctx, userID, submitInput(job.ID))
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := svc.CancelByApplicationID(ctx, userID, app.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if _, err := svc.CancelByApplicationID(ctx, userID, app.ID); domainCode(t, err) != "INVALID_STATE" {
		t.Fatalf("expected INVALID_STATE on re-cancel, got %v", err)
	}
}

func TestCancelOwnershipEnforced(t *testing.T) {
	svc, _, jobRepo, _ := newTestApplicationService(t)
	job := seedJob(jobRepo, domain.ApplyTypeInternal)
	ctx := context.Background()

	app, err := svc.Submit(ctx, uuid.NewString(), submitInput(job.ID))
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := svc.CancelByApplicationID(ctx, uuid.NewString(), app.ID); domainCode(t, err) != "FORBIDDEN" {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}
}

func TestCancelUnknownSelectorNotFound(t *testing.T) {
	svc, _, _, _ := newTestApplicationService(t)
	ctx := context.Background()
	userID := uuid.NewString()

	if _, err := svc.CancelByApplicationID(ctx, userID, uuid.NewString()); domainCode(t, err) != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
	if _, err := svc.CancelByJobID(ctx, userID, uuid.NewString()); domainCode(t, err) != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestListMineIsolation(t *testing.T) {
	svc, _, jobRepo, _ := newTestApplicationService(t)
	jobA := seedJob(jobRepo, domain.ApplyTypeInternal)
	jobB := seedJob(jobRepo, domain.ApplyTypeInternal)
	ctx := context.Background()
	alice := uuid.NewString()
	bob := uuid.NewString()

	if _, err := svc.Submit(ctx, alice, submitInput(jobA.ID)); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := svc.Submit(ctx, bob, submitInput(jobB.ID)); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	apps, err := svc.ListMine(ctx, alice)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(apps) != 1 {
		t.Fatalf("expected 1 application, got %d", len(apps))
	}
	if apps[0].UserID != alice {
		t.Fatalf("listing leaked another user's application")
	}
}
