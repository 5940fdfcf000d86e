package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ritik-rajput786/internfinder/internal/domain"
)

// ErrDuplicateSubmitted is returned when the partial unique index on
// (user_id, job_id, status=SUBMITTED) rejects an insert. The index, not
// this check, is what makes concurrent double-submits safe.
var ErrDuplicateSubmitted = errors.New("application already submitted for this job")

// ApplicationRepository encapsulates application ledger persistence.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	GetByID(ctx context.Context, id string) (*domain.Application, error)
	FindSubmitted(ctx context.Context, userID, jobID string) (*domain.Application, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Application, error)
	MarkCancelled(ctx context.Context, id string) (*domain.Application, error)
}

type applicationRepository struct {
	pool *pgxpool.Pool
}

// NewApplicationRepository instantiates repository.
func NewApplicationRepository(pool *pgxpool.Pool) ApplicationRepository {
	return &applicationRepository{pool: pool}
}

const applicationColumns = `id, job_id, user_id, full_name, email, phone, college, degree,
               current_year, skills, message, resume_key, resume_file_name, status,
               created_at, cancelled_at`

func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) error {
	const query = `
        INSERT INTO applications (job_id, user_id, full_name, email, phone, college, degree,
                                  current_year, skills, message, resume_key, resume_file_name, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query,
		app.JobID,
		app.UserID,
		app.FullName,
		app.Email,
		app.Phone,
		app.College,
		app.Degree,
		app.CurrentYear,
		app.Skills,
		app.Message,
		app.ResumeKey,
		app.ResumeFileName,
		app.Status,
	).Scan(&app.ID, &app.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateSubmitted
		}
		return err
	}
	return nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id=$1`
	var app domain.Application
	if err := r.pool.QueryRow(ctx, query, id).Scan(applicationScanTargets(&app)...); err != nil {
		return nil, err
	}
	return &app, nil
}

// FindSubmitted returns the live application for a (user, job) pair, if any.
func (r *applicationRepository) FindSubmitted(ctx context.Context, userID, jobID string) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + `
        FROM applications WHERE user_id=$1 AND job_id=$2 AND status='SUBMITTED'`
	var app domain.Application
	if err := r.pool.QueryRow(ctx, query, userID, jobID).Scan(applicationScanTargets(&app)...); err != nil {
		return nil, err
	}
	return &app, nil
}

// ListByUser returns every application owned by the user, newest first,
// with the referenced platform job expanded when it still exists.
func (r *applicationRepository) ListByUser(ctx context.Context, userID string) ([]domain.Application, error) {
	const query = `
        SELECT a.id, a.job_id, a.user_id, a.full_name, a.email, a.phone, a.college, a.degree,
               a.current_year, a.skills, a.message, a.resume_key, a.resume_file_name, a.status,
               a.created_at, a.cancelled_at,
               j.id, j.title, j.company_name, j.location, j.country, j.job_type, j.description,
               j.skills, j.salary_display, j.apply_type, j.apply_target, j.source_name,
               j.is_verified, j.posted_by, j.created_at
        FROM applications a
        LEFT JOIN jobs j ON j.id = a.job_id
        WHERE a.user_id=$1
        ORDER BY a.created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Application
	for rows.Next() {
		var app domain.Application
		var (
			jobID         *string
			title         *string
			companyName   *string
			location      *string
			country       *string
			jobType       *domain.JobType
			description   *string
			skills        []string
			salaryDisplay *string
			applyType     *domain.ApplyType
			applyTarget   *string
			sourceName    *string
			isVerified    *bool
			postedBy      *string
			createdAt     *time.Time
		)
		targets := applicationScanTargets(&app)
		targets = append(targets,
			&jobID, &title, &companyName, &location, &country, &jobType, &description,
			&skills, &salaryDisplay, &applyType, &applyTarget, &sourceName,
			&isVerified, &postedBy, &createdAt,
		)
		if err := rows.Scan(targets...); err != nil {
			return nil, err
		}
		if jobID != nil {
			app.Job = &domain.Job{
				ID:            *jobID,
				Title:         deref(title),
				CompanyName:   deref(companyName),
				Location:      deref(location),
				Country:       deref(country),
				Description:   deref(description),
				Skills:        skills,
				SalaryDisplay: deref(salaryDisplay),
				ApplyTarget:   deref(applyTarget),
				SourceName:    deref(sourceName),
				PostedByID:    postedBy,
			}
			if jobType != nil {
				app.Job.Type = *jobType
			}
			if applyType != nil {
				app.Job.ApplyType = *applyType
			}
			if isVerified != nil {
				app.Job.IsVerified = *isVerified
			}
			if createdAt != nil {
				app.Job.CreatedAt = *createdAt
			}
		}
		result = append(result, app)
	}
	return result, rows.Err()
}

// MarkCancelled flips a SUBMITTED application to CANCELLED. The status
// predicate makes concurrent cancels race-safe: exactly one caller gets the
// row back, the other sees pgx.ErrNoRows.
func (r *applicationRepository) MarkCancelled(ctx context.Context, id string) (*domain.Application, error) {
	query := `
        UPDATE applications SET status='CANCELLED', cancelled_at=NOW()
        WHERE id=$1 AND status='SUBMITTED'
        RETURNING ` + applicationColumns
	var app domain.Application
	if err := r.pool.QueryRow(ctx, query, id).Scan(applicationScanTargets(&app)...); err != nil {
		return nil, err
	}
	return &app, nil
}

func applicationScanTargets(app *domain.Application) []any {
	return []any{
		&app.ID,
		&app.JobID,
		&app.UserID,
		&app.FullName,
		&app.Email,
		&app.Phone,
		&app.College,
		&app.Degree,
		&app.CurrentYear,
		&app.Skills,
		&app.Message,
		&app.ResumeKey,
		&app.ResumeFileName,
		&app.Status,
		&app.CreatedAt,
		&app.CancelledAt,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
