package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ritik-rajput786/internfinder/internal/domain"
)

// JobFilter captures listing search parameters. Matching is
// case-insensitive substring containment.
type JobFilter struct {
	Title    string
	Location string
	Country  string
}

// JobRepository encapsulates platform job persistence.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	GetByID(ctx context.Context, id string) (*domain.Job, error)
	List(ctx context.Context, filter JobFilter) ([]domain.Job, error)
}

type jobRepository struct {
	pool *pgxpool.Pool
}

// NewJobRepository instantiates repository.
func NewJobRepository(pool *pgxpool.Pool) JobRepository {
	return &jobRepository{pool: pool}
}

const jobColumns = `id, title, company_name, location, country, job_type, description,
               skills, salary_display, apply_type, apply_target, source_name,
               is_verified, posted_by, created_at`

func (r *jobRepository) Create(ctx context.Context, job *domain.Job) error {
	const query = `
        INSERT INTO jobs (title, company_name, location, country, job_type, description,
                          skills, salary_display, apply_type, apply_target, source_name,
                          is_verified, posted_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		job.Title,
		job.CompanyName,
		job.Location,
		job.Country,
		job.Type,
		job.Description,
		job.Skills,
		job.SalaryDisplay,
		job.ApplyType,
		job.ApplyTarget,
		job.SourceName,
		job.IsVerified,
		job.PostedByID,
	).Scan(&job.ID, &job.CreatedAt)
}

func (r *jobRepository) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	query := fmt.Sprintf(`SELECT %s FROM jobs WHERE id=$1`, jobColumns)
	var job domain.Job
	if err := r.pool.QueryRow(ctx, query, id).Scan(jobScanTargets(&job)...); err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) List(ctx context.Context, filter JobFilter) ([]domain.Job, error) {
	clauses := []string{"1=1"}
	args := []any{}

	addLike := func(column, value string) {
		if strings.TrimSpace(value) == "" {
			return
		}
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(value))+"%")
		clauses = append(clauses, fmt.Sprintf("LOWER(%s) LIKE $%d", column, len(args)))
	}
	addLike("title", filter.Title)
	addLike("location", filter.Location)
	addLike("country", filter.Country)

	query := fmt.Sprintf(`SELECT %s FROM jobs WHERE %s ORDER BY created_at DESC`,
		jobColumns, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJobs(rows)
}

func jobScanTargets(job *domain.Job) []any {
	return []any{
		&job.ID,
		&job.Title,
		&job.CompanyName,
		&job.Location,
		&job.Country,
		&job.Type,
		&job.Description,
		&job.Skills,
		&job.SalaryDisplay,
		&job.ApplyType,
		&job.ApplyTarget,
		&job.SourceName,
		&job.IsVerified,
		&job.PostedByID,
		&job.CreatedAt,
	}
}

func scanJobs(rows pgx.Rows) ([]domain.Job, error) {
	var result []domain.Job
	for rows.Next() {
		var job domain.Job
		if err := rows.Scan(jobScanTargets(&job)...); err != nil {
			return nil, err
		}
		result = append(result, job)
	}
	return result, rows.Err()
}
