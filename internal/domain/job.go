package domain

import "time"

// JobType enumerates supported position kinds.
type JobType string

const (
	JobTypeFullTime   JobType = "FULL_TIME"
	JobTypeInternship JobType = "INTERNSHIP"
)

// ApplyType distinguishes jobs applied to through the platform from jobs
// that redirect the applicant to an external site.
type ApplyType string

const (
	ApplyTypeInternal ApplyType = "INTERNAL"
	ApplyTypeExternal ApplyType = "EXTERNAL"
)

// Job is a position listing. Two provenances exist: platform jobs are owned
// and persisted by this service; external jobs are fetched live from
// third-party providers, never persisted, and always carry
// ApplyType=EXTERNAL with a non-empty ApplyTarget.
type Job struct {
	ID            string
	Title         string
	CompanyName   string
	Location      string
	Country       string
	Type          JobType
	Description   string
	Skills        []string
	SalaryDisplay string
	ApplyType     ApplyType
	ApplyTarget   string
	SourceName    string
	IsVerified    bool
	PostedByID    *string
	CreatedAt     time.Time
}

// IsExternal reports whether applying happens off-platform.
func (j *Job) IsExternal() bool {
	return j.ApplyType == ApplyTypeExternal
}
