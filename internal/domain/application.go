package domain

import "time"

// ApplicationStatus enumerates lifecycle states for applications.
type ApplicationStatus string

const (
	ApplicationStatusSubmitted ApplicationStatus = "SUBMITTED"
	ApplicationStatusCancelled ApplicationStatus = "CANCELLED"
)

// Application links an applicant to a job with profile fields, a resume
// reference and a lifecycle status. At most one SUBMITTED application may
// exist per (user, job) pair; the transition SUBMITTED -> CANCELLED is
// one-way.
type Application struct {
	ID             string
	JobID          string
	UserID         string
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
	Status         ApplicationStatus
	CreatedAt      time.Time
	CancelledAt    *time.Time

	// Job is the expanded platform job, populated on listing reads.
	Job *Job
}
