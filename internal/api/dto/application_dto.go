package dto

import (
	"time"

	"github.com/Ritik-rajput786/internfinder/internal/domain"
)

// ApplicationResponse is the API view of an application record.
type ApplicationResponse struct {
	ID             string                   `json:"id"`
	JobID          string                   `json:"jobId"`
	FullName       string                   `json:"fullName"`
	Email          string                   `json:"email"`
	Phone          string                   `json:"phone,omitempty"`
	College        string                   `json:"college,omitempty"`
	Degree         string                   `json:"degree,omitempty"`
	CurrentYear    string                   `json:"currentYear,omitempty"`
	Skills         []string                 `json:"skills"`
	Message        string                   `json:"message,omitempty"`
	ResumeFileName string                   `json:"resumeFileName,omitempty"`
	Status         domain.ApplicationStatus `json:"status"`
	CreatedAt      time.Time                `json:"createdAt"`
	CancelledAt    *time.Time               `json:"cancelledAt,omitempty"`
	Job            *JobResponse             `json:"job,omitempty"`
}
