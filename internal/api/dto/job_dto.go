package dto

import (
	"time"

	"github.com/Ritik-rajput786/internfinder/internal/domain"
)

// CreateJobRequest payload for platform job postings.
type CreateJobRequest struct {
	Title         string           `json:"title"`
	CompanyName   string           `json:"companyName"`
	Location      string           `json:"location"`
	Country       string           `json:"country"`
	Type          domain.JobType   `json:"type"`
	Description   string           `json:"description"`
	Skills        []string         `json:"skills"`
	SalaryDisplay string           `json:"salaryDisplay"`
	ApplyType     domain.ApplyType `json:"applyType"`
	ApplyTarget   string           `json:"applyTarget"`
}

// JobResponse is the unified listing shape for both provenances.
type JobResponse struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	CompanyName   string           `json:"companyName"`
	Location      string           `json:"location"`
	Country       string           `json:"country,omitempty"`
	Type          domain.JobType   `json:"type"`
	Description   string           `json:"description"`
	Skills        []string         `json:"skills"`
	SalaryDisplay string           `json:"salaryDisplay,omitempty"`
	ApplyType     domain.ApplyType `json:"applyType"`
	ApplyTarget   string           `json:"applyTarget,omitempty"`
	SourceName    string           `json:"sourceName,omitempty"`
	IsVerified    bool             `json:"isVerified"`
	CreatedAt     *time.Time       `json:"createdAt,omitempty"`
}

// CompanyResponse mirrors the static directory entry.
type CompanyResponse struct {
	Name       string `json:"name"`
	Industry   string `json:"industry"`
	Logo       string `json:"logo,omitempty"`
	IsVerified bool   `json:"isVerified"`
}
