package events

import (
	"time"

	"github.com/Ritik-rajput786/internfinder/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered       EventType = "user_registered"
	EventJobPosted            EventType = "job_posted"
	EventApplicationSubmitted EventType = "application_submitted"
	EventApplicationCancelled EventType = "application_cancelled"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// JobPostedPayload payload.
type JobPostedPayload struct {
	JobID       string           `json:"job_id"`
	Title       string           `json:"title"`
	CompanyName string           `json:"company_name"`
	Type        domain.JobType   `json:"type"`
	ApplyType   domain.ApplyType `json:"apply_type"`
}

// ApplicationSubmittedPayload payload.
type ApplicationSubmittedPayload struct {
	ApplicationID string `json:"application_id"`
	JobID         string `json:"job_id"`
	JobTitle      string `json:"job_title"`
}

// ApplicationCancelledPayload payload.
type ApplicationCancelledPayload struct {
	ApplicationID string `json:"application_id"`
	JobID         string `json:"job_id"`
}
