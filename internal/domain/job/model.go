// Package job holds the job-listing payloads managed from the jobs screen.
package job

import (
	"time"

	"github.com/marineaxis/marine-axis-admin/internal/domain/validation"
)

// Job lifecycle states.
const (
	StatusOpen      = "open"
	StatusAssigned  = "assigned"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Job is a marketplace job listing as the API represents it.
type Job struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	CategoryID string    `json:"category_id"`
	ProviderID string    `json:"provider_id,omitempty"`
	Location   string    `json:"location,omitempty"`
	Budget     float64   `json:"budget,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
	UpdatedAt  time.Time `json:"updated_at,omitempty"`
}

// Identify is the id accessor wired into the resource store.
func Identify(j Job) string { return j.ID }

// CreateInput is the form payload for posting a job.
type CreateInput struct {
	Title      string  `json:"title"`
	CategoryID string  `json:"category_id"`
	Location   string  `json:"location,omitempty"`
	Budget     float64 `json:"budget,omitempty"`
}

// Validate runs the client-side form checks.
func (in CreateInput) Validate() error {
	var errs validation.Errors
	errs = validation.Required(errs, "title", in.Title)
	errs = validation.Required(errs, "category_id", in.CategoryID)
	if in.Budget < 0 {
		errs = append(errs, validation.FieldError{Field: "budget", Message: "must not be negative"})
	}
	return errs.OrNil()
}
