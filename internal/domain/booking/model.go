// Package booking holds the booking payloads managed from the bookings
// screen.
package booking

import (
	"time"

	"github.com/marineaxis/marine-axis-admin/internal/domain/validation"
)

// Booking lifecycle states.
const (
	StatusRequested = "requested"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Booking is a service booking as the API represents it.
type Booking struct {
	ID            string    `json:"id"`
	JobID         string    `json:"job_id"`
	ProviderID    string    `json:"provider_id"`
	CustomerEmail string    `json:"customer_email"`
	ScheduledAt   time.Time `json:"scheduled_at,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
	UpdatedAt     time.Time `json:"updated_at,omitempty"`
}

// Identify is the id accessor wired into the resource store.
func Identify(b Booking) string { return b.ID }

// CreateInput is the form payload for recording a booking.
type CreateInput struct {
	JobID         string    `json:"job_id"`
	ProviderID    string    `json:"provider_id"`
	CustomerEmail string    `json:"customer_email"`
	ScheduledAt   time.Time `json:"scheduled_at,omitempty"`
}

// Validate runs the client-side form checks.
func (in CreateInput) Validate() error {
	var errs validation.Errors
	errs = validation.Required(errs, "job_id", in.JobID)
	errs = validation.Required(errs, "provider_id", in.ProviderID)
	errs = validation.Required(errs, "customer_email", in.CustomerEmail)
	errs = validation.Email(errs, "customer_email", in.CustomerEmail)
	return errs.OrNil()
}
