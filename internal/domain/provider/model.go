// Package provider holds the service-provider payloads managed from the
// providers and approvals screens.
package provider

import (
	"time"

	"github.com/marineaxis/marine-axis-admin/internal/domain/validation"
)

// Approval states a provider moves through.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Provider is a marine-services provider as the API represents it.
type Provider struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	CompanyName string    `json:"company_name"`
	Phone       string    `json:"phone,omitempty"`
	Location    string    `json:"location,omitempty"`
	Services    []string  `json:"services,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

// Identify is the id accessor wired into the resource store.
func Identify(p Provider) string { return p.ID }

// CreateInput is the form payload for registering a provider.
type CreateInput struct {
	Email       string   `json:"email"`
	CompanyName string   `json:"company_name"`
	Phone       string   `json:"phone,omitempty"`
	Location    string   `json:"location,omitempty"`
	Services    []string `json:"services,omitempty"`
}

// Validate runs the client-side form checks.
func (in CreateInput) Validate() error {
	var errs validation.Errors
	errs = validation.Required(errs, "email", in.Email)
	errs = validation.Email(errs, "email", in.Email)
	errs = validation.Required(errs, "company_name", in.CompanyName)
	return errs.OrNil()
}

// StatusUpdate is the approvals-screen payload.
type StatusUpdate struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// Validate runs the client-side form checks.
func (in StatusUpdate) Validate() error {
	var errs validation.Errors
	errs = validation.Required(errs, "status", in.Status)
	errs = validation.OneOf(errs, "status", in.Status, StatusPending, StatusApproved, StatusRejected)
	return errs.OrNil()
}
