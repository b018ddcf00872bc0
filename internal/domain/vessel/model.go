// Package vessel holds the vessel payloads managed from the vessels screen.
package vessel

import (
	"time"

	"github.com/marineaxis/marine-axis-admin/internal/domain/validation"
)

// Vessel is a registered vessel as the API represents it.
type Vessel struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	IMO       string    `json:"imo,omitempty"`
	OwnerID   string    `json:"owner_id,omitempty"`
	LengthM   float64   `json:"length_m,omitempty"`
	HomePort  string    `json:"home_port,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Identify is the id accessor wired into the resource store.
func Identify(v Vessel) string { return v.ID }

// CreateInput is the form payload for registering a vessel.
type CreateInput struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	IMO      string  `json:"imo,omitempty"`
	OwnerID  string  `json:"owner_id,omitempty"`
	LengthM  float64 `json:"length_m,omitempty"`
	HomePort string  `json:"home_port,omitempty"`
}

// Validate runs the client-side form checks.
func (in CreateInput) Validate() error {
	var errs validation.Errors
	errs = validation.Required(errs, "name", in.Name)
	errs = validation.Required(errs, "type", in.Type)
	errs = validation.OneOf(errs, "type", in.Type,
		"yacht", "sailboat", "catamaran", "motorboat", "commercial", "other")
	if in.LengthM < 0 {
		errs = append(errs, validation.FieldError{Field: "length_m", Message: "must not be negative"})
	}
	return errs.OrNil()
}
