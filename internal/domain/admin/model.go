// Package admin holds the staff account payloads managed from the admins
// screen.
package admin

import (
	"fmt"
	"strings"
	"time"

	"github.com/marineaxis/marine-axis-admin/internal/domain/validation"
)

// Admin is a staff account as the API represents it.
type Admin struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Identify is the id accessor wired into the resource store.
func Identify(a Admin) string { return a.ID }

// CreateInput is the form payload for creating a staff account.
type CreateInput struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate runs the client-side form checks.
func (in CreateInput) Validate() error {
	var errs validation.Errors
	errs = validation.Required(errs, "email", in.Email)
	errs = validation.Email(errs, "email", in.Email)
	errs = validation.Required(errs, "name", in.Name)
	errs = validation.Required(errs, "password", in.Password)
	errs = validation.Password(errs, "password", in.Password)
	errs = validation.OneOf(errs, "role", in.Role, "admin", "superadmin")
	return errs.OrNil()
}

// UpdateInput is the form payload for editing a staff account.
type UpdateInput struct {
	Name string `json:"name,omitempty"`
	Role string `json:"role,omitempty"`
}

// Validate runs the client-side form checks.
func (in UpdateInput) Validate() error {
	var errs validation.Errors
	errs = validation.OneOf(errs, "role", in.Role, "admin", "superadmin")
	return errs.OrNil()
}

// SelfDeleteGuard returns a delete guard that refuses to remove the acting
// principal's own account. Wired into the admins store so the transport
// delete is never reached for a self-delete.
func SelfDeleteGuard(principalEmail string) func(Admin) error {
	return func(a Admin) error {
		if strings.EqualFold(a.Email, principalEmail) {
			return fmt.Errorf("you cannot delete your own account")
		}
		return nil
	}
}
