// Package queries contains read operations in the CQRS architecture.
// Query handlers read the database directly through GORM, bypassing the
// aggregate repositories: they never mutate state, and shaping responses
// in SQL keeps the read path cheap.
package queries

import (
	"strings"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"
)

// Actor is the authenticated identity performing a query, as resolved by
// the upstream gateway. Scoped queries use it to decide what is visible.
type Actor struct {
	ID    kernel.UUID
	Role  user.Role
	Email string
}

// NewActor creates a validated Actor with a lowercased email.
func NewActor(id kernel.UUID, role user.Role, email string) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, errs.NewValueIsRequiredError("actorId")
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}

	return Actor{
		ID:    id,
		Role:  role,
		Email: strings.ToLower(strings.TrimSpace(email)),
	}, nil
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == user.RoleAdmin
}
