package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
)

// UserRepository defines the read contract for account entities. Accounts
// are created and mutated by the upstream auth service; this service only
// loads them for authorization and receiver resolution.
type UserRepository interface {
	// Get retrieves a user by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetByEmail retrieves a user by its lowercased email address.
	// Used to resolve a confirming receiver to a registered account.
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}
