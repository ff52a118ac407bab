package queries

import (
	"errors"

	"parceltrack/internal/pkg/guard"
)

var (
	ErrListUsersQueryIsNotConstructed = errors.New(
		"ListUsersQuery must be created via NewListUsersQuery constructor",
	)
)

// ListUsersQuery lists user accounts. Admin-only.
type ListUsersQuery struct {
	actor  Actor
	params map[string]string

	guard guard.ConstructorGuard
}

// NewListUsersQuery creates a user listing for actor. params holds the
// raw request query parameters; nil is treated as empty.
func NewListUsersQuery(actor Actor, params map[string]string) (ListUsersQuery, error) {
	if params == nil {
		params = map[string]string{}
	}

	return ListUsersQuery{
		actor:  actor,
		params: params,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListUsersQuery) Validate() error {
	return q.guard.Validate(ErrListUsersQueryIsNotConstructed)
}

// Actor returns the requesting identity.
func (q ListUsersQuery) Actor() Actor {
	return q.actor
}

// Params returns the raw request query parameters.
func (q ListUsersQuery) Params() map[string]string {
	return q.params
}
