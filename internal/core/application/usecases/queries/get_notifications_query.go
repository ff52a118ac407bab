package queries

import (
	"errors"

	"parceltrack/internal/pkg/guard"
)

var (
	ErrGetNotificationsQueryIsNotConstructed = errors.New(
		"GetNotificationsQuery must be created via NewGetNotificationsQuery constructor",
	)
)

// GetNotificationsQuery projects the latest status event of each parcel
// visible to the actor into a notification feed.
type GetNotificationsQuery struct {
	actor Actor

	guard guard.ConstructorGuard
}

// NewGetNotificationsQuery creates a notification feed query for actor.
func NewGetNotificationsQuery(actor Actor) (GetNotificationsQuery, error) {
	return GetNotificationsQuery{
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrGetNotificationsQueryIsNotConstructed)
}

// Actor returns the requesting identity.
func (q GetNotificationsQuery) Actor() Actor {
	return q.actor
}
