package queries

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrGetParcelQueryIsNotConstructed = errors.New(
		"GetParcelQuery must be created via NewGetParcelQuery constructor",
	)
)

// GetParcelQuery retrieves one parcel with its full history. Visibility
// follows ownership: the sender, an account whose email matches the
// receiver snapshot, or an admin.
type GetParcelQuery struct {
	parcelID kernel.UUID
	actor    Actor

	guard guard.ConstructorGuard
}

// NewGetParcelQuery creates a query for one parcel on behalf of actor.
func NewGetParcelQuery(parcelID kernel.UUID, actor Actor) (GetParcelQuery, error) {
	if err := parcelID.Validate(); err != nil {
		return GetParcelQuery{}, err
	}

	return GetParcelQuery{
		parcelID: parcelID,
		actor:    actor,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetParcelQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelQueryIsNotConstructed)
}

// ParcelID returns the requested parcel id.
func (q GetParcelQuery) ParcelID() kernel.UUID {
	return q.parcelID
}

// Actor returns the requesting identity.
func (q GetParcelQuery) Actor() Actor {
	return q.actor
}
