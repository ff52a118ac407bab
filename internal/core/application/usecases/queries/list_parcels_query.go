package queries

import (
	"errors"

	"parceltrack/internal/pkg/guard"
)

var (
	ErrListParcelsQueryIsNotConstructed = errors.New(
		"ListParcelsQuery must be created via NewListParcelsQuery constructor",
	)
)

// ListParcelsQuery lists parcels visible to the actor with the usual
// request modifiers: searchTerm, field filters, sort, page/limit and
// field projection. Admins see every parcel, senders their own, and
// receivers those addressed to their email.
type ListParcelsQuery struct {
	actor  Actor
	params map[string]string

	guard guard.ConstructorGuard
}

// NewListParcelsQuery creates a scoped listing for actor. params holds
// the raw request query parameters; nil is treated as empty.
func NewListParcelsQuery(actor Actor, params map[string]string) (ListParcelsQuery, error) {
	if params == nil {
		params = map[string]string{}
	}

	return ListParcelsQuery{
		actor:  actor,
		params: params,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListParcelsQuery) Validate() error {
	return q.guard.Validate(ErrListParcelsQueryIsNotConstructed)
}

// Actor returns the requesting identity.
func (q ListParcelsQuery) Actor() Actor {
	return q.actor
}

// Params returns the raw request query parameters.
func (q ListParcelsQuery) Params() map[string]string {
	return q.params
}
