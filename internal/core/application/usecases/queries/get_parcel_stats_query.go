package queries

import (
	"errors"

	"parceltrack/internal/pkg/guard"
)

var (
	ErrGetParcelStatsQueryIsNotConstructed = errors.New(
		"GetParcelStatsQuery must be created via NewGetParcelStatsQuery constructor",
	)
)

// GetParcelStatsQuery aggregates dashboard statistics over the full
// parcel collection. Admin-only.
type GetParcelStatsQuery struct {
	actor Actor

	guard guard.ConstructorGuard
}

// NewGetParcelStatsQuery creates a statistics query for actor.
func NewGetParcelStatsQuery(actor Actor) (GetParcelStatsQuery, error) {
	return GetParcelStatsQuery{
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetParcelStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelStatsQueryIsNotConstructed)
}

// Actor returns the requesting identity.
func (q GetParcelStatsQuery) Actor() Actor {
	return q.actor
}
