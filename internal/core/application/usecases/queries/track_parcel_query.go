package queries

import (
	"errors"
	"strings"

	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrTrackParcelQueryIsNotConstructed = errors.New(
		"TrackParcelQuery must be created via NewTrackParcelQuery constructor",
	)
)

// TrackParcelQuery looks a parcel up by its public tracking id. Anyone
// holding the tracking id may run it, no actor is required.
type TrackParcelQuery struct {
	trackingID string

	guard guard.ConstructorGuard
}

// NewTrackParcelQuery creates a tracking lookup for the given id.
func NewTrackParcelQuery(trackingID string) (TrackParcelQuery, error) {
	trackingID = strings.TrimSpace(trackingID)
	if trackingID == "" {
		return TrackParcelQuery{}, errs.NewValueIsRequiredError("trackingId")
	}

	return TrackParcelQuery{
		trackingID: trackingID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q TrackParcelQuery) Validate() error {
	return q.guard.Validate(ErrTrackParcelQueryIsNotConstructed)
}

// TrackingID returns the tracking id being looked up.
func (q TrackParcelQuery) TrackingID() string {
	return q.trackingID
}
