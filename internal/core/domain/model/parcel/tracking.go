package parcel

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"

	"parceltrack/internal/pkg/errs"
)

// MaxTrackingIDAttempts bounds the generate-and-check retry loop used on the
// create path. Exhausting it fails the whole create operation with an
// internal error instead of looping forever on collisions.
const MaxTrackingIDAttempts = 10

// trackingIDPattern matches the public tracking identifier format:
// TRK-<8 digit date>-<6 digit random suffix>.
var trackingIDPattern = regexp.MustCompile(`^TRK-\d{8}-\d{6}$`)

// TrackingID is the public-facing unique identifier of a parcel, independent
// of its internal id. Immutable after creation.
type TrackingID struct {
	value string
}

// GenerateTrackingID produces a tracking ID of the form TRK-YYYYMMDD-XXXXXX
// where the date portion comes from at and the suffix is a uniformly random
// six-digit number (100000-999999).
//
// Generation alone does not guarantee global uniqueness; callers must check
// the result against storage and retry up to MaxTrackingIDAttempts times.
func GenerateTrackingID(at time.Time) TrackingID {
	suffix := 100000 + rand.IntN(900000)
	return TrackingID{value: fmt.Sprintf("TRK-%s-%d", at.Format("20060102"), suffix)}
}

// TrackingIDFromString parses and validates a tracking ID from its string
// form. Used when reconstructing parcels from persistence or handling
// tracking requests.
func TrackingIDFromString(s string) (TrackingID, error) {
	id := TrackingID{value: s}
	if err := id.Validate(); err != nil {
		return TrackingID{}, err
	}
	return id, nil
}

// IsValidTrackingID reports whether s matches the tracking ID format.
func IsValidTrackingID(s string) bool {
	return trackingIDPattern.MatchString(s)
}

// String returns the tracking ID text, e.g. "TRK-20260828-483920".
func (t TrackingID) String() string {
	return t.value
}

// IsEqual compares two tracking IDs for equality.
func (t TrackingID) IsEqual(other TrackingID) bool {
	return t.value == other.value
}

// Validate checks the tracking ID against the required format.
// The zero value is invalid.
func (t TrackingID) Validate() error {
	if !IsValidTrackingID(t.value) {
		return errs.NewValueIsInvalidErrorWithCause("trackingId",
			fmt.Errorf("%q does not match TRK-YYYYMMDD-XXXXXX", t.value))
	}
	return nil
}
