package parcel

import (
	"fmt"

	"parceltrack/internal/pkg/errs"
)

// Status represents the lifecycle state of a parcel.
// It implements a state machine with defined transitions to ensure parcels
// follow the correct business workflow.
//
// State transitions:
//
//	REQUESTED ──> APPROVED ──> PICKED_UP ──> IN_TRANSIT ──> OUT_FOR_DELIVERY ──> DELIVERED
//	    │  ▲          │            │             │                │    ▲
//	    │  │          │            └─> RETURNED  └──────┐         │    │
//	    │  └──────────┼────────────────────┘ (re-request)         │    │
//	    │             │                          FAILED_DELIVERY <┘────┤
//	    └─> CANCELLED <┘                              │    │           │
//	                                                  │    └> RETURNED │
//	                                                  └────────────────┘ (retry)
//
// DELIVERED and CANCELLED are terminal. A RETURNED parcel can be
// re-requested; a FAILED_DELIVERY parcel can retry delivery or be returned.
//
// Status is a value object persisted and serialized by its string value,
// which matches the public status vocabulary.
type Status string

const (
	// StatusRequested is the initial status when a sender creates a parcel.
	StatusRequested Status = "requested"

	// StatusApproved indicates an admin accepted the delivery request.
	StatusApproved Status = "approved"

	// StatusPickedUp indicates the parcel was collected from the sender.
	StatusPickedUp Status = "picked_up"

	// StatusInTransit indicates the parcel is moving between facilities.
	StatusInTransit Status = "in_transit"

	// StatusOutForDelivery indicates the parcel is on its final leg.
	StatusOutForDelivery Status = "out_for_delivery"

	// StatusDelivered is a terminal state: the receiver has the parcel.
	StatusDelivered Status = "delivered"

	// StatusCancelled is a terminal state: the request was withdrawn.
	StatusCancelled Status = "cancelled"

	// StatusReturned indicates the parcel went back to the sender.
	// Returned parcels can be re-requested.
	StatusReturned Status = "returned"

	// StatusFailedDelivery indicates a delivery attempt failed.
	// Failed deliveries can retry (out for delivery) or be returned.
	StatusFailedDelivery Status = "failed_delivery"
)

// allowedTransitions is the authoritative business rule for status changes.
// Evaluated once at initialization; any (source, target) pair not listed here
// is invalid, including same-to-same transitions.
var allowedTransitions = map[Status][]Status{
	StatusRequested:      {StatusApproved, StatusCancelled},
	StatusApproved:       {StatusPickedUp, StatusCancelled},
	StatusPickedUp:       {StatusInTransit, StatusReturned},
	StatusInTransit:      {StatusOutForDelivery, StatusFailedDelivery},
	StatusOutForDelivery: {StatusDelivered, StatusFailedDelivery},
	StatusDelivered:      {},
	StatusCancelled:      {},
	StatusReturned:       {StatusRequested},
	StatusFailedDelivery: {StatusOutForDelivery, StatusReturned},
}

// AllStatuses returns every valid status. The order is stable: forward
// lifecycle first, then the terminal and exception states.
func AllStatuses() []Status {
	return []Status{
		StatusRequested,
		StatusApproved,
		StatusPickedUp,
		StatusInTransit,
		StatusOutForDelivery,
		StatusDelivered,
		StatusCancelled,
		StatusReturned,
		StatusFailedDelivery,
	}
}

// Validate checks if the Status value is one of the nine valid statuses.
//
// Returns:
//   - nil if the status is valid
//   - error with details if the status is invalid
//
// This method is used to ensure Status values from external sources
// (e.g., database, API) are valid before use.
func (s Status) Validate() error {
	if _, ok := allowedTransitions[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

// String returns the wire representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0 && s.Validate() == nil
}

// CanTransitionTo reports whether the transition table allows moving from
// this status to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range allowedTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo validates the transition from this status to target and
// returns the new status.
//
// Returns:
//   - (target, nil) when the transition table allows the move
//   - ("", error) otherwise; the error names both the current and the
//     requested status
//
// This method is used by Parcel.TransitionTo to enforce state transitions.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}
	if err := target.Validate(); err != nil {
		return "", err
	}
	if !s.CanTransitionTo(target) {
		return "", errs.NewValueIsInvalidErrorWithCause("status transition",
			fmt.Errorf("cannot transition from %s to %s", s, target))
	}
	return target, nil
}
