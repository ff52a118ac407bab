package parcel

import (
	"fmt"
	"time"

	"parceltrack/internal/pkg/errs"
)

// MaxInstructionsLen bounds the optional delivery instructions text.
const MaxInstructionsLen = 1000

// Urgency is the delivery speed tier. It scales the fee via the urgency
// multiplier table in the fee calculator.
type Urgency string

const (
	UrgencyStandard Urgency = "standard"
	UrgencyExpress  Urgency = "express"
	UrgencyUrgent   Urgency = "urgent"
)

// AllUrgencies returns every valid urgency tier.
func AllUrgencies() []Urgency {
	return []Urgency{UrgencyStandard, UrgencyExpress, UrgencyUrgent}
}

// Validate checks the urgency against the known tiers.
func (u Urgency) Validate() error {
	for _, known := range AllUrgencies() {
		if u == known {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("deliveryInfo.urgency",
		fmt.Errorf("%q is not a valid urgency", string(u)))
}

// DeliveryInfo holds the sender's delivery preferences: an optional
// preferred delivery date, optional instructions, and the urgency tier.
type DeliveryInfo struct {
	preferredDate *time.Time
	instructions  string
	urgency       Urgency
}

// NewDeliveryInfo creates validated delivery preferences.
// An empty urgency defaults to UrgencyStandard. The future-date rule for the
// preferred delivery date applies at creation time only and is enforced by
// the create operation, not here, so restored historical parcels stay valid.
func NewDeliveryInfo(preferredDate *time.Time, instructions string, urgency Urgency) (DeliveryInfo, error) {
	if urgency == "" {
		urgency = UrgencyStandard
	}
	if err := urgency.Validate(); err != nil {
		return DeliveryInfo{}, err
	}

	if len(instructions) > MaxInstructionsLen {
		return DeliveryInfo{}, errs.NewValueIsOutOfRangeError("deliveryInfo.instructions length",
			len(instructions), 0, MaxInstructionsLen)
	}

	return DeliveryInfo{
		preferredDate: preferredDate,
		instructions:  instructions,
		urgency:       urgency,
	}, nil
}

// PreferredDate returns the optional preferred delivery date.
func (d DeliveryInfo) PreferredDate() *time.Time { return d.preferredDate }

// Instructions returns the optional delivery instructions.
func (d DeliveryInfo) Instructions() string { return d.instructions }

// Urgency returns the delivery speed tier.
func (d DeliveryInfo) Urgency() Urgency { return d.urgency }

// DeliveryInfoPatch carries a partial delivery-preferences update.
type DeliveryInfoPatch struct {
	PreferredDate *time.Time
	Instructions  *string
	Urgency       *Urgency
}

// Apply merges the patch over the delivery info and revalidates the result.
func (d DeliveryInfo) Apply(patch DeliveryInfoPatch) (DeliveryInfo, error) {
	merged := d
	if patch.PreferredDate != nil {
		merged.preferredDate = patch.PreferredDate
	}
	if patch.Instructions != nil {
		merged.instructions = *patch.Instructions
	}
	if patch.Urgency != nil {
		merged.urgency = *patch.Urgency
	}
	return NewDeliveryInfo(merged.preferredDate, merged.instructions, merged.urgency)
}
