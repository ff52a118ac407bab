package parcel

import (
	"errors"
	"fmt"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

var (
	// ErrParcelIsNotConstructed is returned when a Parcel instance was not
	// created through NewParcel or RestoreParcel. This ensures all parcels
	// are properly validated.
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel or RestoreParcel constructor")
)

// DefaultCancelNote is recorded when a sender cancels without a reason.
const DefaultCancelNote = "Cancelled by sender"

// Parcel is the aggregate root of the delivery domain. It owns the status
// state machine, the append-only history ledger and the admin-controlled
// block flag, and guards every mutation behind its invariants.
//
// Parcel follows these invariants:
//   - Status changes only via the allowed-transition table
//   - Every status change appends exactly one history entry
//   - History entries are never edited or removed
//   - A blocked parcel rejects transitions and detail edits
//   - Courier assignment is write-once
//   - Can only be created through NewParcel or RestoreParcel
//
// The struct uses private fields to ensure encapsulation; reads go through
// getters and mutations through validated methods.
type Parcel struct {
	id         kernel.UUID
	trackingID TrackingID
	senderID   kernel.UUID

	receiver     Receiver
	details      Details
	deliveryInfo DeliveryInfo
	pricing      Pricing

	currentStatus Status
	history       []StatusLogEntry

	isBlocked   bool
	isCancelled bool
	personnel   *DeliveryPersonnel

	createdAt time.Time
	updatedAt time.Time

	// statusAtLoad is the status read from storage, used by the repository
	// for a conditional write so a concurrent transition loses cleanly
	// instead of overwriting.
	statusAtLoad Status

	// committedHistory is how many history entries storage already holds;
	// entries past this index are pending insertion.
	committedHistory int

	isConstructed bool
}

// NewParcel creates a new Parcel in the REQUESTED status. This is the only
// way to create a valid new parcel, ensuring all business invariants hold
// from the start.
//
// Creation appends the initial REQUESTED history entry authored by the
// sender, so the ledger records every status the parcel has ever held.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - trackingID: generated public tracking identifier
//   - senderID: the owning sender's account id
//   - receiver, details, deliveryInfo: validated value objects
//   - pricing: the computed fee breakdown
//   - now: creation timestamp
//
// Returns:
//   - *Parcel: the created parcel if all validations pass
//   - error: validation error if any parameter is invalid
func NewParcel(
	id kernel.UUID,
	trackingID TrackingID,
	senderID kernel.UUID,
	receiver Receiver,
	details Details,
	deliveryInfo DeliveryInfo,
	pricing Pricing,
	now time.Time,
) (*Parcel, error) {
	p := &Parcel{
		receiver:      receiver,
		details:       details,
		deliveryInfo:  deliveryInfo,
		pricing:       pricing,
		currentStatus: StatusRequested,
		statusAtLoad:  StatusRequested,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setTrackingID(trackingID),
		p.setSenderID(senderID),
	); err != nil {
		return nil, err
	}

	entry, err := NewStatusLogEntry(StatusRequested, EntryKindTransition, now, senderID, "", "Parcel delivery requested")
	if err != nil {
		return nil, err
	}
	p.history = append(p.history, entry)

	return p, nil
}

// RestoreParcel reconstructs a Parcel from persisted state without running
// creation-time rules. The caller is the storage adapter; the supplied
// values are assumed to have been validated when first written.
//
// The restored aggregate remembers the loaded status and history length so
// the repository can persist only the delta on the next update.
func RestoreParcel(
	id kernel.UUID,
	trackingID TrackingID,
	senderID kernel.UUID,
	receiver Receiver,
	details Details,
	deliveryInfo DeliveryInfo,
	pricing Pricing,
	currentStatus Status,
	history []StatusLogEntry,
	isBlocked bool,
	isCancelled bool,
	personnel *DeliveryPersonnel,
	createdAt time.Time,
	updatedAt time.Time,
) *Parcel {
	return &Parcel{
		id:               id,
		trackingID:       trackingID,
		senderID:         senderID,
		receiver:         receiver,
		details:          details,
		deliveryInfo:     deliveryInfo,
		pricing:          pricing,
		currentStatus:    currentStatus,
		history:          history,
		isBlocked:        isBlocked,
		isCancelled:      isCancelled,
		personnel:        personnel,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
		statusAtLoad:     currentStatus,
		committedHistory: len(history),
		isConstructed:    true,
	}
}

// Validate ensures the Parcel was constructed through NewParcel or
// RestoreParcel, preventing direct struct instantiation from bypassing
// the invariants.
func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}
	return nil
}

// IsEqual compares two parcels by their unique identifiers.
func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the parcel's unique identifier.
func (p *Parcel) ID() kernel.UUID { return p.id }

// TrackingID returns the public tracking identifier.
func (p *Parcel) TrackingID() TrackingID { return p.trackingID }

// SenderID returns the owning sender's account id.
func (p *Parcel) SenderID() kernel.UUID { return p.senderID }

// Receiver returns the receiver snapshot.
func (p *Parcel) Receiver() Receiver { return p.receiver }

// Details returns the physical attributes.
func (p *Parcel) Details() Details { return p.details }

// DeliveryInfo returns the delivery preferences.
func (p *Parcel) DeliveryInfo() DeliveryInfo { return p.deliveryInfo }

// Pricing returns the fee breakdown.
func (p *Parcel) Pricing() Pricing { return p.pricing }

// Status returns the current lifecycle status.
func (p *Parcel) Status() Status { return p.currentStatus }

// History returns the append-only status ledger, oldest first.
// The returned slice is a copy; mutating it does not affect the parcel.
func (p *Parcel) History() []StatusLogEntry {
	history := make([]StatusLogEntry, len(p.history))
	copy(history, p.history)
	return history
}

// LatestEntry returns the most recent history entry.
// The second return value is false when the history is empty.
func (p *Parcel) LatestEntry() (StatusLogEntry, bool) {
	if len(p.history) == 0 {
		return StatusLogEntry{}, false
	}
	return p.history[len(p.history)-1], true
}

// IsBlocked reports whether an admin has blocked the parcel.
func (p *Parcel) IsBlocked() bool { return p.isBlocked }

// IsCancelled reports whether the parcel was cancelled.
func (p *Parcel) IsCancelled() bool { return p.isCancelled }

// Personnel returns the assigned courier, nil when unassigned.
func (p *Parcel) Personnel() *DeliveryPersonnel { return p.personnel }

// CreatedAt returns the creation timestamp.
func (p *Parcel) CreatedAt() time.Time { return p.createdAt }

// UpdatedAt returns the last mutation timestamp.
func (p *Parcel) UpdatedAt() time.Time { return p.updatedAt }

// StatusAtLoad returns the status the parcel had when loaded from storage.
// The repository conditions its status write on this value.
func (p *Parcel) StatusAtLoad() Status { return p.statusAtLoad }

// UncommittedEntries returns the history entries appended since the parcel
// was loaded, oldest first. The repository inserts exactly these rows.
func (p *Parcel) UncommittedEntries() []StatusLogEntry {
	entries := make([]StatusLogEntry, len(p.history)-p.committedHistory)
	copy(entries, p.history[p.committedHistory:])
	return entries
}

// TransitionTo moves the parcel to target and appends one history entry.
//
// This method enforces the following business rules:
//   - A blocked parcel cannot transition
//   - The move must be allowed by the transition table
//   - Transitioning to CANCELLED also sets the cancelled flag
//
// Parameters:
//   - target: the requested status
//   - actor: who performs the change
//   - location, note: optional annotations for the history entry
//   - now: the change timestamp
//
// Returns:
//   - nil on success, with currentStatus equal to target
//   - error if the parcel is blocked or the transition is not allowed
func (p *Parcel) TransitionTo(target Status, actor kernel.UUID, location, note string, now time.Time) error {
	if p.isBlocked {
		return errs.NewValueIsInvalidErrorWithCause("parcel state",
			fmt.Errorf("parcel %s is blocked", p.trackingID))
	}

	newStatus, err := p.currentStatus.TransitionTo(target)
	if err != nil {
		return err
	}

	entry, err := NewStatusLogEntry(newStatus, EntryKindTransition, now, actor, location, note)
	if err != nil {
		return err
	}

	p.currentStatus = newStatus
	if newStatus == StatusCancelled {
		p.isCancelled = true
	}
	p.history = append(p.history, entry)
	p.updatedAt = now
	return nil
}

// Cancel withdraws the delivery request on behalf of the sender.
//
// Cancellation is only possible before dispatch, from REQUESTED or
// APPROVED, and fails on an already-cancelled parcel. An empty reason is
// replaced with DefaultCancelNote. The blocked flag does not prevent
// cancellation.
func (p *Parcel) Cancel(actor kernel.UUID, reason string, now time.Time) error {
	if p.isCancelled {
		return errs.NewValueIsInvalidErrorWithCause("parcel state",
			fmt.Errorf("parcel %s is already cancelled", p.trackingID))
	}
	if p.currentStatus != StatusRequested && p.currentStatus != StatusApproved {
		return errs.NewValueIsInvalidErrorWithCause("parcel state",
			fmt.Errorf("cannot cancel a parcel in %s status", p.currentStatus))
	}

	if reason == "" {
		reason = DefaultCancelNote
	}

	entry, err := NewStatusLogEntry(StatusCancelled, EntryKindTransition, now, actor, "", reason)
	if err != nil {
		return err
	}

	p.currentStatus = StatusCancelled
	p.isCancelled = true
	p.history = append(p.history, entry)
	p.updatedAt = now
	return nil
}

// ConfirmDelivery marks the parcel DELIVERED on behalf of the receiver.
// It requires the parcel to be OUT_FOR_DELIVERY; identity resolution for
// unregistered receivers happens in the use case, which passes the actor
// and an annotated note here.
func (p *Parcel) ConfirmDelivery(actor kernel.UUID, note string, now time.Time) error {
	if p.currentStatus != StatusOutForDelivery {
		return errs.NewValueIsInvalidErrorWithCause("parcel state",
			fmt.Errorf("cannot confirm delivery of a parcel in %s status", p.currentStatus))
	}

	return p.TransitionTo(StatusDelivered, actor, "", note, now)
}

// SetBlocked toggles the admin block flag and appends an administrative
// note entry repeating the current status.
//
// The toggle is deliberately unguarded: blocking an already-blocked parcel
// succeeds and appends another entry. The note records the action and the
// optional reason.
func (p *Parcel) SetBlocked(blocked bool, actor kernel.UUID, reason string, now time.Time) error {
	action := "unblocked"
	if blocked {
		action = "blocked"
	}
	note := fmt.Sprintf("Parcel %s by admin", action)
	if reason != "" {
		note = fmt.Sprintf("%s: %s", note, reason)
	}

	entry, err := NewStatusLogEntry(p.currentStatus, EntryKindAdminNote, now, actor, "", note)
	if err != nil {
		return err
	}

	p.isBlocked = blocked
	p.history = append(p.history, entry)
	p.updatedAt = now
	return nil
}

// AssignPersonnel assigns a courier to the parcel and appends an
// administrative note entry repeating the current status.
//
// This method enforces the following business rules:
//   - Assignment is write-once; reassignment fails
//   - No assignment once the parcel is DELIVERED, CANCELLED or RETURNED
func (p *Parcel) AssignPersonnel(personnel DeliveryPersonnel, actor kernel.UUID, note string, now time.Time) error {
	if p.personnel != nil {
		return errs.NewValueIsInvalidErrorWithCause("parcel state",
			fmt.Errorf("delivery personnel already assigned to parcel %s", p.trackingID))
	}
	switch p.currentStatus {
	case StatusDelivered, StatusCancelled, StatusReturned:
		return errs.NewValueIsInvalidErrorWithCause("parcel state",
			fmt.Errorf("cannot assign delivery personnel to a parcel in %s status", p.currentStatus))
	}

	if note == "" {
		note = fmt.Sprintf("Delivery personnel %s assigned", personnel.Name())
	}

	entry, err := NewStatusLogEntry(p.currentStatus, EntryKindAdminNote, now, actor, "", note)
	if err != nil {
		return err
	}

	p.personnel = &personnel
	p.history = append(p.history, entry)
	p.updatedAt = now
	return nil
}

// CanEditDetails reports whether detail edits are currently allowed:
// only before dispatch (REQUESTED or APPROVED) and only while the parcel
// is neither blocked nor cancelled.
func (p *Parcel) CanEditDetails() bool {
	if p.isBlocked || p.isCancelled {
		return false
	}
	return p.currentStatus == StatusRequested || p.currentStatus == StatusApproved
}

// ApplyDetailsUpdate merges partial updates into the receiver, details and
// delivery-info snapshots. Nil patches leave their section untouched; only
// supplied leaf fields overwrite current values.
//
// Detail edits never append history. The returned flag reports whether the
// update touched fee inputs (physical details or urgency), in which case
// the caller must recompute pricing before persisting.
func (p *Parcel) ApplyDetailsUpdate(receiverPatch *ReceiverPatch, detailsPatch *DetailsPatch, deliveryPatch *DeliveryInfoPatch, now time.Time) (bool, error) {
	if !p.CanEditDetails() {
		return false, errs.NewValueIsInvalidErrorWithCause("parcel state",
			fmt.Errorf("cannot edit details of a parcel in %s status", p.describeEditBlock()))
	}

	receiver := p.receiver
	details := p.details
	deliveryInfo := p.deliveryInfo
	var err error

	if receiverPatch != nil {
		if receiver, err = receiver.Apply(*receiverPatch); err != nil {
			return false, err
		}
	}
	if detailsPatch != nil {
		if details, err = details.Apply(*detailsPatch); err != nil {
			return false, err
		}
	}
	if deliveryPatch != nil {
		if deliveryInfo, err = deliveryInfo.Apply(*deliveryPatch); err != nil {
			return false, err
		}
	}

	pricingAffected := detailsPatch != nil ||
		(deliveryPatch != nil && deliveryPatch.Urgency != nil)

	p.receiver = receiver
	p.details = details
	p.deliveryInfo = deliveryInfo
	p.updatedAt = now
	return pricingAffected, nil
}

// SetPricing replaces the fee breakdown after a recalculation.
func (p *Parcel) SetPricing(pricing Pricing, now time.Time) {
	p.pricing = pricing
	p.updatedAt = now
}

func (p *Parcel) describeEditBlock() string {
	switch {
	case p.isCancelled:
		return "cancelled"
	case p.isBlocked:
		return "blocked"
	default:
		return p.currentStatus.String()
	}
}

// setID validates and sets the parcel's unique identifier.
// This is a private method used only during construction.
func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

// setTrackingID validates and sets the public tracking identifier.
// This is a private method used only during construction.
func (p *Parcel) setTrackingID(trackingID TrackingID) error {
	if err := trackingID.Validate(); err != nil {
		return err
	}
	p.trackingID = trackingID
	return nil
}

// setSenderID validates and sets the owning sender's id.
// This is a private method used only during construction.
func (p *Parcel) setSenderID(senderID kernel.UUID) error {
	if err := senderID.Validate(); err != nil {
		return errs.NewValueIsRequiredError("senderId")
	}
	p.senderID = senderID
	return nil
}
