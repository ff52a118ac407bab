package parcel

import (
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

// MaxNoteLen bounds the free-form note attached to a history entry.
const MaxNoteLen = 500

// EntryKind distinguishes lifecycle transitions from administrative notes in
// the status history ledger.
type EntryKind string

const (
	// EntryKindTransition records a status change.
	EntryKindTransition EntryKind = "transition"

	// EntryKindAdminNote records an administrative action that repeats the
	// current status without changing it, such as blocking or courier
	// assignment.
	EntryKindAdminNote EntryKind = "admin_note"
)

// Validate checks the entry kind against the known kinds.
func (k EntryKind) Validate() error {
	switch k {
	case EntryKindTransition, EntryKindAdminNote:
		return nil
	default:
		return errs.NewValueIsRequiredError("entry kind")
	}
}

// StatusLogEntry is one immutable record in a parcel's append-only status
// history. Entries are never edited or removed after being appended.
type StatusLogEntry struct {
	status    Status
	kind      EntryKind
	timestamp time.Time
	updatedBy kernel.UUID
	location  string
	note      string
}

// NewStatusLogEntry creates a validated history record.
// The note is bounded by MaxNoteLen; location and note are optional.
func NewStatusLogEntry(status Status, kind EntryKind, timestamp time.Time, updatedBy kernel.UUID, location, note string) (StatusLogEntry, error) {
	if err := status.Validate(); err != nil {
		return StatusLogEntry{}, err
	}
	if err := kind.Validate(); err != nil {
		return StatusLogEntry{}, err
	}
	if timestamp.IsZero() {
		return StatusLogEntry{}, errs.NewValueIsRequiredError("timestamp")
	}
	if err := updatedBy.Validate(); err != nil {
		return StatusLogEntry{}, errs.NewValueIsRequiredError("updatedBy")
	}
	if len(note) > MaxNoteLen {
		return StatusLogEntry{}, errs.NewValueIsOutOfRangeError("note length", len(note), 0, MaxNoteLen)
	}

	return StatusLogEntry{
		status:    status,
		kind:      kind,
		timestamp: timestamp,
		updatedBy: updatedBy,
		location:  location,
		note:      note,
	}, nil
}

// Status returns the status recorded by the entry.
func (e StatusLogEntry) Status() Status { return e.status }

// Kind reports whether the entry is a transition or an administrative note.
func (e StatusLogEntry) Kind() EntryKind { return e.kind }

// Timestamp returns when the entry was recorded.
func (e StatusLogEntry) Timestamp() time.Time { return e.timestamp }

// UpdatedBy returns the actor who caused the entry.
func (e StatusLogEntry) UpdatedBy() kernel.UUID { return e.updatedBy }

// Location returns the optional location annotation.
func (e StatusLogEntry) Location() string { return e.location }

// Note returns the optional free-form note.
func (e StatusLogEntry) Note() string { return e.note }
