// Package parcel provides domain entities and business logic for the parcel
// lifecycle. It implements the Parcel aggregate root with its status state
// machine, the append-only status-history ledger, and the value objects a
// delivery request is composed of (receiver snapshot, physical details,
// delivery preferences, pricing, assigned personnel, tracking identifier).
//
// The package follows Domain-Driven Design principles:
//   - Parcel is the aggregate root; every mutation goes through its methods
//   - Value objects are immutable and validated at construction
//   - Status transitions are validated against a fixed transition table
//   - History entries are only ever appended, never edited or removed
//
// Administrative actions (block/unblock, personnel assignment) append
// history entries tagged EntryKindAdminNote that repeat the current status,
// keeping the one-entry-per-transition invariant of the state machine
// separate from annotations.
package parcel
