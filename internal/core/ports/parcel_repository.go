package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
)

// ParcelRepository defines the persistence contract for parcel aggregates.
// History entries live in a child table and are written append-only in the
// same transaction as the aggregate row.
type ParcelRepository interface {
	// Add persists a new parcel aggregate, including its initial history
	// entry. Fails if the tracking ID already exists.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists changes to an existing parcel aggregate. The status
	// write is conditioned on the status the aggregate was loaded with;
	// a concurrent transition makes Update fail with a version conflict
	// instead of overwriting.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// Get retrieves a parcel by its unique identifier with full history.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetByTrackingID retrieves a parcel by its public tracking identifier
	// with full history.
	GetByTrackingID(ctx context.Context, trackingID parcel.TrackingID) (*parcel.Parcel, error)

	// ExistsByTrackingID reports whether a parcel with the tracking ID
	// exists. Used by the bounded retry loop during tracking-ID generation.
	ExistsByTrackingID(ctx context.Context, trackingID parcel.TrackingID) (bool, error)

	// Delete hard-deletes a parcel and its history entries.
	Delete(ctx context.Context, id kernel.UUID) error
}
