package queries

import (
	"context"
	"errors"

	"parceltrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// TrackParcelQueryHandler serves the public tracking lookup.
type TrackParcelQueryHandler struct {
	db *gorm.DB
}

// NewTrackParcelQueryHandler creates a handler for tracking lookups.
func NewTrackParcelQueryHandler(db *gorm.DB) TrackParcelQueryHandler {
	return TrackParcelQueryHandler{db: db}
}

// Handle resolves the tracking id to the full parcel read model.
func (h TrackParcelQueryHandler) Handle(ctx context.Context, query TrackParcelQuery) (ParcelResponse, error) {
	if err := query.Validate(); err != nil {
		return ParcelResponse{}, err
	}

	var row parcelRow
	err := h.db.WithContext(ctx).Table("parcels").
		Where("tracking_id = ?", query.TrackingID()).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ParcelResponse{}, errs.NewObjectNotFoundError("trackingId", query.TrackingID())
		}
		return ParcelResponse{}, err
	}

	var logs []statusLogRow
	err = h.db.WithContext(ctx).Table("parcel_status_logs").
		Where("parcel_id = ?", row.ID).
		Order("timestamp ASC, id ASC").
		Find(&logs).Error
	if err != nil {
		return ParcelResponse{}, err
	}

	return toParcelResponse(row, logs), nil
}
