package queries

import (
	"context"
	"errors"
	"fmt"

	"parceltrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetParcelQueryHandler loads one parcel read model from the database.
type GetParcelQueryHandler struct {
	db *gorm.DB
}

// NewGetParcelQueryHandler creates a handler for single-parcel reads.
func NewGetParcelQueryHandler(db *gorm.DB) GetParcelQueryHandler {
	return GetParcelQueryHandler{db: db}
}

// Handle executes the query. The access check runs after the row is
// loaded so a missing parcel reports not-found rather than forbidden.
func (h GetParcelQueryHandler) Handle(ctx context.Context, query GetParcelQuery) (ParcelResponse, error) {
	if err := query.Validate(); err != nil {
		return ParcelResponse{}, err
	}

	var row parcelRow
	err := h.db.WithContext(ctx).Table("parcels").
		Where("id = ?", query.ParcelID().Bytes()).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ParcelResponse{}, errs.NewObjectNotFoundError("parcel", query.ParcelID().String())
		}
		return ParcelResponse{}, err
	}

	actor := query.Actor()
	isSender := row.SenderID == actor.ID.Bytes()
	isReceiver := actor.Email != "" && actor.Email == row.ReceiverEmail
	if !isSender && !isReceiver && !actor.IsAdmin() {
		return ParcelResponse{}, errs.NewAccessForbiddenErrorWithCause("get parcel",
			fmt.Errorf("parcel %s is not visible to actor %s", row.TrackingID, actor.ID))
	}

	logs, err := h.loadHistory(ctx, row)
	if err != nil {
		return ParcelResponse{}, err
	}

	return toParcelResponse(row, logs), nil
}

func (h GetParcelQueryHandler) loadHistory(ctx context.Context, row parcelRow) ([]statusLogRow, error) {
	var logs []statusLogRow
	err := h.db.WithContext(ctx).Table("parcel_status_logs").
		Where("parcel_id = ?", row.ID).
		Order("timestamp ASC, id ASC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
