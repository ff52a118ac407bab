package queries

import (
	"context"
	"fmt"
	"time"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"

	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

const secondsPerDay = 24 * 60 * 60

// ParcelStatsResponse is the admin dashboard aggregate.
type ParcelStatsResponse struct {
	Total           int64            `json:"total"`
	ByStatus        map[string]int64 `json:"byStatus"`
	Delivered       int64            `json:"delivered"`
	InTransit       int64            `json:"inTransit"`
	Pending         int64            `json:"pending"`
	Cancelled       int64            `json:"cancelled"`
	MonthlyRevenue  float64          `json:"monthlyRevenue"`
	AvgDeliveryTime string           `json:"avgDeliveryTime"`
}

// GetParcelStatsQueryHandler computes collection-wide statistics.
type GetParcelStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetParcelStatsQueryHandler creates a handler for statistics.
func NewGetParcelStatsQueryHandler(db *gorm.DB) GetParcelStatsQueryHandler {
	return GetParcelStatsQueryHandler{db: db}
}

// Handle runs three aggregate queries: per-status counts, the current
// calendar-month revenue over non-cancelled parcels, and the average
// delivery time of delivered parcels.
func (h GetParcelStatsQueryHandler) Handle(ctx context.Context, query GetParcelStatsQuery) (ParcelStatsResponse, error) {
	if err := query.Validate(); err != nil {
		return ParcelStatsResponse{}, err
	}

	if !query.Actor().IsAdmin() {
		return ParcelStatsResponse{}, errs.NewAccessForbiddenError("get parcel statistics")
	}

	byStatus, err := h.countByStatus(ctx)
	if err != nil {
		return ParcelStatsResponse{}, err
	}

	response := ParcelStatsResponse{
		ByStatus:  byStatus,
		Delivered: byStatus[parcel.StatusDelivered.String()],
		InTransit: byStatus[parcel.StatusPickedUp.String()] +
			byStatus[parcel.StatusInTransit.String()] +
			byStatus[parcel.StatusOutForDelivery.String()],
		Pending: byStatus[parcel.StatusRequested.String()] +
			byStatus[parcel.StatusApproved.String()],
		Cancelled: byStatus[parcel.StatusCancelled.String()] +
			byStatus[parcel.StatusReturned.String()] +
			byStatus[parcel.StatusFailedDelivery.String()],
	}
	for _, count := range byStatus {
		response.Total += count
	}

	response.MonthlyRevenue, err = h.monthlyRevenue(ctx, time.Now())
	if err != nil {
		return ParcelStatsResponse{}, err
	}

	response.AvgDeliveryTime, err = h.averageDeliveryTime(ctx)
	if err != nil {
		return ParcelStatsResponse{}, err
	}

	return response, nil
}

// countByStatus initializes every known status to zero so the response
// shape is stable even over an empty or partial collection.
func (h GetParcelStatsQueryHandler) countByStatus(ctx context.Context) (map[string]int64, error) {
	byStatus := make(map[string]int64, len(parcel.AllStatuses()))
	for _, status := range parcel.AllStatuses() {
		byStatus[status.String()] = 0
	}

	var rows []struct {
		CurrentStatus string
		Count         int64
	}
	err := h.db.WithContext(ctx).Table("parcels").
		Select("current_status, COUNT(*) AS count").
		Group("current_status").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		byStatus[row.CurrentStatus] = row.Count
	}
	return byStatus, nil
}

func (h GetParcelStatsQueryHandler) monthlyRevenue(ctx context.Context, at time.Time) (float64, error) {
	month := now.With(at)

	var revenue float64
	err := h.db.WithContext(ctx).Table("parcels").
		Select("COALESCE(SUM(total_fee), 0)").
		Where("current_status <> ?", parcel.StatusCancelled.String()).
		Where("created_at BETWEEN ? AND ?", month.BeginningOfMonth(), month.EndOfMonth()).
		Scan(&revenue).Error
	return revenue, err
}

// averageDeliveryTime measures creation to last update for delivered
// parcels, since the final update is the delivery confirmation.
func (h GetParcelStatsQueryHandler) averageDeliveryTime(ctx context.Context) (string, error) {
	var avgSeconds *float64
	err := h.db.WithContext(ctx).Table("parcels").
		Select("AVG(EXTRACT(EPOCH FROM (updated_at - created_at)))").
		Where("current_status = ?", parcel.StatusDelivered.String()).
		Scan(&avgSeconds).Error
	if err != nil {
		return "", err
	}

	if avgSeconds == nil {
		return "N/A", nil
	}
	return fmt.Sprintf("%.1f days", *avgSeconds/secondsPerDay), nil
}
