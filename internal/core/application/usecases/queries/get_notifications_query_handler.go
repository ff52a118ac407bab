package queries

import (
	"context"
	"fmt"
	"time"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationFeedLimit caps the feed at the most recent parcels.
const NotificationFeedLimit = 50

// NotificationResponse is one derived notification. Nothing is
// persisted: the feed is recomputed from status history on every read,
// so IsRead always starts false.
type NotificationResponse struct {
	ParcelID   string    `json:"parcelId"`
	TrackingID string    `json:"trackingId"`
	Category   string    `json:"category"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
	IsRead     bool      `json:"isRead"`
}

// notificationRow joins each parcel with its latest history entry.
type notificationRow struct {
	ParcelID      uuid.UUID
	TrackingID    string
	CurrentStatus string
	EventTime     *time.Time
	Location      string
	Note          string
}

type notificationCopy struct {
	category string
	title    string
	message  string
}

var notificationByStatus = map[string]notificationCopy{
	parcel.StatusDelivered.String():      {"success", "Parcel Delivered", "Parcel %s has been delivered"},
	parcel.StatusCancelled.String():      {"error", "Parcel Cancelled", "Parcel %s has been cancelled"},
	parcel.StatusFailedDelivery.String(): {"warning", "Delivery Attempt Failed", "Delivery of parcel %s failed"},
	parcel.StatusInTransit.String():      {"info", "Parcel In Transit", "Parcel %s is in transit"},
	parcel.StatusOutForDelivery.String(): {"info", "Out For Delivery", "Parcel %s is out for delivery"},
}

var defaultNotificationCopy = notificationCopy{"info", "Parcel Update", "Parcel %s status is now %s"}

// GetNotificationsQueryHandler derives the notification feed from the
// most recently updated parcels visible to the actor.
type GetNotificationsQueryHandler struct {
	db *gorm.DB
}

// NewGetNotificationsQueryHandler creates a handler for the feed.
func NewGetNotificationsQueryHandler(db *gorm.DB) GetNotificationsQueryHandler {
	return GetNotificationsQueryHandler{db: db}
}

// Handle computes the feed: one notification per parcel, built from the
// latest history entry, newest events first.
func (h GetNotificationsQueryHandler) Handle(ctx context.Context, query GetNotificationsQuery) ([]NotificationResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	scoped := h.db.WithContext(ctx).Table("parcels AS p").
		Select(`p.id AS parcel_id, p.tracking_id, p.current_status,
			l.timestamp AS event_time, l.location, l.note`).
		Joins(`LEFT JOIN LATERAL (
			SELECT timestamp, location, note
			FROM parcel_status_logs
			WHERE parcel_id = p.id
			ORDER BY timestamp DESC, id DESC
			LIMIT 1
		) l ON true`)

	actor := query.Actor()
	switch actor.Role {
	case user.RoleSender:
		scoped = scoped.Where("p.sender_id = ?", actor.ID.Bytes())
	case user.RoleReceiver:
		scoped = scoped.Where("p.receiver_email = ?", actor.Email)
	}

	var rows []notificationRow
	err := scoped.
		Order("l.timestamp DESC NULLS LAST").
		Limit(NotificationFeedLimit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	feed := make([]NotificationResponse, 0, len(rows))
	for _, row := range rows {
		feed = append(feed, h.project(row))
	}
	return feed, nil
}

func (h GetNotificationsQueryHandler) project(row notificationRow) NotificationResponse {
	text, ok := notificationByStatus[row.CurrentStatus]
	var message string
	if ok {
		message = fmt.Sprintf(text.message, row.TrackingID)
	} else {
		text = defaultNotificationCopy
		message = fmt.Sprintf(text.message, row.TrackingID, row.CurrentStatus)
	}

	if row.Location != "" {
		message += fmt.Sprintf(" at %s", row.Location)
	}
	if row.Note != "" {
		message += fmt.Sprintf(": %s", row.Note)
	}

	timestamp := time.Time{}
	if row.EventTime != nil {
		timestamp = *row.EventTime
	}

	return NotificationResponse{
		ParcelID:   row.ParcelID.String(),
		TrackingID: row.TrackingID,
		Category:   text.category,
		Title:      text.title,
		Message:    message,
		Timestamp:  timestamp,
	}
}
