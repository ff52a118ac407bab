package queries

import (
	"context"

	"parceltrack/internal/adapters/out/postgres/querybuilder"
	"parceltrack/internal/core/domain/model/user"

	"gorm.io/gorm"
)

// parcelColumns whitelists the external field names listing requests may
// search, filter, sort and project by.
var parcelColumns = map[string]string{
	"trackingId":    "tracking_id",
	"senderId":      "sender_id",
	"receiverName":  "receiver_name",
	"receiverEmail": "receiver_email",
	"parcelType":    "parcel_type",
	"currentStatus": "current_status",
	"urgency":       "urgency",
	"isBlocked":     "is_blocked",
	"description":   "description",
	"createdAt":     "created_at",
	"updatedAt":     "updated_at",
	"totalFee":      "total_fee",
}

// ParcelListResponse is one page of parcels with its pagination envelope.
// List rows carry no status history; the detail endpoints load it.
type ParcelListResponse struct {
	Items []ParcelResponse  `json:"items"`
	Meta  querybuilder.Meta `json:"meta"`
}

// ListParcelsQueryHandler serves the scoped parcel listing.
type ListParcelsQueryHandler struct {
	db *gorm.DB
}

// NewListParcelsQueryHandler creates a handler for parcel listings.
func NewListParcelsQueryHandler(db *gorm.DB) ListParcelsQueryHandler {
	return ListParcelsQueryHandler{db: db}
}

// Handle executes the listing. The actor scope is applied before the
// request modifiers, so search and filters only ever narrow the set the
// actor is allowed to see.
func (h ListParcelsQueryHandler) Handle(ctx context.Context, query ListParcelsQuery) (ParcelListResponse, error) {
	if err := query.Validate(); err != nil {
		return ParcelListResponse{}, err
	}

	scoped := h.scopeFor(ctx, query.Actor())

	builder := querybuilder.New(scoped, query.Params(), parcelColumns).
		Search(h.searchFieldsFor(query.Actor())...).
		Filter().
		Sort().
		Paginate().
		Fields()

	var rows []parcelRow
	if err := builder.Build().Find(&rows).Error; err != nil {
		return ParcelListResponse{}, err
	}

	meta, err := builder.Meta(ctx)
	if err != nil {
		return ParcelListResponse{}, err
	}

	items := make([]ParcelResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, toParcelResponse(row, nil))
	}

	return ParcelListResponse{Items: items, Meta: meta}, nil
}

func (h ListParcelsQueryHandler) scopeFor(ctx context.Context, actor Actor) *gorm.DB {
	scoped := h.db.WithContext(ctx).Table("parcels")

	switch actor.Role {
	case user.RoleSender:
		return scoped.Where("sender_id = ?", actor.ID.Bytes())
	case user.RoleReceiver:
		return scoped.Where("receiver_email = ?", actor.Email)
	default:
		return scoped
	}
}

// searchFieldsFor limits receivers to the fields that cannot leak other
// customers' contact data.
func (h ListParcelsQueryHandler) searchFieldsFor(actor Actor) []string {
	if actor.Role == user.RoleReceiver {
		return []string{"trackingId", "description"}
	}
	return []string{"trackingId", "receiverName", "receiverEmail", "description"}
}
