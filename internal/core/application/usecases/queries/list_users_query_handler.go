package queries

import (
	"context"
	"time"

	"parceltrack/internal/adapters/out/postgres/querybuilder"
	"parceltrack/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var userColumns = map[string]string{
	"name":           "name",
	"email":          "email",
	"phone":          "phone",
	"role":           "role",
	"isBlocked":      "is_blocked",
	"isVerified":     "is_verified",
	"activityStatus": "activity_status",
	"createdAt":      "created_at",
}

// userRow mirrors the columns of the "users" table for read-side
// scanning. The password hash is never selected.
type userRow struct {
	ID             uuid.UUID
	Name           string
	Email          string
	Phone          string
	Address        string
	Role           string
	IsBlocked      bool
	IsVerified     bool
	IsDeleted      bool
	ActivityStatus string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// UserResponse is the read model of a user account.
type UserResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	Address        string    `json:"address,omitempty"`
	Role           string    `json:"role"`
	IsBlocked      bool      `json:"isBlocked"`
	IsVerified     bool      `json:"isVerified"`
	ActivityStatus string    `json:"activityStatus"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// UserListResponse is one page of users with its pagination envelope.
type UserListResponse struct {
	Items []UserResponse    `json:"items"`
	Meta  querybuilder.Meta `json:"meta"`
}

// ListUsersQueryHandler serves the admin user listing.
type ListUsersQueryHandler struct {
	db *gorm.DB
}

// NewListUsersQueryHandler creates a handler for user listings.
func NewListUsersQueryHandler(db *gorm.DB) ListUsersQueryHandler {
	return ListUsersQueryHandler{db: db}
}

// Handle executes the listing. Soft-deleted accounts are excluded.
func (h ListUsersQueryHandler) Handle(ctx context.Context, query ListUsersQuery) (UserListResponse, error) {
	if err := query.Validate(); err != nil {
		return UserListResponse{}, err
	}

	if !query.Actor().IsAdmin() {
		return UserListResponse{}, errs.NewAccessForbiddenError("list users")
	}

	scoped := h.db.WithContext(ctx).Table("users").
		Select("id", "name", "email", "phone", "address", "role",
			"is_blocked", "is_verified", "is_deleted", "activity_status",
			"created_at", "updated_at").
		Where("is_deleted = ?", false)

	builder := querybuilder.New(scoped, query.Params(), userColumns).
		Search("name", "email", "phone").
		Filter().
		Sort().
		Paginate()

	var rows []userRow
	if err := builder.Build().Find(&rows).Error; err != nil {
		return UserListResponse{}, err
	}

	meta, err := builder.Meta(ctx)
	if err != nil {
		return UserListResponse{}, err
	}

	items := make([]UserResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, UserResponse{
			ID:             row.ID.String(),
			Name:           row.Name,
			Email:          row.Email,
			Phone:          row.Phone,
			Address:        row.Address,
			Role:           row.Role,
			IsBlocked:      row.IsBlocked,
			IsVerified:     row.IsVerified,
			ActivityStatus: row.ActivityStatus,
			CreatedAt:      row.CreatedAt,
			UpdatedAt:      row.UpdatedAt,
		})
	}

	return UserListResponse{Items: items, Meta: meta}, nil
}
