// Package userrepo provides data transfer objects and mapping functions
// for account persistence. Accounts are written by the upstream auth
// service; this repository only reads them.
package userrepo

import (
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// UserDTO represents the database structure of an account row.
type UserDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string    `gorm:"size:100"`
	Email          string    `gorm:"size:255;uniqueIndex"`
	PasswordHash   string
	Phone          string `gorm:"size:32"`
	Address        string
	Role           string `gorm:"size:16;index"`
	IsBlocked      bool
	IsVerified     bool
	IsDeleted      bool
	ActivityStatus string `gorm:"size:16"`
}

// TableName overrides GORM's default naming to use "users".
func (UserDTO) TableName() string {
	return "users"
}

// fromDomain converts a user entity to its database representation.
func fromDomain(u *user.User) UserDTO {
	return UserDTO{
		ID:             u.ID().Bytes(),
		Name:           u.Name(),
		Email:          u.Email(),
		PasswordHash:   u.PasswordHash(),
		Phone:          u.Phone(),
		Address:        u.Address(),
		Role:           u.Role().String(),
		IsBlocked:      u.IsBlocked(),
		IsVerified:     u.IsVerified(),
		IsDeleted:      u.IsDeleted(),
		ActivityStatus: string(u.Activity()),
	}
}

// toDomain converts a database row to a user entity via the restore path.
func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return user.RestoreUser(id, dto.Name, dto.Email, dto.PasswordHash, dto.Phone, dto.Address,
		user.Role(dto.Role), dto.IsBlocked, dto.IsVerified, dto.IsDeleted,
		user.ActivityStatus(dto.ActivityStatus)), nil
}
