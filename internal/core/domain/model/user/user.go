// Package user holds the account entity. Accounts are the authorization
// subjects of parcel operations: senders own parcels, receivers are matched
// by email, admins operate on everything. Credential verification happens
// upstream; this package only carries the account data.
package user

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

var (
	// ErrUserIsNotConstructed is returned when a User instance was not
	// created through NewUser or RestoreUser.
	ErrUserIsNotConstructed = errors.New("User must be created via NewUser or RestoreUser constructor")
)

// Role determines which parcel operations an account may perform.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleSender   Role = "sender"
	RoleReceiver Role = "receiver"
)

// AllRoles returns every valid role.
func AllRoles() []Role {
	return []Role{RoleAdmin, RoleSender, RoleReceiver}
}

// Validate checks the role against the known set.
func (r Role) Validate() error {
	for _, known := range AllRoles() {
		if r == known {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("user.role",
		fmt.Errorf("%q is not a valid role", string(r)))
}

// String returns the wire representation of the role.
func (r Role) String() string {
	return string(r)
}

// ActivityStatus is the coarse account state shown in admin listings.
type ActivityStatus string

const (
	ActivityActive   ActivityStatus = "ACTIVE"
	ActivityInactive ActivityStatus = "INACTIVE"
	ActivityBlocked  ActivityStatus = "BLOCKED"
)

// Validate checks the activity status against the known set.
func (s ActivityStatus) Validate() error {
	switch s {
	case ActivityActive, ActivityInactive, ActivityBlocked:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("user.activityStatus",
			fmt.Errorf("%q is not a valid activity status", string(s)))
	}
}

// User is an account entity. It is read-mostly in this service: parcel use
// cases load users to authorize actions and to resolve receiver emails to
// account ids, and admins can list them.
type User struct {
	id           kernel.UUID
	name         string
	email        string
	passwordHash string
	phone        string
	address      string
	role         Role

	isBlocked  bool
	isVerified bool
	isDeleted  bool
	activity   ActivityStatus

	isConstructed bool
}

// NewUser creates a validated User.
//
// The email is stored lowercased; the password hash is opaque data owned by
// the upstream auth service and is never inspected here.
func NewUser(id kernel.UUID, name, email, passwordHash, phone, address string, role Role) (*User, error) {
	u := &User{
		activity:      ActivityActive,
		isConstructed: true,
	}

	if err := errors.Join(
		u.setID(id),
		u.setName(name),
		u.setEmail(email),
		u.setRole(role),
	); err != nil {
		return nil, err
	}

	u.passwordHash = passwordHash
	u.phone = phone
	u.address = address
	return u, nil
}

// RestoreUser reconstructs a User from persisted state.
func RestoreUser(
	id kernel.UUID,
	name, email, passwordHash, phone, address string,
	role Role,
	isBlocked, isVerified, isDeleted bool,
	activity ActivityStatus,
) *User {
	return &User{
		id:            id,
		name:          name,
		email:         email,
		passwordHash:  passwordHash,
		phone:         phone,
		address:       address,
		role:          role,
		isBlocked:     isBlocked,
		isVerified:    isVerified,
		isDeleted:     isDeleted,
		activity:      activity,
		isConstructed: true,
	}
}

// Validate ensures the User was constructed through NewUser or RestoreUser.
func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

// IsEqual compares two users by their unique identifiers.
func (u *User) IsEqual(other *User) bool {
	return other != nil && u.id.IsEqual(other.id)
}

// ID returns the account's unique identifier.
func (u *User) ID() kernel.UUID { return u.id }

// Name returns the display name.
func (u *User) Name() string { return u.name }

// Email returns the lowercased unique email address.
func (u *User) Email() string { return u.email }

// PasswordHash returns the opaque credential hash.
func (u *User) PasswordHash() string { return u.passwordHash }

// Phone returns the phone number.
func (u *User) Phone() string { return u.phone }

// Address returns the free-form postal address.
func (u *User) Address() string { return u.address }

// Role returns the account role.
func (u *User) Role() Role { return u.role }

// IsBlocked reports whether an admin has blocked the account.
func (u *User) IsBlocked() bool { return u.isBlocked }

// IsVerified reports whether the account's email was verified.
func (u *User) IsVerified() bool { return u.isVerified }

// IsDeleted reports whether the account is soft-deleted.
func (u *User) IsDeleted() bool { return u.isDeleted }

// Activity returns the coarse account state.
func (u *User) Activity() ActivityStatus { return u.activity }

// CanSendParcels reports whether the account may create parcels:
// it must hold the sender role and not be blocked.
func (u *User) CanSendParcels() bool {
	return u.role == RoleSender && !u.isBlocked
}

// IsAdmin reports whether the account holds the admin role.
func (u *User) IsAdmin() bool {
	return u.role == RoleAdmin
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("user.name")
	}
	u.name = strings.TrimSpace(name)
	return nil
}

func (u *User) setEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("user.email",
			fmt.Errorf("%q is not a valid email address", email))
	}
	u.email = email
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}
