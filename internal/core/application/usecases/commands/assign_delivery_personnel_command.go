package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrAssignDeliveryPersonnelCommandIsNotConstructed = errors.New(
		"AssignDeliveryPersonnelCommand must be created via NewAssignDeliveryPersonnelCommand constructor",
	)
)

// AssignDeliveryPersonnelCommand represents an admin assigning a courier
// to a parcel. Assignment is write-once.
type AssignDeliveryPersonnelCommand struct { //nolint:recvcheck //using for validation
	parcelID  kernel.UUID
	adminID   kernel.UUID
	personnel parcel.DeliveryPersonnel
	note      string

	guard guard.ConstructorGuard
}

// NewAssignDeliveryPersonnelCommand creates an assignment command.
// The courier snapshot arrives already validated.
func NewAssignDeliveryPersonnelCommand(parcelID, adminID kernel.UUID, personnel parcel.DeliveryPersonnel, note string) (AssignDeliveryPersonnelCommand, error) {
	cmd := AssignDeliveryPersonnelCommand{
		personnel: personnel,
		note:      note,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setAdminID(adminID),
	); err != nil {
		return AssignDeliveryPersonnelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignDeliveryPersonnelCommand) Validate() error {
	return c.guard.Validate(ErrAssignDeliveryPersonnelCommandIsNotConstructed)
}

// ParcelID returns the target parcel id.
func (c AssignDeliveryPersonnelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// AdminID returns the acting administrator's account id.
func (c AssignDeliveryPersonnelCommand) AdminID() kernel.UUID {
	return c.adminID
}

// Personnel returns the courier snapshot to assign.
func (c AssignDeliveryPersonnelCommand) Personnel() parcel.DeliveryPersonnel {
	return c.personnel
}

// Note returns the optional assignment note.
func (c AssignDeliveryPersonnelCommand) Note() string {
	return c.note
}

func (c *AssignDeliveryPersonnelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *AssignDeliveryPersonnelCommand) setAdminID(adminID kernel.UUID) error {
	if err := adminID.Validate(); err != nil {
		return errs.NewValueIsRequiredError("adminId")
	}

	c.adminID = adminID
	return nil
}
