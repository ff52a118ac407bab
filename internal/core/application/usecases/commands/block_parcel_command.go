package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrBlockParcelCommandIsNotConstructed = errors.New(
		"BlockParcelCommand must be created via NewBlockParcelCommand constructor",
	)
)

// BlockParcelCommand represents an admin toggling the block flag on a
// parcel. The toggle is deliberately unguarded against repetition.
type BlockParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID  kernel.UUID
	adminID   kernel.UUID
	isBlocked bool
	reason    string

	guard guard.ConstructorGuard
}

// NewBlockParcelCommand creates a block/unblock command.
func NewBlockParcelCommand(parcelID, adminID kernel.UUID, isBlocked bool, reason string) (BlockParcelCommand, error) {
	cmd := BlockParcelCommand{
		isBlocked: isBlocked,
		reason:    reason,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setAdminID(adminID),
	); err != nil {
		return BlockParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c BlockParcelCommand) Validate() error {
	return c.guard.Validate(ErrBlockParcelCommandIsNotConstructed)
}

// ParcelID returns the target parcel id.
func (c BlockParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// AdminID returns the acting administrator's account id.
func (c BlockParcelCommand) AdminID() kernel.UUID {
	return c.adminID
}

// IsBlocked returns the desired block state.
func (c BlockParcelCommand) IsBlocked() bool {
	return c.isBlocked
}

// Reason returns the optional reason recorded in the history note.
func (c BlockParcelCommand) Reason() string {
	return c.reason
}

func (c *BlockParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *BlockParcelCommand) setAdminID(adminID kernel.UUID) error {
	if err := adminID.Validate(); err != nil {
		return errs.NewValueIsRequiredError("adminId")
	}

	c.adminID = adminID
	return nil
}
