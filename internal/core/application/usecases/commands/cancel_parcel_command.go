package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrCancelParcelCommandIsNotConstructed = errors.New(
		"CancelParcelCommand must be created via NewCancelParcelCommand constructor",
	)
)

// CancelParcelCommand represents a sender withdrawing a delivery request.
type CancelParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	senderID kernel.UUID
	reason   string

	guard guard.ConstructorGuard
}

// NewCancelParcelCommand creates a cancellation command. The reason is
// optional; an empty reason is recorded with a default note.
func NewCancelParcelCommand(parcelID, senderID kernel.UUID, reason string) (CancelParcelCommand, error) {
	cmd := CancelParcelCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setSenderID(senderID),
	); err != nil {
		return CancelParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelParcelCommand) Validate() error {
	return c.guard.Validate(ErrCancelParcelCommandIsNotConstructed)
}

// ParcelID returns the target parcel id.
func (c CancelParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// SenderID returns the cancelling sender's account id.
func (c CancelParcelCommand) SenderID() kernel.UUID {
	return c.senderID
}

// Reason returns the optional cancellation reason.
func (c CancelParcelCommand) Reason() string {
	return c.reason
}

func (c *CancelParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *CancelParcelCommand) setSenderID(senderID kernel.UUID) error {
	if err := senderID.Validate(); err != nil {
		return errs.NewValueIsRequiredError("senderId")
	}

	c.senderID = senderID
	return nil
}
