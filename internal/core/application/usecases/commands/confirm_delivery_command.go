package commands

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrConfirmDeliveryCommandIsNotConstructed = errors.New(
		"ConfirmDeliveryCommand must be created via NewConfirmDeliveryCommand constructor",
	)
)

// ConfirmDeliveryCommand represents a receiver confirming they got the
// parcel. The receiver is identified by email and does not need a
// registered account.
type ConfirmDeliveryCommand struct { //nolint:recvcheck //using for validation
	parcelID      kernel.UUID
	receiverEmail string
	note          string

	guard guard.ConstructorGuard
}

// NewConfirmDeliveryCommand creates a delivery-confirmation command.
// The email is stored lowercased for matching against the parcel's
// receiver snapshot.
func NewConfirmDeliveryCommand(parcelID kernel.UUID, receiverEmail, note string) (ConfirmDeliveryCommand, error) {
	cmd := ConfirmDeliveryCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setReceiverEmail(receiverEmail),
	); err != nil {
		return ConfirmDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDeliveryCommandIsNotConstructed)
}

// ParcelID returns the target parcel id.
func (c ConfirmDeliveryCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// ReceiverEmail returns the confirming receiver's lowercased email.
func (c ConfirmDeliveryCommand) ReceiverEmail() string {
	return c.receiverEmail
}

// Note returns the optional confirmation note.
func (c ConfirmDeliveryCommand) Note() string {
	return c.note
}

func (c *ConfirmDeliveryCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *ConfirmDeliveryCommand) setReceiverEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("receiverEmail",
			fmt.Errorf("%q is not a valid email address", email))
	}

	c.receiverEmail = email
	return nil
}
