package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrUpdateParcelDetailsCommandIsNotConstructed = errors.New(
		"UpdateParcelDetailsCommand must be created via NewUpdateParcelDetailsCommand constructor",
	)
	ErrEmptyDetailsPatch = errors.New("at least one field must be supplied")
)

// UpdateParcelDetailsCommand represents a sender's partial edit of a
// parcel before dispatch. Nil patch sections are left untouched.
type UpdateParcelDetailsCommand struct { //nolint:recvcheck //using for validation
	parcelID      kernel.UUID
	senderID      kernel.UUID
	receiverPatch *parcel.ReceiverPatch
	detailsPatch  *parcel.DetailsPatch
	deliveryPatch *parcel.DeliveryInfoPatch

	guard guard.ConstructorGuard
}

// NewUpdateParcelDetailsCommand creates a partial-edit command.
// At least one patch section must be supplied.
func NewUpdateParcelDetailsCommand(
	parcelID kernel.UUID,
	senderID kernel.UUID,
	receiverPatch *parcel.ReceiverPatch,
	detailsPatch *parcel.DetailsPatch,
	deliveryPatch *parcel.DeliveryInfoPatch,
) (UpdateParcelDetailsCommand, error) {
	cmd := UpdateParcelDetailsCommand{
		receiverPatch: receiverPatch,
		detailsPatch:  detailsPatch,
		deliveryPatch: deliveryPatch,
		guard:         guard.NewConstructorGuard(),
	}

	if receiverPatch == nil && detailsPatch == nil && deliveryPatch == nil {
		return UpdateParcelDetailsCommand{}, ErrEmptyDetailsPatch
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setSenderID(senderID),
	); err != nil {
		return UpdateParcelDetailsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateParcelDetailsCommand) Validate() error {
	return c.guard.Validate(ErrUpdateParcelDetailsCommandIsNotConstructed)
}

// ParcelID returns the target parcel id.
func (c UpdateParcelDetailsCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// SenderID returns the editing sender's account id.
func (c UpdateParcelDetailsCommand) SenderID() kernel.UUID {
	return c.senderID
}

// ReceiverPatch returns the receiver section of the edit, nil when absent.
func (c UpdateParcelDetailsCommand) ReceiverPatch() *parcel.ReceiverPatch {
	return c.receiverPatch
}

// DetailsPatch returns the physical-details section, nil when absent.
func (c UpdateParcelDetailsCommand) DetailsPatch() *parcel.DetailsPatch {
	return c.detailsPatch
}

// DeliveryPatch returns the delivery-preferences section, nil when absent.
func (c UpdateParcelDetailsCommand) DeliveryPatch() *parcel.DeliveryInfoPatch {
	return c.deliveryPatch
}

func (c *UpdateParcelDetailsCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *UpdateParcelDetailsCommand) setSenderID(senderID kernel.UUID) error {
	if err := senderID.Validate(); err != nil {
		return errs.NewValueIsRequiredError("senderId")
	}

	c.senderID = senderID
	return nil
}
