package commands

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrCreateParcelCommandIsNotConstructed = errors.New(
		"CreateParcelCommand must be created via NewCreateParcelCommand constructor",
	)
)

// CreateParcelCommand represents a sender's request to book a delivery.
// The receiver, details and delivery-info value objects arrive already
// validated; the command guards the identity and the discount input.
type CreateParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID     kernel.UUID
	senderID     kernel.UUID
	receiver     parcel.Receiver
	details      parcel.Details
	deliveryInfo parcel.DeliveryInfo
	discount     float64
	couponCode   string

	guard guard.ConstructorGuard
}

// NewCreateParcelCommand creates a command to book a new parcel delivery.
// Validates identities and the discount; the value objects carry their own
// validation from construction.
func NewCreateParcelCommand(
	parcelID kernel.UUID,
	senderID kernel.UUID,
	receiver parcel.Receiver,
	details parcel.Details,
	deliveryInfo parcel.DeliveryInfo,
	discount float64,
	couponCode string,
) (CreateParcelCommand, error) {
	cmd := CreateParcelCommand{
		receiver:     receiver,
		details:      details,
		deliveryInfo: deliveryInfo,
		couponCode:   couponCode,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setSenderID(senderID),
		cmd.setDiscount(discount),
	); err != nil {
		return CreateParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateParcelCommand) Validate() error {
	return c.guard.Validate(ErrCreateParcelCommandIsNotConstructed)
}

// ParcelID returns the identifier assigned to the new parcel.
func (c CreateParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// SenderID returns the booking sender's account id.
func (c CreateParcelCommand) SenderID() kernel.UUID {
	return c.senderID
}

// Receiver returns the receiver snapshot.
func (c CreateParcelCommand) Receiver() parcel.Receiver {
	return c.receiver
}

// Details returns the physical attributes.
func (c CreateParcelCommand) Details() parcel.Details {
	return c.details
}

// DeliveryInfo returns the delivery preferences.
func (c CreateParcelCommand) DeliveryInfo() parcel.DeliveryInfo {
	return c.deliveryInfo
}

// Discount returns the discount amount to carry into pricing.
func (c CreateParcelCommand) Discount() float64 {
	return c.discount
}

// CouponCode returns the optional coupon code tied to the discount.
func (c CreateParcelCommand) CouponCode() string {
	return c.couponCode
}

func (c *CreateParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *CreateParcelCommand) setSenderID(senderID kernel.UUID) error {
	if err := senderID.Validate(); err != nil {
		return errs.NewValueIsRequiredError("senderId")
	}

	c.senderID = senderID
	return nil
}

func (c *CreateParcelCommand) setDiscount(discount float64) error {
	if discount < 0 {
		return errs.NewValueIsInvalidError("discount")
	}

	c.discount = discount
	return nil
}

// validatePreferredDate rejects preferred delivery dates in the past at
// booking time. Applied by the handler with its clock.
func (c CreateParcelCommand) validatePreferredDate(now time.Time) error {
	preferred := c.deliveryInfo.PreferredDate()
	if preferred != nil && preferred.Before(now) {
		return errs.NewValueIsInvalidError("deliveryInfo.preferredDeliveryDate must be in the future")
	}
	return nil
}
