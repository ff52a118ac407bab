package commands

import (
	"context"
	"fmt"
	"time"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"
)

// CreateParcelCommandHandler handles the business logic for booking a
// delivery: sender authorization, fee calculation, unique tracking-ID
// generation and the initial persist.
//
// Example:
//
//	handler := NewCreateParcelCommandHandler(uowFactory)
//	cmd, _ := NewCreateParcelCommand(kernel.NewUUID(), senderID, receiver, details, info, 0, "")
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("booking failed: %w", err)
//	}
//	fmt.Printf("Parcel %s booked", created.TrackingID())
type CreateParcelCommandHandler struct {
	uowFactory    UoWFactory
	feeCalculator services.FeeCalculator
}

// NewCreateParcelCommandHandler creates a handler for parcel booking.
// Requires a UoWFactory spanning parcels and users for transactional
// authorization and persistence.
func NewCreateParcelCommandHandler(uowFactory UoWFactory) CreateParcelCommandHandler {
	return CreateParcelCommandHandler{
		uowFactory:    uowFactory,
		feeCalculator: services.NewFeeCalculator(),
	}
}

// Handle processes the booking command.
//
// Business rules enforced here:
//   - The sender account must exist, hold the sender role and not be blocked
//   - Fee inputs are validated as one joined error before any mutation
//   - A preferred delivery date must not be in the past
//   - The tracking ID is regenerated on collision, up to the attempt bound
func (h *CreateParcelCommandHandler) Handle(ctx context.Context, cmd CreateParcelCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := cmd.validatePreferredDate(now); err != nil {
		return nil, err
	}

	details := cmd.Details()
	if err := h.feeCalculator.ValidateInputs(details.Type(), details.WeightKg(), cmd.DeliveryInfo().Urgency()); err != nil {
		return nil, err
	}

	pricing, err := h.feeCalculator.Calculate(details.Type(), details.WeightKg(),
		cmd.DeliveryInfo().Urgency(), cmd.Discount(), cmd.CouponCode())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sender, err := uow.UserRepository().Get(ctx, cmd.SenderID())
	if err != nil {
		return nil, err
	}
	if !sender.CanSendParcels() {
		return nil, errs.NewAccessForbiddenErrorWithCause("create parcel",
			fmt.Errorf("account %s cannot send parcels", sender.ID()))
	}

	parcelRepo := uow.ParcelRepository()
	trackingID, err := generateUniqueTrackingID(ctx, parcelRepo, now)
	if err != nil {
		return nil, err
	}

	aggregate, err := parcel.NewParcel(cmd.ParcelID(), trackingID, cmd.SenderID(),
		cmd.Receiver(), details, cmd.DeliveryInfo(), pricing, now)
	if err != nil {
		return nil, err
	}

	if err = parcelRepo.Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}

// generateUniqueTrackingID draws tracking IDs until one is unused, bounded
// by parcel.MaxTrackingIDAttempts. The storage-level unique index remains
// the final arbiter under concurrent creates; this loop only keeps
// collisions rare.
func generateUniqueTrackingID(ctx context.Context, repo ports.ParcelRepository, now time.Time) (parcel.TrackingID, error) {
	for attempt := 0; attempt < parcel.MaxTrackingIDAttempts; attempt++ {
		candidate := parcel.GenerateTrackingID(now)
		exists, err := repo.ExistsByTrackingID(ctx, candidate)
		if err != nil {
			return parcel.TrackingID{}, err
		}
		if !exists {
			return candidate, nil
		}
	}
	return parcel.TrackingID{}, errs.NewInternalError(
		fmt.Sprintf("failed to generate a unique tracking ID after %d attempts", parcel.MaxTrackingIDAttempts))
}
