package commands

import (
	"context"
	"fmt"
	"time"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/pkg/errs"
)

// UpdateParcelDetailsCommandHandler handles pre-dispatch parcel edits.
// When an edit touches fee inputs, pricing is recomputed with the existing
// discount and coupon carried over. Detail edits never append history.
type UpdateParcelDetailsCommandHandler struct {
	uowFactory    ParcelUoWFactory
	feeCalculator services.FeeCalculator
}

// NewUpdateParcelDetailsCommandHandler creates a handler for detail edits.
func NewUpdateParcelDetailsCommandHandler(uowFactory ParcelUoWFactory) UpdateParcelDetailsCommandHandler {
	return UpdateParcelDetailsCommandHandler{
		uowFactory:    uowFactory,
		feeCalculator: services.NewFeeCalculator(),
	}
}

// Handle processes the edit command. Only the owning sender may edit, and
// only while the aggregate allows it (before dispatch, not blocked, not
// cancelled).
func (h *UpdateParcelDetailsCommandHandler) Handle(ctx context.Context, cmd UpdateParcelDetailsCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()
	aggregate, err := parcelRepo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return nil, err
	}

	if !aggregate.SenderID().IsEqual(cmd.SenderID()) {
		return nil, errs.NewAccessForbiddenErrorWithCause("update parcel details",
			fmt.Errorf("parcel %s does not belong to sender %s", aggregate.TrackingID(), cmd.SenderID()))
	}

	pricingAffected, err := aggregate.ApplyDetailsUpdate(
		cmd.ReceiverPatch(), cmd.DetailsPatch(), cmd.DeliveryPatch(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if pricingAffected {
		current := aggregate.Pricing()
		details := aggregate.Details()
		pricing, err := h.feeCalculator.Calculate(details.Type(), details.WeightKg(),
			aggregate.DeliveryInfo().Urgency(), current.Discount(), current.CouponCode())
		if err != nil {
			return nil, err
		}
		aggregate.SetPricing(pricing, time.Now().UTC())
	}

	if err = parcelRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
