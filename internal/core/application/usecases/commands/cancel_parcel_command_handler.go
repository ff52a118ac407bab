package commands

import (
	"context"
	"fmt"
	"time"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"
)

// CancelParcelCommandHandler handles sender-initiated cancellation.
// Only the owning sender may cancel, and only before dispatch.
type CancelParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
}

// NewCancelParcelCommandHandler creates a handler for cancellations.
func NewCancelParcelCommandHandler(uowFactory ParcelUoWFactory) CancelParcelCommandHandler {
	return CancelParcelCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cancellation command.
func (h *CancelParcelCommandHandler) Handle(ctx context.Context, cmd CancelParcelCommand) (*parcel.Parcel, error) {
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
		return nil, errs.NewAccessForbiddenErrorWithCause("cancel parcel",
			fmt.Errorf("parcel %s does not belong to sender %s", aggregate.TrackingID(), cmd.SenderID()))
	}

	if err = aggregate.Cancel(cmd.SenderID(), cmd.Reason(), time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = parcelRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
