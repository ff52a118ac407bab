package commands

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/parcel"
)

// BlockParcelCommandHandler toggles the admin circuit breaker on a parcel.
// Each toggle appends an administrative note entry repeating the current
// status; repeating the same toggle appends another entry.
type BlockParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
}

// NewBlockParcelCommandHandler creates a handler for block/unblock operations.
func NewBlockParcelCommandHandler(uowFactory ParcelUoWFactory) BlockParcelCommandHandler {
	return BlockParcelCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the block/unblock command.
func (h *BlockParcelCommandHandler) Handle(ctx context.Context, cmd BlockParcelCommand) (*parcel.Parcel, error) {
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

	if err = aggregate.SetBlocked(cmd.IsBlocked(), cmd.AdminID(), cmd.Reason(), time.Now().UTC()); err != nil {
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
