package commands

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/parcel"
)

// AssignDeliveryPersonnelCommandHandler assigns a courier to a parcel.
// The aggregate enforces the write-once rule and the terminal-status guard.
type AssignDeliveryPersonnelCommandHandler struct {
	uowFactory ParcelUoWFactory
}

// NewAssignDeliveryPersonnelCommandHandler creates a handler for courier assignment.
func NewAssignDeliveryPersonnelCommandHandler(uowFactory ParcelUoWFactory) AssignDeliveryPersonnelCommandHandler {
	return AssignDeliveryPersonnelCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the assignment command.
func (h *AssignDeliveryPersonnelCommandHandler) Handle(ctx context.Context, cmd AssignDeliveryPersonnelCommand) (*parcel.Parcel, error) {
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

	if err = aggregate.AssignPersonnel(cmd.Personnel(), cmd.AdminID(), cmd.Note(), time.Now().UTC()); err != nil {
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
