package commands

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/parcel"
)

// TransitionParcelStatusCommandHandler drives the parcel state machine.
// The aggregate enforces the transition table and the blocked guard; the
// repository's conditional write turns a concurrent transition into a
// version conflict instead of a lost update.
type TransitionParcelStatusCommandHandler struct {
	uowFactory ParcelUoWFactory
}

// NewTransitionParcelStatusCommandHandler creates a handler for status transitions.
func NewTransitionParcelStatusCommandHandler(uowFactory ParcelUoWFactory) TransitionParcelStatusCommandHandler {
	return TransitionParcelStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the transition command: load, transition, persist the
// status and the one appended history entry atomically.
func (h *TransitionParcelStatusCommandHandler) Handle(ctx context.Context, cmd TransitionParcelStatusCommand) (*parcel.Parcel, error) {
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

	if err = aggregate.TransitionTo(cmd.Target(), cmd.ActorID(), cmd.Location(), cmd.Note(), time.Now().UTC()); err != nil {
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
