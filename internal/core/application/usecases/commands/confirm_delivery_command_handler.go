package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"
)

// UnregisteredReceiverActorID is the reserved identifier recorded as the
// history-entry author when the confirming receiver has no account.
var UnregisteredReceiverActorID = mustUUID("00000000-0000-0000-0000-000000000001")

func mustUUID(s string) kernel.UUID {
	id, err := kernel.UUIDFromString(s)
	if err != nil {
		panic(err)
	}
	return id
}

// ConfirmDeliveryCommandHandler completes a delivery on behalf of the
// receiver. The receiver is matched by email against the parcel's receiver
// snapshot; a registered account becomes the entry author, an unregistered
// one is recorded under the reserved identifier with an annotated note.
type ConfirmDeliveryCommandHandler struct {
	uowFactory UoWFactory
}

// NewConfirmDeliveryCommandHandler creates a handler for delivery confirmation.
func NewConfirmDeliveryCommandHandler(uowFactory UoWFactory) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the confirmation command. The parcel must be out for
// delivery and the email must match the receiver snapshot.
func (h *ConfirmDeliveryCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveryCommand) (*parcel.Parcel, error) {
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

	if aggregate.Receiver().Email() != cmd.ReceiverEmail() {
		return nil, errs.NewAccessForbiddenErrorWithCause("confirm delivery",
			fmt.Errorf("email does not match the receiver of parcel %s", aggregate.TrackingID()))
	}

	actor, note, err := h.resolveActor(ctx, uow, cmd)
	if err != nil {
		return nil, err
	}

	if err = aggregate.ConfirmDelivery(actor, note, time.Now().UTC()); err != nil {
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

// resolveActor maps the confirming email to a registered account id, or to
// the reserved unregistered-receiver id with the email recorded in the note.
func (h *ConfirmDeliveryCommandHandler) resolveActor(ctx context.Context, uow UoW, cmd ConfirmDeliveryCommand) (kernel.UUID, string, error) {
	account, err := uow.UserRepository().GetByEmail(ctx, cmd.ReceiverEmail())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			note := fmt.Sprintf("Delivery confirmed by unregistered receiver %s", cmd.ReceiverEmail())
			if cmd.Note() != "" {
				note = fmt.Sprintf("%s: %s", note, cmd.Note())
			}
			return UnregisteredReceiverActorID, note, nil
		}
		return kernel.UUID{}, "", err
	}

	note := cmd.Note()
	if note == "" {
		note = "Delivery confirmed by receiver"
	}
	return account.ID(), note, nil
}
