package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrTransitionParcelStatusCommandIsNotConstructed = errors.New(
		"TransitionParcelStatusCommand must be created via NewTransitionParcelStatusCommand constructor",
	)
)

// TransitionParcelStatusCommand represents a request to move a parcel to a
// new lifecycle status, with optional location and note annotations for
// the history entry.
type TransitionParcelStatusCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	actorID  kernel.UUID
	target   parcel.Status
	location string
	note     string

	guard guard.ConstructorGuard
}

// NewTransitionParcelStatusCommand creates a status-transition command.
// The target must be one of the nine valid statuses; whether the move is
// allowed from the current status is decided by the aggregate.
func NewTransitionParcelStatusCommand(parcelID, actorID kernel.UUID, target parcel.Status, location, note string) (TransitionParcelStatusCommand, error) {
	cmd := TransitionParcelStatusCommand{
		location: location,
		note:     note,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setActorID(actorID),
		cmd.setTarget(target),
	); err != nil {
		return TransitionParcelStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionParcelStatusCommand) Validate() error {
	return c.guard.Validate(ErrTransitionParcelStatusCommandIsNotConstructed)
}

// ParcelID returns the target parcel id.
func (c TransitionParcelStatusCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// ActorID returns who performs the transition.
func (c TransitionParcelStatusCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Target returns the requested status.
func (c TransitionParcelStatusCommand) Target() parcel.Status {
	return c.target
}

// Location returns the optional location annotation.
func (c TransitionParcelStatusCommand) Location() string {
	return c.location
}

// Note returns the optional note annotation.
func (c TransitionParcelStatusCommand) Note() string {
	return c.note
}

func (c *TransitionParcelStatusCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *TransitionParcelStatusCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return errs.NewValueIsRequiredError("actorId")
	}

	c.actorID = actorID
	return nil
}

func (c *TransitionParcelStatusCommand) setTarget(target parcel.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}
