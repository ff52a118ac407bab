package commands_test

import (
	"testing"
	"time"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewTransitionParcelStatusCommand(t *testing.T) {
	t.Run("should reject unknown status", func(t *testing.T) {
		_, err := commands.NewTransitionParcelStatusCommand(kernel.NewUUID(), kernel.NewUUID(),
			parcel.Status("shipped"), "", "")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.TransitionParcelStatusCommand

		require.ErrorIs(t, cmd.Validate(), commands.ErrTransitionParcelStatusCommandIsNotConstructed)
	})
}

func TestTransitionParcelStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := fixtureParcel(t, kernel.NewUUID())
	actorID := kernel.NewUUID()
	cmd, err := commands.NewTransitionParcelStatusCommand(aggregate.ID(), actorID,
		parcel.StatusApproved, "Hub A", "approved by ops")
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		parcelRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionParcelStatusCommandHandler(factory)
	updated, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, parcel.StatusApproved, updated.Status())
	assert.Len(t, updated.History(), 2)
	latest, _ := updated.LatestEntry()
	assert.Equal(t, "Hub A", latest.Location())
	assert.True(t, latest.UpdatedBy().IsEqual(actorID))
	parcelRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestTransitionParcelStatusCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()
	aggregate := fixtureParcel(t, kernel.NewUUID())
	cmd, err := commands.NewTransitionParcelStatusCommand(aggregate.ID(), kernel.NewUUID(),
		parcel.StatusDelivered, "", "")
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionParcelStatusCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	parcelRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestTransitionParcelStatusCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	parcelID := kernel.NewUUID()
	cmd, err := commands.NewTransitionParcelStatusCommand(parcelID, kernel.NewUUID(),
		parcel.StatusApproved, "", "")
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("Get", mock.Anything, parcelID).
			Return(nil, errs.NewObjectNotFoundError("parcelId", parcelID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionParcelStatusCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestTransitionParcelStatusCommandHandler_Handle_ConcurrentConflict(t *testing.T) {
	ctx := t.Context()
	aggregate := fixtureParcel(t, kernel.NewUUID())
	cmd, err := commands.NewTransitionParcelStatusCommand(aggregate.ID(), kernel.NewUUID(),
		parcel.StatusApproved, "", "")
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		parcelRepo.On("Update", mock.Anything, aggregate).
			Return(errs.NewVersionIsInvalidError("parcel.currentStatus")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionParcelStatusCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestTransitionParcelStatusCommandHandler_Handle_BlockedParcel(t *testing.T) {
	ctx := t.Context()
	aggregate := fixtureParcel(t, kernel.NewUUID())
	require.NoError(t, aggregate.SetBlocked(true, kernel.NewUUID(), "", time.Now()))
	cmd, err := commands.NewTransitionParcelStatusCommand(aggregate.ID(), kernel.NewUUID(),
		parcel.StatusApproved, "", "")
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionParcelStatusCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "blocked")
}
