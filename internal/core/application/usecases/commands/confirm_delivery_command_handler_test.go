package commands_test

import (
	"testing"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestConfirmDeliveryCommandHandler_Handle_RegisteredReceiver(t *testing.T) {
	ctx := t.Context()
	aggregate := fixtureParcel(t, kernel.NewUUID())
	advanceTo(t, aggregate, parcel.StatusOutForDelivery)
	cmd, err := commands.NewConfirmDeliveryCommand(aggregate.ID(), "jane@example.com", "")
	require.NoError(t, err)

	receiverID := kernel.NewUUID()
	receiver, err := user.NewUser(receiverID, "Jane Doe", "jane@example.com", "", "", "", user.RoleReceiver)
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	userRepo := new(MockUserRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("GetByEmail", mock.Anything, "jane@example.com").Return(receiver, nil).Once(),
		parcelRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfirmDeliveryCommandHandler(factory)
	delivered, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, parcel.StatusDelivered, delivered.Status())
	latest, _ := delivered.LatestEntry()
	assert.True(t, latest.UpdatedBy().IsEqual(receiverID))
	parcelRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestConfirmDeliveryCommandHandler_Handle_UnregisteredReceiver(t *testing.T) {
	ctx := t.Context()
	aggregate := fixtureParcel(t, kernel.NewUUID())
	advanceTo(t, aggregate, parcel.StatusOutForDelivery)
	cmd, err := commands.NewConfirmDeliveryCommand(aggregate.ID(), "jane@example.com", "left at door")
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	userRepo := new(MockUserRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("GetByEmail", mock.Anything, "jane@example.com").
			Return(nil, errs.NewObjectNotFoundError("email", "jane@example.com")).Once(),
		parcelRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfirmDeliveryCommandHandler(factory)
	delivered, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	latest, _ := delivered.LatestEntry()
	assert.True(t, latest.UpdatedBy().IsEqual(commands.UnregisteredReceiverActorID))
	assert.Contains(t, latest.Note(), "unregistered receiver jane@example.com")
	assert.Contains(t, latest.Note(), "left at door")
}

func TestConfirmDeliveryCommandHandler_Handle_EmailMismatch(t *testing.T) {
	ctx := t.Context()
	aggregate := fixtureParcel(t, kernel.NewUUID())
	advanceTo(t, aggregate, parcel.StatusOutForDelivery)
	cmd, err := commands.NewConfirmDeliveryCommand(aggregate.ID(), "stranger@example.com", "")
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfirmDeliveryCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrAccessForbidden)
}

func TestConfirmDeliveryCommandHandler_Handle_NotOutForDelivery(t *testing.T) {
	ctx := t.Context()
	aggregate := fixtureParcel(t, kernel.NewUUID())
	advanceTo(t, aggregate, parcel.StatusInTransit)
	cmd, err := commands.NewConfirmDeliveryCommand(aggregate.ID(), "jane@example.com", "")
	require.NoError(t, err)

	receiver, err := user.NewUser(kernel.NewUUID(), "Jane Doe", "jane@example.com", "", "", "", user.RoleReceiver)
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	userRepo := new(MockUserRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("GetByEmail", mock.Anything, "jane@example.com").Return(receiver, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfirmDeliveryCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "in_transit")
}
