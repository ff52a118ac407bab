package commands_test

import (
	"errors"
	"testing"
	"time"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateParcelCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	senderID := kernel.NewUUID()
	cmd, err := commands.NewCreateParcelCommand(kernel.NewUUID(), senderID,
		fixtureReceiver(t), fixtureDetails(t), fixtureDeliveryInfo(t), 0, "")
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	userRepo := new(MockUserRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", mock.Anything, senderID).Return(fixtureSender(t, senderID), nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("ExistsByTrackingID", mock.Anything, mock.AnythingOfType("parcel.TrackingID")).Return(false, nil).Once(),
		parcelRepo.On("Add", mock.Anything, mock.AnythingOfType("*parcel.Parcel")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateParcelCommandHandler(factory)
	created, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, parcel.StatusRequested, created.Status())
	assert.True(t, parcel.IsValidTrackingID(created.TrackingID().String()))
	assert.Equal(t, 70.0, created.Pricing().TotalFee())
	assert.Len(t, created.History(), 1)
	parcelRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateParcelCommandHandler_Handle_SenderNotFound(t *testing.T) {
	ctx := t.Context()
	senderID := kernel.NewUUID()
	cmd, err := commands.NewCreateParcelCommand(kernel.NewUUID(), senderID,
		fixtureReceiver(t), fixtureDetails(t), fixtureDeliveryInfo(t), 0, "")
	require.NoError(t, err)

	userRepo := new(MockUserRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", mock.Anything, senderID).
			Return(nil, errs.NewObjectNotFoundError("userId", senderID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateParcelCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertExpectations(t)
}

func TestCreateParcelCommandHandler_Handle_NonSenderForbidden(t *testing.T) {
	ctx := t.Context()
	adminID := kernel.NewUUID()
	cmd, err := commands.NewCreateParcelCommand(kernel.NewUUID(), adminID,
		fixtureReceiver(t), fixtureDetails(t), fixtureDeliveryInfo(t), 0, "")
	require.NoError(t, err)

	admin, err := user.NewUser(adminID, "Root", "root@example.com", "", "", "", user.RoleAdmin)
	require.NoError(t, err)

	userRepo := new(MockUserRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", mock.Anything, adminID).Return(admin, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateParcelCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrAccessForbidden)
}

func TestCreateParcelCommandHandler_Handle_BlockedSenderForbidden(t *testing.T) {
	ctx := t.Context()
	senderID := kernel.NewUUID()
	cmd, err := commands.NewCreateParcelCommand(kernel.NewUUID(), senderID,
		fixtureReceiver(t), fixtureDetails(t), fixtureDeliveryInfo(t), 0, "")
	require.NoError(t, err)

	blocked := user.RestoreUser(senderID, "Alice", "alice@example.com", "", "", "",
		user.RoleSender, true, true, false, user.ActivityBlocked)

	userRepo := new(MockUserRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", mock.Anything, senderID).Return(blocked, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateParcelCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrAccessForbidden)
}

func TestCreateParcelCommandHandler_Handle_PastPreferredDate(t *testing.T) {
	ctx := t.Context()
	yesterday := time.Now().Add(-24 * time.Hour)
	cmd, err := commands.NewCreateParcelCommand(kernel.NewUUID(), kernel.NewUUID(),
		fixtureReceiver(t), fixtureDetails(t), futureDeliveryInfo(t, yesterday), 0, "")
	require.NoError(t, err)

	factory := new(MockUoWFactory)
	h := commands.NewCreateParcelCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateParcelCommandHandler_Handle_TrackingIDExhaustion(t *testing.T) {
	ctx := t.Context()
	senderID := kernel.NewUUID()
	cmd, err := commands.NewCreateParcelCommand(kernel.NewUUID(), senderID,
		fixtureReceiver(t), fixtureDetails(t), fixtureDeliveryInfo(t), 0, "")
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	parcelRepo.On("ExistsByTrackingID", mock.Anything, mock.AnythingOfType("parcel.TrackingID")).
		Return(true, nil).Times(parcel.MaxTrackingIDAttempts)

	userRepo := new(MockUserRepository)
	userRepo.On("Get", mock.Anything, senderID).Return(fixtureSender(t, senderID), nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("UserRepository").Return(userRepo).Once()
	uow.On("ParcelRepository").Return(parcelRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateParcelCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInternal)
	parcelRepo.AssertExpectations(t)
}

func TestCreateParcelCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateParcelCommand(kernel.NewUUID(), kernel.NewUUID(),
		fixtureReceiver(t), fixtureDetails(t), fixtureDeliveryInfo(t), 0, "")
	require.NoError(t, err)

	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewCreateParcelCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
}
