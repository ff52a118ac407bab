package commands_test

import (
	"context"
	"testing"
	"time"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) Add(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) Update(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetByTrackingID(ctx context.Context, trackingID parcel.TrackingID) (*parcel.Parcel, error) {
	args := m.Called(ctx, trackingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) ExistsByTrackingID(ctx context.Context, trackingID parcel.TrackingID) (bool, error) {
	args := m.Called(ctx, trackingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockParcelRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ParcelRepository() ports.ParcelRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelRepository)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	args := m.Called()
	return args.Get(0).(ports.UserRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockParcelUoWFactory struct{ mock.Mock }

func (m *MockParcelUoWFactory) Create() commands.ParcelUoW {
	args := m.Called()
	return args.Get(0).(commands.ParcelUoW)
}

// Fixtures shared by the handler tests.

func fixtureReceiver(t *testing.T) parcel.Receiver {
	t.Helper()
	address, err := parcel.NewAddress("1 Main St", "Springfield", "IL", "62704", "USA")
	require.NoError(t, err)
	receiver, err := parcel.NewReceiver("Jane Doe", "jane@example.com", "+15551234567", address)
	require.NoError(t, err)
	return receiver
}

func fixtureDetails(t *testing.T) parcel.Details {
	t.Helper()
	details, err := parcel.NewDetails(parcel.TypePackage, 2.0, nil, "Books", nil)
	require.NoError(t, err)
	return details
}

func fixtureDeliveryInfo(t *testing.T) parcel.DeliveryInfo {
	t.Helper()
	info, err := parcel.NewDeliveryInfo(nil, "", parcel.UrgencyStandard)
	require.NoError(t, err)
	return info
}

func fixtureSender(t *testing.T, id kernel.UUID) *user.User {
	t.Helper()
	sender, err := user.NewUser(id, "Alice", "alice@example.com", "", "+15550001", "", user.RoleSender)
	require.NoError(t, err)
	return sender
}

func fixtureParcel(t *testing.T, senderID kernel.UUID) *parcel.Parcel {
	t.Helper()
	pricing, err := parcel.NewPricing(50, 20, 0, 0, 70, "")
	require.NoError(t, err)
	p, err := parcel.NewParcel(kernel.NewUUID(), parcel.GenerateTrackingID(time.Now()), senderID,
		fixtureReceiver(t), fixtureDetails(t), fixtureDeliveryInfo(t), pricing, time.Now())
	require.NoError(t, err)
	return p
}

// advanceTo walks a fresh parcel forward along the happy path to target.
func advanceTo(t *testing.T, p *parcel.Parcel, target parcel.Status) {
	t.Helper()
	actor := kernel.NewUUID()
	for _, step := range []parcel.Status{
		parcel.StatusApproved,
		parcel.StatusPickedUp,
		parcel.StatusInTransit,
		parcel.StatusOutForDelivery,
		parcel.StatusDelivered,
	} {
		require.NoError(t, p.TransitionTo(step, actor, "", "", time.Now()))
		if step == target {
			return
		}
	}
}
