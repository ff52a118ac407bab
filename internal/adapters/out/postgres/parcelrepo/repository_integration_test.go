package parcelrepo_test

import (
	"context"
	"testing"
	"time"

	"parceltrack/internal/adapters/out/postgres/parcelrepo"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type ParcelRepositoryTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *parcelrepo.GormParcelRepository
}

func (suite *ParcelRepositoryTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&parcelrepo.ParcelDTO{}, &parcelrepo.StatusLogDTO{})
	suite.Require().NoError(err)

	suite.repo = parcelrepo.NewGormParcelRepository(db, &mockAggregateTracker{})
}

func (suite *ParcelRepositoryTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *ParcelRepositoryTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE parcels, parcel_status_logs").Error
	suite.Require().NoError(err)
}

// mockAggregateTracker satisfies the repository's tracker dependency.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {
}

func (suite *ParcelRepositoryTestSuite) newParcel() *parcel.Parcel {
	address, err := parcel.NewAddress("1 Main St", "Springfield", "IL", "62701", "US")
	suite.Require().NoError(err)
	receiver, err := parcel.NewReceiver("Mia Flores", "mia@example.com", "+15550100", address)
	suite.Require().NoError(err)

	dimensions, err := parcel.NewDimensions(30, 20, 10)
	suite.Require().NoError(err)
	declared := 250.0
	details, err := parcel.NewDetails(parcel.TypeElectronics, 3.5, &dimensions, "Camera", &declared)
	suite.Require().NoError(err)

	preferred := time.Now().Add(72 * time.Hour).Truncate(time.Second).UTC()
	deliveryInfo, err := parcel.NewDeliveryInfo(&preferred, "Ring twice", parcel.UrgencyExpress)
	suite.Require().NoError(err)

	pricing, err := parcel.NewPricing(100, 20, 60, 10, 170, "SAVE10")
	suite.Require().NoError(err)

	aggregate, err := parcel.NewParcel(
		kernel.NewUUID(),
		parcel.GenerateTrackingID(time.Now()),
		kernel.NewUUID(),
		receiver, details, deliveryInfo, pricing,
		time.Now(),
	)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *ParcelRepositoryTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	stored := suite.newParcel()

	err := suite.repo.Add(ctx, stored)
	suite.Require().NoError(err)

	loaded, err := suite.repo.Get(ctx, stored.ID())
	suite.Require().NoError(err)

	suite.True(stored.ID().IsEqual(loaded.ID()))
	suite.Equal(stored.TrackingID().String(), loaded.TrackingID().String())
	suite.True(stored.SenderID().IsEqual(loaded.SenderID()))
	suite.Equal(parcel.StatusRequested, loaded.Status())

	suite.Equal("mia@example.com", loaded.Receiver().Email())
	suite.Equal(parcel.TypeElectronics, loaded.Details().Type())
	suite.Equal(3.5, loaded.Details().WeightKg())
	suite.Require().NotNil(loaded.Details().Dimensions())
	suite.Equal(30.0, loaded.Details().Dimensions().Length())
	suite.Require().NotNil(loaded.Details().DeclaredValue())
	suite.Equal(250.0, *loaded.Details().DeclaredValue())

	suite.Equal(parcel.UrgencyExpress, loaded.DeliveryInfo().Urgency())
	suite.Equal("Ring twice", loaded.DeliveryInfo().Instructions())

	suite.Equal(170.0, loaded.Pricing().TotalFee())
	suite.Equal("SAVE10", loaded.Pricing().CouponCode())

	suite.Require().Len(loaded.History(), 1)
	suite.Equal(parcel.StatusRequested, loaded.History()[0].Status())
	suite.Nil(loaded.Personnel())
}

func (suite *ParcelRepositoryTestSuite) TestGet_NotFound() {
	_, err := suite.repo.Get(context.Background(), kernel.NewUUID())

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ParcelRepositoryTestSuite) TestGetByTrackingID() {
	ctx := context.Background()
	stored := suite.newParcel()
	suite.Require().NoError(suite.repo.Add(ctx, stored))

	loaded, err := suite.repo.GetByTrackingID(ctx, stored.TrackingID())
	suite.Require().NoError(err)
	suite.True(stored.ID().IsEqual(loaded.ID()))

	_, err = suite.repo.GetByTrackingID(ctx, parcel.GenerateTrackingID(time.Now()))
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ParcelRepositoryTestSuite) TestExistsByTrackingID() {
	ctx := context.Background()
	stored := suite.newParcel()
	suite.Require().NoError(suite.repo.Add(ctx, stored))

	exists, err := suite.repo.ExistsByTrackingID(ctx, stored.TrackingID())
	suite.Require().NoError(err)
	suite.True(exists)

	exists, err = suite.repo.ExistsByTrackingID(ctx, parcel.GenerateTrackingID(time.Now()))
	suite.Require().NoError(err)
	suite.False(exists)
}

func (suite *ParcelRepositoryTestSuite) TestUpdate_AppendsOnlyNewLogEntries() {
	ctx := context.Background()
	stored := suite.newParcel()
	suite.Require().NoError(suite.repo.Add(ctx, stored))

	loaded, err := suite.repo.Get(ctx, stored.ID())
	suite.Require().NoError(err)

	admin := kernel.NewUUID()
	suite.Require().NoError(loaded.TransitionTo(parcel.StatusApproved, admin, "", "", time.Now()))
	suite.Require().NoError(suite.repo.Update(ctx, loaded))

	reloaded, err := suite.repo.Get(ctx, stored.ID())
	suite.Require().NoError(err)
	suite.Equal(parcel.StatusApproved, reloaded.Status())
	suite.Require().Len(reloaded.History(), 2)
	suite.Equal(parcel.StatusRequested, reloaded.History()[0].Status())
	suite.Equal(parcel.StatusApproved, reloaded.History()[1].Status())

	var count int64
	err = suite.db.Table("parcel_status_logs").Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(2), count)
}

func (suite *ParcelRepositoryTestSuite) TestUpdate_ConcurrentTransition_Conflicts() {
	ctx := context.Background()
	stored := suite.newParcel()
	suite.Require().NoError(suite.repo.Add(ctx, stored))

	first, err := suite.repo.Get(ctx, stored.ID())
	suite.Require().NoError(err)
	second, err := suite.repo.Get(ctx, stored.ID())
	suite.Require().NoError(err)

	admin := kernel.NewUUID()
	suite.Require().NoError(first.TransitionTo(parcel.StatusApproved, admin, "", "", time.Now()))
	suite.Require().NoError(suite.repo.Update(ctx, first))

	// second still believes the parcel is requested
	suite.Require().NoError(second.Cancel(stored.SenderID(), "", time.Now()))
	err = suite.repo.Update(ctx, second)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrVersionIsInvalid)

	reloaded, err := suite.repo.Get(ctx, stored.ID())
	suite.Require().NoError(err)
	suite.Equal(parcel.StatusApproved, reloaded.Status())
}

func (suite *ParcelRepositoryTestSuite) TestUpdate_PersistsAssignedPersonnel() {
	ctx := context.Background()
	stored := suite.newParcel()
	suite.Require().NoError(suite.repo.Add(ctx, stored))

	loaded, err := suite.repo.Get(ctx, stored.ID())
	suite.Require().NoError(err)

	courier, err := parcel.NewDeliveryPersonnel("Sam Reed", "sam@example.com", "+15550123", "EMP-42", "Van 7")
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.AssignPersonnel(courier, kernel.NewUUID(), "", time.Now()))
	suite.Require().NoError(suite.repo.Update(ctx, loaded))

	reloaded, err := suite.repo.Get(ctx, stored.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(reloaded.Personnel())
	suite.Equal("EMP-42", reloaded.Personnel().EmployeeID())
	suite.Equal("Van 7", reloaded.Personnel().VehicleInfo())
}

func (suite *ParcelRepositoryTestSuite) TestDelete_RemovesParcelAndLogs() {
	ctx := context.Background()
	stored := suite.newParcel()
	suite.Require().NoError(suite.repo.Add(ctx, stored))

	err := suite.repo.Delete(ctx, stored.ID())
	suite.Require().NoError(err)

	_, err = suite.repo.Get(ctx, stored.ID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	var count int64
	err = suite.db.Table("parcel_status_logs").Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(0), count)
}

func (suite *ParcelRepositoryTestSuite) TestDelete_NotFound() {
	err := suite.repo.Delete(context.Background(), kernel.NewUUID())

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func TestParcelRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(ParcelRepositoryTestSuite))
}
