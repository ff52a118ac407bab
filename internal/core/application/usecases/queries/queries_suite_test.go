package queries_test

import (
	"context"
	"time"

	"parceltrack/internal/adapters/out/postgres/parcelrepo"
	"parceltrack/internal/adapters/out/postgres/userrepo"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// parcelQueriesSuite is the shared base for query handler suites: one
// postgres container per suite, migrated schema, and fixture builders
// that go through the write-side repositories.
type parcelQueriesSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	parcelRepo *parcelrepo.GormParcelRepository
	userRepo   *userrepo.GormUserRepository
}

func (suite *parcelQueriesSuite) SetupSuite() {
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

	err = db.AutoMigrate(&parcelrepo.ParcelDTO{}, &parcelrepo.StatusLogDTO{}, &userrepo.UserDTO{})
	suite.Require().NoError(err)

	suite.parcelRepo = parcelrepo.NewGormParcelRepository(db, &mockAggregateTracker{})
	suite.userRepo = userrepo.NewGormUserRepository(db)
}

func (suite *parcelQueriesSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *parcelQueriesSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE parcels, parcel_status_logs, users CASCADE").Error
	suite.Require().NoError(err)
}

// mockAggregateTracker satisfies the repository's tracker dependency.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {
}

func (suite *parcelQueriesSuite) actor(role user.Role, email string) queries.Actor {
	actor, err := queries.NewActor(kernel.NewUUID(), role, email)
	suite.Require().NoError(err)
	return actor
}

func (suite *parcelQueriesSuite) adminActor() queries.Actor {
	return suite.actor(user.RoleAdmin, "admin@example.com")
}

// storedParcel creates a 2kg standard package from senderID to
// receiverEmail and persists it through the write-side repository.
func (suite *parcelQueriesSuite) storedParcel(senderID kernel.UUID, receiverEmail string) *parcel.Parcel {
	address, err := parcel.NewAddress("221B Baker St", "London", "LDN", "NW1 6XE", "UK")
	suite.Require().NoError(err)
	receiver, err := parcel.NewReceiver("Mia Flores", receiverEmail, "+15550100", address)
	suite.Require().NoError(err)
	details, err := parcel.NewDetails(parcel.TypePackage, 2, nil, "Books", nil)
	suite.Require().NoError(err)
	deliveryInfo, err := parcel.NewDeliveryInfo(nil, "", parcel.UrgencyStandard)
	suite.Require().NoError(err)
	pricing, err := parcel.NewPricing(50, 20, 0, 0, 70, "")
	suite.Require().NoError(err)

	aggregate, err := parcel.NewParcel(
		kernel.NewUUID(),
		parcel.GenerateTrackingID(time.Now()),
		senderID,
		receiver, details, deliveryInfo, pricing,
		time.Now(),
	)
	suite.Require().NoError(err)

	err = suite.parcelRepo.Add(context.Background(), aggregate)
	suite.Require().NoError(err)
	return aggregate
}

// advanceStored walks the parcel through the given statuses and persists
// every step.
func (suite *parcelQueriesSuite) advanceStored(aggregate *parcel.Parcel, actor kernel.UUID, path ...parcel.Status) {
	for _, target := range path {
		err := aggregate.TransitionTo(target, actor, "", "", time.Now())
		suite.Require().NoError(err)
	}
	err := suite.parcelRepo.Update(context.Background(), aggregate)
	suite.Require().NoError(err)
}

// storedUser persists a user account for listing tests.
func (suite *parcelQueriesSuite) storedUser(name, email string, role user.Role) *user.User {
	account, err := user.NewUser(kernel.NewUUID(), name, email, "hash", "+15550199", "", role)
	suite.Require().NoError(err)
	err = suite.userRepo.Add(context.Background(), account)
	suite.Require().NoError(err)
	return account
}
