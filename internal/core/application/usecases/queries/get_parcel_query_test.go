package queries_test

import (
	"testing"

	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testActor(t *testing.T, role user.Role) queries.Actor {
	t.Helper()
	actor, err := queries.NewActor(kernel.NewUUID(), role, "actor@example.com")
	require.NoError(t, err)
	return actor
}

func TestNewGetParcelQuery_Valid(t *testing.T) {
	query, err := queries.NewGetParcelQuery(kernel.NewUUID(), testActor(t, user.RoleSender))
	require.NoError(t, err)
	require.NoError(t, query.Validate())
}

func TestNewGetParcelQuery_EmptyParcelID(t *testing.T) {
	_, err := queries.NewGetParcelQuery(kernel.UUID{}, testActor(t, user.RoleSender))
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestGetParcelQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetParcelQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetParcelQueryIsNotConstructed)
}

func TestNewActor_NormalizesEmail(t *testing.T) {
	actor, err := queries.NewActor(kernel.NewUUID(), user.RoleReceiver, "  Mia.Flores@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "mia.flores@example.com", actor.Email)
}

func TestNewActor_InvalidRole(t *testing.T) {
	_, err := queries.NewActor(kernel.NewUUID(), user.Role("ghost"), "a@b.com")
	require.Error(t, err)
}
