package http

import (
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Identity headers set by the upstream gateway after authentication.
// The service trusts them completely and never re-verifies credentials.
const (
	HeaderActorID    = "X-Actor-Id"
	HeaderActorRole  = "X-Actor-Role"
	HeaderActorEmail = "X-Actor-Email"
)

// actorFromRequest resolves the authenticated identity from the gateway
// headers.
func actorFromRequest(ctx echo.Context) (queries.Actor, error) {
	rawID := ctx.Request().Header.Get(HeaderActorID)
	if rawID == "" {
		return queries.Actor{}, errs.NewValueIsRequiredError(HeaderActorID)
	}

	id, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return queries.Actor{}, errs.NewValueIsInvalidErrorWithCause(HeaderActorID, err)
	}

	role := user.Role(ctx.Request().Header.Get(HeaderActorRole))
	email := ctx.Request().Header.Get(HeaderActorEmail)

	return queries.NewActor(id, role, email)
}

// adminFromRequest resolves the actor and requires the admin role.
func adminFromRequest(ctx echo.Context) (queries.Actor, error) {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return queries.Actor{}, err
	}
	if !actor.IsAdmin() {
		return queries.Actor{}, errs.NewAccessForbiddenError("administer parcels")
	}
	return actor, nil
}
