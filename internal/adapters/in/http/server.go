// Package http is the inbound HTTP adapter: it binds requests, resolves
// the gateway-authenticated actor and dispatches into command and query
// handlers. Business rules live below; this layer only translates.
package http

import (
	"net/http"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createParcelHandler       commands.CreateParcelCommandHandler
	updateParcelHandler       commands.UpdateParcelDetailsCommandHandler
	transitionStatusHandler   commands.TransitionParcelStatusCommandHandler
	cancelParcelHandler       commands.CancelParcelCommandHandler
	confirmDeliveryHandler    commands.ConfirmDeliveryCommandHandler
	blockParcelHandler        commands.BlockParcelCommandHandler
	assignPersonnelHandler    commands.AssignDeliveryPersonnelCommandHandler
	deleteParcelHandler       commands.DeleteParcelCommandHandler
	getParcelHandler          queries.GetParcelQueryHandler
	trackParcelHandler        queries.TrackParcelQueryHandler
	listParcelsHandler        queries.ListParcelsQueryHandler
	listUsersHandler          queries.ListUsersQueryHandler
	getNotificationsHandler   queries.GetNotificationsQueryHandler
	getParcelStatsHandler     queries.GetParcelStatsQueryHandler
}

// NewServer creates an HTTP server with the required command and query
// handlers.
func NewServer(
	createParcelHandler commands.CreateParcelCommandHandler,
	updateParcelHandler commands.UpdateParcelDetailsCommandHandler,
	transitionStatusHandler commands.TransitionParcelStatusCommandHandler,
	cancelParcelHandler commands.CancelParcelCommandHandler,
	confirmDeliveryHandler commands.ConfirmDeliveryCommandHandler,
	blockParcelHandler commands.BlockParcelCommandHandler,
	assignPersonnelHandler commands.AssignDeliveryPersonnelCommandHandler,
	deleteParcelHandler commands.DeleteParcelCommandHandler,
	getParcelHandler queries.GetParcelQueryHandler,
	trackParcelHandler queries.TrackParcelQueryHandler,
	listParcelsHandler queries.ListParcelsQueryHandler,
	listUsersHandler queries.ListUsersQueryHandler,
	getNotificationsHandler queries.GetNotificationsQueryHandler,
	getParcelStatsHandler queries.GetParcelStatsQueryHandler,
) *Server {
	return &Server{
		createParcelHandler:     createParcelHandler,
		updateParcelHandler:     updateParcelHandler,
		transitionStatusHandler: transitionStatusHandler,
		cancelParcelHandler:     cancelParcelHandler,
		confirmDeliveryHandler:  confirmDeliveryHandler,
		blockParcelHandler:      blockParcelHandler,
		assignPersonnelHandler:  assignPersonnelHandler,
		deleteParcelHandler:     deleteParcelHandler,
		getParcelHandler:        getParcelHandler,
		trackParcelHandler:      trackParcelHandler,
		listParcelsHandler:      listParcelsHandler,
		listUsersHandler:        listUsersHandler,
		getNotificationsHandler: getNotificationsHandler,
		getParcelStatsHandler:   getParcelStatsHandler,
	}
}

// RegisterRoutes mounts every endpoint under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/parcels", s.CreateParcel)
	api.GET("/parcels", s.GetParcels)
	api.GET("/parcels/stats", s.GetParcelStats)
	api.GET("/parcels/:id", s.GetParcel)
	api.PATCH("/parcels/:id", s.UpdateParcel)
	api.DELETE("/parcels/:id", s.DeleteParcel)
	api.POST("/parcels/:id/status", s.TransitionParcelStatus)
	api.POST("/parcels/:id/cancel", s.CancelParcel)
	api.POST("/parcels/:id/confirm-delivery", s.ConfirmDelivery)
	api.POST("/parcels/:id/block", s.BlockParcel)
	api.POST("/parcels/:id/personnel", s.AssignDeliveryPersonnel)

	api.GET("/tracking/:trackingId", s.TrackParcel)
	api.GET("/users", s.GetUsers)
	api.GET("/notifications", s.GetNotifications)
}

func parcelIDFromPath(ctx echo.Context) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return id, nil
}

// queryParamsMap flattens the request query string; repeated keys keep
// their first value.
func queryParamsMap(ctx echo.Context) map[string]string {
	params := map[string]string{}
	for key, values := range ctx.QueryParams() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params
}

// CreateParcel handles POST /api/v1/parcels.
func (s *Server) CreateParcel(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var request createParcelRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	receiver, err := request.toReceiver()
	if err != nil {
		return respondError(ctx, err)
	}
	details, err := request.toDetails()
	if err != nil {
		return respondError(ctx, err)
	}
	deliveryInfo, err := request.toDeliveryInfo()
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCreateParcelCommand(
		kernel.NewUUID(), actor.ID,
		receiver, details, deliveryInfo,
		request.Discount, request.CouponCode,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	created, err := s.createParcelHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toParcelResponse(created))
}

// GetParcels handles GET /api/v1/parcels.
func (s *Server) GetParcels(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewListParcelsQuery(actor, queryParamsMap(ctx))
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.listParcelsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, result)
}

// GetParcel handles GET /api/v1/parcels/:id.
func (s *Server) GetParcel(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	parcelID, err := parcelIDFromPath(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetParcelQuery(parcelID, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.getParcelHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, result)
}

// TrackParcel handles GET /api/v1/tracking/:trackingId. Public: anyone
// holding a tracking id may follow the parcel.
func (s *Server) TrackParcel(ctx echo.Context) error {
	query, err := queries.NewTrackParcelQuery(ctx.Param("trackingId"))
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.trackParcelHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, result)
}

// UpdateParcel handles PATCH /api/v1/parcels/:id.
func (s *Server) UpdateParcel(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	parcelID, err := parcelIDFromPath(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var request updateParcelRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewUpdateParcelDetailsCommand(
		parcelID, actor.ID,
		request.toReceiverPatch(),
		request.toDetailsPatch(),
		request.toDeliveryInfoPatch(),
	)
	if err != nil {
		return respondError(ctx, err)
	}

	updated, err := s.updateParcelHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toParcelResponse(updated))
}

// TransitionParcelStatus handles POST /api/v1/parcels/:id/status.
// Admin-only.
func (s *Server) TransitionParcelStatus(ctx echo.Context) error {
	actor, err := adminFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	parcelID, err := parcelIDFromPath(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var request transitionStatusRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewTransitionParcelStatusCommand(
		parcelID, actor.ID,
		parcel.Status(request.Status),
		request.Location, request.Note,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	updated, err := s.transitionStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toParcelResponse(updated))
}

// CancelParcel handles POST /api/v1/parcels/:id/cancel. The actor must
// be the booking sender.
func (s *Server) CancelParcel(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	parcelID, err := parcelIDFromPath(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var request cancelParcelRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewCancelParcelCommand(parcelID, actor.ID, request.Reason)
	if err != nil {
		return respondError(ctx, err)
	}

	cancelled, err := s.cancelParcelHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toParcelResponse(cancelled))
}

// ConfirmDelivery handles POST /api/v1/parcels/:id/confirm-delivery.
// The actor's email must match the parcel's receiver snapshot; a
// registered account is not required.
func (s *Server) ConfirmDelivery(ctx echo.Context) error {
	parcelID, err := parcelIDFromPath(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	email := ctx.Request().Header.Get(HeaderActorEmail)

	var request confirmDeliveryRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewConfirmDeliveryCommand(parcelID, email, request.Note)
	if err != nil {
		return respondError(ctx, err)
	}

	confirmed, err := s.confirmDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toParcelResponse(confirmed))
}

// BlockParcel handles POST /api/v1/parcels/:id/block. Admin-only.
func (s *Server) BlockParcel(ctx echo.Context) error {
	actor, err := adminFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	parcelID, err := parcelIDFromPath(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var request blockParcelRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewBlockParcelCommand(parcelID, actor.ID, request.IsBlocked, request.Reason)
	if err != nil {
		return respondError(ctx, err)
	}

	updated, err := s.blockParcelHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toParcelResponse(updated))
}

// AssignDeliveryPersonnel handles POST /api/v1/parcels/:id/personnel.
// Admin-only.
func (s *Server) AssignDeliveryPersonnel(ctx echo.Context) error {
	actor, err := adminFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	parcelID, err := parcelIDFromPath(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var request assignPersonnelRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	personnel, err := parcel.NewDeliveryPersonnel(
		request.Name, request.Email, request.Phone,
		request.EmployeeID, request.VehicleInfo,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewAssignDeliveryPersonnelCommand(parcelID, actor.ID, personnel, request.Note)
	if err != nil {
		return respondError(ctx, err)
	}

	updated, err := s.assignPersonnelHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toParcelResponse(updated))
}

// DeleteParcel handles DELETE /api/v1/parcels/:id. Admin-only.
func (s *Server) DeleteParcel(ctx echo.Context) error {
	if _, err := adminFromRequest(ctx); err != nil {
		return respondError(ctx, err)
	}

	parcelID, err := parcelIDFromPath(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewDeleteParcelCommand(parcelID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.deleteParcelHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetUsers handles GET /api/v1/users. Admin-only, enforced by the query
// handler.
func (s *Server) GetUsers(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewListUsersQuery(actor, queryParamsMap(ctx))
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.listUsersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, result)
}

// GetNotifications handles GET /api/v1/notifications.
func (s *Server) GetNotifications(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetNotificationsQuery(actor)
	if err != nil {
		return respondError(ctx, err)
	}

	feed, err := s.getNotificationsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, feed)
}

// GetParcelStats handles GET /api/v1/parcels/stats. Admin-only,
// enforced by the query handler.
func (s *Server) GetParcelStats(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetParcelStatsQuery(actor)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.getParcelStatsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, result)
}
