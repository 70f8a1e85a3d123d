// Package http exposes the delivery marketplace over a JSON API built on echo.
// Every route except /health requires a bearer token; the authenticated actor
// is passed into the command or query, which enforces permissions itself.
package http

import (
	"net/http"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/person"
	"marketplace/internal/core/domain/model/request"

	"github.com/labstack/echo/v4"
)

// EventStreamer serves the push event stream for one authenticated actor.
type EventStreamer interface {
	Serve(w http.ResponseWriter, r *http.Request, a actor.Actor) error
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createDeliveryRequestHandler  commands.CreateDeliveryRequestCommandHandler
	applyTransitionHandler        commands.ApplyTransitionCommandHandler
	acceptDeliveryHandler         commands.AcceptDeliveryCommandHandler
	registerDeliveryPersonHandler commands.RegisterDeliveryPersonCommandHandler
	setAvailabilityHandler        commands.SetAvailabilityCommandHandler
	updateLocationHandler         commands.UpdateLocationCommandHandler

	// Query handlers
	getVisibleDeliveryRequestsHandler queries.GetVisibleDeliveryRequestsQueryHandler
	getDeliveryRequestHandler         queries.GetDeliveryRequestQueryHandler
	getDeliveryPersonsHandler         queries.GetDeliveryPersonsQueryHandler
	getMyDeliveryPersonHandler        queries.GetMyDeliveryPersonQueryHandler
	getAdminStatsHandler              queries.GetAdminStatsQueryHandler
	getNearbyDeliveryPersonsHandler   queries.GetNearbyDeliveryPersonsQueryHandler

	events EventStreamer
}

// Handlers groups the use cases the server dispatches to.
type Handlers struct {
	CreateDeliveryRequest  commands.CreateDeliveryRequestCommandHandler
	ApplyTransition        commands.ApplyTransitionCommandHandler
	AcceptDelivery         commands.AcceptDeliveryCommandHandler
	RegisterDeliveryPerson commands.RegisterDeliveryPersonCommandHandler
	SetAvailability        commands.SetAvailabilityCommandHandler
	UpdateLocation         commands.UpdateLocationCommandHandler

	GetVisibleDeliveryRequests queries.GetVisibleDeliveryRequestsQueryHandler
	GetDeliveryRequest         queries.GetDeliveryRequestQueryHandler
	GetDeliveryPersons         queries.GetDeliveryPersonsQueryHandler
	GetMyDeliveryPerson        queries.GetMyDeliveryPersonQueryHandler
	GetAdminStats              queries.GetAdminStatsQueryHandler
	GetNearbyDeliveryPersons   queries.GetNearbyDeliveryPersonsQueryHandler
}

// NewServer creates a new HTTP server. events may be nil, in which case the
// stream route answers 404.
func NewServer(h Handlers, events EventStreamer) *Server {
	return &Server{
		createDeliveryRequestHandler:      h.CreateDeliveryRequest,
		applyTransitionHandler:            h.ApplyTransition,
		acceptDeliveryHandler:             h.AcceptDelivery,
		registerDeliveryPersonHandler:     h.RegisterDeliveryPerson,
		setAvailabilityHandler:            h.SetAvailability,
		updateLocationHandler:             h.UpdateLocation,
		getVisibleDeliveryRequestsHandler: h.GetVisibleDeliveryRequests,
		getDeliveryRequestHandler:         h.GetDeliveryRequest,
		getDeliveryPersonsHandler:         h.GetDeliveryPersons,
		getMyDeliveryPersonHandler:        h.GetMyDeliveryPerson,
		getAdminStatsHandler:              h.GetAdminStats,
		getNearbyDeliveryPersonsHandler:   h.GetNearbyDeliveryPersons,
		events:                            events,
	}
}

// RegisterRoutes mounts the API on e.
func (s *Server) RegisterRoutes(e *echo.Echo, jwtSecret []byte) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	api := e.Group("/api/v1", Authenticate(jwtSecret))

	api.POST("/deliveries", s.CreateDeliveryRequest)
	api.GET("/deliveries", s.GetDeliveryRequests)
	api.GET("/deliveries/:id", s.GetDeliveryRequest)
	api.POST("/deliveries/:id/accept", s.AcceptDelivery)
	api.POST("/deliveries/:id/transitions", s.ApplyTransition)

	api.POST("/delivery-persons", s.RegisterDeliveryPerson)
	api.GET("/delivery-persons", s.GetDeliveryPersons)
	api.GET("/delivery-persons/me", s.GetMyDeliveryPerson)
	api.PUT("/delivery-persons/:id/location", s.UpdateLocation)
	api.PUT("/delivery-persons/:id/availability", s.SetAvailability)

	api.GET("/admin/stats", s.GetAdminStats)
	api.GET("/admin/delivery-persons/nearby", s.GetNearbyDeliveryPersons)

	api.GET("/events/stream", s.StreamEvents)
}

// CreateDeliveryRequest handles POST /api/v1/deliveries.
func (s *Server) CreateDeliveryRequest(c echo.Context) error {
	var body CreateDeliveryRequestBody
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	pickup, err := endpointFromBody("pickup", body.Pickup)
	if err != nil {
		return writeError(c, err)
	}
	dropoff, err := endpointFromBody("dropoff", body.Dropoff)
	if err != nil {
		return writeError(c, err)
	}
	parcel, err := request.NewParcel(body.Parcel.Description, body.Parcel.DeclaredValue, body.Parcel.SpecialInstructions)
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewCreateDeliveryRequestCommand(
		actorFrom(c), pickup, dropoff, parcel, body.Price, body.EstimatedMinutes,
	)
	if err != nil {
		return writeError(c, err)
	}

	created, err := s.createDeliveryRequestHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, toDeliveryRequestResponse(created))
}

// GetDeliveryRequests handles GET /api/v1/deliveries?filter=&status=.
func (s *Server) GetDeliveryRequests(c echo.Context) error {
	var status *request.Status
	if raw := c.QueryParam("status"); raw != "" {
		parsed, err := request.ParseStatus(raw)
		if err != nil {
			return writeError(c, err)
		}
		status = &parsed
	}

	query, err := queries.NewGetVisibleDeliveryRequestsQuery(actorFrom(c), request.Bucket(c.QueryParam("filter")), status)
	if err != nil {
		return writeError(c, err)
	}

	visible, err := s.getVisibleDeliveryRequestsHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, toDeliveryRequestResponses(visible))
}

// GetDeliveryRequest handles GET /api/v1/deliveries/:id.
func (s *Server) GetDeliveryRequest(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid delivery request id")
	}

	query, err := queries.NewGetDeliveryRequestQuery(actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}

	r, err := s.getDeliveryRequestHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, toDeliveryRequestResponse(r))
}

// AcceptDelivery handles POST /api/v1/deliveries/:id/accept.
func (s *Server) AcceptDelivery(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid delivery request id")
	}

	cmd, err := commands.NewAcceptDeliveryCommand(actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}

	accepted, err := s.acceptDeliveryHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, toDeliveryRequestResponse(accepted))
}

// ApplyTransition handles POST /api/v1/deliveries/:id/transitions.
func (s *Server) ApplyTransition(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid delivery request id")
	}

	var body TransitionBody
	if bindErr := c.Bind(&body); bindErr != nil {
		return badRequest(c, "Invalid request body")
	}

	target, err := request.ParseStatus(body.Status)
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewApplyTransitionCommand(actorFrom(c), id, target)
	if err != nil {
		return writeError(c, err)
	}

	updated, err := s.applyTransitionHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, toDeliveryRequestResponse(updated))
}

// RegisterDeliveryPerson handles POST /api/v1/delivery-persons.
func (s *Server) RegisterDeliveryPerson(c echo.Context) error {
	var body RegisterDeliveryPersonBody
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	vehicle, err := person.ParseVehicleType(body.VehicleType)
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewRegisterDeliveryPersonCommand(actorFrom(c), vehicle, body.LicensePlate)
	if err != nil {
		return writeError(c, err)
	}

	registered, err := s.registerDeliveryPersonHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, toDeliveryPersonResponse(registered))
}

// GetDeliveryPersons handles GET /api/v1/delivery-persons?available=.
func (s *Server) GetDeliveryPersons(c echo.Context) error {
	var availableOnly bool
	if err := echo.QueryParamsBinder(c).Bool("available", &availableOnly).BindError(); err != nil {
		return badRequest(c, "Invalid available parameter")
	}

	query, err := queries.NewGetDeliveryPersonsQuery(actorFrom(c), availableOnly)
	if err != nil {
		return writeError(c, err)
	}

	persons, err := s.getDeliveryPersonsHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, toDeliveryPersonResponses(persons))
}

// GetMyDeliveryPerson handles GET /api/v1/delivery-persons/me.
func (s *Server) GetMyDeliveryPerson(c echo.Context) error {
	query, err := queries.NewGetMyDeliveryPersonQuery(actorFrom(c))
	if err != nil {
		return writeError(c, err)
	}

	profile, err := s.getMyDeliveryPersonHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, toDeliveryPersonResponse(profile))
}

// UpdateLocation handles PUT /api/v1/delivery-persons/:id/location.
func (s *Server) UpdateLocation(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid delivery person id")
	}

	var body LocationBody
	if bindErr := c.Bind(&body); bindErr != nil {
		return badRequest(c, "Invalid request body")
	}

	location, err := kernel.NewLocation(body.Lat, body.Lng)
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewUpdateLocationCommand(actorFrom(c), id, location)
	if err != nil {
		return writeError(c, err)
	}

	updated, err := s.updateLocationHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, LocationUpdateResponse{Updated: updated})
}

// SetAvailability handles PUT /api/v1/delivery-persons/:id/availability.
func (s *Server) SetAvailability(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid delivery person id")
	}

	var body AvailabilityBody
	if bindErr := c.Bind(&body); bindErr != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewSetAvailabilityCommand(actorFrom(c), id, body.Available)
	if err != nil {
		return writeError(c, err)
	}

	profile, err := s.setAvailabilityHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, toDeliveryPersonResponse(profile))
}

// GetAdminStats handles GET /api/v1/admin/stats.
func (s *Server) GetAdminStats(c echo.Context) error {
	query, err := queries.NewGetAdminStatsQuery(actorFrom(c), time.Now())
	if err != nil {
		return writeError(c, err)
	}

	stats, err := s.getAdminStatsHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, stats)
}

// GetNearbyDeliveryPersons handles GET /api/v1/admin/delivery-persons/nearby.
func (s *Server) GetNearbyDeliveryPersons(c echo.Context) error {
	var (
		lat, lng, radiusKm float64
		limit              int
	)
	if err := echo.QueryParamsBinder(c).
		MustFloat64("lat", &lat).
		MustFloat64("lng", &lng).
		Float64("radius_km", &radiusKm).
		Int("limit", &limit).
		BindError(); err != nil {
		return badRequest(c, "Invalid search parameters")
	}

	origin, err := kernel.NewLocation(lat, lng)
	if err != nil {
		return writeError(c, err)
	}

	query, err := queries.NewGetNearbyDeliveryPersonsQuery(actorFrom(c), origin, radiusKm, limit)
	if err != nil {
		return writeError(c, err)
	}

	ranked, err := s.getNearbyDeliveryPersonsHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, toNearbyResponses(ranked))
}

// StreamEvents handles GET /api/v1/events/stream (WebSocket upgrade).
func (s *Server) StreamEvents(c echo.Context) error {
	if s.events == nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Code: http.StatusNotFound, Message: "Event stream disabled"})
	}

	if err := s.events.Serve(c.Response(), c.Request(), actorFrom(c)); err != nil {
		c.Logger().Warnf("event stream: %v", err)
	}
	return nil
}

func pathID(c echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(c.Param("id"))
}

func endpointFromBody(kind string, body EndpointBody) (request.Endpoint, error) {
	loc, err := kernel.NewLocation(body.Lat, body.Lng)
	if err != nil {
		return request.Endpoint{}, err
	}
	return request.NewEndpoint(kind, body.Address, loc, body.ContactName, body.ContactPhone)
}
