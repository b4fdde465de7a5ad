package handler

import (
	"net/http"
	"time"

	"github.com/deppfellow/starwars-api/internal/middleware"
	"github.com/deppfellow/starwars-api/internal/repository"
	"github.com/deppfellow/starwars-api/internal/server"
	"github.com/deppfellow/starwars-api/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler is the base handler type that holds shared application dependencies.
//
// Concrete handlers embed it to reach config, logger, db and redis
// through *server.Server.
type Handler struct {
	server *server.Server
}

// NewHandler constructs a base Handler.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc represents a typed endpoint function that receives a
// validated request payload and returns a response or an error.
//
// Req is a pointer type, e.g. *model.CreatePlanetPayload, because Echo's
// Bind needs a pointer to populate fields.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// ResponseHandler defines how a successful handler result is written to
// the HTTP response, and how observability attributes are attached for it.
type ResponseHandler interface {
	Handle(c echo.Context, result any) error

	// GetOperation names the handler type in logs.
	GetOperation() string

	AddAttributes(txn *newrelic.Transaction, result any)
}

// JSONResponseHandler writes JSON responses with a given status code.
type JSONResponseHandler struct {
	status int
}

func (h JSONResponseHandler) Handle(c echo.Context, result any) error {
	return c.JSON(h.status, result)
}

func (h JSONResponseHandler) GetOperation() string {
	return "handler"
}

func (h JSONResponseHandler) AddAttributes(txn *newrelic.Transaction, result any) {
	// http.status_code is already set by tracing middleware (EnhanceTracing).
}

// handleRequest is the shared execution pipeline for every endpoint:
//
//   - request binding + validation
//   - a database session carried on the request context
//   - structured logging and New Relic attributes per phase
//   - commit before the response is written
//
// The session is rolled back on every path that does not commit, so a
// failed request leaves no partial writes behind.
func (h Handler) handleRequest(
	c echo.Context,
	req validation.Validatable,
	handler func(c echo.Context) (any, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
		responseHandler.AddAttributes(txn, nil)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("route", route).
		Logger()

	logger.Debug().Msg("handling request")

	// ---------------- Validation phase ---------------------------------------
	validationStart := time.Now()

	if err := validation.BindAndValidate(c, req); err != nil {
		validationDuration := time.Since(validationStart)

		logger.Warn().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("validation.status", "failed")
			txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
		}

		return err
	}

	validationDuration := time.Since(validationStart)
	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
	}

	// ---------------- Session ------------------------------------------------
	session, err := repository.BeginSession(c.Request().Context(), h.server.DB.ORM)
	if err != nil {
		logger.Error().Err(err).Msg("failed to open database session")
		return err
	}
	defer func() {
		if err := session.Rollback(); err != nil {
			logger.Error().Err(err).Msg("failed to roll back database session")
		}
	}()

	c.SetRequest(c.Request().WithContext(repository.WithSession(c.Request().Context(), session)))

	// ---------------- Handler execution phase --------------------------------
	handlerStart := time.Now()
	result, err := handler(c)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		logger.Warn().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", time.Since(start)).
			Msg("handler execution failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		}
		return err
	}

	if err := session.Commit(); err != nil {
		logger.Error().Err(err).Msg("failed to commit database session")
		return err
	}

	totalDuration := time.Since(start)

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		responseHandler.AddAttributes(txn, result)
	}

	logger.Debug().
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", totalDuration).
		Msg("request completed successfully")

	return responseHandler.Handle(c, result)
}

// Handle wraps a typed handler with validation, a database session,
// error handling, logging and tracing. newReq returns a fresh payload per
// request so concurrent requests never share one.
//
//	r.POST("/planet", handler.Handle(h, h.Create, http.StatusOK, newPlanetPayload))
func Handle[Req validation.Validatable, Res any](
	h Handler,
	handler HandlerFunc[Req, Res],
	status int,
	newReq func() Req,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := newReq()
		return h.handleRequest(c, req, func(c echo.Context) (any, error) {
			return handler(c, req)
		}, JSONResponseHandler{status: status})
	}
}

// HandleOK is Handle with a 200 response.
func HandleOK[Req validation.Validatable, Res any](
	h Handler,
	handler HandlerFunc[Req, Res],
	newReq func() Req,
) echo.HandlerFunc {
	return Handle(h, handler, http.StatusOK, newReq)
}
