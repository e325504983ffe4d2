package pricing

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/plannivo/booking-api/internal/pkg/errorhandler"
	"github.com/plannivo/booking-api/internal/pkg/response"
	"github.com/plannivo/booking-api/internal/pkg/validator"
)

// Handler handles pricing HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates pricing handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Quote handles POST /pricing/quote
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		errorhandler.LogValidationError(r.Context(), errs)
		response.ValidationError(w, errs)
		return
	}

	quote, err := h.service.Quote(r.Context(), req.ToParams())
	if err != nil {
		WriteError(w, r, err)
		return
	}

	response.OK(w, quote)
}

// WriteError maps pricing errors to responses
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrInvalidHours):
		response.BadRequest(w, err.Error())
	case errors.Is(err, ErrServiceNotFound), errors.Is(err, ErrPackageNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrPackageUnusable), errors.Is(err, ErrPackageMismatch):
		response.Conflict(w, err.Error())
	default:
		errorhandler.Internal(r.Context(), w, err)
	}
}

// Routes returns pricing router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Post("/quote", h.Quote)

	return r
}
