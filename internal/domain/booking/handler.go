package booking

import (
	"errors"
	"net/http"

	"github.com/plannivo/booking-api/internal/domain/availability"
	"github.com/plannivo/booking-api/internal/domain/pricing"
	"github.com/plannivo/booking-api/internal/pkg/errorhandler"
	"github.com/plannivo/booking-api/internal/pkg/response"
	"github.com/plannivo/booking-api/internal/pkg/validator"
)

// Handler handles booking pre-check requests
type Handler struct {
	service *Service
}

// NewHandler creates booking handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Precheck handles POST /bookings/precheck
func (h *Handler) Precheck(w http.ResponseWriter, r *http.Request) {
	var req PrecheckRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		errorhandler.LogValidationError(r.Context(), errs)
		response.ValidationError(w, errs)
		return
	}

	params, err := req.ToParams()
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	result, err := h.service.Precheck(r.Context(), params)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidDuration),
			errors.Is(err, availability.ErrInvalidStartTime),
			errors.Is(err, availability.ErrInvalidDuration):
			response.BadRequest(w, err.Error())
		default:
			pricing.WriteError(w, r, err)
		}
		return
	}

	response.OK(w, result)
}
