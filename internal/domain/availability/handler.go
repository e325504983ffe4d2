package availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/plannivo/booking-api/internal/pkg/errorhandler"
	"github.com/plannivo/booking-api/internal/pkg/response"
	"github.com/plannivo/booking-api/internal/pkg/validator"
)

// Handler handles availability HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates availability handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// DaySlots handles GET /availability/slots?date=YYYY-MM-DD&instructor_id=UUID
func (h *Handler) DaySlots(w http.ResponseWriter, r *http.Request) {
	date, err := time.Parse(DateLayout, r.URL.Query().Get("date"))
	if err != nil {
		response.BadRequest(w, ErrInvalidDate.Error())
		return
	}
	instructorID, err := uuid.Parse(r.URL.Query().Get("instructor_id"))
	if err != nil {
		response.BadRequest(w, "Invalid instructor_id")
		return
	}

	day, err := h.service.DaySlots(r.Context(), date, instructorID)
	if err != nil {
		if errors.Is(err, ErrSlotsUnavailable) {
			errorhandler.LogExternalServiceError(r.Context(), "slots", "day_slots", err)
			response.ServiceUnavailable(w, "Slot data is temporarily unavailable")
			return
		}
		errorhandler.Internal(r.Context(), w, err)
		return
	}

	response.OK(w, day)
}

// Check handles POST /availability/check
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	var req CheckAvailabilityRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		errorhandler.LogValidationError(r.Context(), errs)
		response.ValidationError(w, errs)
		return
	}

	checkReq, err := req.ToCheckRequest()
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	verdict, err := h.service.Check(r.Context(), checkReq)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStartTime), errors.Is(err, ErrInvalidDuration):
			response.BadRequest(w, err.Error())
		default:
			errorhandler.Internal(r.Context(), w, err)
		}
		return
	}

	response.OK(w, verdict)
}
