package servicetag

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/plannivo/booking-api/internal/pkg/errorhandler"
	"github.com/plannivo/booking-api/internal/pkg/response"
	"github.com/plannivo/booking-api/internal/pkg/validator"
)

// Handler exposes the classifier over HTTP
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Classify handles POST /service-tags/classify
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	var req ClassifyRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		errorhandler.LogValidationError(r.Context(), errs)
		response.ValidationError(w, errs)
		return
	}

	resp := ClassifyResponse{Tags: Classify(req.Text)}
	if req.Service != "" {
		svc := Classify(req.Service)
		matches := MatchSets(resp.Tags, svc)
		resp.ServiceTags = &svc
		resp.Matches = &matches
	}

	response.OK(w, resp)
}

// Routes returns service tag router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Post("/classify", h.Classify)

	return r
}
