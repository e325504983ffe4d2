package availability

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns availability router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/slots", h.DaySlots)
	r.Post("/check", h.Check)

	return r
}
