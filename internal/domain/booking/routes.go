package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns booking router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Post("/precheck", h.Precheck)

	return r
}
