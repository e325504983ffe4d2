package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/plannivo/booking-api/internal/domain/availability"
	"github.com/plannivo/booking-api/internal/domain/booking"
	"github.com/plannivo/booking-api/internal/domain/pricing"
	"github.com/plannivo/booking-api/internal/domain/servicetag"
	"github.com/plannivo/booking-api/internal/middleware"
	"github.com/plannivo/booking-api/internal/pkg/jwt"
	"github.com/plannivo/booking-api/internal/pkg/logger"
	pkgresponse "github.com/plannivo/booking-api/internal/pkg/response"
	"github.com/plannivo/booking-api/internal/pkg/ratelimit"
)

const requestTimeout = 20 * time.Second

type routerDeps struct {
	allowedOrigins  []string
	jwtService      *jwt.Service
	limiter         ratelimit.Limiter
	rateLimitWindow time.Duration
	availability    *availability.Service
	pricing         *pricing.Service
	ready           func(ctx context.Context) error
}

func newRouter(d routerDeps) chi.Router {
	authMiddleware := middleware.Auth(d.jwtService)
	staffMiddleware := func(next http.Handler) http.Handler {
		return authMiddleware(middleware.RequireStaff()(next))
	}

	availabilityHandler := availability.NewHandler(d.availability)
	pricingHandler := pricing.NewHandler(d.pricing)
	bookingHandler := booking.NewHandler(booking.NewService(d.availability, d.pricing))
	serviceTagHandler := servicetag.NewHandler()

	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(d.allowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": version,
		})
	})

	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		if d.ready != nil {
			if err := d.ready(r.Context()); err != nil {
				logger.FromContext(r.Context()).Warn().Err(err).Msg("readiness check failed")
				pkgresponse.ServiceUnavailable(w, "Dependencies unavailable")
				return
			}
		}
		pkgresponse.OK(w, map[string]string{"status": "ready"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		if d.limiter != nil {
			r.Use(middleware.RateLimit(d.limiter, d.rateLimitWindow))
		}
		r.Use(middleware.Timeout(requestTimeout))

		r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
			pkgresponse.OK(w, map[string]string{"message": "pong"})
		})

		r.Mount("/availability", availabilityHandler.Routes(authMiddleware))
		r.Mount("/pricing", pricingHandler.Routes(authMiddleware))
		r.Mount("/bookings", bookingHandler.Routes(authMiddleware))
		r.Mount("/service-tags", serviceTagHandler.Routes(staffMiddleware))
	})

	return r
}
