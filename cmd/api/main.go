package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/plannivo/booking-api/internal/config"
	"github.com/plannivo/booking-api/internal/domain/availability"
	"github.com/plannivo/booking-api/internal/domain/pricing"
	"github.com/plannivo/booking-api/internal/pkg/backend"
	"github.com/plannivo/booking-api/internal/pkg/database"
	"github.com/plannivo/booking-api/internal/pkg/jwt"
	"github.com/plannivo/booking-api/internal/pkg/logger"
	"github.com/plannivo/booking-api/internal/pkg/otelx"
	"github.com/plannivo/booking-api/internal/pkg/ratelimit"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

const serviceName = "plannivo-booking-api"

func main() {
	cfg := config.Load()
	if err := logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env, LogFile: cfg.LogFile}); err != nil {
		log.Fatal().Err(err).Msg("Failed to init logger")
	}

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Str("slot_source", cfg.SlotSource).
		Str("version", version).
		Msg("Starting booking API")

	shutdownTracing, err := otelx.Setup(context.Background(), otelx.Config{
		Enabled:      cfg.OTelEnabled,
		ServiceName:  serviceName,
		OTLPEndpoint: cfg.OTelEndpoint,
		SampleRatio:  cfg.OTelSamplingRate,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up tracing")
	}

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	grid, err := availability.NewGrid(cfg.DayStart, cfg.DayEnd)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid DAY_START/DAY_END")
	}

	source, err := newSlotSource(cfg, db, grid)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure slot source")
	}

	var limiter ratelimit.Limiter = ratelimit.NewMemoryLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	if redis != nil {
		limiter = ratelimit.NewRedisLimiter(redis, cfg.RateLimitRequests, cfg.RateLimitWindow, "booking-api:rl")
	}

	// ---------- Services ----------
	var pricingRepo pricing.Repository
	if db != nil {
		pricingRepo = pricing.NewRepository(db)
	}

	policy := availability.ParseFailurePolicy(cfg.AvailabilityFailurePolicy)
	availabilityService := availability.NewService(source, grid, policy, cfg.MaxAlternatives)
	pricingService := pricing.NewService(pricingRepo, pricing.NewCalculator(pricing.Config{
		Currency:          cfg.PricingCurrency,
		Step:              cfg.PricingStep,
		DefaultHourlyRate: cfg.PricingDefaultHourlyRate,
	}))

	r := newRouter(routerDeps{
		allowedOrigins:  cfg.AllowedOrigins,
		jwtService:      jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL),
		limiter:         limiter,
		rateLimitWindow: cfg.RateLimitWindow,
		availability:    availabilityService,
		pricing:         pricingService,
		ready: func(ctx context.Context) error {
			if err := database.PingPostgres(ctx, db); err != nil {
				return fmt.Errorf("postgres: %w", err)
			}
			if err := database.PingRedis(ctx, redis); err != nil {
				return fmt.Errorf("redis: %w", err)
			}
			return nil
		},
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      otelhttp.NewHandler(r, serviceName),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	if err := shutdownTracing(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to flush traces")
	}

	log.Info().Msg("Server exited properly")
}

// newSlotSource picks where slot snapshots come from.
func newSlotSource(cfg *config.Config, db *sqlx.DB, grid availability.Grid) (availability.SlotSource, error) {
	switch cfg.SlotSource {
	case availability.SourcePostgres:
		if db == nil {
			return nil, fmt.Errorf("SLOT_SOURCE=%s requires DATABASE_URL", cfg.SlotSource)
		}
		return availability.NewDBSource(availability.NewRepository(db), grid), nil
	case availability.SourceBackend:
		if cfg.BackendBaseURL == "" {
			return nil, fmt.Errorf("SLOT_SOURCE=%s requires BACKEND_BASE_URL", cfg.SlotSource)
		}
		client := backend.NewClient(cfg.BackendBaseURL, cfg.BackendToken, cfg.BackendTimeout(), serviceName+"/"+version)
		return availability.NewBackendSource(client), nil
	default:
		return nil, fmt.Errorf("%w: %q", availability.ErrUnknownSlotSource, cfg.SlotSource)
	}
}
