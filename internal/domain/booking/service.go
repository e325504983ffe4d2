package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/plannivo/booking-api/internal/domain/availability"
	"github.com/plannivo/booking-api/internal/domain/pricing"
	"github.com/plannivo/booking-api/internal/pkg/hhmm"
	"github.com/plannivo/booking-api/internal/pkg/logger"
)

// AvailabilityChecker is implemented by availability.Service
type AvailabilityChecker interface {
	Check(ctx context.Context, req availability.CheckRequest) (*availability.Verdict, error)
}

// PriceQuoter is implemented by pricing.Service
type PriceQuoter interface {
	Quote(ctx context.Context, p pricing.QuoteParams) (*pricing.Quote, error)
}

// PrecheckParams describes the booking a customer is about to submit
type PrecheckParams struct {
	Date              time.Time
	InstructorID      uuid.UUID
	StartTime         string
	DurationHours     float64
	Participants      int
	ServiceID         *uuid.UUID
	HourlyRate        *float64
	CustomerPackageID *uuid.UUID
	PackageHours      *float64
}

// Precheck is the advisory answer shown before the booking is created. The booking
// endpoint itself stays the authority on conflicts.
type Precheck struct {
	CanProceed   bool                  `json:"can_proceed"`
	Availability *availability.Verdict `json:"availability"`
	Pricing      *pricing.Quote        `json:"pricing"`
}

// Service runs the availability check and the price quote for a booking draft
type Service struct {
	availability AvailabilityChecker
	pricing      PriceQuoter
}

// NewService creates booking pre-check service
func NewService(availability AvailabilityChecker, pricing PriceQuoter) *Service {
	return &Service{availability: availability, pricing: pricing}
}

// Precheck checks the slot and prices the booking concurrently.
func (s *Service) Precheck(ctx context.Context, p PrecheckParams) (*Precheck, error) {
	minutes := hhmm.HoursToMinutes(p.DurationHours)
	if minutes <= 0 {
		return nil, ErrInvalidDuration
	}

	var (
		verdict *availability.Verdict
		quote   *pricing.Quote
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := s.availability.Check(gctx, availability.CheckRequest{
			Date:            p.Date,
			InstructorID:    p.InstructorID,
			StartTime:       p.StartTime,
			DurationMinutes: minutes,
		})
		verdict = v
		return err
	})
	g.Go(func() error {
		q, err := s.pricing.Quote(gctx, pricing.QuoteParams{
			PlannedHours:      p.DurationHours,
			Participants:      p.Participants,
			ServiceID:         p.ServiceID,
			HourlyRate:        p.HourlyRate,
			CustomerPackageID: p.CustomerPackageID,
			PackageHours:      p.PackageHours,
		})
		quote = q
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info().
		Str("instructor_id", p.InstructorID.String()).
		Str("date", p.Date.Format(availability.DateLayout)).
		Str("start_time", verdict.StartTime).
		Str("availability", string(verdict.Status)).
		Float64("total", quote.Pricing.Total).
		Msg("booking precheck")

	return &Precheck{
		CanProceed:   verdict.CanProceed,
		Availability: verdict,
		Pricing:      quote,
	}, nil
}
