package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/plannivo/booking-api/internal/domain/servicetag"
	"github.com/plannivo/booking-api/internal/pkg/logger"
)

// QuoteParams is a parsed quote request. Optional values are nil when the caller did not
// send them.
type QuoteParams struct {
	PlannedHours      float64
	Participants      int
	ServiceID         *uuid.UUID
	HourlyRate        *float64
	CustomerPackageID *uuid.UUID
	PackageHours      *float64
}

// Service resolves rates and package balances, then prices the booking
type Service struct {
	repo       Repository
	calculator *Calculator
	now        func() time.Time
}

// NewService creates pricing service. repo may be nil when no database is configured;
// quotes then rely on request values and the default rate.
func NewService(repo Repository, calculator *Calculator) *Service {
	return &Service{
		repo:       repo,
		calculator: calculator,
		now:        time.Now,
	}
}

// Quote prices a booking.
//
// The hourly rate comes from the request, then the service price list, then the
// configured default. Package hours come from the request or from the customer's
// package, which must be usable and cover the service.
func (s *Service) Quote(ctx context.Context, p QuoteParams) (*Quote, error) {
	if p.PlannedHours <= 0 {
		return nil, ErrInvalidHours
	}

	cfg := s.calculator.Config()
	quote := &Quote{
		Currency:     cfg.Currency,
		HourlyRate:   cfg.DefaultHourlyRate,
		PlannedHours: p.PlannedHours,
		Participants: p.Participants,
		Step:         cfg.Step,
	}
	if quote.Participants < 1 {
		quote.Participants = 1
	}

	if p.ServiceID != nil {
		svc, err := s.serviceRate(ctx, *p.ServiceID)
		if err != nil {
			return nil, err
		}
		quote.Service = svc
		quote.HourlyRate = svc.HourlyRate
		if svc.Currency != "" {
			quote.Currency = svc.Currency
		}
	}
	if p.HourlyRate != nil {
		quote.HourlyRate = *p.HourlyRate
	}

	packageHours := 0.0
	switch {
	case p.PackageHours != nil:
		packageHours = *p.PackageHours
	case p.CustomerPackageID != nil:
		pkg, err := s.customerPackage(ctx, *p.CustomerPackageID, quote.Service)
		if err != nil {
			return nil, err
		}
		packageHours = pkg.RemainingHours
		quote.Package = &AppliedPackage{
			ID:             pkg.ID,
			Name:           pkg.PackageName,
			RemainingHours: pkg.RemainingHours,
		}
	}

	quote.Pricing = s.calculator.Compute(p.PlannedHours, quote.HourlyRate, packageHours, quote.Participants)
	if quote.Package != nil {
		quote.Package.RemainingAfter = RoundToStep(quote.Package.RemainingHours-quote.Pricing.UsedFromPackage, cfg.Step)
	}

	logger.FromContext(ctx).Debug().
		Float64("planned_hours", p.PlannedHours).
		Float64("hourly_rate", quote.HourlyRate).
		Float64("used_from_package", quote.Pricing.UsedFromPackage).
		Float64("total", quote.Pricing.Total).
		Str("currency", quote.Currency).
		Msg("booking priced")

	return quote, nil
}

func (s *Service) serviceRate(ctx context.Context, id uuid.UUID) (*ServiceRate, error) {
	if s.repo == nil {
		return nil, ErrServiceNotFound
	}
	svc, err := s.repo.GetServiceRate(ctx, id)
	if err != nil {
		if errors.Is(err, ErrServiceNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get service rate: %w", err)
	}
	return svc, nil
}

func (s *Service) customerPackage(ctx context.Context, id uuid.UUID, svc *ServiceRate) (*CustomerPackage, error) {
	if s.repo == nil {
		return nil, ErrPackageNotFound
	}
	pkg, err := s.repo.GetCustomerPackage(ctx, id)
	if err != nil {
		if errors.Is(err, ErrPackageNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get customer package: %w", err)
	}
	if !pkg.Usable(s.now()) {
		return nil, ErrPackageUnusable
	}
	if svc != nil && !servicetag.Matches(pkg.PackageName, svc.Name) {
		return nil, ErrPackageMismatch
	}
	return pkg, nil
}
