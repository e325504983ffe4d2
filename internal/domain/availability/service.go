package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/plannivo/booking-api/internal/pkg/hhmm"
	"github.com/plannivo/booking-api/internal/pkg/logger"
)

// FailurePolicy decides whether a booking may proceed when slot data cannot be fetched.
type FailurePolicy string

const (
	// PolicyBlock stops the flow until availability is confirmed.
	PolicyBlock FailurePolicy = "block"
	// PolicyAllow lets the flow continue and leaves conflict detection to booking creation.
	PolicyAllow FailurePolicy = "allow"
)

// ParseFailurePolicy maps a config value to a policy; anything unknown is PolicyBlock.
func ParseFailurePolicy(raw string) FailurePolicy {
	if FailurePolicy(raw) == PolicyAllow {
		return PolicyAllow
	}
	return PolicyBlock
}

const (
	warnUnverifiedBlocked = "Availability could not be verified. Please try again before booking."
	warnUnverifiedAllowed = "Availability could not be verified. The booking will be checked for conflicts when it is created."
)

// CheckRequest is a parsed availability query
type CheckRequest struct {
	Date            time.Time
	InstructorID    uuid.UUID
	StartTime       string
	DurationMinutes int
	MaxAlternatives int
}

// Service answers availability questions against fresh slot data
type Service struct {
	source          SlotSource
	grid            Grid
	policy          FailurePolicy
	maxAlternatives int
}

// NewService creates availability service
func NewService(source SlotSource, grid Grid, policy FailurePolicy, maxAlternatives int) *Service {
	if maxAlternatives <= 0 {
		maxAlternatives = DefaultMaxAlternatives
	}
	return &Service{
		source:          source,
		grid:            grid,
		policy:          policy,
		maxAlternatives: maxAlternatives,
	}
}

// DaySlots returns the instructor's slots for date
func (s *Service) DaySlots(ctx context.Context, date time.Time, instructorID uuid.UUID) (*DaySlots, error) {
	slots, err := s.source.DaySlots(ctx, date, instructorID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSlotsUnavailable, err)
	}
	if slots == nil {
		slots = []TimeSlot{}
	}
	return &DaySlots{Date: date.Format(DateLayout), Slots: slots}, nil
}

// Check evaluates the requested window and, when it is taken, proposes alternatives
func (s *Service) Check(ctx context.Context, req CheckRequest) (*Verdict, error) {
	start, ok := hhmm.ToMinutes(req.StartTime)
	if !ok || start >= hhmm.MinutesPerDay {
		return nil, ErrInvalidStartTime
	}
	if req.DurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	verdict := &Verdict{
		StartTime:       hhmm.FromMinutes(start),
		DurationMinutes: req.DurationMinutes,
		Alternatives:    []SlotWindow{},
	}

	log := logger.FromContext(ctx)

	slots, err := s.source.DaySlots(ctx, req.Date, req.InstructorID)
	if err != nil {
		log.Warn().
			Err(err).
			Str("instructor_id", req.InstructorID.String()).
			Str("date", req.Date.Format(DateLayout)).
			Str("policy", string(s.policy)).
			Msg("slot fetch failed, availability unknown")

		verdict.Status = VerdictUnknown
		verdict.CanProceed = s.policy == PolicyAllow
		verdict.Warning = warnUnverifiedBlocked
		if verdict.CanProceed {
			verdict.Warning = warnUnverifiedAllowed
		}
		return verdict, nil
	}

	if IsRangeAvailable(slots, verdict.StartTime, req.DurationMinutes) {
		verdict.Status = VerdictAvailable
		verdict.CanProceed = true
		return verdict, nil
	}

	maxAlternatives := req.MaxAlternatives
	if maxAlternatives <= 0 {
		maxAlternatives = s.maxAlternatives
	}

	verdict.Status = VerdictUnavailable
	verdict.Alternatives = FindAlternativeWindows(slots, req.DurationMinutes, start, maxAlternatives)
	if next, ok := s.grid.FindNextAvailableStart(slots, verdict.StartTime, req.DurationMinutes, false); ok {
		verdict.NextStart = &next
	}
	if next, ok := s.grid.FindNextAvailableStart(slots, verdict.StartTime, req.DurationMinutes, true); ok {
		verdict.NextStartWithBreak = &next
	}

	log.Debug().
		Str("instructor_id", req.InstructorID.String()).
		Str("start_time", verdict.StartTime).
		Int("duration_minutes", req.DurationMinutes).
		Int("alternatives", len(verdict.Alternatives)).
		Msg("requested slot unavailable")

	return verdict, nil
}
