package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/plannivo/booking-api/internal/pkg/backend"
)

// SlotSource returns the slot snapshot of one instructor for one day.
// Implementations must hit their backing store on every call.
type SlotSource interface {
	DaySlots(ctx context.Context, date time.Time, instructorID uuid.UUID) ([]TimeSlot, error)
}

// Source names accepted by the SLOT_SOURCE setting.
const (
	SourcePostgres = "postgres"
	SourceBackend  = "backend"
)

// DBSource builds slots from bookings and time-off rows in Postgres.
type DBSource struct {
	repo Repository
	grid Grid
}

func NewDBSource(repo Repository, grid Grid) *DBSource {
	return &DBSource{repo: repo, grid: grid}
}

func (s *DBSource) DaySlots(ctx context.Context, date time.Time, instructorID uuid.UUID) ([]TimeSlot, error) {
	busy, err := s.repo.ListBusy(ctx, instructorID, date)
	if err != nil {
		return nil, fmt.Errorf("list busy intervals: %w", err)
	}
	return s.grid.Build(instructorID, busy), nil
}

// BackendClient is the subset of backend.Client the source needs.
type BackendClient interface {
	AvailableSlots(ctx context.Context, startDate, endDate string, instructorIDs []string) ([]backend.DaySlots, error)
}

// BackendSource reads slots from the REST backend's availability query.
type BackendSource struct {
	client BackendClient
}

func NewBackendSource(client BackendClient) *BackendSource {
	return &BackendSource{client: client}
}

func (s *BackendSource) DaySlots(ctx context.Context, date time.Time, instructorID uuid.UUID) ([]TimeSlot, error) {
	day := date.Format(DateLayout)
	days, err := s.client.AvailableSlots(ctx, day, day, []string{instructorID.String()})
	if err != nil {
		return nil, err
	}

	var slots []TimeSlot
	for _, d := range days {
		if d.Date != day {
			continue
		}
		for _, bs := range d.Slots {
			id, err := uuid.Parse(bs.InstructorID)
			if err != nil || id != instructorID {
				continue
			}
			slots = append(slots, TimeSlot{
				Time:         bs.Time,
				Status:       parseStatus(bs.Status),
				InstructorID: id,
			})
		}
	}
	return slots, nil
}

// parseStatus maps unknown backend statuses to blocked so they never read as free.
func parseStatus(raw string) SlotStatus {
	status := SlotStatus(raw)
	if !status.IsValid() {
		return StatusBlocked
	}
	return status
}
