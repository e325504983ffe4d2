package availability

import (
	"github.com/google/uuid"
)

// SlotMinutes is the width of one slot on the booking grid.
const SlotMinutes = 30

// DefaultMaxAlternatives caps suggested windows when the caller does not.
const DefaultMaxAlternatives = 3

// SlotStatus is the backend's status of a single 30-minute slot.
type SlotStatus string

const (
	StatusAvailable SlotStatus = "available"
	StatusBooked    SlotStatus = "booked"
	StatusBlocked   SlotStatus = "blocked"
)

// IsValid reports whether the status is one of the known values.
func (s SlotStatus) IsValid() bool {
	switch s {
	case StatusAvailable, StatusBooked, StatusBlocked:
		return true
	}
	return false
}

// TimeSlot is one grid cell of an instructor's day.
type TimeSlot struct {
	Time         string     `json:"time"`
	Status       SlotStatus `json:"status"`
	InstructorID uuid.UUID  `json:"instructor_id"`
}

// DaySlots is the slot snapshot for a single date.
type DaySlots struct {
	Date  string     `json:"date"`
	Slots []TimeSlot `json:"slots"`
}

// SlotWindow is a candidate contiguous booking window.
type SlotWindow struct {
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	StartHour float64 `json:"start_hour"`
	Duration  float64 `json:"duration"`
}

// BusyInterval is an occupied stretch of the day in minutes, half-open [Start, End).
type BusyInterval struct {
	StartMinutes int
	EndMinutes   int
	Status       SlotStatus
}

// VerdictStatus is the outcome of an availability check.
type VerdictStatus string

const (
	VerdictAvailable   VerdictStatus = "available"
	VerdictUnavailable VerdictStatus = "unavailable"
	VerdictUnknown     VerdictStatus = "unknown"
)

// Verdict is what the booking flow gets back for a requested window.
type Verdict struct {
	Status             VerdictStatus `json:"status"`
	CanProceed         bool          `json:"can_proceed"`
	StartTime          string        `json:"start_time"`
	DurationMinutes    int           `json:"duration_minutes"`
	Alternatives       []SlotWindow  `json:"alternatives"`
	NextStart          *string       `json:"next_start,omitempty"`
	NextStartWithBreak *string       `json:"next_start_with_break,omitempty"`
	Warning            string        `json:"warning,omitempty"`
}
