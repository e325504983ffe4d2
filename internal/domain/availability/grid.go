package availability

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/plannivo/booking-api/internal/pkg/hhmm"
)

// BreakMinutes is the mandatory buffer between back-to-back bookings.
const BreakMinutes = 30

const (
	defaultDayStart = 8 * 60
	defaultDayEnd   = 20 * 60
)

// Grid is the bookable part of a day on SlotMinutes ticks, [Start, End) in minutes.
type Grid struct {
	Start int
	End   int
}

// DefaultGrid is 08:00-20:00.
func DefaultGrid() Grid {
	return Grid{Start: defaultDayStart, End: defaultDayEnd}
}

// NewGrid builds a grid from "HH:MM" bounds. Both bounds must sit on the slot grid.
func NewGrid(start, end string) (Grid, error) {
	s, ok := hhmm.ToMinutes(start)
	if !ok {
		return Grid{}, fmt.Errorf("%w: start %q", ErrInvalidGrid, start)
	}
	e, ok := hhmm.ToMinutes(end)
	if !ok {
		return Grid{}, fmt.Errorf("%w: end %q", ErrInvalidGrid, end)
	}
	if e <= s || s%SlotMinutes != 0 || e%SlotMinutes != 0 {
		return Grid{}, fmt.Errorf("%w: %s-%s", ErrInvalidGrid, start, end)
	}
	return Grid{Start: s, End: e}, nil
}

// Ticks lists every slot start in the grid.
func (g Grid) Ticks() []int {
	if g.End <= g.Start {
		return nil
	}
	ticks := make([]int, 0, (g.End-g.Start)/SlotMinutes)
	for t := g.Start; t < g.End; t += SlotMinutes {
		ticks = append(ticks, t)
	}
	return ticks
}

// Build projects busy intervals onto the grid. A tick overlapping any interval takes its
// status; blocked wins over booked.
func (g Grid) Build(instructorID uuid.UUID, busy []BusyInterval) []TimeSlot {
	ticks := g.Ticks()
	slots := make([]TimeSlot, 0, len(ticks))
	for _, t := range ticks {
		slots = append(slots, TimeSlot{
			Time:         hhmm.FromMinutes(t),
			Status:       tickStatus(t, busy),
			InstructorID: instructorID,
		})
	}
	return slots
}

func tickStatus(tick int, busy []BusyInterval) SlotStatus {
	status := StatusAvailable
	end := tick + SlotMinutes
	for _, b := range busy {
		// Half-open overlap: [tick,end) and [b.Start,b.End).
		if tick >= b.EndMinutes || b.StartMinutes >= end {
			continue
		}
		if b.Status == StatusBlocked {
			return StatusBlocked
		}
		status = StatusBooked
	}
	return status
}

// FindNextAvailableStart returns the first grid tick strictly after afterTime whose whole
// window is available. With includeBreak the search origin moves BreakMinutes later, so
// the result is always more than BreakMinutes after afterTime.
func (g Grid) FindNextAvailableStart(slots []TimeSlot, afterTime string, durationMinutes int, includeBreak bool) (string, bool) {
	after, ok := hhmm.ToMinutes(afterTime)
	if !ok || len(slots) == 0 {
		return "", false
	}
	steps := StepsNeeded(durationMinutes)
	if steps == 0 {
		return "", false
	}

	origin := after
	if includeBreak {
		origin += BreakMinutes
	}

	ticks := indexTicks(slots)
	for _, t := range g.Ticks() {
		if t <= origin {
			continue
		}
		if rangeAvailable(ticks, t, steps) {
			return hhmm.FromMinutes(t), true
		}
	}
	return "", false
}
