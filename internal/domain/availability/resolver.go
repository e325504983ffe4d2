package availability

import (
	"math"
	"sort"

	"github.com/plannivo/booking-api/internal/pkg/hhmm"
)

// The functions in this file are pure: they never mutate the slot snapshot, never panic on
// malformed input, and treat missing data as "not available".

// StepsNeeded returns how many consecutive grid slots a booking of durationMinutes occupies.
// Non-positive durations need zero slots and are never bookable.
func StepsNeeded(durationMinutes int) int {
	if durationMinutes <= 0 {
		return 0
	}
	steps := int(math.Round(float64(durationMinutes) / SlotMinutes))
	if steps < 1 {
		steps = 1
	}
	return steps
}

// IsRangeAvailable reports whether every slot tick covered by the window starting at
// startTime is present in slots with status available.
func IsRangeAvailable(slots []TimeSlot, startTime string, durationMinutes int) bool {
	start, ok := hhmm.ToMinutes(startTime)
	if !ok || len(slots) == 0 {
		return false
	}
	steps := StepsNeeded(durationMinutes)
	if steps == 0 {
		return false
	}
	return rangeAvailable(indexTicks(slots), start, steps)
}

// FindAlternativeWindows scans the day in time order for fully available windows of the
// requested length, skipping the rejected start. At most maxResults windows are returned;
// maxResults <= 0 means DefaultMaxAlternatives.
func FindAlternativeWindows(slots []TimeSlot, durationMinutes, requestedStartMinutes, maxResults int) []SlotWindow {
	windows := []SlotWindow{}

	steps := StepsNeeded(durationMinutes)
	if steps == 0 || len(slots) == 0 {
		return windows
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxAlternatives
	}

	ticks := indexTicks(slots)
	for _, start := range sortedStarts(ticks) {
		if start == requestedStartMinutes {
			continue
		}
		if !rangeAvailable(ticks, start, steps) {
			continue
		}
		windows = append(windows, newWindow(start, durationMinutes))
		if len(windows) == maxResults {
			break
		}
	}
	return windows
}

// FindNextAvailableStart searches the default 08:00-20:00 grid. See Grid.FindNextAvailableStart.
func FindNextAvailableStart(slots []TimeSlot, afterTime string, durationMinutes int, includeBreak bool) (string, bool) {
	return DefaultGrid().FindNextAvailableStart(slots, afterTime, durationMinutes, includeBreak)
}

// indexTicks maps each parsable slot time to whether any slot at that time is available.
func indexTicks(slots []TimeSlot) map[int]bool {
	ticks := make(map[int]bool, len(slots))
	for _, s := range slots {
		m, ok := hhmm.ToMinutes(s.Time)
		if !ok {
			continue
		}
		if s.Status == StatusAvailable {
			ticks[m] = true
			continue
		}
		if _, seen := ticks[m]; !seen {
			ticks[m] = false
		}
	}
	return ticks
}

func sortedStarts(ticks map[int]bool) []int {
	starts := make([]int, 0, len(ticks))
	for m := range ticks {
		starts = append(starts, m)
	}
	sort.Ints(starts)
	return starts
}

func rangeAvailable(ticks map[int]bool, start, steps int) bool {
	for i := 0; i < steps; i++ {
		if !ticks[start+i*SlotMinutes] {
			return false
		}
	}
	return true
}

func newWindow(startMinutes, durationMinutes int) SlotWindow {
	return SlotWindow{
		StartTime: hhmm.FromMinutes(startMinutes),
		EndTime:   hhmm.FromMinutes(startMinutes + durationMinutes),
		StartHour: hhmm.MinutesToHours(startMinutes),
		Duration:  hhmm.MinutesToHours(durationMinutes),
	}
}
