package availability

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/plannivo/booking-api/internal/pkg/hhmm"
)

var testInstructor = uuid.MustParse("6c237b44-0a4f-4a03-8ba9-9724b3a3c5d8")

// dayOf returns 30-minute slots from start to end (exclusive), all available except the
// listed times, which get the given status.
func dayOf(start, end string, taken map[string]SlotStatus) []TimeSlot {
	s, _ := hhmm.ToMinutes(start)
	e, _ := hhmm.ToMinutes(end)
	var slots []TimeSlot
	for m := s; m < e; m += SlotMinutes {
		t := hhmm.FromMinutes(m)
		status := StatusAvailable
		if st, ok := taken[t]; ok {
			status = st
		}
		slots = append(slots, TimeSlot{Time: t, Status: status, InstructorID: testInstructor})
	}
	return slots
}

func TestIsRangeAvailable_Examples(t *testing.T) {
	free := []TimeSlot{
		{Time: "09:00", Status: StatusAvailable},
		{Time: "09:30", Status: StatusAvailable},
	}
	if !IsRangeAvailable(free, "09:00", 60) {
		t.Fatal("expected 09:00 for 60 minutes to be available")
	}

	partlyBooked := []TimeSlot{
		{Time: "09:00", Status: StatusAvailable},
		{Time: "09:30", Status: StatusBooked},
	}
	if IsRangeAvailable(partlyBooked, "09:00", 60) {
		t.Fatal("expected 09:00 for 60 minutes to be unavailable when 09:30 is booked")
	}
}

func TestIsRangeAvailable_EdgeCases(t *testing.T) {
	day := dayOf("08:00", "20:00", map[string]SlotStatus{"12:00": StatusBlocked})

	t.Run("empty slot list is unavailable", func(t *testing.T) {
		if IsRangeAvailable(nil, "09:00", 30) {
			t.Fatal("expected false for empty slots")
		}
	})

	t.Run("malformed start is unavailable", func(t *testing.T) {
		for _, start := range []string{"", "9", "nine", "25:00", "09:60"} {
			if IsRangeAvailable(day, start, 30) {
				t.Fatalf("expected false for start %q", start)
			}
		}
	})

	t.Run("non-positive duration is unavailable", func(t *testing.T) {
		if IsRangeAvailable(day, "09:00", 0) || IsRangeAvailable(day, "09:00", -30) {
			t.Fatal("expected false for non-positive duration")
		}
	})

	t.Run("missing tick is unavailable", func(t *testing.T) {
		if IsRangeAvailable(day, "19:30", 60) {
			t.Fatal("expected false when the window runs past the last slot")
		}
	})

	t.Run("blocked tick is unavailable", func(t *testing.T) {
		if IsRangeAvailable(day, "11:30", 60) {
			t.Fatal("expected false across a blocked slot")
		}
	})

	t.Run("leading zeros are normalized", func(t *testing.T) {
		slots := []TimeSlot{
			{Time: "9:00", Status: StatusAvailable},
			{Time: "9:30", Status: StatusAvailable},
		}
		if !IsRangeAvailable(slots, "09:00", 60) {
			t.Fatal("expected 9:00 slots to match 09:00")
		}
	})

	t.Run("duration rounds to nearest slot count", func(t *testing.T) {
		// 40 minutes rounds to one slot, 50 minutes to two.
		slots := []TimeSlot{
			{Time: "10:00", Status: StatusAvailable},
			{Time: "10:30", Status: StatusBooked},
		}
		if !IsRangeAvailable(slots, "10:00", 40) {
			t.Fatal("expected 40 minutes to need one slot")
		}
		if IsRangeAvailable(slots, "10:00", 50) {
			t.Fatal("expected 50 minutes to need two slots")
		}
	})
}

// Range availability must agree with a direct reading of the definition.
func TestIsRangeAvailable_MatchesDefinition(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	statuses := []SlotStatus{StatusAvailable, StatusAvailable, StatusBooked, StatusBlocked}

	for round := 0; round < 50; round++ {
		var slots []TimeSlot
		for m := 8 * 60; m < 20*60; m += SlotMinutes {
			if rng.Intn(8) == 0 {
				continue // hole in the data
			}
			slots = append(slots, TimeSlot{Time: hhmm.FromMinutes(m), Status: statuses[rng.Intn(len(statuses))]})
		}

		for start := 7 * 60; start < 21*60; start += SlotMinutes {
			for _, d := range []int{30, 60, 90, 120, 180} {
				want := true
				for i := 0; i < d/SlotMinutes; i++ {
					tick := hhmm.FromMinutes(start + i*SlotMinutes)
					found := false
					for _, s := range slots {
						if s.Time == tick && s.Status == StatusAvailable {
							found = true
							break
						}
					}
					if !found {
						want = false
						break
					}
				}
				if got := IsRangeAvailable(slots, hhmm.FromMinutes(start), d); got != want {
					t.Fatalf("round %d start %s duration %d: got %v want %v", round, hhmm.FromMinutes(start), d, got, want)
				}
			}
		}
	}
}

func TestFindAlternativeWindows_Example(t *testing.T) {
	day := dayOf("08:00", "20:00", map[string]SlotStatus{"09:00": StatusBooked})

	windows := FindAlternativeWindows(day, 60, 540, 3)
	if len(windows) != 3 {
		t.Fatalf("expected 3 windows, got %d: %+v", len(windows), windows)
	}

	want := []string{"08:00", "09:30", "10:00"}
	for i, w := range windows {
		if w.StartTime != want[i] {
			t.Fatalf("window %d: expected start %s, got %s", i, want[i], w.StartTime)
		}
		if w.Duration != 1 {
			t.Fatalf("window %d: expected duration 1h, got %v", i, w.Duration)
		}
	}
	if windows[0].EndTime != "09:00" || windows[0].StartHour != 8 {
		t.Fatalf("unexpected first window: %+v", windows[0])
	}
	if windows[1].StartHour != 9.5 {
		t.Fatalf("expected start hour 9.5, got %v", windows[1].StartHour)
	}
}

func TestFindAlternativeWindows_ExcludesRequestedAndOrders(t *testing.T) {
	day := dayOf("08:00", "20:00", map[string]SlotStatus{
		"08:30": StatusBooked,
		"13:00": StatusBlocked,
	})

	for _, requested := range []int{8 * 60, 9 * 60, 10 * 60, 14 * 60} {
		windows := FindAlternativeWindows(day, 90, requested, 50)
		if len(windows) == 0 {
			t.Fatalf("expected windows for requested %d", requested)
		}
		prev := -1
		for _, w := range windows {
			start, ok := hhmm.ToMinutes(w.StartTime)
			if !ok {
				t.Fatalf("unparsable start %q", w.StartTime)
			}
			if start == requested {
				t.Fatalf("requested start %s was suggested again", w.StartTime)
			}
			if start <= prev {
				t.Fatalf("windows not strictly increasing: %+v", windows)
			}
			prev = start
			if !IsRangeAvailable(day, w.StartTime, 90) {
				t.Fatalf("suggested window %s is not available", w.StartTime)
			}
		}
	}
}

func TestFindAlternativeWindows_Limits(t *testing.T) {
	day := dayOf("08:00", "20:00", nil)

	if got := FindAlternativeWindows(day, 60, 600, 0); len(got) != DefaultMaxAlternatives {
		t.Fatalf("expected default cap of %d, got %d", DefaultMaxAlternatives, len(got))
	}
	if got := FindAlternativeWindows(day, 60, 600, 1); len(got) != 1 || got[0].StartTime != "08:00" {
		t.Fatalf("expected single 08:00 window, got %+v", got)
	}
	if got := FindAlternativeWindows(nil, 60, 600, 3); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil result for no slots, got %#v", got)
	}
	if got := FindAlternativeWindows(day, 0, 600, 3); len(got) != 0 {
		t.Fatalf("expected no windows for zero duration, got %+v", got)
	}
}

func TestFindAlternativeWindows_UnsortedInputAndGaps(t *testing.T) {
	slots := []TimeSlot{
		{Time: "11:00", Status: StatusAvailable},
		{Time: "08:00", Status: StatusAvailable},
		{Time: "bogus", Status: StatusAvailable},
		{Time: "10:30", Status: StatusAvailable},
		{Time: "08:30", Status: StatusAvailable},
		// 09:00 and 09:30 missing: no window may span the gap
		{Time: "10:00", Status: StatusAvailable},
	}

	windows := FindAlternativeWindows(slots, 60, 0, 10)
	want := []string{"08:00", "10:00", "10:30"}
	if len(windows) != len(want) {
		t.Fatalf("expected %d windows, got %+v", len(want), windows)
	}
	for i := range want {
		if windows[i].StartTime != want[i] {
			t.Fatalf("window %d: expected %s, got %s", i, want[i], windows[i].StartTime)
		}
	}
}

func TestFindNextAvailableStart(t *testing.T) {
	day := dayOf("08:00", "20:00", nil)

	t.Run("adjacent without break", func(t *testing.T) {
		got, ok := FindNextAvailableStart(day, "10:00", 60, false)
		if !ok || got != "10:30" {
			t.Fatalf("expected 10:30, got %q (ok=%v)", got, ok)
		}
	})

	t.Run("break pushes the start out", func(t *testing.T) {
		got, ok := FindNextAvailableStart(day, "10:00", 60, true)
		if !ok || got != "11:00" {
			t.Fatalf("expected 11:00, got %q (ok=%v)", got, ok)
		}
	})

	t.Run("skips taken windows", func(t *testing.T) {
		busy := dayOf("08:00", "20:00", map[string]SlotStatus{"11:00": StatusBooked, "12:00": StatusBooked})
		got, ok := FindNextAvailableStart(busy, "10:00", 60, false)
		// 10:30 needs 11:00, 11:30 needs 12:00
		if !ok || got != "12:30" {
			t.Fatalf("expected 12:30, got %q (ok=%v)", got, ok)
		}
	})

	t.Run("nothing left in the day", func(t *testing.T) {
		if got, ok := FindNextAvailableStart(day, "19:00", 60, false); ok {
			t.Fatalf("expected no start, got %q", got)
		}
	})

	t.Run("malformed after time", func(t *testing.T) {
		if _, ok := FindNextAvailableStart(day, "10h", 60, false); ok {
			t.Fatal("expected no start for malformed time")
		}
	})

	t.Run("break never closer than the buffer", func(t *testing.T) {
		for after := 8 * 60; after < 20*60; after += 15 {
			got, ok := FindNextAvailableStart(day, hhmm.FromMinutes(after), 30, true)
			if !ok {
				continue
			}
			m, _ := hhmm.ToMinutes(got)
			if m < after+BreakMinutes {
				t.Fatalf("after %s with break returned %s", hhmm.FromMinutes(after), got)
			}
		}
	})
}

func TestGridFindNextAvailableStart_RespectsBounds(t *testing.T) {
	grid, err := NewGrid("08:00", "12:00")
	if err != nil {
		t.Fatalf("new grid: %v", err)
	}
	day := dayOf("08:00", "20:00", nil)

	if got, ok := grid.FindNextAvailableStart(day, "11:30", 30, false); ok {
		t.Fatalf("expected no start past the grid, got %q", got)
	}
	if got, ok := grid.FindNextAvailableStart(day, "11:00", 30, false); !ok || got != "11:30" {
		t.Fatalf("expected 11:30, got %q (ok=%v)", got, ok)
	}
}
