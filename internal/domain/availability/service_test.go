package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeSource struct {
	slots []TimeSlot
	err   error
}

func (f *fakeSource) DaySlots(ctx context.Context, date time.Time, instructorID uuid.UUID) ([]TimeSlot, error) {
	return f.slots, f.err
}

func checkRequest(start string, duration int) CheckRequest {
	return CheckRequest{
		Date:            time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC),
		InstructorID:    testInstructor,
		StartTime:       start,
		DurationMinutes: duration,
	}
}

func TestServiceCheck_Available(t *testing.T) {
	svc := NewService(&fakeSource{slots: dayOf("08:00", "20:00", nil)}, DefaultGrid(), PolicyBlock, 0)

	verdict, err := svc.Check(context.Background(), checkRequest("9:00", 90))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verdict.Status != VerdictAvailable || !verdict.CanProceed {
		t.Fatalf("expected available verdict, got %+v", verdict)
	}
	if verdict.StartTime != "09:00" {
		t.Fatalf("expected normalized start time, got %q", verdict.StartTime)
	}
	if len(verdict.Alternatives) != 0 || verdict.NextStart != nil {
		t.Fatalf("expected no suggestions for an available slot, got %+v", verdict)
	}
}

func TestServiceCheck_UnavailableSuggests(t *testing.T) {
	slots := dayOf("08:00", "20:00", map[string]SlotStatus{"09:00": StatusBooked})
	svc := NewService(&fakeSource{slots: slots}, DefaultGrid(), PolicyBlock, 2)

	verdict, err := svc.Check(context.Background(), checkRequest("09:00", 60))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verdict.Status != VerdictUnavailable || verdict.CanProceed {
		t.Fatalf("expected unavailable verdict, got %+v", verdict)
	}
	if len(verdict.Alternatives) != 2 {
		t.Fatalf("expected service default of 2 alternatives, got %d", len(verdict.Alternatives))
	}
	if verdict.Alternatives[0].StartTime != "08:00" || verdict.Alternatives[1].StartTime != "09:30" {
		t.Fatalf("unexpected alternatives %+v", verdict.Alternatives)
	}
	if verdict.NextStart == nil || *verdict.NextStart != "09:30" {
		t.Fatalf("expected next start 09:30, got %v", verdict.NextStart)
	}
	if verdict.NextStartWithBreak == nil || *verdict.NextStartWithBreak != "10:00" {
		t.Fatalf("expected next start with break 10:00, got %v", verdict.NextStartWithBreak)
	}
}

func TestServiceCheck_RequestOverridesMaxAlternatives(t *testing.T) {
	slots := dayOf("08:00", "20:00", map[string]SlotStatus{"09:00": StatusBooked})
	svc := NewService(&fakeSource{slots: slots}, DefaultGrid(), PolicyBlock, 0)

	req := checkRequest("09:00", 60)
	req.MaxAlternatives = 5
	verdict, err := svc.Check(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(verdict.Alternatives) != 5 {
		t.Fatalf("expected 5 alternatives, got %d", len(verdict.Alternatives))
	}
}

func TestServiceCheck_EmptyDayIsUnavailable(t *testing.T) {
	svc := NewService(&fakeSource{}, DefaultGrid(), PolicyAllow, 0)

	verdict, err := svc.Check(context.Background(), checkRequest("10:00", 60))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verdict.Status != VerdictUnavailable || verdict.CanProceed {
		t.Fatalf("expected unavailable verdict for a day with no slots, got %+v", verdict)
	}
	if verdict.Alternatives == nil {
		t.Fatal("expected empty, non-nil alternatives")
	}
}

func TestServiceCheck_FetchFailure(t *testing.T) {
	tests := []struct {
		policy      FailurePolicy
		wantProceed bool
	}{
		{policy: PolicyBlock, wantProceed: false},
		{policy: PolicyAllow, wantProceed: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			svc := NewService(&fakeSource{err: errors.New("backend down")}, DefaultGrid(), tt.policy, 0)

			verdict, err := svc.Check(context.Background(), checkRequest("10:00", 60))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if verdict.Status != VerdictUnknown {
				t.Fatalf("expected unknown verdict, got %s", verdict.Status)
			}
			if verdict.CanProceed != tt.wantProceed {
				t.Fatalf("expected can_proceed=%v, got %v", tt.wantProceed, verdict.CanProceed)
			}
			if verdict.Warning == "" {
				t.Fatal("expected a warning for unverified availability")
			}
		})
	}
}

func TestServiceCheck_InvalidInput(t *testing.T) {
	svc := NewService(&fakeSource{slots: dayOf("08:00", "20:00", nil)}, DefaultGrid(), PolicyBlock, 0)

	if _, err := svc.Check(context.Background(), checkRequest("24:00", 60)); !errors.Is(err, ErrInvalidStartTime) {
		t.Fatalf("expected ErrInvalidStartTime, got %v", err)
	}
	if _, err := svc.Check(context.Background(), checkRequest("noon", 60)); !errors.Is(err, ErrInvalidStartTime) {
		t.Fatalf("expected ErrInvalidStartTime, got %v", err)
	}
	if _, err := svc.Check(context.Background(), checkRequest("10:00", 0)); !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration, got %v", err)
	}
}

func TestServiceDaySlots(t *testing.T) {
	date := time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC)

	svc := NewService(&fakeSource{}, DefaultGrid(), PolicyBlock, 0)
	day, err := svc.DaySlots(context.Background(), date, testInstructor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if day.Date != "2026-07-14" || day.Slots == nil {
		t.Fatalf("unexpected day %+v", day)
	}

	failing := NewService(&fakeSource{err: errors.New("boom")}, DefaultGrid(), PolicyAllow, 0)
	if _, err := failing.DaySlots(context.Background(), date, testInstructor); !errors.Is(err, ErrSlotsUnavailable) {
		t.Fatalf("expected ErrSlotsUnavailable, got %v", err)
	}
}

func TestParseFailurePolicy(t *testing.T) {
	if ParseFailurePolicy("allow") != PolicyAllow {
		t.Fatal("expected allow")
	}
	for _, raw := range []string{"", "block", "ALLOW", "open"} {
		if ParseFailurePolicy(raw) != PolicyBlock {
			t.Fatalf("expected %q to fall back to block", raw)
		}
	}
}
