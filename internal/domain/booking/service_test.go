package booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/plannivo/booking-api/internal/domain/availability"
	"github.com/plannivo/booking-api/internal/domain/pricing"
)

type stubChecker struct {
	got availability.CheckRequest
	err error
}

func (s *stubChecker) Check(ctx context.Context, req availability.CheckRequest) (*availability.Verdict, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &availability.Verdict{
		Status:          availability.VerdictAvailable,
		CanProceed:      true,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
	}, nil
}

type stubQuoter struct {
	got pricing.QuoteParams
	err error
}

func (s *stubQuoter) Quote(ctx context.Context, p pricing.QuoteParams) (*pricing.Quote, error) {
	s.got = p
	if s.err != nil {
		return nil, s.err
	}
	return &pricing.Quote{
		Pricing:      pricing.ComputePrice(pricing.Input{PlannedHours: p.PlannedHours, HourlyRate: 50, Step: 0.25, Participants: p.Participants}),
		Currency:     "EUR",
		HourlyRate:   50,
		PlannedHours: p.PlannedHours,
	}, nil
}

func TestPrecheck_ConvertsDuration(t *testing.T) {
	checker, quoter := &stubChecker{}, &stubQuoter{}
	svc := NewService(checker, quoter)

	res, err := svc.Precheck(context.Background(), PrecheckParams{
		Date:          time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC),
		InstructorID:  uuid.New(),
		StartTime:     "10:00",
		DurationHours: 1.5,
		Participants:  1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if checker.got.DurationMinutes != 90 {
		t.Fatalf("expected 90 minutes, got %d", checker.got.DurationMinutes)
	}
	if quoter.got.PlannedHours != 1.5 {
		t.Fatalf("expected 1.5 planned hours, got %v", quoter.got.PlannedHours)
	}
	if !res.CanProceed || res.Pricing.Pricing.Total != 75 {
		t.Fatalf("unexpected precheck %+v", res)
	}
}

func TestPrecheck_Errors(t *testing.T) {
	params := PrecheckParams{Date: time.Now(), InstructorID: uuid.New(), StartTime: "10:00", DurationHours: 1}

	svc := NewService(&stubChecker{}, &stubQuoter{})
	bad := params
	bad.DurationHours = 0
	if _, err := svc.Precheck(context.Background(), bad); !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration, got %v", err)
	}

	svc = NewService(&stubChecker{}, &stubQuoter{err: pricing.ErrPackageUnusable})
	if _, err := svc.Precheck(context.Background(), params); !errors.Is(err, pricing.ErrPackageUnusable) {
		t.Fatalf("expected pricing error, got %v", err)
	}

	svc = NewService(&stubChecker{err: availability.ErrInvalidStartTime}, &stubQuoter{})
	if _, err := svc.Precheck(context.Background(), params); !errors.Is(err, availability.ErrInvalidStartTime) {
		t.Fatalf("expected availability error, got %v", err)
	}
}

func TestPrecheckRequest_ToParams(t *testing.T) {
	pkgID := uuid.New()
	req := PrecheckRequest{
		Date:              "2026-07-14",
		InstructorID:      uuid.NewString(),
		StartTime:         "09:30",
		Duration:          2,
		UsePackage:        true,
		CustomerPackageID: pkgID.String(),
	}
	p, err := req.ToParams()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.CustomerPackageID == nil || *p.CustomerPackageID != pkgID || p.PackageHours != nil {
		t.Fatalf("expected customer package to be used, got %+v", p)
	}

	req.UsePackage = false
	p, err = req.ToParams()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.CustomerPackageID != nil || p.PackageHours == nil || *p.PackageHours != 0 {
		t.Fatalf("expected cash booking, got %+v", p)
	}

	req.UsePackage = true
	req.CustomerPackageID = ""
	if _, err := req.ToParams(); !errors.Is(err, ErrPackageRequired) {
		t.Fatalf("expected ErrPackageRequired, got %v", err)
	}
}

type daySource struct {
	slots []availability.TimeSlot
}

func (d daySource) DaySlots(ctx context.Context, date time.Time, instructorID uuid.UUID) ([]availability.TimeSlot, error) {
	return d.slots, nil
}

func TestHandlerPrecheck(t *testing.T) {
	instructor := uuid.New()
	slots := []availability.TimeSlot{
		{Time: "10:00", Status: availability.StatusAvailable, InstructorID: instructor},
		{Time: "10:30", Status: availability.StatusAvailable, InstructorID: instructor},
		{Time: "11:00", Status: availability.StatusBooked, InstructorID: instructor},
		{Time: "11:30", Status: availability.StatusAvailable, InstructorID: instructor},
		{Time: "12:00", Status: availability.StatusAvailable, InstructorID: instructor},
	}
	avail := availability.NewService(daySource{slots: slots}, availability.DefaultGrid(), availability.PolicyBlock, 0)
	price := pricing.NewService(nil, pricing.NewCalculator(pricing.Config{Step: 0.25, DefaultHourlyRate: 40}))
	r := NewHandler(NewService(avail, price)).Routes(func(next http.Handler) http.Handler { return next })

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/precheck", strings.NewReader(body))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		return rr
	}

	t.Run("free slot", func(t *testing.T) {
		rr := post(`{"date":"2026-07-14","instructor_id":"` + instructor.String() + `","start_time":"10:00","duration":1,"participants":2}`)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
		}
		var env struct {
			Data Precheck `json:"data"`
		}
		if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !env.Data.CanProceed || env.Data.Pricing.Pricing.Total != 80 {
			t.Fatalf("unexpected precheck %s", rr.Body.String())
		}
	})

	t.Run("taken slot", func(t *testing.T) {
		rr := post(`{"date":"2026-07-14","instructor_id":"` + instructor.String() + `","start_time":"10:30","duration":1}`)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		var env struct {
			Data Precheck `json:"data"`
		}
		if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if env.Data.CanProceed || env.Data.Availability.Status != availability.VerdictUnavailable {
			t.Fatalf("expected unavailable, got %s", rr.Body.String())
		}
		if len(env.Data.Availability.Alternatives) != 2 {
			t.Fatalf("expected 10:00 and 11:30 as alternatives, got %+v", env.Data.Availability.Alternatives)
		}
	})

	t.Run("package without reference", func(t *testing.T) {
		rr := post(`{"date":"2026-07-14","instructor_id":"` + instructor.String() + `","start_time":"10:00","duration":1,"use_package":true}`)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
	})

	t.Run("validation", func(t *testing.T) {
		rr := post(`{"date":"2026-07-14","instructor_id":"` + instructor.String() + `","start_time":"25:00","duration":1}`)
		if rr.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rr.Code)
		}
	})
}
