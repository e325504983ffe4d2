package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/plannivo/booking-api/internal/domain/availability"
)

// PrecheckRequest is the body of POST /bookings/precheck. Field names follow the
// booking form.
type PrecheckRequest struct {
	Date              string   `json:"date" validate:"required,date_ymd"`
	InstructorID      string   `json:"instructor_id" validate:"required,uuid"`
	StartTime         string   `json:"start_time" validate:"required,hhmm"`
	Duration          float64  `json:"duration" validate:"required,gt=0,lte=12"`
	Participants      int      `json:"participants" validate:"omitempty,gte=1,lte=20"`
	ServiceID         string   `json:"service_id,omitempty" validate:"omitempty,uuid"`
	HourlyRate        *float64 `json:"hourly_rate,omitempty" validate:"omitempty,gte=0"`
	UsePackage        bool     `json:"use_package"`
	CustomerPackageID string   `json:"customer_package_id,omitempty" validate:"omitempty,uuid"`
	PackageHours      *float64 `json:"package_hours,omitempty" validate:"omitempty,gte=0"`
}

// ToParams converts a validated request into service input
func (r *PrecheckRequest) ToParams() (PrecheckParams, error) {
	date, err := time.Parse(availability.DateLayout, r.Date)
	if err != nil {
		return PrecheckParams{}, ErrInvalidDate
	}
	instructorID, err := uuid.Parse(r.InstructorID)
	if err != nil {
		return PrecheckParams{}, err
	}

	p := PrecheckParams{
		Date:          date,
		InstructorID:  instructorID,
		StartTime:     r.StartTime,
		DurationHours: r.Duration,
		Participants:  r.Participants,
		HourlyRate:    r.HourlyRate,
		PackageHours:  r.PackageHours,
	}
	if id, err := uuid.Parse(r.ServiceID); err == nil {
		p.ServiceID = &id
	}
	if r.UsePackage {
		if r.CustomerPackageID == "" && r.PackageHours == nil {
			return PrecheckParams{}, ErrPackageRequired
		}
		if id, err := uuid.Parse(r.CustomerPackageID); err == nil {
			p.CustomerPackageID = &id
		}
	} else {
		zero := 0.0
		p.PackageHours = &zero
	}
	return p, nil
}
