package availability

import (
	"time"

	"github.com/google/uuid"
)

// CheckAvailabilityRequest is the body of POST /availability/check
type CheckAvailabilityRequest struct {
	Date            string `json:"date" validate:"required,date_ymd"`
	InstructorID    string `json:"instructor_id" validate:"required,uuid"`
	StartTime       string `json:"start_time" validate:"required,hhmm"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,gt=0,lte=720"`
	MaxAlternatives int    `json:"max_alternatives" validate:"omitempty,gte=1,lte=10"`
}

// ToCheckRequest converts a validated request into the service input
func (r *CheckAvailabilityRequest) ToCheckRequest() (CheckRequest, error) {
	date, err := time.Parse(DateLayout, r.Date)
	if err != nil {
		return CheckRequest{}, ErrInvalidDate
	}
	instructorID, err := uuid.Parse(r.InstructorID)
	if err != nil {
		return CheckRequest{}, err
	}
	return CheckRequest{
		Date:            date,
		InstructorID:    instructorID,
		StartTime:       r.StartTime,
		DurationMinutes: r.DurationMinutes,
		MaxAlternatives: r.MaxAlternatives,
	}, nil
}
