package pricing

import "github.com/google/uuid"

// QuoteRequest is the body of POST /pricing/quote
type QuoteRequest struct {
	PlannedHours      float64  `json:"planned_hours" validate:"required,gt=0,lte=12"`
	Participants      int      `json:"participants" validate:"omitempty,gte=1,lte=20"`
	ServiceID         string   `json:"service_id,omitempty" validate:"omitempty,uuid"`
	HourlyRate        *float64 `json:"hourly_rate,omitempty" validate:"omitempty,gte=0"`
	CustomerPackageID string   `json:"customer_package_id,omitempty" validate:"omitempty,uuid"`
	PackageHours      *float64 `json:"package_hours,omitempty" validate:"omitempty,gte=0"`
}

// ToParams converts a validated request into service input
func (r *QuoteRequest) ToParams() QuoteParams {
	return QuoteParams{
		PlannedHours:      r.PlannedHours,
		Participants:      r.Participants,
		ServiceID:         parseOptionalUUID(r.ServiceID),
		HourlyRate:        r.HourlyRate,
		CustomerPackageID: parseOptionalUUID(r.CustomerPackageID),
		PackageHours:      r.PackageHours,
	}
}

func parseOptionalUUID(raw string) *uuid.UUID {
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}
