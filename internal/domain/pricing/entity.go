package pricing

import (
	"time"

	"github.com/google/uuid"
)

// DefaultStep is the hour granularity package balances are tracked in.
const DefaultStep = 0.25

// DefaultCurrency is used when neither config nor the service names one.
const DefaultCurrency = "EUR"

// Input is everything ComputePrice needs.
type Input struct {
	PlannedHours          float64 `json:"planned_hours"`
	HourlyRate            float64 `json:"hourly_rate"`
	PackageHoursAvailable float64 `json:"package_hours_available"`
	Step                  float64 `json:"step"`
	Participants          int     `json:"participants"`
}

// Result is the pricing breakdown of a booking.
type Result struct {
	UsedFromPackage float64 `json:"used_from_package"`
	ChargeableHours float64 `json:"chargeable_hours"`
	Total           float64 `json:"total"`
}

// Config is the pricing setup of one school.
type Config struct {
	Currency          string
	Step              float64
	DefaultHourlyRate float64
}

// PackageStatus is the lifecycle state of a customer package.
type PackageStatus string

const (
	PackageActive    PackageStatus = "active"
	PackageUsedUp    PackageStatus = "used_up"
	PackageExpired   PackageStatus = "expired"
	PackageCancelled PackageStatus = "cancelled"
)

// CustomerPackage is prepaid lesson hours owned by a customer.
type CustomerPackage struct {
	ID             uuid.UUID     `db:"id" json:"id"`
	CustomerID     uuid.UUID     `db:"customer_id" json:"customer_id"`
	PackageName    string        `db:"package_name" json:"package_name"`
	RemainingHours float64       `db:"remaining_hours" json:"remaining_hours"`
	Status         PackageStatus `db:"status" json:"status"`
	ExpiresAt      *time.Time    `db:"expires_at" json:"expires_at,omitempty"`
}

// Usable reports whether the package may pay for a booking at now.
func (p *CustomerPackage) Usable(now time.Time) bool {
	if p.Status != PackageActive {
		return false
	}
	return p.ExpiresAt == nil || now.Before(*p.ExpiresAt)
}

// ServiceRate is the price list entry of a bookable service.
type ServiceRate struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	HourlyRate float64   `db:"hourly_rate" json:"hourly_rate"`
	Currency   string    `db:"currency" json:"currency"`
}

// AppliedPackage describes the package hours a quote draws from.
type AppliedPackage struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	RemainingHours float64   `json:"remaining_hours"`
	RemainingAfter float64   `json:"remaining_after"`
}

// Quote is a priced booking ready for confirmation.
type Quote struct {
	Pricing      Result          `json:"pricing"`
	Currency     string          `json:"currency"`
	HourlyRate   float64         `json:"hourly_rate"`
	PlannedHours float64         `json:"planned_hours"`
	Participants int             `json:"participants"`
	Step         float64         `json:"step"`
	Service      *ServiceRate    `json:"service,omitempty"`
	Package      *AppliedPackage `json:"package,omitempty"`
}
