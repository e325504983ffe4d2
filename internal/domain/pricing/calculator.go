package pricing

import "math"

// noiseScale trims binary floating point residue such as 0.30000000000000004.
const noiseScale = 1e9

// ComputePrice prices a booking. It never fails: negative or non-finite amounts count as
// zero, a non-positive step as one hour and fewer than one participant as one.
//
// Hour quantities are rounded to the step. The total is rounded to cents separately.
func ComputePrice(in Input) Result {
	step := in.Step
	if !finite(step) || step <= 0 {
		step = 1
	}

	planned := RoundToStep(nonNegative(in.PlannedHours), step)
	used := RoundToStep(math.Min(planned, nonNegative(in.PackageHoursAvailable)), step)
	chargeable := trimNoise(planned - used)
	if chargeable < 0 {
		chargeable = 0
	}

	participants := in.Participants
	if participants < 1 {
		participants = 1
	}

	return Result{
		UsedFromPackage: used,
		ChargeableHours: chargeable,
		Total:           RoundCents(chargeable * nonNegative(in.HourlyRate) * float64(participants)),
	}
}

// RoundToStep rounds x to the nearest multiple of step.
func RoundToStep(x, step float64) float64 {
	if !finite(step) || step <= 0 {
		step = 1
	}
	return trimNoise(math.Round(x/step) * step)
}

// RoundCents rounds an amount to two decimals.
func RoundCents(x float64) float64 {
	return math.Round(trimNoise(x*100)) / 100
}

func trimNoise(x float64) float64 {
	return math.Round(x*noiseScale) / noiseScale
}

func nonNegative(x float64) float64 {
	if !finite(x) || x < 0 {
		return 0
	}
	return x
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Calculator prices bookings with a fixed school configuration.
type Calculator struct {
	cfg Config
}

// NewCalculator fills in the quarter-hour step and EUR when cfg leaves them empty.
func NewCalculator(cfg Config) *Calculator {
	if !finite(cfg.Step) || cfg.Step <= 0 {
		cfg.Step = DefaultStep
	}
	if cfg.Currency == "" {
		cfg.Currency = DefaultCurrency
	}
	cfg.DefaultHourlyRate = nonNegative(cfg.DefaultHourlyRate)
	return &Calculator{cfg: cfg}
}

// Config returns the effective configuration.
func (c *Calculator) Config() Config {
	return c.cfg
}

// Compute runs ComputePrice with the configured step.
func (c *Calculator) Compute(plannedHours, hourlyRate, packageHours float64, participants int) Result {
	return ComputePrice(Input{
		PlannedHours:          plannedHours,
		HourlyRate:            hourlyRate,
		PackageHoursAvailable: packageHours,
		Step:                  c.cfg.Step,
		Participants:          participants,
	})
}
