package main

import (
	"github.com/spf13/cobra"

	"github.com/plannivo/booking-api/internal/domain/pricing"
)

func newQuoteCmd() *cobra.Command {
	var (
		hours        float64
		rate         float64
		packageHours float64
		participants int
		step         float64
		currency     string
	)

	c := &cobra.Command{
		Use:   "quote",
		Short: "Split planned hours between a package and cash and price the rest",
		RunE: func(cmd *cobra.Command, args []string) error {
			calc := pricing.NewCalculator(pricing.Config{Currency: currency, Step: step})
			res := calc.Compute(hours, rate, packageHours, participants)
			if participants < 1 {
				participants = 1
			}
			return printJSON(cmd, pricing.Quote{
				Pricing:      res,
				Currency:     calc.Config().Currency,
				HourlyRate:   rate,
				PlannedHours: hours,
				Participants: participants,
				Step:         calc.Config().Step,
			})
		},
	}

	c.Flags().Float64Var(&hours, "hours", 1, "Planned hours")
	c.Flags().Float64Var(&rate, "rate", 0, "Hourly rate")
	c.Flags().Float64Var(&packageHours, "package-hours", 0, "Hours left on the customer's package")
	c.Flags().IntVar(&participants, "participants", 1, "Number of participants")
	c.Flags().Float64Var(&step, "step", pricing.DefaultStep, "Package consumption step in hours")
	c.Flags().StringVar(&currency, "currency", pricing.DefaultCurrency, "Currency code")
	return c
}
