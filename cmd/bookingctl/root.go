package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/plannivo/booking-api/internal/domain/availability"
)

var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "bookingctl",
		Short:         "Offline tools for slot availability, pricing and service tags",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newVersionCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newAlternativesCmd())
	root.AddCommand(newNextCmd())
	root.AddCommand(newQuoteCmd())
	root.AddCommand(newClassifyCmd())
	root.AddCommand(newTokenCmd())

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version info",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "bookingctl %s (commit=%s, built=%s)\n", Version, CommitSHA, BuildDate)
		},
	}
}

// loadSlots reads a day of slots from path ("-" for stdin). Both a bare array and the
// {"date":..,"slots":[..]} shape returned by the API are accepted.
func loadSlots(cmd *cobra.Command, path string) ([]availability.TimeSlot, error) {
	if path == "" {
		return nil, fmt.Errorf("--slots is required")
	}

	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var slots []availability.TimeSlot
	if err := json.Unmarshal(raw, &slots); err == nil {
		return slots, nil
	}

	var day availability.DaySlots
	if err := json.Unmarshal(raw, &day); err != nil {
		return nil, fmt.Errorf("parse slots: %w", err)
	}
	return day.Slots, nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
