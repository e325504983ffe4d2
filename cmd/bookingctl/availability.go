package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plannivo/booking-api/internal/domain/availability"
	"github.com/plannivo/booking-api/internal/pkg/hhmm"
)

func newCheckCmd() *cobra.Command {
	var (
		slotsPath string
		start     string
		duration  int
	)

	c := &cobra.Command{
		Use:   "check",
		Short: "Check whether a window is free in a day of slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			slots, err := loadSlots(cmd, slotsPath)
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]interface{}{
				"start_time":       start,
				"duration_minutes": duration,
				"available":        availability.IsRangeAvailable(slots, start, duration),
			})
		},
	}

	c.Flags().StringVar(&slotsPath, "slots", "", "JSON file with the day's slots (- for stdin)")
	c.Flags().StringVar(&start, "start", "", "Start time HH:MM")
	c.Flags().IntVar(&duration, "duration", 60, "Duration in minutes")
	_ = c.MarkFlagRequired("start")
	return c
}

func newAlternativesCmd() *cobra.Command {
	var (
		slotsPath  string
		start      string
		duration   int
		maxResults int
	)

	c := &cobra.Command{
		Use:   "alternatives",
		Short: "List free windows other than the requested start",
		RunE: func(cmd *cobra.Command, args []string) error {
			requested, ok := hhmm.ToMinutes(start)
			if !ok {
				return fmt.Errorf("invalid --start %q (want HH:MM)", start)
			}
			slots, err := loadSlots(cmd, slotsPath)
			if err != nil {
				return err
			}
			return printJSON(cmd, availability.FindAlternativeWindows(slots, duration, requested, maxResults))
		},
	}

	c.Flags().StringVar(&slotsPath, "slots", "", "JSON file with the day's slots (- for stdin)")
	c.Flags().StringVar(&start, "start", "", "Requested start time HH:MM, excluded from results")
	c.Flags().IntVar(&duration, "duration", 60, "Duration in minutes")
	c.Flags().IntVar(&maxResults, "max", availability.DefaultMaxAlternatives, "Maximum number of windows")
	_ = c.MarkFlagRequired("start")
	return c
}

func newNextCmd() *cobra.Command {
	var (
		slotsPath string
		after     string
		duration  int
		withBreak bool
		dayStart  string
		dayEnd    string
	)

	c := &cobra.Command{
		Use:   "next",
		Short: "Find the first free start after a given time",
		RunE: func(cmd *cobra.Command, args []string) error {
			grid, err := availability.NewGrid(dayStart, dayEnd)
			if err != nil {
				return err
			}
			slots, err := loadSlots(cmd, slotsPath)
			if err != nil {
				return err
			}

			out := map[string]interface{}{"found": false}
			if next, ok := grid.FindNextAvailableStart(slots, after, duration, withBreak); ok {
				out["found"] = true
				out["start_time"] = next
			}
			return printJSON(cmd, out)
		},
	}

	c.Flags().StringVar(&slotsPath, "slots", "", "JSON file with the day's slots (- for stdin)")
	c.Flags().StringVar(&after, "after", "", "Search strictly after this time HH:MM")
	c.Flags().IntVar(&duration, "duration", 60, "Duration in minutes")
	c.Flags().BoolVar(&withBreak, "break", false, "Leave a 30 minute break after --after")
	c.Flags().StringVar(&dayStart, "day-start", "08:00", "First bookable tick")
	c.Flags().StringVar(&dayEnd, "day-end", "20:00", "End of the bookable day")
	_ = c.MarkFlagRequired("after")
	return c
}
