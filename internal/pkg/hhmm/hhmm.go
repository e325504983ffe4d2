// Package hhmm converts between "HH:MM" wall-clock strings and minutes since midnight.
//
// All slot arithmetic in the service goes through this package so that time strings are
// parsed in exactly one place.
package hhmm

import (
	"math"
	"strconv"
	"strings"
)

// Layout is the canonical 24h time-of-day format.
const Layout = "15:04"

// MinutesPerDay is the exclusive upper bound for a start time; 24:00 is accepted only as an end.
const MinutesPerDay = 24 * 60

// ToMinutes parses "H:MM" or "HH:MM" into minutes since midnight.
// "24:00" is accepted as end of day. Anything else reports ok=false.
func ToMinutes(s string) (int, bool) {
	s = strings.TrimSpace(s)
	hs, ms, found := strings.Cut(s, ":")
	if !found || len(hs) == 0 || len(hs) > 2 || len(ms) != 2 {
		return 0, false
	}

	h, err := strconv.Atoi(hs)
	if err != nil || h < 0 || h > 24 {
		return 0, false
	}
	m, err := strconv.Atoi(ms)
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	// Atoi accepts a sign; a time string never carries one.
	if hs[0] == '+' || hs[0] == '-' || ms[0] == '+' || ms[0] == '-' {
		return 0, false
	}

	total := h*60 + m
	if total > MinutesPerDay {
		return 0, false
	}
	return total, true
}

// FromMinutes formats minutes since midnight as zero-padded "HH:MM".
// Negative input clamps to 00:00.
func FromMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	h := minutes / 60
	m := minutes % 60

	var b strings.Builder
	b.Grow(5)
	if h < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.Itoa(h))
	b.WriteByte(':')
	if m < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.Itoa(m))
	return b.String()
}

// Normalize rewrites a time string into its zero-padded form ("9:00" -> "09:00").
func Normalize(s string) (string, bool) {
	m, ok := ToMinutes(s)
	if !ok {
		return "", false
	}
	return FromMinutes(m), true
}

// HoursToMinutes converts decimal hours to whole minutes, rounding half away from zero.
// Non-finite and negative values map to 0.
func HoursToMinutes(hours float64) int {
	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours <= 0 {
		return 0
	}
	return int(math.Round(hours * 60))
}

// MinutesToHours converts minutes to decimal hours.
func MinutesToHours(minutes int) float64 {
	return float64(minutes) / 60
}
