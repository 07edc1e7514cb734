package status

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Record is the raw reservation material the engine derives from. Timestamps
// stay strings on purpose: the store owns their validity, this side only
// parses and fails closed when it cannot.
type Record struct {
	StartTime       string
	EndTime         string
	DurationMinutes *int
}

// Derived is the per-tick view of a record. It is recomputed on every tick
// and never persisted; Ongoing and Expired are mutually exclusive.
type Derived struct {
	Valid            bool
	Ongoing          bool
	Expired          bool
	DurationMinutes  int
	RemainingMinutes int
}

// ParseInstant parses an ISO-8601 instant as received from the store.
func ParseInstant(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable instant %q: %w", s, err)
	}
	return t, nil
}

// Derive computes the live status of a record against a single captured now.
// It is a pure function: no I/O, input never mutated, same inputs always
// yield the same output. Unparseable timestamps produce Valid=false and
// zeroed fields rather than an error.
func Derive(rec Record, now time.Time) Derived {
	start, errStart := ParseInstant(rec.StartTime)
	end, errEnd := ParseInstant(rec.EndTime)
	if errStart != nil || errEnd != nil {
		return Derived{}
	}

	d := Derived{Valid: true}

	if rec.DurationMinutes != nil {
		d.DurationMinutes = *rec.DurationMinutes
	} else {
		d.DurationMinutes = minutesBetween(start, end)
	}

	d.Expired = end.Before(now)
	d.Ongoing = !start.After(now) && !end.Before(now)

	if !d.Expired && end.After(now) {
		d.RemainingMinutes = minutesBetween(now, end)
	}

	return d
}

func minutesBetween(a, b time.Time) int {
	mins := int(math.Round(float64(b.Sub(a).Milliseconds()) / 60000.0))
	if mins < 0 {
		return 0
	}
	return mins
}

// FormatDurationMinutes renders a minute count the way the views show booked
// and remaining time: whole minutes under an hour, hours to one decimal
// under a day, days to one decimal beyond. Negative input renders the
// placeholder.
func FormatDurationMinutes(mins int) string {
	if mins < 0 {
		return "-"
	}
	if mins < 60 {
		return fmt.Sprintf("%d mins", mins)
	}
	hrs := float64(mins) / 60.0
	if hrs < 24 {
		return fmt.Sprintf("%.1f hrs", hrs)
	}
	return fmt.Sprintf("%.1f days", hrs/24.0)
}

// TypeLabel maps a slot category to its display label.
func TypeLabel(t string) string {
	switch strings.ToLower(t) {
	case "car":
		return "Car"
	case "motorcycle":
		return "Motorcycle"
	case "ev":
		return "EV"
	case "disabled":
		return "Disabled"
	case "other":
		return "Other"
	case "":
		return "-"
	default:
		return t
	}
}
