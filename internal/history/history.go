// Package history restricts and filters terminal reservations for the
// history surface. History rows need no further derivation; only their
// persisted status and precomputed duration matter.
package history

import (
	"math"
	"strings"

	"parkhub/internal/client"
	"parkhub/internal/status"
)

// Filter is the user-selected history filter.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterCancelled Filter = "cancelled"
	FilterExpired   Filter = "expired"
)

// ParseFilter normalizes a user-supplied filter string, defaulting to all.
func ParseFilter(s string) Filter {
	switch Filter(strings.ToLower(s)) {
	case FilterCancelled:
		return FilterCancelled
	case FilterExpired:
		return FilterExpired
	default:
		return FilterAll
	}
}

// Record is a reservation prepared for history display.
type Record struct {
	client.Reservation
	StatusNorm string
	// DurationMinutes is the persisted value or the start/end fallback;
	// -1 when neither is computable.
	DurationMinutes int
}

// Apply normalizes the full reservation set, restricts it to terminal rows
// (persisted status cancelled or expired) and applies the selected filter.
// The store's return order is preserved; still-active rows never appear.
func Apply(list []client.Reservation, f Filter) []Record {
	out := make([]Record, 0, len(list))
	for _, r := range list {
		norm := strings.ToLower(r.Status)
		if norm != string(FilterCancelled) && norm != string(FilterExpired) {
			continue
		}
		if f != FilterAll && norm != string(f) {
			continue
		}
		out = append(out, Record{
			Reservation:     r,
			StatusNorm:      norm,
			DurationMinutes: durationMinutes(r),
		})
	}
	return out
}

func durationMinutes(r client.Reservation) int {
	if r.DurationMinutes != nil {
		return *r.DurationMinutes
	}
	start, errStart := status.ParseInstant(r.StartTime)
	end, errEnd := status.ParseInstant(r.EndTime)
	if errStart != nil || errEnd != nil {
		return -1
	}
	mins := int(math.Round(end.Sub(start).Minutes()))
	if mins < 0 {
		return 0
	}
	return mins
}

// FormatBooked renders a record's booked duration, with the placeholder for
// uncomputable values.
func (rec Record) FormatBooked() string {
	return status.FormatDurationMinutes(rec.DurationMinutes)
}
