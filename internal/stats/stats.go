// Package stats reshapes the pre-aggregated dashboard payload for display.
// It computes nothing itself; the aggregation service owns the numbers, this
// side only tolerates key drift and fixes the ordering.
package stats

import (
	"fmt"
	"sort"
)

// Placeholder is rendered for any metric the summary does not carry.
const Placeholder = "-"

// Metric names one logical summary counter.
type Metric string

const (
	MetricActiveSlots   Metric = "activeSlots"
	MetricReservedNow   Metric = "reservedNow"
	MetricAvailableNow  Metric = "availableNow"
	MetricUpcoming      Metric = "upcoming"
	MetricExpired       Metric = "expired"
	MetricCancelled     Metric = "cancelled"
	MetricBookingsToday Metric = "bookingsToday"
)

// candidateKeys lists, per metric, the summary key spellings the aggregation
// service has used over time, in lookup order. The first present non-null
// key wins.
var candidateKeys = map[Metric][]string{
	MetricActiveSlots:   {"totalActiveSlots", "activeSlots", "totalSlots"},
	MetricReservedNow:   {"reservedNow", "ongoingNow", "reserved_now"},
	MetricAvailableNow:  {"availableNow", "available_now"},
	MetricUpcoming:      {"upcomingReservations", "upcoming", "upcomingCount"},
	MetricExpired:       {"expiredReservations", "expired", "pastReservations", "past"},
	MetricCancelled:     {"cancelledReservations", "cancelled", "cancelledCount"},
	MetricBookingsToday: {"reservedToday", "bookingsToday", "todayBookings"},
}

// Labels in dashboard order.
var MetricLabels = []struct {
	Metric Metric
	Label  string
}{
	{MetricActiveSlots, "Active Slots"},
	{MetricReservedNow, "Reserved Now"},
	{MetricAvailableNow, "Available Now"},
	{MetricUpcoming, "Upcoming"},
	{MetricExpired, "Expired"},
	{MetricCancelled, "Cancelled"},
	{MetricBookingsToday, "Bookings Today"},
}

// ResolveSummary looks a metric up through its candidate key chain and
// renders it, falling back to the placeholder when no key is present.
func ResolveSummary(summary map[string]any, m Metric) string {
	for _, key := range candidateKeys[m] {
		v, ok := summary[key]
		if !ok || v == nil {
			continue
		}
		return renderValue(v)
	}
	return Placeholder
}

func renderValue(v any) string {
	switch n := v.(type) {
	case float64:
		if n == float64(int64(n)) {
			return fmt.Sprintf("%d", int64(n))
		}
		return fmt.Sprintf("%g", n)
	case int:
		return fmt.Sprintf("%d", n)
	case int64:
		return fmt.Sprintf("%d", n)
	case string:
		return n
	default:
		return fmt.Sprintf("%v", n)
	}
}

// HourBucket is one peak-hours aggregation bucket.
type HourBucket struct {
	Hour  int `json:"_id"`
	Count int `json:"count"`
}

// ZoneBucket is one top-zones aggregation bucket.
type ZoneBucket struct {
	Zone  string `json:"_id"`
	Count int    `json:"count"`
}

// DayBucket is one weekday aggregation bucket, 1-indexed with 1=Sun..7=Sat.
type DayBucket struct {
	Day   int `json:"_id"`
	Count int `json:"count"`
}

// Payload is the /admin/stats response shape.
type Payload struct {
	Summary     map[string]any `json:"summary"`
	PeakHours   []HourBucket   `json:"peakHours"`
	TopZones    []ZoneBucket   `json:"topZones"`
	ByDayOfWeek []DayBucket    `json:"byDayOfWeek"`
}

var dayNames = [...]string{"", "Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// DayName maps a 1-indexed weekday to its three letter label. Index 0 is
// unused and out-of-range indexes fall back to the numeric form.
func DayName(n int) string {
	if n >= 1 && n < len(dayNames) {
		return dayNames[n]
	}
	return fmt.Sprintf("%d", n)
}

// PeakHoursSeries returns the peak-hour buckets sorted ascending by hour.
// The input is never mutated.
func PeakHoursSeries(in []HourBucket) []HourBucket {
	out := append([]HourBucket(nil), in...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Hour < out[j].Hour })
	return out
}

// TopZonesSeries returns the zone buckets sorted descending by count.
func TopZonesSeries(in []ZoneBucket) []ZoneBucket {
	out := append([]ZoneBucket(nil), in...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// DayPoint is one display-ready weekday value.
type DayPoint struct {
	Day   string
	Count int
}

// WeekdaySeries returns the weekday buckets sorted ascending by day index
// with each index mapped to its label.
func WeekdaySeries(in []DayBucket) []DayPoint {
	buckets := append([]DayBucket(nil), in...)
	sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].Day < buckets[j].Day })
	out := make([]DayPoint, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, DayPoint{Day: DayName(b.Day), Count: b.Count})
	}
	return out
}
