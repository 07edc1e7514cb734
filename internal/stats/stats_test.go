package stats

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestResolveSummaryFallbackChains(t *testing.T) {
	tests := []struct {
		name    string
		summary map[string]any
		metric  Metric
		want    string
	}{
		{
			name:    "first candidate wins",
			summary: map[string]any{"totalActiveSlots": float64(12), "activeSlots": float64(99)},
			metric:  MetricActiveSlots,
			want:    "12",
		},
		{
			name:    "falls back to second spelling",
			summary: map[string]any{"activeSlots": float64(5)},
			metric:  MetricActiveSlots,
			want:    "5",
		},
		{
			name:    "falls back to last spelling",
			summary: map[string]any{"totalSlots": float64(7)},
			metric:  MetricActiveSlots,
			want:    "7",
		},
		{
			name:    "empty summary renders placeholder",
			summary: map[string]any{},
			metric:  MetricActiveSlots,
			want:    Placeholder,
		},
		{
			name:    "null value is skipped",
			summary: map[string]any{"reservedNow": nil, "ongoingNow": float64(3)},
			metric:  MetricReservedNow,
			want:    "3",
		},
		{
			name:    "snake case spelling",
			summary: map[string]any{"available_now": float64(4)},
			metric:  MetricAvailableNow,
			want:    "4",
		},
		{
			name:    "legacy past key",
			summary: map[string]any{"past": float64(11)},
			metric:  MetricExpired,
			want:    "11",
		},
		{
			name:    "bookings today chain",
			summary: map[string]any{"todayBookings": float64(2)},
			metric:  MetricBookingsToday,
			want:    "2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveSummary(tt.summary, tt.metric); got != tt.want {
				t.Errorf("ResolveSummary(%s) = %q, want %q", tt.metric, got, tt.want)
			}
		})
	}
}

func TestResolveSummaryFromJSON(t *testing.T) {
	// Values decoded from the wire arrive as float64; integral counts must
	// not render with a decimal point.
	var summary map[string]any
	if err := json.Unmarshal([]byte(`{"activeSlots": 5}`), &summary); err != nil {
		t.Fatal(err)
	}
	if got := ResolveSummary(summary, MetricActiveSlots); got != "5" {
		t.Errorf("ResolveSummary = %q, want %q", got, "5")
	}
}

func TestPeakHoursSeries(t *testing.T) {
	in := []HourBucket{{Hour: 17, Count: 9}, {Hour: 8, Count: 4}, {Hour: 12, Count: 6}}
	got := PeakHoursSeries(in)
	want := []HourBucket{{Hour: 8, Count: 4}, {Hour: 12, Count: 6}, {Hour: 17, Count: 9}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PeakHoursSeries = %v, want %v", got, want)
	}
	// Input untouched.
	if in[0].Hour != 17 {
		t.Error("PeakHoursSeries mutated its input")
	}
}

func TestTopZonesSeries(t *testing.T) {
	in := []ZoneBucket{{Zone: "A", Count: 2}, {Zone: "C", Count: 9}, {Zone: "B", Count: 5}}
	got := TopZonesSeries(in)
	want := []ZoneBucket{{Zone: "C", Count: 9}, {Zone: "B", Count: 5}, {Zone: "A", Count: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopZonesSeries = %v, want %v", got, want)
	}
}

func TestWeekdaySeries(t *testing.T) {
	in := []DayBucket{{Day: 3, Count: 4}, {Day: 1, Count: 2}}
	got := WeekdaySeries(in)
	want := []DayPoint{{Day: "Sun", Count: 2}, {Day: "Tue", Count: 4}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("WeekdaySeries = %v, want %v", got, want)
	}
}

func TestDayName(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{1, "Sun"},
		{2, "Mon"},
		{7, "Sat"},
		{0, "0"},
		{8, "8"},
	}
	for _, tt := range tests {
		if got := DayName(tt.in); got != tt.want {
			t.Errorf("DayName(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEmptySeries(t *testing.T) {
	if got := PeakHoursSeries(nil); len(got) != 0 {
		t.Errorf("PeakHoursSeries(nil) = %v, want empty", got)
	}
	if got := WeekdaySeries(nil); len(got) != 0 {
		t.Errorf("WeekdaySeries(nil) = %v, want empty", got)
	}
}
