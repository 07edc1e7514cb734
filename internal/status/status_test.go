package status

import (
	"testing"
	"time"
)

func ts(t time.Time) string { return t.UTC().Format(time.RFC3339) }

func TestDerive(t *testing.T) {
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		start, end    time.Time
		now           time.Time
		wantOngoing   bool
		wantExpired   bool
		wantRemaining int
	}{
		{
			name:  "ongoing halfway through",
			start: base, end: base.Add(60 * time.Minute), now: base.Add(30 * time.Minute),
			wantOngoing: true, wantExpired: false, wantRemaining: 30,
		},
		{
			name:  "expired after end",
			start: base, end: base.Add(60 * time.Minute), now: base.Add(90 * time.Minute),
			wantOngoing: false, wantExpired: true, wantRemaining: 0,
		},
		{
			name:  "upcoming",
			start: base.Add(time.Hour), end: base.Add(2 * time.Hour), now: base,
			wantOngoing: false, wantExpired: false, wantRemaining: 120,
		},
		{
			name:  "starts exactly now",
			start: base, end: base.Add(time.Hour), now: base,
			wantOngoing: true, wantExpired: false, wantRemaining: 60,
		},
		{
			name:  "ends exactly now",
			start: base.Add(-time.Hour), end: base, now: base,
			wantOngoing: true, wantExpired: false, wantRemaining: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Derive(Record{StartTime: ts(tt.start), EndTime: ts(tt.end)}, tt.now)
			if !d.Valid {
				t.Fatal("expected Valid=true")
			}
			if d.Ongoing != tt.wantOngoing {
				t.Errorf("Ongoing = %v, want %v", d.Ongoing, tt.wantOngoing)
			}
			if d.Expired != tt.wantExpired {
				t.Errorf("Expired = %v, want %v", d.Expired, tt.wantExpired)
			}
			if d.RemainingMinutes != tt.wantRemaining {
				t.Errorf("RemainingMinutes = %d, want %d", d.RemainingMinutes, tt.wantRemaining)
			}
			if d.Ongoing && d.Expired {
				t.Error("Ongoing and Expired must be mutually exclusive")
			}
		})
	}
}

func TestDeriveDurationFallback(t *testing.T) {
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	rec := Record{StartTime: ts(base), EndTime: ts(base.Add(90 * time.Minute))}
	d := Derive(rec, base)
	if d.DurationMinutes != 90 {
		t.Errorf("derived DurationMinutes = %d, want 90", d.DurationMinutes)
	}

	// Recomputing from the same interval is idempotent.
	for i := 0; i < 3; i++ {
		if got := Derive(rec, base.Add(time.Duration(i)*time.Hour)); got.DurationMinutes != 90 {
			t.Errorf("pass %d: DurationMinutes = %d, want 90", i, got.DurationMinutes)
		}
	}

	// Precomputed value wins over the interval.
	precomputed := 45
	rec.DurationMinutes = &precomputed
	if got := Derive(rec, base); got.DurationMinutes != 45 {
		t.Errorf("DurationMinutes = %d, want precomputed 45", got.DurationMinutes)
	}

	// Inverted interval clamps to zero rather than going negative.
	inverted := Record{StartTime: ts(base.Add(time.Hour)), EndTime: ts(base)}
	if got := Derive(inverted, base); got.DurationMinutes != 0 {
		t.Errorf("inverted interval DurationMinutes = %d, want 0", got.DurationMinutes)
	}
}

func TestDeriveMalformedTimestamps(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		rec  Record
	}{
		{"garbage start", Record{StartTime: "not-a-time", EndTime: ts(now)}},
		{"garbage end", Record{StartTime: ts(now), EndTime: "soon"}},
		{"both empty", Record{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Derive(tt.rec, now)
			if d.Valid {
				t.Error("expected Valid=false for malformed timestamps")
			}
			if d.Ongoing || d.Expired {
				t.Error("malformed record must not classify as ongoing or expired")
			}
			if d.RemainingMinutes != 0 || d.DurationMinutes != 0 {
				t.Error("malformed record must carry zeroed derived fields")
			}
		})
	}
}

func TestFormatDurationMinutes(t *testing.T) {
	tests := []struct {
		mins int
		want string
	}{
		{-1, "-"},
		{0, "0 mins"},
		{45, "45 mins"},
		{59, "59 mins"},
		{60, "1.0 hrs"},
		{90, "1.5 hrs"},
		{1439, "24.0 hrs"},
		{1440, "1.0 days"},
		{2160, "1.5 days"},
	}

	for _, tt := range tests {
		if got := FormatDurationMinutes(tt.mins); got != tt.want {
			t.Errorf("FormatDurationMinutes(%d) = %q, want %q", tt.mins, got, tt.want)
		}
	}
}

func TestTypeLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"car", "Car"},
		{"EV", "EV"},
		{"Motorcycle", "Motorcycle"},
		{"", "-"},
		{"rv", "rv"},
	}
	for _, tt := range tests {
		if got := TypeLabel(tt.in); got != tt.want {
			t.Errorf("TypeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
