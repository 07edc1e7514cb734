package entities

import (
	"strconv"
	"time"

	"parkhub/internal/db"
)

// SlotResponse mirrors the wire shape the consumers expect, string ids
// included.
type SlotResponse struct {
	ID       string `json:"_id"`
	SlotCode string `json:"slotCode"`
	Zone     string `json:"zone"`
	Type     string `json:"type"`
	Status   string `json:"status"`
}

func NewSlotResponse(s db.Slot) SlotResponse {
	return SlotResponse{
		ID:       strconv.Itoa(s.ID),
		SlotCode: s.SlotCode,
		Zone:     s.Zone,
		Type:     s.Type,
		Status:   s.Status,
	}
}

// ReservationResponse carries the persisted status plus the precomputed
// duration; derived fields stay on the consumer side.
type ReservationResponse struct {
	ID              string        `json:"_id"`
	Slot            *SlotResponse `json:"slot,omitempty"`
	StartTime       time.Time     `json:"startTime"`
	EndTime         time.Time     `json:"endTime"`
	Status          string        `json:"status"`
	DurationMinutes int           `json:"durationMinutes"`
	CreatedAt       time.Time     `json:"createdAt"`
}

// IntBucket is one numeric-keyed aggregation bucket (hour of day, weekday
// index).
type IntBucket struct {
	ID    int `json:"_id"`
	Count int `json:"count"`
}

// StringBucket is one zone aggregation bucket.
type StringBucket struct {
	ID    string `json:"_id"`
	Count int    `json:"count"`
}

type StatsResponse struct {
	Summary     map[string]int `json:"summary"`
	PeakHours   []IntBucket    `json:"peakHours"`
	TopZones    []StringBucket `json:"topZones"`
	ByDayOfWeek []IntBucket    `json:"byDayOfWeek"`
}
