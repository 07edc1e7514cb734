package client

import (
	"encoding/json"

	"parkhub/internal/status"
)

// Slot as returned by the store. Read-only on this side.
type Slot struct {
	ID       string `json:"_id"`
	SlotCode string `json:"slotCode"`
	Zone     string `json:"zone"`
	Type     string `json:"type"`
	Status   string `json:"status"`
}

// SlotRef tolerates both shapes the store has shipped over time: a bare slot
// id string or an embedded slot document.
type SlotRef struct {
	ID   string
	Slot *Slot
}

func (s *SlotRef) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, &s.ID)
	}
	var slot Slot
	if err := json.Unmarshal(b, &slot); err != nil {
		return err
	}
	s.Slot = &slot
	s.ID = slot.ID
	return nil
}

func (s *SlotRef) MarshalJSON() ([]byte, error) {
	if s.Slot != nil {
		return json.Marshal(s.Slot)
	}
	return json.Marshal(s.ID)
}

// Reservation as returned by the store. Timestamps are kept as the opaque
// instants the wire carries; derivation parses them per tick.
type Reservation struct {
	ID              string   `json:"_id"`
	Slot            *SlotRef `json:"slot,omitempty"`
	SlotID          *SlotRef `json:"slotId,omitempty"`
	StartTime       string   `json:"startTime"`
	EndTime         string   `json:"endTime"`
	Status          string   `json:"status"`
	DurationMinutes *int     `json:"durationMinutes,omitempty"`
}

// SlotInfo returns the slot document regardless of which field the store
// populated, or nil when only a bare id was sent.
func (r *Reservation) SlotInfo() *Slot {
	if r.Slot != nil && r.Slot.Slot != nil {
		return r.Slot.Slot
	}
	if r.SlotID != nil && r.SlotID.Slot != nil {
		return r.SlotID.Slot
	}
	return nil
}

// Record adapts a reservation for the derivation engine.
func (r *Reservation) Record() status.Record {
	return status.Record{
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		DurationMinutes: r.DurationMinutes,
	}
}
