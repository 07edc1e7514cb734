package entities

import "time"

type RegisterRequest struct {
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type CreateSlotRequest struct {
	SlotCode string `json:"slotCode"`
	Zone     string `json:"zone"`
	Type     string `json:"type"`
}

type CreateReservationRequest struct {
	SlotID    string    `json:"slotId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}
