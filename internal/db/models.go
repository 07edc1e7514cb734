package db

import "time"

// Reservation statuses as persisted by the store. A lapsed reservation keeps
// StatusActive until the expiry sweep reclassifies it.
const (
	StatusActive    = "active"
	StatusCancelled = "cancelled"
	StatusExpired   = "expired"
)

// Slot operational statuses.
const (
	SlotActive   = "active"
	SlotInactive = "inactive"
)

type User struct {
	ID           int
	Email        string
	Phone        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

type Slot struct {
	ID        int
	SlotCode  string
	Zone      string
	Type      string
	Status    string
	CreatedAt time.Time
}

type Reservation struct {
	ID        int
	UserID    int
	SlotID    int
	StartTime time.Time
	EndTime   time.Time
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
