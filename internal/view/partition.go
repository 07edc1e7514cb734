package view

import (
	"time"

	"parkhub/internal/client"
	"parkhub/internal/status"
)

// Row is one active-view reservation stamped with its derived status for the
// current tick.
type Row struct {
	client.Reservation
	Derived status.Derived
}

// CanCancel reports whether the cancel control should be enabled. UX-only:
// the store rejects cancellation of ended reservations on its own.
func (r Row) CanCancel() bool {
	return r.Derived.Valid && !r.Derived.Expired
}

// Partition derives every row of the active result set against one captured
// now and reports whether any row has lapsed locally, meaning its end time
// has passed while the store still says active. Rows the store already
// reclassified never reach this set; the active query filters on persisted
// status.
func Partition(list []client.Reservation, now time.Time) ([]Row, bool) {
	rows := make([]Row, 0, len(list))
	anyExpired := false
	for _, r := range list {
		d := status.Derive(r.Record(), now)
		if d.Expired {
			anyExpired = true
		}
		rows = append(rows, Row{Reservation: r, Derived: d})
	}
	return rows, anyExpired
}
