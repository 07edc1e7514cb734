package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"parkhub/internal/db"
	"parkhub/internal/entities"
)

type ReservationRepository struct {
	DB *sql.DB
}

func NewReservationRepository(database *sql.DB) *ReservationRepository {
	return &ReservationRepository{DB: database}
}

// HasOverlap reports whether the slot already carries an active reservation
// intersecting the requested interval.
func (r *ReservationRepository) HasOverlap(slotID int, start, end time.Time) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM reservations
			WHERE slot_id = $1
			  AND status = 'active'
			  AND start_time < $3
			  AND end_time > $2
		)`
	if err := r.DB.QueryRow(query, slotID, start, end).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking reservation overlap: %w", err)
	}
	return exists, nil
}

func (r *ReservationRepository) CreateReservation(res *db.Reservation) error {
	query := `
		INSERT INTO reservations (user_id, slot_id, start_time, end_time, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at`
	return r.DB.QueryRow(query,
		res.UserID,
		res.SlotID,
		res.StartTime,
		res.EndTime,
		res.Status,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
}

// ListByUser returns the user's reservations joined with their slot, newest
// first. An empty status returns the full history.
func (r *ReservationRepository) ListByUser(userID int, status string) ([]entities.ReservationResponse, error) {
	query := `
		SELECT
			r.id, r.start_time, r.end_time, r.status, r.created_at,
			s.id, s.slot_code, s.zone, s.type, s.status
		FROM reservations r
		JOIN slots s ON s.id = r.slot_id
		WHERE r.user_id = $1`
	args := []interface{}{userID}
	if status != "" {
		query += " AND r.status = $2"
		args = append(args, status)
	}
	query += " ORDER BY r.created_at DESC"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying reservations: %w", err)
	}
	defer rows.Close()

	var out []entities.ReservationResponse
	for rows.Next() {
		var res entities.ReservationResponse
		var resID, slotID int
		var slot entities.SlotResponse
		err := rows.Scan(
			&resID, &res.StartTime, &res.EndTime, &res.Status, &res.CreatedAt,
			&slotID, &slot.SlotCode, &slot.Zone, &slot.Type, &slot.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning reservation: %w", err)
		}
		res.ID = strconv.Itoa(resID)
		slot.ID = strconv.Itoa(slotID)
		res.Slot = &slot
		res.DurationMinutes = durationMinutes(res.StartTime, res.EndTime)
		out = append(out, res)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating reservation rows: %w", err)
	}
	return out, nil
}

func (r *ReservationRepository) GetByID(id int) (*db.Reservation, error) {
	var res db.Reservation
	query := `
		SELECT id, user_id, slot_id, start_time, end_time, status, created_at, updated_at
		FROM reservations WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(
		&res.ID, &res.UserID, &res.SlotID, &res.StartTime, &res.EndTime,
		&res.Status, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying reservation %d: %w", id, err)
	}
	return &res, nil
}

// CancelReservation flips an active reservation to cancelled. The WHERE
// clause on status makes the update a no-op for rows the sweep already
// reclassified.
func (r *ReservationRepository) CancelReservation(id int) (bool, error) {
	result, err := r.DB.Exec(
		`UPDATE reservations SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`,
		db.StatusCancelled, id, db.StatusActive,
	)
	if err != nil {
		return false, fmt.Errorf("error cancelling reservation %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func durationMinutes(start, end time.Time) int {
	mins := int(math.Round(end.Sub(start).Minutes()))
	if mins < 0 {
		return 0
	}
	return mins
}
