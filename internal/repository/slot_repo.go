package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"parkhub/internal/db"
)

type SlotRepository struct {
	DB *sql.DB
}

func NewSlotRepository(database *sql.DB) *SlotRepository {
	return &SlotRepository{DB: database}
}

func (r *SlotRepository) ListSlots(zone, slotType, status string) ([]db.Slot, error) {
	query := `SELECT id, slot_code, zone, type, status, created_at FROM slots WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if zone != "" {
		query += " AND zone = $" + strconv.Itoa(idx)
		args = append(args, zone)
		idx++
	}
	if slotType != "" {
		query += " AND type = $" + strconv.Itoa(idx)
		args = append(args, slotType)
		idx++
	}
	if status != "" {
		query += " AND status = $" + strconv.Itoa(idx)
		args = append(args, status)
		idx++
	}
	query += " ORDER BY zone, slot_code"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying slots: %w", err)
	}
	defer rows.Close()

	var slots []db.Slot
	for rows.Next() {
		var s db.Slot
		if err := rows.Scan(&s.ID, &s.SlotCode, &s.Zone, &s.Type, &s.Status, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning slot: %w", err)
		}
		slots = append(slots, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating slot rows: %w", err)
	}
	return slots, nil
}

func (r *SlotRepository) GetSlotByID(id int) (*db.Slot, error) {
	var s db.Slot
	query := `SELECT id, slot_code, zone, type, status, created_at FROM slots WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(&s.ID, &s.SlotCode, &s.Zone, &s.Type, &s.Status, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying slot %d: %w", id, err)
	}
	return &s, nil
}

func (r *SlotRepository) CreateSlot(slot *db.Slot) error {
	query := `
		INSERT INTO slots (slot_code, zone, type, status, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at`
	return r.DB.QueryRow(query, slot.SlotCode, slot.Zone, slot.Type, slot.Status).
		Scan(&slot.ID, &slot.CreatedAt)
}

func (r *SlotRepository) DeleteSlot(id int) (bool, error) {
	result, err := r.DB.Exec(`DELETE FROM slots WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("error deleting slot %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
