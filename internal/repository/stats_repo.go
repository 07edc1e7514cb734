package repository

import (
	"database/sql"
	"fmt"

	"parkhub/internal/entities"
)

type StatsRepository struct {
	DB *sql.DB
}

func NewStatsRepository(database *sql.DB) *StatsRepository {
	return &StatsRepository{DB: database}
}

// Summary computes the dashboard counters in one round trip. Key names here
// are the canonical spellings; the display side keeps its fallback chains
// for older aggregation snapshots.
func (r *StatsRepository) Summary() (map[string]int, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM slots WHERE status = 'active') AS total_active_slots,
			(SELECT COUNT(*) FROM reservations
				WHERE status = 'active' AND start_time <= NOW() AND end_time >= NOW()) AS reserved_now,
			(SELECT COUNT(*) FROM reservations
				WHERE status = 'active' AND start_time > NOW()) AS upcoming,
			(SELECT COUNT(*) FROM reservations WHERE status = 'expired') AS expired,
			(SELECT COUNT(*) FROM reservations WHERE status = 'cancelled') AS cancelled,
			(SELECT COUNT(*) FROM reservations
				WHERE created_at >= date_trunc('day', NOW())) AS reserved_today`

	var totalActive, reservedNow, upcoming, expired, cancelled, reservedToday int
	err := r.DB.QueryRow(query).Scan(
		&totalActive, &reservedNow, &upcoming, &expired, &cancelled, &reservedToday,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying stats summary: %w", err)
	}

	availableNow := totalActive - reservedNow
	if availableNow < 0 {
		availableNow = 0
	}

	return map[string]int{
		"totalActiveSlots":      totalActive,
		"reservedNow":           reservedNow,
		"availableNow":          availableNow,
		"upcomingReservations":  upcoming,
		"expiredReservations":   expired,
		"cancelledReservations": cancelled,
		"reservedToday":         reservedToday,
	}, nil
}

// PeakHours buckets reservations by their starting hour of day.
func (r *StatsRepository) PeakHours() ([]entities.IntBucket, error) {
	query := `
		SELECT EXTRACT(HOUR FROM start_time)::int AS hour, COUNT(*) AS count
		FROM reservations
		GROUP BY hour
		ORDER BY hour`
	return r.intBuckets(query, "peak hours")
}

// ByDayOfWeek buckets reservations by starting weekday, shifted to the
// 1=Sun..7=Sat indexing the wire contract uses (EXTRACT(DOW) is 0=Sunday).
func (r *StatsRepository) ByDayOfWeek() ([]entities.IntBucket, error) {
	query := `
		SELECT EXTRACT(DOW FROM start_time)::int + 1 AS dow, COUNT(*) AS count
		FROM reservations
		GROUP BY dow
		ORDER BY dow`
	return r.intBuckets(query, "day of week")
}

func (r *StatsRepository) intBuckets(query, what string) ([]entities.IntBucket, error) {
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying %s buckets: %w", what, err)
	}
	defer rows.Close()

	var buckets []entities.IntBucket
	for rows.Next() {
		var b entities.IntBucket
		if err := rows.Scan(&b.ID, &b.Count); err != nil {
			return nil, fmt.Errorf("error scanning %s bucket: %w", what, err)
		}
		buckets = append(buckets, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating %s buckets: %w", what, err)
	}
	return buckets, nil
}

// TopZones ranks zones by reservation count.
func (r *StatsRepository) TopZones(limit int) ([]entities.StringBucket, error) {
	query := `
		SELECT s.zone, COUNT(*) AS count
		FROM reservations r
		JOIN slots s ON s.id = r.slot_id
		GROUP BY s.zone
		ORDER BY count DESC
		LIMIT $1`
	rows, err := r.DB.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying top zones: %w", err)
	}
	defer rows.Close()

	var buckets []entities.StringBucket
	for rows.Next() {
		var b entities.StringBucket
		if err := rows.Scan(&b.ID, &b.Count); err != nil {
			return nil, fmt.Errorf("error scanning zone bucket: %w", err)
		}
		buckets = append(buckets, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating zone buckets: %w", err)
	}
	return buckets, nil
}
