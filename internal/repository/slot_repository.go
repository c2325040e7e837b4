package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/ministry-booking-api/internal/models"
)

// SlotRepository manages persistence for time slots.
type SlotRepository struct {
	db *sqlx.DB
}

// NewSlotRepository constructs a SlotRepository.
func NewSlotRepository(db *sqlx.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

const slotColumns = "id, minister_id, slot_date, start_time, end_time, booked, created_at"

// ListAvailable returns the offerable slots for a minister on a date: not
// booked and with no appointment attached, checked with an explicit existence
// query rather than relying on the booked flag alone. When after is non-empty
// ("HH:MM:SS"), slots starting at or before that time are excluded; callers
// pass the current wall-clock time for same-day queries.
func (r *SlotRepository) ListAvailable(ctx context.Context, ministerID int64, date time.Time, after string) ([]models.TimeSlot, error) {
	query := fmt.Sprintf(`SELECT %s FROM time_slots s
		WHERE s.minister_id = $1 AND s.slot_date = $2 AND s.booked = FALSE
		AND NOT EXISTS (SELECT 1 FROM appointments a WHERE a.slot_id = s.id)`, slotColumns)
	args := []interface{}{ministerID, date}
	if after != "" {
		query += " AND s.start_time > $3"
		args = append(args, after)
	}
	query += " ORDER BY s.start_time ASC"

	var slots []models.TimeSlot
	if err := r.db.SelectContext(ctx, &slots, query, args...); err != nil {
		return nil, fmt.Errorf("list available slots: %w", err)
	}
	return slots, nil
}

// ListByMinister returns every slot of a minister ordered by date and start time.
func (r *SlotRepository) ListByMinister(ctx context.Context, ministerID int64) ([]models.TimeSlot, error) {
	query := fmt.Sprintf("SELECT %s FROM time_slots WHERE minister_id = $1 ORDER BY slot_date ASC, start_time ASC", slotColumns)
	var slots []models.TimeSlot
	if err := r.db.SelectContext(ctx, &slots, query, ministerID); err != nil {
		return nil, fmt.Errorf("list minister slots: %w", err)
	}
	return slots, nil
}

// FindByID fetches a slot by ID.
func (r *SlotRepository) FindByID(ctx context.Context, id int64) (*models.TimeSlot, error) {
	query := fmt.Sprintf("SELECT %s FROM time_slots WHERE id = $1", slotColumns)
	var slot models.TimeSlot
	if err := r.db.GetContext(ctx, &slot, query, id); err != nil {
		return nil, err
	}
	return &slot, nil
}

// Create inserts a single slot. A duplicate (minister, date, start_time)
// surfaces as a unique violation for the caller to map.
func (r *SlotRepository) Create(ctx context.Context, slot *models.TimeSlot) error {
	slot.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO time_slots (minister_id, slot_date, start_time, end_time, booked, created_at)
		VALUES ($1, $2, $3, $4, FALSE, $5) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query,
		slot.MinisterID, slot.Date, slot.StartTime, slot.EndTime, slot.CreatedAt,
	).Scan(&slot.ID); err != nil {
		return fmt.Errorf("create slot: %w", err)
	}
	return nil
}

// BulkInsert inserts many slots, silently skipping ones that collide with the
// (minister, date, start_time) uniqueness constraint. It returns the number of
// rows actually inserted.
func (r *SlotRepository) BulkInsert(ctx context.Context, slots []models.TimeSlot) (int, error) {
	if len(slots) == 0 {
		return 0, nil
	}
	const query = `INSERT INTO time_slots (minister_id, slot_date, start_time, end_time, booked, created_at)
		VALUES ($1, $2, $3, $4, FALSE, $5)
		ON CONFLICT (minister_id, slot_date, start_time) DO NOTHING`

	now := time.Now().UTC()
	inserted := 0
	for _, slot := range slots {
		res, err := r.db.ExecContext(ctx, query, slot.MinisterID, slot.Date, slot.StartTime, slot.EndTime, now)
		if err != nil {
			return inserted, fmt.Errorf("bulk insert slot: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}
	return inserted, nil
}

// Delete removes a slot and, via cascade, any appointment attached to it.
func (r *SlotRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM time_slots WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}
	return nil
}
