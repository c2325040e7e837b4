package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/ministry-booking-api/internal/models"
)

// AppointmentRepository manages persistence for appointment requests.
type AppointmentRepository struct {
	db *sqlx.DB
}

// NewAppointmentRepository constructs an AppointmentRepository.
func NewAppointmentRepository(db *sqlx.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

const appointmentColumns = "id, slot_id, full_name, email, phone_number, address, purpose, status, admin_notes, created_at, decided_at"

const detailColumns = `a.id, a.slot_id, a.full_name, a.email, a.phone_number, a.address, a.purpose,
	a.status, a.admin_notes, a.created_at, a.decided_at,
	s.slot_date, s.start_time, s.end_time, m.name AS minister_name, m.portfolio`

// Create inserts a new appointment and assigns its generated ID. The UNIQUE
// constraint on slot_id is the authoritative double-booking guard: a second
// concurrent insert against the same slot fails here with a unique violation,
// which callers map to a conflict.
func (r *AppointmentRepository) Create(ctx context.Context, appt *models.Appointment) error {
	appt.CreatedAt = time.Now().UTC()
	if appt.Status == "" {
		appt.Status = models.StatusPending
	}
	const query = `INSERT INTO appointments (slot_id, full_name, email, phone_number, address, purpose, status, admin_notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, '', $8) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query,
		appt.SlotID, appt.FullName, appt.Email, appt.PhoneNumber, appt.Address,
		appt.Purpose, appt.Status, appt.CreatedAt,
	).Scan(&appt.ID); err != nil {
		return fmt.Errorf("create appointment: %w", err)
	}
	return nil
}

// FindByID fetches an appointment by ID.
func (r *AppointmentRepository) FindByID(ctx context.Context, id int64) (*models.Appointment, error) {
	query := fmt.Sprintf("SELECT %s FROM appointments WHERE id = $1", appointmentColumns)
	var appt models.Appointment
	if err := r.db.GetContext(ctx, &appt, query, id); err != nil {
		return nil, err
	}
	return &appt, nil
}

// FindDetailByID fetches an appointment joined with its slot and minister.
func (r *AppointmentRepository) FindDetailByID(ctx context.Context, id int64) (*models.AppointmentDetail, error) {
	query := fmt.Sprintf(`SELECT %s FROM appointments a
		JOIN time_slots s ON s.id = a.slot_id
		JOIN ministers m ON m.id = s.minister_id
		WHERE a.id = $1`, detailColumns)
	var detail models.AppointmentDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// List returns appointments (with slot and minister context) matching the
// filter, ordered by slot date then start time, along with the total count.
func (r *AppointmentRepository) List(ctx context.Context, filter models.AppointmentFilter) ([]models.AppointmentDetail, int, error) {
	base := `FROM appointments a
		JOIN time_slots s ON s.id = a.slot_id
		JOIN ministers m ON m.id = s.minister_id
		WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", len(args)+1))
		args = append(args, *filter.Status)
	}
	if filter.MinisterID != nil {
		conditions = append(conditions, fmt.Sprintf("s.minister_id = $%d", len(args)+1))
		args = append(args, *filter.MinisterID)
	}
	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY s.slot_date ASC, s.start_time ASC LIMIT %d OFFSET %d", detailColumns, base, size, offset)
	var items []models.AppointmentDetail
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list appointments: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count appointments: %w", err)
	}

	return items, total, nil
}

// CountByStatus returns the dashboard backlog counters in a single query.
func (r *AppointmentRepository) CountByStatus(ctx context.Context) (models.StatusCounts, error) {
	const query = `SELECT
		COUNT(*) FILTER (WHERE status = 'PENDING')   AS pending,
		COUNT(*) FILTER (WHERE status = 'APPROVED')  AS approved,
		COUNT(*) FILTER (WHERE status = 'REJECTED')  AS rejected,
		COUNT(*) FILTER (WHERE status = 'COMPLETED') AS completed
		FROM appointments`
	var counts models.StatusCounts
	if err := r.db.GetContext(ctx, &counts, query); err != nil {
		return models.StatusCounts{}, fmt.Errorf("count appointments by status: %w", err)
	}
	return counts, nil
}

// Decide updates the appointment status and remark and, when slotBooked is
// non-nil, synchronises the slot's booked flag. Both writes happen in one
// transaction so a decision can never half-apply.
func (r *AppointmentRepository) Decide(ctx context.Context, id int64, status models.AppointmentStatus, notes string, slotBooked *bool) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin decision tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx,
		`UPDATE appointments SET status = $2, admin_notes = $3, decided_at = $4 WHERE id = $1`,
		id, status, notes, now,
	); err != nil {
		return fmt.Errorf("update appointment decision: %w", err)
	}

	if slotBooked != nil {
		if _, err := tx.ExecContext(ctx,
			`UPDATE time_slots SET booked = $2 WHERE id = (SELECT slot_id FROM appointments WHERE id = $1)`,
			id, *slotBooked,
		); err != nil {
			return fmt.Errorf("update slot booked flag: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit decision tx: %w", err)
	}
	return nil
}
