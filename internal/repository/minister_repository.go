package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/ministry-booking-api/internal/models"
)

// MinisterRepository manages persistence for ministers.
type MinisterRepository struct {
	db *sqlx.DB
}

// NewMinisterRepository constructs a MinisterRepository.
func NewMinisterRepository(db *sqlx.DB) *MinisterRepository {
	return &MinisterRepository{db: db}
}

const ministerColumns = "id, name, portfolio, ministry_name, photo_url, description, active, created_at, updated_at"

// List returns ministers matching filters along with total count.
func (r *MinisterRepository) List(ctx context.Context, filter models.MinisterFilter) ([]models.Minister, int, error) {
	base := "FROM ministers WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("active = $%d", len(args)+1))
		args = append(args, *filter.Active)
	}
	if filter.Search != "" {
		search := "%" + strings.ToLower(filter.Search) + "%"
		conditions = append(conditions, fmt.Sprintf("(LOWER(name) LIKE $%d OR LOWER(portfolio) LIKE $%d OR LOWER(ministry_name) LIKE $%d)", len(args)+1, len(args)+1, len(args)+1))
		args = append(args, search)
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
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY name ASC LIMIT %d OFFSET %d", ministerColumns, base, size, offset)
	var ministers []models.Minister
	if err := r.db.SelectContext(ctx, &ministers, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list ministers: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count ministers: %w", err)
	}

	return ministers, total, nil
}

// FindByID fetches a minister by ID.
func (r *MinisterRepository) FindByID(ctx context.Context, id int64) (*models.Minister, error) {
	query := fmt.Sprintf("SELECT %s FROM ministers WHERE id = $1", ministerColumns)
	var minister models.Minister
	if err := r.db.GetContext(ctx, &minister, query, id); err != nil {
		return nil, err
	}
	return &minister, nil
}

// Create inserts a new minister record and assigns its generated ID.
func (r *MinisterRepository) Create(ctx context.Context, minister *models.Minister) error {
	now := time.Now().UTC()
	minister.CreatedAt = now
	minister.UpdatedAt = now

	const query = `INSERT INTO ministers (name, portfolio, ministry_name, photo_url, description, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query,
		minister.Name, minister.Portfolio, minister.MinistryName, minister.PhotoURL,
		minister.Description, minister.Active, minister.CreatedAt, minister.UpdatedAt,
	).Scan(&minister.ID); err != nil {
		return fmt.Errorf("create minister: %w", err)
	}
	return nil
}

// Update modifies an existing minister record.
func (r *MinisterRepository) Update(ctx context.Context, minister *models.Minister) error {
	minister.UpdatedAt = time.Now().UTC()
	const query = `UPDATE ministers SET name = :name, portfolio = :portfolio, ministry_name = :ministry_name,
		photo_url = :photo_url, description = :description, active = :active, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, minister); err != nil {
		return fmt.Errorf("update minister: %w", err)
	}
	return nil
}

// Delete removes a minister. Dependent slots (and their appointments) are
// removed by the ON DELETE CASCADE constraints.
func (r *MinisterRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM ministers WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete minister: %w", err)
	}
	return nil
}
