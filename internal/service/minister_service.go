package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/ministry-booking-api/internal/models"
	appErrors "github.com/noah-isme/ministry-booking-api/pkg/errors"
)

type ministerRepository interface {
	List(ctx context.Context, filter models.MinisterFilter) ([]models.Minister, int, error)
	FindByID(ctx context.Context, id int64) (*models.Minister, error)
	Create(ctx context.Context, minister *models.Minister) error
	Update(ctx context.Context, minister *models.Minister) error
	Delete(ctx context.Context, id int64) error
}

// CreateMinisterRequest represents payload for creating ministers.
type CreateMinisterRequest struct {
	Name         string  `json:"name" validate:"required,max=200"`
	Portfolio    string  `json:"portfolio" validate:"required,max=200"`
	MinistryName string  `json:"ministry_name" validate:"omitempty,max=200"`
	PhotoURL     *string `json:"photo_url" validate:"omitempty,url"`
	Description  string  `json:"description" validate:"omitempty,max=5000"`
}

// UpdateMinisterRequest represents payload for updating ministers.
type UpdateMinisterRequest struct {
	Name         string  `json:"name" validate:"required,max=200"`
	Portfolio    string  `json:"portfolio" validate:"required,max=200"`
	MinistryName string  `json:"ministry_name" validate:"omitempty,max=200"`
	PhotoURL     *string `json:"photo_url" validate:"omitempty,url"`
	Description  string  `json:"description" validate:"omitempty,max=5000"`
	Active       *bool   `json:"active"`
}

// MinisterService orchestrates minister roster operations.
type MinisterService struct {
	repo      ministerRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMinisterService constructs a MinisterService.
func NewMinisterService(repo ministerRepository, validate *validator.Validate, logger *zap.Logger) *MinisterService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MinisterService{repo: repo, validator: validate, logger: logger}
}

// ListActive returns the ministers shown on the public booking page.
func (s *MinisterService) ListActive(ctx context.Context) ([]models.Minister, error) {
	active := true
	ministers, _, err := s.repo.List(ctx, models.MinisterFilter{Active: &active, PageSize: 100})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list ministers")
	}
	return ministers, nil
}

// List returns ministers plus pagination data for the staff roster.
func (s *MinisterService) List(ctx context.Context, filter models.MinisterFilter) ([]models.Minister, *models.Pagination, error) {
	ministers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list ministers")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 50
	}
	return ministers, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get returns a minister by id.
func (s *MinisterService) Get(ctx context.Context, id int64) (*models.Minister, error) {
	minister, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "minister not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load minister")
	}
	return minister, nil
}

// Create registers a new minister, active by default.
func (s *MinisterService) Create(ctx context.Context, req CreateMinisterRequest) (*models.Minister, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid minister payload")
	}

	minister := &models.Minister{
		Name:         strings.TrimSpace(req.Name),
		Portfolio:    strings.TrimSpace(req.Portfolio),
		MinistryName: strings.TrimSpace(req.MinistryName),
		PhotoURL:     req.PhotoURL,
		Description:  strings.TrimSpace(req.Description),
		Active:       true,
	}
	if err := s.repo.Create(ctx, minister); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create minister")
	}
	return minister, nil
}

// Update modifies an existing minister. Deactivating hides the minister from
// the public booking flow without touching existing slots.
func (s *MinisterService) Update(ctx context.Context, id int64, req UpdateMinisterRequest) (*models.Minister, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid minister payload")
	}

	minister, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	minister.Name = strings.TrimSpace(req.Name)
	minister.Portfolio = strings.TrimSpace(req.Portfolio)
	minister.MinistryName = strings.TrimSpace(req.MinistryName)
	minister.PhotoURL = req.PhotoURL
	minister.Description = strings.TrimSpace(req.Description)
	if req.Active != nil {
		minister.Active = *req.Active
	}

	if err := s.repo.Update(ctx, minister); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update minister")
	}
	return minister, nil
}

// Delete removes a minister together with its slots and their appointments.
func (s *MinisterService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete minister")
	}
	return nil
}
