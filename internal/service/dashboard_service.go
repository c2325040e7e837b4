package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/ministry-booking-api/internal/models"
	appErrors "github.com/noah-isme/ministry-booking-api/pkg/errors"
)

type dashboardAppointmentRepository interface {
	List(ctx context.Context, filter models.AppointmentFilter) ([]models.AppointmentDetail, int, error)
	CountByStatus(ctx context.Context) (models.StatusCounts, error)
}

const countsCacheKey = "dash:counts"

// DashboardService composes the staff review view: the filtered appointment
// list plus backlog counters. Counters are cached with a short TTL and
// invalidated by the booking and approval services.
type DashboardService struct {
	appointments dashboardAppointmentRepository
	cache        *CacheService
	logger       *zap.Logger
	cacheTTL     time.Duration
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(appointments dashboardAppointmentRepository, cache *CacheService, logger *zap.Logger, cacheTTL time.Duration) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	return &DashboardService{appointments: appointments, cache: cache, logger: logger, cacheTTL: cacheTTL}
}

// Appointments returns the filtered list with pagination metadata.
func (s *DashboardService) Appointments(ctx context.Context, filter models.AppointmentFilter) ([]models.AppointmentDetail, *models.Pagination, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "unknown status filter")
	}

	items, total, err := s.appointments.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list appointments")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return items, pagination, nil
}

// Counts returns the backlog counters, served from cache when possible.
func (s *DashboardService) Counts(ctx context.Context) (models.StatusCounts, error) {
	var counts models.StatusCounts
	if s.cache.Get(ctx, countsCacheKey, &counts) {
		return counts, nil
	}

	counts, err := s.appointments.CountByStatus(ctx)
	if err != nil {
		return models.StatusCounts{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count appointments")
	}

	s.cache.Set(ctx, countsCacheKey, counts, s.cacheTTL)
	return counts, nil
}
