package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ministry-booking-api/internal/models"
	appErrors "github.com/noah-isme/ministry-booking-api/pkg/errors"
)

type fakeDashboardApptRepo struct {
	items      []models.AppointmentDetail
	total      int
	counts     models.StatusCounts
	countCalls int
}

func (f *fakeDashboardApptRepo) List(context.Context, models.AppointmentFilter) ([]models.AppointmentDetail, int, error) {
	return f.items, f.total, nil
}

func (f *fakeDashboardApptRepo) CountByStatus(context.Context) (models.StatusCounts, error) {
	f.countCalls++
	return f.counts, nil
}

type memoryCacheRepo struct {
	values map[string][]byte
}

func newMemoryCacheRepo() *memoryCacheRepo {
	return &memoryCacheRepo{values: map[string][]byte{}}
}

func (m *memoryCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	raw, ok := m.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.values[key] = raw
	return nil
}

func (m *memoryCacheRepo) DeleteByPattern(_ context.Context, _ string) error {
	m.values = map[string][]byte{}
	return nil
}

func TestDashboardAppointments(t *testing.T) {
	repo := &fakeDashboardApptRepo{
		items: []models.AppointmentDetail{{Appointment: models.Appointment{ID: 1, Status: models.StatusPending}}},
		total: 1,
	}
	svc := NewDashboardService(repo, nil, nil, time.Minute)

	status := models.StatusPending
	items, pagination, err := svc.Appointments(context.Background(), models.AppointmentFilter{Status: &status})
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 1, pagination.TotalCount)
	assert.Equal(t, 1, pagination.Page)
}

func TestDashboardAppointmentsRejectsUnknownStatus(t *testing.T) {
	svc := NewDashboardService(&fakeDashboardApptRepo{}, nil, nil, time.Minute)

	bogus := models.AppointmentStatus("MAYBE")
	_, _, err := svc.Appointments(context.Background(), models.AppointmentFilter{Status: &bogus})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestDashboardCountsCached(t *testing.T) {
	repo := &fakeDashboardApptRepo{counts: models.StatusCounts{Pending: 4, Approved: 2}}
	cacheSvc := NewCacheService(newMemoryCacheRepo(), nil, time.Minute, nil, true)
	svc := NewDashboardService(repo, cacheSvc, nil, time.Minute)

	first, err := svc.Counts(context.Background())
	require.NoError(t, err)
	second, err := svc.Counts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.countCalls, "second read must come from cache")
}

func TestDashboardCountsWithoutCache(t *testing.T) {
	repo := &fakeDashboardApptRepo{counts: models.StatusCounts{Pending: 1}}
	svc := NewDashboardService(repo, nil, nil, time.Minute)

	counts, err := svc.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Pending)

	_, err = svc.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.countCalls)
}
