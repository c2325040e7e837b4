package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ministry-booking-api/internal/models"
	appErrors "github.com/noah-isme/ministry-booking-api/pkg/errors"
)

type fakeExportApptRepo struct {
	items []models.AppointmentDetail
}

func (f *fakeExportApptRepo) List(context.Context, models.AppointmentFilter) ([]models.AppointmentDetail, int, error) {
	return f.items, len(f.items), nil
}

func exportFixture() []models.AppointmentDetail {
	return []models.AppointmentDetail{{
		Appointment: models.Appointment{
			ID:       3,
			FullName: "Jane Doe",
			Email:    "jane@example.com",
			Status:   models.StatusApproved,
		},
		SlotDate:     time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC),
		StartTime:    "10:00:00",
		EndTime:      "11:00:00",
		MinisterName: "Hon. Ram Bahadur Thapa",
	}}
}

func TestExportAppointmentsCSV(t *testing.T) {
	svc := NewExportService(&fakeExportApptRepo{items: exportFixture()}, nil)

	result, err := svc.Appointments(context.Background(), models.AppointmentFilter{}, "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.True(t, strings.HasSuffix(result.FileName, ".csv"))

	content := string(result.Content)
	assert.Contains(t, content, "ID,Requester,Email,Phone,Minister,Date,Start,End,Status,Remark")
	assert.Contains(t, content, "Jane Doe")
	assert.Contains(t, content, "2025-04-14")
	assert.Contains(t, content, "10:00")
}

func TestExportAppointmentsPDF(t *testing.T) {
	svc := NewExportService(&fakeExportApptRepo{items: exportFixture()}, nil)

	result, err := svc.Appointments(context.Background(), models.AppointmentFilter{}, "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasSuffix(result.FileName, ".pdf"))
	assert.True(t, len(result.Content) > 0)
}

func TestExportAppointmentsUnknownFormat(t *testing.T) {
	svc := NewExportService(&fakeExportApptRepo{}, nil)

	_, err := svc.Appointments(context.Background(), models.AppointmentFilter{}, "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
