package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ministry-booking-api/internal/models"
	"github.com/noah-isme/ministry-booking-api/internal/service"
	appErrors "github.com/noah-isme/ministry-booking-api/pkg/errors"
)

type fakePublicMinisterSrv struct {
	ministers []models.Minister
	err       error
}

func (f *fakePublicMinisterSrv) ListActive(context.Context) ([]models.Minister, error) {
	return f.ministers, f.err
}

type fakeAvailabilitySrv struct {
	slots []models.AvailableSlot
	err   error
}

func (f *fakeAvailabilitySrv) AvailableSlots(context.Context, int64, string) ([]models.AvailableSlot, error) {
	return f.slots, f.err
}

type fakeBookingSrv struct {
	appt *models.Appointment
	err  error
}

func (f *fakeBookingSrv) Create(context.Context, service.CreateAppointmentRequest) (*models.Appointment, error) {
	return f.appt, f.err
}

func TestBookingHandlerListMinisters(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewBookingHandler(&fakePublicMinisterSrv{ministers: []models.Minister{{ID: 1, Name: "Hon. Ram Bahadur Thapa"}}}, nil, nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/ministers", nil)

	handler.ListMinisters(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Ministers []models.Minister `json:"ministers"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Ministers, 1)
	assert.Equal(t, "Hon. Ram Bahadur Thapa", body.Ministers[0].Name)
}

func TestBookingHandlerSlots(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewBookingHandler(nil, &fakeAvailabilitySrv{slots: []models.AvailableSlot{
		{ID: 7, StartTime: "10:00", EndTime: "11:00"},
	}}, nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/slots?minister_id=1&date=2025-04-14", nil)

	handler.Slots(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Slots []models.AvailableSlot `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Slots, 1)
	assert.Equal(t, "10:00", body.Slots[0].StartTime)
}

func TestBookingHandlerSlotsBadMinisterID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewBookingHandler(nil, &fakeAvailabilitySrv{}, nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/slots?minister_id=abc&date=2025-04-14", nil)

	handler.Slots(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error"`)
}

func TestBookingHandlerSlotsPastDate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewBookingHandler(nil, &fakeAvailabilitySrv{
		err: appErrors.Clone(appErrors.ErrValidation, "cannot request slots for a past date"),
	}, nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/slots?minister_id=1&date=2020-01-01", nil)

	handler.Slots(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "past date")
}

func TestBookingHandlerCreateAppointment(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewBookingHandler(nil, nil, &fakeBookingSrv{appt: &models.Appointment{ID: 3, Status: models.StatusPending}})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	payload := `{"slot_id":7,"full_name":"Jane Doe","email":"jane@example.com"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.CreateAppointment(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Success       bool   `json:"success"`
		Message       string `json:"message"`
		AppointmentID int64  `json:"appointment_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, int64(3), body.AppointmentID)
	assert.NotEmpty(t, body.Message)
}

func TestBookingHandlerCreateAppointmentConflictIs400(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewBookingHandler(nil, nil, &fakeBookingSrv{err: appErrors.Clone(appErrors.ErrSlotBooked, "")})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(`{"slot_id":7,"full_name":"Jane Doe"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.CreateAppointment(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "slot already booked")
}

func TestBookingHandlerCreateAppointmentInternalErrorIsOpaque(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewBookingHandler(nil, nil, &fakeBookingSrv{
		err: appErrors.Wrap(assert.AnError, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create appointment"),
	})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(`{"slot_id":7,"full_name":"Jane Doe"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.CreateAppointment(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, `{"error":"internal server error"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}
