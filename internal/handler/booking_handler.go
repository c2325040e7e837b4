package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ministry-booking-api/internal/models"
	"github.com/noah-isme/ministry-booking-api/internal/service"
	appErrors "github.com/noah-isme/ministry-booking-api/pkg/errors"
)

type publicMinisterService interface {
	ListActive(ctx context.Context) ([]models.Minister, error)
}

type availabilityService interface {
	AvailableSlots(ctx context.Context, ministerID int64, date string) ([]models.AvailableSlot, error)
}

type bookingService interface {
	Create(ctx context.Context, req service.CreateAppointmentRequest) (*models.Appointment, error)
}

// BookingHandler serves the public citizen-facing booking surface. Its wire
// format is flat JSON rather than the staff envelope: the booking page's
// frontend consumes these shapes directly.
type BookingHandler struct {
	ministers    publicMinisterService
	availability availabilityService
	booking      bookingService
}

// NewBookingHandler constructs the handler.
func NewBookingHandler(ministers publicMinisterService, availability availabilityService, booking bookingService) *BookingHandler {
	return &BookingHandler{ministers: ministers, availability: availability, booking: booking}
}

// ListMinisters godoc
// @Summary List ministers accepting appointments
// @Tags Public
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /ministers [get]
func (h *BookingHandler) ListMinisters(c *gin.Context) {
	ministers, err := h.ministers.ListActive(c.Request.Context())
	if err != nil {
		publicError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ministers": ministers})
}

// Slots godoc
// @Summary Available slots for a minister on a date
// @Tags Public
// @Produce json
// @Param minister_id query int true "Minister ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /slots [get]
func (h *BookingHandler) Slots(c *gin.Context) {
	ministerID, err := strconv.ParseInt(strings.TrimSpace(c.Query("minister_id")), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "minister_id must be an integer"})
		return
	}

	slots, err := h.availability.AvailableSlots(c.Request.Context(), ministerID, strings.TrimSpace(c.Query("date")))
	if err != nil {
		publicError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// CreateAppointment godoc
// @Summary Submit an appointment request
// @Tags Public
// @Accept json
// @Produce json
// @Param payload body service.CreateAppointmentRequest true "Appointment request"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /appointments [post]
func (h *BookingHandler) CreateAppointment(c *gin.Context) {
	var req service.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	appt, err := h.booking.Create(c.Request.Context(), req)
	if err != nil {
		publicError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        "appointment request submitted and pending review",
		"appointment_id": appt.ID,
	})
}

// publicError renders errors in the public flat shape. Conflicts surface as
// 400 to match what the booking frontend expects, and internal details are
// never leaked to anonymous callers.
func publicError(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	switch {
	case appErr.Status >= http.StatusInternalServerError:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	case appErr.Status == http.StatusConflict:
		c.JSON(http.StatusBadRequest, gin.H{"error": appErr.Message})
	default:
		c.JSON(appErr.Status, gin.H{"error": appErr.Message})
	}
}
