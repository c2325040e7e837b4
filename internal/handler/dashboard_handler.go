package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ministry-booking-api/internal/models"
	"github.com/noah-isme/ministry-booking-api/internal/service"
	appErrors "github.com/noah-isme/ministry-booking-api/pkg/errors"
	"github.com/noah-isme/ministry-booking-api/pkg/response"
)

type dashboardService interface {
	Appointments(ctx context.Context, filter models.AppointmentFilter) ([]models.AppointmentDetail, *models.Pagination, error)
	Counts(ctx context.Context) (models.StatusCounts, error)
}

type approvalService interface {
	Decide(ctx context.Context, appointmentID int64, req service.DecisionRequest) (*models.AppointmentDetail, error)
}

type exportService interface {
	Appointments(ctx context.Context, filter models.AppointmentFilter, format string) (*service.ExportResult, error)
}

// DashboardHandler serves the staff review surface.
type DashboardHandler struct {
	dashboard dashboardService
	approval  approvalService
	export    exportService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(dashboard dashboardService, approval approvalService, export exportService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, approval: approval, export: export}
}

// Appointments godoc
// @Summary List appointment requests with backlog counters
// @Tags Dashboard
// @Produce json
// @Param status query string false "Status filter (default PENDING, 'all' for every status)"
// @Param minister_id query int false "Minister filter"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /dashboard/appointments [get]
func (h *DashboardHandler) Appointments(c *gin.Context) {
	filter, err := appointmentFilterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	items, pagination, err := h.dashboard.Appointments(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	counts, err := h.dashboard.Counts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, items, pagination, map[string]interface{}{"counts": counts})
}

// Decide godoc
// @Summary Approve, reject or complete an appointment request
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param id path int true "Appointment ID"
// @Param payload body service.DecisionRequest true "Decision"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /dashboard/appointments/{id}/decision [post]
func (h *DashboardHandler) Decide(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "appointment id must be an integer"))
		return
	}

	// The old dashboard posted a form; API clients send JSON. Accept both.
	var req service.DecisionRequest
	if strings.HasPrefix(c.ContentType(), "application/json") {
		err = c.ShouldBindJSON(&req)
	} else {
		err = c.ShouldBind(&req)
	}
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid decision payload"))
		return
	}

	detail, err := h.approval.Decide(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, detail, nil)
}

// Export godoc
// @Summary Download the filtered appointment list
// @Tags Dashboard
// @Produce octet-stream
// @Param format query string true "csv or pdf"
// @Param status query string false "Status filter"
// @Param minister_id query int false "Minister filter"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /dashboard/appointments/export [get]
func (h *DashboardHandler) Export(c *gin.Context) {
	filter, err := appointmentFilterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.export.Appointments(c.Request.Context(), filter, strings.ToLower(strings.TrimSpace(c.Query("format"))))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	c.Data(http.StatusOK, result.ContentType, result.Content)
}

// appointmentFilterFromQuery parses the shared dashboard/export filters. The
// status filter defaults to PENDING, matching what staff open the dashboard
// for; "all" disables it.
func appointmentFilterFromQuery(c *gin.Context) (models.AppointmentFilter, error) {
	filter := models.AppointmentFilter{}

	statusStr := strings.ToUpper(strings.TrimSpace(c.Query("status")))
	switch statusStr {
	case "ALL":
	case "":
		status := models.StatusPending
		filter.Status = &status
	default:
		status := models.AppointmentStatus(statusStr)
		if !status.Valid() {
			return filter, appErrors.Clone(appErrors.ErrValidation, "unknown status filter")
		}
		filter.Status = &status
	}

	if raw := strings.TrimSpace(c.Query("minister_id")); raw != "" {
		ministerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, appErrors.Clone(appErrors.ErrValidation, "minister_id must be an integer")
		}
		filter.MinisterID = &ministerID
	}

	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return filter, nil
}
