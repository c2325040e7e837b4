package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ministry-booking-api/internal/models"
	"github.com/noah-isme/ministry-booking-api/internal/service"
	appErrors "github.com/noah-isme/ministry-booking-api/pkg/errors"
	"github.com/noah-isme/ministry-booking-api/pkg/response"
)

// MinisterHandler serves the staff-side minister roster and slot calendar.
type MinisterHandler struct {
	ministers *service.MinisterService
	slots     *service.SlotService
}

// NewMinisterHandler constructs the handler.
func NewMinisterHandler(ministers *service.MinisterService, slots *service.SlotService) *MinisterHandler {
	return &MinisterHandler{ministers: ministers, slots: slots}
}

// List godoc
// @Summary List ministers
// @Tags Ministers
// @Produce json
// @Param active query bool false "Active filter"
// @Param search query string false "Name search"
// @Success 200 {object} response.Envelope
// @Router /ministers [get]
func (h *MinisterHandler) List(c *gin.Context) {
	filter := models.MinisterFilter{Search: strings.TrimSpace(c.Query("search"))}
	if raw := strings.TrimSpace(c.Query("active")); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "active must be a boolean"))
			return
		}
		filter.Active = &active
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "50"))

	ministers, pagination, err := h.ministers.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ministers, pagination)
}

// Get godoc
// @Summary Get one minister
// @Tags Ministers
// @Produce json
// @Param id path int true "Minister ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /ministers/{id} [get]
func (h *MinisterHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	minister, err := h.ministers.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, minister, nil)
}

// Create godoc
// @Summary Register a minister
// @Tags Ministers
// @Accept json
// @Produce json
// @Param payload body service.CreateMinisterRequest true "Minister"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /ministers [post]
func (h *MinisterHandler) Create(c *gin.Context) {
	var req service.CreateMinisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid minister payload"))
		return
	}
	minister, err := h.ministers.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, minister)
}

// Update godoc
// @Summary Update a minister
// @Tags Ministers
// @Accept json
// @Produce json
// @Param id path int true "Minister ID"
// @Param payload body service.UpdateMinisterRequest true "Minister"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /ministers/{id} [put]
func (h *MinisterHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.UpdateMinisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid minister payload"))
		return
	}
	minister, err := h.ministers.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, minister, nil)
}

// Delete godoc
// @Summary Remove a minister and their calendar
// @Tags Ministers
// @Param id path int true "Minister ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /ministers/{id} [delete]
func (h *MinisterHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.ministers.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListSlots godoc
// @Summary List a minister's slot calendar
// @Tags Slots
// @Produce json
// @Param id path int true "Minister ID"
// @Success 200 {object} response.Envelope
// @Router /ministers/{id}/slots [get]
func (h *MinisterHandler) ListSlots(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	slots, err := h.slots.ListByMinister(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slots, nil)
}

// CreateSlot godoc
// @Summary Add one slot to a minister's calendar
// @Tags Slots
// @Accept json
// @Produce json
// @Param id path int true "Minister ID"
// @Param payload body service.CreateSlotRequest true "Slot"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /ministers/{id}/slots [post]
func (h *MinisterHandler) CreateSlot(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid slot payload"))
		return
	}
	slot, err := h.slots.Create(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, slot)
}

// GenerateSlots godoc
// @Summary Bulk-generate hourly slots over a date range
// @Tags Slots
// @Accept json
// @Produce json
// @Param id path int true "Minister ID"
// @Param payload body service.GenerateSlotsRequest true "Generation range"
// @Success 200 {object} response.Envelope
// @Router /ministers/{id}/slots/generate [post]
func (h *MinisterHandler) GenerateSlots(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.GenerateSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid slot generation payload"))
		return
	}
	created, err := h.slots.Generate(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"created": created}, nil)
}

// DeleteSlot godoc
// @Summary Remove a slot
// @Tags Slots
// @Param slotId path int true "Slot ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /slots/{slotId} [delete]
func (h *MinisterHandler) DeleteSlot(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("slotId"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "slot id must be an integer"))
		return
	}
	if err := h.slots.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "id must be an integer"))
		return 0, false
	}
	return id, true
}
