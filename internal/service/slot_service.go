package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/ministry-booking-api/internal/models"
	appErrors "github.com/noah-isme/ministry-booking-api/pkg/errors"
)

type slotAdminRepository interface {
	ListByMinister(ctx context.Context, ministerID int64) ([]models.TimeSlot, error)
	FindByID(ctx context.Context, id int64) (*models.TimeSlot, error)
	Create(ctx context.Context, slot *models.TimeSlot) error
	BulkInsert(ctx context.Context, slots []models.TimeSlot) (int, error)
	Delete(ctx context.Context, id int64) error
}

type slotMinisterFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Minister, error)
}

// CreateSlotRequest adds one slot to a minister's calendar.
type CreateSlotRequest struct {
	Date      string `json:"date" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

// GenerateSlotsRequest bulk-creates hourly slots over a date range, the
// API-facing version of the demo seeding routine.
type GenerateSlotsRequest struct {
	FromDate    string `json:"from_date" validate:"required"`
	ToDate      string `json:"to_date" validate:"required"`
	StartHour   int    `json:"start_hour" validate:"min=0,max=23"`
	EndHour     int    `json:"end_hour" validate:"min=1,max=24"`
	SkipWeekday *int   `json:"skip_weekday" validate:"omitempty,min=0,max=6"`
}

// SlotService manages the staff-side slot calendar.
type SlotService struct {
	slots     slotAdminRepository
	ministers slotMinisterFinder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSlotService constructs a SlotService.
func NewSlotService(slots slotAdminRepository, ministers slotMinisterFinder, validate *validator.Validate, logger *zap.Logger) *SlotService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SlotService{slots: slots, ministers: ministers, validator: validate, logger: logger}
}

// ListByMinister returns every slot on a minister's calendar.
func (s *SlotService) ListByMinister(ctx context.Context, ministerID int64) ([]models.TimeSlot, error) {
	if err := s.ensureMinister(ctx, ministerID); err != nil {
		return nil, err
	}
	slots, err := s.slots.ListByMinister(ctx, ministerID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list slots")
	}
	return slots, nil
}

// Create adds a single slot. Colliding with an existing (date, start time)
// pair for the minister is a conflict.
func (s *SlotService) Create(ctx context.Context, ministerID int64, req CreateSlotRequest) (*models.TimeSlot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid slot payload")
	}
	if err := s.ensureMinister(ctx, ministerID); err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must be in YYYY-MM-DD format")
	}
	start, err := parseClock(req.StartTime)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start_time must be in HH:MM format")
	}
	end, err := parseClock(req.EndTime)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end_time must be in HH:MM format")
	}
	if start >= end {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start_time must be before end_time")
	}

	slot := &models.TimeSlot{
		MinisterID: ministerID,
		Date:       date,
		StartTime:  start,
		EndTime:    end,
	}
	if err := s.slots.Create(ctx, slot); err != nil {
		if isUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "a slot already starts at that time")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create slot")
	}
	return slot, nil
}

// Generate bulk-creates hourly slots across the date range, skipping the
// configured weekly off-day. Existing slots are left untouched. It returns
// the number of slots actually created.
func (s *SlotService) Generate(ctx context.Context, ministerID int64, req GenerateSlotsRequest) (int, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid slot generation payload")
	}
	if req.EndHour <= req.StartHour {
		return 0, appErrors.Clone(appErrors.ErrValidation, "end_hour must be after start_hour")
	}
	if err := s.ensureMinister(ctx, ministerID); err != nil {
		return 0, err
	}

	from, err := time.Parse("2006-01-02", req.FromDate)
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrValidation, "from_date must be in YYYY-MM-DD format")
	}
	to, err := time.Parse("2006-01-02", req.ToDate)
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrValidation, "to_date must be in YYYY-MM-DD format")
	}
	if to.Before(from) {
		return 0, appErrors.Clone(appErrors.ErrValidation, "to_date must not be before from_date")
	}

	slots := GenerateHourlySlots(ministerID, from, to, req.StartHour, req.EndHour, req.SkipWeekday)
	created, err := s.slots.BulkInsert(ctx, slots)
	if err != nil {
		return created, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate slots")
	}
	return created, nil
}

// Delete removes a slot (and any appointment attached to it).
func (s *SlotService) Delete(ctx context.Context, id int64) error {
	if _, err := s.slots.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "slot not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load slot")
	}
	if err := s.slots.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete slot")
	}
	return nil
}

func (s *SlotService) ensureMinister(ctx context.Context, ministerID int64) error {
	if _, err := s.ministers.FindByID(ctx, ministerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "minister not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load minister")
	}
	return nil
}

// GenerateHourlySlots builds one-hour slots for each day in [from, to],
// skipping the given weekday (time.Weekday numbering, Sunday = 0).
func GenerateHourlySlots(ministerID int64, from, to time.Time, startHour, endHour int, skipWeekday *int) []models.TimeSlot {
	var slots []models.TimeSlot
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		if skipWeekday != nil && int(day.Weekday()) == *skipWeekday {
			continue
		}
		for hour := startHour; hour < endHour; hour++ {
			slots = append(slots, models.TimeSlot{
				MinisterID: ministerID,
				Date:       day,
				StartTime:  fmt.Sprintf("%02d:00:00", hour),
				EndTime:    fmt.Sprintf("%02d:00:00", hour+1),
			})
		}
	}
	return slots
}

// parseClock normalises "HH:MM" (or "HH:MM:SS") into the HH:MM:SS storage
// format.
func parseClock(raw string) (string, error) {
	if t, err := time.Parse("15:04", raw); err == nil {
		return t.Format("15:04:05"), nil
	}
	t, err := time.Parse("15:04:05", raw)
	if err != nil {
		return "", err
	}
	return t.Format("15:04:05"), nil
}
