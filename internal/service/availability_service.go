package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/ministry-booking-api/internal/models"
	appErrors "github.com/noah-isme/ministry-booking-api/pkg/errors"
)

type availabilitySlotRepository interface {
	ListAvailable(ctx context.Context, ministerID int64, date time.Time, after string) ([]models.TimeSlot, error)
}

// AvailabilityService answers the public "which slots are still offerable"
// query. It has no side effects.
type AvailabilityService struct {
	slots  availabilitySlotRepository
	logger *zap.Logger
	loc    *time.Location
	now    func() time.Time
}

// NewAvailabilityService constructs an AvailabilityService. The timezone
// defines what "today" and "past" mean for cutoffs; an unknown zone falls back
// to the host's local time.
func NewAvailabilityService(slots availabilitySlotRepository, logger *zap.Logger, timezone string) *AvailabilityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		logger.Warn("unknown booking timezone, using local", zap.String("timezone", timezone))
		loc = time.Local
	}
	return &AvailabilityService{slots: slots, logger: logger, loc: loc, now: time.Now}
}

// AvailableSlots returns the offerable slots for a minister on a date, ordered
// by start time. Past dates are rejected outright; on the current date, slots
// whose start time has already passed are excluded. An unknown minister yields
// an empty list rather than an error.
func (s *AvailabilityService) AvailableSlots(ctx context.Context, ministerID int64, dateStr string) ([]models.AvailableSlot, error) {
	if ministerID <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "minister_id is required")
	}
	date, err := time.ParseInLocation("2006-01-02", dateStr, s.loc)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must be in YYYY-MM-DD format")
	}

	now := s.now().In(s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	if date.Before(today) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "cannot request slots for a past date")
	}

	after := ""
	if date.Equal(today) {
		after = now.Format("15:04:05")
	}

	slots, err := s.slots.ListAvailable(ctx, ministerID, date, after)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load available slots")
	}

	result := make([]models.AvailableSlot, 0, len(slots))
	for _, slot := range slots {
		result = append(result, models.AvailableSlot{
			ID:        slot.ID,
			StartTime: models.Clock(slot.StartTime),
			EndTime:   models.Clock(slot.EndTime),
		})
	}
	return result, nil
}
