package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/noah-isme/ministry-booking-api/internal/models"
	appErrors "github.com/noah-isme/ministry-booking-api/pkg/errors"
)

type bookingSlotRepository interface {
	FindByID(ctx context.Context, id int64) (*models.TimeSlot, error)
}

type bookingAppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	FindDetailByID(ctx context.Context, id int64) (*models.AppointmentDetail, error)
}

type appointmentNotifier interface {
	AppointmentSubmitted(detail *models.AppointmentDetail)
	AppointmentDecided(detail *models.AppointmentDetail)
}

// CreateAppointmentRequest is the public booking payload.
type CreateAppointmentRequest struct {
	SlotID      int64  `json:"slot_id" validate:"required"`
	FullName    string `json:"full_name" validate:"required,max=255"`
	Email       string `json:"email" validate:"omitempty,email"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=20"`
	Address     string `json:"address" validate:"omitempty,max=255"`
	Purpose     string `json:"purpose" validate:"omitempty,max=2000"`
}

// BookingService creates appointment requests against open slots.
type BookingService struct {
	slots        bookingSlotRepository
	appointments bookingAppointmentRepository
	notifier     appointmentNotifier
	cache        *CacheService
	metrics      *MetricsService
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewBookingService constructs a BookingService.
func NewBookingService(slots bookingSlotRepository, appointments bookingAppointmentRepository, notifier appointmentNotifier, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *BookingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingService{
		slots:        slots,
		appointments: appointments,
		notifier:     notifier,
		cache:        cache,
		metrics:      metrics,
		validator:    validate,
		logger:       logger,
	}
}

// Create atomically books an appointment for the slot, or fails without
// mutating state. The booked-flag check rejects the common case early; the
// storage-level UNIQUE(slot_id) constraint is what actually closes the race
// between two concurrent requests for the same unbooked slot, and its
// violation is reported as the same conflict.
func (s *BookingService) Create(ctx context.Context, req CreateAppointmentRequest) (*models.Appointment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "missing required fields")
	}

	slot, err := s.slots.FindByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "slot not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load slot")
	}
	if slot.Booked {
		if s.metrics != nil {
			s.metrics.RecordBooking("conflict")
		}
		return nil, appErrors.Clone(appErrors.ErrSlotBooked, "slot already booked")
	}

	appt := &models.Appointment{
		SlotID:      slot.ID,
		FullName:    strings.TrimSpace(req.FullName),
		Email:       strings.TrimSpace(req.Email),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		Address:     strings.TrimSpace(req.Address),
		Purpose:     strings.TrimSpace(req.Purpose),
		Status:      models.StatusPending,
	}
	if err := s.appointments.Create(ctx, appt); err != nil {
		if isUniqueViolation(err) {
			if s.metrics != nil {
				s.metrics.RecordBooking("conflict")
			}
			return nil, appErrors.Clone(appErrors.ErrSlotBooked, "slot already booked")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create appointment")
	}

	if s.metrics != nil {
		s.metrics.RecordBooking("created")
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, "dash:*")
	}

	if s.notifier != nil {
		detail, err := s.appointments.FindDetailByID(ctx, appt.ID)
		if err != nil {
			s.logger.Warn("skipping submission notification", zap.Int64("appointment_id", appt.ID), zap.Error(err))
		} else {
			s.notifier.AppointmentSubmitted(detail)
		}
	}

	return appt, nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
