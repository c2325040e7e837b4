package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/ministry-booking-api/internal/models"
	appErrors "github.com/noah-isme/ministry-booking-api/pkg/errors"
)

type approvalAppointmentRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Appointment, error)
	FindDetailByID(ctx context.Context, id int64) (*models.AppointmentDetail, error)
	Decide(ctx context.Context, id int64, status models.AppointmentStatus, notes string, slotBooked *bool) error
}

// DecisionRequest is the staff payload acting on a pending appointment.
type DecisionRequest struct {
	Action       string `json:"action" form:"action" validate:"required,oneof=approve reject complete"`
	AdminMessage string `json:"admin_message" form:"admin_message" validate:"omitempty,max=2000"`
}

// ApprovalService executes staff decisions on appointment requests.
//
// Transition policy: approve and reject act only on PENDING appointments;
// complete acts only on APPROVED ones. Every other combination is a conflict,
// so an already-decided request can never be silently re-decided.
type ApprovalService struct {
	appointments approvalAppointmentRepository
	notifier     appointmentNotifier
	cache        *CacheService
	metrics      *MetricsService
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewApprovalService constructs an ApprovalService.
func NewApprovalService(appointments approvalAppointmentRepository, notifier appointmentNotifier, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *ApprovalService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApprovalService{
		appointments: appointments,
		notifier:     notifier,
		cache:        cache,
		metrics:      metrics,
		validator:    validate,
		logger:       logger,
	}
}

// Decide applies the requested action, synchronises the slot's booked flag in
// the same transaction, records the remark, and notifies the requester best
// effort.
func (s *ApprovalService) Decide(ctx context.Context, appointmentID int64, req DecisionRequest) (*models.AppointmentDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "action must be approve, reject or complete")
	}

	appt, err := s.appointments.FindByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "appointment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load appointment")
	}

	var (
		target     models.AppointmentStatus
		slotBooked *bool
	)
	switch req.Action {
	case "approve":
		if appt.Status != models.StatusPending {
			return nil, appErrors.Clone(appErrors.ErrAlreadyDecided, "")
		}
		target = models.StatusApproved
		booked := true
		slotBooked = &booked
	case "reject":
		if appt.Status != models.StatusPending {
			return nil, appErrors.Clone(appErrors.ErrAlreadyDecided, "")
		}
		target = models.StatusRejected
		booked := false
		slotBooked = &booked
	case "complete":
		if appt.Status != models.StatusApproved {
			return nil, appErrors.Clone(appErrors.ErrConflict, "only approved appointments can be completed")
		}
		target = models.StatusCompleted
	}

	notes := strings.TrimSpace(req.AdminMessage)
	if err := s.appointments.Decide(ctx, appointmentID, target, notes, slotBooked); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record decision")
	}

	if s.metrics != nil {
		s.metrics.RecordBooking(strings.ToLower(string(target)))
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, "dash:*")
	}

	detail, err := s.appointments.FindDetailByID(ctx, appointmentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load decided appointment")
	}

	if s.notifier != nil && (target == models.StatusApproved || target == models.StatusRejected) {
		s.notifier.AppointmentDecided(detail)
	}

	return detail, nil
}
