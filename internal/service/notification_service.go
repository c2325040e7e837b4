package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/ministry-booking-api/internal/models"
	"github.com/noah-isme/ministry-booking-api/pkg/jobs"
	"github.com/noah-isme/ministry-booking-api/pkg/mailer"
)

// NotificationConfig sizes the background mail dispatcher.
type NotificationConfig struct {
	Workers    int
	BufferSize int
}

type emailJob struct {
	To      string
	Subject string
	Body    string
}

// NotificationService renders and dispatches best-effort appointment emails.
// Delivery failures are counted and logged but never surfaced: no caller of
// this service can fail because an email did not go out.
type NotificationService struct {
	mailer     mailer.Mailer
	dispatcher *jobs.Dispatcher
	metrics    *MetricsService
	logger     *zap.Logger
}

// NewNotificationService constructs the service and its dispatcher.
func NewNotificationService(m mailer.Mailer, metrics *MetricsService, logger *zap.Logger, cfg NotificationConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &NotificationService{mailer: m, metrics: metrics, logger: logger}
	s.dispatcher = jobs.NewDispatcher("notifications", s.deliver, jobs.DispatcherConfig{
		Workers:    cfg.Workers,
		BufferSize: cfg.BufferSize,
		Logger:     logger,
	})
	return s
}

// Start launches the dispatcher workers.
func (s *NotificationService) Start(ctx context.Context) {
	s.dispatcher.Start(ctx)
}

// Stop drains the dispatcher.
func (s *NotificationService) Stop() {
	s.dispatcher.Stop()
}

// AppointmentSubmitted notifies the requester that their request is pending.
func (s *NotificationService) AppointmentSubmitted(detail *models.AppointmentDetail) {
	if detail == nil || detail.Email == "" {
		return
	}
	body := fmt.Sprintf(
		"Dear %s,\n\nYour appointment request with %s (%s) on %s at %s has been received and is pending review.\n\nYou will be notified once a decision is made.\n",
		detail.FullName,
		detail.MinisterName,
		detail.Portfolio,
		detail.SlotDate.Format("2006-01-02"),
		models.Clock(detail.StartTime),
	)
	s.enqueue(detail.ID, detail.Email, "Appointment Request Received", body)
}

// AppointmentDecided notifies the requester of the outcome, including the
// staff remark when one was recorded.
func (s *NotificationService) AppointmentDecided(detail *models.AppointmentDetail) {
	if detail == nil || detail.Email == "" {
		return
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\nYour appointment request with %s on %s at %s has been %s.\n",
		detail.FullName,
		detail.MinisterName,
		detail.SlotDate.Format("2006-01-02"),
		models.Clock(detail.StartTime),
		strings.ToLower(string(detail.Status)),
	)
	if detail.AdminNotes != "" {
		fmt.Fprintf(&b, "\nRemark from the ministry office: %s\n", detail.AdminNotes)
	}
	subject := fmt.Sprintf("Appointment Request %s", detail.Status)
	s.enqueue(detail.ID, detail.Email, subject, b.String())
}

func (s *NotificationService) enqueue(appointmentID int64, to, subject, body string) {
	accepted := s.dispatcher.Enqueue(jobs.Job{
		ID:      strconv.FormatInt(appointmentID, 10),
		Type:    "email",
		Payload: emailJob{To: to, Subject: subject, Body: body},
	})
	if !accepted && s.metrics != nil {
		s.metrics.RecordNotification(false)
	}
}

func (s *NotificationService) deliver(_ context.Context, job jobs.Job) error {
	msg, ok := job.Payload.(emailJob)
	if !ok {
		return fmt.Errorf("unexpected payload type %T", job.Payload)
	}
	if err := s.mailer.Send(msg.To, msg.Subject, msg.Body); err != nil {
		if s.metrics != nil {
			s.metrics.RecordNotification(false)
		}
		return fmt.Errorf("send %q to %s: %w", msg.Subject, msg.To, err)
	}
	if s.metrics != nil {
		s.metrics.RecordNotification(true)
	}
	s.logger.Debug("notification delivered", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}
