package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ministry-booking-api/internal/models"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

func (f *fakeMailer) Send(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (f *fakeMailer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func (f *fakeMailer) last() sentMail {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sent[len(f.sent)-1]
}

func notificationFixture(status models.AppointmentStatus, remark string) *models.AppointmentDetail {
	return &models.AppointmentDetail{
		Appointment: models.Appointment{
			ID:         3,
			FullName:   "Jane Doe",
			Email:      "jane@example.com",
			Status:     status,
			AdminNotes: remark,
		},
		SlotDate:     time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC),
		StartTime:    "10:00:00",
		EndTime:      "11:00:00",
		MinisterName: "Hon. Ram Bahadur Thapa",
		Portfolio:    "Home Affairs",
	}
}

func TestNotificationSubmitted(t *testing.T) {
	m := &fakeMailer{}
	svc := NewNotificationService(m, nil, nil, NotificationConfig{Workers: 1, BufferSize: 4})
	svc.Start(context.Background())
	defer svc.Stop()

	svc.AppointmentSubmitted(notificationFixture(models.StatusPending, ""))

	require.Eventually(t, func() bool { return m.count() == 1 }, time.Second, 10*time.Millisecond)
	mail := m.last()
	assert.Equal(t, "jane@example.com", mail.To)
	assert.Equal(t, "Appointment Request Received", mail.Subject)
	assert.Contains(t, mail.Body, "Hon. Ram Bahadur Thapa")
	assert.Contains(t, mail.Body, "2025-04-14")
	assert.Contains(t, mail.Body, "10:00")
}

func TestNotificationDecidedIncludesRemark(t *testing.T) {
	m := &fakeMailer{}
	svc := NewNotificationService(m, nil, nil, NotificationConfig{Workers: 1, BufferSize: 4})
	svc.Start(context.Background())
	defer svc.Stop()

	svc.AppointmentDecided(notificationFixture(models.StatusApproved, "bring your citizenship card"))

	require.Eventually(t, func() bool { return m.count() == 1 }, time.Second, 10*time.Millisecond)
	mail := m.last()
	assert.Equal(t, "Appointment Request APPROVED", mail.Subject)
	assert.Contains(t, mail.Body, "approved")
	assert.Contains(t, mail.Body, "bring your citizenship card")
}

func TestNotificationSkipsEmptyEmail(t *testing.T) {
	m := &fakeMailer{}
	svc := NewNotificationService(m, nil, nil, NotificationConfig{Workers: 1, BufferSize: 4})
	svc.Start(context.Background())
	defer svc.Stop()

	detail := notificationFixture(models.StatusPending, "")
	detail.Email = ""
	svc.AppointmentSubmitted(detail)

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, m.count())
}

func TestNotificationFailureIsSwallowed(t *testing.T) {
	m := &fakeMailer{err: errors.New("smtp down")}
	svc := NewNotificationService(m, nil, nil, NotificationConfig{Workers: 1, BufferSize: 4})
	svc.Start(context.Background())
	defer svc.Stop()

	// Must not panic or surface anywhere; the job is dropped.
	svc.AppointmentDecided(notificationFixture(models.StatusRejected, ""))
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, m.count())
}
