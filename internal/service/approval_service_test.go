package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ministry-booking-api/internal/models"
	appErrors "github.com/noah-isme/ministry-booking-api/pkg/errors"
)

type fakeApprovalApptRepo struct {
	appt    *models.Appointment
	findErr error

	decidedStatus models.AppointmentStatus
	decidedNotes  string
	decidedBooked *bool
	decideErr     error

	detail *models.AppointmentDetail
}

func (f *fakeApprovalApptRepo) FindByID(context.Context, int64) (*models.Appointment, error) {
	return f.appt, f.findErr
}

func (f *fakeApprovalApptRepo) FindDetailByID(context.Context, int64) (*models.AppointmentDetail, error) {
	if f.detail != nil {
		return f.detail, nil
	}
	detail := &models.AppointmentDetail{Appointment: *f.appt}
	detail.Status = f.decidedStatus
	return detail, nil
}

func (f *fakeApprovalApptRepo) Decide(_ context.Context, _ int64, status models.AppointmentStatus, notes string, slotBooked *bool) error {
	if f.decideErr != nil {
		return f.decideErr
	}
	f.decidedStatus = status
	f.decidedNotes = notes
	f.decidedBooked = slotBooked
	return nil
}

func TestDecideApprove(t *testing.T) {
	repo := &fakeApprovalApptRepo{appt: &models.Appointment{ID: 3, Status: models.StatusPending, Email: "jane@example.com"}}
	notifier := &fakeNotifier{}
	svc := NewApprovalService(repo, notifier, nil, nil, nil, nil)

	detail, err := svc.Decide(context.Background(), 3, DecisionRequest{Action: "approve", AdminMessage: "see you then"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, detail.Status)
	assert.Equal(t, "see you then", repo.decidedNotes)
	require.NotNil(t, repo.decidedBooked)
	assert.True(t, *repo.decidedBooked, "approval must book the slot")
	assert.Len(t, notifier.decided, 1)
}

func TestDecideReject(t *testing.T) {
	repo := &fakeApprovalApptRepo{appt: &models.Appointment{ID: 3, Status: models.StatusPending}}
	svc := NewApprovalService(repo, nil, nil, nil, nil, nil)

	detail, err := svc.Decide(context.Background(), 3, DecisionRequest{Action: "reject"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, detail.Status)
	require.NotNil(t, repo.decidedBooked)
	assert.False(t, *repo.decidedBooked, "rejection must free the slot")
}

func TestDecideComplete(t *testing.T) {
	repo := &fakeApprovalApptRepo{appt: &models.Appointment{ID: 3, Status: models.StatusApproved}}
	notifier := &fakeNotifier{}
	svc := NewApprovalService(repo, notifier, nil, nil, nil, nil)

	detail, err := svc.Decide(context.Background(), 3, DecisionRequest{Action: "complete"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, detail.Status)
	assert.Nil(t, repo.decidedBooked, "completion leaves the booked flag alone")
	assert.Empty(t, notifier.decided, "completion does not notify the requester")
}

func TestDecideInvalidAction(t *testing.T) {
	repo := &fakeApprovalApptRepo{appt: &models.Appointment{ID: 3, Status: models.StatusPending}}
	svc := NewApprovalService(repo, nil, nil, nil, nil, nil)

	_, err := svc.Decide(context.Background(), 3, DecisionRequest{Action: "archive"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.decidedStatus, "invalid actions must not touch the appointment")
}

func TestDecideAlreadyDecided(t *testing.T) {
	for _, status := range []models.AppointmentStatus{models.StatusApproved, models.StatusRejected, models.StatusCompleted} {
		repo := &fakeApprovalApptRepo{appt: &models.Appointment{ID: 3, Status: status}}
		svc := NewApprovalService(repo, nil, nil, nil, nil, nil)

		_, err := svc.Decide(context.Background(), 3, DecisionRequest{Action: "approve"})
		require.Error(t, err, "approve from %s must fail", status)
		assert.Equal(t, appErrors.ErrAlreadyDecided.Code, appErrors.FromError(err).Code)
	}
}

func TestDecideCompleteRequiresApproved(t *testing.T) {
	repo := &fakeApprovalApptRepo{appt: &models.Appointment{ID: 3, Status: models.StatusPending}}
	svc := NewApprovalService(repo, nil, nil, nil, nil, nil)

	_, err := svc.Decide(context.Background(), 3, DecisionRequest{Action: "complete"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestDecideUnknownAppointment(t *testing.T) {
	svc := NewApprovalService(&fakeApprovalApptRepo{findErr: sql.ErrNoRows}, nil, nil, nil, nil, nil)

	_, err := svc.Decide(context.Background(), 99, DecisionRequest{Action: "approve"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
