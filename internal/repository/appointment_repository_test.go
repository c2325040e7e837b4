package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ministry-booking-api/internal/models"
)

func newAppointmentRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestAppointmentRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newAppointmentRepoMock(t)
	defer cleanup()
	repo := NewAppointmentRepository(db)

	mock.ExpectQuery("INSERT INTO appointments").
		WithArgs(int64(7), "Jane Doe", "jane@example.com", "9800000000", "Kathmandu", "Land dispute", models.StatusPending, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))

	appt := &models.Appointment{
		SlotID:      7,
		FullName:    "Jane Doe",
		Email:       "jane@example.com",
		PhoneNumber: "9800000000",
		Address:     "Kathmandu",
		Purpose:     "Land dispute",
	}
	require.NoError(t, repo.Create(context.Background(), appt))
	assert.Equal(t, int64(3), appt.ID)
	assert.Equal(t, models.StatusPending, appt.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentRepositoryList(t *testing.T) {
	db, mock, cleanup := newAppointmentRepoMock(t)
	defer cleanup()
	repo := NewAppointmentRepository(db)

	date := time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "slot_id", "full_name", "email", "phone_number", "address", "purpose",
		"status", "admin_notes", "created_at", "decided_at",
		"slot_date", "start_time", "end_time", "minister_name", "portfolio",
	}).AddRow(
		int64(3), int64(7), "Jane Doe", "jane@example.com", "", "", "",
		models.StatusPending, "", time.Now(), nil,
		date, "10:00:00", "11:00:00", "Hon. Ram Bahadur Thapa", "Home Affairs",
	)

	mock.ExpectQuery("SELECT .+ FROM appointments a").
		WithArgs(models.StatusPending).
		WillReturnRows(rows)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM appointments a").
		WithArgs(models.StatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	status := models.StatusPending
	items, total, err := repo.List(context.Background(), models.AppointmentFilter{Status: &status})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Hon. Ram Bahadur Thapa", items[0].MinisterName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentRepositoryCountByStatus(t *testing.T) {
	db, mock, cleanup := newAppointmentRepoMock(t)
	defer cleanup()
	repo := NewAppointmentRepository(db)

	mock.ExpectQuery("COUNT\\(\\*\\) FILTER").
		WillReturnRows(sqlmock.NewRows([]string{"pending", "approved", "rejected", "completed"}).
			AddRow(4, 2, 1, 0))

	counts, err := repo.CountByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.StatusCounts{Pending: 4, Approved: 2, Rejected: 1, Completed: 0}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentRepositoryDecideApprove(t *testing.T) {
	db, mock, cleanup := newAppointmentRepoMock(t)
	defer cleanup()
	repo := NewAppointmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE appointments SET status = $2, admin_notes = $3, decided_at = $4 WHERE id = $1")).
		WithArgs(int64(3), models.StatusApproved, "see you then", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE time_slots SET booked = $2 WHERE id = (SELECT slot_id FROM appointments WHERE id = $1)")).
		WithArgs(int64(3), true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	booked := true
	require.NoError(t, repo.Decide(context.Background(), 3, models.StatusApproved, "see you then", &booked))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentRepositoryDecideCompleteLeavesSlot(t *testing.T) {
	db, mock, cleanup := newAppointmentRepoMock(t)
	defer cleanup()
	repo := NewAppointmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE appointments SET status").
		WithArgs(int64(3), models.StatusCompleted, "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Decide(context.Background(), 3, models.StatusCompleted, "", nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}
