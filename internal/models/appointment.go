package models

import "time"

// AppointmentStatus enumerates the review states of an appointment request.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "PENDING"
	StatusApproved  AppointmentStatus = "APPROVED"
	StatusRejected  AppointmentStatus = "REJECTED"
	StatusCompleted AppointmentStatus = "COMPLETED"
)

// Valid reports whether the status is one of the known states.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// Terminal reports whether no further decision may be taken from the status.
// APPROVED is not terminal: it may still move to COMPLETED.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusRejected || s == StatusCompleted
}

// Appointment is a citizen's request against exactly one time slot.
type Appointment struct {
	ID          int64             `db:"id" json:"id"`
	SlotID      int64             `db:"slot_id" json:"slot_id"`
	FullName    string            `db:"full_name" json:"full_name"`
	Email       string            `db:"email" json:"email"`
	PhoneNumber string            `db:"phone_number" json:"phone_number"`
	Address     string            `db:"address" json:"address"`
	Purpose     string            `db:"purpose" json:"purpose"`
	Status      AppointmentStatus `db:"status" json:"status"`
	AdminNotes  string            `db:"admin_notes" json:"admin_notes"`
	CreatedAt   time.Time         `db:"created_at" json:"created_at"`
	DecidedAt   *time.Time        `db:"decided_at" json:"decided_at,omitempty"`
}

// AppointmentDetail joins the appointment with its slot and minister for
// dashboard display and notifications.
type AppointmentDetail struct {
	Appointment
	SlotDate     time.Time `db:"slot_date" json:"slot_date"`
	StartTime    string    `db:"start_time" json:"start_time"`
	EndTime      string    `db:"end_time" json:"end_time"`
	MinisterName string    `db:"minister_name" json:"minister_name"`
	Portfolio    string    `db:"portfolio" json:"portfolio"`
}

// AppointmentFilter captures dashboard list criteria.
type AppointmentFilter struct {
	Status     *AppointmentStatus
	MinisterID *int64
	Page       int
	PageSize   int
}

// StatusCounts summarises the appointment backlog for the dashboard.
type StatusCounts struct {
	Pending   int `db:"pending" json:"pending"`
	Approved  int `db:"approved" json:"approved"`
	Rejected  int `db:"rejected" json:"rejected"`
	Completed int `db:"completed" json:"completed"`
}
