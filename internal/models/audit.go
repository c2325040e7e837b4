package models

import "time"

// Audit actions recorded for staff activity.
const (
	AuditActionLogin          = "LOGIN"
	AuditActionLogout         = "LOGOUT"
	AuditActionPasswordChange = "PASSWORD_CHANGE"
	AuditActionDecision       = "APPOINTMENT_DECISION"
	AuditActionMinisterAdmin  = "MINISTER_ADMIN"
	AuditActionSlotAdmin      = "SLOT_ADMIN"
)

// AuditLog records a staff-surface action for traceability.
type AuditLog struct {
	ID         string    `db:"id"`
	UserID     *string   `db:"user_id"`
	Action     string    `db:"action"`
	Resource   string    `db:"resource"`
	ResourceID *string   `db:"resource_id"`
	NewValues  []byte    `db:"new_values"`
	IPAddress  string    `db:"ip_address"`
	UserAgent  string    `db:"user_agent"`
	CreatedAt  time.Time `db:"created_at"`
}
