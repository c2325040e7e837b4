package models

import "time"

// TimeSlot is a fixed bookable window offered by one minister on one date.
// The triple (minister_id, slot_date, start_time) is unique at the storage
// level; at most one appointment may ever reference a slot.
type TimeSlot struct {
	ID         int64     `db:"id" json:"id"`
	MinisterID int64     `db:"minister_id" json:"minister_id"`
	Date       time.Time `db:"slot_date" json:"date"`
	StartTime  string    `db:"start_time" json:"start_time"`
	EndTime    string    `db:"end_time" json:"end_time"`
	Booked     bool      `db:"booked" json:"booked"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// AvailableSlot is the public wire shape for an offerable slot.
type AvailableSlot struct {
	ID        int64  `json:"id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Clock trims a Postgres TIME value ("10:00:00") to the HH:MM wire format.
func Clock(t string) string {
	if len(t) > 5 {
		return t[:5]
	}
	return t
}
