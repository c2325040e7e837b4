package models

import "time"

// Minister represents a cabinet member who offers appointment slots.
type Minister struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Portfolio    string    `db:"portfolio" json:"portfolio"`
	MinistryName string    `db:"ministry_name" json:"ministry_name"`
	PhotoURL     *string   `db:"photo_url" json:"photo_url,omitempty"`
	Description  string    `db:"description" json:"description"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// MinisterFilter captures filtering criteria for listing ministers.
type MinisterFilter struct {
	Active   *bool
	Search   string
	Page     int
	PageSize int
}
