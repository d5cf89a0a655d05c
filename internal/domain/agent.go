package domain

import "time"

// Agent is a sales agent attached to an office listing.
type Agent struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Phone     string    `db:"phone" json:"phone"`
	Email     string    `db:"email" json:"email"`
	PhotoURL  string    `db:"photo_url" json:"photo_url"`
	OfficeID  *int64    `db:"office_id" json:"office_id,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
