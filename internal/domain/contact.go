package domain

import "time"

type LeadStatus string

const (
	LeadNew      LeadStatus = "new"
	LeadResolved LeadStatus = "resolved"
)

// ContactLead is a message left through the public contact form.
type ContactLead struct {
	ID        int64      `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	Email     string     `db:"email" json:"email"`
	Phone     string     `db:"phone" json:"phone"`
	Message   string     `db:"message" json:"message"`
	ListingID *int64     `db:"listing_id" json:"listing_id,omitempty"`
	Status    LeadStatus `db:"status" json:"status"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}
