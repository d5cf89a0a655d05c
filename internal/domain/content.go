package domain

import "time"

// ContentBlock is a keyed rich-text block rendered on the public site
// (about page, footer, campaign banners).
type ContentBlock struct {
	ID        int64     `db:"id" json:"id"`
	Key       string    `db:"key" json:"key"`
	Title     string    `db:"title" json:"title"`
	Body      string    `db:"body" json:"body"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
