package model

import "time"

// Newsletter status codes, stored as single-letter varchars.
const (
	NewsletterDraft     = "D"
	NewsletterPublished = "P"
	NewsletterSent      = "S"
	NewsletterCancelled = "C"
	NewsletterArchived  = "A"
)

type Newsletter struct {
	ID          int       `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	CategoryID  *int      `db:"category_id" json:"category_id,omitempty"`
	Subject     string    `db:"subject" json:"subject"`
	Content     string    `db:"content" json:"content"`
	PreviewText string    `db:"preview_text" json:"preview_text"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
