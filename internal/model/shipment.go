package model

import "time"

// Shipment status codes. PENDING is entered at creation; exactly one of
// DELIVERED/BOUNCED/FAILED is entered when the send resolves. OpenedAt is
// stamped independently and never changes status.
const (
	ShipmentPending   = "P"
	ShipmentDelivered = "D"
	ShipmentBounced   = "B"
	ShipmentFailed    = "F"
)

// Shipment is one delivery attempt for a (newsletter, recipient) pair.
// Re-dispatch creates new rows; it never updates old ones.
type Shipment struct {
	ID           int        `db:"id" json:"id"`
	NewsletterID int        `db:"newsletter_id" json:"newsletter_id"`
	UserID       int        `db:"user_id" json:"user_id"`
	Description  string     `db:"description" json:"description"`
	Status       string     `db:"status" json:"status"`
	BouncedAt    *time.Time `db:"bounced_at" json:"bounced_at,omitempty"`
	FailedAt     *time.Time `db:"failed_at" json:"failed_at,omitempty"`
	DeliveredAt  *time.Time `db:"delivered_at" json:"delivered_at,omitempty"`
	OpenedAt     *time.Time `db:"opened_at" json:"opened_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}
