package model

import "time"

// Subscription status codes. The is_active flag is independent of status:
// both gate membership in the active-subscriber set.
const (
	SubscriptionActive   = "A"
	SubscriptionInactive = "I"
)

type Subscription struct {
	ID        int       `db:"id" json:"id"`
	UserID    int       `db:"user_id" json:"user_id"`
	Status    string    `db:"status" json:"status"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ActiveSubscriber is a subscription row joined with its owning user's
// contact details, as consumed by the newsletter dispatcher.
type ActiveSubscriber struct {
	SubscriptionID int    `json:"id"`
	UserID         int    `json:"user_id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
}
