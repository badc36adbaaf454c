package model

import "time"

type Template struct {
	ID          int       `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	HTML        string    `db:"html" json:"html"`
	Text        string    `db:"text" json:"text"`
	CSS         string    `db:"css" json:"css"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
