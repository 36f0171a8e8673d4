package models

import (
	"time"

	"github.com/google/uuid"
)

// Base carries the fields shared by every persisted record.
type Base struct {
	ID        string    `bson:"_id,omitempty" json:"id,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// NewBase returns a Base with a fresh ID and both timestamps set to now (UTC).
func NewBase() Base {
	now := time.Now().UTC()
	return Base{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
