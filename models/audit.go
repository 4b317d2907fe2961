package models

import "time"

// ActionLog is the append-only trail of mutating front-of-house
// operations. Detail holds a small JSON blob describing the mutation.
type ActionLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    *uint     `json:"user_id"` // nil for customer-device actions
	Action    string    `json:"action" gorm:"not null;index"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}
