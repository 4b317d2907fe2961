package models

import "time"

// TableStatus mirrors whether a table currently hosts an active session
type TableStatus string

const (
	TableAvailable TableStatus = "AVAILABLE"
	TableOccupied  TableStatus = "OCCUPIED"
)

// SessionStatus represents the lifecycle of one table occupancy.
// CLOSING is a transient claim taken by the billing close-out so that
// concurrent order submissions fail instead of racing the close.
type SessionStatus string

const (
	SessionActive  SessionStatus = "ACTIVE"
	SessionClosing SessionStatus = "CLOSING"
	SessionClosed  SessionStatus = "CLOSED"
)

type Table struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	TableNumber int            `json:"table_number" gorm:"uniqueIndex;not null"`
	Name        string         `json:"name"`
	Status      TableStatus    `json:"status" gorm:"not null;default:'AVAILABLE'"`
	Sessions    []TableSession `json:"sessions,omitempty" gorm:"foreignKey:TableID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Package selects buffet mode for a session; pricing is per head,
// optionally time-boxed.
type Package struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Name            string    `json:"name" gorm:"not null"`
	PricePerPerson  float64   `json:"price_per_person" gorm:"not null"`
	DurationMinutes *int      `json:"duration_minutes"`
	Active          bool      `json:"active" gorm:"default:true"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type TableSession struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	TableID     uint          `json:"table_id" gorm:"not null;index"`
	Table       Table         `json:"table,omitempty" gorm:"foreignKey:TableID"`
	PeopleCount int           `json:"people_count" gorm:"not null"`
	PackageID   *uint         `json:"package_id"`
	Package     *Package      `json:"package,omitempty" gorm:"foreignKey:PackageID"`
	Status      SessionStatus `json:"status" gorm:"not null;default:'ACTIVE';index"`
	StartTime   time.Time     `json:"start_time"`
	ExpireTime  *time.Time    `json:"expire_time"`
	Orders      []Order       `json:"orders,omitempty" gorm:"foreignKey:TableSessionID"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Expired reports whether the session's time box has run out. Expiry is
// derived on read; nothing sweeps sessions in the background.
func (s *TableSession) Expired(now time.Time) bool {
	return s.ExpireTime != nil && s.ExpireTime.Before(now)
}
