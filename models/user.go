package models

import "time"

// UserRole defines the staff roles the API gates on
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleKitchen UserRole = "kitchen"
	RoleRunner  UserRole = "runner"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         UserRole  `json:"role" gorm:"not null;default:'runner'"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
