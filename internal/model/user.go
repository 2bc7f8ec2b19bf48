package model

import "time"

// Roles assignable to users.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered user in the system.
type User struct {
	ID           uint             `json:"id" gorm:"primaryKey"`
	Username     string           `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Email        string           `json:"email" gorm:"uniqueIndex;size:100;not null"`
	PasswordHash string           `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         string           `json:"role" gorm:"size:20;not null;default:'user'"`
	Plan         SubscriptionPlan `json:"plan" gorm:"size:20;not null;default:'NONE'"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}
