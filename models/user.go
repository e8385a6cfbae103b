package models

import (
	"time"
)

// Role defines allowed roles in the system
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleUser   Role = "user"
	RoleDriver Role = "driver"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleDriver:
		return true
	}
	return false
}

type User struct {
	ID           string    `json:"id" gorm:"primaryKey" bson:"_id"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null" bson:"email"`
	PasswordHash string    `json:"-" gorm:"not null" bson:"password"`
	Role         Role      `json:"role" gorm:"not null;default:'user'" bson:"role"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}
