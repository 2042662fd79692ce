package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAgent = "agent"
	RoleAdmin = "admin"
)

// User stores system users with role-based access.
// Role: "agent" | "admin"
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	FullName     string    `gorm:"not null"`
	Email        *string
	PhoneNumber  *string `gorm:"type:varchar(20)"`
	PasswordHash string  `gorm:"not null"`
	Role         string  `gorm:"type:varchar(20);not null"`
	// LocationID ties an agent to the branch they operate; nil for admins
	LocationID *uuid.UUID `gorm:"type:uuid;index"`
	Active     bool       `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
