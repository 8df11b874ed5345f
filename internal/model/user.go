package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Staff roles.
const (
	RoleAdmin    = "admin"
	RoleLabStaff = "lab_staff"
	RoleAccounts = "accounts"
)

// User stores system users with role-based access. Owners are not stored
// here; they authenticate via OTP and carry a short-lived tracking token.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	FullName     string    `gorm:"not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"type:varchar(20);not null"`
	Active       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
