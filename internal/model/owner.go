package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Retest request statuses.
const (
	RetestPending   = "PENDING"
	RetestApproved  = "APPROVED"
	RetestRejected  = "REJECTED"
	RetestCompleted = "COMPLETED"
)

// RetestRequest is an owner-initiated request to re-run the test behind a
// report, filed from the public portal and answered by lab staff.
type RetestRequest struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReportID      uuid.UUID `gorm:"type:uuid;not null;index"`
	OwnerEmail    string    `gorm:"type:varchar(255);not null"`
	OwnerPhone    *string   `gorm:"type:varchar(20)"`
	Remarks       string    `gorm:"type:text;not null"`
	Status        string    `gorm:"type:varchar(20);not null;default:'PENDING'"`
	AdminResponse *string   `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Report *Report `gorm:"foreignKey:ReportID"`
}

func (r *RetestRequest) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// OwnerPreference stores per-owner notification channel opt-ins.
type OwnerPreference struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerEmail            string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	OwnerPhone            *string   `gorm:"type:varchar(20)"`
	EmailNotifications    bool      `gorm:"not null;default:true"`
	WhatsappNotifications bool      `gorm:"not null;default:false"`
	SMSNotifications      bool      `gorm:"not null;default:false;column:sms_notifications"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (p *OwnerPreference) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
