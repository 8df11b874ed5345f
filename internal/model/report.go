package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Report approval statuses.
const (
	FinalDraft            = "DRAFT"
	FinalReadyForApproval = "READY_FOR_APPROVAL"
	FinalApproved         = "APPROVED"
	FinalRejected         = "REJECTED"
)

// Communication statuses and channels.
const (
	CommPending    = "PENDING"
	CommDispatched = "DISPATCHED"
	CommDelivered  = "DELIVERED"

	ChannelCourier  = "COURIER"
	ChannelInPerson = "IN_PERSON"
	ChannelEmail    = "EMAIL"
)

// Report is the findings/approval record tied to one lab test (unique).
// ApprovedBy must be set whenever FinalStatus is APPROVED.
type Report struct {
	ID                     uuid.UUID `gorm:"type:uuid;primaryKey"`
	LabTestID              uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	RetestingRequested     bool      `gorm:"not null;default:false"`
	FinalStatus            string    `gorm:"type:varchar(30);not null;default:'DRAFT';index"`
	ApprovedBy             *string   `gorm:"type:varchar(255)"`
	CommStatus             string    `gorm:"type:varchar(20);not null;default:'PENDING'"`
	CommChannel            string    `gorm:"type:varchar(20);not null;default:'EMAIL'"`
	CommunicatedToAccounts bool      `gorm:"not null;default:false"`
	CreatedAt              time.Time `gorm:"index"`
	UpdatedAt              time.Time

	LabTest *LabTest `gorm:"foreignKey:LabTestID"`
	Invoice *Invoice `gorm:"foreignKey:ReportID"`
}

func (r *Report) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
