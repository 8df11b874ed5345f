package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Test execution statuses.
const (
	TestQueued      = "QUEUED"
	TestInProgress  = "IN_PROGRESS"
	TestCompleted   = "COMPLETED"
	TestFailed      = "FAILED"
	TestNeedsRetest = "NEEDS_RETEST"
	TestOnHold      = "ON_HOLD"
)

// Lab report drafting statuses (monotonic).
const (
	LabReportNotStarted = "NOT_STARTED"
	LabReportDraft      = "DRAFT"
	LabReportReady      = "READY"
	LabReportSignedOff  = "SIGNED_OFF"
)

// LabTest is a laboratory examination tied to one receipt. TestStatus and
// LabReportStatus advance independently through their state machines.
type LabTest struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReceiptID       uuid.UUID `gorm:"type:uuid;not null;index"`
	LabDocNo        string    `gorm:"type:varchar(100);not null;index"`
	LabPerson       string    `gorm:"type:varchar(255);not null"`
	TestStatus      string    `gorm:"type:varchar(20);not null;default:'QUEUED';index"`
	LabReportStatus string    `gorm:"type:varchar(20);not null;default:'NOT_STARTED';index"`
	Remarks         *string   `gorm:"type:text"`
	CreatedAt       time.Time `gorm:"index"`
	UpdatedAt       time.Time

	Receipt   *Receipt      `gorm:"foreignKey:ReceiptID"`
	Transfers []LabTransfer `gorm:"foreignKey:LabTestID;constraint:OnDelete:CASCADE"`
}

func (t *LabTest) BeforeCreate(_ *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// LabTransfer is the immutable audit record appended whenever a lab test is
// reassigned to a different lab person. Rows are never updated or deleted.
type LabTransfer struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	LabTestID     uuid.UUID `gorm:"type:uuid;not null;index"`
	FromUser      string    `gorm:"type:varchar(255);not null"`
	ToUser        string    `gorm:"type:varchar(255);not null"`
	Reason        string    `gorm:"type:text;not null"`
	TransferredAt time.Time `gorm:"not null;index"`
}

func (t *LabTransfer) BeforeCreate(_ *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.TransferredAt.IsZero() {
		t.TransferredAt = time.Now().UTC()
	}
	return nil
}
