package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Receiving modes for a sample intake.
const (
	ReceivingModePerson  = "PERSON"
	ReceivingModeCourier = "COURIER"
)

// Receipt stores the intake record for a physical sample shipment.
// AWBNo is the courier Air Waybill number; it is mandatory when the shipment
// arrives by courier or is forwarded from a branch to the central lab.
type Receipt struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReceiverName  string    `gorm:"type:varchar(255);not null;index"`
	ContactNumber string    `gorm:"type:varchar(50);not null"`
	// ReceiptDate is kept as YYYY-MM-DD to match the intake form
	ReceiptDate      string  `gorm:"type:varchar(10);not null"`
	Branch           string  `gorm:"type:varchar(100);not null;index"`
	Company          string  `gorm:"type:varchar(255);not null;index"`
	CountBoxes       int     `gorm:"not null"`
	ReceivingMode    string  `gorm:"type:varchar(20);not null;index"`
	ForwardToCentral bool    `gorm:"not null;default:false"`
	AWBNo            *string `gorm:"type:varchar(100);index;column:awb_no"`
	// TrackingNumber is the public lookup handle for the owner portal,
	// assigned once at intake.
	TrackingNumber string    `gorm:"type:varchar(20);uniqueIndex;column:tracking_number"`
	CreatedAt      time.Time `gorm:"index"`
	UpdatedAt      time.Time

	LabTests []LabTest `gorm:"foreignKey:ReceiptID;constraint:OnDelete:CASCADE"`
}

func (r *Receipt) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
