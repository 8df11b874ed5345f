package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Invoice billing statuses. PAID and CANCELLED are terminal.
const (
	InvoiceDraft     = "DRAFT"
	InvoiceIssued    = "ISSUED"
	InvoiceSent      = "SENT"
	InvoicePaid      = "PAID"
	InvoiceCancelled = "CANCELLED"
)

// Invoice is the billing record tied to one approved report (unique).
// InvoiceNo follows INV-YYYY-NNNN with a per-year monotonic sequence.
type Invoice struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ReportID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	InvoiceNo string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Status    string          `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	Amount    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	IssuedAt  time.Time       `gorm:"not null"`
	PaidAt    *time.Time
	// PDFPath is relative to PDF_STORAGE_PATH; set by the async PDF worker
	PDFPath   *string `gorm:"column:pdf_path"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time

	Report *Report `gorm:"foreignKey:ReportID"`
}

func (i *Invoice) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.IssuedAt.IsZero() {
		i.IssuedAt = time.Now().UTC()
	}
	return nil
}
