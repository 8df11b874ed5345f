package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"labtrack/internal/dto"
	"labtrack/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceRepository interface {
	// CreateWithNumber allocates the next INV-YYYY-NNNN number and inserts the
	// invoice in one transaction. The unique index on invoice_no backstops the
	// per-year sequence against concurrent writers.
	CreateWithNumber(ctx context.Context, inv *model.Invoice) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error)
	FindByInvoiceNo(ctx context.Context, invoiceNo string) (*model.Invoice, error)
	FindByReportID(ctx context.Context, reportID uuid.UUID) (*model.Invoice, error)
	List(ctx context.Context, filter dto.InvoiceFilter) ([]model.Invoice, int64, error)
	Update(ctx context.Context, inv *model.Invoice) error
}

type invoiceRepo struct{ db *gorm.DB }

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) CreateWithNumber(ctx context.Context, inv *model.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		no, err := nextInvoiceNumber(tx, time.Now().UTC().Year())
		if err != nil {
			return err
		}
		inv.InvoiceNo = no
		return tx.Create(inv).Error
	})
}

// nextInvoiceNumber computes the next number in the per-year sequence by
// inspecting the highest existing invoice_no for that year.
func nextInvoiceNumber(tx *gorm.DB, year int) (string, error) {
	prefix := fmt.Sprintf("INV-%d-", year)

	var last model.Invoice
	err := tx.Where("invoice_no LIKE ?", prefix+"%").
		Order("invoice_no DESC").
		Limit(1).
		Find(&last).Error
	if err != nil {
		return "", err
	}

	seq := 1
	if last.InvoiceNo != "" {
		parts := strings.Split(last.InvoiceNo, "-")
		if len(parts) == 3 {
			if n, err := strconv.Atoi(parts[2]); err == nil {
				seq = n + 1
			}
		}
	}
	return fmt.Sprintf("%s%04d", prefix, seq), nil
}

func (r *invoiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	var inv model.Invoice
	err := r.db.WithContext(ctx).Preload("Report").First(&inv, "id = ?", id).Error
	return &inv, err
}

func (r *invoiceRepo) FindByInvoiceNo(ctx context.Context, invoiceNo string) (*model.Invoice, error) {
	var inv model.Invoice
	err := r.db.WithContext(ctx).Where("invoice_no = ?", invoiceNo).First(&inv).Error
	return &inv, err
}

func (r *invoiceRepo) FindByReportID(ctx context.Context, reportID uuid.UUID) (*model.Invoice, error) {
	var inv model.Invoice
	err := r.db.WithContext(ctx).Where("report_id = ?", reportID).First(&inv).Error
	return &inv, err
}

func (r *invoiceRepo) List(ctx context.Context, filter dto.InvoiceFilter) ([]model.Invoice, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Invoice{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.ReportID != "" {
		q = q.Where("report_id = ?", filter.ReportID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var invs []model.Invoice
	err := q.Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&invs).Error
	return invs, total, err
}

func (r *invoiceRepo) Update(ctx context.Context, inv *model.Invoice) error {
	return r.db.WithContext(ctx).Save(inv).Error
}
