package repository

import (
	"context"

	"labtrack/internal/dto"
	"labtrack/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportRepository interface {
	Create(ctx context.Context, rep *model.Report) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Report, error)
	FindByLabTestID(ctx context.Context, labTestID uuid.UUID) (*model.Report, error)
	List(ctx context.Context, filter dto.ReportFilter) ([]model.Report, int64, error)
	Update(ctx context.Context, rep *model.Report) error
	// ApprovedWithoutInvoice lists APPROVED reports not yet invoiced,
	// feeding the invoice-creation dropdown.
	ApprovedWithoutInvoice(ctx context.Context) ([]model.Report, error)
}

type reportRepo struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepo{db: db}
}

func (r *reportRepo) Create(ctx context.Context, rep *model.Report) error {
	return r.db.WithContext(ctx).Create(rep).Error
}

func (r *reportRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Report, error) {
	var rep model.Report
	err := r.db.WithContext(ctx).
		Preload("LabTest").
		Preload("LabTest.Receipt").
		First(&rep, "id = ?", id).Error
	return &rep, err
}

func (r *reportRepo) FindByLabTestID(ctx context.Context, labTestID uuid.UUID) (*model.Report, error) {
	var rep model.Report
	err := r.db.WithContext(ctx).Where("lab_test_id = ?", labTestID).First(&rep).Error
	return &rep, err
}

func (r *reportRepo) List(ctx context.Context, filter dto.ReportFilter) ([]model.Report, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Report{})
	if filter.FinalStatus != "" {
		q = q.Where("final_status = ?", filter.FinalStatus)
	}
	if filter.LabTestID != "" {
		q = q.Where("lab_test_id = ?", filter.LabTestID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reps []model.Report
	err := q.Preload("LabTest").
		Preload("LabTest.Receipt").
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&reps).Error
	return reps, total, err
}

func (r *reportRepo) Update(ctx context.Context, rep *model.Report) error {
	return r.db.WithContext(ctx).Save(rep).Error
}

func (r *reportRepo) ApprovedWithoutInvoice(ctx context.Context) ([]model.Report, error) {
	var reps []model.Report
	err := r.db.WithContext(ctx).
		Preload("LabTest").
		Where("final_status = ?", model.FinalApproved).
		Where("id NOT IN (?)", r.db.Model(&model.Invoice{}).Select("report_id")).
		Order("created_at DESC").
		Find(&reps).Error
	return reps, err
}
