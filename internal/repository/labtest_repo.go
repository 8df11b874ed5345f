package repository

import (
	"context"

	"labtrack/internal/dto"
	"labtrack/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LabTestRepository interface {
	Create(ctx context.Context, t *model.LabTest) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.LabTest, error)
	FindByIDWithTransfers(ctx context.Context, id uuid.UUID) (*model.LabTest, error)
	List(ctx context.Context, filter dto.LabTestFilter) ([]model.LabTest, int64, error)
	ListByReceiptID(ctx context.Context, receiptID uuid.UUID) ([]model.LabTest, error)
	Update(ctx context.Context, t *model.LabTest) error
	DocNoExistsInBranch(ctx context.Context, labDocNo, branch string) (bool, error)
	// Transfer atomically appends the audit row and reassigns lab_person.
	Transfer(ctx context.Context, t *model.LabTest, tr *model.LabTransfer) error
}

type labTestRepo struct{ db *gorm.DB }

func NewLabTestRepository(db *gorm.DB) LabTestRepository {
	return &labTestRepo{db: db}
}

func (r *labTestRepo) Create(ctx context.Context, t *model.LabTest) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *labTestRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.LabTest, error) {
	var t model.LabTest
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	return &t, err
}

func (r *labTestRepo) FindByIDWithTransfers(ctx context.Context, id uuid.UUID) (*model.LabTest, error) {
	var t model.LabTest
	err := r.db.WithContext(ctx).
		Preload("Transfers", func(db *gorm.DB) *gorm.DB {
			return db.Order("transferred_at ASC")
		}).
		First(&t, "id = ?", id).Error
	return &t, err
}

func (r *labTestRepo) List(ctx context.Context, filter dto.LabTestFilter) ([]model.LabTest, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.LabTest{})
	if filter.Status != "" {
		q = q.Where("test_status = ?", filter.Status)
	}
	if filter.ReceiptID != "" {
		q = q.Where("receipt_id = ?", filter.ReceiptID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tests []model.LabTest
	err := q.Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&tests).Error
	return tests, total, err
}

func (r *labTestRepo) ListByReceiptID(ctx context.Context, receiptID uuid.UUID) ([]model.LabTest, error) {
	var tests []model.LabTest
	err := r.db.WithContext(ctx).
		Where("receipt_id = ?", receiptID).
		Order("created_at ASC").
		Find(&tests).Error
	return tests, err
}

func (r *labTestRepo) Update(ctx context.Context, t *model.LabTest) error {
	return r.db.WithContext(ctx).Save(t).Error
}

// DocNoExistsInBranch checks lab_doc_no uniqueness scoped to the receipt's branch.
func (r *labTestRepo) DocNoExistsInBranch(ctx context.Context, labDocNo, branch string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.LabTest{}).
		Joins("JOIN receipts ON receipts.id = lab_tests.receipt_id").
		Where("lab_tests.lab_doc_no = ? AND receipts.branch = ?", labDocNo, branch).
		Count(&count).Error
	return count > 0, err
}

func (r *labTestRepo) Transfer(ctx context.Context, t *model.LabTest, tr *model.LabTransfer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(tr).Error; err != nil {
			return err
		}
		return tx.Model(&model.LabTest{}).
			Where("id = ?", t.ID).
			Update("lab_person", t.LabPerson).Error
	})
}
