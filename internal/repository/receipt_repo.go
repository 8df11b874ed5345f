package repository

import (
	"context"

	"labtrack/internal/dto"
	"labtrack/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReceiptRepository interface {
	Create(ctx context.Context, r *model.Receipt) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Receipt, error)
	FindByAWB(ctx context.Context, awb string) (*model.Receipt, error)
	FindByTrackingNumber(ctx context.Context, trackingNo string) (*model.Receipt, error)
	List(ctx context.Context, filter dto.ReceiptFilter) ([]model.Receipt, int64, error)
	Update(ctx context.Context, r *model.Receipt) error
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*dto.ReceiptStatsResponse, error)
}

type receiptRepo struct{ db *gorm.DB }

func NewReceiptRepository(db *gorm.DB) ReceiptRepository {
	return &receiptRepo{db: db}
}

func (r *receiptRepo) Create(ctx context.Context, rec *model.Receipt) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *receiptRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Receipt, error) {
	var rec model.Receipt
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	return &rec, err
}

func (r *receiptRepo) FindByAWB(ctx context.Context, awb string) (*model.Receipt, error) {
	var rec model.Receipt
	err := r.db.WithContext(ctx).Where("awb_no = ?", awb).First(&rec).Error
	return &rec, err
}

func (r *receiptRepo) FindByTrackingNumber(ctx context.Context, trackingNo string) (*model.Receipt, error) {
	var rec model.Receipt
	err := r.db.WithContext(ctx).Where("tracking_number = ?", trackingNo).First(&rec).Error
	return &rec, err
}

func (r *receiptRepo) List(ctx context.Context, filter dto.ReceiptFilter) ([]model.Receipt, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Receipt{})
	if filter.Branch != "" {
		q = q.Where("branch LIKE ?", "%"+filter.Branch+"%")
	}
	if filter.Receiver != "" {
		q = q.Where("receiver_name LIKE ?", "%"+filter.Receiver+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recs []model.Receipt
	err := q.Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&recs).Error
	return recs, total, err
}

func (r *receiptRepo) Update(ctx context.Context, rec *model.Receipt) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *receiptRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Receipt{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Stats aggregates intake counters with GROUP BY rather than loading rows.
func (r *receiptRepo) Stats(ctx context.Context) (*dto.ReceiptStatsResponse, error) {
	stats := &dto.ReceiptStatsResponse{
		ByReceivingMode: make(map[string]int64),
		ByBranch:        make(map[string]int64),
	}

	db := r.db.WithContext(ctx).Model(&model.Receipt{})
	if err := db.Count(&stats.TotalReceipts).Error; err != nil {
		return nil, err
	}

	type bucket struct {
		Key   string
		Count int64
	}

	var modes []bucket
	if err := r.db.WithContext(ctx).Model(&model.Receipt{}).
		Select("receiving_mode AS key, COUNT(*) AS count").
		Group("receiving_mode").Scan(&modes).Error; err != nil {
		return nil, err
	}
	for _, b := range modes {
		stats.ByReceivingMode[b.Key] = b.Count
	}

	var branches []bucket
	if err := r.db.WithContext(ctx).Model(&model.Receipt{}).
		Select("branch AS key, COUNT(*) AS count").
		Group("branch").Scan(&branches).Error; err != nil {
		return nil, err
	}
	for _, b := range branches {
		stats.ByBranch[b.Key] = b.Count
	}

	if err := r.db.WithContext(ctx).Model(&model.Receipt{}).
		Where("awb_no IS NOT NULL AND awb_no <> ''").
		Count(&stats.WithAWB).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&model.Receipt{}).
		Where("forward_to_central = ?", true).
		Count(&stats.ForwardedToCentral).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
