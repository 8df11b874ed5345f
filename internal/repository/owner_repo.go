package repository

import (
	"context"

	"labtrack/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OwnerRepository interface {
	CreateRetestRequest(ctx context.Context, req *model.RetestRequest) error
	FindRetestRequest(ctx context.Context, id uuid.UUID) (*model.RetestRequest, error)
	ListRetestRequests(ctx context.Context, ownerEmail string) ([]model.RetestRequest, error)
	UpdateRetestRequest(ctx context.Context, req *model.RetestRequest) error
	FindPreference(ctx context.Context, ownerEmail string) (*model.OwnerPreference, error)
	UpsertPreference(ctx context.Context, pref *model.OwnerPreference) error
}

type ownerRepo struct{ db *gorm.DB }

func NewOwnerRepository(db *gorm.DB) OwnerRepository {
	return &ownerRepo{db: db}
}

func (r *ownerRepo) CreateRetestRequest(ctx context.Context, req *model.RetestRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *ownerRepo) FindRetestRequest(ctx context.Context, id uuid.UUID) (*model.RetestRequest, error) {
	var req model.RetestRequest
	err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error
	return &req, err
}

func (r *ownerRepo) ListRetestRequests(ctx context.Context, ownerEmail string) ([]model.RetestRequest, error) {
	q := r.db.WithContext(ctx).Model(&model.RetestRequest{})
	if ownerEmail != "" {
		q = q.Where("owner_email = ?", ownerEmail)
	}
	var reqs []model.RetestRequest
	err := q.Order("created_at DESC").Find(&reqs).Error
	return reqs, err
}

func (r *ownerRepo) UpdateRetestRequest(ctx context.Context, req *model.RetestRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *ownerRepo) FindPreference(ctx context.Context, ownerEmail string) (*model.OwnerPreference, error) {
	var pref model.OwnerPreference
	err := r.db.WithContext(ctx).Where("owner_email = ?", ownerEmail).First(&pref).Error
	return &pref, err
}

func (r *ownerRepo) UpsertPreference(ctx context.Context, pref *model.OwnerPreference) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "owner_email"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"owner_phone", "email_notifications", "whatsapp_notifications",
			"sms_notifications", "updated_at",
		}),
	}).Create(pref).Error
}
