package service

import (
	"context"
	"crypto/rand"
	"errors"
	"time"

	"labtrack/internal/dto"
	"labtrack/internal/model"
	"labtrack/internal/repository"
	"labtrack/internal/workflow"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReceiptService interface {
	Create(ctx context.Context, req dto.CreateReceiptRequest) (*dto.ReceiptResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ReceiptResponse, error)
	List(ctx context.Context, filter dto.ReceiptFilter) (*dto.ReceiptListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateReceiptRequest) (*dto.ReceiptResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*dto.ReceiptStatsResponse, error)
}

type receiptService struct {
	repo          repository.ReceiptRepository
	centralBranch string
}

func NewReceiptService(repo repository.ReceiptRepository, centralBranch string) ReceiptService {
	return &receiptService{repo: repo, centralBranch: centralBranch}
}

func (s *receiptService) Create(ctx context.Context, req dto.CreateReceiptRequest) (*dto.ReceiptResponse, error) {
	fields := workflow.ValidateReceipt(workflow.ReceiptInput{
		ReceiverName:     req.ReceiverName,
		ContactNumber:    req.ContactNumber,
		Date:             req.Date,
		Branch:           req.Branch,
		Company:          req.Company,
		CountBoxes:       req.CountOfBoxes,
		ReceivingMode:    req.ReceivingMode,
		ForwardToCentral: req.ForwardToCentral,
		AWBNo:            req.AWBNo,
	}, s.centralBranch)
	if fields != nil {
		return nil, &FieldErrors{Fields: fields}
	}

	rec := &model.Receipt{
		ReceiverName:     req.ReceiverName,
		ContactNumber:    req.ContactNumber,
		ReceiptDate:      req.Date,
		Branch:           req.Branch,
		Company:          req.Company,
		CountBoxes:       req.CountOfBoxes,
		ReceivingMode:    req.ReceivingMode,
		ForwardToCentral: req.ForwardToCentral,
		AWBNo:            req.AWBNo,
		TrackingNumber:   newTrackingNumber(),
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return receiptToResponse(rec), nil
}

func (s *receiptService) Get(ctx context.Context, id uuid.UUID) (*dto.ReceiptResponse, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return receiptToResponse(rec), nil
}

func (s *receiptService) List(ctx context.Context, filter dto.ReceiptFilter) (*dto.ReceiptListResponse, error) {
	recs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.ReceiptListResponse{
		Data:  make([]dto.ReceiptResponse, len(recs)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range recs {
		resp.Data[i] = *receiptToResponse(&recs[i])
	}
	return resp, nil
}

func (s *receiptService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateReceiptRequest) (*dto.ReceiptResponse, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	if req.ReceiverName != nil {
		rec.ReceiverName = *req.ReceiverName
	}
	if req.ContactNumber != nil {
		rec.ContactNumber = *req.ContactNumber
	}
	if req.Date != nil {
		rec.ReceiptDate = *req.Date
	}
	if req.Branch != nil {
		rec.Branch = *req.Branch
	}
	if req.Company != nil {
		rec.Company = *req.Company
	}
	if req.CountOfBoxes != nil {
		rec.CountBoxes = *req.CountOfBoxes
	}
	if req.ReceivingMode != nil {
		rec.ReceivingMode = *req.ReceivingMode
	}
	if req.ForwardToCentral != nil {
		rec.ForwardToCentral = *req.ForwardToCentral
	}
	if req.AWBNo != nil {
		rec.AWBNo = req.AWBNo
	}

	// Re-check the cross-field rule against the merged record
	fields := workflow.ValidateReceipt(workflow.ReceiptInput{
		ReceiverName:     rec.ReceiverName,
		ContactNumber:    rec.ContactNumber,
		Date:             rec.ReceiptDate,
		Branch:           rec.Branch,
		Company:          rec.Company,
		CountBoxes:       rec.CountBoxes,
		ReceivingMode:    rec.ReceivingMode,
		ForwardToCentral: rec.ForwardToCentral,
		AWBNo:            rec.AWBNo,
	}, s.centralBranch)
	if fields != nil {
		return nil, &FieldErrors{Fields: fields}
	}

	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return receiptToResponse(rec), nil
}

func (s *receiptService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *receiptService) Stats(ctx context.Context) (*dto.ReceiptStatsResponse, error) {
	return s.repo.Stats(ctx)
}

// ── helpers ──────────────────────────────────────────────────────────────────

// newTrackingNumber builds the public handle handed to sample owners.
// The alphabet drops 0/O/1/I/L so the code survives being read over the phone.
func newTrackingNumber() string {
	const alphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	b := make([]byte, 10)
	if _, err := rand.Read(b); err != nil {
		return "TRK-" + uuid.NewString()[:10]
	}
	for i := range b {
		b[i] = alphabet[int(b[i])%len(alphabet)]
	}
	return "TRK-" + string(b)
}

func receiptToResponse(rec *model.Receipt) *dto.ReceiptResponse {
	return &dto.ReceiptResponse{
		ID:               rec.ID.String(),
		ReceiverName:     rec.ReceiverName,
		ContactNumber:    rec.ContactNumber,
		Date:             rec.ReceiptDate,
		Branch:           rec.Branch,
		Company:          rec.Company,
		CountOfBoxes:     rec.CountBoxes,
		ReceivingMode:    rec.ReceivingMode,
		ForwardToCentral: rec.ForwardToCentral,
		AWBNo:            rec.AWBNo,
		TrackingNumber:   rec.TrackingNumber,
		CreatedAt:        rec.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        rec.UpdatedAt.Format(time.RFC3339),
	}
}
