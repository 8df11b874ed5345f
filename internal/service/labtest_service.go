package service

import (
	"context"
	"fmt"
	"time"

	"labtrack/internal/dto"
	"labtrack/internal/model"
	"labtrack/internal/repository"
	"labtrack/internal/workflow"

	"github.com/google/uuid"
)

type LabTestService interface {
	Create(ctx context.Context, req dto.CreateLabTestRequest) (*dto.LabTestResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.LabTestDetailResponse, error)
	List(ctx context.Context, filter dto.LabTestFilter) (*dto.LabTestListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateLabTestRequest) (*dto.LabTestResponse, error)
	Transfer(ctx context.Context, id uuid.UUID, req dto.TransferLabTestRequest) (*dto.LabTransferResponse, error)
}

type labTestService struct {
	repo        repository.LabTestRepository
	receiptRepo repository.ReceiptRepository
}

func NewLabTestService(repo repository.LabTestRepository, receiptRepo repository.ReceiptRepository) LabTestService {
	return &labTestService{repo: repo, receiptRepo: receiptRepo}
}

func (s *labTestService) Create(ctx context.Context, req dto.CreateLabTestRequest) (*dto.LabTestResponse, error) {
	receiptID, err := uuid.Parse(req.ReceiptID)
	if err != nil {
		return nil, fmt.Errorf("invalid receipt_id: %w", err)
	}

	receipt, err := s.receiptRepo.FindByID(ctx, receiptID)
	if err != nil {
		return nil, ErrNotFound
	}

	// lab_doc_no is unique per branch
	exists, err := s.repo.DocNoExistsInBranch(ctx, req.LabDocNo, receipt.Branch)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &FieldErrors{Fields: map[string]string{
			"lab_doc_no": fmt.Sprintf("lab document number %q already exists in branch %q", req.LabDocNo, receipt.Branch),
		}}
	}

	t := &model.LabTest{
		ReceiptID:       receiptID,
		LabDocNo:        req.LabDocNo,
		LabPerson:       req.LabPerson,
		TestStatus:      model.TestQueued,
		LabReportStatus: model.LabReportNotStarted,
		Remarks:         req.Remarks,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return labTestToResponse(t), nil
}

func (s *labTestService) Get(ctx context.Context, id uuid.UUID) (*dto.LabTestDetailResponse, error) {
	t, err := s.repo.FindByIDWithTransfers(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	resp := &dto.LabTestDetailResponse{
		LabTestResponse: *labTestToResponse(t),
		Transfers:       make([]dto.LabTransferResponse, len(t.Transfers)),
	}
	for i := range t.Transfers {
		resp.Transfers[i] = *transferToResponse(&t.Transfers[i])
	}
	return resp, nil
}

func (s *labTestService) List(ctx context.Context, filter dto.LabTestFilter) (*dto.LabTestListResponse, error) {
	tests, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.LabTestListResponse{
		Data:  make([]dto.LabTestResponse, len(tests)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range tests {
		resp.Data[i] = *labTestToResponse(&tests[i])
	}
	return resp, nil
}

// Update advances the two status axes through their state machines; a move
// the machine does not permit is a field-scoped validation error.
func (s *labTestService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateLabTestRequest) (*dto.LabTestResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	if req.TestStatus != nil {
		if err := workflow.CheckTestStatus(t.TestStatus, *req.TestStatus); err != nil {
			return nil, &FieldErrors{Fields: map[string]string{"test_status": err.Error()}}
		}
		t.TestStatus = *req.TestStatus
	}
	if req.LabReportStatus != nil {
		if err := workflow.CheckLabReportStatus(t.LabReportStatus, *req.LabReportStatus, t.TestStatus); err != nil {
			return nil, &FieldErrors{Fields: map[string]string{"lab_report_status": err.Error()}}
		}
		t.LabReportStatus = *req.LabReportStatus
	}
	if req.Remarks != nil {
		t.Remarks = req.Remarks
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return labTestToResponse(t), nil
}

// Transfer reassigns the lab test and appends the immutable audit row.
func (s *labTestService) Transfer(ctx context.Context, id uuid.UUID, req dto.TransferLabTestRequest) (*dto.LabTransferResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	fields := workflow.ValidateTransfer(workflow.TransferInput{
		CurrentPerson: t.LabPerson,
		FromUser:      req.FromUser,
		ToUser:        req.ToUser,
		Reason:        req.Reason,
	})
	if fields != nil {
		return nil, &FieldErrors{Fields: fields}
	}

	tr := &model.LabTransfer{
		LabTestID: t.ID,
		FromUser:  req.FromUser,
		ToUser:    req.ToUser,
		Reason:    req.Reason,
	}
	t.LabPerson = req.ToUser
	if err := s.repo.Transfer(ctx, t, tr); err != nil {
		return nil, err
	}
	return transferToResponse(tr), nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func labTestToResponse(t *model.LabTest) *dto.LabTestResponse {
	return &dto.LabTestResponse{
		ID:              t.ID.String(),
		ReceiptID:       t.ReceiptID.String(),
		LabDocNo:        t.LabDocNo,
		LabPerson:       t.LabPerson,
		TestStatus:      t.TestStatus,
		LabReportStatus: t.LabReportStatus,
		Remarks:         t.Remarks,
		CreatedAt:       t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       t.UpdatedAt.Format(time.RFC3339),
	}
}

func transferToResponse(tr *model.LabTransfer) *dto.LabTransferResponse {
	return &dto.LabTransferResponse{
		ID:            tr.ID.String(),
		LabTestID:     tr.LabTestID.String(),
		FromUser:      tr.FromUser,
		ToUser:        tr.ToUser,
		Reason:        tr.Reason,
		TransferredAt: tr.TransferredAt.Format(time.RFC3339),
	}
}
