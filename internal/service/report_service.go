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

type ReportService interface {
	Create(ctx context.Context, req dto.CreateReportRequest) (*dto.ReportResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ReportResponse, error)
	List(ctx context.Context, filter dto.ReportFilter) (*dto.ReportListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateReportRequest) (*dto.ReportResponse, error)
	Approve(ctx context.Context, id uuid.UUID, req dto.ApproveReportRequest) (*dto.ReportResponse, error)
}

type reportService struct {
	repo        repository.ReportRepository
	labTestRepo repository.LabTestRepository
}

func NewReportService(repo repository.ReportRepository, labTestRepo repository.LabTestRepository) ReportService {
	return &reportService{repo: repo, labTestRepo: labTestRepo}
}

// Create enforces the one-report-per-lab-test rule server-side rather than
// relying on the client only listing lab tests without reports.
func (s *reportService) Create(ctx context.Context, req dto.CreateReportRequest) (*dto.ReportResponse, error) {
	labTestID, err := uuid.Parse(req.LabTestID)
	if err != nil {
		return nil, fmt.Errorf("invalid labtest_id: %w", err)
	}

	if _, err := s.labTestRepo.FindByID(ctx, labTestID); err != nil {
		return nil, ErrNotFound
	}

	if existing, err := s.repo.FindByLabTestID(ctx, labTestID); err == nil && existing != nil && existing.ID != uuid.Nil {
		return nil, &FieldErrors{Fields: map[string]string{
			"labtest_id": "a report already exists for this lab test",
		}}
	}

	rep := &model.Report{
		LabTestID:   labTestID,
		FinalStatus: model.FinalDraft,
		CommStatus:  model.CommPending,
		CommChannel: model.ChannelEmail,
	}
	if req.FinalStatus != nil {
		rep.FinalStatus = *req.FinalStatus
	}
	if req.CommChannel != nil {
		rep.CommChannel = *req.CommChannel
	}
	if err := s.repo.Create(ctx, rep); err != nil {
		return nil, err
	}
	return reportToResponse(rep), nil
}

func (s *reportService) Get(ctx context.Context, id uuid.UUID) (*dto.ReportResponse, error) {
	rep, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return reportToResponse(rep), nil
}

func (s *reportService) List(ctx context.Context, filter dto.ReportFilter) (*dto.ReportListResponse, error) {
	reps, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.ReportListResponse{
		Data:  make([]dto.ReportResponse, len(reps)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range reps {
		resp.Data[i] = *reportToResponse(&reps[i])
	}
	return resp, nil
}

// Update moves final_status through the approval machine and edits the
// communication fields, which carry no cross-field constraint with approval.
func (s *reportService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateReportRequest) (*dto.ReportResponse, error) {
	rep, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	if req.FinalStatus != nil {
		if err := workflow.CheckFinalStatus(rep.FinalStatus, *req.FinalStatus); err != nil {
			return nil, &FieldErrors{Fields: map[string]string{"final_status": err.Error()}}
		}
		// APPROVED via generic update still demands approved_by; force the
		// explicit approve action for that move.
		if *req.FinalStatus == model.FinalApproved && (rep.ApprovedBy == nil || *rep.ApprovedBy == "") {
			return nil, &FieldErrors{Fields: map[string]string{
				"final_status": "use the approve action to set APPROVED with an approver",
			}}
		}
		rep.FinalStatus = *req.FinalStatus
	}
	if req.RetestingRequested != nil {
		rep.RetestingRequested = *req.RetestingRequested
	}
	if req.CommStatus != nil {
		rep.CommStatus = *req.CommStatus
	}
	if req.CommChannel != nil {
		rep.CommChannel = *req.CommChannel
	}
	if req.CommunicatedToAccounts != nil {
		rep.CommunicatedToAccounts = *req.CommunicatedToAccounts
	}

	if err := s.repo.Update(ctx, rep); err != nil {
		return nil, err
	}
	return reportToResponse(rep), nil
}

// Approve stamps approved_by and sets final_status = APPROVED.
func (s *reportService) Approve(ctx context.Context, id uuid.UUID, req dto.ApproveReportRequest) (*dto.ReportResponse, error) {
	rep, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	if err := workflow.CheckApproval(rep.FinalStatus, req.ApprovedBy); err != nil {
		return nil, &FieldErrors{Fields: map[string]string{"approved_by": err.Error()}}
	}

	rep.FinalStatus = model.FinalApproved
	rep.ApprovedBy = &req.ApprovedBy
	if err := s.repo.Update(ctx, rep); err != nil {
		return nil, err
	}
	return reportToResponse(rep), nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func reportToResponse(rep *model.Report) *dto.ReportResponse {
	resp := &dto.ReportResponse{
		ID:                     rep.ID.String(),
		LabTestID:              rep.LabTestID.String(),
		RetestingRequested:     rep.RetestingRequested,
		FinalStatus:            rep.FinalStatus,
		ApprovedBy:             rep.ApprovedBy,
		CommStatus:             rep.CommStatus,
		CommChannel:            rep.CommChannel,
		CommunicatedToAccounts: rep.CommunicatedToAccounts,
		CreatedAt:              rep.CreatedAt.Format(time.RFC3339),
		UpdatedAt:              rep.UpdatedAt.Format(time.RFC3339),
	}

	// Flatten joined lab test + receipt context when preloaded
	if rep.LabTest != nil {
		receiptID := rep.LabTest.ReceiptID.String()
		resp.ReceiptID = &receiptID
		resp.LabDocNo = &rep.LabTest.LabDocNo
		resp.LabPerson = &rep.LabTest.LabPerson
		resp.TestStatus = &rep.LabTest.TestStatus
		resp.LabReportStatus = &rep.LabTest.LabReportStatus
		if rep.LabTest.Receipt != nil {
			resp.ReceiverName = &rep.LabTest.Receipt.ReceiverName
			resp.Branch = &rep.LabTest.Receipt.Branch
			resp.Company = &rep.LabTest.Receipt.Company
		}
	}
	return resp
}
