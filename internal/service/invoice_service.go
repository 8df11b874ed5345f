package service

import (
	"context"
	"fmt"
	"time"

	"labtrack/internal/dto"
	"labtrack/internal/model"
	"labtrack/internal/repository"
	"labtrack/internal/worker"
	"labtrack/internal/workflow"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type InvoiceService interface {
	Create(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.InvoiceResponse, error)
	List(ctx context.Context, filter dto.InvoiceFilter) (*dto.InvoiceListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error)
	MarkPaid(ctx context.Context, id uuid.UUID) (*dto.InvoiceResponse, error)
	ApprovedReports(ctx context.Context) ([]dto.ApprovedReportItem, error)
	PDFPath(ctx context.Context, id uuid.UUID) (string, error)
}

type invoiceService struct {
	repo       repository.InvoiceRepository
	reportRepo repository.ReportRepository
	dispatcher *worker.Dispatcher
}

func NewInvoiceService(repo repository.InvoiceRepository, reportRepo repository.ReportRepository, dispatcher *worker.Dispatcher) InvoiceService {
	return &invoiceService{repo: repo, reportRepo: reportRepo, dispatcher: dispatcher}
}

// Create issues an invoice against an approved report. The APPROVED check is
// done here, server-side, not just by the client's dropdown filtering.
func (s *invoiceService) Create(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	reportID, err := uuid.Parse(req.ReportID)
	if err != nil {
		return nil, fmt.Errorf("invalid report_id: %w", err)
	}

	report, err := s.reportRepo.FindByID(ctx, reportID)
	if err != nil {
		return nil, ErrNotFound
	}
	if report.FinalStatus != model.FinalApproved {
		return nil, &FieldErrors{Fields: map[string]string{
			"report_id": "cannot create an invoice for a report that is not approved",
		}}
	}

	if existing, err := s.repo.FindByReportID(ctx, reportID); err == nil && existing != nil && existing.ID != uuid.Nil {
		return nil, &FieldErrors{Fields: map[string]string{
			"report_id": "an invoice already exists for this report",
		}}
	}

	if !req.Amount.IsPositive() {
		return nil, &FieldErrors{Fields: map[string]string{
			"amount": "amount must be greater than zero",
		}}
	}

	inv := &model.Invoice{
		ReportID: reportID,
		Status:   model.InvoiceDraft,
		Amount:   req.Amount,
	}
	if err := s.repo.CreateWithNumber(ctx, inv); err != nil {
		return nil, err
	}

	// Async PDF rendering; failure to enqueue is not a request failure.
	if s.dispatcher != nil {
		labDocNo := ""
		if report.LabTest != nil {
			labDocNo = report.LabTest.LabDocNo
		}
		job := worker.InvoicePDFJobPayload{
			InvoiceID:  inv.ID.String(),
			LabDocNo:   labDocNo,
			OwnerEmail: req.OwnerEmail,
		}
		if err := s.dispatcher.EnqueueInvoicePDF(ctx, job); err != nil {
			log.Warn().Err(err).Str("invoice_no", inv.InvoiceNo).Msg("failed to enqueue invoice PDF job")
		}
	}

	return invoiceToResponse(inv), nil
}

func (s *invoiceService) Get(ctx context.Context, id uuid.UUID) (*dto.InvoiceResponse, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return invoiceToResponse(inv), nil
}

func (s *invoiceService) List(ctx context.Context, filter dto.InvoiceFilter) (*dto.InvoiceListResponse, error) {
	invs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.InvoiceListResponse{
		Data:  make([]dto.InvoiceResponse, len(invs)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range invs {
		resp.Data[i] = *invoiceToResponse(&invs[i])
	}
	return resp, nil
}

// Update moves status through the billing machine and maintains paid_at.
func (s *invoiceService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	if req.Status != nil {
		if err := workflow.CheckInvoiceStatus(inv.Status, *req.Status); err != nil {
			return nil, &FieldErrors{Fields: map[string]string{"status": err.Error()}}
		}
		inv.Status = *req.Status
		if inv.Status == model.InvoicePaid {
			now := time.Now().UTC()
			inv.PaidAt = &now
		} else {
			inv.PaidAt = nil
		}
	}
	if req.Amount != nil {
		if workflow.InvoiceTerminal(inv.Status) {
			return nil, &FieldErrors{Fields: map[string]string{"amount": "amount cannot change on a settled invoice"}}
		}
		if !req.Amount.IsPositive() {
			return nil, &FieldErrors{Fields: map[string]string{"amount": "amount must be greater than zero"}}
		}
		inv.Amount = *req.Amount
	}

	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return invoiceToResponse(inv), nil
}

// MarkPaid is the explicit "Mark Paid" action.
func (s *invoiceService) MarkPaid(ctx context.Context, id uuid.UUID) (*dto.InvoiceResponse, error) {
	paid := model.InvoicePaid
	return s.Update(ctx, id, dto.UpdateInvoiceRequest{Status: &paid})
}

// ApprovedReports lists approved reports without an invoice for the
// creation dropdown.
func (s *invoiceService) ApprovedReports(ctx context.Context) ([]dto.ApprovedReportItem, error) {
	reps, err := s.reportRepo.ApprovedWithoutInvoice(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ApprovedReportItem, len(reps))
	for i, rep := range reps {
		item := dto.ApprovedReportItem{
			ID:        rep.ID.String(),
			LabTestID: rep.LabTestID.String(),
			CreatedAt: rep.CreatedAt.Format(time.RFC3339),
		}
		if rep.LabTest != nil {
			docNo := rep.LabTest.LabDocNo
			item.LabDocNo = &docNo
		}
		items[i] = item
	}
	return items, nil
}

// PDFPath returns the filesystem path of a rendered invoice PDF.
func (s *invoiceService) PDFPath(ctx context.Context, id uuid.UUID) (string, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", ErrNotFound
	}
	if inv.PDFPath == nil || *inv.PDFPath == "" {
		return "", fmt.Errorf("PDF not yet rendered for invoice %s", inv.InvoiceNo)
	}
	return *inv.PDFPath, nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func invoiceToResponse(inv *model.Invoice) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:        inv.ID.String(),
		ReportID:  inv.ReportID.String(),
		InvoiceNo: inv.InvoiceNo,
		Status:    inv.Status,
		Amount:    inv.Amount,
		IssuedAt:  inv.IssuedAt.Format(time.RFC3339),
		CreatedAt: inv.CreatedAt.Format(time.RFC3339),
	}
	if inv.PaidAt != nil {
		s := inv.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &s
	}
	if inv.PDFPath != nil && *inv.PDFPath != "" {
		u := "/v1/invoices/pdf/" + inv.ID.String()
		resp.PDFUrl = &u
	}
	return resp
}
