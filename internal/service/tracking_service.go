package service

import (
	"context"
	"time"

	"labtrack/internal/dto"
	"labtrack/internal/model"
	"labtrack/internal/repository"

	"github.com/google/uuid"
)

type TrackingService interface {
	Track(ctx context.Context, filter dto.TrackFilter) (*dto.TrackResponse, error)
}

type trackingService struct {
	receiptRepo repository.ReceiptRepository
	labTestRepo repository.LabTestRepository
	reportRepo  repository.ReportRepository
	invoiceRepo repository.InvoiceRepository
}

func NewTrackingService(
	receiptRepo repository.ReceiptRepository,
	labTestRepo repository.LabTestRepository,
	reportRepo repository.ReportRepository,
	invoiceRepo repository.InvoiceRepository,
) TrackingService {
	return &trackingService{
		receiptRepo: receiptRepo,
		labTestRepo: labTestRepo,
		reportRepo:  reportRepo,
		invoiceRepo: invoiceRepo,
	}
}

// Track resolves a receipt by exactly one lookup key (awb, receipt id,
// invoice number or tracking number) and assembles the progress timeline
// for the owner portal.
func (s *trackingService) Track(ctx context.Context, filter dto.TrackFilter) (*dto.TrackResponse, error) {
	keys := 0
	for _, v := range []string{filter.AWB, filter.Receipt, filter.Invoice, filter.Tracking} {
		if v != "" {
			keys++
		}
	}
	if keys != 1 {
		return nil, &FieldErrors{Fields: map[string]string{
			"query": "provide exactly one of awb, receipt, invoice or tracking",
		}}
	}

	rec, err := s.resolveReceipt(ctx, filter)
	if err != nil {
		return nil, err
	}

	tests, err := s.labTestRepo.ListByReceiptID(ctx, rec.ID)
	if err != nil {
		return nil, err
	}

	// Follow the chain of the oldest lab test; the portal tracks one
	// shipment end to end, not per-test detail.
	var test *model.LabTest
	var report *model.Report
	var invoice *model.Invoice
	if len(tests) > 0 {
		test = &tests[0]
		if rep, err := s.reportRepo.FindByLabTestID(ctx, test.ID); err == nil && rep.ID != uuid.Nil {
			report = rep
			if inv, err := s.invoiceRepo.FindByReportID(ctx, rep.ID); err == nil && inv.ID != uuid.Nil {
				invoice = inv
			}
		}
	}

	timeline := buildTimeline(rec, test, report, invoice)
	current := ""
	for i := range timeline {
		if timeline[i].Done {
			current = timeline[i].Key
		}
	}
	for i := range timeline {
		timeline[i].Current = timeline[i].Key == current
	}

	return &dto.TrackResponse{
		CurrentStep: current,
		ReceiptInfo: dto.TrackReceiptInfo{
			ID:               rec.ID.String(),
			ReceiverName:     rec.ReceiverName,
			Branch:           rec.Branch,
			Company:          rec.Company,
			ReceivingMode:    rec.ReceivingMode,
			ForwardToCentral: rec.ForwardToCentral,
			AWBNo:            rec.AWBNo,
			TrackingNumber:   rec.TrackingNumber,
			CreatedAt:        rec.CreatedAt.Format(time.RFC3339),
		},
		Timeline: timeline,
	}, nil
}

func (s *trackingService) resolveReceipt(ctx context.Context, filter dto.TrackFilter) (*model.Receipt, error) {
	switch {
	case filter.AWB != "":
		rec, err := s.receiptRepo.FindByAWB(ctx, filter.AWB)
		if err != nil {
			return nil, ErrNotFound
		}
		return rec, nil

	case filter.Tracking != "":
		rec, err := s.receiptRepo.FindByTrackingNumber(ctx, filter.Tracking)
		if err != nil {
			return nil, ErrNotFound
		}
		return rec, nil

	case filter.Receipt != "":
		id, err := uuid.Parse(filter.Receipt)
		if err != nil {
			return nil, ErrNotFound
		}
		rec, err := s.receiptRepo.FindByID(ctx, id)
		if err != nil {
			return nil, ErrNotFound
		}
		return rec, nil

	default:
		inv, err := s.invoiceRepo.FindByInvoiceNo(ctx, filter.Invoice)
		if err != nil {
			return nil, ErrNotFound
		}
		rep, err := s.reportRepo.FindByID(ctx, inv.ReportID)
		if err != nil || rep.LabTest == nil {
			return nil, ErrNotFound
		}
		rec, err := s.receiptRepo.FindByID(ctx, rep.LabTest.ReceiptID)
		if err != nil {
			return nil, ErrNotFound
		}
		return rec, nil
	}
}

func buildTimeline(rec *model.Receipt, test *model.LabTest, report *model.Report, invoice *model.Invoice) []dto.TimelineStep {
	var steps []dto.TimelineStep
	add := func(key, label string, done bool, ts *time.Time) {
		step := dto.TimelineStep{Key: key, Label: label, Done: done}
		if done && ts != nil {
			s := ts.Format(time.RFC3339)
			step.Timestamp = &s
		}
		steps = append(steps, step)
	}

	add("received", "Sample received", true, &rec.CreatedAt)
	if rec.ForwardToCentral {
		add("forwarded", "Forwarded to central lab", true, &rec.CreatedAt)
	}

	testStarted := test != nil && test.TestStatus != model.TestQueued
	testCompleted := test != nil && test.TestStatus == model.TestCompleted
	var testTS *time.Time
	if test != nil {
		testTS = &test.UpdatedAt
	}
	add("queued", "Test queued", test != nil, testTS)
	add("in_progress", "Testing in progress", testStarted, testTS)
	add("completed", "Testing completed", testCompleted, testTS)

	reportReady := report != nil && report.FinalStatus == model.FinalApproved
	communicated := report != nil && report.CommStatus != model.CommPending
	var reportTS *time.Time
	if report != nil {
		reportTS = &report.UpdatedAt
	}
	add("report_ready", "Report approved", reportReady, reportTS)
	add("communicated", "Report communicated", communicated, reportTS)

	if invoice != nil {
		add("invoiced", "Invoice issued", true, &invoice.IssuedAt)
		add("paid", "Payment received", invoice.Status == model.InvoicePaid, invoice.PaidAt)
	} else {
		add("invoiced", "Invoice issued", false, nil)
		add("paid", "Payment received", false, nil)
	}
	return steps
}
