package service_test

import (
	"context"
	"testing"

	"labtrack/internal/dto"
	"labtrack/internal/model"
	"labtrack/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTrackingSvc() (service.TrackingService, *stubReceiptRepo, *stubLabTestRepo, *stubReportRepo, *stubInvoiceRepo) {
	receiptRepo := newStubReceiptRepo()
	labRepo := newStubLabTestRepo()
	reportRepo := newStubReportRepo()
	invoiceRepo := newStubInvoiceRepo(reportRepo)
	svc := service.NewTrackingService(receiptRepo, labRepo, reportRepo, invoiceRepo)
	return svc, receiptRepo, labRepo, reportRepo, invoiceRepo
}

func TestTrack_ExactlyOneLookupKey(t *testing.T) {
	svc, _, _, _, _ := buildTrackingSvc()

	_, err := svc.Track(context.Background(), dto.TrackFilter{})
	require.Error(t, err)
	require.NotNil(t, service.AsFieldErrors(err))

	_, err = svc.Track(context.Background(), dto.TrackFilter{AWB: "A", Receipt: uuid.NewString()})
	require.Error(t, err)
	require.NotNil(t, service.AsFieldErrors(err))
}

func TestTrack_ByAWB_FullChain(t *testing.T) {
	svc, receiptRepo, labRepo, reportRepo, invoiceRepo := buildTrackingSvc()

	awb := "AWB-900100"
	rec := &model.Receipt{
		ReceiverName:     "R. Kumar",
		ContactNumber:    "+91-9000000000",
		ReceiptDate:      "2026-03-14",
		Branch:           "Mumbai",
		Company:          "Acme Textiles",
		CountBoxes:       1,
		ReceivingMode:    model.ReceivingModeCourier,
		ForwardToCentral: true,
		AWBNo:            &awb,
	}
	require.NoError(t, receiptRepo.Create(context.Background(), rec))

	lt := &model.LabTest{
		ReceiptID:       rec.ID,
		LabDocNo:        "LD-500",
		LabPerson:       "alice",
		TestStatus:      model.TestCompleted,
		LabReportStatus: model.LabReportSignedOff,
	}
	require.NoError(t, labRepo.Create(context.Background(), lt))

	approver := "J. Smith"
	rep := &model.Report{
		LabTestID:   lt.ID,
		FinalStatus: model.FinalApproved,
		ApprovedBy:  &approver,
		CommStatus:  model.CommDispatched,
		CommChannel: model.ChannelEmail,
	}
	require.NoError(t, reportRepo.Create(context.Background(), rep))

	inv := &model.Invoice{
		ReportID: rep.ID,
		Status:   model.InvoiceSent,
		Amount:   decimal.NewFromInt(3000),
	}
	require.NoError(t, invoiceRepo.CreateWithNumber(context.Background(), inv))

	resp, err := svc.Track(context.Background(), dto.TrackFilter{AWB: awb})
	require.NoError(t, err)

	assert.Equal(t, rec.ID.String(), resp.ReceiptInfo.ID)
	assert.Equal(t, "invoiced", resp.CurrentStep)

	byKey := make(map[string]dto.TimelineStep)
	for _, step := range resp.Timeline {
		byKey[step.Key] = step
	}
	assert.True(t, byKey["received"].Done)
	assert.True(t, byKey["forwarded"].Done)
	assert.True(t, byKey["completed"].Done)
	assert.True(t, byKey["report_ready"].Done)
	assert.True(t, byKey["communicated"].Done)
	assert.True(t, byKey["invoiced"].Done)
	assert.False(t, byKey["paid"].Done)
	assert.True(t, byKey["invoiced"].Current)
}

func TestTrack_ByInvoiceNo(t *testing.T) {
	svc, receiptRepo, labRepo, reportRepo, invoiceRepo := buildTrackingSvc()

	rec := &model.Receipt{
		ReceiverName:  "R. Kumar",
		ContactNumber: "+91-9000000000",
		ReceiptDate:   "2026-03-14",
		Branch:        "Chennai",
		Company:       "Acme Textiles",
		CountBoxes:    1,
		ReceivingMode: model.ReceivingModePerson,
	}
	require.NoError(t, receiptRepo.Create(context.Background(), rec))

	lt := &model.LabTest{
		ReceiptID:  rec.ID,
		LabDocNo:   "LD-501",
		LabPerson:  "alice",
		TestStatus: model.TestCompleted,
	}
	require.NoError(t, labRepo.Create(context.Background(), lt))

	rep := &model.Report{LabTestID: lt.ID, FinalStatus: model.FinalApproved}
	require.NoError(t, reportRepo.Create(context.Background(), rep))
	rep.LabTest = lt

	inv := &model.Invoice{ReportID: rep.ID, Status: model.InvoicePaid, Amount: decimal.NewFromInt(100)}
	now := inv.IssuedAt
	inv.PaidAt = &now
	require.NoError(t, invoiceRepo.CreateWithNumber(context.Background(), inv))

	resp, err := svc.Track(context.Background(), dto.TrackFilter{Invoice: inv.InvoiceNo})
	require.NoError(t, err)
	assert.Equal(t, rec.ID.String(), resp.ReceiptInfo.ID)
	assert.Equal(t, "paid", resp.CurrentStep)
}

func TestTrack_ReceiptOnlyChain(t *testing.T) {
	svc, receiptRepo, _, _, _ := buildTrackingSvc()

	rec := &model.Receipt{
		ReceiverName:   "R. Kumar",
		ContactNumber:  "+91-9000000000",
		ReceiptDate:    "2026-03-14",
		Branch:         "Chennai",
		Company:        "Acme Textiles",
		CountBoxes:     1,
		ReceivingMode:  model.ReceivingModePerson,
		TrackingNumber: "TRK-ABCDEF2345",
	}
	require.NoError(t, receiptRepo.Create(context.Background(), rec))

	resp, err := svc.Track(context.Background(), dto.TrackFilter{Receipt: rec.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, "received", resp.CurrentStep)

	for _, step := range resp.Timeline {
		if step.Key != "received" {
			assert.False(t, step.Done, "step %s should be pending", step.Key)
		}
	}

	// The public tracking number resolves the same receipt
	byTracking, err := svc.Track(context.Background(), dto.TrackFilter{Tracking: "TRK-ABCDEF2345"})
	require.NoError(t, err)
	assert.Equal(t, rec.ID.String(), byTracking.ReceiptInfo.ID)
	assert.Equal(t, "TRK-ABCDEF2345", byTracking.ReceiptInfo.TrackingNumber)
}

func TestTrack_UnknownAWB(t *testing.T) {
	svc, _, _, _, _ := buildTrackingSvc()

	_, err := svc.Track(context.Background(), dto.TrackFilter{AWB: "AWB-MISSING"})
	assert.ErrorIs(t, err, service.ErrNotFound)
}
