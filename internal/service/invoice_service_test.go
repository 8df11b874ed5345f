package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"labtrack/internal/dto"
	"labtrack/internal/model"
	"labtrack/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedReport(t *testing.T, repo *stubReportRepo, status string) uuid.UUID {
	t.Helper()
	rep := &model.Report{
		LabTestID:   uuid.New(),
		FinalStatus: status,
		CommStatus:  model.CommPending,
		CommChannel: model.ChannelEmail,
	}
	require.NoError(t, repo.Create(context.Background(), rep))
	return rep.ID
}

func TestInvoiceCreate_RequiresApprovedReport(t *testing.T) {
	reportRepo := newStubReportRepo()
	reportID := seedReport(t, reportRepo, model.FinalReadyForApproval)
	svc := service.NewInvoiceService(newStubInvoiceRepo(reportRepo), reportRepo, nil)

	_, err := svc.Create(context.Background(), dto.CreateInvoiceRequest{
		ReportID: reportID.String(),
		Amount:   decimal.NewFromInt(1500),
	})
	fe := service.AsFieldErrors(err)
	require.NotNil(t, fe)
	assert.Contains(t, fe.Fields, "report_id")
}

func TestInvoiceCreate_NumberFormatAndSequence(t *testing.T) {
	reportRepo := newStubReportRepo()
	svc := service.NewInvoiceService(newStubInvoiceRepo(reportRepo), reportRepo, nil)

	year := time.Now().UTC().Year()
	for i := 1; i <= 3; i++ {
		reportID := seedReport(t, reportRepo, model.FinalApproved)
		resp, err := svc.Create(context.Background(), dto.CreateInvoiceRequest{
			ReportID: reportID.String(),
			Amount:   decimal.NewFromInt(100),
		})
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("INV-%d-%04d", year, i), resp.InvoiceNo)
		assert.Equal(t, model.InvoiceDraft, resp.Status)
	}
}

func TestInvoiceCreate_OnePerReport(t *testing.T) {
	reportRepo := newStubReportRepo()
	reportID := seedReport(t, reportRepo, model.FinalApproved)
	svc := service.NewInvoiceService(newStubInvoiceRepo(reportRepo), reportRepo, nil)

	req := dto.CreateInvoiceRequest{
		ReportID: reportID.String(),
		Amount:   decimal.NewFromInt(100),
	}
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), req)
	fe := service.AsFieldErrors(err)
	require.NotNil(t, fe)
	assert.Contains(t, fe.Fields, "report_id")
}

func TestInvoiceCreate_AmountMustBePositive(t *testing.T) {
	reportRepo := newStubReportRepo()
	reportID := seedReport(t, reportRepo, model.FinalApproved)
	svc := service.NewInvoiceService(newStubInvoiceRepo(reportRepo), reportRepo, nil)

	_, err := svc.Create(context.Background(), dto.CreateInvoiceRequest{
		ReportID: reportID.String(),
		Amount:   decimal.Zero,
	})
	fe := service.AsFieldErrors(err)
	require.NotNil(t, fe)
	assert.Contains(t, fe.Fields, "amount")

	// The smallest positive amount is accepted
	resp, err := svc.Create(context.Background(), dto.CreateInvoiceRequest{
		ReportID: reportID.String(),
		Amount:   decimal.RequireFromString("0.01"),
	})
	require.NoError(t, err)
	assert.True(t, resp.Amount.Equal(decimal.RequireFromString("0.01")))
}

func TestInvoiceLifecycle_PaidStampsTimestamp(t *testing.T) {
	reportRepo := newStubReportRepo()
	reportID := seedReport(t, reportRepo, model.FinalApproved)
	svc := service.NewInvoiceService(newStubInvoiceRepo(reportRepo), reportRepo, nil)

	created, err := svc.Create(context.Background(), dto.CreateInvoiceRequest{
		ReportID: reportID.String(),
		Amount:   decimal.NewFromInt(2500),
	})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	issued := model.InvoiceIssued
	_, err = svc.Update(context.Background(), id, dto.UpdateInvoiceRequest{Status: &issued})
	require.NoError(t, err)
	sent := model.InvoiceSent
	_, err = svc.Update(context.Background(), id, dto.UpdateInvoiceRequest{Status: &sent})
	require.NoError(t, err)

	// No moving backward
	_, err = svc.Update(context.Background(), id, dto.UpdateInvoiceRequest{Status: &issued})
	fe := service.AsFieldErrors(err)
	require.NotNil(t, fe)
	assert.Contains(t, fe.Fields, "status")

	paid, err := svc.MarkPaid(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, model.InvoicePaid, paid.Status)
	require.NotNil(t, paid.PaidAt)

	// Terminal: no way out of PAID
	cancelled := model.InvoiceCancelled
	_, err = svc.Update(context.Background(), id, dto.UpdateInvoiceRequest{Status: &cancelled})
	require.Error(t, err)

	// Amount edits on a settled invoice are rejected
	amt := decimal.NewFromInt(99)
	_, err = svc.Update(context.Background(), id, dto.UpdateInvoiceRequest{Amount: &amt})
	require.Error(t, err)
}

func TestInvoiceMarkPaid_FromDraft(t *testing.T) {
	reportRepo := newStubReportRepo()
	reportID := seedReport(t, reportRepo, model.FinalApproved)
	svc := service.NewInvoiceService(newStubInvoiceRepo(reportRepo), reportRepo, nil)

	created, err := svc.Create(context.Background(), dto.CreateInvoiceRequest{
		ReportID: reportID.String(),
		Amount:   decimal.NewFromInt(800),
	})
	require.NoError(t, err)
	require.Equal(t, model.InvoiceDraft, created.Status)

	// Mark Paid works without passing through ISSUED or SENT
	paid, err := svc.MarkPaid(context.Background(), uuid.MustParse(created.ID))
	require.NoError(t, err)
	assert.Equal(t, model.InvoicePaid, paid.Status)
	require.NotNil(t, paid.PaidAt)
}

func TestInvoiceApprovedReports(t *testing.T) {
	reportRepo := newStubReportRepo()
	approvedID := seedReport(t, reportRepo, model.FinalApproved)
	seedReport(t, reportRepo, model.FinalDraft)
	svc := service.NewInvoiceService(newStubInvoiceRepo(reportRepo), reportRepo, nil)

	items, err := svc.ApprovedReports(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, approvedID.String(), items[0].ID)

	// Once invoiced the report drops off the list
	_, err = svc.Create(context.Background(), dto.CreateInvoiceRequest{
		ReportID: approvedID.String(),
		Amount:   decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	items, err = svc.ApprovedReports(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}
