package service_test

import (
	"context"
	"testing"

	"labtrack/internal/dto"
	"labtrack/internal/model"
	"labtrack/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedLabTest(t *testing.T, repo *stubLabTestRepo) uuid.UUID {
	t.Helper()
	lt := &model.LabTest{
		ReceiptID:       uuid.New(),
		LabDocNo:        "LD-100",
		LabPerson:       "alice",
		TestStatus:      model.TestCompleted,
		LabReportStatus: model.LabReportSignedOff,
	}
	require.NoError(t, repo.Create(context.Background(), lt))
	return lt.ID
}

func TestReportCreate_OnePerLabTest(t *testing.T) {
	labRepo := newStubLabTestRepo()
	labTestID := seedLabTest(t, labRepo)
	svc := service.NewReportService(newStubReportRepo(), labRepo)

	req := dto.CreateReportRequest{LabTestID: labTestID.String()}
	resp, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, model.FinalDraft, resp.FinalStatus)
	assert.Equal(t, model.CommPending, resp.CommStatus)

	_, err = svc.Create(context.Background(), req)
	fe := service.AsFieldErrors(err)
	require.NotNil(t, fe)
	assert.Contains(t, fe.Fields, "labtest_id")
}

func TestReportCreate_MissingLabTest(t *testing.T) {
	svc := service.NewReportService(newStubReportRepo(), newStubLabTestRepo())

	_, err := svc.Create(context.Background(), dto.CreateReportRequest{LabTestID: uuid.NewString()})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestReportApprove_Flow(t *testing.T) {
	labRepo := newStubLabTestRepo()
	labTestID := seedLabTest(t, labRepo)
	svc := service.NewReportService(newStubReportRepo(), labRepo)

	created, err := svc.Create(context.Background(), dto.CreateReportRequest{LabTestID: labTestID.String()})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	// Approving a DRAFT is rejected
	_, err = svc.Approve(context.Background(), id, dto.ApproveReportRequest{ApprovedBy: "J. Smith"})
	fe := service.AsFieldErrors(err)
	require.NotNil(t, fe)
	assert.Contains(t, fe.Fields, "approved_by")

	ready := model.FinalReadyForApproval
	_, err = svc.Update(context.Background(), id, dto.UpdateReportRequest{FinalStatus: &ready})
	require.NoError(t, err)

	// Approver name is mandatory
	_, err = svc.Approve(context.Background(), id, dto.ApproveReportRequest{})
	require.Error(t, err)

	resp, err := svc.Approve(context.Background(), id, dto.ApproveReportRequest{ApprovedBy: "J. Smith"})
	require.NoError(t, err)
	assert.Equal(t, model.FinalApproved, resp.FinalStatus)
	require.NotNil(t, resp.ApprovedBy)
	assert.Equal(t, "J. Smith", *resp.ApprovedBy)

	// Approving twice is rejected
	_, err = svc.Approve(context.Background(), id, dto.ApproveReportRequest{ApprovedBy: "J. Smith"})
	require.Error(t, err)
}

func TestReportUpdate_ApprovedViaGenericUpdateBlocked(t *testing.T) {
	labRepo := newStubLabTestRepo()
	labTestID := seedLabTest(t, labRepo)
	svc := service.NewReportService(newStubReportRepo(), labRepo)

	created, err := svc.Create(context.Background(), dto.CreateReportRequest{LabTestID: labTestID.String()})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	ready := model.FinalReadyForApproval
	_, err = svc.Update(context.Background(), id, dto.UpdateReportRequest{FinalStatus: &ready})
	require.NoError(t, err)

	// Going to APPROVED without an approver must use the approve action
	approved := model.FinalApproved
	_, err = svc.Update(context.Background(), id, dto.UpdateReportRequest{FinalStatus: &approved})
	fe := service.AsFieldErrors(err)
	require.NotNil(t, fe)
	assert.Contains(t, fe.Fields, "final_status")
}

func TestReportUpdate_CommunicationFields(t *testing.T) {
	labRepo := newStubLabTestRepo()
	labTestID := seedLabTest(t, labRepo)
	svc := service.NewReportService(newStubReportRepo(), labRepo)

	created, err := svc.Create(context.Background(), dto.CreateReportRequest{LabTestID: labTestID.String()})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	dispatched := model.CommDispatched
	courier := model.ChannelCourier
	toAccounts := true
	resp, err := svc.Update(context.Background(), id, dto.UpdateReportRequest{
		CommStatus:             &dispatched,
		CommChannel:            &courier,
		CommunicatedToAccounts: &toAccounts,
	})
	require.NoError(t, err)
	assert.Equal(t, model.CommDispatched, resp.CommStatus)
	assert.Equal(t, model.ChannelCourier, resp.CommChannel)
	assert.True(t, resp.CommunicatedToAccounts)
}
