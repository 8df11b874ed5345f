package service_test

import (
	"context"
	"errors"
	"testing"

	"labtrack/internal/dto"
	"labtrack/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateReceipt() dto.CreateReceiptRequest {
	return dto.CreateReceiptRequest{
		ReceiverName:  "R. Kumar",
		ContactNumber: "+91-9000000000",
		Date:          "2026-03-14",
		Branch:        "Chennai",
		Company:       "Acme Textiles",
		CountOfBoxes:  2,
		ReceivingMode: "PERSON",
	}
}

func TestReceiptCreate_PersonAtCentral(t *testing.T) {
	svc := service.NewReceiptService(newStubReceiptRepo(), "Chennai")

	resp, err := svc.Create(context.Background(), validCreateReceipt())
	require.NoError(t, err)
	assert.Equal(t, "R. Kumar", resp.ReceiverName)
	assert.Nil(t, resp.AWBNo)
	assert.NotEmpty(t, resp.ID)
	assert.Regexp(t, `^TRK-[A-Z2-9]{10}$`, resp.TrackingNumber)
}

func TestReceiptCreate_TrackingNumbersDiffer(t *testing.T) {
	svc := service.NewReceiptService(newStubReceiptRepo(), "Chennai")

	a, err := svc.Create(context.Background(), validCreateReceipt())
	require.NoError(t, err)
	b, err := svc.Create(context.Background(), validCreateReceipt())
	require.NoError(t, err)
	assert.NotEqual(t, a.TrackingNumber, b.TrackingNumber)
}

func TestReceiptCreate_CourierWithoutAWBRejected(t *testing.T) {
	svc := service.NewReceiptService(newStubReceiptRepo(), "Chennai")

	req := validCreateReceipt()
	req.ReceivingMode = "COURIER"

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)

	fe := service.AsFieldErrors(err)
	require.NotNil(t, fe)
	assert.Contains(t, fe.Fields, "awb_no")
}

func TestReceiptCreate_BranchForwardWithoutAWBRejected(t *testing.T) {
	svc := service.NewReceiptService(newStubReceiptRepo(), "Chennai")

	req := validCreateReceipt()
	req.Branch = "Mumbai"
	req.ForwardToCentral = true

	_, err := svc.Create(context.Background(), req)
	fe := service.AsFieldErrors(err)
	require.NotNil(t, fe)
	assert.Contains(t, fe.Fields, "awb_no")

	awb := "AWB-445566"
	req.AWBNo = &awb
	resp, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "AWB-445566", *resp.AWBNo)
}

func TestReceiptUpdate_RevalidatesMergedRecord(t *testing.T) {
	repo := newStubReceiptRepo()
	svc := service.NewReceiptService(repo, "Chennai")

	resp, err := svc.Create(context.Background(), validCreateReceipt())
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	// Switching to COURIER without providing an AWB must fail
	courier := "COURIER"
	_, err = svc.Update(context.Background(), id, dto.UpdateReceiptRequest{ReceivingMode: &courier})
	fe := service.AsFieldErrors(err)
	require.NotNil(t, fe)
	assert.Contains(t, fe.Fields, "awb_no")

	// With the AWB in the same patch it goes through
	awb := "AWB-112233"
	updated, err := svc.Update(context.Background(), id, dto.UpdateReceiptRequest{
		ReceivingMode: &courier,
		AWBNo:         &awb,
	})
	require.NoError(t, err)
	assert.Equal(t, "COURIER", updated.ReceivingMode)
}

func TestReceiptGet_NotFound(t *testing.T) {
	svc := service.NewReceiptService(newStubReceiptRepo(), "Chennai")

	_, err := svc.Get(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, service.ErrNotFound))
}

func TestReceiptDelete(t *testing.T) {
	repo := newStubReceiptRepo()
	svc := service.NewReceiptService(repo, "Chennai")

	resp, err := svc.Create(context.Background(), validCreateReceipt())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), uuid.MustParse(resp.ID)))
	assert.True(t, errors.Is(svc.Delete(context.Background(), uuid.MustParse(resp.ID)), service.ErrNotFound))
}
