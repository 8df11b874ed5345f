package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"labtrack/internal/dto"
	"labtrack/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakySender fails the first n sends, then succeeds.
type flakySender struct {
	failures int
	calls    int
}

func (s *flakySender) Send(_, _, _, _ string) error {
	s.calls++
	if s.calls <= s.failures {
		return errors.New("smtp unavailable")
	}
	return nil
}

func emailJob(t *testing.T, to string) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(EmailJobPayload{
		ToEmail: to,
		Subject: "Invoice INV-2026-0001",
		Body:    "Please find attached.",
	})
	require.NoError(t, err)
	return raw
}

func TestEmailWorker_RetriesTransientFailures(t *testing.T) {
	sender := &flakySender{failures: 2}
	w := &EmailWorker{mailer: sender}

	err := w.Process(context.Background(), emailJob(t, "owner@acme.test"))
	require.NoError(t, err)
	assert.Equal(t, maxJobAttempts, sender.calls)
}

func TestEmailWorker_GivesUpAfterMaxAttempts(t *testing.T) {
	sender := &flakySender{failures: 100}
	w := &EmailWorker{mailer: sender}

	err := w.Process(context.Background(), emailJob(t, "owner@acme.test"))
	require.Error(t, err)
	assert.Equal(t, maxJobAttempts, sender.calls)
}

func TestEmailWorker_RejectsMissingRecipient(t *testing.T) {
	sender := &flakySender{}
	w := &EmailWorker{mailer: sender}

	err := w.Process(context.Background(), emailJob(t, ""))
	require.Error(t, err)
	assert.Zero(t, sender.calls)
}

// fakeInvoiceStore holds a single invoice for the PDF worker tests.
type fakeInvoiceStore struct {
	inv     *model.Invoice
	updated bool
}

func (f *fakeInvoiceStore) CreateWithNumber(context.Context, *model.Invoice) error { return nil }

func (f *fakeInvoiceStore) FindByID(_ context.Context, id uuid.UUID) (*model.Invoice, error) {
	if f.inv != nil && f.inv.ID == id {
		return f.inv, nil
	}
	return nil, errors.New("not found")
}

func (f *fakeInvoiceStore) FindByInvoiceNo(context.Context, string) (*model.Invoice, error) {
	return nil, errors.New("not found")
}

func (f *fakeInvoiceStore) FindByReportID(context.Context, uuid.UUID) (*model.Invoice, error) {
	return nil, errors.New("not found")
}

func (f *fakeInvoiceStore) List(context.Context, dto.InvoiceFilter) ([]model.Invoice, int64, error) {
	return nil, 0, nil
}

func (f *fakeInvoiceStore) Update(_ context.Context, inv *model.Invoice) error {
	f.updated = true
	f.inv = inv
	return nil
}

func pdfJob(t *testing.T, invoiceID string) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(InvoicePDFJobPayload{InvoiceID: invoiceID})
	require.NoError(t, err)
	return raw
}

func TestInvoicePDFWorker_PersistsRenderedPath(t *testing.T) {
	inv := &model.Invoice{ID: uuid.New(), InvoiceNo: "INV-2026-0001"}
	store := &fakeInvoiceStore{inv: inv}
	w := &InvoicePDFWorker{
		invoiceRepo: store,
		render: func(_ *model.Invoice, _, _ string) (string, error) {
			return "/data/pdf/invoice_INV-2026-0001.pdf", nil
		},
	}

	require.NoError(t, w.Process(context.Background(), pdfJob(t, inv.ID.String())))
	assert.True(t, store.updated)
	require.NotNil(t, inv.PDFPath)
	assert.Equal(t, "/data/pdf/invoice_INV-2026-0001.pdf", *inv.PDFPath)
}

func TestInvoicePDFWorker_RenderExhaustionFails(t *testing.T) {
	inv := &model.Invoice{ID: uuid.New(), InvoiceNo: "INV-2026-0002"}
	store := &fakeInvoiceStore{inv: inv}
	attempts := 0
	w := &InvoicePDFWorker{
		invoiceRepo: store,
		render: func(_ *model.Invoice, _, _ string) (string, error) {
			attempts++
			return "", errors.New("disk full")
		},
	}

	err := w.Process(context.Background(), pdfJob(t, inv.ID.String()))
	require.Error(t, err)
	assert.Equal(t, maxJobAttempts, attempts)
	assert.False(t, store.updated)
	assert.Nil(t, inv.PDFPath)
}

func TestInvoicePDFWorker_UnknownInvoiceFails(t *testing.T) {
	w := &InvoicePDFWorker{invoiceRepo: &fakeInvoiceStore{}}

	err := w.Process(context.Background(), pdfJob(t, uuid.NewString()))
	require.Error(t, err)
}
