package service_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"labtrack/internal/dto"
	"labtrack/internal/model"
	"labtrack/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

var errStubNotFound = errors.New("not found")

// stubReceiptRepo is an in-memory ReceiptRepository for testing.
type stubReceiptRepo struct {
	receipts map[uuid.UUID]*model.Receipt
}

func newStubReceiptRepo() *stubReceiptRepo {
	return &stubReceiptRepo{receipts: make(map[uuid.UUID]*model.Receipt)}
}

func (r *stubReceiptRepo) Create(_ context.Context, rec *model.Receipt) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	rec.CreatedAt = time.Now().UTC()
	rec.UpdatedAt = rec.CreatedAt
	r.receipts[rec.ID] = rec
	return nil
}

func (r *stubReceiptRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Receipt, error) {
	rec, ok := r.receipts[id]
	if !ok {
		return nil, errStubNotFound
	}
	return rec, nil
}

func (r *stubReceiptRepo) FindByAWB(_ context.Context, awb string) (*model.Receipt, error) {
	for _, rec := range r.receipts {
		if rec.AWBNo != nil && *rec.AWBNo == awb {
			return rec, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubReceiptRepo) FindByTrackingNumber(_ context.Context, trackingNo string) (*model.Receipt, error) {
	for _, rec := range r.receipts {
		if rec.TrackingNumber == trackingNo {
			return rec, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubReceiptRepo) List(_ context.Context, _ dto.ReceiptFilter) ([]model.Receipt, int64, error) {
	out := make([]model.Receipt, 0, len(r.receipts))
	for _, rec := range r.receipts {
		out = append(out, *rec)
	}
	return out, int64(len(out)), nil
}

func (r *stubReceiptRepo) Update(_ context.Context, rec *model.Receipt) error {
	rec.UpdatedAt = time.Now().UTC()
	r.receipts[rec.ID] = rec
	return nil
}

func (r *stubReceiptRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.receipts[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.receipts, id)
	return nil
}

func (r *stubReceiptRepo) Stats(_ context.Context) (*dto.ReceiptStatsResponse, error) {
	return &dto.ReceiptStatsResponse{TotalReceipts: int64(len(r.receipts))}, nil
}

var _ repository.ReceiptRepository = (*stubReceiptRepo)(nil)

// stubLabTestRepo is an in-memory LabTestRepository for testing.
type stubLabTestRepo struct {
	tests     map[uuid.UUID]*model.LabTest
	transfers []model.LabTransfer
}

func newStubLabTestRepo() *stubLabTestRepo {
	return &stubLabTestRepo{tests: make(map[uuid.UUID]*model.LabTest)}
}

func (r *stubLabTestRepo) Create(_ context.Context, t *model.LabTest) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.CreatedAt = time.Now().UTC()
	t.UpdatedAt = t.CreatedAt
	r.tests[t.ID] = t
	return nil
}

func (r *stubLabTestRepo) FindByID(_ context.Context, id uuid.UUID) (*model.LabTest, error) {
	t, ok := r.tests[id]
	if !ok {
		return nil, errStubNotFound
	}
	return t, nil
}

func (r *stubLabTestRepo) FindByIDWithTransfers(ctx context.Context, id uuid.UUID) (*model.LabTest, error) {
	t, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Transfers = nil
	for _, tr := range r.transfers {
		if tr.LabTestID == id {
			t.Transfers = append(t.Transfers, tr)
		}
	}
	return t, nil
}

func (r *stubLabTestRepo) List(_ context.Context, _ dto.LabTestFilter) ([]model.LabTest, int64, error) {
	out := make([]model.LabTest, 0, len(r.tests))
	for _, t := range r.tests {
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

func (r *stubLabTestRepo) ListByReceiptID(_ context.Context, receiptID uuid.UUID) ([]model.LabTest, error) {
	var out []model.LabTest
	for _, t := range r.tests {
		if t.ReceiptID == receiptID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *stubLabTestRepo) Update(_ context.Context, t *model.LabTest) error {
	t.UpdatedAt = time.Now().UTC()
	r.tests[t.ID] = t
	return nil
}

func (r *stubLabTestRepo) DocNoExistsInBranch(_ context.Context, labDocNo, _ string) (bool, error) {
	for _, t := range r.tests {
		if t.LabDocNo == labDocNo {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubLabTestRepo) Transfer(_ context.Context, t *model.LabTest, tr *model.LabTransfer) error {
	if tr.ID == uuid.Nil {
		tr.ID = uuid.New()
	}
	tr.TransferredAt = time.Now().UTC()
	r.transfers = append(r.transfers, *tr)
	r.tests[t.ID] = t
	return nil
}

var _ repository.LabTestRepository = (*stubLabTestRepo)(nil)

// stubReportRepo is an in-memory ReportRepository for testing.
type stubReportRepo struct {
	reports  map[uuid.UUID]*model.Report
	invoiced map[uuid.UUID]bool
}

func newStubReportRepo() *stubReportRepo {
	return &stubReportRepo{
		reports:  make(map[uuid.UUID]*model.Report),
		invoiced: make(map[uuid.UUID]bool),
	}
}

func (r *stubReportRepo) Create(_ context.Context, rep *model.Report) error {
	if rep.ID == uuid.Nil {
		rep.ID = uuid.New()
	}
	rep.CreatedAt = time.Now().UTC()
	rep.UpdatedAt = rep.CreatedAt
	r.reports[rep.ID] = rep
	return nil
}

func (r *stubReportRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Report, error) {
	rep, ok := r.reports[id]
	if !ok {
		return nil, errStubNotFound
	}
	return rep, nil
}

func (r *stubReportRepo) FindByLabTestID(_ context.Context, labTestID uuid.UUID) (*model.Report, error) {
	for _, rep := range r.reports {
		if rep.LabTestID == labTestID {
			return rep, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubReportRepo) List(_ context.Context, _ dto.ReportFilter) ([]model.Report, int64, error) {
	out := make([]model.Report, 0, len(r.reports))
	for _, rep := range r.reports {
		out = append(out, *rep)
	}
	return out, int64(len(out)), nil
}

func (r *stubReportRepo) Update(_ context.Context, rep *model.Report) error {
	rep.UpdatedAt = time.Now().UTC()
	r.reports[rep.ID] = rep
	return nil
}

func (r *stubReportRepo) ApprovedWithoutInvoice(_ context.Context) ([]model.Report, error) {
	var out []model.Report
	for _, rep := range r.reports {
		if rep.FinalStatus == model.FinalApproved && !r.invoiced[rep.ID] {
			out = append(out, *rep)
		}
	}
	return out, nil
}

var _ repository.ReportRepository = (*stubReportRepo)(nil)

// stubInvoiceRepo is an in-memory InvoiceRepository with a per-year sequence.
type stubInvoiceRepo struct {
	invoices map[uuid.UUID]*model.Invoice
	seq      int
	reports  *stubReportRepo
}

func newStubInvoiceRepo(reports *stubReportRepo) *stubInvoiceRepo {
	return &stubInvoiceRepo{invoices: make(map[uuid.UUID]*model.Invoice), reports: reports}
}

func (r *stubInvoiceRepo) CreateWithNumber(_ context.Context, inv *model.Invoice) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	r.seq++
	inv.InvoiceNo = fmt.Sprintf("INV-%d-%04d", time.Now().UTC().Year(), r.seq)
	inv.IssuedAt = time.Now().UTC()
	inv.CreatedAt = inv.IssuedAt
	r.invoices[inv.ID] = inv
	if r.reports != nil {
		r.reports.invoiced[inv.ReportID] = true
	}
	return nil
}

func (r *stubInvoiceRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, errStubNotFound
	}
	return inv, nil
}

func (r *stubInvoiceRepo) FindByInvoiceNo(_ context.Context, invoiceNo string) (*model.Invoice, error) {
	for _, inv := range r.invoices {
		if inv.InvoiceNo == invoiceNo {
			return inv, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubInvoiceRepo) FindByReportID(_ context.Context, reportID uuid.UUID) (*model.Invoice, error) {
	for _, inv := range r.invoices {
		if inv.ReportID == reportID {
			return inv, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubInvoiceRepo) List(_ context.Context, _ dto.InvoiceFilter) ([]model.Invoice, int64, error) {
	out := make([]model.Invoice, 0, len(r.invoices))
	for _, inv := range r.invoices {
		out = append(out, *inv)
	}
	return out, int64(len(out)), nil
}

func (r *stubInvoiceRepo) Update(_ context.Context, inv *model.Invoice) error {
	inv.UpdatedAt = time.Now().UTC()
	r.invoices[inv.ID] = inv
	return nil
}

var _ repository.InvoiceRepository = (*stubInvoiceRepo)(nil)

// stubUserRepo is an in-memory UserRepository for auth tests.
type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errStubNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubUserRepo) List(_ context.Context, includeInactive bool) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		if u.Active || includeInactive {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	return r.setActive(id, false)
}

func (r *stubUserRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	return r.setActive(id, true)
}

func (r *stubUserRepo) setActive(id uuid.UUID, active bool) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Active = active
	return nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)
