package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateInvoiceRequest struct {
	ReportID string          `json:"report_id" validate:"required,uuid"`
	Amount   decimal.Decimal `json:"amount"    validate:"required,gt=0"`
	// OwnerEmail: optional; when present, the PDF worker mails the invoice.
	OwnerEmail *string `json:"owner_email" validate:"omitempty,email"`
}

type UpdateInvoiceRequest struct {
	Status *string          `json:"status" validate:"omitempty,oneof=DRAFT ISSUED SENT PAID CANCELLED"`
	Amount *decimal.Decimal `json:"amount" validate:"omitempty,gt=0"`
}

// InvoiceFilter is bound from the query string of GET /v1/invoices.
type InvoiceFilter struct {
	Status   string `form:"status"    validate:"omitempty,oneof=DRAFT ISSUED SENT PAID CANCELLED"`
	ReportID string `form:"report_id" validate:"omitempty,uuid"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type InvoiceResponse struct {
	ID        string          `json:"id"`
	ReportID  string          `json:"report_id"`
	InvoiceNo string          `json:"invoice_no"`
	Status    string          `json:"status"`
	Amount    decimal.Decimal `json:"amount"`
	IssuedAt  string          `json:"issued_at"`
	PaidAt    *string         `json:"paid_at"`
	PDFUrl    *string         `json:"pdf_url"`
	CreatedAt string          `json:"created_at"`
}

type InvoiceListResponse struct {
	Data  []InvoiceResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// ApprovedReportItem feeds the invoice-creation dropdown: approved reports
// that do not have an invoice yet.
type ApprovedReportItem struct {
	ID        string  `json:"id"`
	LabTestID string  `json:"labtest_id"`
	LabDocNo  *string `json:"lab_doc_no"`
	CreatedAt string  `json:"created_at"`
}
