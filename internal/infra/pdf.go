package infra

// pdf.go - invoice PDF rendering using go-pdf/fpdf.
// A5 layout: lab letterhead, invoice number and dates, the lab document
// reference, amount, and payment status. The output file is saved to
// storagePath/invoice_{invoice_no}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"labtrack/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateInvoicePDF renders an invoice and returns the absolute path of the
// generated file. labDocNo may be empty when the joined lab test is missing.
func GenerateInvoicePDF(inv *model.Invoice, labDocNo, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("invoice_%s.pdf", inv.InvoiceNo)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "LabTrack Laboratories", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Tax Invoice", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Invoice info ──────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Invoice %s", inv.InvoiceNo), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Issued: %s", inv.IssuedAt.Format("02 Jan 2006")), "", 1, "L", false, 0, "")
	if labDocNo != "" {
		pdf.CellFormat(contentW, 5, fmt.Sprintf("Lab document: %s", labDocNo), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(3)

	// ── Amount ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW*0.6, 7, "Laboratory testing services", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW*0.4, 7, inv.Amount.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.Ln(2)

	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW*0.6, 8, "TOTAL", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.4, 8, inv.Amount.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.Ln(4)

	// ── Status footer ─────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 9)
	status := fmt.Sprintf("Status: %s", inv.Status)
	if inv.PaidAt != nil {
		status = fmt.Sprintf("Status: PAID on %s", inv.PaidAt.Format("02 Jan 2006"))
	}
	pdf.CellFormat(contentW, 5, status, "", 1, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}
