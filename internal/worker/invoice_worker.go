package worker

// invoice_worker.go
// Processes invoice rendering jobs from QueueInvoicePDF.
// Renders the PDF with go-pdf/fpdf, stores the path on the invoice record,
// then chains an email job when the owner asked for email delivery.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"labtrack/internal/infra"
	"labtrack/internal/model"
	"labtrack/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// InvoicePDFJobPayload is the job envelope sent to QueueInvoicePDF.
type InvoicePDFJobPayload struct {
	InvoiceID  string  `json:"invoice_id"`
	LabDocNo   string  `json:"lab_doc_no,omitempty"`
	OwnerEmail *string `json:"owner_email,omitempty"`
}

// InvoicePDFWorker renders invoice PDFs and persists the file path.
type InvoicePDFWorker struct {
	invoiceRepo    repository.InvoiceRepository
	dispatcher     *Dispatcher
	pdfStoragePath string
	render         func(inv *model.Invoice, labDocNo, dir string) (string, error)
}

func NewInvoicePDFWorker(invoiceRepo repository.InvoiceRepository, dispatcher *Dispatcher, pdfStoragePath string) *InvoicePDFWorker {
	return &InvoicePDFWorker{
		invoiceRepo:    invoiceRepo,
		dispatcher:     dispatcher,
		pdfStoragePath: pdfStoragePath,
		render:         infra.GenerateInvoicePDF,
	}
}

// Process handles a single rendering job:
//  1. Parse InvoicePDFJobPayload from the job envelope
//  2. Fetch the invoice from DB
//  3. Render the PDF with retry (transient FS failures)
//  4. Store pdf_path on the invoice
//  5. Optionally enqueue an email job with the PDF attached
//
// A non-nil return moves the job to the dead letter queue.
func (w *InvoicePDFWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload InvoicePDFJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}

	invoiceID, err := uuid.Parse(payload.InvoiceID)
	if err != nil {
		return fmt.Errorf("invalid invoice_id %q: %w", payload.InvoiceID, err)
	}

	inv, err := w.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return fmt.Errorf("invoice %s not found: %w", payload.InvoiceID, err)
	}

	var pdfPath string
	renderErr := withRetry(ctx, maxJobAttempts, func(attempt int) error {
		p, err := w.render(inv, payload.LabDocNo, w.pdfStoragePath)
		if err != nil {
			log.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Str("invoice_no", inv.InvoiceNo).
				Msg("invoice_worker: render attempt failed, retrying")
			return err
		}
		pdfPath = p
		return nil
	})
	if renderErr != nil {
		return fmt.Errorf("render invoice %s: %w", inv.InvoiceNo, renderErr)
	}

	inv.PDFPath = &pdfPath
	if err := w.invoiceRepo.Update(ctx, inv); err != nil {
		return fmt.Errorf("persist pdf path for invoice %s: %w", inv.InvoiceNo, err)
	}
	log.Info().Str("pdf", pdfPath).Str("invoice_no", inv.InvoiceNo).Msg("invoice_worker: PDF generated")

	// The PDF is already rendered and persisted; a failed enqueue is not
	// worth re-running the whole job.
	if payload.OwnerEmail != nil && *payload.OwnerEmail != "" {
		emailJob := EmailJobPayload{
			ToEmail:    *payload.OwnerEmail,
			Subject:    fmt.Sprintf("Invoice %s - LabTrack Laboratories", inv.InvoiceNo),
			Body:       fmt.Sprintf("Please find attached invoice %s for amount %s.", inv.InvoiceNo, inv.Amount.StringFixed(2)),
			AttachPath: pdfPath,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Warn().Err(err).Str("email", *payload.OwnerEmail).Msg("invoice_worker: failed to enqueue email")
		} else {
			log.Info().Str("email", *payload.OwnerEmail).Msg("invoice_worker: email job enqueued")
		}
	}
	return nil
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
