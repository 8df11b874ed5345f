package worker

// email_worker.go
// Processes email jobs from QueueEmail: OTP codes, report communication
// notices, and invoice PDFs, all via SMTP.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"labtrack/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail    string `json:"to_email"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	AttachPath string `json:"attach_path,omitempty"`
}

// mailSender is the slice of infra.Mailer the worker needs.
type mailSender interface {
	Send(to, subject, body, attachPath string) error
}

// EmailWorker sends queued emails via SMTP.
type EmailWorker struct {
	mailer mailSender
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

// Process sends a single email, with attachment when present. SMTP failures
// are retried with backoff; a non-nil return moves the job to the dead
// letter queue.
func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	if payload.ToEmail == "" {
		return errors.New("email job has no to_email")
	}

	err := withRetry(ctx, maxJobAttempts, func(attempt int) error {
		if err := w.mailer.Send(payload.ToEmail, payload.Subject, payload.Body, payload.AttachPath); err != nil {
			log.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Str("to", payload.ToEmail).
				Msg("email_worker: send attempt failed, retrying")
			return err
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("send email to %s: %w", payload.ToEmail, err)
	}
	log.Info().Str("to", payload.ToEmail).Msg("email_worker: email sent")
	return nil
}
