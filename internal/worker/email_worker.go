package worker

// email_worker.go
// Sends e-mails from QueueEmail through the SMTP mailer, guarded by a circuit breaker.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"tavola/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job body sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail        string `json:"to_email"`
	Subject        string `json:"subject"`
	Body           string `json:"body"`
	AttachmentPath string `json:"attachment_path,omitempty"`
}

// Sender is satisfied by *infra.Mailer.
type Sender interface {
	Send(to, subject, body, attachmentPath string) error
}

type EmailWorker struct {
	sender  Sender
	breaker *infra.CircuitBreaker
}

func NewEmailWorker(sender Sender, breaker *infra.CircuitBreaker) *EmailWorker {
	return &EmailWorker{sender: sender, breaker: breaker}
}

// Process sends one e-mail. Malformed payloads and a disabled mailer are
// dropped; send failures are returned so the pool retries them.
func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return nil
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email, skipping")
		return nil
	}

	// A disabled mailer is not an SMTP failure and must not trip the breaker
	disabled := false
	err := w.breaker.Execute(func() error {
		sendErr := w.sender.Send(payload.ToEmail, payload.Subject, payload.Body, payload.AttachmentPath)
		if errors.Is(sendErr, infra.ErrMailerDisabled) {
			disabled = true
			return nil
		}
		return sendErr
	})
	switch {
	case err != nil:
		return fmt.Errorf("send to %s: %w", payload.ToEmail, err)
	case disabled:
		log.Warn().Str("to", payload.ToEmail).Msg("email_worker: SMTP not configured, dropping")
		return nil
	default:
		log.Info().Str("to", payload.ToEmail).Str("subject", payload.Subject).Msg("email_worker: sent")
		return nil
	}
}
