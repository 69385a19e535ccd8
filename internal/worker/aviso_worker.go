package worker

// aviso_worker.go
// Processes expiry-notice jobs from QueueAvisos: one summary email per
// owning user listing their forms about to expire.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexpardox/mercaproject/internal/infra"

	"github.com/rs/zerolog/log"
)

// AvisoJobPayload is the job envelope sent to QueueAvisos.
type AvisoJobPayload struct {
	ToEmail string `json:"to_email"`
	Usuario string `json:"usuario"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// AvisoWorker sends expiry-notice emails via SMTP.
type AvisoWorker struct {
	mailer *infra.Mailer
}

func NewAvisoWorker(mailer *infra.Mailer) *AvisoWorker {
	return &AvisoWorker{mailer: mailer}
}

// Process sends the summary email. A returned error triggers the pool's
// retry and DLQ handling.
func (w *AvisoWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload AvisoJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("aviso_worker: invalid payload")
		return nil // malformed payloads never succeed, do not retry
	}
	if payload.ToEmail == "" {
		log.Warn().Str("usuario", payload.Usuario).Msg("aviso_worker: empty to_email — skipping")
		return nil
	}

	if err := w.mailer.SendAvisoVencimiento(payload.ToEmail, payload.Subject, payload.Body, ""); err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("aviso_worker: failed to send email")
		return fmt.Errorf("aviso_worker: send to %s: %w", payload.ToEmail, err)
	}
	log.Info().Str("to", payload.ToEmail).Msg("aviso_worker: aviso sent")
	return nil
}
