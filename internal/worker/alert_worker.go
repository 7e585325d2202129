package worker

// alert_worker.go
// Processes low-stock alert jobs from QueueAlerts and notifies the
// configured shop address via SMTP.

import (
	"context"
	"encoding/json"
	"fmt"

	"shopledger/internal/infra"

	"github.com/rs/zerolog/log"
)

// AlertWorker sends low-stock notification emails.
type AlertWorker struct {
	mailer  *infra.Mailer
	toEmail string
}

func NewAlertWorker(mailer *infra.Mailer, toEmail string) *AlertWorker {
	return &AlertWorker{mailer: mailer, toEmail: toEmail}
}

// Process renders and sends the alert email for one job.
func (w *AlertWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload LowStockAlertPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("alert_worker: invalid payload")
		return nil // malformed jobs are not retryable
	}
	if w.toEmail == "" {
		log.Warn().Msg("alert_worker: no alert email configured — skipping")
		return nil
	}

	subject := fmt.Sprintf("Low stock: %s (%d left)", payload.ProductName, payload.Stock)
	body := fmt.Sprintf(
		"Product %q (id %d) is down to %d units, at or below the reorder threshold of %d.\n",
		payload.ProductName, payload.ProductID, payload.Stock, payload.Threshold,
	)

	if err := w.mailer.Send(w.toEmail, subject, body); err != nil {
		log.Error().Err(err).Str("to", w.toEmail).Msg("alert_worker: failed to send email")
		return err
	}
	log.Info().Uint("product_id", payload.ProductID).Int("stock", payload.Stock).Msg("alert_worker: low-stock alert sent")
	return nil
}
