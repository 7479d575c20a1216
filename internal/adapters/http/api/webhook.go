package api

import (
	"crypto/subtle"
	"io"
	"net/http"

	"github.com/okian/prodsync/internal/domain/dedupe"
	"github.com/okian/prodsync/pkg/metrics"
)

const (
	// SecretHeader carries the shared secret agreed with the notifier.
	SecretHeader = "X-Webhook-Secret"
	// DeliveryHeader carries the notifier's delivery id, when it sends one.
	DeliveryHeader = "X-Delivery-Id"

	maxBodyBytes = 1 << 20
)

// WebhookHandler accepts inbound change notifications.
type WebhookHandler struct {
	proc    Processor
	secret  string
	deduper dedupe.Deduper
}

// NewWebhookHandler creates a new webhook handler.
func NewWebhookHandler(proc Processor, secret string, deduper dedupe.Deduper) *WebhookHandler {
	return &WebhookHandler{proc: proc, secret: secret, deduper: deduper}
}

// HandleNotification handles POST deliveries from the external notifier.
//
// Every outcome except a failed shared-secret check answers 200: application
// failures are fully handled and logged internally, and a non-200 would only
// make the notifier retry-storm payloads that will fail the same way again.
func (h *WebhookHandler) HandleNotification(w http.ResponseWriter, r *http.Request) {
	const op = "api.webhook"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	if h.secret != "" {
		provided := r.Header.Get(SecretHeader)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(h.secret)) != 1 {
			metrics.RecordWebhookDelivery("unauthorized")
			writeError(w, http.StatusUnauthorized, "unauthorized", NewKind(op, ErrUnauthorized))
			return
		}
	}

	if h.deduper != nil {
		if id := r.Header.Get(DeliveryHeader); id != "" && h.deduper.SeenAndRecord(r.Context(), id) {
			metrics.RecordWebhookDelivery("duplicate")
			writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate"})
			return
		}
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		metrics.RecordWebhookDelivery("ok")
		writeJSON(w, http.StatusOK, ackResponse{Status: "ok"})
		return
	}

	n := h.proc.ProcessNotification(r.Context(), body)
	metrics.RecordWebhookDelivery("ok")
	writeJSON(w, http.StatusOK, ackResponse{Status: "ok", Received: n})
}
