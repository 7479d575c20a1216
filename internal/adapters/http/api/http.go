// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/prodsync/internal/domain/dedupe"
)

// Processor handles one inbound notification body end to end.
type Processor interface {
	ProcessNotification(ctx context.Context, body []byte) int
}

// Server wires HTTP routes for the notification intake and ops endpoints.
type Server struct {
	webhookHandler *WebhookHandler
	healthHandler  *HealthHandler
}

// NewServer creates a new API server. secret may be empty to disable the
// shared-secret check; deduper may be nil to disable delivery deduplication.
func NewServer(proc Processor, secret string, deduper dedupe.Deduper) *Server {
	return &Server{
		webhookHandler: NewWebhookHandler(proc, secret, deduper),
		healthHandler:  NewHealthHandler(),
	}
}

// Register attaches all HTTP routes to mux. webhookPath is where the external
// notifier delivers events.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux, webhookPath string) {
	mux.HandleFunc(webhookPath, MetricsMiddleware(s.webhookHandler.HandleNotification, "webhook"))
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
}

// ackResponse is the body of every webhook acknowledgement.
type ackResponse struct {
	Status   string `json:"status"`
	Received int    `json:"received"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
