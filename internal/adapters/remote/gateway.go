// Package remote implements the typed gateway to the external hierarchy
// service. Every method is a single synchronous round-trip; retry policy is
// owned by the callers (webhook redelivery and the backfill sweep), never by
// the gateway itself.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/okian/prodsync/internal/domain/model"
	"github.com/okian/prodsync/pkg/metrics"
)

const (
	defaultTimeout  = 15 * time.Second
	maxErrorBody    = 4 << 10
	defaultPageSize = 100
)

// Gateway speaks JSON-over-HTTPS to the hierarchy service.
type Gateway struct {
	baseURL   string
	token     string
	client    *http.Client
	userAgent string
}

// New creates a gateway for the service at baseURL, authenticating with the
// given bearer token.
func New(baseURL, token string, opts ...Option) *Gateway {
	g := &Gateway{
		baseURL:   trimTrailingSlash(baseURL),
		token:     token,
		client:    &http.Client{Timeout: defaultTimeout},
		userAgent: "prodsync",
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GetEntity fetches one hierarchy entity.
func (g *Gateway) GetEntity(ctx context.Context, id string) (model.Entity, error) {
	var ent model.Entity
	err := g.do(ctx, "get_entity", http.MethodGet, "/entities/"+url.PathEscape(id), nil, nil, &ent)
	return ent, err
}

// GetProduct fetches one product.
func (g *Gateway) GetProduct(ctx context.Context, id string) (model.Product, error) {
	var p model.Product
	err := g.do(ctx, "get_product", http.MethodGet, "/products/"+url.PathEscape(id), nil, nil, &p)
	return p, err
}

// GetFieldDefinition fetches the definition of the synced field.
func (g *Gateway) GetFieldDefinition(ctx context.Context, fieldID string) (model.FieldDefinition, error) {
	var def model.FieldDefinition
	err := g.do(ctx, "get_field_definition", http.MethodGet, "/field-definitions/"+url.PathEscape(fieldID), nil, nil, &def)
	return def, err
}

// fieldValueWrite is the PUT /field-values payload.
type fieldValueWrite struct {
	EntityID string           `json:"entityId"`
	FieldID  string           `json:"fieldId"`
	Value    model.FieldValue `json:"value"`
}

// SetFieldValue replaces the field's value on the entity. PUT semantics: the
// value written is exactly the value supplied, no merging with prior state.
func (g *Gateway) SetFieldValue(ctx context.Context, entityID, fieldID string, value model.FieldValue) error {
	body := fieldValueWrite{EntityID: entityID, FieldID: fieldID, Value: value}
	return g.do(ctx, "set_field_value", http.MethodPut, "/field-values", nil, body, nil)
}

// ListEntitiesPage fetches one page of the entity listing. An empty cursor
// requests the first page.
func (g *Gateway) ListEntitiesPage(ctx context.Context, pageSize int, cursor string) (model.EntityPage, error) {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(pageSize))
	if cursor != "" {
		q.Set("cursor", cursor)
	}
	var page model.EntityPage
	err := g.do(ctx, "list_entities", http.MethodGet, "/entities", q, nil, &page)
	return page, err
}

// ListWebhookRegistrations fetches all current webhook registrations. The
// service has shipped both a bare array and a data-wrapped envelope here, so
// both are tolerated.
func (g *Gateway) ListWebhookRegistrations(ctx context.Context) ([]model.WebhookRegistration, error) {
	var raw json.RawMessage
	if err := g.do(ctx, "list_webhooks", http.MethodGet, "/webhook-registrations", nil, nil, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return decodeRegistrations(raw)
}

// CreateWebhookRegistration registers a new webhook.
func (g *Gateway) CreateWebhookRegistration(ctx context.Context, d model.WebhookDescriptor) (model.WebhookRegistration, error) {
	var reg model.WebhookRegistration
	err := g.do(ctx, "create_webhook", http.MethodPost, "/webhook-registrations", nil, d, &reg)
	return reg, err
}

func decodeRegistrations(raw json.RawMessage) ([]model.WebhookRegistration, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var regs []model.WebhookRegistration
		if err := json.Unmarshal(trimmed, &regs); err != nil {
			return nil, fmt.Errorf("decode webhook registrations: %w", err)
		}
		return regs, nil
	}
	var envelope struct {
		Data []model.WebhookRegistration `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("decode webhook registrations: %w", err)
	}
	return envelope.Data, nil
}

// do performs one round-trip. Non-2xx responses become *Error; a 204 is a
// successful empty result and leaves out untouched.
func (g *Gateway) do(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	u := g.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", op, err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", g.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	start := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		metrics.RecordRemoteCall(op, "transport_error", float64(time.Since(start).Milliseconds()))
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()
	metrics.RecordRemoteCall(op, strconv.Itoa(resp.StatusCode), float64(time.Since(start).Milliseconds()))

	if resp.StatusCode < http.StatusOK || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &Error{StatusCode: resp.StatusCode, Message: string(bytes.TrimSpace(msg))}
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	return nil
}

func trimTrailingSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}
