// Package app wires the sync workflow: the per-entity orchestrator, the
// webhook registrar and the backfill driver, all over the remote gateway.
package app

import (
	"context"

	"github.com/okian/prodsync/internal/domain/field"
	"github.com/okian/prodsync/internal/domain/model"
	"github.com/okian/prodsync/pkg/logger"
)

// Gateway is the surface of the hierarchy service the workflow depends on.
type Gateway interface {
	GetEntity(ctx context.Context, id string) (model.Entity, error)
	GetProduct(ctx context.Context, id string) (model.Product, error)
	GetFieldDefinition(ctx context.Context, fieldID string) (model.FieldDefinition, error)
	SetFieldValue(ctx context.Context, entityID, fieldID string, value model.FieldValue) error
	ListEntitiesPage(ctx context.Context, pageSize int, cursor string) (model.EntityPage, error)
	ListWebhookRegistrations(ctx context.Context) ([]model.WebhookRegistration, error)
	CreateWebhookRegistration(ctx context.Context, d model.WebhookDescriptor) (model.WebhookRegistration, error)
}

// Service runs the product-name sync workflow.
type Service struct {
	gateway   Gateway
	fieldID   string
	fieldMode field.Mode

	pageSize        int
	maxPages        int
	debugPayloads   bool
	rawPreviewBytes int

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPageSize sets the backfill listing page size.
func WithPageSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.pageSize = size
		}
	}
}

// WithMaxPages caps the backfill pagination loop.
func WithMaxPages(pages int) Option {
	return func(s *Service) {
		if pages > 0 {
			s.maxPages = pages
		}
	}
}

// WithPayloadDebug enables the size-capped raw payload preview in the
// empty-batch diagnostic.
func WithPayloadDebug(enabled bool, previewBytes int) Option {
	return func(s *Service) {
		s.debugPayloads = enabled
		if previewBytes > 0 {
			s.rawPreviewBytes = previewBytes
		}
	}
}

// New constructs a Service syncing the given field through gw.
func New(gw Gateway, fieldID string, mode field.Mode, opts ...Option) *Service {
	s := &Service{
		gateway:         gw,
		fieldID:         fieldID,
		fieldMode:       mode,
		pageSize:        100,
		maxPages:        10_000,
		rawPreviewBytes: 2_048,
		logger:          logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
