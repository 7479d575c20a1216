package app

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/okian/prodsync/internal/domain/event"
	"github.com/okian/prodsync/internal/domain/field"
	"github.com/okian/prodsync/internal/domain/model"
	"github.com/okian/prodsync/pkg/logger"
	"github.com/okian/prodsync/pkg/metrics"
)

// Sync outcome labels reported to metrics.
const (
	outcomeSynced       = "synced"
	outcomeSkipNoParent = "skip_no_parent"
	outcomeSkipNoName   = "skip_no_name"
	outcomeRemoteError  = "error_remote"
	outcomeNoOption     = "error_no_option"
	outcomeResolveError = "error_resolve"
)

// ProcessNotification normalizes one inbound delivery and syncs each affected
// entity, in normalization order, one at a time. Returns the number of
// canonical events handled. Failures never escape: an unrecognized body is a
// diagnostic, and a broken entity does not abort its siblings.
func (s *Service) ProcessNotification(ctx context.Context, body []byte) int {
	delivery := uuid.NewString()

	events := event.Normalize(body)
	metrics.RecordEventsNormalized(len(events))
	if len(events) == 0 {
		s.reportEmptyBatch(ctx, delivery, body)
		return 0
	}

	for _, ev := range events {
		s.logger.Debug(ctx, "processing event",
			logger.String("delivery", delivery),
			logger.String("entity", ev.EntityID),
			logger.String("kind", ev.Kind),
		)
		s.SyncEntity(ctx, ev.EntityID)
	}
	return len(events)
}

// SyncEntity recomputes the resolved parent product name for one entity and
// writes it to the synced field. All failure is classified and logged here;
// nothing propagates to the caller.
func (s *Service) SyncEntity(ctx context.Context, entityID string) {
	metrics.RecordSyncOutcome(s.syncEntity(ctx, entityID))
}

func (s *Service) syncEntity(ctx context.Context, entityID string) string {
	ent, err := s.gateway.GetEntity(ctx, entityID)
	if err != nil {
		s.logger.Error(ctx, "fetch entity failed",
			logger.String("entity", entityID), logger.Error(err))
		return outcomeRemoteError
	}

	parentID, ok := ent.ParentProductID()
	if !ok {
		s.logger.Info(ctx, "entity has no parent product, skipping",
			logger.String("entity", entityID))
		return outcomeSkipNoParent
	}

	product, err := s.gateway.GetProduct(ctx, parentID)
	if err != nil {
		s.logger.Error(ctx, "fetch product failed",
			logger.String("entity", entityID),
			logger.String("product", parentID), logger.Error(err))
		return outcomeRemoteError
	}
	if product.Name == "" {
		s.logger.Info(ctx, "parent product has no name, skipping",
			logger.String("entity", entityID),
			logger.String("product", parentID))
		return outcomeSkipNoName
	}

	// The field definition only matters for enumerated lookup; text mode
	// writes the name verbatim.
	var def model.FieldDefinition
	if s.fieldMode == field.ModeEnumerated {
		def, err = s.gateway.GetFieldDefinition(ctx, s.fieldID)
		if err != nil {
			s.logger.Error(ctx, "fetch field definition failed",
				logger.String("field", s.fieldID), logger.Error(err))
			return outcomeRemoteError
		}
	}

	value, err := field.Resolve(s.fieldMode, def, product.Name)
	if err != nil {
		var noMatch *field.NoMatchingOptionError
		if errors.As(err, &noMatch) {
			s.logger.Error(ctx, "no enumerated option matches product name",
				logger.String("entity", entityID),
				logger.String("field", noMatch.FieldID),
				logger.String("productName", noMatch.ProductName),
			)
			return outcomeNoOption
		}
		s.logger.Error(ctx, "resolve field value failed",
			logger.String("entity", entityID), logger.Error(err))
		return outcomeResolveError
	}

	// Unconditional write: the value mirrors the current product name and the
	// remote replaces wholesale, so re-running is always safe.
	if err := s.gateway.SetFieldValue(ctx, entityID, s.fieldID, value); err != nil {
		s.logger.Error(ctx, "write field value failed",
			logger.String("entity", entityID),
			logger.String("field", s.fieldID), logger.Error(err))
		return outcomeRemoteError
	}
	metrics.RecordFieldWrite()

	s.logger.Info(ctx, "field synced",
		logger.String("entity", entityID),
		logger.String("productName", product.Name),
	)
	return outcomeSynced
}

func (s *Service) reportEmptyBatch(ctx context.Context, delivery string, body []byte) {
	metrics.RecordEmptyBatch()

	keys, kind := event.Describe(body)
	fields := []logger.Field{
		logger.String("delivery", delivery),
		logger.Any("topLevelKeys", keys),
		logger.String("kind", kind),
		logger.Int("bodyBytes", len(body)),
	}
	if s.debugPayloads {
		preview := body
		if len(preview) > s.rawPreviewBytes {
			preview = preview[:s.rawPreviewBytes]
		}
		fields = append(fields, logger.String("rawPreview", string(preview)))
	}
	s.logger.Warn(ctx, "no recognizable events in notification", fields...)
}
