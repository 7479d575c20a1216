package app

import (
	"context"
	"fmt"

	"github.com/okian/prodsync/pkg/logger"
	"github.com/okian/prodsync/pkg/metrics"
)

// BackfillAll sweeps every known entity through the sync workflow once,
// page by page, strictly sequentially. Entity-level failures are isolated by
// SyncEntity; only a failed page listing aborts the sweep.
//
// Termination is guarded twice: an empty page that repeats its cursor stops
// the loop (a stuck remote cursor), and maxPages caps the sweep outright.
func (s *Service) BackfillAll(ctx context.Context) (int, error) {
	processed := 0
	cursor := ""

	for page := 0; page < s.maxPages; page++ {
		p, err := s.gateway.ListEntitiesPage(ctx, s.pageSize, cursor)
		if err != nil {
			return processed, fmt.Errorf("list entities page: %w", err)
		}

		entities := p.Entities()
		for _, ent := range entities {
			s.SyncEntity(ctx, ent.ID)
			processed++
		}
		metrics.RecordBackfillPage(len(entities))
		s.logger.Debug(ctx, "backfill page done",
			logger.Int("page", page),
			logger.Int("entities", len(entities)),
		)

		next := p.Cursor()
		if next == "" {
			return processed, nil
		}
		if len(entities) == 0 && next == cursor {
			s.logger.Warn(ctx, "backfill cursor made no progress, stopping",
				logger.String("cursor", cursor))
			return processed, nil
		}
		cursor = next
	}

	s.logger.Warn(ctx, "backfill stopped at page cap",
		logger.Int("maxPages", s.maxPages),
		logger.Int("processed", processed),
	)
	return processed, nil
}
