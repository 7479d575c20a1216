package app

import (
	"context"
	"fmt"

	"github.com/okian/prodsync/internal/domain/model"
	"github.com/okian/prodsync/pkg/logger"
	"github.com/okian/prodsync/pkg/metrics"
)

// RegistrationOutcome reports what EnsureWebhook did.
type RegistrationOutcome string

const (
	// RegistrationExisted means a registration for the target URL was already
	// present and nothing was created.
	RegistrationExisted RegistrationOutcome = "already_existed"
	// RegistrationCreated means a new registration was created.
	RegistrationCreated RegistrationOutcome = "created"
)

// EnsureWebhook makes sure exactly one registration points at targetURL,
// creating one subscribed to the given event kinds if none exists.
// Registrations are matched by exact URL equality, so calling this on every
// process start never produces duplicates.
func (s *Service) EnsureWebhook(ctx context.Context, targetURL string, kinds []string) (RegistrationOutcome, error) {
	regs, err := s.gateway.ListWebhookRegistrations(ctx)
	if err != nil {
		return "", fmt.Errorf("list webhook registrations: %w", err)
	}

	for _, reg := range regs {
		if reg.URL == targetURL {
			s.logger.Info(ctx, "webhook already registered",
				logger.String("id", reg.ID),
				logger.String("url", targetURL),
			)
			metrics.RecordRegistrarOutcome(string(RegistrationExisted))
			return RegistrationExisted, nil
		}
	}

	created, err := s.gateway.CreateWebhookRegistration(ctx, model.WebhookDescriptor{
		URL:     targetURL,
		Events:  kinds,
		Enabled: true,
	})
	if err != nil {
		return "", fmt.Errorf("create webhook registration: %w", err)
	}
	s.logger.Info(ctx, "webhook registered",
		logger.String("id", created.ID),
		logger.String("url", targetURL),
		logger.Any("events", kinds),
	)
	metrics.RecordRegistrarOutcome(string(RegistrationCreated))
	return RegistrationCreated, nil
}
