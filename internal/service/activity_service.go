package service

import (
	"context"
	"fmt"

	"mini-inventory/internal/model"
	"mini-inventory/internal/repository"

	"github.com/rs/zerolog"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 500
)

// activityService implements ActivityService.
type activityService struct {
	eventRepo repository.EventRepository
	logger    zerolog.Logger
}

// NewActivityService creates a new activity service.
func NewActivityService(eventRepo repository.EventRepository, logger zerolog.Logger) ActivityService {
	return &activityService{
		eventRepo: eventRepo,
		logger:    logger.With().Str("service", "activity").Logger(),
	}
}

// Recent returns the latest events, newest first.
func (s *activityService) Recent(ctx context.Context, limit int) ([]model.Event, error) {
	limit = clampLimit(limit)

	events, err := s.eventRepo.Recent(ctx, limit)
	if err != nil {
		s.logger.Error().Err(err).Int("limit", limit).Msg("failed to read activity")
		return nil, fmt.Errorf("failed to read activity: %w", err)
	}

	s.logger.Debug().Int("count", len(events)).Int("limit", limit).Msg("retrieved activity")

	return events, nil
}

// ForProduct returns the latest events of one product, newest first.
func (s *activityService) ForProduct(ctx context.Context, productID string, limit int) ([]model.Event, error) {
	limit = clampLimit(limit)

	events, err := s.eventRepo.ByProduct(ctx, productID, limit)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", productID).Msg("failed to read product activity")
		return nil, fmt.Errorf("failed to read product activity: %w", err)
	}

	return events, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultActivityLimit
	}
	if limit > maxActivityLimit {
		return maxActivityLimit
	}
	return limit
}
