package services

import (
	"context"
	"server/internal/database"
	"server/internal/events"
	"server/internal/logger"
)

// CacheInvalidationService drops derived cache entries after case
// mutations and notifies the owning user's connected clients.
type CacheInvalidationService struct {
	db       database.DB
	eventBus *events.EventBus
	log      logger.Logger
}

func NewCacheInvalidationService(db database.DB, eventBus *events.EventBus) *CacheInvalidationService {
	return &CacheInvalidationService{
		db:       db,
		eventBus: eventBus,
		log:      logger.New("CacheInvalidationService"),
	}
}

// InvalidateUserCases removes the owner's cached case list and publishes
// the given event. Cache and publish failures are reported but the
// mutation that triggered them has already succeeded.
func (s *CacheInvalidationService) InvalidateUserCases(ctx context.Context, userID, eventType string, payload map[string]any) error {
	log := s.log.Function("InvalidateUserCases")

	listKey := "list:" + userID
	if err := database.NewCacheBuilder(s.db.Cache.Case, listKey).WithContext(ctx).Delete(); err != nil {
		return log.Err("failed to invalidate case list cache", err, "userID", userID)
	}

	if s.eventBus != nil && eventType != "" {
		if err := s.eventBus.Publish(ctx, events.Event{
			Type:    eventType,
			UserID:  userID,
			Payload: payload,
		}); err != nil {
			log.Warn("failed to publish cache invalidation event",
				"userID", userID, "type", eventType, "error", err)
		}
	}

	return nil
}

// InvalidateCase removes a single cached case record.
func (s *CacheInvalidationService) InvalidateCase(ctx context.Context, caseID string) error {
	log := s.log.Function("InvalidateCase")

	if err := database.NewCacheBuilder(s.db.Cache.Case, caseID).WithContext(ctx).Delete(); err != nil {
		return log.Err("failed to invalidate case cache", err, "caseID", caseID)
	}
	return nil
}
