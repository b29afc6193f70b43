package service

import (
	"context"
	"time"

	"paraphrase-be/internal/pkg/logger"
	"paraphrase-be/pkg/events"
)

const publishTimeout = 5 * time.Second

// IEventService publishes lifecycle events. Publishing never fails the
// caller; broker errors are logged.
type IEventService interface {
	Publish(ctx context.Context, event events.Event)
}

type eventService struct {
	publisher events.Publisher
	logger    logger.ILogger
}

func NewEventService(publisher events.Publisher, log logger.ILogger) IEventService {
	return &eventService{publisher: publisher, logger: log}
}

func (s *eventService) Publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	// detached so a cancelled request still gets its lifecycle events out
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("EventService", "Failed to publish event", map[string]interface{}{
			"type":       event.EventType(),
			"session_id": events.SessionOf(event),
			"error":      err.Error(),
		})
	}
}
