package service

import (
	"context"

	"paraphrase-be/internal/pkg/logger"
	"paraphrase-be/pkg/events"
	pktNats "paraphrase-be/pkg/nats"
)

const auditDurable = "paraphrase-audit"

// EventSubscriber is the broker side of the event stream.
type EventSubscriber interface {
	Subscribe(ctx context.Context, subject, durableName string, handler pktNats.EventHandler) error
}

// AuditService drains the broker stream into the event log.
type AuditService struct {
	subscriber EventSubscriber
	logger     logger.ILogger
}

func NewAuditService(sub EventSubscriber, log logger.ILogger) *AuditService {
	return &AuditService{subscriber: sub, logger: log}
}

func (s *AuditService) Start(ctx context.Context) {
	if err := s.subscriber.Subscribe(ctx, pktNats.SubjectWildcard, auditDurable, s.handleEvent); err != nil {
		s.logger.Error("AuditService", "Failed to start event subscriber", map[string]interface{}{"error": err.Error()})
		return
	}
	s.logger.Info("AuditService", "Listening to "+pktNats.SubjectWildcard, nil)
}

func (s *AuditService) handleEvent(_ context.Context, event events.Event) error {
	details := map[string]interface{}{
		"type":        event.EventType(),
		"session_id":  events.SessionOf(event),
		"occurred_at": event.Timestamp(),
	}
	if msg, ok := event.Payload()["error"].(string); ok {
		details["error"] = msg
		s.logger.Warn("AuditService", "Rewrite failed", details)
		return nil
	}
	s.logger.Info("AuditService", "Event", details)
	return nil
}
