package service

import (
	"context"

	"paraphrase-be/internal/pkg/logger"
	"paraphrase-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// EventDelivery pushes an encoded event to a session's live connections.
// Typically implemented by the WebSocket Hub.
type EventDelivery interface {
	Send(sessionID string, data []byte)
}

// EventSource is the in-process bus the relay listens on.
type EventSource interface {
	Subscribe(ctx context.Context) (<-chan *message.Message, error)
}

type IRelayService interface {
	Consume(ctx context.Context) error
}

type relayService struct {
	source   EventSource
	delivery EventDelivery
	logger   logger.ILogger
}

func NewRelayService(source EventSource, delivery EventDelivery, log logger.ILogger) IRelayService {
	return &relayService{source: source, delivery: delivery, logger: log}
}

func (s *relayService) Consume(ctx context.Context) error {
	messages, err := s.source.Subscribe(ctx)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(msg)
		}
	}()
	return nil
}

func (s *relayService) processMessage(msg *message.Message) {
	// delivery is best effort, so every message is acked
	defer msg.Ack()

	event, err := events.Decode(msg.Payload)
	if err != nil {
		s.logger.Error("RelayService", "Failed to decode event", map[string]interface{}{"error": err.Error()})
		return
	}

	sessionID := events.SessionOf(event)
	if sessionID == "" {
		s.logger.Debug("RelayService", "Event has no session, skipping", map[string]interface{}{"type": event.Type})
		return
	}
	s.delivery.Send(sessionID, msg.Payload)
}
