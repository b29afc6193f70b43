package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Lifecycle event codes.
const (
	PersonasGenerated = "PERSONAS_GENERATED"
	SectionSubmitted  = "SECTION_SUBMITTED"
	WizardReset       = "WIZARD_RESET"
	RewriteStarted    = "REWRITE_STARTED"
	RewriteCompleted  = "REWRITE_COMPLETED"
	RewriteFailed     = "REWRITE_FAILED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "REWRITE_STARTED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type BaseEvent struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

const sessionKey = "session_id"

// NewSessionEvent stamps data with the owning session and the current time.
func NewSessionEvent(eventType, sessionID string, data map[string]interface{}) BaseEvent {
	payload := make(map[string]interface{}, len(data)+1)
	for k, v := range data {
		payload[k] = v
	}
	payload[sessionKey] = sessionID
	return BaseEvent{Type: eventType, Data: payload, OccurredAt: time.Now().UTC()}
}

// SessionOf returns the session an event belongs to, or "".
func SessionOf(e Event) string {
	sid, _ := e.Payload()[sessionKey].(string)
	return sid
}

// Encode serialises any Event into the wire envelope shared by every bus.
func Encode(e Event) ([]byte, error) {
	return json.Marshal(BaseEvent{Type: e.EventType(), Data: e.Payload(), OccurredAt: e.Timestamp()})
}

func Decode(data []byte) (BaseEvent, error) {
	var e BaseEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return BaseEvent{}, fmt.Errorf("decode event: %w", err)
	}
	if e.Type == "" {
		return BaseEvent{}, errors.New("decode event: missing type")
	}
	return e, nil
}

// Fanout publishes to every non-nil publisher and joins their errors.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, p := range f {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
