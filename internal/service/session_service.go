package service

import (
	"context"
	"fmt"
	"time"

	"paraphrase-be/internal/pkg/logger"
	"paraphrase-be/pkg/events"
	"paraphrase-be/pkg/rewrite"
	"paraphrase-be/pkg/store"
	"paraphrase-be/pkg/wizard"
)

// SessionRegistry caches live sessions between requests.
type SessionRegistry interface {
	GetOrCreate(sessionID string, build func() (*store.Session, error)) (*store.Session, error)
	Delete(sessionID string)
}

type ISessionService interface {
	// Get returns the live session, rebuilding it from the durable store
	// when it is not cached.
	Get(ctx context.Context, sessionID string) (*store.Session, error)
}

type sessionService struct {
	sessions SessionRegistry
	state    wizard.Store
	rewriter rewrite.Rewriter
	events   IEventService
	logger   logger.ILogger
}

func NewSessionService(sessions SessionRegistry, state wizard.Store, rewriter rewrite.Rewriter, events IEventService, log logger.ILogger) ISessionService {
	return &sessionService{
		sessions: sessions,
		state:    state,
		rewriter: rewriter,
		events:   events,
		logger:   log,
	}
}

func (s *sessionService) Get(ctx context.Context, sessionID string) (*store.Session, error) {
	return s.sessions.GetOrCreate(sessionID, func() (*store.Session, error) {
		machine, err := wizard.NewMachine(ctx, s.state, sessionID)
		if err != nil {
			return nil, fmt.Errorf("load wizard state: %w", err)
		}
		s.logger.Debug("SessionService", "Session created", map[string]interface{}{"session_id": sessionID})

		return &store.Session{
			ID:        sessionID,
			Wizard:    machine,
			Rewrite:   rewrite.NewOrchestrator(machine, s.rewriter, s.hooks(sessionID)),
			CreatedAt: time.Now(),
		}, nil
	})
}

func (s *sessionService) hooks(sessionID string) rewrite.Hooks {
	ctx := context.Background()
	return rewrite.Hooks{
		OnStart: func(original []string) {
			s.events.Publish(ctx, events.NewSessionEvent(events.RewriteStarted, sessionID, map[string]interface{}{
				"original_paragraphs": original,
			}))
		},
		OnFinish: func(res rewrite.Result, err error) {
			if err != nil {
				s.events.Publish(ctx, events.NewSessionEvent(events.RewriteFailed, sessionID, map[string]interface{}{
					"error": res.MainError,
				}))
				return
			}
			s.events.Publish(ctx, events.NewSessionEvent(events.RewriteCompleted, sessionID, map[string]interface{}{
				"paraphrased_paragraphs": res.ParaphrasedParagraphs,
			}))
		},
	}
}
