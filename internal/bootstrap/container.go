package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"paraphrase-be/internal/config"
	"paraphrase-be/internal/controller"
	"paraphrase-be/internal/handler"
	"paraphrase-be/internal/model"
	"paraphrase-be/internal/pkg/logger"
	"paraphrase-be/internal/repository/contract"
	"paraphrase-be/internal/repository/implementation"
	"paraphrase-be/internal/repository/memory"
	redisRepo "paraphrase-be/internal/repository/redis"
	"paraphrase-be/internal/service"
	"paraphrase-be/internal/websocket"
	"paraphrase-be/pkg/events"
	"paraphrase-be/pkg/llm"
	"paraphrase-be/pkg/llm/factory"
	pktNats "paraphrase-be/pkg/nats"
	"paraphrase-be/pkg/persona"
	"paraphrase-be/pkg/rewrite"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	PersonaController controller.IPersonaController
	WizardController  controller.IWizardController
	RewriteController controller.IRewriteController

	// WebSockets & Events
	EventStreamHandler *handler.EventStreamHandler
	WebSocketHub       *websocket.Hub

	// Background Services (started by Start)
	RelayService service.IRelayService
	AuditService *service.AuditService

	Logger logger.ILogger

	closers []func()
}

// NewContainer wires every dependency. db may be nil unless STATE_STORE is
// postgres. Optional infrastructure (NATS, Redis, the LLM backend) only
// produces warnings when unavailable.
func NewContainer(db *gorm.DB, cfg *config.Config) (_ *Container, err error) {
	c := &Container{}
	ctx := context.Background()
	defer func() {
		if err != nil {
			c.Close()
		}
	}()

	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	c.Logger = sysLogger
	c.closers = append(c.closers, func() { _ = sysLogger.Sync() })
	logDir := filepath.Dir(cfg.App.LogFilePath)

	// 2. Infrastructure
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		client, err := redisRepo.NewClient(ctx, cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		} else {
			rdb = client
			c.closers = append(c.closers, func() { _ = client.Close() })
		}
	}

	stateRepo, err := newStateRepository(cfg.State, db, rdb)
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] Using wizard state store: %s", cfg.State.Store)

	// 3. Event Bus
	bus := events.NewChannelBus(watermill.NewStdLogger(false, false))
	c.closers = append(c.closers, func() { _ = bus.Close() })
	publishers := events.Fanout{bus}

	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			publishers = append(publishers, natsPub)
			c.closers = append(c.closers, natsPub.Close)
		}

		natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		} else {
			c.closers = append(c.closers, natsSub.Close)
			c.AuditService = service.NewAuditService(natsSub, logger.NewIsolatedLogger(filepath.Join(logDir, "events.log")))
		}
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger(filepath.Join(logDir, "websocket.log"))
	wsHub := websocket.NewHub(rdb, wsLogger)
	c.WebSocketHub = wsHub

	eventService := service.NewEventService(publishers, sysLogger)
	c.RelayService = service.NewRelayService(bus, wsHub, wsLogger)

	// 4. Rewrite backend
	provider, err := factory.NewLLMProvider(ctx, factory.Config{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		BaseURL:  cfg.LLMBaseURL(),
		APIKey:   cfg.APIKey(),
	})
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		log.Printf("[WARN] LLM provider %q is not configured; rewrite requests will fail", cfg.Ai.LLMProvider)
		provider = nil
	case err != nil:
		return nil, fmt.Errorf("init LLM provider: %w", err)
	default:
		log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	}
	if closer, ok := provider.(interface{ Close() error }); ok {
		c.closers = append(c.closers, func() { _ = closer.Close() })
	}
	rewriter := rewrite.NewLLMRewriter(provider, cfg.Ai.MaxTokens, cfg.Ai.Temperature)

	// 5. Services
	sessionRepo := memory.NewSessionRepository(time.Duration(cfg.State.SessionTTLMinutes) * time.Minute)
	sessionService := service.NewSessionService(sessionRepo, stateRepo, rewriter, eventService, sysLogger)

	generator := persona.NewGenerator(persona.DefaultTables(), persona.NewSource(uint64(time.Now().UnixNano())))
	personaService := service.NewPersonaService(generator, eventService)
	wizardService := service.NewWizardService(sessionService, eventService)
	rewriteService := service.NewRewriteService(sessionService, rewriter, rewriter)

	// 6. Controllers
	c.PersonaController = controller.NewPersonaController(personaService)
	c.WizardController = controller.NewWizardController(wizardService)
	c.RewriteController = controller.NewRewriteController(rewriteService)
	c.EventStreamHandler = handler.NewEventStreamHandler(wsHub, wsLogger)

	return c, nil
}

func newStateRepository(cfg config.StateConfig, db *gorm.DB, rdb *redis.Client) (contract.StateRepository, error) {
	switch cfg.Store {
	case "", "memory":
		return memory.NewStateRepository(time.Duration(cfg.StateTTLHours) * time.Hour), nil
	case "redis":
		if rdb == nil {
			return nil, errors.New("STATE_STORE=redis requires a reachable REDIS_URL")
		}
		return redisRepo.NewStateRepository(rdb), nil
	case "postgres":
		if db == nil {
			return nil, errors.New("STATE_STORE=postgres requires DB_CONNECTION_STRING")
		}
		if err := db.AutoMigrate(&model.WizardState{}); err != nil {
			return nil, fmt.Errorf("migrate wizard_states: %w", err)
		}
		return implementation.NewStateRepository(db), nil
	}
	return nil, fmt.Errorf("unsupported STATE_STORE: %s", cfg.Store)
}

// Start launches the hub and event consumers; they stop when ctx is done.
func (c *Container) Start(ctx context.Context) error {
	go c.WebSocketHub.Run(ctx)

	if err := c.RelayService.Consume(ctx); err != nil {
		return fmt.Errorf("start event relay: %w", err)
	}
	if c.AuditService != nil {
		go c.AuditService.Start(ctx)
	}
	return nil
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
