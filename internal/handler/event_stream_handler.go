package handler

import (
	"paraphrase-be/internal/pkg/logger"
	"paraphrase-be/internal/pkg/serverutils"
	internalWS "paraphrase-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// EventStreamHandler streams a session's lifecycle events over a websocket.
type EventStreamHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewEventStreamHandler(hub *internalWS.Hub, log logger.ILogger) *EventStreamHandler {
	return &EventStreamHandler{hub: hub, logger: log}
}

// ServeWs upgrades the request. The session comes from the session
// middleware, which also accepts ?session_id= for browsers.
func (h *EventStreamHandler) ServeWs(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	sessionID := serverutils.SessionID(c)
	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("EventStreamHandler", "Starting WebSocket session", map[string]interface{}{"session_id": sessionID})
		internalWS.ServeWs(h.hub, conn, sessionID)
		h.logger.Info("EventStreamHandler", "WebSocket session ended", map[string]interface{}{"session_id": sessionID})
	})(c)
}

func (h *EventStreamHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws", h.ServeWs)
}
