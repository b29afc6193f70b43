package serverutils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	SessionHeader    = "X-Session-ID"
	sessionLocalsKey = "session_id"
)

// SessionMiddleware resolves the anonymous session id from the header, or
// the session_id query parameter for clients that cannot set headers
// (websockets). A missing or malformed id is replaced by a fresh one, which
// is echoed back on the response.
func SessionMiddleware(ctx *fiber.Ctx) error {
	id := ctx.Get(SessionHeader)
	if id == "" {
		id = ctx.Query("session_id")
	}
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	ctx.Locals(sessionLocalsKey, id)
	ctx.Set(SessionHeader, id)
	return ctx.Next()
}

func SessionID(ctx *fiber.Ctx) string {
	id, _ := ctx.Locals(sessionLocalsKey).(string)
	return id
}
