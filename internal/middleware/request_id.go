package middleware

import (
	"regexp"
	"time"

	"MoodDetector/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

const RequestIDKey = "X-Request-ID"

// callerRequestID bounds what a client may send as X-Request-ID: ULIDs, UUIDs
// and similar opaque tokens, never path separators.
var callerRequestID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// NewRequestIDMiddleware keeps a well-formed caller supplied X-Request-ID and
// otherwise assigns a ULID. The id is echoed in the response header.
func NewRequestIDMiddleware() fiber.Handler {
	utilsInstance := utils.New()

	return func(c *fiber.Ctx) error {
		requestID := c.Get(RequestIDKey)

		if !callerRequestID.MatchString(requestID) {
			requestID, _ = utilsInstance.NewULIDFromTimestamp(time.Now())
		}

		c.Locals(RequestIDKey, requestID)
		c.Set(RequestIDKey, requestID)

		return c.Next()
	}
}
