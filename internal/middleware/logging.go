package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	apierrors "github.com/keynertyc/Fullstack-Test-01/internal/errors"
	"github.com/keynertyc/Fullstack-Test-01/pkg/logger"
)

// RequestLogger emits one structured log line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := logger.Get()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}

// Recovery converts panics into a generic 500 envelope. The panic value is
// logged but never surfaced to the client.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log := logger.Get()
				log.Error().
					Interface("panic", r).
					Str("path", c.Request.URL.Path).
					Msg("panic recovered")
				apierrors.InternalError(c, "")
				c.Abort()
			}
		}()
		c.Next()
	}
}
