package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/HeyDYF/Money-Manager/internal/logger"
)

const (
	requestIDKey    = "requestID"
	requestIDHeader = "X-Request-ID"
)

// quietRoutes are logged at debug level so probes do not flood the log.
var quietRoutes = map[string]bool{
	"/api/health": true,
	"/metrics":    true,
}

// RequestLogging tags each request with an id and logs one line when it
// completes. A well-formed incoming X-Request-ID is reused; anything else is
// replaced with a fresh UUID. Server errors log at error level, client
// errors at warn.
func RequestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)

		c.Next()

		log := logger.Named("http").Infow
		status := c.Writer.Status()
		switch {
		case status >= http.StatusInternalServerError:
			log = logger.Named("http").Errorw
		case status >= http.StatusBadRequest:
			log = logger.Named("http").Warnw
		case quietRoutes[c.FullPath()]:
			log = logger.Named("http").Debugw
		}
		log(c.Request.Method+" "+c.Request.URL.Path,
			"request_id", id,
			"route", c.FullPath(),
			"status", status,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
			"bytes", c.Writer.Size(),
		)
	}
}

// RequestID returns the id assigned by RequestLogging, or "".
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
