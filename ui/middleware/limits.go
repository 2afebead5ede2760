package middleware

import (
	"net/http"

	"sheetlens/domain/core"
	"sheetlens/internal"

	"github.com/gin-gonic/gin"
)

// RequestIDHeader carries the per-request identifier
const RequestIDHeader = "X-Request-ID"

// MaxBodyBytes caps the request body. Reads past the limit fail, which the
// multipart parser reports as an error.
func MaxBodyBytes(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}

// RequestID tags each request with an ID, reusing one supplied by the caller
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = core.NewID().String()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// AccessLog writes one structured line per request through logger
func AccessLog(logger *internal.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		logger.WithField("request_id", c.GetString("request_id")).
			WithField("status", c.Writer.Status()).
			WithField("path", c.FullPath()).
			Infof("[Server] %s %s", c.Request.Method, c.Request.URL.Path)
	}
}
