package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"storefront/internal/logger"
)

// ContextKeyRequestID is the gin context key holding the request ID.
const ContextKeyRequestID = "request_id"

// RequestID injects an X-Request-ID header into the request and response, and
// into the request context for logger.WithContext.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(ContextKeyRequestID, requestID)
		c.Header("X-Request-ID", requestID)
		c.Request = c.Request.WithContext(logger.ContextWithRequestID(c.Request.Context(), requestID))
		c.Next()
	}
}

// Logger logs each HTTP request with method, path, status, and latency.
func Logger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := logger.WithContext(c.Request.Context(), log).WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		})
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			entry.Error("request")
		case status >= http.StatusBadRequest:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
	}
}

// Recovery recovers from panics, logs them, and returns a 500 error.
func Recovery(log logrus.FieldLogger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.WithContext(c.Request.Context(), log).
			WithField("panic", recovered).
			Error("recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   gin.H{"code": "INTERNAL_ERROR", "message": "an internal error occurred"},
		})
	})
}

// RequestObserver counts served requests.
type RequestObserver interface {
	ObserveRequest(method, route string, status int)
}

// Metrics reports every request to obs, labelled by the matched route.
func Metrics(obs RequestObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		obs.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status())
	}
}
