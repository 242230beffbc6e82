package api

import (
	"alcyxob/lifelog-app/internal/metrics"
	"alcyxob/lifelog-app/internal/service"
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	// HeaderUserID selects the user a request acts for.
	HeaderUserID = "X-User-ID"

	ContextUserIDKey = "userID"
)

// UserMiddleware resolves the acting user from the X-User-ID header, falling
// back to defaultUserID. There is no authentication.
func UserMiddleware(defaultUserID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(HeaderUserID))
		if userID == "" {
			userID = defaultUserID
		}
		if userID == "" {
			abortWithError(c, http.StatusBadRequest, "Missing "+HeaderUserID+" header")
			return
		}
		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

// RequestLogger writes one log line per handled request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := logrus.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"user":    c.GetString(ContextUserIDKey),
		})
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			entry.Error("request failed")
		case status >= http.StatusBadRequest:
			entry.Warn("request rejected")
		default:
			entry.Debug("request served")
		}
	}
}

// MetricsMiddleware records request counts, in-flight requests and latency
// per matched route.
func MetricsMiddleware(m *metrics.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.GaugeRequests.Inc()
		defer m.GaugeRequests.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.CounterRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HistRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// respondError maps service errors onto status codes. Unexpected errors are
// logged and answered with a generic message.
func respondError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrStorageDisabled):
		abortWithError(c, http.StatusServiceUnavailable, "Export storage is not configured.")
	case errors.Is(err, context.Canceled):
		c.Abort()
	default:
		logrus.WithError(err).WithFields(logrus.Fields{
			"route": c.FullPath(),
			"user":  c.GetString(ContextUserIDKey),
		}).Error("failed to " + action)
		abortWithError(c, http.StatusInternalServerError, "Failed to "+action+".")
	}
}

// bindJSON decodes the body into dst, answering 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return false
	}
	return true
}

// Helper function to get User ID from context (used by handlers)
func getUserIDFromContext(c *gin.Context) string {
	return c.GetString(ContextUserIDKey)
}
