package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joshua-takyi/eventscape/internal/errdef"
	"github.com/joshua-takyi/eventscape/internal/helpers"
	"github.com/joshua-takyi/eventscape/internal/metrics"
)

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// StructuredLogger provides structured logging middleware
func StructuredLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}
		requestID, _ := c.Get("request_id")

		logger.Info("HTTP Request",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}

// Metrics records request counts and latency per matched route.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordAPIRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

// ErrorHandler turns the last error attached with c.Error into a response. Typed errors keep their
// message; anything else is logged and reported as an opaque 500 carrying the request id.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		requestID, _ := c.Get("request_id")
		rid, _ := requestID.(string)

		status := StatusFor(err)
		if status == http.StatusInternalServerError {
			logger.Error("Request error",
				"request_id", rid,
				"error", err.Error(),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
			)
			res := helpers.ErrorResponse("internal server error")
			res.RequestID = rid
			c.JSON(status, res)
			return
		}

		logger.Debug("Request rejected", "request_id", rid, "status", status, "error", err.Error())
		res := helpers.ErrorResponse(err.Error())
		res.RequestID = rid
		c.JSON(status, res)
	}
}

func StatusFor(err error) int {
	switch {
	case errdef.IsBadRequest(err):
		return http.StatusBadRequest
	case errdef.IsNotFound(err):
		return http.StatusNotFound
	case errdef.IsDuplicated(err):
		return http.StatusConflict
	case errdef.IsUnauthorized(err):
		return http.StatusUnauthorized
	case errdef.IsForbidden(err):
		return http.StatusForbidden
	case errdef.IsGeocoding(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

type TokenValidator interface {
	Validate(token string) (*helpers.Claims, error)
}

// Auth requires a valid bearer token and stores its claims under helpers.ClaimsKey.
func Auth(validator TokenValidator, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := helpers.BearerToken(c.GetHeader("Authorization"))
		if !ok {
			_ = c.Error(errdef.NewUnauthorized("missing bearer token"))
			c.Abort()
			return
		}

		claims, err := validator.Validate(token)
		if err != nil {
			logger.Debug("Token rejected", "error", err)
			_ = c.Error(errdef.NewUnauthorized("invalid or expired token"))
			c.Abort()
			return
		}

		c.Set(helpers.ClaimsKey, claims)
		c.Next()
	}
}
