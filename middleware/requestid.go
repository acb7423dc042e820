package middleware

import (
	"github.com/google/uuid"

	"github.com/dmitrymomot/weave"
)

// RequestIDKey is the state bag key under which the request ID is stored.
const RequestIDKey = "middleware.request_id"

// RequestIDConfig configures the request ID handler.
type RequestIDConfig struct {
	// Skip defines a function to skip the handler for specific requests
	Skip func(c *weave.Context) bool
	// Generator creates new request IDs (default: UUID v4)
	Generator func() string
	// HeaderName specifies the header carrying the request ID (default: "X-Request-ID")
	HeaderName string
	// UseExisting reuses a request ID arriving on the incoming request
	UseExisting bool
}

// RequestID creates a request ID handler with default configuration. It
// assigns a fresh UUID to each request, stores it in the state bag under
// RequestIDKey, and echoes it in the response headers.
func RequestID() weave.Handler {
	return RequestIDWithConfig(RequestIDConfig{})
}

// RequestIDWithConfig creates a request ID handler with custom configuration.
func RequestIDWithConfig(cfg RequestIDConfig) weave.Handler {
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-Request-ID"
	}
	if cfg.Generator == nil {
		cfg.Generator = func() string {
			return uuid.New().String()
		}
	}

	return func(next weave.Func) weave.Func {
		return func(c *weave.Context) (*weave.Context, error) {
			if cfg.Skip != nil && cfg.Skip(c) {
				return next(c)
			}

			var id string
			if cfg.UseExisting {
				id = c.Request().Header.Get(cfg.HeaderName)
			}
			if id == "" {
				id = cfg.Generator()
			}

			c.Set(RequestIDKey, id)
			c.ResponseWriter().Header().Set(cfg.HeaderName, id)

			return next(c)
		}
	}
}
