package middleware

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/weave"
)

// statuser is satisfied by the dispatcher's response writer wrapper.
type statuser interface {
	Status() int
	Written() bool
}

// LoggingConfig configures the request logging handler.
type LoggingConfig struct {
	// Skip defines a function to skip the handler for specific requests
	Skip func(c *weave.Context) bool

	// Logger is the slog logger to use (default: slog.Default())
	Logger *slog.Logger

	// LogLevel for completed requests (default: slog.LevelInfo)
	LogLevel slog.Level

	// SlowRequestThreshold escalates requests slower than this to warn level
	// (default: disabled)
	SlowRequestThreshold time.Duration
}

// Logging creates a request logging handler with default configuration.
// One structured record is emitted per request after the downstream pipeline
// finishes, carrying method, path, status, duration, and the request ID when
// a preceding RequestID handler stored one.
func Logging() weave.Handler {
	return LoggingWithConfig(LoggingConfig{})
}

// LoggingWithConfig creates a request logging handler with custom
// configuration. Faults returned by the downstream pipeline are logged at
// error level and re-propagated untouched.
func LoggingWithConfig(cfg LoggingConfig) weave.Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return func(next weave.Func) weave.Func {
		return func(c *weave.Context) (*weave.Context, error) {
			if cfg.Skip != nil && cfg.Skip(c) {
				return next(c)
			}

			start := time.Now()
			res, err := next(c)
			elapsed := time.Since(start)

			attrs := []slog.Attr{
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Duration("duration", elapsed),
			}
			if s, ok := c.ResponseWriter().(statuser); ok && s.Written() {
				attrs = append(attrs, slog.Int("status", s.Status()))
			}
			if id, ok := c.Get(RequestIDKey); ok {
				attrs = append(attrs, slog.Any("request_id", id))
			}

			level := cfg.LogLevel
			msg := "request completed"
			switch {
			case err != nil:
				level = slog.LevelError
				msg = "request failed"
				attrs = append(attrs, slog.Any("error", err))
			case cfg.SlowRequestThreshold > 0 && elapsed > cfg.SlowRequestThreshold:
				level = slog.LevelWarn
				msg = "slow request"
			}

			cfg.Logger.LogAttrs(c, level, msg, attrs...)

			return res, err
		}
	}
}
