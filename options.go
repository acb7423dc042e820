package weave

import "log/slog"

// Option configures a Dispatcher during creation.
type Option func(*Dispatcher)

// WithErrorHandler replaces the default not-found / server-fault responder.
func WithErrorHandler(h ErrorHandler) Option {
	return func(d *Dispatcher) {
		if h != nil {
			d.errorHandler = h
		}
	}
}

// WithHandlers prepends handlers to every matched route's pipeline, in the
// given order. This is the place for cross-cutting steps such as logging or
// request IDs.
func WithHandlers(handlers ...Handler) Option {
	return func(d *Dispatcher) {
		d.handlers = append(d.handlers, handlers...)
	}
}

// WithDefaultResponse replaces the response applied when a pipeline
// completes with a live context but never writes. The default is an empty
// 204 No Content.
func WithDefaultResponse(h Handler) Option {
	return func(d *Dispatcher) {
		if h != nil {
			d.defaultResp = h
		}
	}
}

// WithLogger sets the logger for dispatch-level fault reporting. Faults are
// logged even when a custom error handler is installed.
func WithLogger(log *slog.Logger) Option {
	return func(d *Dispatcher) {
		if log != nil {
			d.log = log
		}
	}
}
