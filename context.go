package weave

import (
	"net/http"
	"time"
)

// Context carries one request/response exchange through a pipeline.
// It delegates all context.Context methods to the request's context, so a
// step that performs I/O can select on Done() and observe host-side
// cancellation. A Context is created by the Dispatcher per request and must
// not be retained after the pipeline completes.
type Context struct {
	w      http.ResponseWriter
	r      *http.Request
	params map[string]string
	values map[string]any
}

// NewContext builds a Context around one exchange. The dispatcher calls it
// per request with the matched route values; tests and custom hosts may call
// it directly, with nil params for routes that bind none.
func NewContext(w http.ResponseWriter, r *http.Request, params map[string]string) *Context {
	return &Context{
		w:      w,
		r:      r,
		params: params,
	}
}

// Deadline returns the time when work done on behalf of this request
// should be canceled. Delegates to r.Context().
func (c *Context) Deadline() (deadline time.Time, ok bool) {
	return c.r.Context().Deadline()
}

// Done returns a channel that's closed when the request's lifetime ends.
// Delegates to r.Context().
func (c *Context) Done() <-chan struct{} {
	return c.r.Context().Done()
}

// Err returns a non-nil error value after Done is closed. Delegates to r.Context().
func (c *Context) Err() error {
	return c.r.Context().Err()
}

// Value returns the value associated with the request context for key.
// The per-request state bag (Set/Get) is separate and string-keyed.
func (c *Context) Value(key any) any {
	return c.r.Context().Value(key)
}

// Request returns the *http.Request associated with the context.
func (c *Context) Request() *http.Request {
	return c.r
}

// ResponseWriter returns the http.ResponseWriter associated with the context.
func (c *Context) ResponseWriter() http.ResponseWriter {
	return c.w
}

// Param returns the route value bound to name, or "" when the pattern that
// matched this request has no such parameter. Route values are bound once at
// match time.
func (c *Context) Param(name string) string {
	if c.params == nil {
		return ""
	}
	return c.params[name]
}

// ParamOr returns the route value bound to name, or fallback when absent.
// The lookup fails soft; there is no error path.
func (c *Context) ParamOr(name, fallback string) string {
	if c.params == nil {
		return fallback
	}
	if v, ok := c.params[name]; ok {
		return v
	}
	return fallback
}

// Set stores val in the per-request state bag. The bag is scoped to this
// request only and is meant for passing data between steps of one pipeline;
// packages that write to it should document their keys.
func (c *Context) Set(key string, val any) {
	if c.values == nil {
		c.values = make(map[string]any)
	}
	c.values[key] = val
}

// Get reads a value from the per-request state bag.
func (c *Context) Get(key string) (any, bool) {
	if c.values == nil {
		return nil, false
	}
	v, ok := c.values[key]
	return v, ok
}

// MustGet reads a value from the state bag and panics when the key is
// absent. Use it for keys a preceding step is contractually required to set.
func (c *Context) MustGet(key string) any {
	v, ok := c.Get(key)
	if !ok {
		panic("weave: missing context value for key " + key)
	}
	return v
}
