package weave

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a fault with an associated HTTP status. A step that returns or
// panics with an Error gets that status in the server-fault response instead
// of a blanket 500.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e Error) Error() string {
	return e.Message
}

// WithMessage returns a copy of the error with a custom message.
func (e Error) WithMessage(message string) Error {
	e.Message = message
	return e
}

// Dispatch errors.
var (
	ErrNotFound = errors.New("no matching route")
)

// Table compilation errors.
var (
	ErrInvalidMethod     = errors.New("invalid http method")
	ErrInvalidPattern    = errors.New("route pattern must begin with '/'")
	ErrParamDelimiter    = errors.New("route param delimiters '{' '}' must enclose a whole segment")
	ErrDuplicateParam    = errors.New("route pattern contains duplicate param name")
	ErrUnknownConstraint = errors.New("route param references unregistered constraint")
	ErrNilHandler        = errors.New("route entry has nil handler")
	ErrNilTable          = errors.New("dispatcher requires a route table")
)

// ErrorHandler converts a dispatch-level fault into a response. It runs only
// when nothing has been written yet.
type ErrorHandler func(c *Context, err error)

// defaultErrorHandler maps ErrNotFound to 404, typed Error values to their
// own status, and everything else to 500.
func defaultErrorHandler(c *Context, err error) {
	w := c.ResponseWriter()
	if ww, ok := w.(*responseWriter); ok && ww.Written() {
		return
	}

	var fault Error
	if errors.As(err, &fault) {
		http.Error(w, fault.Message, fault.Status)
		return
	}

	if errors.Is(err, ErrNotFound) {
		http.Error(w, "404 Not Found", http.StatusNotFound)
		return
	}
	http.Error(w, "500 Internal Server Error", http.StatusInternalServerError)
}

// toError converts a recovered panic value to an error.
func toError(v any) error {
	switch e := v.(type) {
	case error:
		return e
	case string:
		return errors.New(e)
	default:
		return fmt.Errorf("panic: %v", e)
	}
}
