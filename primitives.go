package weave

import (
	"encoding/json"
	"io"
	"net/http"
)

// SetStatus sets the response status code and continues. The status is
// committed immediately, so compose header-writing handlers before it.
func SetStatus(code int) Handler {
	return Step(func(c *Context) error {
		c.ResponseWriter().WriteHeader(code)
		return nil
	})
}

// SetHeader sets a response header and continues. It has no effect on
// headers once the status line has been written.
func SetHeader(key, value string) Handler {
	return Step(func(c *Context) error {
		c.ResponseWriter().Header().Set(key, value)
		return nil
	})
}

// Text writes body as text/plain and continues, letting later composed
// handlers still run. The status is whatever an earlier SetStatus committed,
// or 200 on first write. Wrap in Terminal to end the chain instead.
func Text(body string) Handler {
	return Step(func(c *Context) error {
		return writeText(c.ResponseWriter(), body)
	})
}

// TextFunc is Text with the body derived from the live context, typically
// from route values.
func TextFunc(fn func(c *Context) string) Handler {
	return Step(func(c *Context) error {
		return writeText(c.ResponseWriter(), fn(c))
	})
}

// Respond writes a status code and a text/plain body, then continues.
// Place it last in a chain, or wrap it in Terminal, to finish a response.
func Respond(status int, body string) Handler {
	return Step(func(c *Context) error {
		w := c.ResponseWriter()
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		}
		w.WriteHeader(status)
		_, err := io.WriteString(w, body)
		return err
	})
}

// JSON encodes v as an application/json body and continues. Encoding
// failures abort the chain and surface at the dispatch boundary.
func JSON(v any) Handler {
	return Step(func(c *Context) error {
		w := c.ResponseWriter()
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		return json.NewEncoder(w).Encode(v)
	})
}

// RequireParam continues only when the named route value is present and
// non-empty; otherwise it writes a 404 and short-circuits. Useful at the
// head of a chain shared between patterns that bind different parameters.
func RequireParam(name string) Handler {
	return func(next Func) Func {
		return func(c *Context) (*Context, error) {
			if c.Param(name) == "" {
				if err := respondError(c.ResponseWriter(), http.StatusNotFound); err != nil {
					return nil, err
				}
				return nil, nil
			}
			return next(c)
		}
	}
}

func writeText(w http.ResponseWriter, body string) error {
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	_, err := io.WriteString(w, body)
	return err
}

func respondError(w http.ResponseWriter, status int) error {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, err := io.WriteString(w, http.StatusText(status))
	return err
}
