package weave

import (
	"log/slog"
	"net/http"
)

// Dispatcher is the per-request entry point. It implements http.Handler so
// it plugs into any net/http host: the host owns listening, TLS, and
// connection lifecycle, and delivers requests here one at a time.
//
// For each request the dispatcher resolves a route, builds a fresh Context
// with the bound route values, runs the composed pipeline with the Terminate
// continuation, and reconciles the outcome: a short-circuit means a step
// already finalized the response; a live context with nothing written gets
// the default response; faults and misses go through the error handler.
type Dispatcher struct {
	table        *Table
	handlers     []Handler
	errorHandler ErrorHandler
	defaultResp  Handler
	log          *slog.Logger
}

// NewDispatcher builds a dispatcher over an already-compiled route table.
// The table is shared read-only; the dispatcher never mutates it.
func NewDispatcher(table *Table, opts ...Option) *Dispatcher {
	if table == nil {
		panic(ErrNilTable)
	}
	d := &Dispatcher{
		table:        table,
		errorHandler: defaultErrorHandler,
		defaultResp:  SetStatus(http.StatusNoContent),
		log:          slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ServeHTTP implements http.Handler.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ww := &responseWriter{ResponseWriter: w}

	path := r.URL.Path
	if path == "" {
		path = "/"
	}

	m, ok := d.table.Match(r.Method, path)
	if !ok {
		// No user code runs for a miss.
		d.errorHandler(NewContext(ww, r, nil), ErrNotFound)
		return
	}

	ctx := NewContext(ww, r, m.Params)

	// Faults are recovered here and nowhere else; a panicking step must not
	// take down the serving loop for other in-flight requests.
	defer func() {
		if rec := recover(); rec != nil {
			err := toError(rec)
			d.log.Error("recovered handler panic",
				slog.String("method", r.Method),
				slog.String("path", path),
				slog.Any("error", err),
			)
			if !ww.Written() {
				d.errorHandler(ctx, err)
			}
		}
	}()

	h := m.Entry.Handler
	if len(d.handlers) > 0 {
		chain := make([]Handler, 0, len(d.handlers)+1)
		chain = append(chain, d.handlers...)
		chain = append(chain, h)
		h = Compose(chain...)
	}

	res, err := h(Terminate)(ctx)
	if err != nil {
		d.log.Error("handler fault",
			slog.String("method", r.Method),
			slog.String("path", path),
			slog.Any("error", err),
		)
		if !ww.Written() {
			d.errorHandler(ctx, err)
		}
		return
	}

	// A live context with nothing written means the pipeline completed
	// without producing a response; apply the default.
	if res != nil && !ww.Written() {
		if _, err := d.defaultResp(Terminate)(res); err != nil {
			d.errorHandler(res, err)
		}
	}
}
