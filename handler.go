package weave

// Func is a single step of a request pipeline. Returning (c, nil) hands the
// context to the next step; returning (nil, nil) signals that the response is
// finalized and nothing further should run. A non-nil error aborts the chain
// and surfaces at the dispatch boundary. There is no separate abort signal:
// absence of context is early termination.
type Func func(c *Context) (*Context, error)

// Handler transforms the continuation representing the rest of the pipeline
// into the function that actually runs for this position in the chain. A
// handler may call its continuation once, not at all, or several times; the
// decision is made at request time against the live Context.
type Handler func(next Func) Func

// Identity forwards the context to its continuation unchanged. It is the
// unit of Compose: composing any handler with Identity on either side
// behaves like the handler alone.
func Identity(next Func) Func {
	return next
}

// Terminate is the end-of-chain continuation: it returns the context as-is.
// The Dispatcher supplies it at the top of every pipeline.
func Terminate(c *Context) (*Context, error) {
	return c, nil
}

// Compose chains handlers left-to-right: the first handler runs first, and
// each one decides whether the remainder runs at all. Composition is
// associative, so Compose(a, b, c), Compose(Compose(a, b), c), and
// Compose(a, Compose(b, c)) are interchangeable. Compose() is Identity.
func Compose(handlers ...Handler) Handler {
	return func(next Func) Func {
		f := next
		// Wrap right-to-left so the leftmost handler runs first.
		for i := len(handlers) - 1; i >= 0; i-- {
			f = handlers[i](f)
		}
		return f
	}
}

// Step lifts a plain action into a Handler that performs it and continues.
// A returned error aborts the chain.
func Step(fn func(c *Context) error) Handler {
	return func(next Func) Func {
		return func(c *Context) (*Context, error) {
			if err := fn(c); err != nil {
				return nil, err
			}
			return next(c)
		}
	}
}

// Terminal runs h with a stop continuation and short-circuits afterwards,
// regardless of whether h called its continuation. Use it to make a writing
// handler the definitive end of a pipeline.
func Terminal(h Handler) Handler {
	stop := func(*Context) (*Context, error) { return nil, nil }
	return func(Func) Func {
		f := h(stop)
		return func(c *Context) (*Context, error) {
			if _, err := f(c); err != nil {
				return nil, err
			}
			return nil, nil
		}
	}
}

// When runs h only if pred holds for the live context; otherwise the
// pipeline passes through untouched.
func When(pred func(c *Context) bool, h Handler) Handler {
	return func(next Func) Func {
		branch := h(next)
		return func(c *Context) (*Context, error) {
			if pred(c) {
				return branch(c)
			}
			return next(c)
		}
	}
}
