package weave_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/weave"
)

func newTestContext(t *testing.T) (*weave.Context, *httptest.ResponseRecorder) {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return weave.NewContext(rec, req, nil), rec
}

// append-to-bag handler used to observe execution order.
func record(trace *[]string, name string) weave.Handler {
	return weave.Step(func(c *weave.Context) error {
		*trace = append(*trace, name)
		return nil
	})
}

func TestCompose_Associativity(t *testing.T) {
	t.Parallel()

	run := func(t *testing.T, h weave.Handler) (*weave.Context, []string, error) {
		t.Helper()
		var trace []string
		ctx, _ := newTestContext(t)
		ctx.Set("trace", &trace)
		res, err := h(weave.Terminate)(ctx)
		return res, trace, err
	}

	var left, right []string
	a := weave.Step(func(c *weave.Context) error {
		tr := c.MustGet("trace").(*[]string)
		*tr = append(*tr, "a")
		return nil
	})
	b := weave.Step(func(c *weave.Context) error {
		tr := c.MustGet("trace").(*[]string)
		*tr = append(*tr, "b")
		return nil
	})
	cc := weave.Step(func(c *weave.Context) error {
		tr := c.MustGet("trace").(*[]string)
		*tr = append(*tr, "c")
		return nil
	})

	resL, left, errL := run(t, weave.Compose(weave.Compose(a, b), cc))
	resR, right, errR := run(t, weave.Compose(a, weave.Compose(b, cc)))

	require.NoError(t, errL)
	require.NoError(t, errR)
	assert.NotNil(t, resL)
	assert.NotNil(t, resR)
	assert.Equal(t, []string{"a", "b", "c"}, left)
	assert.Equal(t, left, right)
}

func TestCompose_Identity(t *testing.T) {
	t.Parallel()

	t.Run("identity_left", func(t *testing.T) {
		t.Parallel()

		ctx, rec := newTestContext(t)
		h := weave.Compose(weave.Identity, weave.Respond(http.StatusOK, "body"))
		res, err := h(weave.Terminate)(ctx)

		require.NoError(t, err)
		assert.NotNil(t, res)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "body", rec.Body.String())
	})

	t.Run("identity_right", func(t *testing.T) {
		t.Parallel()

		ctx, rec := newTestContext(t)
		h := weave.Compose(weave.Respond(http.StatusOK, "body"), weave.Identity)
		res, err := h(weave.Terminate)(ctx)

		require.NoError(t, err)
		assert.NotNil(t, res)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "body", rec.Body.String())
	})

	t.Run("empty_compose_is_identity", func(t *testing.T) {
		t.Parallel()

		ctx, _ := newTestContext(t)
		res, err := weave.Compose()(weave.Terminate)(ctx)

		require.NoError(t, err)
		assert.Same(t, ctx, res)
	})
}

func TestCompose_ShortCircuit(t *testing.T) {
	t.Parallel()

	t.Run("absent_result_skips_continuation", func(t *testing.T) {
		t.Parallel()

		stop := weave.Handler(func(next weave.Func) weave.Func {
			return func(c *weave.Context) (*weave.Context, error) {
				return nil, nil // never calls next
			}
		})

		probeRan := false
		probe := weave.Func(func(c *weave.Context) (*weave.Context, error) {
			probeRan = true
			return c, nil
		})

		ctx, _ := newTestContext(t)
		res, err := stop(probe)(ctx)

		require.NoError(t, err)
		assert.Nil(t, res)
		assert.False(t, probeRan, "continuation must never run after a short-circuit")
	})

	t.Run("absence_propagates_through_compose", func(t *testing.T) {
		t.Parallel()

		var trace []string
		stop := weave.Handler(func(next weave.Func) weave.Func {
			return func(c *weave.Context) (*weave.Context, error) {
				trace = append(trace, "stop")
				return nil, nil
			}
		})

		ctx, _ := newTestContext(t)
		h := weave.Compose(record(&trace, "first"), stop, record(&trace, "never"))
		res, err := h(weave.Terminate)(ctx)

		require.NoError(t, err)
		assert.Nil(t, res)
		assert.Equal(t, []string{"first", "stop"}, trace)
	})
}

func TestCompose_ErrorPropagation(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	var trace []string
	failing := weave.Step(func(c *weave.Context) error { return boom })

	ctx, _ := newTestContext(t)
	h := weave.Compose(record(&trace, "before"), failing, record(&trace, "after"))
	res, err := h(weave.Terminate)(ctx)

	assert.Nil(t, res)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"before"}, trace)
}

func TestTerminal(t *testing.T) {
	t.Parallel()

	var trace []string
	ctx, rec := newTestContext(t)

	h := weave.Compose(
		weave.Terminal(weave.Respond(http.StatusTeapot, "tea")),
		record(&trace, "downstream"),
	)
	res, err := h(weave.Terminate)(ctx)

	require.NoError(t, err)
	assert.Nil(t, res)
	assert.Empty(t, trace, "terminal handler must cut off the rest of the chain")
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "tea", rec.Body.String())
}

func TestWhen(t *testing.T) {
	t.Parallel()

	hasParam := func(c *weave.Context) bool { return c.Param("name") != "" }

	t.Run("runs_branch_when_pred_holds", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		ctx := weave.NewContext(rec, req, map[string]string{"name": "ada"})

		res, err := weave.When(hasParam, weave.Text("hit"))(weave.Terminate)(ctx)
		require.NoError(t, err)
		assert.NotNil(t, res)
		assert.Equal(t, "hit", rec.Body.String())
	})

	t.Run("passes_through_otherwise", func(t *testing.T) {
		t.Parallel()

		ctx, rec := newTestContext(t)
		res, err := weave.When(hasParam, weave.Text("hit"))(weave.Terminate)(ctx)
		require.NoError(t, err)
		assert.NotNil(t, res)
		assert.Empty(t, rec.Body.String())
	})
}

func TestHandler_MayInvokeContinuationTwice(t *testing.T) {
	t.Parallel()

	// Retry-style handler: the algebra allows calling the continuation more
	// than once.
	retry := weave.Handler(func(next weave.Func) weave.Func {
		return func(c *weave.Context) (*weave.Context, error) {
			if res, err := next(c); err == nil {
				return res, nil
			}
			return next(c)
		}
	})

	calls := 0
	flaky := weave.Handler(func(next weave.Func) weave.Func {
		return func(c *weave.Context) (*weave.Context, error) {
			calls++
			if calls == 1 {
				return nil, errors.New("transient")
			}
			return next(c)
		}
	})

	ctx, _ := newTestContext(t)
	res, err := weave.Compose(retry, flaky)(weave.Terminate)(ctx)

	require.NoError(t, err)
	assert.NotNil(t, res)
	assert.Equal(t, 2, calls)
}
