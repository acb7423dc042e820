// Package weave is a composition layer for HTTP request handling. It models
// a web application as a pipeline of small, short-circuiting steps glued
// together by a single composition operator and dispatched through an ordered,
// first-match route table.
//
// The building blocks are three types. A Func is one step of a pipeline: it
// receives the request Context and either hands it on, stops the chain, or
// fails. A Handler transforms the continuation representing the rest of the
// pipeline into a new pipeline, which lets a handler decide at request time
// whether the downstream steps run at all. Compose chains handlers
// left-to-right; it is associative and Identity is its unit, so pipelines can
// be grouped and reused freely.
//
// weave owns no networking. The Dispatcher implements http.Handler and plugs
// into whatever server the application already runs; it resolves a route,
// builds a fresh Context, runs the composed pipeline with the identity
// continuation, and reconciles the outcome into a response.
//
//	table := weave.MustTable([]weave.Entry{
//		{Method: http.MethodGet, Pattern: "/", Handler: weave.Respond(http.StatusOK, "hello world")},
//		{Method: http.MethodGet, Pattern: "/hello/{name:alpha}", Handler: weave.Compose(
//			weave.SetStatus(http.StatusOK),
//			weave.TextFunc(func(c *weave.Context) string {
//				return "hello, " + c.Param("name")
//			}),
//		)},
//	})
//
//	http.ListenAndServe(":8080", weave.NewDispatcher(table))
//
// Route patterns mix literal segments with parameters. A parameter is written
// {name} and accepts any non-empty segment, or {name:constraint} to restrict
// it; alpha, int, and uuid constraints are built in and custom ones can be
// registered per table as regular expressions. Matching scans the table in
// registration order and the first entry whose verb and full path both match
// wins; a constraint mismatch is a non-match for that entry, not an error.
//
// Faults never escape the dispatch boundary: an error returned by a step, or
// a panic raised inside one, is recovered by the Dispatcher and converted
// into a server-fault response without touching other in-flight requests.
// Composition itself does no recovery.
package weave
