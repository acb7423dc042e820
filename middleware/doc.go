// Package middleware provides cross-cutting pipeline handlers for weave:
// structured request logging and request ID propagation. Each handler is an
// ordinary weave.Handler built from the composition algebra, configured
// through a Config struct with a WithConfig constructor, and skippable per
// request via a Skip function.
//
// Handlers that write to the per-request state bag document their keys as
// exported constants; downstream steps read them with Context.Get.
package middleware
