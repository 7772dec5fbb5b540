// Package kit holds the transport-agnostic service plumbing: the Endpoint
// abstraction, middleware chaining, request-scoped context values and the
// MCP tool adapter.
package kit

import (
	"context"
	"log/slog"
	"time"
)

// Endpoint is a single service operation, independent of transport.
// HTTP handlers and MCP tools both dispatch to Endpoints.
type Endpoint func(ctx context.Context, req any) (any, error)

// Middleware wraps an Endpoint with cross-cutting behaviour.
type Middleware func(Endpoint) Endpoint

// Chain composes middlewares left to right: the first argument is the
// outermost wrapper.
func Chain(mws ...Middleware) Middleware {
	return func(next Endpoint) Endpoint {
		for i := len(mws) - 1; i >= 0; i-- {
			next = mws[i](next)
		}
		return next
	}
}

// Logging logs each call with its duration and outcome.
func Logging(log *slog.Logger, op string) Middleware {
	return func(next Endpoint) Endpoint {
		return func(ctx context.Context, req any) (any, error) {
			start := time.Now()
			resp, err := next(ctx, req)
			if err != nil {
				log.Error("endpoint failed", "op", op, "duration", time.Since(start), "error", err)
				return resp, err
			}
			log.Info("endpoint ok", "op", op, "duration", time.Since(start))
			return resp, nil
		}
	}
}
