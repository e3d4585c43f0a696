package server

import (
	"runtime/debug"
	"time"

	"github.com/rs/zerolog"

	"github.com/rtreacy87/http-server/internal/request"
	"github.com/rtreacy87/http-server/internal/response"
	"github.com/rtreacy87/http-server/internal/router"
)

// Middleware wraps a handler with additional behavior.
type Middleware func(router.Handler) router.Handler

// LoggingMiddleware logs every handled request.
func LoggingMiddleware(log zerolog.Logger) Middleware {
	return func(next router.Handler) router.Handler {
		return router.HandlerFunc(func(req *request.Request) *response.Response {
			start := time.Now()

			resp := next.Handle(req)

			log.Info().
				Str("method", req.Method).
				Str("target", req.Target).
				Int("status", int(resp.Status)).
				Dur("duration", time.Since(start)).
				Msg("request handled")
			return resp
		})
	}
}

// RecoveryMiddleware converts a handler panic into a 500 response so one
// request's failure never takes down the connection loop.
func RecoveryMiddleware(log zerolog.Logger) Middleware {
	return func(next router.Handler) router.Handler {
		return router.HandlerFunc(func(req *request.Request) (resp *response.Response) {
			defer func() {
				if r := recover(); r != nil {
					log.Error().
						Interface("panic", r).
						Str("target", req.Target).
						Bytes("stack", debug.Stack()).
						Msg("handler panicked")
					resp = response.Error(response.StatusInternalServerError, "Internal server error")
				}
			}()

			return next.Handle(req)
		})
	}
}

// MetricsMiddleware records a counter and latency sample per request.
func MetricsMiddleware(m *Metrics) Middleware {
	return func(next router.Handler) router.Handler {
		return router.HandlerFunc(func(req *request.Request) *response.Response {
			start := time.Now()

			resp := next.Handle(req)

			m.RecordRequest(resp.Status, time.Since(start))
			return resp
		})
	}
}
