// Package server exposes token validation over HTTP using Gin, served over
// HTTP/1.1 and h2c.
//
// # Middleware
//
// Built-in middleware (server/middleware), applied around every route:
//
//   - Recovery: panic recovery answering INTERNAL_ERROR
//   - RequestID: X-Request-Id generation and propagation
//   - RequestLogger: request logging with duration tracking
//   - Metrics: OpenTelemetry request counters
//   - CORS: cross-origin resource sharing
//   - RateLimit: per-client sliding-window limit
//   - BodySizeLimit: request body size limit
//
// # Endpoints
//
//   - POST /v1/validate: verify a token for a provider
//   - /health, /alive, /ready: health aggregation and probes
//   - /info, /version: build information
//   - /metrics: runtime memory and goroutine counts
package server
