// Package constants names the request metadata shared by the HTTP gateway
// and the gRPC backends.
package constants

// contextKey keeps our context values apart from other packages' string keys.
type contextKey string

const (
	HeaderXRequestId      = "x-request-id"
	HeaderXIdempotencyKey = "x-idempotency-key"

	ContextKeyRequestID      contextKey = HeaderXRequestId
	ContextKeyIdempotencyKey contextKey = HeaderXIdempotencyKey
)
