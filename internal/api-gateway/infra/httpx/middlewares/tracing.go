package middlewares

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/jcmexdev/ecommerce-gateway/internal/pkg/interceptors/constants"
)

// AttachTracingMetadata copies the chi request id and the client's
// idempotency key into the context keys read by the gRPC client interceptor.
// It must run after middleware.RequestID.
func AttachTracingMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := middleware.GetReqID(r.Context())
		idempotencyKey := r.Header.Get(constants.HeaderXIdempotencyKey)

		ctx := context.WithValue(r.Context(), constants.ContextKeyRequestID, requestID)
		if idempotencyKey != "" {
			ctx = context.WithValue(ctx, constants.ContextKeyIdempotencyKey, idempotencyKey)
		}

		w.Header().Set(constants.HeaderXRequestId, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
