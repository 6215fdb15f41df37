package interceptors

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/jcmexdev/ecommerce-gateway/internal/pkg/interceptors/constants"
)

// TraceServerInterceptor copies x-request-id and x-idempotency-key from the
// incoming metadata into the context and logs every call with its outcome.
func TraceServerInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		requestID := firstValue(ctx, constants.HeaderXRequestId)
		idempotencyKey := firstValue(ctx, constants.HeaderXIdempotencyKey)

		ctx = context.WithValue(ctx, constants.ContextKeyRequestID, requestID)
		ctx = context.WithValue(ctx, constants.ContextKeyIdempotencyKey, idempotencyKey)

		start := time.Now()
		resp, err := handler(ctx, req)

		slog.InfoContext(ctx, "rpc handled",
			"method", info.FullMethod,
			"request_id", requestID,
			"code", status.Code(err).String(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return resp, err
	}
}

// PropagateClientInterceptor forwards the request id and idempotency key
// stored in the context as outgoing metadata. Calls made outside an HTTP
// request get a fresh request id so backend logs can still be correlated.
func PropagateClientInterceptor() grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context,
		method string,
		req, reply any,
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		requestID := RequestIDFromContext(ctx)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx = metadata.AppendToOutgoingContext(ctx, constants.HeaderXRequestId, requestID)
		if key := IdempotencyKeyFromContext(ctx); key != "" {
			ctx = metadata.AppendToOutgoingContext(ctx, constants.HeaderXIdempotencyKey, key)
		}
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(constants.ContextKeyRequestID).(string)
	return id
}

func IdempotencyKeyFromContext(ctx context.Context) string {
	key, _ := ctx.Value(constants.ContextKeyIdempotencyKey).(string)
	return key
}

func firstValue(ctx context.Context, key string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if vals := md.Get(key); len(vals) > 0 {
		return vals[0]
	}
	return ""
}
