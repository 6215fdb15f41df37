package interceptors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/jcmexdev/ecommerce-gateway/internal/pkg/interceptors/constants"
)

func TestTraceServerInterceptorCopiesMetadata(t *testing.T) {
	md := metadata.Pairs(
		constants.HeaderXRequestId, "req-1",
		constants.HeaderXIdempotencyKey, "idem-1",
	)
	ctx := metadata.NewIncomingContext(context.Background(), md)

	var gotReq, gotKey string
	handler := func(ctx context.Context, req any) (any, error) {
		gotReq = RequestIDFromContext(ctx)
		gotKey = IdempotencyKeyFromContext(ctx)
		return "ok", nil
	}

	resp, err := TraceServerInterceptor()(ctx, nil, &grpc.UnaryServerInfo{FullMethod: "/x/Y"}, handler)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
	assert.Equal(t, "req-1", gotReq)
	assert.Equal(t, "idem-1", gotKey)
}

func TestPropagateClientInterceptor(t *testing.T) {
	ctx := context.WithValue(context.Background(), constants.ContextKeyRequestID, "req-2")
	ctx = context.WithValue(ctx, constants.ContextKeyIdempotencyKey, "idem-2")

	var out metadata.MD
	invoker := func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		out, _ = metadata.FromOutgoingContext(ctx)
		return nil
	}

	require.NoError(t, PropagateClientInterceptor()(ctx, "/x/Y", nil, nil, nil, invoker))
	assert.Equal(t, []string{"req-2"}, out.Get(constants.HeaderXRequestId))
	assert.Equal(t, []string{"idem-2"}, out.Get(constants.HeaderXIdempotencyKey))
}

func TestPropagateClientInterceptorGeneratesRequestID(t *testing.T) {
	var out metadata.MD
	invoker := func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		out, _ = metadata.FromOutgoingContext(ctx)
		return nil
	}

	require.NoError(t, PropagateClientInterceptor()(context.Background(), "/x/Y", nil, nil, nil, invoker))
	ids := out.Get(constants.HeaderXRequestId)
	require.Len(t, ids, 1)
	assert.Len(t, ids[0], 36)
	assert.Empty(t, out.Get(constants.HeaderXIdempotencyKey))
}
