package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// UnaryMethod builds the grpc.MethodDesc for one unary method of service S.
// It mirrors the handler protoc-gen-go-grpc would emit, including the
// interceptor chain.
func UnaryMethod[S any, Req any, Resp any](
	fullService, method string,
	call func(srv S, ctx context.Context, req *Req) (*Resp, error),
) grpc.MethodDesc {
	fullMethod := "/" + fullService + "/" + method
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(S), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(S), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// Invoke performs a unary call and decodes the reply into a fresh Resp.
func Invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, fullMethod string, req any, opts ...grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	if err := cc.Invoke(ctx, fullMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
