// Package ledgerv1 declares the ledger.v1.Ledger gRPC service.
package ledgerv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/jcmexdev/ecommerce-gateway/internal/pkg/rpc"
)

const ServiceName = "ledger.v1.Ledger"

const (
	Ledger_GetOrder_FullMethodName    = "/" + ServiceName + "/GetOrder"
	Ledger_ListOrders_FullMethodName  = "/" + ServiceName + "/ListOrders"
	Ledger_CreateOrder_FullMethodName = "/" + ServiceName + "/CreateOrder"
)

// OrderDetail is one line of an order. Price travels as a decimal string.
type OrderDetail struct {
	Id        int64  `json:"id,omitempty"`
	ProductId string `json:"product_id"`
	Price     string `json:"price"`
	Quantity  int64  `json:"quantity"`
}

type Order struct {
	Id           int64          `json:"id"`
	OrderDetails []*OrderDetail `json:"order_details"`
}

type GetOrderRequest struct {
	Id int64 `json:"id"`
}

type GetOrderResponse struct {
	Order *Order `json:"order"`
}

type ListOrdersResponse struct {
	Orders []*Order `json:"orders"`
}

type CreateOrderRequest struct {
	OrderDetails []*OrderDetail `json:"order_details"`
}

type CreateOrderResponse struct {
	Order *Order `json:"order"`
}

type LedgerServer interface {
	GetOrder(context.Context, *GetOrderRequest) (*GetOrderResponse, error)
	ListOrders(context.Context, *emptypb.Empty) (*ListOrdersResponse, error)
	CreateOrder(context.Context, *CreateOrderRequest) (*CreateOrderResponse, error)
}

var Ledger_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LedgerServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.UnaryMethod(ServiceName, "GetOrder", LedgerServer.GetOrder),
		rpc.UnaryMethod(ServiceName, "ListOrders", LedgerServer.ListOrders),
		rpc.UnaryMethod(ServiceName, "CreateOrder", LedgerServer.CreateOrder),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ledger/v1/ledger.go",
}

func RegisterLedgerServer(s grpc.ServiceRegistrar, srv LedgerServer) {
	s.RegisterService(&Ledger_ServiceDesc, srv)
}

type LedgerClient interface {
	GetOrder(ctx context.Context, in *GetOrderRequest, opts ...grpc.CallOption) (*GetOrderResponse, error)
	ListOrders(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ListOrdersResponse, error)
	CreateOrder(ctx context.Context, in *CreateOrderRequest, opts ...grpc.CallOption) (*CreateOrderResponse, error)
}

type ledgerClient struct {
	cc grpc.ClientConnInterface
}

func NewLedgerClient(cc grpc.ClientConnInterface) LedgerClient {
	return &ledgerClient{cc: cc}
}

func (c *ledgerClient) GetOrder(ctx context.Context, in *GetOrderRequest, opts ...grpc.CallOption) (*GetOrderResponse, error) {
	return rpc.Invoke[GetOrderResponse](ctx, c.cc, Ledger_GetOrder_FullMethodName, in, opts...)
}

func (c *ledgerClient) ListOrders(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ListOrdersResponse, error) {
	return rpc.Invoke[ListOrdersResponse](ctx, c.cc, Ledger_ListOrders_FullMethodName, in, opts...)
}

func (c *ledgerClient) CreateOrder(ctx context.Context, in *CreateOrderRequest, opts ...grpc.CallOption) (*CreateOrderResponse, error) {
	return rpc.Invoke[CreateOrderResponse](ctx, c.cc, Ledger_CreateOrder_FullMethodName, in, opts...)
}
