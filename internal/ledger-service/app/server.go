package app

import (
	"context"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"

	ledgerv1 "github.com/jcmexdev/ecommerce-gateway/internal/api/ledger/v1"
	"github.com/jcmexdev/ecommerce-gateway/internal/ledger-service/adapters/grpc/mappers"
	"github.com/jcmexdev/ecommerce-gateway/internal/ledger-service/domain"
	"github.com/jcmexdev/ecommerce-gateway/internal/pkg/events"
)

var _ ledgerv1.LedgerServer = (*ledgerServer)(nil)

type ledgerServer struct {
	repo      domain.Repository
	publisher events.Publisher
}

func NewLedgerServer(repo domain.Repository, publisher events.Publisher) *ledgerServer {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &ledgerServer{repo: repo, publisher: publisher}
}

func (s *ledgerServer) GetOrder(ctx context.Context, req *ledgerv1.GetOrderRequest) (*ledgerv1.GetOrderResponse, error) {
	o, err := s.repo.Get(ctx, req.Id)
	if err != nil {
		return nil, mapError(err, req.Id)
	}
	return &ledgerv1.GetOrderResponse{Order: mappers.OrderToProto(o)}, nil
}

func (s *ledgerServer) ListOrders(ctx context.Context, _ *emptypb.Empty) (*ledgerv1.ListOrdersResponse, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err, 0)
	}
	return &ledgerv1.ListOrdersResponse{Orders: mappers.OrdersToProto(orders)}, nil
}

// CreateOrder stores the order and announces it. A repeated idempotency key
// returns the stored order without a second event.
func (s *ledgerServer) CreateOrder(ctx context.Context, req *ledgerv1.CreateOrderRequest) (*ledgerv1.CreateOrderResponse, error) {
	o, err := mappers.OrderFromProto(ctx, req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := o.Validate(); err != nil {
		return nil, mapError(err, 0)
	}

	stored, created, err := s.repo.Create(ctx, o)
	if err != nil {
		return nil, mapError(err, 0)
	}

	if !created {
		slog.InfoContext(ctx, "order replayed for idempotency key",
			"order_id", stored.ID, "request_id", o.RequestID)
		return &ledgerv1.CreateOrderResponse{Order: mappers.OrderToProto(stored)}, nil
	}

	slog.InfoContext(ctx, "order created",
		"order_id", stored.ID,
		"items", len(stored.Details),
		"total", stored.Total().StringFixed(2),
		"request_id", stored.RequestID,
	)

	if err := s.publisher.PublishOrderCreated(ctx, orderCreated(stored)); err != nil {
		slog.ErrorContext(ctx, "publish order_created failed", "order_id", stored.ID, "error", err)
	}

	return &ledgerv1.CreateOrderResponse{Order: mappers.OrderToProto(stored)}, nil
}

func orderCreated(o *domain.Order) events.OrderCreated {
	items := make([]events.OrderedItem, len(o.Details))
	for i, d := range o.Details {
		items[i] = events.OrderedItem{ProductID: d.ProductID, Quantity: d.Quantity}
	}
	return events.OrderCreated{OrderID: o.ID, Items: items}
}
