package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/protobuf/types/known/emptypb"

	ledgerv1 "github.com/jcmexdev/ecommerce-gateway/internal/api/ledger/v1"

	"github.com/jcmexdev/ecommerce-gateway/internal/api-gateway/core/domain/entity"
	"github.com/jcmexdev/ecommerce-gateway/internal/api-gateway/core/ports"
)

// GRPCLedgerService talks to ledger.v1.Ledger.
type GRPCLedgerService struct {
	client  ledgerv1.LedgerClient
	timeout time.Duration
}

var _ ports.LedgerService = (*GRPCLedgerService)(nil)

func NewGRPCLedgerClient(client ledgerv1.LedgerClient, timeout time.Duration) ports.LedgerService {
	return &GRPCLedgerService{client: client, timeout: timeout}
}

func (s *GRPCLedgerService) GetOrder(ctx context.Context, id int64) (*entity.Order, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.client.GetOrder(ctx, &ledgerv1.GetOrderRequest{Id: id})
	if err != nil {
		return nil, translateError("GetOrder", entity.ResourceOrder, strconv.FormatInt(id, 10), err)
	}
	if res.Order == nil {
		return nil, fmt.Errorf("grpc GetOrder: empty order in response")
	}
	return mapProtoOrderToEntity(res.Order)
}

func (s *GRPCLedgerService) ListOrders(ctx context.Context) ([]entity.Order, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.client.ListOrders(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, fmt.Errorf("grpc ListOrders: %w", err)
	}

	out := make([]entity.Order, 0, len(res.Orders))
	for _, po := range res.Orders {
		if po == nil {
			continue
		}
		o, err := mapProtoOrderToEntity(po)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, nil
}

func (s *GRPCLedgerService) CreateOrder(ctx context.Context, items []entity.LineItem) (*entity.Order, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	details := make([]*ledgerv1.OrderDetail, 0, len(items))
	for _, it := range items {
		details = append(details, &ledgerv1.OrderDetail{
			ProductId: it.ProductID,
			Price:     it.Price.String(),
			Quantity:  int64(it.Quantity),
		})
	}

	res, err := s.client.CreateOrder(ctx, &ledgerv1.CreateOrderRequest{OrderDetails: details})
	if err != nil {
		return nil, translateError("CreateOrder", entity.ResourceOrder, "", err)
	}
	if res.Order == nil {
		return nil, fmt.Errorf("grpc CreateOrder: empty order in response")
	}
	return mapProtoOrderToEntity(res.Order)
}

func mapProtoOrderToEntity(po *ledgerv1.Order) (*entity.Order, error) {
	details := make([]entity.LineItem, 0, len(po.OrderDetails))
	for _, d := range po.OrderDetails {
		if d == nil {
			continue
		}
		price, err := decimal.NewFromString(d.Price)
		if err != nil {
			return nil, fmt.Errorf("order %d: price of %s: %w", po.Id, d.ProductId, err)
		}
		details = append(details, entity.LineItem{
			ID:        d.Id,
			ProductID: d.ProductId,
			Price:     price,
			Quantity:  int(d.Quantity),
		})
	}
	return &entity.Order{ID: po.Id, Details: details}, nil
}
