package mappers

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/trace"

	ledgerv1 "github.com/jcmexdev/ecommerce-gateway/internal/api/ledger/v1"
	"github.com/jcmexdev/ecommerce-gateway/internal/ledger-service/domain"
	"github.com/jcmexdev/ecommerce-gateway/internal/pkg/interceptors"
)

// PriceScale is the number of decimal places prices are rounded to on the way
// in and rendered with on the way out, so stored and returned values agree.
const PriceScale = 2

// OrderFromProto builds a new, unsaved order from the create request and the
// request metadata placed in ctx by the server interceptor.
func OrderFromProto(ctx context.Context, req *ledgerv1.CreateOrderRequest) (*domain.Order, error) {
	details, err := mapDetailsFromProto(req.OrderDetails)
	if err != nil {
		return nil, err
	}
	return &domain.Order{
		Details:        details,
		IdempotencyKey: interceptors.IdempotencyKeyFromContext(ctx),
		RequestID:      interceptors.RequestIDFromContext(ctx),
		TraceID:        traceID(ctx),
		CreatedAt:      time.Now().UTC(),
	}, nil
}

func OrderToProto(o *domain.Order) *ledgerv1.Order {
	if o == nil {
		return nil
	}
	return &ledgerv1.Order{
		Id:           o.ID,
		OrderDetails: mapDetailsToProto(o.Details),
	}
}

func OrdersToProto(orders []*domain.Order) []*ledgerv1.Order {
	out := make([]*ledgerv1.Order, len(orders))
	for i, o := range orders {
		out[i] = OrderToProto(o)
	}
	return out
}

func mapDetailsFromProto(pb []*ledgerv1.OrderDetail) ([]domain.OrderDetail, error) {
	details := make([]domain.OrderDetail, 0, len(pb))
	for i, d := range pb {
		if d == nil {
			return nil, fmt.Errorf("order_details[%d]: missing", i)
		}
		price, err := decimal.NewFromString(d.Price)
		if err != nil {
			return nil, fmt.Errorf("order_details[%d].price: %w", i, err)
		}
		price = price.Round(PriceScale)
		details = append(details, domain.OrderDetail{
			ProductID: d.ProductId,
			Price:     price,
			Quantity:  int(d.Quantity),
		})
	}
	return details, nil
}

func mapDetailsToProto(details []domain.OrderDetail) []*ledgerv1.OrderDetail {
	out := make([]*ledgerv1.OrderDetail, len(details))
	for i, d := range details {
		out[i] = &ledgerv1.OrderDetail{
			Id:        d.ID,
			ProductId: d.ProductID,
			Price:     d.Price.StringFixed(PriceScale),
			Quantity:  int64(d.Quantity),
		}
	}
	return out
}

// traceID returns the id of the span otelgrpc opened for this call.
func traceID(ctx context.Context) string {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return ""
	}
	return sc.TraceID().String()
}
