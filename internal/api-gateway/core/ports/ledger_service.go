package ports

import (
	"context"

	"github.com/jcmexdev/ecommerce-gateway/internal/api-gateway/core/domain/entity"
)

// LedgerService persists orders. The idempotency key, if any, travels in ctx.
type LedgerService interface {
	GetOrder(ctx context.Context, id int64) (*entity.Order, error)
	ListOrders(ctx context.Context) ([]entity.Order, error)
	CreateOrder(ctx context.Context, items []entity.LineItem) (*entity.Order, error)
}

