package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrEmptyProductID = errors.New("order detail product_id is required")
	ErrBadQuantity    = errors.New("order detail quantity must be positive")
	ErrNegativePrice  = errors.New("order detail price cannot be negative")
)

type Order struct {
	ID             int64
	Details        []OrderDetail
	IdempotencyKey string
	RequestID      string
	// TraceID links the row to the trace that created it; empty when
	// tracing is off.
	TraceID        string
	CreatedAt      time.Time
}

type OrderDetail struct {
	ID        int64
	ProductID string
	Price     decimal.Decimal
	Quantity  int
}

func (d OrderDetail) Subtotal() decimal.Decimal {
	return d.Price.Mul(decimal.NewFromInt(int64(d.Quantity)))
}

func (o Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, d := range o.Details {
		total = total.Add(d.Subtotal())
	}
	return total
}

func (o Order) Validate() error {
	for _, d := range o.Details {
		if d.ProductID == "" {
			return ErrEmptyProductID
		}
		if d.Quantity <= 0 {
			return ErrBadQuantity
		}
		if d.Price.IsNegative() {
			return ErrNegativePrice
		}
	}
	return nil
}

// Repository persists orders. Create assigns ids to the order and each detail.
// When the order carries an idempotency key already stored, Create returns
// the stored order and created=false.
type Repository interface {
	Create(ctx context.Context, o *Order) (stored *Order, created bool, err error)
	Get(ctx context.Context, id int64) (*Order, error)
	List(ctx context.Context) ([]*Order, error)
}
