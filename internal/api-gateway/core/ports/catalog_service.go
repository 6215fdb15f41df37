package ports

import (
	"context"

	"github.com/jcmexdev/ecommerce-gateway/internal/api-gateway/core/domain/entity"
)

// CatalogService is the gateway's view of the product catalog. Single-id
// lookups and deletes return *entity.NotFoundError for unknown ids.
type CatalogService interface {
	GetProduct(ctx context.Context, id string) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id string) (*entity.Product, error)
	CreateProduct(ctx context.Context, p entity.Product) (string, error)
	// ListProducts returns the products among ids that exist. Unknown ids are
	// silently absent from the result.
	ListProducts(ctx context.Context, ids []string) ([]entity.Product, error)
}

// BatchObserver is told the size of every batched catalog lookup.
type BatchObserver interface {
	ObserveBatch(ids int)
}
