package services

import (
	"context"
	"fmt"

	"github.com/jcmexdev/ecommerce-gateway/internal/api-gateway/core/domain/entity"
	"github.com/jcmexdev/ecommerce-gateway/internal/api-gateway/core/ports"
)

// Validator checks that an order only references products the catalog knows.
type Validator struct {
	catalog ports.CatalogService
	opts    options
}

func NewValidator(catalog ports.CatalogService, opts ...Option) *Validator {
	return &Validator{catalog: catalog, opts: buildOptions(opts)}
}

// ValidateOrder issues at most one catalog lookup for the distinct product
// ids of items. The first item, in order, whose product is missing yields a
// *entity.ProductNotFoundError.
func (v *Validator) ValidateOrder(ctx context.Context, items []entity.LineItem) error {
	ids := entity.ProductIDs([]entity.Order{{Details: items}})
	if len(ids) == 0 {
		return nil
	}

	v.opts.observer.ObserveBatch(len(ids))
	products, err := v.catalog.ListProducts(ctx, ids)
	if err != nil {
		return fmt.Errorf("validate order: list products: %w", err)
	}

	known := entity.NewProductMap(products)
	for _, item := range items {
		if !known.Has(item.ProductID) {
			return &entity.ProductNotFoundError{ProductID: item.ProductID}
		}
	}
	return nil
}
