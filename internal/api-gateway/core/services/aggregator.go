package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/jcmexdev/ecommerce-gateway/internal/api-gateway/core/domain/entity"
	"github.com/jcmexdev/ecommerce-gateway/internal/api-gateway/core/ports"
)

// Aggregator attaches product details and image URLs to order line items.
type Aggregator struct {
	catalog   ports.CatalogService
	imageRoot string
	opts      options
}

func NewAggregator(catalog ports.CatalogService, imageRoot string, opts ...Option) *Aggregator {
	return &Aggregator{
		catalog:   catalog,
		imageRoot: strings.TrimRight(imageRoot, "/"),
		opts:      buildOptions(opts),
	}
}

// ImageURL is the public image location of a product.
func (a *Aggregator) ImageURL(productID string) string {
	return a.imageRoot + "/" + productID + ".jpg"
}

// EnrichOrders fetches every referenced product in one catalog call and
// returns copies of orders with Product and Image set on each line item.
// Orders and items keep their sequence. When no order has items the catalog
// is not called.
func (a *Aggregator) EnrichOrders(ctx context.Context, orders []entity.Order) ([]entity.Order, error) {
	ids := entity.ProductIDs(orders)
	if len(ids) == 0 {
		return orders, nil
	}

	a.opts.observer.ObserveBatch(len(ids))
	products, err := a.catalog.ListProducts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("enrich orders: list products: %w", err)
	}
	byID := entity.NewProductMap(products)

	out := make([]entity.Order, len(orders))
	for i, o := range orders {
		details := make([]entity.LineItem, len(o.Details))
		for j, item := range o.Details {
			p, ok := byID[item.ProductID]
			if !ok {
				return nil, &entity.CatalogInconsistencyError{ProductID: item.ProductID}
			}
			item.Product = &p
			item.Image = a.ImageURL(item.ProductID)
			details[j] = item
		}
		out[i] = entity.Order{ID: o.ID, Details: details}
	}
	return out, nil
}

func (a *Aggregator) EnrichOrder(ctx context.Context, order entity.Order) (entity.Order, error) {
	enriched, err := a.EnrichOrders(ctx, []entity.Order{order})
	if err != nil {
		return entity.Order{}, err
	}
	return enriched[0], nil
}
