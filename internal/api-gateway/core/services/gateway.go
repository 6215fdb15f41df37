// Package services orchestrates gateway operations over the catalog and
// ledger ports.
package services

import (
	"context"
	"fmt"

	"github.com/jcmexdev/ecommerce-gateway/internal/api-gateway/core/domain/entity"
	"github.com/jcmexdev/ecommerce-gateway/internal/api-gateway/core/ports"
)

type Gateway struct {
	catalog    ports.CatalogService
	ledger     ports.LedgerService
	validator  *Validator
	aggregator *Aggregator
}

func NewGateway(catalog ports.CatalogService, ledger ports.LedgerService, imageRoot string, opts ...Option) *Gateway {
	return &Gateway{
		catalog:    catalog,
		ledger:     ledger,
		validator:  NewValidator(catalog, opts...),
		aggregator: NewAggregator(catalog, imageRoot, opts...),
	}
}

func (g *Gateway) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	return g.catalog.GetProduct(ctx, id)
}

func (g *Gateway) DeleteProduct(ctx context.Context, id string) (*entity.Product, error) {
	return g.catalog.DeleteProduct(ctx, id)
}

func (g *Gateway) CreateProduct(ctx context.Context, p entity.Product) (string, error) {
	return g.catalog.CreateProduct(ctx, p)
}

func (g *Gateway) ListOrders(ctx context.Context) ([]entity.Order, error) {
	orders, err := g.ledger.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	return g.aggregator.EnrichOrders(ctx, orders)
}

func (g *Gateway) GetOrder(ctx context.Context, id int64) (*entity.Order, error) {
	order, err := g.ledger.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	enriched, err := g.aggregator.EnrichOrder(ctx, *order)
	if err != nil {
		return nil, err
	}
	return &enriched, nil
}

// CreateOrder validates product references before the ledger sees the order,
// so an unknown product never reaches persistence.
func (g *Gateway) CreateOrder(ctx context.Context, items []entity.LineItem) (int64, error) {
	if err := g.validator.ValidateOrder(ctx, items); err != nil {
		return 0, err
	}
	order, err := g.ledger.CreateOrder(ctx, items)
	if err != nil {
		return 0, fmt.Errorf("create order: %w", err)
	}
	return order.ID, nil
}
