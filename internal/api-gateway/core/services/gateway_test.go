package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/ecommerce-gateway/internal/api-gateway/core/domain/entity"
)

func TestGatewayCreateThenGetOrder(t *testing.T) {
	catalog := newFakeCatalog(odyssey)
	ledger := newFakeLedger()
	g := NewGateway(catalog, ledger, imageRoot)
	ctx := context.Background()

	id, err := g.CreateOrder(ctx, []entity.LineItem{item("the_odyssey", 2)})
	require.NoError(t, err)

	order, err := g.GetOrder(ctx, id)
	require.NoError(t, err)
	require.Len(t, order.Details, 1)
	assert.Equal(t, "The Odyssey", order.Details[0].Product.Title)
	assert.Equal(t, imageRoot+"/the_odyssey.jpg", order.Details[0].Image)
}

func TestGatewayCreateOrderUnknownProductSkipsLedger(t *testing.T) {
	catalog := newFakeCatalog(odyssey)
	ledger := newFakeLedger()
	g := NewGateway(catalog, ledger, imageRoot)

	_, err := g.CreateOrder(context.Background(), []entity.LineItem{item("the_odyssey", 1), item("ghost", 1)})

	var notFound *entity.ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "ghost", notFound.ProductID)
	assert.Zero(t, ledger.creates)
}

func TestGatewayGetOrderNotFound(t *testing.T) {
	g := NewGateway(newFakeCatalog(), newFakeLedger(), imageRoot)

	_, err := g.GetOrder(context.Background(), 42)
	var notFound *entity.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, entity.ResourceOrder, notFound.Resource)
}

func TestGatewayListOrdersBatchesOnce(t *testing.T) {
	catalog := newFakeCatalog(odyssey, enigma)
	ledger := newFakeLedger(
		entity.Order{ID: 1, Details: []entity.LineItem{item("the_odyssey", 1)}},
		entity.Order{ID: 2, Details: []entity.LineItem{item("the_enigma", 1), item("the_odyssey", 1)}},
	)
	g := NewGateway(catalog, ledger, imageRoot)

	orders, err := g.ListOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, 1, catalog.listCalls())
	assert.Equal(t, "The Enigma", orders[1].Details[0].Product.Title)
}

func TestGatewayProducts(t *testing.T) {
	catalog := newFakeCatalog()
	g := NewGateway(catalog, newFakeLedger(), imageRoot)
	ctx := context.Background()

	id, err := g.CreateProduct(ctx, odyssey)
	require.NoError(t, err)
	assert.Equal(t, "the_odyssey", id)

	_, err = g.CreateProduct(ctx, odyssey)
	var conflict *entity.ConflictError
	assert.ErrorAs(t, err, &conflict)

	p, err := g.GetProduct(ctx, "the_odyssey")
	require.NoError(t, err)
	assert.Equal(t, odyssey, *p)

	deleted, err := g.DeleteProduct(ctx, "the_odyssey")
	require.NoError(t, err)
	assert.Equal(t, odyssey, *deleted)

	_, err = g.GetProduct(ctx, "the_odyssey")
	var notFound *entity.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
