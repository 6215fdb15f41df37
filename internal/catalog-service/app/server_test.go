package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	catalogv1 "github.com/jcmexdev/ecommerce-gateway/internal/api/catalog/v1"
	"github.com/jcmexdev/ecommerce-gateway/internal/pkg/cache"
	"github.com/jcmexdev/ecommerce-gateway/internal/pkg/events"
	"github.com/jcmexdev/ecommerce-gateway/internal/pkg/rpc"
)

func newServer(t *testing.T, products ...*catalogv1.Product) *catalogServer {
	t.Helper()
	s := NewCatalogServer(cache.NewMemoryCache("catalog"))
	for _, p := range products {
		_, err := s.CreateProduct(context.Background(), &catalogv1.CreateProductRequest{Product: p})
		require.NoError(t, err)
	}
	return s
}

func odyssey() *catalogv1.Product {
	return &catalogv1.Product{Id: "the_odyssey", Title: "The Odyssey", PassengerCapacity: 101, MaximumSpeed: 5, InStock: 10}
}

func enigma() *catalogv1.Product {
	return &catalogv1.Product{Id: "the_enigma", Title: "The Enigma", PassengerCapacity: 200, MaximumSpeed: 10, InStock: 1}
}

func TestCreateAndGetProduct(t *testing.T) {
	s := newServer(t, odyssey())

	res, err := s.GetProduct(context.Background(), &catalogv1.GetProductRequest{Id: "the_odyssey"})
	require.NoError(t, err)
	assert.Equal(t, odyssey(), res.Product)
}

func TestCreateProductDuplicate(t *testing.T) {
	s := newServer(t, odyssey())

	_, err := s.CreateProduct(context.Background(), &catalogv1.CreateProductRequest{Product: odyssey()})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))
}

func TestCreateProductInvalid(t *testing.T) {
	s := newServer(t)

	_, err := s.CreateProduct(context.Background(), &catalogv1.CreateProductRequest{Product: &catalogv1.Product{Id: "x"}})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.CreateProduct(context.Background(), &catalogv1.CreateProductRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestGetProductNotFound(t *testing.T) {
	s := newServer(t)

	_, err := s.GetProduct(context.Background(), &catalogv1.GetProductRequest{Id: "ghost"})
	require.Equal(t, codes.NotFound, status.Code(err))

	kind, id, ok := rpc.ResourceFromError(err)
	require.True(t, ok)
	assert.Equal(t, rpc.ResourceProduct, kind)
	assert.Equal(t, "ghost", id)
}

func TestDeleteProduct(t *testing.T) {
	s := newServer(t, odyssey())
	ctx := context.Background()

	res, err := s.DeleteProduct(ctx, &catalogv1.DeleteProductRequest{Id: "the_odyssey"})
	require.NoError(t, err)
	assert.Equal(t, "the_odyssey", res.Product.Id)

	_, err = s.GetProduct(ctx, &catalogv1.GetProductRequest{Id: "the_odyssey"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = s.DeleteProduct(ctx, &catalogv1.DeleteProductRequest{Id: "the_odyssey"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestListProductsSkipsUnknownAndDuplicates(t *testing.T) {
	s := newServer(t, odyssey(), enigma())

	res, err := s.ListProducts(context.Background(), &catalogv1.ListProductsRequest{
		Ids: []string{"the_enigma", "ghost", "the_odyssey", "the_enigma"},
	})
	require.NoError(t, err)
	require.Len(t, res.Products, 2)
	assert.Equal(t, "the_enigma", res.Products[0].Id)
	assert.Equal(t, "the_odyssey", res.Products[1].Id)
}

func TestListProductsEmpty(t *testing.T) {
	s := newServer(t, odyssey())

	res, err := s.ListProducts(context.Background(), &catalogv1.ListProductsRequest{})
	require.NoError(t, err)
	assert.Empty(t, res.Products)
}

func TestDecrementFloorsAtZero(t *testing.T) {
	s := newServer(t, enigma())
	ctx := context.Background()

	p, err := s.decrement(ctx, "the_enigma", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(0), p.InStock)

	_, err = s.decrement(ctx, "the_enigma", 0)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.decrement(ctx, "ghost", 1)
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestHandleOrderCreated(t *testing.T) {
	s := newServer(t, odyssey(), enigma())
	ctx := context.Background()

	err := s.HandleOrderCreated(ctx, events.OrderCreated{
		OrderID: 1,
		Items: []events.OrderedItem{
			{ProductID: "the_odyssey", Quantity: 3},
			{ProductID: "deleted", Quantity: 1},
			{ProductID: "the_enigma", Quantity: 1},
		},
	})
	require.NoError(t, err)

	res, err := s.GetProduct(ctx, &catalogv1.GetProductRequest{Id: "the_odyssey"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), res.Product.InStock)

	res, err = s.GetProduct(ctx, &catalogv1.GetProductRequest{Id: "the_enigma"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Product.InStock)
}
