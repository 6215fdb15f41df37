package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/ecommerce-gateway/internal/api-gateway/core/services"
	"github.com/jcmexdev/ecommerce-gateway/internal/api-gateway/infra/httpx"
	"github.com/jcmexdev/ecommerce-gateway/internal/pkg/metrics"
)

const odysseyJSON = `{"id":"the_odyssey","title":"The Odyssey","passenger_capacity":101,"maximum_speed":5,"in_stock":10}`

// stack serves the gateway router over real catalog and ledger servers.
type stack struct {
	ledger *GRPCLedgerService
	router http.Handler
}

func newStack(t *testing.T) *stack {
	catalog, ledger := newCatalog(t), newLedger(t)
	reg := metrics.NewRegistry()
	gw := services.NewGateway(catalog, ledger, "https://img.example.com/airships/", services.WithBatchObserver(reg))
	return &stack{ledger: ledger, router: httpx.NewRouter(httpx.NewHandler(gw), reg)}
}

func (s *stack) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHTTPProductRoundTrip(t *testing.T) {
	s := newStack(t)

	rec := s.do(t, http.MethodPost, "/products", odysseyJSON)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "the_odyssey", decodeBody[httpx.CreatedProductResponse](t, rec).ID)

	rec = s.do(t, http.MethodGet, "/products/the_odyssey", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, odysseyJSON, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/products", odysseyJSON)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "product_exists", decodeBody[httpx.ErrorResponse](t, rec).Error)

	rec = s.do(t, http.MethodDelete, "/products/the_odyssey", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, odysseyJSON, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/products/the_odyssey", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "product_not_found", decodeBody[httpx.ErrorResponse](t, rec).Error)
}

func TestHTTPCreateThenGetOrder(t *testing.T) {
	s := newStack(t)
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/products", odysseyJSON).Code)

	rec := s.do(t, http.MethodPost, "/orders",
		`{"order_details":[{"product_id":"the_odyssey","price":"100000.99","quantity":1},{"product_id":"the_odyssey","price":"9.995","quantity":2}]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody[httpx.CreatedOrderResponse](t, rec)

	rec = s.do(t, http.MethodGet, "/orders/"+strconv.FormatInt(created.ID, 10), "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	order := decodeBody[httpx.OrderResponse](t, rec)
	assert.Equal(t, created.ID, order.ID)
	require.Len(t, order.OrderDetails, 2)

	first := order.OrderDetails[0]
	assert.Equal(t, "the_odyssey", first.ProductID)
	assert.Equal(t, "100000.99", first.Price)
	assert.Equal(t, 1, first.Quantity)
	require.NotNil(t, first.Product)
	assert.Equal(t, "The Odyssey", first.Product.Title)
	assert.Equal(t, "https://img.example.com/airships/the_odyssey.jpg", first.Image)
	assert.Equal(t, "10.00", order.OrderDetails[1].Price)

	rec = s.do(t, http.MethodGet, "/orders", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]httpx.OrderResponse](t, rec), 1)

	rec = s.do(t, http.MethodGet, "/orders/999", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "order_not_found", decodeBody[httpx.ErrorResponse](t, rec).Error)
}

func TestHTTPCreateOrderGhostProduct(t *testing.T) {
	s := newStack(t)
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/products", odysseyJSON).Code)

	rec := s.do(t, http.MethodPost, "/orders",
		`{"order_details":[{"product_id":"the_odyssey","price":"1","quantity":1},{"product_id":"ghost","price":"1","quantity":1}]}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeBody[httpx.ErrorResponse](t, rec)
	assert.Equal(t, "product_not_found", resp.Error)
	assert.Contains(t, resp.Message, "ghost")

	orders, err := s.ledger.ListOrders(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestHTTPMalformedVersusMissingID(t *testing.T) {
	s := newStack(t)

	rec := s.do(t, http.MethodPost, "/products", `{"id": "the_odyssey", "title": `)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_json", decodeBody[httpx.ErrorResponse](t, rec).Error)

	rec = s.do(t, http.MethodPost, "/products",
		`{"title":"The Odyssey","passenger_capacity":101,"maximum_speed":5,"in_stock":10}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeBody[httpx.ErrorResponse](t, rec)
	assert.Equal(t, "validation_failed", resp.Error)
	assert.Equal(t, map[string]string{"id": "missing data for required field"}, resp.Details)
}

func TestHTTPRejectedInputIsBadRequest(t *testing.T) {
	s := newStack(t)
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/products", odysseyJSON).Code)

	tests := []struct {
		name  string
		path  string
		body  string
		field string
	}{
		{
			"blank title",
			"/products",
			`{"id":"p2","title":"   ","passenger_capacity":1,"maximum_speed":1,"in_stock":1}`,
			"title",
		},
		{
			"negative price",
			"/orders",
			`{"order_details":[{"product_id":"the_odyssey","price":"-1.00","quantity":1}]}`,
			"order_details[0].price",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, tt.path, tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			resp := decodeBody[httpx.ErrorResponse](t, rec)
			assert.Equal(t, "validation_failed", resp.Error)
			assert.Contains(t, resp.Details, tt.field)
		})
	}

	orders, err := s.ledger.ListOrders(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
}
