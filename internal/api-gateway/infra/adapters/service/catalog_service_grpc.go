package service

import (
	"context"
	"fmt"
	"time"

	catalogv1 "github.com/jcmexdev/ecommerce-gateway/internal/api/catalog/v1"

	"github.com/jcmexdev/ecommerce-gateway/internal/api-gateway/core/domain/entity"
	"github.com/jcmexdev/ecommerce-gateway/internal/api-gateway/core/ports"
)

// GRPCCatalogService talks to catalog.v1.Catalog.
type GRPCCatalogService struct {
	client  catalogv1.CatalogClient
	timeout time.Duration
}

var _ ports.CatalogService = (*GRPCCatalogService)(nil)

// NewGRPCCatalogClient bounds every call by timeout; zero means the request
// context alone decides.
func NewGRPCCatalogClient(client catalogv1.CatalogClient, timeout time.Duration) ports.CatalogService {
	return &GRPCCatalogService{client: client, timeout: timeout}
}

func (s *GRPCCatalogService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.client.GetProduct(ctx, &catalogv1.GetProductRequest{Id: id})
	if err != nil {
		return nil, translateError("GetProduct", entity.ResourceProduct, id, err)
	}
	if res.Product == nil {
		return nil, fmt.Errorf("grpc GetProduct: empty product in response")
	}
	p := mapProtoProductToEntity(res.Product)
	return &p, nil
}

func (s *GRPCCatalogService) DeleteProduct(ctx context.Context, id string) (*entity.Product, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.client.DeleteProduct(ctx, &catalogv1.DeleteProductRequest{Id: id})
	if err != nil {
		return nil, translateError("DeleteProduct", entity.ResourceProduct, id, err)
	}
	if res.Product == nil {
		return nil, fmt.Errorf("grpc DeleteProduct: empty product in response")
	}
	p := mapProtoProductToEntity(res.Product)
	return &p, nil
}

func (s *GRPCCatalogService) CreateProduct(ctx context.Context, p entity.Product) (string, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.client.CreateProduct(ctx, &catalogv1.CreateProductRequest{Product: mapEntityProductToProto(p)})
	if err != nil {
		return "", translateError("CreateProduct", entity.ResourceProduct, p.ID, err)
	}
	return res.Id, nil
}

func (s *GRPCCatalogService) ListProducts(ctx context.Context, ids []string) ([]entity.Product, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.client.ListProducts(ctx, &catalogv1.ListProductsRequest{Ids: ids})
	if err != nil {
		return nil, fmt.Errorf("grpc ListProducts: %w", err)
	}

	out := make([]entity.Product, 0, len(res.Products))
	for _, p := range res.Products {
		if p != nil {
			out = append(out, mapProtoProductToEntity(p))
		}
	}
	return out, nil
}

func mapProtoProductToEntity(p *catalogv1.Product) entity.Product {
	return entity.Product{
		ID:                p.Id,
		Title:             p.Title,
		PassengerCapacity: p.PassengerCapacity,
		MaximumSpeed:      p.MaximumSpeed,
		InStock:           p.InStock,
	}
}

func mapEntityProductToProto(p entity.Product) *catalogv1.Product {
	return &catalogv1.Product{
		Id:                p.ID,
		Title:             p.Title,
		PassengerCapacity: p.PassengerCapacity,
		MaximumSpeed:      p.MaximumSpeed,
		InStock:           p.InStock,
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
