package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	catalogv1 "github.com/jcmexdev/ecommerce-gateway/internal/api/catalog/v1"
	"github.com/jcmexdev/ecommerce-gateway/internal/catalog-service/adapters/grpc/mappers"
	"github.com/jcmexdev/ecommerce-gateway/internal/catalog-service/domain"
	"github.com/jcmexdev/ecommerce-gateway/internal/pkg/cache"
	"github.com/jcmexdev/ecommerce-gateway/internal/pkg/events"
	"github.com/jcmexdev/ecommerce-gateway/internal/pkg/interceptors"
)

const productOperation = "product"

var _ catalogv1.CatalogServer = (*catalogServer)(nil)

// catalogServer stores every product as one JSON value under
// catalog:product:<id>.
type catalogServer struct {
	store cache.Cache
}

func NewCatalogServer(store cache.Cache) *catalogServer {
	return &catalogServer{store: store}
}

func (s *catalogServer) key(id string) string {
	return s.store.GenerateKey(productOperation, id)
}

func (s *catalogServer) GetProduct(ctx context.Context, req *catalogv1.GetProductRequest) (*catalogv1.GetProductResponse, error) {
	p, err := s.load(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	return &catalogv1.GetProductResponse{Product: mappers.ProductToProto(p)}, nil
}

func (s *catalogServer) DeleteProduct(ctx context.Context, req *catalogv1.DeleteProductRequest) (*catalogv1.DeleteProductResponse, error) {
	p, err := s.load(ctx, req.Id)
	if err != nil {
		return nil, err
	}

	deleted, err := s.store.Delete(ctx, s.key(req.Id))
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	if !deleted {
		// Removed concurrently between load and delete.
		return nil, notFound(req.Id)
	}

	slog.InfoContext(ctx, "product deleted", "product_id", req.Id, "request_id", interceptors.RequestIDFromContext(ctx))
	return &catalogv1.DeleteProductResponse{Product: mappers.ProductToProto(p)}, nil
}

func (s *catalogServer) CreateProduct(ctx context.Context, req *catalogv1.CreateProductRequest) (*catalogv1.CreateProductResponse, error) {
	p := mappers.ProductFromProto(req.Product)
	if err := p.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	created, err := s.store.SetNX(ctx, s.key(p.ID), string(raw), 0)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	if !created {
		return nil, alreadyExists(p.ID)
	}

	slog.InfoContext(ctx, "product created", "product_id", p.ID, "request_id", interceptors.RequestIDFromContext(ctx))
	return &catalogv1.CreateProductResponse{Id: p.ID}, nil
}

// ListProducts returns the stored products among req.Ids in request order,
// skipping unknown and repeated ids. One MGET serves the whole batch.
func (s *catalogServer) ListProducts(ctx context.Context, req *catalogv1.ListProductsRequest) (*catalogv1.ListProductsResponse, error) {
	ids := dedupe(req.Ids)
	if len(ids) == 0 {
		return &catalogv1.ListProductsResponse{Products: []*catalogv1.Product{}}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.key(id)
	}

	raws, err := s.store.MGet(ctx, keys...)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	products := make([]domain.Product, 0, len(raws))
	for i, raw := range raws {
		if raw == "" {
			continue
		}
		var p domain.Product
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, status.Errorf(codes.DataLoss, "product %s: corrupt record: %v", ids[i], err)
		}
		products = append(products, p)
	}

	return &catalogv1.ListProductsResponse{Products: mappers.ProductsToProto(products)}, nil
}

// HandleOrderCreated adjusts stock for every line of a newly created order.
// Products deleted since the order was placed are skipped.
func (s *catalogServer) HandleOrderCreated(ctx context.Context, ev events.OrderCreated) error {
	var errs []error
	for _, item := range ev.Items {
		_, err := s.decrement(ctx, item.ProductID, int64(item.Quantity))
		if status.Code(err) == codes.NotFound {
			slog.WarnContext(ctx, "order references deleted product", "order_id", ev.OrderID, "product_id", item.ProductID)
			continue
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("product %s: %w", item.ProductID, err))
		}
	}
	return errors.Join(errs...)
}

// decrement removes qty units of product id, flooring at zero.
func (s *catalogServer) decrement(ctx context.Context, id string, qty int64) (domain.Product, error) {
	var updated domain.Product
	err := s.store.Update(ctx, s.key(id), func(cur string) (string, error) {
		var p domain.Product
		if err := json.Unmarshal([]byte(cur), &p); err != nil {
			return "", err
		}
		if err := p.Decrement(qty); err != nil {
			return "", err
		}
		raw, err := json.Marshal(p)
		if err != nil {
			return "", err
		}
		updated = p
		return string(raw), nil
	})
	switch {
	case errors.Is(err, cache.ErrMiss):
		return domain.Product{}, notFound(id)
	case errors.Is(err, domain.ErrNegativeQuantity):
		return domain.Product{}, status.Error(codes.InvalidArgument, err.Error())
	case err != nil:
		return domain.Product{}, status.Error(codes.Internal, err.Error())
	}
	return updated, nil
}

func (s *catalogServer) load(ctx context.Context, id string) (domain.Product, error) {
	if id == "" {
		return domain.Product{}, status.Error(codes.InvalidArgument, domain.ErrProductIDRequired.Error())
	}
	raw, err := s.store.Get(ctx, s.key(id))
	if err != nil {
		return domain.Product{}, status.Error(codes.Internal, err.Error())
	}
	if raw == "" {
		return domain.Product{}, notFound(id)
	}
	var p domain.Product
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return domain.Product{}, status.Errorf(codes.DataLoss, "product %s: corrupt record: %v", id, err)
	}
	return p, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
