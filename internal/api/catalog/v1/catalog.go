// Package catalogv1 declares the catalog.v1.Catalog gRPC service: its
// messages, server registration and client stub.
package catalogv1

import (
	"context"

	"google.golang.org/grpc"

	"github.com/jcmexdev/ecommerce-gateway/internal/pkg/rpc"
)

const ServiceName = "catalog.v1.Catalog"

const (
	Catalog_GetProduct_FullMethodName    = "/" + ServiceName + "/GetProduct"
	Catalog_DeleteProduct_FullMethodName = "/" + ServiceName + "/DeleteProduct"
	Catalog_CreateProduct_FullMethodName = "/" + ServiceName + "/CreateProduct"
	Catalog_ListProducts_FullMethodName  = "/" + ServiceName + "/ListProducts"
)

type Product struct {
	Id                string  `json:"id"`
	Title             string  `json:"title"`
	PassengerCapacity int64   `json:"passenger_capacity"`
	MaximumSpeed      float64 `json:"maximum_speed"`
	InStock           int64   `json:"in_stock"`
}

type GetProductRequest struct {
	Id string `json:"id"`
}

type GetProductResponse struct {
	Product *Product `json:"product"`
}

type DeleteProductRequest struct {
	Id string `json:"id"`
}

type DeleteProductResponse struct {
	Product *Product `json:"product"`
}

type CreateProductRequest struct {
	Product *Product `json:"product"`
}

type CreateProductResponse struct {
	Id string `json:"id"`
}

// ListProductsRequest filters the catalog by id. Unknown ids are skipped.
type ListProductsRequest struct {
	Ids []string `json:"ids"`
}

type ListProductsResponse struct {
	Products []*Product `json:"products"`
}

// CatalogServer is implemented by the catalog service.
type CatalogServer interface {
	GetProduct(context.Context, *GetProductRequest) (*GetProductResponse, error)
	DeleteProduct(context.Context, *DeleteProductRequest) (*DeleteProductResponse, error)
	CreateProduct(context.Context, *CreateProductRequest) (*CreateProductResponse, error)
	ListProducts(context.Context, *ListProductsRequest) (*ListProductsResponse, error)
}

var Catalog_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CatalogServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.UnaryMethod(ServiceName, "GetProduct", CatalogServer.GetProduct),
		rpc.UnaryMethod(ServiceName, "DeleteProduct", CatalogServer.DeleteProduct),
		rpc.UnaryMethod(ServiceName, "CreateProduct", CatalogServer.CreateProduct),
		rpc.UnaryMethod(ServiceName, "ListProducts", CatalogServer.ListProducts),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "catalog/v1/catalog.go",
}

func RegisterCatalogServer(s grpc.ServiceRegistrar, srv CatalogServer) {
	s.RegisterService(&Catalog_ServiceDesc, srv)
}

// CatalogClient is the client stub used by the gateway.
type CatalogClient interface {
	GetProduct(ctx context.Context, in *GetProductRequest, opts ...grpc.CallOption) (*GetProductResponse, error)
	DeleteProduct(ctx context.Context, in *DeleteProductRequest, opts ...grpc.CallOption) (*DeleteProductResponse, error)
	CreateProduct(ctx context.Context, in *CreateProductRequest, opts ...grpc.CallOption) (*CreateProductResponse, error)
	ListProducts(ctx context.Context, in *ListProductsRequest, opts ...grpc.CallOption) (*ListProductsResponse, error)
}

type catalogClient struct {
	cc grpc.ClientConnInterface
}

func NewCatalogClient(cc grpc.ClientConnInterface) CatalogClient {
	return &catalogClient{cc: cc}
}

func (c *catalogClient) GetProduct(ctx context.Context, in *GetProductRequest, opts ...grpc.CallOption) (*GetProductResponse, error) {
	return rpc.Invoke[GetProductResponse](ctx, c.cc, Catalog_GetProduct_FullMethodName, in, opts...)
}

func (c *catalogClient) DeleteProduct(ctx context.Context, in *DeleteProductRequest, opts ...grpc.CallOption) (*DeleteProductResponse, error) {
	return rpc.Invoke[DeleteProductResponse](ctx, c.cc, Catalog_DeleteProduct_FullMethodName, in, opts...)
}

func (c *catalogClient) CreateProduct(ctx context.Context, in *CreateProductRequest, opts ...grpc.CallOption) (*CreateProductResponse, error) {
	return rpc.Invoke[CreateProductResponse](ctx, c.cc, Catalog_CreateProduct_FullMethodName, in, opts...)
}

func (c *catalogClient) ListProducts(ctx context.Context, in *ListProductsRequest, opts ...grpc.CallOption) (*ListProductsResponse, error) {
	return rpc.Invoke[ListProductsResponse](ctx, c.cc, Catalog_ListProducts_FullMethodName, in, opts...)
}
