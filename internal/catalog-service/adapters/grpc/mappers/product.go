package mappers

import (
	catalogv1 "github.com/jcmexdev/ecommerce-gateway/internal/api/catalog/v1"
	"github.com/jcmexdev/ecommerce-gateway/internal/catalog-service/domain"
)

func ProductFromProto(p *catalogv1.Product) domain.Product {
	if p == nil {
		return domain.Product{}
	}
	return domain.Product{
		ID:                p.Id,
		Title:             p.Title,
		PassengerCapacity: p.PassengerCapacity,
		MaximumSpeed:      p.MaximumSpeed,
		InStock:           p.InStock,
	}
}

func ProductToProto(p domain.Product) *catalogv1.Product {
	return &catalogv1.Product{
		Id:                p.ID,
		Title:             p.Title,
		PassengerCapacity: p.PassengerCapacity,
		MaximumSpeed:      p.MaximumSpeed,
		InStock:           p.InStock,
	}
}

func ProductsToProto(ps []domain.Product) []*catalogv1.Product {
	out := make([]*catalogv1.Product, len(ps))
	for i, p := range ps {
		out[i] = ProductToProto(p)
	}
	return out
}
