package entity

// Product is a request-scoped copy of a catalog product.
type Product struct {
	ID                string
	Title             string
	PassengerCapacity int64
	MaximumSpeed      float64
	InStock           int64
}

// ProductMap indexes products by id. Keys are unique; iteration order is not
// defined. A map is built per aggregation call and never shared.
type ProductMap map[string]Product

func NewProductMap(products []Product) ProductMap {
	m := make(ProductMap, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return m
}

func (m ProductMap) Has(id string) bool {
	_, ok := m[id]
	return ok
}
