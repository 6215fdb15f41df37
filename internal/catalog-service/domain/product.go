package domain

import (
	"errors"
	"strings"
)

var (
	ErrProductIDRequired = errors.New("product id is required")
	ErrTitleRequired     = errors.New("product title is required")
	ErrNegativeQuantity  = errors.New("quantity must be positive")
)

// Product is the catalog's stored representation of an airship.
type Product struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	PassengerCapacity int64   `json:"passenger_capacity"`
	MaximumSpeed      float64 `json:"maximum_speed"`
	InStock           int64   `json:"in_stock"`
}

func (p Product) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return ErrProductIDRequired
	}
	if strings.TrimSpace(p.Title) == "" {
		return ErrTitleRequired
	}
	return nil
}

// Decrement removes qty units from stock, flooring at zero: the ledger has
// already accepted the order, so the catalog never rejects the adjustment.
func (p *Product) Decrement(qty int64) error {
	if qty <= 0 {
		return ErrNegativeQuantity
	}
	p.InStock -= qty
	if p.InStock < 0 {
		p.InStock = 0
	}
	return nil
}
