package entity

import "github.com/shopspring/decimal"

// LineItem is one line of an order. Product and Image are only set on orders
// returned by the aggregator.
type LineItem struct {
	ID        int64
	ProductID string
	Price     decimal.Decimal
	Quantity  int
	Product   *Product
	Image     string
}

type Order struct {
	ID      int64
	Details []LineItem
}

// ProductIDs returns the distinct product ids of orders in first-seen order.
func ProductIDs(orders []Order) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, o := range orders {
		for _, item := range o.Details {
			if _, ok := seen[item.ProductID]; ok {
				continue
			}
			seen[item.ProductID] = struct{}{}
			ids = append(ids, item.ProductID)
		}
	}
	return ids
}
